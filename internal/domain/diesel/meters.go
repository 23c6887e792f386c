package diesel

import (
	"fmt"
	"strings"
	"time"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// Umbrales de validación de medidores.
const (
	maxHorasDiarias  = 24.0  // más de 24 h/día es físicamente imposible
	altoHorasDiarias = 20.0  // uso implausiblemente alto, pero posible
	altoKmDiarios    = 500.0 // distancia diaria alta
	minLitrosPorHora = 0.5
	maxLitrosPorHora = 50.0
)

// ValidateMeterReadings agrupa las lecturas del lote por unidad, recorre cada
// grupo en orden cronológico (lo garantiza el orden de filas del lote) y, para
// cada lectura después de la primera, calcula deltas, promedios diarios y
// rendimientos, y marca los patrones físicamente implausibles. La primera
// lectura de cada unidad nunca se marca: no hay contra qué comparar.
// Las advertencias y errores se acumulan en la lectura y suben al rollup del
// lote.
func ValidateMeterReadings(b *entity.PlantBatch) {
	byAsset := make(map[string][]*entity.MeterReading)
	var order []string
	for _, r := range b.Readings {
		if _, seen := byAsset[r.AssetCode]; !seen {
			order = append(order, r.AssetCode)
		}
		byAsset[r.AssetCode] = append(byAsset[r.AssetCode], r)
	}

	for _, code := range order {
		readings := byAsset[code]
		for i := 1; i < len(readings); i++ {
			computeDeltas(readings[i-1], readings[i])
			validateReading(readings[i])
		}
	}

	// Rollup al lote: un conteo por cada mensaje acumulado
	for _, r := range b.Readings {
		for _, v := range r.Validaciones {
			if strings.HasPrefix(v, "error:") {
				b.ValidationErrors++
			} else {
				b.ValidationWarnings++
			}
		}
	}
}

// computeDeltas llena los campos derivados de curr respecto a prev (misma
// unidad, prev anterior en el tiempo).
func computeDeltas(prev, curr *entity.MeterReading) {
	if prev.Horometro != nil && curr.Horometro != nil {
		d := *curr.Horometro - *prev.Horometro
		curr.HorometroDelta = &d
	}
	if prev.Odometro != nil && curr.Odometro != nil {
		d := *curr.Odometro - *prev.Odometro
		curr.OdometroDelta = &d
	}

	dias := calendarDaysBetween(prev, curr)
	curr.DiasDesdeUltima = &dias

	if dias > 0 {
		if curr.HorometroDelta != nil {
			avg := *curr.HorometroDelta / float64(dias)
			curr.HorasDiarias = &avg
		}
		if curr.OdometroDelta != nil {
			avg := *curr.OdometroDelta / float64(dias)
			curr.KmDiarios = &avg
		}
	}

	litros := curr.Litros.InexactFloat64()
	if litros > 0 {
		if curr.HorometroDelta != nil && *curr.HorometroDelta > 0 {
			eff := litros / *curr.HorometroDelta
			curr.LitrosPorHora = &eff
		}
		if curr.OdometroDelta != nil && *curr.OdometroDelta > 0 {
			eff := litros / *curr.OdometroDelta
			curr.LitrosPorKm = &eff
		}
	}
}

// validateReading aplica las reglas de plausibilidad física sobre una lectura
// ya derivada. Las reglas no son excluyentes: una lectura puede acumular
// varios mensajes.
func validateReading(r *entity.MeterReading) {
	if r.HorometroDelta != nil {
		switch {
		case *r.HorometroDelta < 0:
			r.AddError(fmt.Sprintf("el horómetro retrocedió %.1f h (posible reinicio, manipulación o error de captura)", *r.HorometroDelta))
		case *r.HorometroDelta == 0 && r.Litros.IsPositive():
			r.AddWarning(fmt.Sprintf("consumo de %s L sin horas de operación registradas", r.Litros.String()))
		}
	}
	if r.HorasDiarias != nil {
		switch {
		case *r.HorasDiarias > maxHorasDiarias:
			r.AddError(fmt.Sprintf("promedio de %.1f h/día supera las 24 horas del día: físicamente imposible", *r.HorasDiarias))
		case *r.HorasDiarias > altoHorasDiarias:
			r.AddWarning(fmt.Sprintf("promedio de %.1f h/día de operación es implausiblemente alto", *r.HorasDiarias))
		}
	}
	if r.OdometroDelta != nil && *r.OdometroDelta < 0 {
		r.AddError(fmt.Sprintf("el odómetro retrocedió %.1f km", *r.OdometroDelta))
	}
	if r.KmDiarios != nil && *r.KmDiarios > altoKmDiarios {
		r.AddWarning(fmt.Sprintf("promedio de %.1f km/día es una distancia diaria alta", *r.KmDiarios))
	}
	if r.LitrosPorHora != nil && (*r.LitrosPorHora < minLitrosPorHora || *r.LitrosPorHora > maxLitrosPorHora) {
		r.AddWarning(fmt.Sprintf("rendimiento de %.2f L/h fuera del rango esperado (%.1f–%.1f)", *r.LitrosPorHora, minLitrosPorHora, maxLitrosPorHora))
	}
}

// calendarDaysBetween devuelve la diferencia absoluta en días calendario entre
// las fechas de dos lecturas (las horas del día no cuentan).
func calendarDaysBetween(prev, curr *entity.MeterReading) int {
	a := time.Date(prev.Fecha.Year(), prev.Fecha.Month(), prev.Fecha.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(curr.Fecha.Year(), curr.Fecha.Month(), curr.Fecha.Day(), 0, 0, 0, 0, time.UTC)
	dias := int(b.Sub(a).Hours() / 24)
	if dias < 0 {
		return -dias
	}
	return dias
}
