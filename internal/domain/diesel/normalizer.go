// Package diesel implementa el núcleo de importación y conciliación del libro
// de diesel: normalización de filas sucias, clasificación de movimientos,
// agrupación por planta/bodega, reconstrucción del inventario y detección de
// anomalías en lecturas de medidores.
//
// El paquete es puro: no hace I/O, no lanza pánicos por datos malformados y
// nunca descarta filas. Cada etapa es una función determinista de sus entradas.
package diesel

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// ParseFecha parsea fechas en orden día/mes/año, con año de 2 o 4 dígitos
// ("08/02/25" y "08/02/2025" son el 8 de febrero de 2025). Años de 2 dígitos
// menores a 50 van al 2000, el resto a 1900. Cualquier entrada malformada
// (separadores de más, partes no numéricas, valores fuera de calendario)
// devuelve nil, nunca un error ni un pánico.
func ParseFecha(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil
	}
	dia, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}
	mes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}
	anio, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil
	}
	switch {
	case len(strings.TrimSpace(parts[2])) == 2:
		if anio < 50 {
			anio += 2000
		} else {
			anio += 1900
		}
	case len(strings.TrimSpace(parts[2])) == 4:
		// nada que ajustar
	default:
		return nil
	}
	if mes < 1 || mes > 12 || dia < 1 || dia > 31 {
		return nil
	}
	t := time.Date(anio, time.Month(mes), dia, 0, 0, 0, 0, time.UTC)
	// time.Date normaliza (31/04 → 01/05); si cambió, la fecha era inválida
	if t.Day() != dia || t.Month() != time.Month(mes) || t.Year() != anio {
		return nil
	}
	return &t
}

// ParseLitros parsea una cifra de litros o inventario de forma permisiva.
// Acepta separador decimal con coma o punto y separadores de miles; texto no
// numérico o vacío devuelve nil. Nunca propaga NaN al resto del cálculo.
func ParseLitros(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = normalizeNumeric(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// ParseMedidor parsea una lectura de horómetro u odómetro. Devuelve nil para
// entradas vacías o no numéricas.
func ParseMedidor(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(normalizeNumeric(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

// NormalizeDirection normaliza el campo de dirección del movimiento. Valores
// distintos de Entrada/Salida (mayúsculas aparte) se coercen a Salida para no
// perder la fila; coerced=true lo deja registrado para que la validación del
// lote lo muestre al operador en vez de tragárselo en silencio.
func NormalizeDirection(s string) (direction string, coerced bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entrada":
		return entity.DirectionEntrada, false
	case "salida":
		return entity.DirectionSalida, false
	default:
		return entity.DirectionSalida, true
	}
}

// normalizeNumeric limpia una cifra con formato local: "1.234,56" → "1234.56",
// "1,234.56" → "1234.56", "1234,5" → "1234.5".
func normalizeNumeric(s string) string {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// el separador que aparece de último es el decimal
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strings.TrimSpace(s)
}
