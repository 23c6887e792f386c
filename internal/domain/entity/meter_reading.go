package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MeterReading es una foto de horómetro y/u odómetro ligada a un consumo de
// diesel de una unidad. El enricher crea el esqueleto (lecturas + combustible);
// el detector de anomalías completa los deltas respecto a la lectura
// cronológica anterior de la misma unidad dentro del mismo lote — nunca
// globalmente ni entre lotes.
type MeterReading struct {
	AssetCode string    // código de unidad tal como vino en la fila
	Fecha     time.Time // fecha parseada de la fila (requisito para crear la lectura)
	RowIndex  int       // índice de la fila origen dentro del archivo

	Horometro *float64 // horas acumuladas, si la fila la trae
	Odometro  *float64 // kilómetros acumulados, si la fila la trae

	Litros decimal.Decimal // combustible consumido en esta lectura

	// Derivados respecto a la lectura anterior de la misma unidad (nil en la primera)
	HorometroDelta  *float64
	OdometroDelta   *float64
	DiasDesdeUltima *int
	HorasDiarias    *float64 // HorometroDelta / días
	KmDiarios       *float64 // OdometroDelta / días
	LitrosPorHora   *float64 // Litros / HorometroDelta
	LitrosPorKm     *float64 // Litros / OdometroDelta

	// Validación (no excluyente: una lectura puede acumular varios mensajes)
	HasWarnings  bool
	HasErrors    bool
	Validaciones []string
}

// AddWarning agrega un mensaje de advertencia a la lectura.
func (r *MeterReading) AddWarning(msg string) {
	r.HasWarnings = true
	r.Validaciones = append(r.Validaciones, "advertencia: "+msg)
}

// AddError agrega un mensaje de error a la lectura.
func (r *MeterReading) AddError(msg string) {
	r.HasErrors = true
	r.Validaciones = append(r.Validaciones, "error: "+msg)
}
