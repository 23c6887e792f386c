package diesel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// reconciledBatch corre el pipeline de un solo lote hasta la validación de medidores.
func reconciledBatch(t *testing.T, raws []entity.RawMovement) *entity.PlantBatch {
	t.Helper()
	b := buildBatch(t, raws)
	Reconcile(b)
	ValidateMeterReadings(b)
	return b
}

func TestValidateMeterReadings_DeltasPorUnidad(t *testing.T) {
	// Horómetros 100 → 150 → 140: la segunda lectura tiene delta 50 sin marcas,
	// la tercera retrocede 10 y es un error.
	b := reconciledBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "80", Horometro: "100", Fecha: "01/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "90", Horometro: "150", Fecha: "04/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "85", Horometro: "140", Fecha: "07/03/25", Hora: "08:00"},
	})
	require.Len(t, b.Readings, 3)

	primera, segunda, tercera := b.Readings[0], b.Readings[1], b.Readings[2]

	// La primera lectura nunca se marca: no hay contra qué comparar
	assert.Nil(t, primera.HorometroDelta)
	assert.False(t, primera.HasWarnings)
	assert.False(t, primera.HasErrors)

	require.NotNil(t, segunda.HorometroDelta)
	assert.InDelta(t, 50, *segunda.HorometroDelta, 0.001)
	require.NotNil(t, segunda.DiasDesdeUltima)
	assert.Equal(t, 3, *segunda.DiasDesdeUltima)
	assert.False(t, segunda.HasErrors)
	assert.False(t, segunda.HasWarnings)

	require.NotNil(t, tercera.HorometroDelta)
	assert.InDelta(t, -10, *tercera.HorometroDelta, 0.001)
	assert.True(t, tercera.HasErrors, "un horómetro que retrocede es un error")

	assert.GreaterOrEqual(t, b.ValidationErrors, 1, "el error sube al rollup del lote")
}

func TestValidateMeterReadings_UsoImposible(t *testing.T) {
	// Dos lecturas con un día de diferencia y 30 horas de horómetro:
	// 30 h/día no caben en un día calendario.
	b := reconciledBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "100", Horometro: "500", Fecha: "01/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "110", Horometro: "530", Fecha: "02/03/25", Hora: "08:00"},
	})
	require.Len(t, b.Readings, 2)

	segunda := b.Readings[1]
	require.NotNil(t, segunda.HorasDiarias)
	assert.InDelta(t, 30, *segunda.HorasDiarias, 0.001)
	assert.True(t, segunda.HasErrors)
	assert.GreaterOrEqual(t, b.ValidationErrors, 1)
}

func TestValidateMeterReadings_UsoAltoPeroPosible(t *testing.T) {
	// 22 h/día: advertencia, no error
	b := reconciledBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "100", Horometro: "500", Fecha: "01/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "110", Horometro: "522", Fecha: "02/03/25", Hora: "08:00"},
	})
	segunda := b.Readings[1]
	assert.True(t, segunda.HasWarnings)
	assert.False(t, segunda.HasErrors)
}

func TestValidateMeterReadings_ConsumoSinHoras(t *testing.T) {
	b := reconciledBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "100", Horometro: "500", Fecha: "01/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "60", Horometro: "500", Fecha: "02/03/25", Hora: "08:00"},
	})
	segunda := b.Readings[1]
	require.NotNil(t, segunda.HorometroDelta)
	assert.Zero(t, *segunda.HorometroDelta)
	assert.True(t, segunda.HasWarnings, "combustible sin horas registradas se advierte")
	assert.False(t, segunda.HasErrors)
}

func TestValidateMeterReadings_OdometroRetrocede(t *testing.T) {
	b := reconciledBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "VQ-1", Litros: "90", Odometro: "45000", Fecha: "01/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "VQ-1", Litros: "80", Odometro: "44800", Fecha: "03/03/25", Hora: "08:00"},
	})
	segunda := b.Readings[1]
	require.NotNil(t, segunda.OdometroDelta)
	assert.InDelta(t, -200, *segunda.OdometroDelta, 0.001)
	assert.True(t, segunda.HasErrors)
}

func TestValidateMeterReadings_DistanciaDiariaAlta(t *testing.T) {
	// 1200 km en 2 días = 600 km/día > 500
	b := reconciledBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "VQ-1", Litros: "200", Odometro: "10000", Fecha: "01/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "VQ-1", Litros: "350", Odometro: "11200", Fecha: "03/03/25", Hora: "08:00"},
	})
	segunda := b.Readings[1]
	require.NotNil(t, segunda.KmDiarios)
	assert.InDelta(t, 600, *segunda.KmDiarios, 0.001)
	assert.True(t, segunda.HasWarnings)
}

func TestValidateMeterReadings_RendimientoAnomalo(t *testing.T) {
	// 300 L en 4 horas = 75 L/h, fuera del rango 0.5–50
	b := reconciledBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "80", Horometro: "100", Fecha: "01/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "300", Horometro: "104", Fecha: "08/03/25", Hora: "08:00"},
	})
	segunda := b.Readings[1]
	require.NotNil(t, segunda.LitrosPorHora)
	assert.InDelta(t, 75, *segunda.LitrosPorHora, 0.001)
	assert.True(t, segunda.HasWarnings)
}

func TestValidateMeterReadings_UnidadesIndependientes(t *testing.T) {
	// Los deltas se calculan por unidad dentro del lote: la lectura de B9 no
	// se compara contra la de A1.
	b := reconciledBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "80", Horometro: "900", Fecha: "01/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "B9", Litros: "70", Horometro: "100", Fecha: "02/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "85", Horometro: "930", Fecha: "05/03/25", Hora: "08:00"},
	})
	require.Len(t, b.Readings, 3)

	lecturaB9 := b.Readings[1]
	assert.Nil(t, lecturaB9.HorometroDelta, "primera lectura de B9: sin delta")
	assert.False(t, lecturaB9.HasErrors)

	terceraA1 := b.Readings[2]
	require.NotNil(t, terceraA1.HorometroDelta)
	assert.InDelta(t, 30, *terceraA1.HorometroDelta, 0.001)
	assert.Equal(t, 4, *terceraA1.DiasDesdeUltima)
}
