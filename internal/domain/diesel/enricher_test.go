package diesel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

func TestEnrich_ConstruyeClaveDeOrden(t *testing.T) {
	m := Enrich(entity.RawMovement{Fecha: "08/02/25", Hora: "14:30"}, 3, "imp-1")
	require.NotNil(t, m.Fecha)
	assert.Equal(t, "2025-02-08T00:00:00Z-14:30-000003", m.SortKey)
}

func TestEnrich_FechaInvalidaOrdenaDeUltimo(t *testing.T) {
	// Las filas sin fecha parseable no se pierden: reciben una clave que las
	// manda al final del grupo de forma determinista.
	conFecha := Enrich(entity.RawMovement{Fecha: "31/12/2030", Hora: "23:59"}, 0, "imp-1")
	sinFecha3 := Enrich(entity.RawMovement{Fecha: "???"}, 3, "imp-1")
	sinFecha7 := Enrich(entity.RawMovement{Fecha: "???"}, 7, "imp-1")

	assert.Nil(t, sinFecha3.Fecha)
	assert.Equal(t, "9999-000003", sinFecha3.SortKey)
	assert.Less(t, conFecha.SortKey, sinFecha3.SortKey)
	// Estabilidad: el índice 3 siempre antes que el 7
	assert.Less(t, sinFecha3.SortKey, sinFecha7.SortKey)
}

func TestEnrich_EsqueletoDeLectura(t *testing.T) {
	tests := []struct {
		name        string
		raw         entity.RawMovement
		wantReading bool
	}{
		{
			name:        "unidad con horómetro y fecha",
			raw:         entity.RawMovement{Tipo: "Salida", Unidad: "EX-02", Litros: "120", Horometro: "1500", Fecha: "01/03/25"},
			wantReading: true,
		},
		{
			name:        "unidad solo con odómetro",
			raw:         entity.RawMovement{Tipo: "Salida", Unidad: "VQ-11", Litros: "90", Odometro: "45210", Fecha: "01/03/25"},
			wantReading: true,
		},
		{
			name:        "sin unidad no hay lectura",
			raw:         entity.RawMovement{Tipo: "Salida", Litros: "120", Horometro: "1500", Fecha: "01/03/25"},
			wantReading: false,
		},
		{
			name:        "sin medidores no hay lectura",
			raw:         entity.RawMovement{Tipo: "Salida", Unidad: "EX-02", Litros: "120", Fecha: "01/03/25"},
			wantReading: false,
		},
		{
			name:        "sin fecha parseable no hay lectura",
			raw:         entity.RawMovement{Tipo: "Salida", Unidad: "EX-02", Litros: "120", Horometro: "1500", Fecha: "??"},
			wantReading: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Enrich(tt.raw, 0, "imp-1")
			if !tt.wantReading {
				assert.Nil(t, m.Reading)
				return
			}
			require.NotNil(t, m.Reading)
			assert.Equal(t, tt.raw.Unidad, m.Reading.AssetCode)
			// Los deltas los llena el detector, no el enricher
			assert.Nil(t, m.Reading.HorometroDelta)
			assert.Nil(t, m.Reading.DiasDesdeUltima)
		})
	}
}

func TestEnrich_RequiereMapeoDeActivo(t *testing.T) {
	consumo := Enrich(entity.RawMovement{Tipo: "Salida", Unidad: "EX-02", Litros: "120"}, 0, "imp-1")
	assert.True(t, consumo.RequiresAssetMapping)

	sinAsignar := Enrich(entity.RawMovement{Tipo: "Salida", Litros: "120"}, 1, "imp-1")
	assert.Equal(t, entity.CategoryUnassignedConsumption, sinAsignar.Category)
	assert.True(t, sinAsignar.RequiresAssetMapping)

	recepcion := Enrich(entity.RawMovement{Tipo: "Entrada", Litros: "6000"}, 2, "imp-1")
	assert.False(t, recepcion.RequiresAssetMapping)
}

func TestEnrich_DiscrepanciaDeValidacion(t *testing.T) {
	m := Enrich(entity.RawMovement{Tipo: "Salida", Unidad: "EX-02", Litros: "187", LitrosValidacion: "170"}, 0, "imp-1")
	assert.True(t, m.ValidationDiscrepancy)
	assert.Equal(t, "17", m.DiscrepancyLitros.String())

	// Diferencia de 5 L exactos no supera el umbral
	m = Enrich(entity.RawMovement{Tipo: "Salida", Unidad: "EX-02", Litros: "175", LitrosValidacion: "170"}, 0, "imp-1")
	assert.False(t, m.ValidationDiscrepancy)
}

func TestEnrich_DireccionCoercida(t *testing.T) {
	m := Enrich(entity.RawMovement{Tipo: "Salda", Unidad: "EX-02", Litros: "120"}, 0, "imp-1")
	assert.Equal(t, entity.DirectionSalida, m.Direction)
	assert.True(t, m.DirectionCoerced)
}
