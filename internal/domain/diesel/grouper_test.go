package diesel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

func enrichAll(t *testing.T, raws []entity.RawMovement) []*entity.EnrichedMovement {
	t.Helper()
	rows := make([]*entity.EnrichedMovement, 0, len(raws))
	for i, raw := range raws {
		rows = append(rows, Enrich(raw, i, "imp-1"))
	}
	return rows
}

func TestGroupIntoBatches_ParticionaPorPlantaYBodega(t *testing.T) {
	rows := enrichAll(t, []entity.RawMovement{
		{Planta: "PL-NORTE", Bodega: "1", Tipo: "Entrada", Litros: "6000", Fecha: "01/03/25"},
		{Planta: "PL-NORTE", Bodega: "2", Tipo: "Salida", Litros: "100", Fecha: "01/03/25"},
		{Planta: "PL-SUR", Bodega: "1", Tipo: "Salida", Litros: "50", Fecha: "01/03/25"},
		{Planta: "PL-NORTE", Bodega: "1", Tipo: "Salida", Litros: "80", Fecha: "02/03/25"},
	})

	batches := GroupIntoBatches(rows, "marzo.xlsx", "imp-1")

	// La misma planta con bodegas distintas NO se fusiona: cada bodega se
	// concilia por separado.
	require.Len(t, batches, 3)
	assert.Equal(t, "PL-NORTE", batches[0].Planta)
	assert.Equal(t, "1", batches[0].Bodega)
	assert.Len(t, batches[0].Rows, 2)
	assert.Len(t, batches[1].Rows, 1)
	assert.Len(t, batches[2].Rows, 1)

	total := 0
	for _, b := range batches {
		total += len(b.Rows)
		assert.Equal(t, "marzo.xlsx", b.SourceFile)
		assert.Equal(t, entity.BatchStatusPendiente, b.Status)
		assert.NotEmpty(t, b.ID)
	}
	assert.Equal(t, len(rows), total, "ninguna fila se pierde ni se duplica")
}

func TestGroupIntoBatches_OrdenaCronologicamente(t *testing.T) {
	rows := enrichAll(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Fecha: "05/03/25", Hora: "10:00"},
		{Planta: "PL", Bodega: "1", Fecha: "01/03/25", Hora: "09:00"},
		{Planta: "PL", Bodega: "1", Fecha: "??"}, // sin fecha: al final
		{Planta: "PL", Bodega: "1", Fecha: "01/03/25", Hora: "08:00"},
	})

	batches := GroupIntoBatches(rows, "f.xlsx", "imp-1")
	require.Len(t, batches, 1)

	got := batches[0].Rows
	assert.Equal(t, 3, got[0].Index, "01/03 08:00 primero")
	assert.Equal(t, 1, got[1].Index, "01/03 09:00 segundo")
	assert.Equal(t, 0, got[2].Index, "05/03 tercero")
	assert.Equal(t, 2, got[3].Index, "la fila sin fecha ordena de último")
}

func TestGroupIntoBatches_EstableConFechasIguales(t *testing.T) {
	rows := enrichAll(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Fecha: "??"},
		{Planta: "PL", Bodega: "1", Fecha: "??"},
		{Planta: "PL", Bodega: "1", Fecha: "??"},
	})
	batches := GroupIntoBatches(rows, "f.xlsx", "imp-1")
	require.Len(t, batches, 1)
	for i, row := range batches[0].Rows {
		assert.Equal(t, i, row.Index, "sin fechas, el orden del archivo se preserva")
	}
}
