package diesel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

func TestProcessImport_AperturaRecepcionYConsumo(t *testing.T) {
	rows := []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Entrada", InventarioInicial: "1000", Fecha: "01/03/25", Hora: "06:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Entrada", Litros: "5000", Fecha: "01/03/25", Hora: "07:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "U1", Litros: "200", Horometro: "10", Fecha: "01/03/25", Hora: "09:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "U1", Litros: "200", Horometro: "60", Fecha: "04/03/25", Hora: "09:00"},
	}

	batches := ProcessImport(rows, "marzo.xlsx", "imp-1")
	require.Len(t, batches, 1)
	b := batches[0]

	assert.Equal(t, "1000", b.InitialInventory.String())
	assert.Equal(t, "5000", b.TotalLitrosIn.String())
	assert.Equal(t, "400", b.TotalLitrosOut.String())
	assert.Equal(t, "5600", b.FinalInventoryComputed.String())
	assert.Equal(t, "4600", b.NetChange().String())

	require.Len(t, b.Readings, 2)
	segunda := b.Readings[1]
	require.NotNil(t, segunda.HorometroDelta)
	assert.InDelta(t, 50, *segunda.HorometroDelta, 0.001)
	assert.False(t, segunda.HasWarnings)
	assert.False(t, segunda.HasErrors)

	assert.Equal(t, entity.BatchStatusConciliado, b.Status)
	assert.Zero(t, b.ValidationErrors)
}

func TestProcessImport_NingunaFilaSePierde(t *testing.T) {
	// Filas con basura de todo tipo: fechas rotas, litros no numéricos,
	// dirección con typo. Todas deben quedar clasificadas en algún lote.
	rows := []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Entrada", Litros: "???", Fecha: "99/99/99"},
		{Planta: "PL", Bodega: "1", Tipo: "Sallida", Litros: "abc"},
		{Planta: "PL", Bodega: "2", Tipo: "", Fecha: ""},
		{Planta: "", Bodega: "", Tipo: "Salida", Litros: "10"},
	}
	batches := ProcessImport(rows, "sucio.xlsx", "imp-2")

	total := 0
	for _, b := range batches {
		total += len(b.Rows)
		for _, row := range b.Rows {
			assert.NotEmpty(t, row.Category, "toda fila queda clasificada")
		}
	}
	assert.Equal(t, len(rows), total)
}

func TestProcessImport_LotesIndependientes(t *testing.T) {
	// Los deltas de medidor nunca cruzan lotes: la misma unidad en dos bodegas
	// arranca de cero en cada una.
	rows := []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "A1", Litros: "80", Horometro: "100", Fecha: "01/03/25"},
		{Planta: "PL", Bodega: "2", Tipo: "Salida", Unidad: "A1", Litros: "80", Horometro: "50", Fecha: "02/03/25"},
	}
	batches := ProcessImport(rows, "dos.xlsx", "imp-3")
	require.Len(t, batches, 2)
	for _, b := range batches {
		require.Len(t, b.Readings, 1)
		assert.Nil(t, b.Readings[0].HorometroDelta, "primera lectura del lote: sin delta")
		assert.False(t, b.Readings[0].HasErrors)
	}
}
