package diesel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// buildBatch agrupa y devuelve el único lote de las filas dadas, sin conciliar.
func buildBatch(t *testing.T, raws []entity.RawMovement) *entity.PlantBatch {
	t.Helper()
	batches := GroupIntoBatches(enrichAll(t, raws), "test.xlsx", "imp-1")
	require.Len(t, batches, 1)
	return batches[0]
}

func TestReconcile_IdentidadDeInventario(t *testing.T) {
	b := buildBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Entrada", InventarioInicial: "1000", Fecha: "01/03/25", Hora: "07:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Entrada", Litros: "5000", Fecha: "01/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "U1", Litros: "200", Fecha: "02/03/25", Hora: "09:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "U1", Litros: "200", Fecha: "03/03/25", Hora: "09:00", Inventario: "5600"},
	})
	Reconcile(b)

	assert.Equal(t, "1000", b.InitialInventory.String())
	assert.Equal(t, "5000", b.TotalLitrosIn.String())
	assert.Equal(t, "400", b.TotalLitrosOut.String())
	assert.Equal(t, "5600", b.FinalInventoryComputed.String())

	// Invariante: computado = inicial + entradas − salidas, exacto
	assert.True(t, b.FinalInventoryComputed.Equal(
		b.InitialInventory.Add(b.TotalLitrosIn).Sub(b.TotalLitrosOut)))

	require.NotNil(t, b.FinalInventoryProvided)
	assert.Equal(t, "5600", b.FinalInventoryProvided.String())
	assert.True(t, b.InventoryDiscrepancy.IsZero())
	assert.Equal(t, entity.BatchStatusConciliado, b.Status)
}

func TestReconcile_DiscrepanciaConInventarioReportado(t *testing.T) {
	b := buildBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Entrada", InventarioInicial: "500", Fecha: "01/03/25", Hora: "07:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Litros: "100", Fecha: "02/03/25", Hora: "08:00", Inventario: "350"},
	})
	Reconcile(b)

	assert.Equal(t, "400", b.FinalInventoryComputed.String())
	require.NotNil(t, b.FinalInventoryProvided)
	// La discrepancia se reporta, no se corrige
	assert.Equal(t, "50", b.InventoryDiscrepancy.String())
	assert.Equal(t, "400", b.FinalInventoryComputed.String(), "el computado no se toca")
}

func TestReconcile_SinAperturaArrancaEnCero(t *testing.T) {
	b := buildBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Entrada", Litros: "2000", Fecha: "01/03/25"},
	})
	Reconcile(b)
	assert.True(t, b.InitialInventory.IsZero())
	assert.Equal(t, "2000", b.FinalInventoryComputed.String())
}

func TestReconcile_AperturaDuplicadaGanaLaPrimera(t *testing.T) {
	b := buildBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Entrada", InventarioInicial: "1000", Fecha: "01/03/25", Hora: "07:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Entrada", InventarioInicial: "9999", Fecha: "01/03/25", Hora: "08:00"},
	})
	Reconcile(b)

	assert.Equal(t, "1000", b.InitialInventory.String(), "gana la primera apertura")
	assert.GreaterOrEqual(t, b.ValidationWarnings, 1, "la apertura duplicada se advierte")
}

func TestReconcile_TodasLasSalidasCuentan(t *testing.T) {
	// TotalLitrosOut suma todas las Salidas sin importar la categoría:
	// consumo con unidad, sin asignar, y la dirección coercida.
	b := buildBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "U1", Litros: "100", Fecha: "01/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Litros: "50", Fecha: "01/03/25", Hora: "09:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salda", Litros: "25", Fecha: "01/03/25", Hora: "10:00"},
	})
	Reconcile(b)

	assert.Equal(t, "175", b.TotalLitrosOut.String())
	assert.GreaterOrEqual(t, b.ValidationWarnings, 1, "la coerción de dirección se advierte")
}

func TestReconcile_ConteosYActivos(t *testing.T) {
	b := buildBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Entrada", InventarioInicial: "100", Fecha: "01/03/25", Hora: "06:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Entrada", Litros: "4000", Fecha: "01/03/25", Hora: "07:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "EX-02", Litros: "120", Horometro: "1500", Fecha: "01/03/25", Hora: "08:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Unidad: "VQ-11", Litros: "90", Fecha: "01/03/25", Hora: "09:00"},
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Litros: "30", Fecha: "01/03/25", Hora: "10:00"},
	})
	Reconcile(b)

	assert.Equal(t, 1, b.MovementCounts[entity.CategoryInventoryOpening])
	assert.Equal(t, 1, b.MovementCounts[entity.CategoryFuelReceipt])
	assert.Equal(t, 2, b.MovementCounts[entity.CategoryAssetConsumption])
	assert.Equal(t, 1, b.MovementCounts[entity.CategoryUnassignedConsumption])

	assert.Equal(t, []string{"EX-02", "VQ-11"}, b.UniqueAssets)
	assert.Equal(t, []string{"EX-02", "VQ-11"}, b.UnmappedAssets, "nada está mapeado aún")
	assert.Equal(t, []string{"EX-02"}, b.AssetsWithReadings, "solo EX-02 trae medidor")
	require.Len(t, b.Readings, 1)

	require.NotNil(t, b.DateFrom)
	require.NotNil(t, b.DateTo)
	assert.Equal(t, *fecha(2025, 3, 1), *b.DateFrom)
	assert.Equal(t, *fecha(2025, 3, 1), *b.DateTo)
}

func TestReconcile_SinFechasElRangoEsNil(t *testing.T) {
	b := buildBatch(t, []entity.RawMovement{
		{Planta: "PL", Bodega: "1", Tipo: "Salida", Litros: "10", Fecha: "??"},
	})
	Reconcile(b)
	assert.Nil(t, b.DateFrom)
	assert.Nil(t, b.DateTo)
}
