package diesel

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

func litros(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func TestClassify_AperturaDeInventario(t *testing.T) {
	c := Classify(ClassificationInput{
		Direction:         entity.DirectionEntrada,
		InventarioInicial: litros(1000),
	})
	assert.Equal(t, entity.CategoryInventoryOpening, c.Category)
	assert.True(t, c.IsAdjustment)
	assert.Equal(t, entity.AdjustmentOpeningBalance, c.AdjustmentReason)
}

func TestClassify_RecepcionDeCombustible(t *testing.T) {
	c := Classify(ClassificationInput{
		Direction: entity.DirectionEntrada,
		Litros:    litros(5000),
	})
	assert.Equal(t, entity.CategoryFuelReceipt, c.Category)
	assert.False(t, c.IsAdjustment, "una recepción no es un ajuste")
}

func TestClassify_EntradaPequenaEsAjuste(t *testing.T) {
	// 1000 L exactos NO superan el umbral: sigue siendo ajuste
	for _, n := range []int64{50, 999, 1000} {
		c := Classify(ClassificationInput{
			Direction: entity.DirectionEntrada,
			Litros:    litros(n),
		})
		assert.Equal(t, entity.CategoryInventoryAdjustment, c.Category, "litros=%d", n)
		assert.Equal(t, entity.AdjustmentManualCorrection, c.AdjustmentReason)
	}
}

func TestClassify_ConsumoDeEquipo(t *testing.T) {
	c := Classify(ClassificationInput{
		Direction:        entity.DirectionSalida,
		HasUnidad:        true,
		Litros:           litros(187),
		LitrosValidacion: litros(187),
	})
	assert.Equal(t, entity.CategoryAssetConsumption, c.Category)
	assert.False(t, c.IsAdjustment)
}

func TestClassify_ConsumoConDiscrepanciaEsPosibleCorreccion(t *testing.T) {
	c := Classify(ClassificationInput{
		Direction:        entity.DirectionSalida,
		HasUnidad:        true,
		Litros:           litros(187),
		LitrosValidacion: litros(170), // difiere por más de 5 L
	})
	assert.Equal(t, entity.CategoryAssetConsumption, c.Category, "la categoría sigue siendo consumo")
	assert.True(t, c.IsAdjustment)
	assert.Equal(t, entity.AdjustmentPossibleCorrection, c.AdjustmentReason)
}

func TestClassify_ConsumoRedondoEsPosibleCorreccion(t *testing.T) {
	// Múltiplo exacto de 100 con validación cuadrada: la regla de consumo gana
	// igual, solo se marca como posible corrección.
	c := Classify(ClassificationInput{
		Direction:        entity.DirectionSalida,
		HasUnidad:        true,
		Litros:           litros(300),
		LitrosValidacion: litros(300),
	})
	assert.Equal(t, entity.CategoryAssetConsumption, c.Category)
	assert.True(t, c.IsAdjustment)
	assert.Equal(t, entity.AdjustmentPossibleCorrection, c.AdjustmentReason)
}

func TestClassify_ConsumoSinAsignar(t *testing.T) {
	c := Classify(ClassificationInput{
		Direction: entity.DirectionSalida,
		Litros:    litros(80),
	})
	assert.Equal(t, entity.CategoryUnassignedConsumption, c.Category)
	assert.Equal(t, entity.ReasonRequiresAssignment, c.AdjustmentReason)
}

func TestClassify_PatronDesconocidoNuncaSePierde(t *testing.T) {
	// Salida sin unidad y sin litros no calza en ninguna regla específica:
	// cae en el ajuste por patrón desconocido para que el operador la revise.
	c := Classify(ClassificationInput{Direction: entity.DirectionSalida})
	assert.Equal(t, entity.CategoryInventoryAdjustment, c.Category)
	assert.Equal(t, entity.AdjustmentUnknownPattern, c.AdjustmentReason)
}

func TestClassify_EsTotal(t *testing.T) {
	valid := map[entity.MovementCategory]bool{
		entity.CategoryInventoryOpening:      true,
		entity.CategoryFuelReceipt:           true,
		entity.CategoryInventoryAdjustment:   true,
		entity.CategoryAssetConsumption:      true,
		entity.CategoryUnassignedConsumption: true,
	}
	inputs := []ClassificationInput{
		{},
		{Direction: entity.DirectionEntrada},
		{Direction: entity.DirectionSalida},
		{Direction: entity.DirectionEntrada, HasUnidad: true, Litros: litros(10)},
		{Direction: entity.DirectionSalida, HasUnidad: true},
		{Direction: entity.DirectionEntrada, InventarioInicial: litros(0)},
	}
	for i, in := range inputs {
		c := Classify(in)
		assert.True(t, valid[c.Category], "caso %d: categoría %q fuera del conjunto cerrado", i, c.Category)
	}
}
