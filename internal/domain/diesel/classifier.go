package diesel

import (
	"github.com/shopspring/decimal"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// Umbrales del clasificador. Son parte del contrato con los datos históricos:
// cambiarlos reclasificaría importaciones viejas.
var (
	// Una entrada sin unidad por más de 1000 L se asume recepción del proveedor.
	umbralRecepcionLitros = decimal.NewFromInt(1000)
	// Diferencia máxima tolerada entre litros y la cifra de validación de la fila.
	umbralDiscrepanciaLitros = decimal.NewFromInt(5)
	// Consumos en múltiplos exactos de 100 L huelen a ajuste manual redondeado.
	moduloAjusteRedondo = decimal.NewFromInt(100)
)

// ClassificationInput son los únicos hechos de la fila que el clasificador
// mira. No hay consultas externas: la clasificación es pura y local a la fila.
type ClassificationInput struct {
	Direction         string // Entrada | Salida, ya normalizada
	HasUnidad         bool
	Litros            *decimal.Decimal
	LitrosValidacion  *decimal.Decimal
	InventarioInicial *decimal.Decimal
}

// Classification es el resultado del clasificador.
type Classification struct {
	Category         entity.MovementCategory
	IsAdjustment     bool
	AdjustmentReason string
}

// classifierRule es una regla de la tabla de decisión. Las reglas se evalúan
// en orden y gana la primera que aplica.
type classifierRule struct {
	name    string
	matches func(in ClassificationInput) bool
	resolve func(in ClassificationInput) Classification
}

var classifierRules = []classifierRule{
	{
		// Entrada sin unidad ni litros pero con inventario inicial: apertura.
		name: "apertura_inventario",
		matches: func(in ClassificationInput) bool {
			return in.Direction == entity.DirectionEntrada && !in.HasUnidad &&
				in.Litros == nil && in.InventarioInicial != nil
		},
		resolve: func(ClassificationInput) Classification {
			return Classification{
				Category:         entity.CategoryInventoryOpening,
				IsAdjustment:     true,
				AdjustmentReason: entity.AdjustmentOpeningBalance,
			}
		},
	},
	{
		// Entrada grande sin unidad: recepción de combustible del proveedor.
		name: "recepcion_combustible",
		matches: func(in ClassificationInput) bool {
			return in.Direction == entity.DirectionEntrada && !in.HasUnidad &&
				in.Litros != nil && in.Litros.GreaterThan(umbralRecepcionLitros)
		},
		resolve: func(ClassificationInput) Classification {
			return Classification{Category: entity.CategoryFuelReceipt}
		},
	},
	{
		// Entrada pequeña sin unidad: corrección manual de inventario.
		name: "ajuste_entrada",
		matches: func(in ClassificationInput) bool {
			return in.Direction == entity.DirectionEntrada && !in.HasUnidad && in.Litros != nil
		},
		resolve: func(ClassificationInput) Classification {
			return Classification{
				Category:         entity.CategoryInventoryAdjustment,
				IsAdjustment:     true,
				AdjustmentReason: entity.AdjustmentManualCorrection,
			}
		},
	},
	{
		// Salida con unidad y litros: consumo de un equipo. Si la cifra de
		// validación no cuadra o los litros son múltiplo exacto de 100, se marca
		// como posible corrección, pero la categoría sigue siendo consumo.
		name: "consumo_equipo",
		matches: func(in ClassificationInput) bool {
			return in.Direction == entity.DirectionSalida && in.HasUnidad && in.Litros != nil
		},
		resolve: func(in ClassificationInput) Classification {
			c := Classification{Category: entity.CategoryAssetConsumption}
			if looksLikeCorrection(in) {
				c.IsAdjustment = true
				c.AdjustmentReason = entity.AdjustmentPossibleCorrection
			}
			return c
		},
	},
	{
		// Salida sin unidad: consumo sin asignar; el mapeo a un activo real es
		// un paso posterior fuera del núcleo.
		name: "consumo_sin_asignar",
		matches: func(in ClassificationInput) bool {
			return in.Direction == entity.DirectionSalida && !in.HasUnidad && in.Litros != nil
		},
		resolve: func(ClassificationInput) Classification {
			return Classification{
				Category:         entity.CategoryUnassignedConsumption,
				AdjustmentReason: entity.ReasonRequiresAssignment,
			}
		},
	},
}

// Classify asigna la categoría de movimiento a una fila usando solo sus
// propios campos. Total por construcción: si ninguna regla aplica, la fila cae
// en inventory_adjustment/unknown_pattern para que ninguna se pierda — ese
// default se muestra al operador como "requiere revisión", no como éxito.
func Classify(in ClassificationInput) Classification {
	for _, rule := range classifierRules {
		if rule.matches(in) {
			return rule.resolve(in)
		}
	}
	return Classification{
		Category:         entity.CategoryInventoryAdjustment,
		IsAdjustment:     true,
		AdjustmentReason: entity.AdjustmentUnknownPattern,
	}
}

// looksLikeCorrection aplica las heurísticas de corrección sobre un consumo:
// discrepancia > 5 L contra la cifra de validación, o litros múltiplo de 100.
func looksLikeCorrection(in ClassificationInput) bool {
	if in.LitrosValidacion != nil {
		if in.Litros.Sub(*in.LitrosValidacion).Abs().GreaterThan(umbralDiscrepanciaLitros) {
			return true
		}
	}
	return in.Litros.Mod(moduloAjusteRedondo).IsZero()
}
