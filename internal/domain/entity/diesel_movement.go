package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento tal como vienen en el archivo fuente.
const (
	DirectionEntrada = "Entrada"
	DirectionSalida  = "Salida"
)

// MovementCategory clasifica una línea del libro de diesel.
// Conjunto cerrado: toda fila recibe exactamente una categoría.
type MovementCategory string

const (
	CategoryInventoryOpening      MovementCategory = "inventory_opening"
	CategoryFuelReceipt           MovementCategory = "fuel_receipt"
	CategoryInventoryAdjustment   MovementCategory = "inventory_adjustment"
	CategoryAssetConsumption      MovementCategory = "asset_consumption"
	CategoryUnassignedConsumption MovementCategory = "unassigned_consumption"
)

// Razones de ajuste asignadas por el clasificador.
const (
	AdjustmentOpeningBalance     = "opening_balance"
	AdjustmentManualCorrection   = "manual_correction"
	AdjustmentPossibleCorrection = "possible_manual_correction"
	AdjustmentUnknownPattern     = "unknown_pattern"
	ReasonRequiresAssignment     = "requires_asset_assignment"
)

// RawMovement es una línea del export de movimientos de diesel tal cual se leyó
// (una fila de la hoja de cálculo). Todos los campos de valor son texto: el
// parseo permisivo ocurre en el dominio, no en la lectura. No se muta después
// de creada.
type RawMovement struct {
	Planta            string // código de planta/obra
	Bodega            string // número de bodega de combustible
	Tipo              string // "Entrada" | "Salida" (otro valor se coerce a Salida)
	Unidad            string // código libre de equipo/unidad; puede venir vacío
	Litros            string // cantidad de litros del movimiento
	LitrosValidacion  string // cifra secundaria de validación de litros
	Horometro         string // lectura de horómetro si la fila la trae
	Odometro          string // lectura de odómetro (km) si la fila la trae
	InventarioInicial string // solo poblado en filas de apertura
	Inventario        string // inventario reportado en bodega tras el movimiento
	Fecha             string // DD/MM/YY o DD/MM/YYYY
	Hora              string // texto libre, ej. "14:30"
	Responsable       string // quien entrega
	Operador          string // quien recibe / opera la unidad
}

// EnrichedMovement es una RawMovement ya normalizada y clasificada. La crea el
// enricher una sola vez; los campos de resolución de activos (AssetID) los
// llena después el paso de mapeo, el resto no se re-deriva.
type EnrichedMovement struct {
	Raw      RawMovement
	Index    int    // índice base cero dentro del archivo fuente
	ImportID string // identificador de la importación que la originó

	// Normalización
	Fecha             *time.Time // nil si la fecha no parseó; no aborta el proceso
	SortKey           string     // clave cronológica estable (ver enricher)
	Direction         string     // Entrada | Salida, ya normalizada
	DirectionCoerced  bool       // true si el valor original no era reconocible
	Litros            *decimal.Decimal
	LitrosValidacion  *decimal.Decimal
	InventarioInicial *decimal.Decimal
	Inventario        *decimal.Decimal

	// Clasificación (pura, local a la fila; nunca se re-deriva)
	Category         MovementCategory
	IsAdjustment     bool
	AdjustmentReason string

	// Discrepancia entre litros y la cifra de validación de la misma fila
	ValidationDiscrepancy bool
	DiscrepancyLitros     decimal.Decimal

	// Resolución de activos: la llena el colaborador de mapeo, no el núcleo
	RequiresAssetMapping bool
	AssetID              string

	Reading *MeterReading // esqueleto creado por el enricher; deltas los llena el detector
}

// HasUnidad indica si la fila trae código de unidad/equipo.
func (m *EnrichedMovement) HasUnidad() bool {
	return m.Raw.Unidad != ""
}
