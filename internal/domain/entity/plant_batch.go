package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un PlantBatch. Una vez conciliado, el lote solo cambia de estado.
const (
	BatchStatusPendiente  = "pendiente"  // recién agrupado, sin conciliar
	BatchStatusConciliado = "conciliado" // estadísticas e inventario calculados
	BatchStatusAceptado   = "aceptado"   // aceptado y persistido por el operador
	BatchStatusRechazado  = "rechazado"  // descartado por el operador
)

// PlantBatch es la unidad de conciliación: todos los movimientos de una pareja
// exacta (planta, bodega) dentro de una importación. Invariante:
// FinalInventoryComputed = InitialInventory + TotalLitrosIn − TotalLitrosOut,
// siempre recalculado, nunca copiado de otra fuente.
type PlantBatch struct {
	ID         string
	ImportID   string
	Planta     string
	Bodega     string
	SourceFile string
	Status     string

	Rows []*EnrichedMovement // orden cronológico estable

	// Conciliación de inventario
	InitialInventory       decimal.Decimal
	TotalLitrosIn          decimal.Decimal
	TotalLitrosOut         decimal.Decimal
	FinalInventoryComputed decimal.Decimal
	FinalInventoryProvided *decimal.Decimal // inventario reportado en la última fila; nil si no vino
	InventoryDiscrepancy   decimal.Decimal  // |computado − reportado|; señal para el operador, no se autocorrige

	// Estadísticas
	MovementCounts     map[MovementCategory]int
	UniqueAssets       []string // códigos de unidad vistos, en orden de aparición
	UnmappedAssets     []string // subconjunto pendiente de mapear a activos reales
	AssetsWithReadings []string // subconjunto con al menos una lectura de medidor
	Readings           []*MeterReading

	// Rollup de validaciones de filas y lecturas (nunca se calcula aparte)
	ValidationWarnings int
	ValidationErrors   int

	DateFrom *time.Time // mínima fecha parseada del lote; nil si ninguna parseó
	DateTo   *time.Time

	CreatedAt time.Time
}

// NetChange devuelve el cambio neto de litros del lote.
func (b *PlantBatch) NetChange() decimal.Decimal {
	return b.TotalLitrosIn.Sub(b.TotalLitrosOut)
}
