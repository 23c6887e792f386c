package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse representa una bodega de combustible dentro de una planta.
// Number es el número con el que la bodega aparece en los exports del libro
// de diesel; CurrentInventory se actualiza solo al aceptar un lote conciliado.
type Warehouse struct {
	ID               string
	PlantID          string
	PlantCode        string
	Number           string
	Name             string
	CapacityLitros   decimal.Decimal
	CurrentInventory decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
