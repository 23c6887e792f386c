package repository

import (
	"github.com/shopspring/decimal"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para bodegas de combustible (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	// GetByPlantAndNumber ubica la bodega como aparece en el libro de diesel:
	// código de planta + número de bodega.
	GetByPlantAndNumber(plantCode, number string) (*entity.Warehouse, error)
	ListByPlant(plantID string, limit, offset int) ([]*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	// UpdateInventory fija el inventario actual de la bodega (al aceptar un lote).
	UpdateInventory(id string, inventory decimal.Decimal) error
}
