package repository

import "github.com/mantenpro/mantenpro-api/internal/domain/entity"

// AssetRepository define el puerto de persistencia para equipos/unidades (DIP).
type AssetRepository interface {
	Create(asset *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	// FindByUnitCode busca el activo registrado bajo un código de unidad del
	// libro de diesel. nil, nil si ningún activo reclama ese código.
	FindByUnitCode(plantID, code string) (*entity.Asset, error)
	ListByPlant(plantID string, limit, offset int) ([]*entity.Asset, error)
	Update(asset *entity.Asset) error
}
