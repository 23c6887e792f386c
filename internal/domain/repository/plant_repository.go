package repository

import "github.com/mantenpro/mantenpro-api/internal/domain/entity"

// PlantRepository define el puerto de persistencia para Plant (DIP).
type PlantRepository interface {
	Create(plant *entity.Plant) error
	GetByID(id string) (*entity.Plant, error)
	GetByCode(code string) (*entity.Plant, error)
	List(limit, offset int) ([]*entity.Plant, error)
	Update(plant *entity.Plant) error
}
