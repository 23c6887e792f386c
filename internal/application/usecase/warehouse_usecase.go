package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/mantenpro/mantenpro-api/internal/application/dto"
	"github.com/mantenpro/mantenpro-api/internal/domain"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
)

// WarehouseUseCase CRUD de bodegas de combustible.
type WarehouseUseCase struct {
	repo      repository.WarehouseRepository
	plantRepo repository.PlantRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, plantRepo repository.PlantRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, plantRepo: plantRepo}
}

// Create registra una bodega nueva dentro de una planta. La pareja
// (planta, número) debe ser única: es la llave con la que la bodega aparece en
// el libro de diesel.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	if in.PlantID == "" || in.Number == "" {
		return nil, domain.ErrInvalidInput
	}
	plant, err := uc.plantRepo.GetByID(in.PlantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.GetByPlantAndNumber(plant.Code, in.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	wh := &entity.Warehouse{
		ID:             uuid.New().String(),
		PlantID:        plant.ID,
		PlantCode:      plant.Code,
		Number:         in.Number,
		Name:           in.Name,
		CapacityLitros: in.CapacityLitros,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(wh); err != nil {
		return nil, err
	}
	return wh, nil
}

// GetByID obtiene una bodega.
func (uc *WarehouseUseCase) GetByID(id string) (*entity.Warehouse, error) {
	wh, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return wh, nil
}

// ListByPlant lista las bodegas de una planta.
func (uc *WarehouseUseCase) ListByPlant(plantID string, page dto.PageRequest) ([]*entity.Warehouse, error) {
	page.DefaultPage()
	return uc.repo.ListByPlant(plantID, page.Limit, page.Offset)
}
