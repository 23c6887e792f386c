package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/mantenpro/mantenpro-api/internal/application/dto"
	"github.com/mantenpro/mantenpro-api/internal/domain"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
)

// PlantUseCase CRUD de plantas/obras.
type PlantUseCase struct {
	repo repository.PlantRepository
}

// NewPlantUseCase construye el caso de uso.
func NewPlantUseCase(repo repository.PlantRepository) *PlantUseCase {
	return &PlantUseCase{repo: repo}
}

// Create registra una planta nueva. El código debe ser único: es la llave con
// la que la planta aparece en los exports del libro de diesel.
func (uc *PlantUseCase) Create(in dto.CreatePlantRequest) (*entity.Plant, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	plant := &entity.Plant{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Location:  in.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// GetByID obtiene una planta.
func (uc *PlantUseCase) GetByID(id string) (*entity.Plant, error) {
	plant, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, domain.ErrNotFound
	}
	return plant, nil
}

// List lista plantas con paginación.
func (uc *PlantUseCase) List(page dto.PageRequest) ([]*entity.Plant, error) {
	page.DefaultPage()
	return uc.repo.List(page.Limit, page.Offset)
}
