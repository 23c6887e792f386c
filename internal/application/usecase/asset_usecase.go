package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/mantenpro/mantenpro-api/internal/application/dto"
	"github.com/mantenpro/mantenpro-api/internal/domain"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
)

// AssetUseCase CRUD de equipos/unidades que consumen diesel.
type AssetUseCase struct {
	repo      repository.AssetRepository
	plantRepo repository.PlantRepository
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(repo repository.AssetRepository, plantRepo repository.PlantRepository) *AssetUseCase {
	return &AssetUseCase{repo: repo, plantRepo: plantRepo}
}

// Create registra un equipo. Cada código de unidad debe quedar libre: dos
// activos de la misma planta no pueden reclamar el mismo código del libro.
func (uc *AssetUseCase) Create(in dto.CreateAssetRequest) (*entity.Asset, error) {
	if in.PlantID == "" || in.Name == "" || len(in.UnitCodes) == 0 {
		return nil, domain.ErrInvalidInput
	}
	plant, err := uc.plantRepo.GetByID(in.PlantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, domain.ErrNotFound
	}
	for _, code := range in.UnitCodes {
		taken, err := uc.repo.FindByUnitCode(in.PlantID, code)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	asset := &entity.Asset{
		ID:        uuid.New().String(),
		PlantID:   in.PlantID,
		Name:      in.Name,
		UnitCodes: in.UnitCodes,
		MeterType: in.MeterType,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// GetByID obtiene un equipo.
func (uc *AssetUseCase) GetByID(id string) (*entity.Asset, error) {
	asset, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	return asset, nil
}

// ListByPlant lista los equipos de una planta.
func (uc *AssetUseCase) ListByPlant(plantID string, page dto.PageRequest) ([]*entity.Asset, error) {
	page.DefaultPage()
	return uc.repo.ListByPlant(plantID, page.Limit, page.Offset)
}
