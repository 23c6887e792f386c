package dieselimport

import (
	"github.com/mantenpro/mantenpro-api/internal/application/dto"
	"github.com/mantenpro/mantenpro-api/internal/domain"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
)

// BatchQueryUseCase consultas sobre lotes ya persistidos: listado para la
// pantalla de historial y detalle con filas y lecturas.
type BatchQueryUseCase struct {
	batchRepo repository.DieselBatchRepository
}

// NewBatchQueryUseCase construye el caso de uso.
func NewBatchQueryUseCase(batchRepo repository.DieselBatchRepository) *BatchQueryUseCase {
	return &BatchQueryUseCase{batchRepo: batchRepo}
}

// List lista resúmenes de lote según el filtro.
func (uc *BatchQueryUseCase) List(filter repository.BatchFilter) ([]dto.BatchSummaryDTO, error) {
	batches, err := uc.batchRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchSummaryDTO, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.NewBatchSummaryDTO(b))
	}
	return out, nil
}

// GetByID devuelve el detalle completo de un lote.
func (uc *BatchQueryUseCase) GetByID(id string) (*dto.BatchDetailDTO, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	detail := dto.NewBatchDetailDTO(batch)
	return &detail, nil
}

// Reject anula un lote aceptado. El inventario de bodega no se revierte
// automáticamente: eso lo decide el operador con la siguiente importación.
func (uc *BatchQueryUseCase) Reject(id string) error {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	if batch.Status == entity.BatchStatusRechazado {
		return domain.ErrConflict
	}
	return uc.batchRepo.UpdateStatus(id, entity.BatchStatusRechazado)
}
