package report

import (
	"context"

	"github.com/mantenpro/mantenpro-api/internal/domain"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
)

// BatchPDFGenerator genera el reporte PDF de conciliación de un lote.
// La implementación (Maroto) vive en infraestructura.
type BatchPDFGenerator interface {
	GenerateBatchPDF(ctx context.Context, batch *entity.PlantBatch) ([]byte, error)
}

// BatchReportUseCase produce el reporte de conciliación que los supervisores
// reciben por correo o descargan desde la pantalla del lote.
type BatchReportUseCase struct {
	batchRepo repository.DieselBatchRepository
	generator BatchPDFGenerator
}

// NewBatchReportUseCase construye el caso de uso.
func NewBatchReportUseCase(batchRepo repository.DieselBatchRepository, generator BatchPDFGenerator) *BatchReportUseCase {
	return &BatchReportUseCase{batchRepo: batchRepo, generator: generator}
}

// GenerateByBatchID busca el lote y genera el PDF.
func (uc *BatchReportUseCase) GenerateByBatchID(ctx context.Context, batchID string) ([]byte, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GenerateBatchPDF(ctx, batch)
}
