package dieselimport

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mantenpro/mantenpro-api/internal/application/dto"
	"github.com/mantenpro/mantenpro-api/internal/domain"
	"github.com/mantenpro/mantenpro-api/internal/domain/diesel"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
	"github.com/mantenpro/mantenpro-api/pkg/logger"
)

// ImportUseCase orquesta la importación del libro de diesel: leer el archivo,
// correr el núcleo de conciliación, resolver unidades contra los activos
// registrados y, al confirmar, persistir cada lote en una sola transacción.
//
// El núcleo (internal/domain/diesel) es puro; este caso de uso es quien hace
// todo el I/O alrededor: lee referencia antes de invocarlo y persiste su
// salida después.
type ImportUseCase struct {
	reader        MovementFileReader
	txRunner      TxRunner
	plantRepo     repository.PlantRepository
	assetRepo     repository.AssetRepository
	warehouseRepo repository.WarehouseRepository
	batchRepo     repository.DieselBatchRepository
	log           *logger.Logger
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(
	reader MovementFileReader,
	txRunner TxRunner,
	plantRepo repository.PlantRepository,
	assetRepo repository.AssetRepository,
	warehouseRepo repository.WarehouseRepository,
	batchRepo repository.DieselBatchRepository,
	log *logger.Logger,
) *ImportUseCase {
	return &ImportUseCase{
		reader:        reader,
		txRunner:      txRunner,
		plantRepo:     plantRepo,
		assetRepo:     assetRepo,
		warehouseRepo: warehouseRepo,
		batchRepo:     batchRepo,
		log:           log,
	}
}

// Preview corre el pipeline completo sobre el archivo y devuelve los lotes
// conciliados sin persistir nada. Es la vista que el operador revisa antes de
// confirmar.
func (uc *ImportUseCase) Preview(ctx context.Context, file io.Reader, filename, sheet string) (*dto.ImportPreviewDTO, error) {
	importID, batches, err := uc.process(ctx, file, filename, sheet)
	if err != nil {
		return nil, err
	}
	out := &dto.ImportPreviewDTO{ImportID: importID, File: filename}
	for _, b := range batches {
		out.Batches = append(out.Batches, dto.NewBatchSummaryDTO(b))
	}
	return out, nil
}

// Confirm vuelve a correr el pipeline sobre el archivo y persiste todos los
// lotes en UNA transacción: cabeceras, movimientos, lecturas y el inventario
// actual de cada bodega conocida. Si algo falla no queda nada a medias.
func (uc *ImportUseCase) Confirm(ctx context.Context, file io.Reader, filename, sheet string) (*dto.ImportResultDTO, error) {
	importID, batches, err := uc.process(ctx, file, filename, sheet)
	if err != nil {
		return nil, err
	}

	rowsProcessed := 0
	err = uc.txRunner.Run(ctx, func(
		batchRepo repository.DieselBatchRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		for _, b := range batches {
			b.Status = entity.BatchStatusAceptado
			if err := batchRepo.Save(b); err != nil {
				return fmt.Errorf("guardar lote %s/%s: %w", b.Planta, b.Bodega, err)
			}
			rowsProcessed += len(b.Rows)

			// El inventario de la bodega se fija al computado del lote; si la
			// bodega no está registrada todavía, el lote queda guardado igual y
			// la bodega se crea después desde el CRUD.
			wh, err := warehouseRepo.GetByPlantAndNumber(b.Planta, b.Bodega)
			if err != nil {
				return err
			}
			if wh != nil {
				if err := warehouseRepo.UpdateInventory(wh.ID, b.FinalInventoryComputed); err != nil {
					return fmt.Errorf("actualizar inventario bodega %s: %w", wh.ID, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("import_id", importID).
		Str("archivo", filename).
		Int("lotes", len(batches)).
		Int("filas", rowsProcessed).
		Msg("importación de diesel confirmada")

	out := &dto.ImportResultDTO{
		ImportID:      importID,
		File:          filename,
		BatchesSaved:  len(batches),
		RowsProcessed: rowsProcessed,
	}
	for _, b := range batches {
		out.Batches = append(out.Batches, dto.NewBatchSummaryDTO(b))
	}
	return out, nil
}

// process lee el archivo, corre el núcleo y resuelve el mapeo de activos.
func (uc *ImportUseCase) process(ctx context.Context, file io.Reader, filename, sheet string) (string, []*entity.PlantBatch, error) {
	rows, err := uc.reader.Read(file, sheet)
	if err != nil {
		return "", nil, fmt.Errorf("leer archivo %s: %w", filename, err)
	}
	if len(rows) == 0 {
		return "", nil, domain.ErrEmptyImport
	}

	importID := uuid.New().String()
	batches := diesel.ProcessImport(rows, filename, importID)
	uc.resolveAssets(ctx, batches)

	uc.log.Debug().
		Str("import_id", importID).
		Int("filas", len(rows)).
		Int("lotes", len(batches)).
		Msg("libro de diesel procesado")
	return importID, batches, nil
}
