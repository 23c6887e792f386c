package dieselimport

import (
	"context"
	"io"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
)

// MovementFileReader lee un export del libro de diesel (xlsx) y devuelve las
// filas crudas en el orden del archivo. La implementación vive en
// infraestructura.
type MovementFileReader interface {
	Read(r io.Reader, sheet string) ([]entity.RawMovement, error)
}

// TxRunner ejecuta el callback dentro de una transacción: o se persisten todos
// los lotes de la importación con sus inventarios de bodega, o ninguno. Así el
// inventario computado y el reportado de una bodega nunca quedan a medias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.DieselBatchRepository,
		warehouseRepo repository.WarehouseRepository,
	) error) error
}
