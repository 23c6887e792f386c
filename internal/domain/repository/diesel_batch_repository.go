package repository

import (
	"time"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// BatchFilter filtros para listar lotes de diesel.
type BatchFilter struct {
	Planta   string
	Bodega   string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// DieselBatchRepository define el puerto de persistencia para lotes conciliados
// del libro de diesel. Save persiste el lote completo (cabecera, movimientos y
// lecturas); la transaccionalidad la aporta el TxRunner de la capa de
// aplicación.
type DieselBatchRepository interface {
	Save(batch *entity.PlantBatch) error
	GetByID(id string) (*entity.PlantBatch, error)
	List(filter BatchFilter) ([]*entity.PlantBatch, error)
	UpdateStatus(id, status string) error
}
