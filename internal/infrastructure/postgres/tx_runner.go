package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mantenpro/mantenpro-api/internal/application/dieselimport"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
)

var _ dieselimport.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Confirmar una importación persiste lotes e inventarios
// de bodega como una sola unidad.
func (r *TxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.DieselBatchRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batchRepo := NewDieselBatchRepository(tx)
	warehouseRepo := NewWarehouseRepository(tx)

	if err := fn(batchRepo, warehouseRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
