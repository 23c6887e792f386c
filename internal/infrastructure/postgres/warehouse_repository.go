package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mantenpro/mantenpro-api/internal/domain"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, plant_id, plant_code, number, name, capacity_litros, current_inventory, created_at, updated_at`

// Create persiste una nueva bodega de combustible.
func (r *WarehouseRepo) Create(wh *entity.Warehouse) error {
	query := `
		INSERT INTO fuel_warehouses (` + warehouseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		wh.ID, wh.PlantID, wh.PlantCode, wh.Number, wh.Name,
		wh.CapacityLitros, wh.CurrentInventory, wh.CreatedAt, wh.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM fuel_warehouses WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByPlantAndNumber ubica la bodega como aparece en el libro de diesel.
func (r *WarehouseRepo) GetByPlantAndNumber(plantCode, number string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM fuel_warehouses WHERE plant_code = $1 AND number = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, plantCode, number))
}

func (r *WarehouseRepo) scanOne(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(
		&w.ID, &w.PlantID, &w.PlantCode, &w.Number, &w.Name,
		&w.CapacityLitros, &w.CurrentInventory, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// ListByPlant lista bodegas por planta con paginación.
func (r *WarehouseRepo) ListByPlant(plantID string, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM fuel_warehouses WHERE plant_id = $1 ORDER BY number LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, plantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(
			&w.ID, &w.PlantID, &w.PlantCode, &w.Number, &w.Name,
			&w.CapacityLitros, &w.CurrentInventory, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Update actualiza una bodega existente.
func (r *WarehouseRepo) Update(wh *entity.Warehouse) error {
	query := `
		UPDATE fuel_warehouses SET name = $2, capacity_litros = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		wh.ID, wh.Name, wh.CapacityLitros, wh.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// UpdateInventory fija el inventario actual de la bodega (al aceptar un lote).
func (r *WarehouseRepo) UpdateInventory(id string, inventory decimal.Decimal) error {
	query := `UPDATE fuel_warehouses SET current_inventory = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, inventory, time.Now())
	if err != nil {
		return fmt.Errorf("update warehouse inventory: %w", err)
	}
	return nil
}
