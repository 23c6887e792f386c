package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mantenpro/mantenpro-api/internal/domain"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL.
// Los alias de unidad se guardan como text[] para poder buscar con ANY.
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador de persistencia para activos.
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

const assetColumns = `id, plant_id, name, unit_codes, meter_type, active, created_at, updated_at`

// Create persiste un activo nuevo.
func (r *AssetRepo) Create(asset *entity.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.PlantID, asset.Name, asset.UnitCodes,
		asset.MeterType, asset.Active, asset.CreatedAt, asset.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID.
func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// FindByUnitCode busca el activo de la planta registrado bajo un código de
// unidad del libro de diesel. nil, nil si ningún activo reclama el código.
func (r *AssetRepo) FindByUnitCode(plantID, code string) (*entity.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets WHERE plant_id = $1 AND $2 = ANY(unit_codes) AND active`
	return r.scanOne(r.q.QueryRow(context.Background(), query, plantID, code))
}

func (r *AssetRepo) scanOne(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	err := row.Scan(
		&a.ID, &a.PlantID, &a.Name, &a.UnitCodes,
		&a.MeterType, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return &a, nil
}

// ListByPlant lista activos de una planta con paginación.
func (r *AssetRepo) ListByPlant(plantID string, limit, offset int) ([]*entity.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets WHERE plant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, plantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		var a entity.Asset
		if err := rows.Scan(
			&a.ID, &a.PlantID, &a.Name, &a.UnitCodes,
			&a.MeterType, &a.Active, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update actualiza un activo existente (incluye los alias de unidad).
func (r *AssetRepo) Update(asset *entity.Asset) error {
	query := `
		UPDATE assets SET name = $2, unit_codes = $3, meter_type = $4, active = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		asset.ID, asset.Name, asset.UnitCodes, asset.MeterType, asset.Active, asset.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return nil
}
