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

var _ repository.PlantRepository = (*PlantRepo)(nil)

// PlantRepo implementación del puerto PlantRepository sobre PostgreSQL.
type PlantRepo struct {
	q Querier
}

// NewPlantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPlantRepository(q Querier) *PlantRepo {
	return &PlantRepo{q: q}
}

// Create persiste una planta nueva.
func (r *PlantRepo) Create(plant *entity.Plant) error {
	query := `
		INSERT INTO plants (id, code, name, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		plant.ID, plant.Code, plant.Name, plant.Location, plant.CreatedAt, plant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plant: %w", err)
	}
	return nil
}

// GetByID obtiene una planta por ID.
func (r *PlantRepo) GetByID(id string) (*entity.Plant, error) {
	return r.getBy(`SELECT id, code, name, location, created_at, updated_at FROM plants WHERE id = $1`, id)
}

// GetByCode obtiene una planta por su código de export.
func (r *PlantRepo) GetByCode(code string) (*entity.Plant, error) {
	return r.getBy(`SELECT id, code, name, location, created_at, updated_at FROM plants WHERE code = $1`, code)
}

func (r *PlantRepo) getBy(query, arg string) (*entity.Plant, error) {
	var p entity.Plant
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&p.ID, &p.Code, &p.Name, &p.Location, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plant: %w", err)
	}
	return &p, nil
}

// List lista plantas con paginación.
func (r *PlantRepo) List(limit, offset int) ([]*entity.Plant, error) {
	query := `
		SELECT id, code, name, location, created_at, updated_at
		FROM plants ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plant
	for rows.Next() {
		var p entity.Plant
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Location, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plant: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza una planta existente.
func (r *PlantRepo) Update(plant *entity.Plant) error {
	query := `
		UPDATE plants SET name = $2, location = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		plant.ID, plant.Name, plant.Location, plant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plant: %w", err)
	}
	return nil
}
