package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mantenpro/mantenpro-api/internal/domain"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
	"github.com/mantenpro/mantenpro-api/internal/domain/repository"
)

var _ repository.DieselBatchRepository = (*DieselBatchRepo)(nil)

// DieselBatchRepo implementación del puerto DieselBatchRepository sobre
// PostgreSQL. Un lote se persiste en tres tablas: diesel_batches (cabecera de
// conciliación), diesel_movements (filas enriquecidas, con la fila cruda como
// jsonb) y diesel_meter_readings (lecturas con deltas). La transaccionalidad
// la aporta el TxRunner: este repo funciona igual sobre pool o sobre tx.
type DieselBatchRepo struct {
	q Querier
}

// NewDieselBatchRepository construye el adaptador de persistencia para lotes.
func NewDieselBatchRepository(q Querier) *DieselBatchRepo {
	return &DieselBatchRepo{q: q}
}

const batchColumns = `id, import_id, planta, bodega, source_file, status,
	initial_inventory, total_litros_in, total_litros_out,
	final_inventory_computed, final_inventory_provided, inventory_discrepancy,
	movement_counts, unique_assets, unmapped_assets, assets_with_readings,
	validation_warnings, validation_errors, date_from, date_to, created_at`

// Save persiste el lote completo: cabecera, movimientos y lecturas.
func (r *DieselBatchRepo) Save(batch *entity.PlantBatch) error {
	counts := make(map[string]int, len(batch.MovementCounts))
	for cat, n := range batch.MovementCounts {
		counts[string(cat)] = n
	}
	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("marshal movement counts: %w", err)
	}

	query := `
		INSERT INTO diesel_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err = r.q.Exec(context.Background(), query,
		batch.ID, batch.ImportID, batch.Planta, batch.Bodega, batch.SourceFile, batch.Status,
		batch.InitialInventory, batch.TotalLitrosIn, batch.TotalLitrosOut,
		batch.FinalInventoryComputed, batch.FinalInventoryProvided, batch.InventoryDiscrepancy,
		string(countsJSON), batch.UniqueAssets, batch.UnmappedAssets, batch.AssetsWithReadings,
		batch.ValidationWarnings, batch.ValidationErrors, batch.DateFrom, batch.DateTo, batch.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}

	if err := r.saveMovements(batch); err != nil {
		return err
	}
	return r.saveReadings(batch)
}

func (r *DieselBatchRepo) saveMovements(batch *entity.PlantBatch) error {
	query := `
		INSERT INTO diesel_movements (
			batch_id, position, row_index, import_id, raw,
			fecha, sort_key, direction, direction_coerced,
			litros, litros_validacion, inventario_inicial, inventario,
			category, is_adjustment, adjustment_reason,
			validation_discrepancy, discrepancy_litros,
			requires_asset_mapping, asset_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	for pos, row := range batch.Rows {
		rawJSON, err := json.Marshal(row.Raw)
		if err != nil {
			return fmt.Errorf("marshal raw row %d: %w", row.Index, err)
		}
		_, err = r.q.Exec(context.Background(), query,
			batch.ID, pos, row.Index, row.ImportID, string(rawJSON),
			row.Fecha, row.SortKey, row.Direction, row.DirectionCoerced,
			row.Litros, row.LitrosValidacion, row.InventarioInicial, row.Inventario,
			string(row.Category), row.IsAdjustment, row.AdjustmentReason,
			row.ValidationDiscrepancy, row.DiscrepancyLitros,
			row.RequiresAssetMapping, row.AssetID,
		)
		if err != nil {
			return fmt.Errorf("insert movement %d: %w", row.Index, err)
		}
	}
	return nil
}

func (r *DieselBatchRepo) saveReadings(batch *entity.PlantBatch) error {
	query := `
		INSERT INTO diesel_meter_readings (
			batch_id, position, asset_code, fecha, row_index,
			horometro, odometro, litros,
			horometro_delta, odometro_delta, dias_desde_ultima,
			horas_diarias, km_diarios, litros_por_hora, litros_por_km,
			has_warnings, has_errors, validaciones
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	for pos, rd := range batch.Readings {
		_, err := r.q.Exec(context.Background(), query,
			batch.ID, pos, rd.AssetCode, rd.Fecha, rd.RowIndex,
			rd.Horometro, rd.Odometro, rd.Litros,
			rd.HorometroDelta, rd.OdometroDelta, rd.DiasDesdeUltima,
			rd.HorasDiarias, rd.KmDiarios, rd.LitrosPorHora, rd.LitrosPorKm,
			rd.HasWarnings, rd.HasErrors, rd.Validaciones,
		)
		if err != nil {
			return fmt.Errorf("insert reading %s/%d: %w", rd.AssetCode, rd.RowIndex, err)
		}
	}
	return nil
}

// GetByID obtiene el lote completo, con movimientos y lecturas reensamblados
// en el mismo orden en que se guardaron. nil, nil si no existe.
func (r *DieselBatchRepo) GetByID(id string) (*entity.PlantBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM diesel_batches WHERE id = $1`
	batch, err := r.scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil || batch == nil {
		return nil, err
	}

	batch.Rows, err = r.loadMovements(batch.ID)
	if err != nil {
		return nil, err
	}
	batch.Readings, err = r.loadReadings(batch.ID)
	if err != nil {
		return nil, err
	}

	// Re-ligar cada lectura a su fila de origen (esqueleto del enricher).
	byIndex := make(map[int]*entity.MeterReading, len(batch.Readings))
	for _, rd := range batch.Readings {
		byIndex[rd.RowIndex] = rd
	}
	for _, row := range batch.Rows {
		row.Reading = byIndex[row.Index]
	}
	return batch, nil
}

func (r *DieselBatchRepo) scanBatch(row pgx.Row) (*entity.PlantBatch, error) {
	var (
		b          entity.PlantBatch
		countsJSON []byte
	)
	err := row.Scan(
		&b.ID, &b.ImportID, &b.Planta, &b.Bodega, &b.SourceFile, &b.Status,
		&b.InitialInventory, &b.TotalLitrosIn, &b.TotalLitrosOut,
		&b.FinalInventoryComputed, &b.FinalInventoryProvided, &b.InventoryDiscrepancy,
		&countsJSON, &b.UniqueAssets, &b.UnmappedAssets, &b.AssetsWithReadings,
		&b.ValidationWarnings, &b.ValidationErrors, &b.DateFrom, &b.DateTo, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}

	var counts map[string]int
	if err := json.Unmarshal(countsJSON, &counts); err != nil {
		return nil, fmt.Errorf("unmarshal movement counts: %w", err)
	}
	b.MovementCounts = make(map[entity.MovementCategory]int, len(counts))
	for cat, n := range counts {
		b.MovementCounts[entity.MovementCategory(cat)] = n
	}
	return &b, nil
}

func (r *DieselBatchRepo) loadMovements(batchID string) ([]*entity.EnrichedMovement, error) {
	query := `
		SELECT row_index, import_id, raw,
			fecha, sort_key, direction, direction_coerced,
			litros, litros_validacion, inventario_inicial, inventario,
			category, is_adjustment, adjustment_reason,
			validation_discrepancy, discrepancy_litros,
			requires_asset_mapping, asset_id
		FROM diesel_movements WHERE batch_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.EnrichedMovement
	for rows.Next() {
		var (
			m        entity.EnrichedMovement
			rawJSON  []byte
			category string
		)
		err := rows.Scan(
			&m.Index, &m.ImportID, &rawJSON,
			&m.Fecha, &m.SortKey, &m.Direction, &m.DirectionCoerced,
			&m.Litros, &m.LitrosValidacion, &m.InventarioInicial, &m.Inventario,
			&category, &m.IsAdjustment, &m.AdjustmentReason,
			&m.ValidationDiscrepancy, &m.DiscrepancyLitros,
			&m.RequiresAssetMapping, &m.AssetID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if err := json.Unmarshal(rawJSON, &m.Raw); err != nil {
			return nil, fmt.Errorf("unmarshal raw row %d: %w", m.Index, err)
		}
		m.Category = entity.MovementCategory(category)
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *DieselBatchRepo) loadReadings(batchID string) ([]*entity.MeterReading, error) {
	query := `
		SELECT asset_code, fecha, row_index,
			horometro, odometro, litros,
			horometro_delta, odometro_delta, dias_desde_ultima,
			horas_diarias, km_diarios, litros_por_hora, litros_por_km,
			has_warnings, has_errors, validaciones
		FROM diesel_meter_readings WHERE batch_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	var list []*entity.MeterReading
	for rows.Next() {
		var rd entity.MeterReading
		err := rows.Scan(
			&rd.AssetCode, &rd.Fecha, &rd.RowIndex,
			&rd.Horometro, &rd.Odometro, &rd.Litros,
			&rd.HorometroDelta, &rd.OdometroDelta, &rd.DiasDesdeUltima,
			&rd.HorasDiarias, &rd.KmDiarios, &rd.LitrosPorHora, &rd.LitrosPorKm,
			&rd.HasWarnings, &rd.HasErrors, &rd.Validaciones,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reading: %w", err)
		}
		list = append(list, &rd)
	}
	return list, rows.Err()
}

// List lista cabeceras de lote según el filtro (sin movimientos ni lecturas;
// el detalle se pide con GetByID).
func (r *DieselBatchRepo) List(filter repository.BatchFilter) ([]*entity.PlantBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM diesel_batches WHERE 1=1`
	args := []any{}
	n := 0
	add := func(cond string, val any) {
		n++
		query += fmt.Sprintf(" AND %s = $%d", cond, n)
		args = append(args, val)
	}
	if filter.Planta != "" {
		add("planta", filter.Planta)
	}
	if filter.Bodega != "" {
		add("bodega", filter.Bodega)
	}
	if filter.Status != "" {
		add("status", filter.Status)
	}
	if filter.DateFrom != nil {
		n++
		query += fmt.Sprintf(" AND date_from >= $%d", n)
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		n++
		query += fmt.Sprintf(" AND date_to <= $%d", n)
		args = append(args, *filter.DateTo)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.PlantBatch
	for rows.Next() {
		b, err := r.scanBatch(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de un lote (aceptado / rechazado).
func (r *DieselBatchRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE diesel_batches SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update batch status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
