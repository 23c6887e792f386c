package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// MeterReadingDTO lectura de medidor con sus derivados y validaciones.
type MeterReadingDTO struct {
	AssetCode       string          `json:"asset_code"`
	Fecha           time.Time       `json:"fecha"`
	Horometro       *float64        `json:"horometro,omitempty"`
	Odometro        *float64        `json:"odometro,omitempty"`
	Litros          decimal.Decimal `json:"litros"`
	HorometroDelta  *float64        `json:"horometro_delta,omitempty"`
	OdometroDelta   *float64        `json:"odometro_delta,omitempty"`
	DiasDesdeUltima *int            `json:"dias_desde_ultima,omitempty"`
	HorasDiarias    *float64        `json:"horas_diarias,omitempty"`
	KmDiarios       *float64        `json:"km_diarios,omitempty"`
	LitrosPorHora   *float64        `json:"litros_por_hora,omitempty"`
	LitrosPorKm     *float64        `json:"litros_por_km,omitempty"`
	HasWarnings     bool            `json:"has_warnings"`
	HasErrors       bool            `json:"has_errors"`
	Validaciones    []string        `json:"validaciones,omitempty"`
}

// MovementDTO fila enriquecida y clasificada del libro de diesel.
type MovementDTO struct {
	Index            int              `json:"index"`
	Fecha            *time.Time       `json:"fecha,omitempty"`
	Hora             string           `json:"hora,omitempty"`
	Direction        string           `json:"direccion"`
	DirectionCoerced bool             `json:"direccion_coercida,omitempty"`
	Unidad           string           `json:"unidad,omitempty"`
	AssetID          string           `json:"asset_id,omitempty"`
	Litros           *decimal.Decimal `json:"litros,omitempty"`
	Category         string           `json:"categoria"`
	IsAdjustment     bool             `json:"es_ajuste,omitempty"`
	AdjustmentReason string           `json:"razon_ajuste,omitempty"`
	NeedsMapping     bool             `json:"requiere_mapeo,omitempty"`
	Responsable      string           `json:"responsable,omitempty"`
}

// BatchSummaryDTO resumen de conciliación de un lote planta/bodega.
type BatchSummaryDTO struct {
	ID                     string           `json:"id"`
	Planta                 string           `json:"planta"`
	Bodega                 string           `json:"bodega"`
	SourceFile             string           `json:"archivo"`
	Status                 string           `json:"status"`
	TotalRows              int              `json:"total_filas"`
	InitialInventory       decimal.Decimal  `json:"inventario_inicial"`
	TotalLitrosIn          decimal.Decimal  `json:"total_litros_in"`
	TotalLitrosOut         decimal.Decimal  `json:"total_litros_out"`
	FinalInventoryComputed decimal.Decimal  `json:"inventario_final_computado"`
	FinalInventoryProvided *decimal.Decimal `json:"inventario_final_reportado,omitempty"`
	InventoryDiscrepancy   decimal.Decimal  `json:"discrepancia_inventario"`
	MovementCounts         map[string]int   `json:"conteo_movimientos"`
	UniqueAssets           []string         `json:"unidades"`
	UnmappedAssets         []string         `json:"unidades_sin_mapear"`
	ValidationWarnings     int              `json:"advertencias"`
	ValidationErrors       int              `json:"errores"`
	DateFrom               *time.Time       `json:"fecha_desde,omitempty"`
	DateTo                 *time.Time       `json:"fecha_hasta,omitempty"`
}

// BatchDetailDTO lote con sus filas y lecturas.
type BatchDetailDTO struct {
	BatchSummaryDTO
	Movements []MovementDTO     `json:"movimientos"`
	Readings  []MeterReadingDTO `json:"lecturas"`
}

// ImportPreviewDTO resultado de la vista previa de una importación: los lotes
// conciliados sin persistir nada.
type ImportPreviewDTO struct {
	ImportID string            `json:"import_id"`
	File     string            `json:"archivo"`
	Batches  []BatchSummaryDTO `json:"lotes"`
}

// ImportResultDTO resultado de una importación confirmada.
type ImportResultDTO struct {
	ImportID      string            `json:"import_id"`
	File          string            `json:"archivo"`
	BatchesSaved  int               `json:"lotes_guardados"`
	RowsProcessed int               `json:"filas_procesadas"`
	Batches       []BatchSummaryDTO `json:"lotes"`
}

// NewBatchSummaryDTO arma el resumen desde la entidad.
func NewBatchSummaryDTO(b *entity.PlantBatch) BatchSummaryDTO {
	counts := make(map[string]int, len(b.MovementCounts))
	for cat, n := range b.MovementCounts {
		counts[string(cat)] = n
	}
	return BatchSummaryDTO{
		ID:                     b.ID,
		Planta:                 b.Planta,
		Bodega:                 b.Bodega,
		SourceFile:             b.SourceFile,
		Status:                 b.Status,
		TotalRows:              len(b.Rows),
		InitialInventory:       b.InitialInventory,
		TotalLitrosIn:          b.TotalLitrosIn,
		TotalLitrosOut:         b.TotalLitrosOut,
		FinalInventoryComputed: b.FinalInventoryComputed,
		FinalInventoryProvided: b.FinalInventoryProvided,
		InventoryDiscrepancy:   b.InventoryDiscrepancy,
		MovementCounts:         counts,
		UniqueAssets:           b.UniqueAssets,
		UnmappedAssets:         b.UnmappedAssets,
		ValidationWarnings:     b.ValidationWarnings,
		ValidationErrors:       b.ValidationErrors,
		DateFrom:               b.DateFrom,
		DateTo:                 b.DateTo,
	}
}

// NewBatchDetailDTO arma el detalle completo desde la entidad.
func NewBatchDetailDTO(b *entity.PlantBatch) BatchDetailDTO {
	detail := BatchDetailDTO{BatchSummaryDTO: NewBatchSummaryDTO(b)}
	for _, row := range b.Rows {
		detail.Movements = append(detail.Movements, MovementDTO{
			Index:            row.Index,
			Fecha:            row.Fecha,
			Hora:             row.Raw.Hora,
			Direction:        row.Direction,
			DirectionCoerced: row.DirectionCoerced,
			Unidad:           row.Raw.Unidad,
			AssetID:          row.AssetID,
			Litros:           row.Litros,
			Category:         string(row.Category),
			IsAdjustment:     row.IsAdjustment,
			AdjustmentReason: row.AdjustmentReason,
			NeedsMapping:     row.RequiresAssetMapping && row.AssetID == "",
			Responsable:      row.Raw.Responsable,
		})
	}
	for _, r := range b.Readings {
		detail.Readings = append(detail.Readings, MeterReadingDTO{
			AssetCode:       r.AssetCode,
			Fecha:           r.Fecha,
			Horometro:       r.Horometro,
			Odometro:        r.Odometro,
			Litros:          r.Litros,
			HorometroDelta:  r.HorometroDelta,
			OdometroDelta:   r.OdometroDelta,
			DiasDesdeUltima: r.DiasDesdeUltima,
			HorasDiarias:    r.HorasDiarias,
			KmDiarios:       r.KmDiarios,
			LitrosPorHora:   r.LitrosPorHora,
			LitrosPorKm:     r.LitrosPorKm,
			HasWarnings:     r.HasWarnings,
			HasErrors:       r.HasErrors,
			Validaciones:    r.Validaciones,
		})
	}
	return detail
}
