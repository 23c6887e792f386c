package diesel

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// GroupIntoBatches particiona las filas enriquecidas por la pareja exacta
// (planta, bodega) — nunca por planta sola, porque cada bodega se concilia de
// forma independiente — y ordena cada grupo por SortKey con orden estable.
// Cada grupo se vuelve exactamente un PlantBatch; nunca se fusionan ni se
// descartan filas. Los lotes salen en orden de primera aparición en el archivo.
func GroupIntoBatches(rows []*entity.EnrichedMovement, sourceFile, importID string) []*entity.PlantBatch {
	type groupKey struct {
		planta string
		bodega string
	}

	groups := make(map[groupKey][]*entity.EnrichedMovement)
	var order []groupKey
	for _, row := range rows {
		key := groupKey{planta: row.Raw.Planta, bodega: row.Raw.Bodega}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	batches := make([]*entity.PlantBatch, 0, len(order))
	for _, key := range order {
		group := groups[key]
		// Las claves basadas en RFC3339 ordenan bien lexicográficamente; el
		// orden estable preserva el orden del archivo ante claves iguales.
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].SortKey < group[j].SortKey
		})
		batches = append(batches, &entity.PlantBatch{
			ID:         uuid.New().String(),
			ImportID:   importID,
			Planta:     key.planta,
			Bodega:     key.bodega,
			SourceFile: sourceFile,
			Status:     entity.BatchStatusPendiente,
			Rows:       group,
			CreatedAt:  time.Now(),
		})
	}
	return batches
}
