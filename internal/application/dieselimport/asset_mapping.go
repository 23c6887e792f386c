package dieselimport

import (
	"context"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// resolveAssets intenta mapear los códigos de unidad de cada lote contra los
// activos registrados de la planta. Los códigos que ningún activo reclama se
// quedan en UnmappedAssets para que el operador los resuelva a mano; el núcleo
// nunca inventa un mapeo.
func (uc *ImportUseCase) resolveAssets(ctx context.Context, batches []*entity.PlantBatch) {
	for _, b := range batches {
		plant, err := uc.plantRepo.GetByCode(b.Planta)
		if err != nil || plant == nil {
			// Planta desconocida: todo queda sin mapear
			continue
		}

		resolved := make(map[string]string) // código de unidad → asset ID
		for _, code := range b.UniqueAssets {
			asset, err := uc.assetRepo.FindByUnitCode(plant.ID, code)
			if err != nil || asset == nil {
				continue
			}
			resolved[code] = asset.ID
		}
		if len(resolved) == 0 {
			continue
		}

		for _, row := range b.Rows {
			if row.RequiresAssetMapping && row.Raw.Unidad != "" {
				if id, ok := resolved[row.Raw.Unidad]; ok {
					row.AssetID = id
				}
			}
		}

		// Recalcular el conjunto pendiente tras el mapeo
		var unmapped []string
		for _, code := range b.UnmappedAssets {
			if _, ok := resolved[code]; !ok {
				unmapped = append(unmapped, code)
			}
		}
		b.UnmappedAssets = unmapped
	}
}
