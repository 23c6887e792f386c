package diesel

import (
	"github.com/shopspring/decimal"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// Reconcile reconstruye el inventario del lote desde el saldo de apertura y
// agrega las estadísticas de movimientos. Requiere que las filas del lote ya
// estén en orden cronológico (las deja así el grouper).
//
// Reglas:
//   - El saldo inicial sale de la PRIMERA fila inventory_opening; si el lote
//     trae más de una (carga duplicada) gana la primera y se cuenta una
//     advertencia. Sin apertura, el saldo inicial es 0.
//   - TotalLitrosIn suma los litros de las filas Entrada con litros positivos.
//   - TotalLitrosOut suma los litros de TODAS las filas Salida, sin importar
//     la categoría.
//   - FinalInventoryComputed = inicial + entradas − salidas, siempre
//     recalculado aquí.
//   - El inventario reportado es el campo inventario de la ÚLTIMA fila en
//     orden cronológico; la discrepancia es la diferencia absoluta y es una
//     señal de calidad de datos para el operador, no se autocorrige.
func Reconcile(b *entity.PlantBatch) {
	b.MovementCounts = make(map[entity.MovementCategory]int)
	b.InitialInventory = decimal.Zero
	b.TotalLitrosIn = decimal.Zero
	b.TotalLitrosOut = decimal.Zero

	openingSeen := 0
	seenAssets := make(map[string]bool)
	unmapped := make(map[string]bool)
	withReadings := make(map[string]bool)

	for _, row := range b.Rows {
		b.MovementCounts[row.Category]++

		if row.Category == entity.CategoryInventoryOpening {
			openingSeen++
			if openingSeen == 1 && row.InventarioInicial != nil {
				b.InitialInventory = *row.InventarioInicial
			}
		}

		if row.Litros != nil {
			switch row.Direction {
			case entity.DirectionEntrada:
				if row.Litros.IsPositive() {
					b.TotalLitrosIn = b.TotalLitrosIn.Add(*row.Litros)
				}
			case entity.DirectionSalida:
				b.TotalLitrosOut = b.TotalLitrosOut.Add(*row.Litros)
			}
		}

		if row.Raw.Unidad != "" && !seenAssets[row.Raw.Unidad] {
			seenAssets[row.Raw.Unidad] = true
			b.UniqueAssets = append(b.UniqueAssets, row.Raw.Unidad)
		}
		if row.RequiresAssetMapping && row.AssetID == "" && row.Raw.Unidad != "" && !unmapped[row.Raw.Unidad] {
			unmapped[row.Raw.Unidad] = true
			b.UnmappedAssets = append(b.UnmappedAssets, row.Raw.Unidad)
		}
		if row.Reading != nil {
			b.Readings = append(b.Readings, row.Reading)
			if !withReadings[row.Raw.Unidad] {
				withReadings[row.Raw.Unidad] = true
				b.AssetsWithReadings = append(b.AssetsWithReadings, row.Raw.Unidad)
			}
		}

		// Rollup de validaciones a nivel de fila
		if row.DirectionCoerced {
			b.ValidationWarnings++
		}
		if row.ValidationDiscrepancy {
			b.ValidationWarnings++
		}
		if row.AdjustmentReason == entity.AdjustmentUnknownPattern {
			b.ValidationWarnings++
		}

		if row.Fecha != nil {
			if b.DateFrom == nil || row.Fecha.Before(*b.DateFrom) {
				b.DateFrom = row.Fecha
			}
			if b.DateTo == nil || row.Fecha.After(*b.DateTo) {
				b.DateTo = row.Fecha
			}
		}
	}

	if openingSeen > 1 {
		// Aperturas duplicadas: política explícita de "gana la primera"
		b.ValidationWarnings += openingSeen - 1
	}

	b.FinalInventoryComputed = b.InitialInventory.Add(b.TotalLitrosIn).Sub(b.TotalLitrosOut)

	if n := len(b.Rows); n > 0 {
		if last := b.Rows[n-1].Inventario; last != nil {
			v := *last
			b.FinalInventoryProvided = &v
			b.InventoryDiscrepancy = b.FinalInventoryComputed.Sub(v).Abs()
		}
	}

	b.Status = entity.BatchStatusConciliado
}
