// Package pdf implementa la generación del reporte de conciliación de un lote
// del libro de diesel.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Planta + Bodega  │  N° Lote + Rango de fechas      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INVENTARIO: Inicial / Entradas / Salidas / Final           │
//	│              Computado vs Reportado + Discrepancia          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Movimientos                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  UNIDADES: vistas / sin mapear / con lecturas               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lecturas con advertencias o errores                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreport "github.com/mantenpro/mantenpro-api/internal/application/report"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

var _ appreport.BatchPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 30}
)

// Etiquetas legibles por categoría de movimiento.
var categoryLabels = map[entity.MovementCategory]string{
	entity.CategoryInventoryOpening:      "Apertura de inventario",
	entity.CategoryFuelReceipt:           "Recepción de combustible",
	entity.CategoryInventoryAdjustment:   "Ajuste de inventario",
	entity.CategoryAssetConsumption:      "Consumo de unidad",
	entity.CategoryUnassignedConsumption: "Consumo sin unidad",
}

var categoryOrder = []entity.MovementCategory{
	entity.CategoryInventoryOpening,
	entity.CategoryFuelReceipt,
	entity.CategoryInventoryAdjustment,
	entity.CategoryAssetConsumption,
	entity.CategoryUnassignedConsumption,
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.BatchPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateBatchPDF genera el PDF de conciliación y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateBatchPDF(_ context.Context, batch *entity.PlantBatch) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Conciliación de Diesel", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(batch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(inventoryRows(batch)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(countsHeaderRow())
	m.AddRows(countsRows(batch)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(assetsRow(batch))

	if anomalous := anomalousReadings(batch); len(anomalous) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(readingsHeaderRow())
		for _, r := range readingRows(anomalous) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: planta y bodega (izq), lote y rango de fechas (der).
func headerRow(batch *entity.PlantBatch) core.Row {
	rango := "—"
	if batch.DateFrom != nil && batch.DateTo != nil {
		rango = batch.DateFrom.Format("02/01/2006") + " a " + batch.DateTo.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("Planta "+batch.Planta, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega "+batch.Bodega+"   |   Archivo: "+batch.SourceFile, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CONCILIACIÓN LIBRO DE DIESEL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Lote "+shortID(batch.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Periodo: "+rango, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// inventoryRows: bloque de conciliación de inventario con la discrepancia
// resaltada cuando computado y reportado no coinciden.
func inventoryRows(batch *entity.PlantBatch) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	reportado := "no reportado"
	if batch.FinalInventoryProvided != nil {
		reportado = litros(batch.FinalInventoryProvided.String())
	}

	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("CONCILIACIÓN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(34).Add(
			col.New(2),
			col.New(5).Add(
				label("Inventario inicial:"),
				label("Entradas:"),
				label("Salidas:"),
				label("Inventario final computado:"),
				label("Inventario final reportado:"),
			),
			col.New(3).Add(
				value(litros(batch.InitialInventory.String())),
				value(litros(batch.TotalLitrosIn.String())),
				value(litros(batch.TotalLitrosOut.String())),
				value(litros(batch.FinalInventoryComputed.String())),
				value(reportado),
			),
			col.New(2),
		),
	}

	if batch.FinalInventoryProvided != nil && !batch.InventoryDiscrepancy.IsZero() {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("DISCREPANCIA: "+litros(batch.InventoryDiscrepancy.String())+
				" entre el inventario computado y el reportado en bodega.", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center,
				Color: colorAlert, Top: 1,
			}),
		)))
	}
	return rows
}

// countsHeaderRow: cabecera de la tabla de categorías.
func countsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoría de movimiento", 8, align.Left),
		h("Filas", 4, align.Right),
	)
}

// countsRows: una fila por categoría presente en el lote, en orden fijo.
func countsRows(batch *entity.PlantBatch) []core.Row {
	var result []core.Row
	for _, cat := range categoryOrder {
		n, ok := batch.MovementCounts[cat]
		if !ok || n == 0 {
			continue
		}
		result = append(result, row.New(7).Add(
			col.New(8).Add(text.New(
				categoryLabels[cat],
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				fmt.Sprintf("%d", n),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// assetsRow: resumen de unidades y rollup de validaciones.
func assetsRow(batch *entity.PlantBatch) core.Row {
	sinMapear := "ninguna"
	if len(batch.UnmappedAssets) > 0 {
		sinMapear = strings.Join(batch.UnmappedAssets, ", ")
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("UNIDADES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Vistas: %d   |   Con lecturas: %d   |   Sin mapear: %s",
				len(batch.UniqueAssets), len(batch.AssetsWithReadings), sinMapear,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New(fmt.Sprintf("Validaciones del lote: %d advertencias, %d errores",
				batch.ValidationWarnings, batch.ValidationErrors,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// readingsHeaderRow: cabecera de la tabla de lecturas anómalas.
func readingsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Unidad", 2, align.Left),
		h("Fecha", 2, align.Center),
		h("Litros", 2, align.Right),
		h("Validaciones", 6, align.Left),
	)
}

// readingRows: una fila por lectura con advertencias o errores.
func readingRows(readings []*entity.MeterReading) []core.Row {
	result := make([]core.Row, 0, len(readings))
	for _, r := range readings {
		color := colorGray
		if r.HasErrors {
			color = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				r.AssetCode,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				r.Fecha.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				litros(r.Litros.String()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(6).Add(text.New(
				strings.Join(r.Validaciones, "; "),
				props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1, Color: color},
			)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func anomalousReadings(batch *entity.PlantBatch) []*entity.MeterReading {
	var out []*entity.MeterReading
	for _, r := range batch.Readings {
		if r.HasWarnings || r.HasErrors {
			out = append(out, r)
		}
	}
	return out
}

func litros(s string) string {
	return s + " L"
}

// shortID recorta un UUID a su primer bloque para el encabezado.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
