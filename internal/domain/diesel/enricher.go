package diesel

import (
	"fmt"
	"time"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

// Enrich convierte una fila cruda en una EnrichedMovement completamente
// tipada: normaliza fecha, dirección y cifras, clasifica el movimiento,
// construye la clave de orden cronológico y arma el esqueleto de lectura de
// medidor cuando la fila lo amerita. index es la posición base cero de la fila
// dentro del archivo fuente.
func Enrich(raw entity.RawMovement, index int, importID string) *entity.EnrichedMovement {
	m := &entity.EnrichedMovement{
		Raw:      raw,
		Index:    index,
		ImportID: importID,
	}

	m.Fecha = ParseFecha(raw.Fecha)
	m.Direction, m.DirectionCoerced = NormalizeDirection(raw.Tipo)
	m.Litros = ParseLitros(raw.Litros)
	m.LitrosValidacion = ParseLitros(raw.LitrosValidacion)
	m.InventarioInicial = ParseLitros(raw.InventarioInicial)
	m.Inventario = ParseLitros(raw.Inventario)
	m.SortKey = sortKey(m.Fecha, raw.Hora, index)

	c := Classify(ClassificationInput{
		Direction:         m.Direction,
		HasUnidad:         raw.Unidad != "",
		Litros:            m.Litros,
		LitrosValidacion:  m.LitrosValidacion,
		InventarioInicial: m.InventarioInicial,
	})
	m.Category = c.Category
	m.IsAdjustment = c.IsAdjustment
	m.AdjustmentReason = c.AdjustmentReason

	// Discrepancia entre los litros y la cifra de validación de la propia fila
	if m.Litros != nil && m.LitrosValidacion != nil {
		diff := m.Litros.Sub(*m.LitrosValidacion).Abs()
		if diff.GreaterThan(umbralDiscrepanciaLitros) {
			m.ValidationDiscrepancy = true
			m.DiscrepancyLitros = diff
		}
	}

	// El mapeo código→activo es un paso posterior; aquí solo se marca quién lo necesita
	m.RequiresAssetMapping = (m.Category == entity.CategoryAssetConsumption && raw.Unidad != "") ||
		m.Category == entity.CategoryUnassignedConsumption

	m.Reading = buildReadingSkeleton(m)
	return m
}

// sortKey construye la clave cronológica estable de la fila:
// fecha RFC3339 + hora + índice con ceros a la izquierda. Las filas sin fecha
// parseable reciben el prefijo "9999-" para que ordenen de último de forma
// determinista en vez de perderse o romper el orden. El índice va con ancho
// fijo para que la comparación lexicográfica siga siendo correcta pasadas las
// 9 filas.
func sortKey(fecha *time.Time, hora string, index int) string {
	if fecha == nil {
		return fmt.Sprintf("9999-%06d", index)
	}
	return fmt.Sprintf("%s-%s-%06d", fecha.UTC().Format(time.RFC3339), hora, index)
}

// buildReadingSkeleton crea la lectura de medidor solo cuando la fila trae
// unidad, al menos un medidor y fecha parseable. Los deltas quedan en nil: los
// completa el detector de anomalías respecto a la lectura anterior de la misma
// unidad dentro del lote.
func buildReadingSkeleton(m *entity.EnrichedMovement) *entity.MeterReading {
	if m.Raw.Unidad == "" || m.Fecha == nil {
		return nil
	}
	horometro := ParseMedidor(m.Raw.Horometro)
	odometro := ParseMedidor(m.Raw.Odometro)
	if horometro == nil && odometro == nil {
		return nil
	}
	r := &entity.MeterReading{
		AssetCode: m.Raw.Unidad,
		Fecha:     *m.Fecha,
		RowIndex:  m.Index,
		Horometro: horometro,
		Odometro:  odometro,
	}
	if m.Litros != nil {
		r.Litros = *m.Litros
	}
	return r
}
