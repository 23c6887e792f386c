package diesel

import "github.com/mantenpro/mantenpro-api/internal/domain/entity"

// ProcessImport corre el pipeline completo sobre las filas crudas de un
// archivo: enriquecer fila a fila, agrupar por (planta, bodega), conciliar
// inventario y estadísticas, y validar las lecturas de medidores. Devuelve un
// PlantBatch conciliado por cada pareja planta/bodega presente en el archivo.
//
// Toda fila de entrada termina clasificada y en exactamente un lote, incluso
// con datos faltantes o malformados: aquí adentro no hay rutas de error
// fatales porque no hay I/O que pueda fallar. La función corre hasta el final
// con el conjunto de filas que reciba; los timeouts alrededor del I/O son
// responsabilidad del llamador.
func ProcessImport(rows []entity.RawMovement, sourceFile, importID string) []*entity.PlantBatch {
	enriched := make([]*entity.EnrichedMovement, 0, len(rows))
	for i, raw := range rows {
		enriched = append(enriched, Enrich(raw, i, importID))
	}

	batches := GroupIntoBatches(enriched, sourceFile, importID)
	for _, b := range batches {
		Reconcile(b)
		ValidateMeterReadings(b)
	}
	return batches
}
