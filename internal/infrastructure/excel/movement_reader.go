package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mantenpro/mantenpro-api/internal/application/dieselimport"
	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

var _ dieselimport.MovementFileReader = (*MovementReader)(nil)

// MovementReader lee un export xlsx del libro de diesel y devuelve las filas
// crudas en el orden del archivo. Las columnas se ubican por nombre de
// encabezado, no por posición: los exports de planta no siempre traen las
// columnas en el mismo orden. Ningún valor se parsea aquí; el parseo permisivo
// es responsabilidad del dominio.
type MovementReader struct{}

// NewMovementReader construye el lector.
func NewMovementReader() *MovementReader {
	return &MovementReader{}
}

// Encabezados reconocidos, ya normalizados (minúsculas, sin tildes).
var headerFields = map[string]func(*entity.RawMovement, string){
	"planta":             func(m *entity.RawMovement, v string) { m.Planta = v },
	"bodega":             func(m *entity.RawMovement, v string) { m.Bodega = v },
	"tipo":               func(m *entity.RawMovement, v string) { m.Tipo = v },
	"unidad":             func(m *entity.RawMovement, v string) { m.Unidad = v },
	"litros":             func(m *entity.RawMovement, v string) { m.Litros = v },
	"litros validacion":  func(m *entity.RawMovement, v string) { m.LitrosValidacion = v },
	"horometro":          func(m *entity.RawMovement, v string) { m.Horometro = v },
	"odometro":           func(m *entity.RawMovement, v string) { m.Odometro = v },
	"inventario inicial": func(m *entity.RawMovement, v string) { m.InventarioInicial = v },
	"inventario":         func(m *entity.RawMovement, v string) { m.Inventario = v },
	"fecha":              func(m *entity.RawMovement, v string) { m.Fecha = v },
	"hora":               func(m *entity.RawMovement, v string) { m.Hora = v },
	"responsable":        func(m *entity.RawMovement, v string) { m.Responsable = v },
	"operador":           func(m *entity.RawMovement, v string) { m.Operador = v },
}

// Read abre el xlsx y devuelve todas las filas de datos de la hoja indicada.
// Las filas completamente vacías se descartan; el resto se conserva tal cual,
// por sucio que venga.
func (mr *MovementReader) Read(r io.Reader, sheet string) ([]entity.RawMovement, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("abrir xlsx: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("leer hoja %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Mapear columna -> campo según el encabezado de la primera fila.
	setters := make(map[int]func(*entity.RawMovement, string))
	for col, header := range rows[0] {
		if set, ok := headerFields[normalizeHeader(header)]; ok {
			setters[col] = set
		}
	}
	if len(setters) == 0 {
		return nil, fmt.Errorf("hoja %q sin encabezados reconocidos", sheet)
	}

	var movements []entity.RawMovement
	for _, row := range rows[1:] {
		var m entity.RawMovement
		empty := true
		for col, val := range row {
			set, ok := setters[col]
			if !ok {
				continue
			}
			val = strings.TrimSpace(val)
			if val != "" {
				empty = false
			}
			set(&m, val)
		}
		if empty {
			continue
		}
		movements = append(movements, m)
	}
	return movements, nil
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
)

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = accentReplacer.Replace(h)
	return strings.Join(strings.Fields(h), " ")
}
