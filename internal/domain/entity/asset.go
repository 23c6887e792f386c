package entity

import "time"

// Tipos de medidor que puede llevar un activo.
const (
	MeterHorometro = "horometro"
	MeterOdometro  = "odometro"
)

// Asset representa un equipo o unidad (excavadora, volqueta, generador) que
// consume diesel. UnitCodes son los códigos libres con los que el activo
// aparece en los libros de diesel; el mapeo código→activo es interactivo y
// vive fuera del núcleo de conciliación.
type Asset struct {
	ID        string
	PlantID   string
	Name      string
	UnitCodes []string // alias conocidos en los exports, ej. ["EX-02", "EXC02"]
	MeterType string   // horometro, odometro o vacío si no lleva medidor
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MatchesCode indica si el activo está registrado bajo el código de unidad dado.
func (a *Asset) MatchesCode(code string) bool {
	for _, c := range a.UnitCodes {
		if c == code {
			return true
		}
	}
	return false
}
