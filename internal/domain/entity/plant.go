package entity

import "time"

// Plant representa una planta u obra donde operan equipos y bodegas de combustible.
// El código es el que aparece en los exports del libro de diesel.
type Plant struct {
	ID        string
	Code      string // ej. "PL-NORTE"
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
