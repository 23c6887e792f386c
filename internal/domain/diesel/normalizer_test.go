package diesel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantenpro/mantenpro-api/internal/domain/entity"
)

func TestParseFecha(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *time.Time
	}{
		{name: "año de dos dígitos", in: "08/02/25", want: fecha(2025, 2, 8)},
		{name: "año de cuatro dígitos", in: "08/02/2025", want: fecha(2025, 2, 8)},
		{name: "dos dígitos mayor a 50 va a 1900", in: "15/06/99", want: fecha(1999, 6, 15)},
		{name: "con espacios", in: " 01/12/2024 ", want: fecha(2024, 12, 1)},
		{name: "texto libre", in: "not-a-date", want: nil},
		{name: "vacía", in: "", want: nil},
		{name: "separadores de más", in: "08/02/20/25", want: nil},
		{name: "partes no numéricas", in: "aa/02/2025", want: nil},
		{name: "día fuera de calendario", in: "31/04/2025", want: nil},
		{name: "mes fuera de rango", in: "10/13/2025", want: nil},
		{name: "año de tres dígitos", in: "08/02/202", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFecha(tt.in)
			if tt.want == nil {
				assert.Nil(t, got, "debe devolver nil, nunca un pánico")
				return
			}
			require.NotNil(t, got)
			assert.True(t, got.Equal(*tt.want), "esperaba %s, obtuve %s", tt.want, got)
		})
	}
}

func TestParseLitros(t *testing.T) {
	tests := []struct {
		in   string
		want string // "" = nil
	}{
		{in: "300", want: "300"},
		{in: "300.5", want: "300.5"},
		{in: "300,5", want: "300.5"},
		{in: "1.234,56", want: "1234.56"},
		{in: "1,234.56", want: "1234.56"},
		{in: " 42 ", want: "42"},
		{in: "-15", want: "-15"},
		{in: "", want: ""},
		{in: "n/a", want: ""},
		{in: "abc", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseLitros(tt.in)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseMedidor(t *testing.T) {
	require.Nil(t, ParseMedidor(""))
	require.Nil(t, ParseMedidor("sin lectura"))

	got := ParseMedidor("1523.4")
	require.NotNil(t, got)
	assert.InDelta(t, 1523.4, *got, 0.001)

	got = ParseMedidor("1.523,4")
	require.NotNil(t, got)
	assert.InDelta(t, 1523.4, *got, 0.001)
}

func TestNormalizeDirection(t *testing.T) {
	tests := []struct {
		in          string
		want        string
		wantCoerced bool
	}{
		{in: "Entrada", want: entity.DirectionEntrada},
		{in: "entrada", want: entity.DirectionEntrada},
		{in: "SALIDA", want: entity.DirectionSalida},
		{in: " Salida ", want: entity.DirectionSalida},
		// Valores no reconocidos se coercen a Salida, pero quedan marcados
		{in: "Slida", want: entity.DirectionSalida, wantCoerced: true},
		{in: "", want: entity.DirectionSalida, wantCoerced: true},
	}
	for _, tt := range tests {
		dir, coerced := NormalizeDirection(tt.in)
		assert.Equal(t, tt.want, dir, "entrada %q", tt.in)
		assert.Equal(t, tt.wantCoerced, coerced, "entrada %q", tt.in)
	}
}

// fecha es un helper para construir fechas UTC en los tests.
func fecha(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
