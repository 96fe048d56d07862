package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Café Ñandú", "cafe nandu"},
		{"  Coca-Cola 600 ML ", "cocacola 600 ml"},
		{"ÀÉÎÕÜ", "aeiou"},
		{"Tab\tSep\nLine", "tab sep line"},
		{"Straße", "strae"},
		{"USB 3.0 (32GB)", "usb 30 32gb"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Café Ñandú",
		"Lapicero Bic Cristal azul",
		"  Cuaderno   profesional 100h  ",
		"Memoria USB Kingston 32GB",
		"ÁRBOL–niño_123",
		" nbsp ",
		"",
	}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}
