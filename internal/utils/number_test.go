package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"85", "85", true},
		{"85.00", "85", true},
		{"1,234.50", "1234.5", true},
		{"1.234,50", "1234.5", true},
		{"197,00", "197", true},
		{"1,234", "1234", true},
		{"1,234,567", "1234567", true},
		{"$ 85.00", "85", true},
		{"2 345,6", "2345.6", true},
		{"(12.5)", "-12.5", true},
		{"-3", "-3", true},
		{"", "0", false},
		{"abc", "0", false},
		{"-", "0", false},
		{"1.2.3", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
