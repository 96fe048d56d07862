package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NFD + удаление комбинируемых знаков: "é" → "e", "ñ" → "n"
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize — главный конвейер нормализации названий, кодов и описаний:
// нижний регистр, без диакритики, только a-z/0-9 и одиночные пробелы.
// Идемпотентна: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	out := strings.ToLower(text)

	if folded, _, err := transform.String(stripMarks, out); err == nil {
		out = folded
	}

	b := make([]rune, 0, len(out))
	for _, r := range out {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b = append(b, r)
		case unicode.IsSpace(r):
			b = append(b, ' ')
		}
	}
	return collapseSpaces(string(b))
}

// Схлопывание пробелов (заодно trim)
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
