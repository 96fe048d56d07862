package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var rxKeepNums = regexp.MustCompile(`[^\d\.\-]`)

// ParseAmount парсит суммы и количества из накладных в разных локалях:
// "1,234.50", "1.234,50", "197,00", "$ 85.00", "(12.5)", "2 345,6" (NBSP/NNBSP).
// Если есть и точка, и запятая — десятичный разделитель тот, что правее.
// Одиночная запятая с 1–2 цифрами после неё — десятичная, иначе разделитель тысяч.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	// убрать неразрывные/узкие пробелы и обычные пробелы
	s = strings.NewReplacer("\u00A0", "", "\u202F", "", "\u2009", "", " ", "", "\t", "").Replace(s)

	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-comma-1 <= 2 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	// оставить только цифры, точку и минус (на случай валюты и прочего мусора)
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}
