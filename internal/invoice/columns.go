package invoice

import (
	"strings"

	"invoice-matcher/internal/fileio"
)

// looksLikeHeaderMap — повторная шапка таблицы посреди данных (многостраничные выгрузки).
func looksLikeHeaderMap(m map[string]string) bool {
	cnt := 0
	for _, v := range m {
		s := fileio.NormHeader(v)
		if strings.Contains(s, "descripcion") || strings.Contains(s, "cantidad") ||
			strings.Contains(s, "codigo") || strings.Contains(s, "importe") {
			cnt++
		}
	}
	return cnt >= 2
}
