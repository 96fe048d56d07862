package fileio

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var rxNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormHeader нормализует имя колонки: нижний регистр, без диакритики, без служебных символов
func NormHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}
	s = rxNonWord.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// ResolveKey ищет реальный заголовок по желаемому имени.
// Поддерживает варианты через "|" (например: "nombre|producto|descripcion").
// Заголовки из exclude не рассматриваются (уже заняты другой колонкой).
func ResolveKey(headers []string, want string, exclude ...string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		if e != "" {
			skip[e] = true
		}
	}
	keys := make([]string, 0, len(headers))
	for _, h := range headers {
		if !skip[h] {
			keys = append(keys, h)
		}
	}
	sort.Strings(keys) // для детерминированного выбора

	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	// 1) точное совпадение (как есть)
	for _, a := range alts {
		for _, k := range keys {
			if k == a {
				return k
			}
		}
	}

	// 2) точное по нормализованному, в порядке предпочтения вариантов
	normKeys := make([]string, len(keys))
	for i, k := range keys {
		normKeys[i] = NormHeader(k)
	}
	for _, a := range alts {
		na := NormHeader(a)
		for i, nk := range normKeys {
			if nk == na {
				return keys[i]
			}
		}
	}

	// 3) частичное: want ⊂ key (составные заголовки вроде "cantidad facturada");
	//    выигрывает самый ранний вариант, при равенстве — самый короткий заголовок
	for _, a := range alts {
		na := NormHeader(a)
		if na == "" {
			continue
		}
		best := -1
		for i, nk := range normKeys {
			if strings.Contains(nk, na) && (best < 0 || len(nk) < len(normKeys[best])) {
				best = i
			}
		}
		if best >= 0 {
			return keys[best]
		}
	}
	return ""
}

// Headers — заголовки из первой записи.
func Headers(maps []map[string]string) []string {
	if len(maps) == 0 {
		return nil
	}
	out := make([]string, 0, len(maps[0]))
	for k := range maps[0] {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
