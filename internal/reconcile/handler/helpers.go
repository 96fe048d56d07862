package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor — код ответа для ошибки разбора входа. Всё, кроме
// превышения лимита тела, считаем ошибкой клиента: битые xls/xlsx/csv
// приходят из сторонних парсеров без своих типов.
func statusFor(err error) int {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

var rxUnsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func reviewFilename(folio string) string {
	folio = strings.Trim(rxUnsafeName.ReplaceAllString(folio, "_"), "_")
	if folio == "" {
		return "revision.xlsx"
	}
	return "revision-" + folio + ".xlsx"
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on", "si", "sí":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
