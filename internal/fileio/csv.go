package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readCSV reads CSV with headerRow (1-based), auto-detecting encoding and converting to UTF-8.
// Supports UTF-8 (with or without BOM), UTF-16 with BOM, Windows-1252/ISO-8859-1 (Excel on
// Spanish Windows) and Windows-1251. Separator is sniffed from the header area: ';', '\t' or ','.
func readCSV(r io.Reader, headerRow int) ([]map[string]string, error) {
	br := bufio.NewReader(r)

	// Peek a bit to detect encoding
	peek, _ := br.Peek(4096)
	dec := decoderFor(br, peek)

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffComma(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	h := pickHeader(rows, headerRow)
	return rowsToMaps(rows, h, headerRow), nil
}

func decoderFor(br *bufio.Reader, peek []byte) io.Reader {
	switch {
	case bytes.HasPrefix(peek, []byte{0xFF, 0xFE}), bytes.HasPrefix(peek, []byte{0xFE, 0xFF}):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
	case len(peek) == 0 || isValidUTF8(peek):
		return br
	}

	cs := "windows-1252"
	if det, err := chardet.NewTextDetector().DetectBest(peek); err == nil && det != nil {
		cs = strings.ToLower(det.Charset)
	}
	switch cs {
	case "windows-1251", "cp1251":
		return transform.NewReader(br, charmap.Windows1251.NewDecoder())
	case "iso-8859-1":
		return transform.NewReader(br, charmap.ISO8859_1.NewDecoder())
	default:
		// не UTF-8 и не кириллица — почти всегда Excel на испанской Windows
		return transform.NewReader(br, charmap.Windows1252.NewDecoder())
	}
}

// isValidUTF8 допускает обрезанную на границе peek последнюю руну.
func isValidUTF8(b []byte) bool {
	for i := 0; i < 4 && len(b) > 0; i++ {
		if utf8.Valid(b) {
			return true
		}
		b = b[:len(b)-1]
	}
	return utf8.Valid(b)
}

// sniffComma: по первым строкам выбираем самый частый из ; \t ,
func sniffComma(data []byte) rune {
	head := data
	if len(head) > 2048 {
		head = head[:2048]
	}
	lines := strings.SplitN(string(head), "\n", 4)
	if len(lines) > 3 {
		lines = lines[:3]
	}
	best, bestN := ',', 0
	for _, c := range []rune{';', '\t', ','} {
		n := 0
		for _, l := range lines {
			n += strings.Count(l, string(c))
		}
		if n > bestN {
			best, bestN = c, n
		}
	}
	return best
}
