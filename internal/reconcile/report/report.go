// Package report — лист проверки накладной (xlsx) для ручного подтверждения.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"invoice-matcher/internal/reconcile/model"
	"invoice-matcher/internal/reconcile/service"
)

// FormattingOptions — язык подписей и оформление листа.
// Передаются явно, без глобальных настроек.
type FormattingOptions struct {
	Language  string // es | en
	SheetName string
	Colors    bool // заливка колонки уверенности цветом бейджа
}

// Meta — шапка накладной.
type Meta struct {
	Supplier string
	Folio    string
}

const headerRow = 4

type labels struct {
	supplier, folio string
	columns         []string
	match, create   string
	review          string
	confidence      map[model.Confidence]string
}

var labelSets = map[string]labels{
	"es": {
		supplier: "Proveedor",
		folio:    "Folio",
		columns: []string{"#", "Producto en factura", "Código", "Cantidad", "Costo unitario",
			"Acción", "Producto seleccionado", "Sugerencia", "Puntaje", "Tipo de coincidencia", "Confianza", "Revisar"},
		match:  "Vincular",
		create: "Nuevo",
		review: "Baja confianza",
	},
	"en": {
		supplier: "Supplier",
		folio:    "Folio",
		columns: []string{"#", "Invoice product", "Code", "Quantity", "Unit cost",
			"Action", "Selected product", "Suggestion", "Score", "Match type", "Confidence", "Review"},
		match:  "Match",
		create: "New",
		review: "Low confidence",
		confidence: map[model.Confidence]string{
			model.ConfidenceHigh:   "High",
			model.ConfidenceMedium: "Medium",
			model.ConfidenceLow:    "Low",
		},
	},
}

func (o FormattingOptions) labels() labels {
	if l, ok := labelSets[strings.ToLower(o.Language)]; ok {
		return l
	}
	return labelSets["es"]
}

func (l labels) confidenceLabel(c model.Confidence) string {
	if l.confidence == nil {
		return service.ConfidenceLabel(c)
	}
	if s, ok := l.confidence[c]; ok {
		return s
	}
	return "N/A"
}

// WriteReview пишет xlsx: шапка накладной, затем строка на каждую позицию.
func WriteReview(w io.Writer, meta Meta, items []model.ReconciledItem, opts FormattingOptions) error {
	lb := opts.labels()
	sheet := opts.SheetName
	if sheet == "" {
		sheet = "Factura"
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("sheet name: %w", err)
	}

	_ = f.SetSheetRow(sheet, "A1", &[]any{lb.supplier, meta.Supplier})
	_ = f.SetSheetRow(sheet, "A2", &[]any{lb.folio, meta.Folio})

	hdr := make([]any, len(lb.columns))
	for i, c := range lb.columns {
		hdr[i] = c
	}
	_ = f.SetSheetRow(sheet, cellName(1, headerRow), &hdr)
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, cellName(1, headerRow), cellName(len(hdr), headerRow), bold)
	}

	fills := map[string]int{}
	for i, it := range items {
		row := headerRow + 1 + i

		action := lb.create
		if it.Action == model.ActionMatch {
			action = lb.match
		}
		selected := ""
		if it.SelectedProduct != nil {
			selected = it.SelectedProduct.Name
		}

		// при низкой уверенности BestMatch пуст, но подсказку всё равно показываем
		var (
			suggestion, matchType string
			score                 any = ""
			level                 model.Confidence
		)
		if s := it.Suggestion(); s != nil {
			suggestion = s.Product.Name
			score = s.Score
			matchType = string(s.MatchType)
			level = s.Confidence
		}
		review := ""
		if it.LowConfidenceWarning {
			review = lb.review
		}

		values := []any{
			i + 1,
			it.Name,
			it.Code,
			it.Quantity.InexactFloat64(),
			it.UnitCost.InexactFloat64(),
			action,
			selected,
			suggestion,
			score,
			matchType,
			lb.confidenceLabel(level),
			review,
		}
		if err := f.SetSheetRow(sheet, cellName(1, row), &values); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}

		if opts.Colors && level != "" {
			color := service.ConfidenceColor(level)
			style, ok := fills[color]
			if !ok {
				var err error
				style, err = f.NewStyle(&excelize.Style{
					Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(color, "#")}},
				})
				if err != nil {
					return fmt.Errorf("style: %w", err)
				}
				fills[color] = style
			}
			cell := cellName(11, row)
			_ = f.SetCellStyle(sheet, cell, cell, style)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 6)
	_ = f.SetColWidth(sheet, "B", "B", 40)
	_ = f.SetColWidth(sheet, "C", "C", 16)
	_ = f.SetColWidth(sheet, "D", "E", 12)
	_ = f.SetColWidth(sheet, "G", "H", 40)
	_ = f.SetColWidth(sheet, "J", "J", 16)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func cellName(col, row int) string {
	c, _ := excelize.CoordinatesToCellName(col, row)
	return c
}
