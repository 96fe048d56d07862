// Package invoice разбирает накладные поставщиков (таблицы и CFDI XML)
// в строки для сверки с каталогом.
package invoice

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"invoice-matcher/internal/fileio"
	"invoice-matcher/internal/reconcile/model"
	"invoice-matcher/internal/utils"
)

var (
	ErrUnsupportedFile = errors.New("unsupported invoice format, use XML (CFDI), CSV, XLS or XLSX")
	ErrNoItems         = errors.New("no line items found in invoice")
	ErrNoNameColumn    = errors.New("invoice table has no name/description column")
	ErrInvalidXML      = errors.New("invalid invoice XML")
)

// Invoice — разобранная накладная.
type Invoice struct {
	Supplier string                  `json:"supplier"`
	Folio    string                  `json:"folio"`
	Items    []model.InvoiceLineItem `json:"items"`
}

// Mapping — какие колонки таблицы что означают. Варианты через "|".
type Mapping struct {
	NameKey    string
	CodeKey    string
	BarcodeKey string
	DescKey    string
	QtyKey     string
	CostKey    string
	PriceKey   string
	HeaderRow  int // строка заголовков (1-based)
}

// DefaultMapping — заголовки, которые встречаются в выгрузках поставщиков.
func DefaultMapping() Mapping {
	return Mapping{
		NameKey:    "nombre|name|producto|descripcion|concepto|articulo|item",
		CodeKey:    "codigo|code|sku|clave|no identificacion|referencia",
		BarcodeKey: "codigo de barras|barcode|ean|upc|gtin",
		DescKey:    "descripcion|description",
		QtyKey:     "cantidad|stock|quantity|qty|piezas|unidades",
		CostKey:    "costo|cost|compra|valor unitario|precio unitario|unit cost",
		PriceKey:   "precio|price|venta",
		HeaderRow:  1,
	}
}

// withDefaults подставляет дефолты в пустые поля.
func (m Mapping) withDefaults() Mapping {
	d := DefaultMapping()
	if strings.TrimSpace(m.NameKey) == "" {
		m.NameKey = d.NameKey
	}
	if strings.TrimSpace(m.CodeKey) == "" {
		m.CodeKey = d.CodeKey
	}
	if strings.TrimSpace(m.BarcodeKey) == "" {
		m.BarcodeKey = d.BarcodeKey
	}
	if strings.TrimSpace(m.DescKey) == "" {
		m.DescKey = d.DescKey
	}
	if strings.TrimSpace(m.QtyKey) == "" {
		m.QtyKey = d.QtyKey
	}
	if strings.TrimSpace(m.CostKey) == "" {
		m.CostKey = d.CostKey
	}
	if strings.TrimSpace(m.PriceKey) == "" {
		m.PriceKey = d.PriceKey
	}
	if m.HeaderRow <= 0 {
		m.HeaderRow = 1
	}
	return m
}

// Parse выбирает парсер по расширению файла.
func Parse(r io.Reader, filename string, m Mapping) (Invoice, error) {
	var (
		inv Invoice
		err error
	)
	switch {
	case strings.EqualFold(filepath.Ext(filename), ".xml"):
		inv, err = parseCFDI(r)
	case fileio.IsTabular(filename):
		inv, err = parseTable(r, filename, m.withDefaults())
	default:
		return Invoice{}, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}
	if err != nil {
		return Invoice{}, err
	}
	if len(inv.Items) == 0 {
		return Invoice{}, ErrNoItems
	}
	return inv, nil
}

// columns — разрешённые заголовки конкретной таблицы.
type columns struct {
	name, code, barcode, desc, qty, cost, price string
}

func resolveColumns(headers []string, m Mapping) columns {
	var c columns
	c.name = fileio.ResolveKey(headers, m.NameKey)
	// штрихкод раньше кода: "codigo de barras" содержит "codigo"
	c.barcode = fileio.ResolveKey(headers, m.BarcodeKey, c.name)
	c.code = fileio.ResolveKey(headers, m.CodeKey, c.name, c.barcode)
	c.desc = fileio.ResolveKey(headers, m.DescKey, c.name, c.barcode, c.code)
	c.qty = fileio.ResolveKey(headers, m.QtyKey, c.name, c.barcode, c.code, c.desc)
	c.cost = fileio.ResolveKey(headers, m.CostKey, c.name, c.barcode, c.code, c.desc, c.qty)
	c.price = fileio.ResolveKey(headers, m.PriceKey, c.name, c.barcode, c.code, c.desc, c.qty, c.cost)
	return c
}

func parseTable(r io.Reader, filename string, m Mapping) (Invoice, error) {
	maps, err := fileio.ReadAnyMaps(r, filename, m.HeaderRow)
	if err != nil {
		return Invoice{}, err
	}
	if len(maps) == 0 {
		return Invoice{}, ErrNoItems
	}
	cols := resolveColumns(fileio.Headers(maps), m)
	if cols.name == "" {
		return Invoice{}, ErrNoNameColumn
	}
	return Invoice{Items: toItems(maps, cols)}, nil
}

func toItems(maps []map[string]string, c columns) []model.InvoiceLineItem {
	items := make([]model.InvoiceLineItem, 0, len(maps))
	for _, rec := range maps {
		// пропуск повторных шапок
		if looksLikeHeaderMap(rec) {
			continue
		}
		name := strings.TrimSpace(rec[c.name])
		if name == "" || isTotalsRow(name) {
			continue
		}

		it := model.InvoiceLineItem{
			Name:        name,
			Code:        strings.TrimSpace(rec[c.code]),
			Barcode:     strings.TrimSpace(rec[c.barcode]),
			Description: strings.TrimSpace(rec[c.desc]),
			Quantity:    quantity(rec[c.qty]),
			UnitCost:    unitCost(rec[c.cost], rec[c.price]),
		}
		if it.Barcode == "" {
			it.Barcode = it.Code
		}
		if it.Description == "" {
			it.Description = name
		}
		items = append(items, it)
	}
	return items
}

func isTotalsRow(name string) bool {
	switch fileio.NormHeader(name) {
	case "total", "subtotal", "iva", "total general", "importe total":
		return true
	}
	return false
}

// quantity: пусто/ноль/мусор → 1 шт.
func quantity(s string) decimal.Decimal {
	if q, ok := utils.ParseAmount(s); ok && q.IsPositive() {
		return q
	}
	return decimal.NewFromInt(1)
}

// unitCost: колонка стоимости, иначе цена.
func unitCost(cost, price string) decimal.Decimal {
	if c, ok := utils.ParseAmount(cost); ok && !c.IsZero() {
		return c
	}
	if p, ok := utils.ParseAmount(price); ok {
		return p
	}
	return decimal.Zero
}
