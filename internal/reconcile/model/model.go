package model

import "github.com/shopspring/decimal"

// MatchType — какой сигнал первым дал совпадение.
type MatchType string

const (
	MatchNone         MatchType = "none"
	MatchCodeExact    MatchType = "code_exact"
	MatchCodeSimilar  MatchType = "code_similar"
	MatchBarcodeExact MatchType = "barcode_exact"
	MatchNameExact    MatchType = "name_exact"
	MatchNameSimilar  MatchType = "name_similar"
	MatchNamePartial  MatchType = "name_partial"
	MatchDescription  MatchType = "description"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Action — решение по строке накладной.
type Action string

const (
	ActionMatch  Action = "match"  // обновить существующий товар
	ActionNew    Action = "new"    // завести новый товар
	ActionManual Action = "manual" // выставляется оператором при ручном выборе
)

// CatalogProduct — товар из каталога POS. Ядро его не изменяет.
type CatalogProduct struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Barcode     string `json:"barcode,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// InvoiceLineItem — строка входящей накладной поставщика.
type InvoiceLineItem struct {
	Name        string          `json:"name"`
	Code        string          `json:"code,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
}

// MatchCandidate — пара (строка, товар) с оценкой.
type MatchCandidate struct {
	Product    CatalogProduct `json:"product"`
	Score      float64        `json:"score"` // 0..1
	MatchType  MatchType      `json:"matchType"`
	Confidence Confidence     `json:"confidence"`
}

// ReconciledItem — строка накладной с решением, отдаётся на ручную проверку.
type ReconciledItem struct {
	InvoiceLineItem
	Matches              []MatchCandidate `json:"matches"`
	BestMatch            *MatchCandidate  `json:"bestMatch"`
	SelectedProduct      *CatalogProduct  `json:"selectedProduct"`
	Action               Action           `json:"action"`
	LowConfidenceWarning bool             `json:"lowConfidenceWarning"`
	Confirmed            bool             `json:"isConfirmed"`
}

// Suggestion возвращает лучшего кандидата даже при низкой уверенности
// (для кнопки «использовать всё равно»).
func (r ReconciledItem) Suggestion() *MatchCandidate {
	if len(r.Matches) == 0 {
		return nil
	}
	m := r.Matches[0]
	return &m
}

// Summary — сводка по пакету.
type Summary struct {
	Lines         int `json:"lines"`
	Matched       int `json:"matched"`
	New           int `json:"new"`
	LowConfidence int `json:"lowConfidence"`
}
