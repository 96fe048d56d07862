package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"invoice-matcher/internal/reconcile/model"
)

// ErrCatalogUnavailable — каталог не удалось получить, пакет целиком не обработан.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// CatalogProvider — источник каталога товаров (БД, файл, демо-набор).
type CatalogProvider interface {
	GetAllProducts(ctx context.Context) ([]model.CatalogProduct, error)
}

// MatchItems — синхронная сверка пакета строк с уже загруженным каталогом.
// Одна ReconciledItem на строку, порядок входа сохраняется.
func MatchItems(items []model.InvoiceLineItem, catalog []model.CatalogProduct) []model.ReconciledItem {
	norm := normalizeCatalog(catalog)
	out := make([]model.ReconciledItem, 0, len(items))
	for _, it := range items {
		out = append(out, Reconcile(it, rankNormalized(it, norm)))
	}
	return out
}

// Summarize считает итоги по пакету для ответа и логов.
func Summarize(items []model.ReconciledItem) model.Summary {
	s := model.Summary{Lines: len(items)}
	for _, it := range items {
		switch it.Action {
		case model.ActionMatch:
			s.Matched++
		default:
			s.New++
		}
		if it.LowConfidenceWarning {
			s.LowConfidence++
		}
	}
	return s
}

// Matcher связывает поставщика каталога со сверкой.
type Matcher struct {
	catalog CatalogProvider
	logger  zerolog.Logger
}

func NewMatcher(catalog CatalogProvider, logger zerolog.Logger) *Matcher {
	return &Matcher{catalog: catalog, logger: logger}
}

// MatchInvoiceItems — основная сверка накладной. Каталог читается один раз на
// пакет; ошибка каталога валит весь пакет, повторов нет.
func (m *Matcher) MatchInvoiceItems(ctx context.Context, items []model.InvoiceLineItem) ([]model.ReconciledItem, error) {
	start := time.Now()

	catalog, err := m.catalog.GetAllProducts(ctx)
	if err != nil {
		m.logger.Error().Err(err).Int("lines", len(items)).Msg("catalog fetch failed")
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	res := MatchItems(items, catalog)

	s := Summarize(res)
	m.logger.Info().
		Int("lines", s.Lines).
		Int("catalog", len(catalog)).
		Int("matched", s.Matched).
		Int("new", s.New).
		Int("low_confidence", s.LowConfidence).
		Dur("elapsed", time.Since(start)).
		Msg("invoice matched")
	return res, nil
}
