package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"invoice-matcher/internal/config"
	"invoice-matcher/internal/invoice"
	"invoice-matcher/internal/reconcile/model"
	"invoice-matcher/internal/reconcile/report"
	recSvc "invoice-matcher/internal/reconcile/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MatchResponse — ответ POST /match.
type MatchResponse struct {
	Supplier string                 `json:"supplier"`
	Folio    string                 `json:"folio"`
	Items    []model.ReconciledItem `json:"items"`
	Summary  model.Summary          `json:"summary"`
}

// Match возвращает http.HandlerFunc для
// r.Post("/match", recHnd.Match(cfg, matcher)).
// Принимает multipart (поле file) или JSON {"items": [...]}.
func Match(cfg config.Config, matcher *recSvc.Matcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := zerolog.Ctx(r.Context())

		inv, items, ok := matchRequest(w, r, cfg, matcher)
		if !ok {
			return
		}

		res := MatchResponse{
			Supplier: inv.Supplier,
			Folio:    inv.Folio,
			Items:    items,
			Summary:  recSvc.Summarize(items),
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, res)

		log.Info().
			Str("folio", inv.Folio).
			Int("lines", res.Summary.Lines).
			Int("matched", res.Summary.Matched).
			Int("low_confidence", res.Summary.LowConfidence).
			Dur("elapsed", time.Since(start)).
			Msg("match done")
	}
}

// Review — то же сопоставление, но ответом лист проверки xlsx.
// Язык берётся из ?lang=, иначе REVIEW_LANGUAGE; ?colors=0 отключает заливку.
func Review(cfg config.Config, matcher *recSvc.Matcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := zerolog.Ctx(r.Context())

		inv, items, ok := matchRequest(w, r, cfg, matcher)
		if !ok {
			return
		}

		q := r.URL.Query()
		lang := strings.TrimSpace(q.Get("lang"))
		if lang == "" {
			lang = cfg.ReviewLanguage
		}
		opts := report.FormattingOptions{Language: lang, Colors: toBool(q.Get("colors"), true)}

		// в буфер: при ошибке ещё можно ответить JSON
		var buf bytes.Buffer
		if err := report.WriteReview(&buf, report.Meta{Supplier: inv.Supplier, Folio: inv.Folio}, items, opts); err != nil {
			log.Error().Err(err).Msg("review sheet")
			writeError(w, http.StatusInternalServerError, "failed to build review sheet")
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, reviewFilename(inv.Folio)))
		w.Header().Set("Cache-Control", "no-store")
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Error().Err(err).Msg("write xlsx")
			return
		}
		log.Info().Str("folio", inv.Folio).Int("lines", len(items)).Msg("review sheet sent")
	}
}

// matchRequest разбирает запрос и прогоняет сопоставление. При ошибке
// ответ уже записан и ok=false.
func matchRequest(w http.ResponseWriter, r *http.Request, cfg config.Config, matcher *recSvc.Matcher) (invoice.Invoice, []model.ReconciledItem, bool) {
	log := zerolog.Ctx(r.Context())
	defer r.Body.Close()

	inv, err := readInvoice(r, cfg)
	if err != nil {
		status := statusFor(err)
		log.Warn().Err(err).Int("status", status).Msg("bad invoice")
		writeError(w, status, err.Error())
		return invoice.Invoice{}, nil, false
	}

	ctx := r.Context()
	if cfg.CatalogTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.CatalogTimeout)
		defer cancel()
	}
	items, err := matcher.MatchInvoiceItems(ctx, inv.Items)
	if err != nil {
		log.Error().Err(err).Msg("match")
		if errors.Is(err, recSvc.ErrCatalogUnavailable) {
			writeError(w, http.StatusBadGateway, "product catalog unavailable")
		} else {
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return invoice.Invoice{}, nil, false
	}
	return inv, items, true
}

// jsonInvoice — тело запроса для уже разобранной накладной.
type jsonInvoice struct {
	Supplier string                  `json:"supplier"`
	Folio    string                  `json:"folio"`
	Items    []model.InvoiceLineItem `json:"items"`
}

var errBadRequest = errors.New("bad request")

func readInvoice(r *http.Request, cfg config.Config) (invoice.Invoice, error) {
	if strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		var body jsonInvoice
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return invoice.Invoice{}, fmt.Errorf("%w: invalid json: %w", errBadRequest, err)
		}
		if len(body.Items) == 0 {
			return invoice.Invoice{}, invoice.ErrNoItems
		}
		return invoice.Invoice{Supplier: body.Supplier, Folio: body.Folio, Items: body.Items}, nil
	}

	maxMem := int64(cfg.MaxUploadMB) << 20
	if maxMem <= 0 {
		maxMem = 32 << 20
	}
	if err := r.ParseMultipartForm(maxMem); err != nil {
		return invoice.Invoice{}, fmt.Errorf("%w: bad multipart form: %w", errBadRequest, err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("%w: missing file: %w", errBadRequest, err)
	}
	defer file.Close()

	// подсказки колонок от оператора; пустые поля — дефолтные алиасы
	m := invoice.Mapping{
		NameKey:    r.FormValue("name_col"),
		CodeKey:    r.FormValue("code_col"),
		BarcodeKey: r.FormValue("barcode_col"),
		DescKey:    r.FormValue("description_col"),
		QtyKey:     r.FormValue("qty_col"),
		CostKey:    r.FormValue("cost_col"),
		PriceKey:   r.FormValue("price_col"),
		HeaderRow:  atoi(r.FormValue("header_row"), 1),
	}
	return invoice.Parse(file, header.Filename, m)
}
