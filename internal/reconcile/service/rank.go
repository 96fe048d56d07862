package service

import (
	"sort"
	"strings"

	"invoice-matcher/internal/reconcile/model"
)

// Веса сигналов. Каждый взвешенный балл ниже порога уровня выше:
// точный код > точный штрихкод > сильное имя > слабое имя > описание.
const (
	scoreCodeExact    = 0.95
	weightCodeSimilar = 0.9
	scoreBarcodeExact = 0.9
	weightNameStrong  = 0.85
	weightNameSimilar = 0.7
	weightNamePartial = 0.5
	weightDescription = 0.4
)

// Пороги схожести
const (
	codeSimilarMin        = 0.8
	nameHighMin           = 0.95
	nameStrongMin         = 0.9
	nameSimilarMin        = 0.7
	namePartialMin        = 0.5
	descriptionMin        = 0.7
	descriptionScoreBelow = 0.6
	descriptionNameLen    = 10

	// KeepThreshold — кандидат остаётся только при score строго больше.
	KeepThreshold = 0.3
	// MaxMatches — сколько кандидатов отдаём на строку.
	MaxMatches = 5
)

type normalizedProduct struct {
	product     model.CatalogProduct
	code        string
	barcode     string
	name        string
	description string
}

type normalizedItem struct {
	name    string
	code    string
	barcode string
}

func normalizeCatalog(catalog []model.CatalogProduct) []normalizedProduct {
	out := make([]normalizedProduct, len(catalog))
	for i, p := range catalog {
		out[i] = normalizedProduct{
			product:     p,
			code:        Normalize(p.Code),
			barcode:     Normalize(p.Barcode),
			name:        Normalize(p.Name),
			description: Normalize(p.Description),
		}
	}
	return out
}

// RankMatches оценивает строку накладной против всего каталога и возвращает
// до MaxMatches кандидатов по убыванию score. При равном score сохраняется
// порядок каталога.
func RankMatches(item model.InvoiceLineItem, catalog []model.CatalogProduct) []model.MatchCandidate {
	return rankNormalized(item, normalizeCatalog(catalog))
}

func rankNormalized(item model.InvoiceLineItem, catalog []normalizedProduct) []model.MatchCandidate {
	matches := make([]model.MatchCandidate, 0)
	if strings.TrimSpace(item.Name) == "" {
		return matches
	}
	ni := normalizedItem{
		name:    Normalize(item.Name),
		code:    Normalize(item.Code),
		barcode: Normalize(item.Barcode),
	}

	for i := range catalog {
		c := scoreProduct(ni, &catalog[i])
		if c.Score > KeepThreshold {
			matches = append(matches, c)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	return matches
}

// tally копит score по правилу max, а метку (тип + уверенность) оставляет
// за первым сработавшим сигналом.
type tally struct {
	score      float64
	matchType  model.MatchType
	confidence model.Confidence
}

func (t *tally) raise(score float64, mt model.MatchType, conf model.Confidence) {
	if score > t.score {
		t.score = score
	}
	if t.matchType == model.MatchNone {
		t.matchType = mt
		t.confidence = conf
	}
}

func scoreProduct(it normalizedItem, p *normalizedProduct) model.MatchCandidate {
	t := tally{matchType: model.MatchNone, confidence: model.ConfidenceLow}

	// (1) код
	if it.code != "" && p.code != "" {
		sim := similarity(it.code, p.code)
		switch {
		case sim == 1:
			t.raise(scoreCodeExact, model.MatchCodeExact, model.ConfidenceHigh)
		case sim > codeSimilarMin:
			t.raise(sim*weightCodeSimilar, model.MatchCodeSimilar, model.ConfidenceHigh)
		}
	}

	// (2) штрихкод — только точное совпадение
	if it.barcode != "" && p.barcode != "" && similarity(it.barcode, p.barcode) == 1 {
		t.raise(scoreBarcodeExact, model.MatchBarcodeExact, model.ConfidenceHigh)
	}

	// (3) наименование
	if p.name != "" {
		sim := similarity(it.name, p.name)
		switch {
		case sim >= nameStrongMin:
			conf := model.ConfidenceMedium
			if sim >= nameHighMin {
				conf = model.ConfidenceHigh
			}
			t.raise(sim*weightNameStrong, model.MatchNameExact, conf)
		case sim >= nameSimilarMin:
			t.raise(sim*weightNameSimilar, model.MatchNameSimilar, model.ConfidenceMedium)
		case sim >= namePartialMin:
			t.raise(sim*weightNamePartial, model.MatchNamePartial, model.ConfidenceLow)
		}
	}

	// (4) описание — слабый сигнал, только для длинных имён и пока score низкий
	if p.description != "" && len(it.name) > descriptionNameLen && t.score < descriptionScoreBelow {
		if sim := similarity(it.name, p.description); sim > descriptionMin {
			t.raise(sim*weightDescription, model.MatchDescription, model.ConfidenceLow)
		}
	}

	return model.MatchCandidate{
		Product:    p.product,
		Score:      t.score,
		MatchType:  t.matchType,
		Confidence: t.confidence,
	}
}
