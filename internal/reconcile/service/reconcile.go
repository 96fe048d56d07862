package service

import "invoice-matcher/internal/reconcile/model"

// Reconcile принимает решение по строке: сопоставить с товаром из каталога
// или завести новый. Кандидат с низкой уверенностью никогда не применяется
// автоматически: он остаётся в Matches как подсказка, а BestMatch = nil.
func Reconcile(item model.InvoiceLineItem, matches []model.MatchCandidate) model.ReconciledItem {
	if matches == nil {
		matches = []model.MatchCandidate{}
	}
	out := model.ReconciledItem{
		InvoiceLineItem: item,
		Matches:         matches,
		Action:          model.ActionNew,
	}
	if len(matches) == 0 {
		return out
	}

	best := matches[0]
	if best.Confidence == model.ConfidenceLow {
		out.LowConfidenceWarning = true
		return out
	}

	product := best.Product
	out.BestMatch = &best
	out.SelectedProduct = &product
	out.Action = model.ActionMatch
	return out
}
