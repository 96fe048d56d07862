package service

import "invoice-matcher/internal/reconcile/model"

// ConfidenceColor — цвет бейджа уверенности в интерфейсе проверки.
func ConfidenceColor(level model.Confidence) string {
	switch level {
	case model.ConfidenceHigh:
		return "#10b981" // green
	case model.ConfidenceMedium:
		return "#f59e0b" // yellow
	case model.ConfidenceLow:
		return "#ef4444" // red
	default:
		return "#6b7280" // gray
	}
}

// ConfidenceLabel — подпись бейджа (испанский, как в кассовом интерфейсе).
func ConfidenceLabel(level model.Confidence) string {
	switch level {
	case model.ConfidenceHigh:
		return "Alta"
	case model.ConfidenceMedium:
		return "Media"
	case model.ConfidenceLow:
		return "Baja"
	default:
		return "N/A"
	}
}
