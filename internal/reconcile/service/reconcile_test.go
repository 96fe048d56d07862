package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-matcher/internal/reconcile/model"
)

func TestReconcile(t *testing.T) {
	item := model.InvoiceLineItem{Name: "Marcador azul"}
	product := model.CatalogProduct{ID: "7", Name: "Marcador rojo"}

	t.Run("no matches suggests new product", func(t *testing.T) {
		got := Reconcile(item, nil)
		assert.Equal(t, model.ActionNew, got.Action)
		assert.Nil(t, got.BestMatch)
		assert.Nil(t, got.SelectedProduct)
		assert.False(t, got.LowConfidenceWarning)
		assert.NotNil(t, got.Matches)
		assert.Empty(t, got.Matches)
		assert.Nil(t, got.Suggestion())
	})

	t.Run("low confidence is never applied", func(t *testing.T) {
		matches := []model.MatchCandidate{{Product: product, Score: 0.34, MatchType: model.MatchNamePartial, Confidence: model.ConfidenceLow}}
		got := Reconcile(item, matches)
		assert.Equal(t, model.ActionNew, got.Action)
		assert.Nil(t, got.BestMatch)
		assert.Nil(t, got.SelectedProduct)
		assert.True(t, got.LowConfidenceWarning)
		require.Len(t, got.Matches, 1)
		require.NotNil(t, got.Suggestion())
		assert.Equal(t, "7", got.Suggestion().Product.ID)
	})

	for _, conf := range []model.Confidence{model.ConfidenceHigh, model.ConfidenceMedium} {
		t.Run(string(conf)+" confidence is matched", func(t *testing.T) {
			matches := []model.MatchCandidate{
				{Product: product, Score: 0.8, MatchType: model.MatchNameSimilar, Confidence: conf},
				{Product: model.CatalogProduct{ID: "8"}, Score: 0.5, MatchType: model.MatchNameSimilar, Confidence: model.ConfidenceMedium},
			}
			got := Reconcile(item, matches)
			assert.Equal(t, model.ActionMatch, got.Action)
			require.NotNil(t, got.BestMatch)
			assert.Equal(t, "7", got.BestMatch.Product.ID)
			require.NotNil(t, got.SelectedProduct)
			assert.Equal(t, "7", got.SelectedProduct.ID)
			assert.False(t, got.LowConfidenceWarning)
			assert.Equal(t, item.Name, got.Name)
		})
	}
}

func TestReconcile_OnlyLowCandidateFromRanker(t *testing.T) {
	catalog := []model.CatalogProduct{{ID: "7", Name: "Marcador rojo"}}
	item := model.InvoiceLineItem{Name: "Marcador azul"}

	got := Reconcile(item, RankMatches(item, catalog))
	require.Len(t, got.Matches, 1)
	assert.Equal(t, model.ConfidenceLow, got.Matches[0].Confidence)
	assert.Nil(t, got.SelectedProduct)
	assert.Equal(t, model.ActionNew, got.Action)
	assert.True(t, got.LowConfidenceWarning)
}
