package service

import (
	"testing"

	"github.com/hbollon/go-edlib"
	"github.com/stretchr/testify/assert"
)

var similarityPairs = [][2]string{
	{"kitten", "sitting"},
	{"papel bond carta", "papel bond oficio"},
	{"coca cola 600ml", "cocacola 600 ml"},
	{"lapicero bic", "lapiz bic"},
	{"abc", "xyz"},
	{"memoria usb", "memoria usb kingston"},
	{"niño", "nino"},
	{"a", ""},
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
	assert.Equal(t, 0, Levenshtein("", ""))
	assert.Equal(t, 4, Levenshtein("", "abcd"))
	assert.Equal(t, 1, Levenshtein("ñ", "n"))

	for _, p := range similarityPairs {
		assert.Equal(t, edlib.LevenshteinDistance(p[0], p[1]), Levenshtein(p[0], p[1]), "%q vs %q", p[0], p[1])
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1-3.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	assert.Equal(t, 1.0, Similarity("ABC-123", "abc123"))
	assert.Equal(t, 1.0, Similarity("Café", "cafe"))
	assert.Equal(t, 0.0, Similarity("", "abc"))
	assert.Equal(t, 0.0, Similarity("abc", ""))
	assert.Equal(t, 0.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("!!!", "abc"))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
}

func TestSimilarityProperties(t *testing.T) {
	t.Run("reflexive", func(t *testing.T) {
		for _, s := range []string{"a", "Lapicero Bic", "Memoria USB 32GB", "ñandú"} {
			assert.Equal(t, 1.0, Similarity(s, s), s)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		for _, p := range similarityPairs {
			assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "%q vs %q", p[0], p[1])
		}
	})

	t.Run("bounded", func(t *testing.T) {
		for _, p := range similarityPairs {
			s := Similarity(p[0], p[1])
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	})

	t.Run("one only for equal normalized strings", func(t *testing.T) {
		for _, p := range similarityPairs {
			if Normalize(p[0]) != Normalize(p[1]) {
				assert.Less(t, Similarity(p[0], p[1]), 1.0, "%q vs %q", p[0], p[1])
			}
		}
	})
}
