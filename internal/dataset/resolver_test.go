package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-sage/ledger-sage/internal/model"
)

func testVocabulary(t *testing.T) Vocabulary {
	t.Helper()
	ds := New(sampleRecords(), testMapping(), "¥")
	return ds.Vocabulary()
}

func TestResolver_Resolve(t *testing.T) {
	vocab := testVocabulary(t)
	r := NewResolver()

	tests := []struct {
		name           string
		candidate      string
		wantKind       MatchKind
		wantCanonical  string
		wantConfidence float64
	}{
		{
			name:           "exact category match",
			candidate:      "futsal game",
			wantKind:       MatchCategory,
			wantCanonical:  "futsal game",
			wantConfidence: 1.0,
		},
		{
			name:           "exact major category match",
			candidate:      "Food",
			wantKind:       MatchMajorCategory,
			wantCanonical:  "Food",
			wantConfidence: 1.0,
		},
		{
			name:           "case insensitive",
			candidate:      "FOOD",
			wantKind:       MatchMajorCategory,
			wantCanonical:  "Food",
			wantConfidence: 1.0,
		},
		{
			name:           "plural maps to singular",
			candidate:      "snacks",
			wantKind:       MatchCategory,
			wantCanonical:  "snack",
			wantConfidence: 0.9,
		},
		{
			name:           "ies plural maps to y",
			candidate:      "groceries",
			wantKind:       MatchCategory,
			wantCanonical:  "grocery",
			wantConfidence: 0.9,
		},
		{
			name:           "fuzzy near miss",
			candidate:      "futsal gam",
			wantKind:       MatchCategory,
			wantCanonical:  "futsal game",
			wantConfidence: 0.8,
		},
		{
			name:          "wrapped in backticks",
			candidate:     "`gym`",
			wantKind:      MatchCategory,
			wantCanonical: "gym",

			wantConfidence: 1.0,
		},
		{
			name:           "wrapped in quotes",
			candidate:      "'Food'",
			wantKind:       MatchMajorCategory,
			wantCanonical:  "Food",
			wantConfidence: 1.0,
		},
		{
			name:      "unknown term",
			candidate: "starbucks",
			wantKind:  MatchNone,
		},
		{
			name:      "empty candidate",
			candidate: "",
			wantKind:  MatchNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, canonical, confidence := r.Resolve(tt.candidate, vocab)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantCanonical, canonical)
			if tt.wantConfidence > 0 {
				assert.InDelta(t, tt.wantConfidence, confidence, 0.001)
			}
		})
	}
}

func TestResolver_MajorWinsTies(t *testing.T) {
	// "food" exists as a specific category AND as the major category Food.
	// The broader interpretation must win at equal score.
	ds := New([]model.Expense{
		{Date: day(2024, 1, 1), Category: "food", Amount: 100},
		{Date: day(2024, 1, 2), Category: "grocery", Amount: 200},
	}, testMapping(), "¥")

	r := NewResolver()
	kind, canonical, confidence := r.Resolve("food", ds.Vocabulary())

	assert.Equal(t, MatchMajorCategory, kind)
	assert.Equal(t, "Food", canonical)
	assert.InDelta(t, 1.0, confidence, 0.001)
}

func TestResolver_EmptyVocabulary(t *testing.T) {
	r := NewResolver()
	kind, canonical, _ := r.Resolve("anything", Vocabulary{})

	assert.Equal(t, MatchNone, kind)
	assert.Empty(t, canonical)
}

func TestResolver_ConfigurableCutoff(t *testing.T) {
	vocab := testVocabulary(t)

	strict := Resolver{FuzzyCutoff: 0.99, PluralConfidence: 0.9}
	kind, _, _ := strict.Resolve("futsal gam", vocab)
	require.Equal(t, MatchNone, kind)

	lenient := NewResolver()
	kind, _, _ = lenient.Resolve("futsal gam", vocab)
	require.Equal(t, MatchCategory, kind)
}

func TestTrimCandidate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  grocery  ", "grocery"},
		{"`grocery`", "grocery"},
		{"'grocery'", "grocery"},
		{`"grocery"`, "grocery"},
		{"` 'grocery' `", "grocery"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimCandidate(tt.in))
	}
}
