// Package dataset holds the per-request analysis universe: the expense
// records, the derived category vocabulary, and the filter primitives the
// analysis tools are built on.
package dataset

import (
	"sort"
	"strings"

	"github.com/ledger-sage/ledger-sage/internal/config"
	"github.com/ledger-sage/ledger-sage/internal/model"
)

// DefaultCurrency is the currency symbol used when a request specifies none.
const DefaultCurrency = "¥"

// Dataset is the ordered collection of expense records for one request.
// It is immutable after New and must never be shared across requests.
type Dataset struct {
	Records  []model.Expense
	Currency string

	vocab Vocabulary
}

// New builds a Dataset from raw records. Categories are normalized
// (lowercase, trimmed) and the major category is derived through the mapping,
// defaulting to config.DefaultMajorCategory for unmapped categories and
// staying empty when the category itself is empty.
func New(records []model.Expense, mapping config.CategoryMapping, currency string) *Dataset {
	if currency == "" {
		currency = DefaultCurrency
	}

	normalized := make([]model.Expense, len(records))
	for i, rec := range records {
		rec.Category = strings.ToLower(strings.TrimSpace(rec.Category))
		rec.MajorCategory = mapping.Lookup(rec.Category)
		normalized[i] = rec
	}

	return &Dataset{
		Records:  normalized,
		Currency: currency,
		vocab:    buildVocabulary(normalized),
	}
}

// Vocabulary returns the category vocabulary derived from this dataset.
func (d *Dataset) Vocabulary() Vocabulary {
	return d.vocab
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Vocabulary exposes case-insensitive lookups from a lowercased name to the
// canonical stored name, for both specific and major categories. It is
// rebuilt for every dataset and never mutated in place.
type Vocabulary struct {
	categories map[string]string
	majors     map[string]string
}

func buildVocabulary(records []model.Expense) Vocabulary {
	v := Vocabulary{
		categories: make(map[string]string),
		majors:     make(map[string]string),
	}
	for _, rec := range records {
		if rec.Category != "" {
			v.categories[strings.ToLower(rec.Category)] = rec.Category
		}
		if rec.MajorCategory != "" {
			v.majors[strings.ToLower(rec.MajorCategory)] = rec.MajorCategory
		}
	}
	return v
}

// Category returns the canonical specific-category name for a
// case-insensitive candidate.
func (v Vocabulary) Category(name string) (string, bool) {
	canonical, ok := v.categories[strings.ToLower(name)]
	return canonical, ok
}

// MajorCategory returns the canonical major-category name for a
// case-insensitive candidate.
func (v Vocabulary) MajorCategory(name string) (string, bool) {
	canonical, ok := v.majors[strings.ToLower(name)]
	return canonical, ok
}

// Categories returns the distinct canonical specific-category names, sorted.
func (v Vocabulary) Categories() []string {
	names := make([]string, 0, len(v.categories))
	for _, canonical := range v.categories {
		names = append(names, canonical)
	}
	sort.Strings(names)
	return names
}

// MajorCategories returns the distinct canonical major-category names, sorted.
func (v Vocabulary) MajorCategories() []string {
	names := make([]string, 0, len(v.majors))
	for _, canonical := range v.majors {
		names = append(names, canonical)
	}
	sort.Strings(names)
	return names
}

// IsEmpty reports whether the dataset produced no vocabulary at all, which
// forces every candidate into the remarks fallback path.
func (v Vocabulary) IsEmpty() bool {
	return len(v.categories) == 0 && len(v.majors) == 0
}
