// Package model defines the core domain types shared across the application.
package model

import (
	"time"
)

// Expense represents a single spending record from any source.
type Expense struct {
	Date          time.Time
	Category      string // Normalized (lowercase, trimmed) specific category
	MajorCategory string // Broad group derived from Category via the category mapping
	Remarks       string // Free-text description, may be empty
	Amount        float64
}

// HasRemarks reports whether the record carries a usable description.
func (e Expense) HasRemarks() bool {
	return e.Remarks != ""
}
