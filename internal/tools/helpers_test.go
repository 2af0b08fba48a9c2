package tools

import (
	"testing"
	"time"

	"github.com/ledger-sage/ledger-sage/internal/config"
	"github.com/ledger-sage/ledger-sage/internal/dataset"
	"github.com/ledger-sage/ledger-sage/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testMapping() config.CategoryMapping {
	return config.CategoryMapping{
		"grocery":     "Food",
		"snack":       "Food",
		"dining":      "Food",
		"gym":         "Fitness",
		"futsal game": "Fitness",
	}
}

// testDataset covers two years of spending with case-variant categories and
// a mix of filled and empty remarks.
func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	records := []model.Expense{
		{Date: day(2024, 1, 5), Category: "grocery", Remarks: "supermarket", Amount: 3200},
		{Date: day(2024, 1, 20), Category: "grocery", Remarks: "market", Amount: 2800},
		{Date: day(2024, 2, 10), Category: "snack", Amount: 450},
		{Date: day(2024, 2, 15), Category: "gym", Remarks: "monthly fee", Amount: 8000},
		{Date: day(2024, 3, 7), Category: "dining", Remarks: "izakaya with friends", Amount: 5600},
		{Date: day(2024, 12, 1), Category: "futsal game", Amount: 3000},
		{Date: day(2025, 1, 15), Category: "Futsal Game", Amount: 5000},
		{Date: day(2025, 2, 2), Category: "grocery", Remarks: "supermarket", Amount: 3500},
		{Date: day(2025, 3, 1), Category: "grocery", Remarks: "market", Amount: 3300},
	}
	return dataset.New(records, testMapping(), "¥")
}

var testNow = day(2025, 3, 15)
