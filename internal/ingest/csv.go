// Package ingest converts external files (CSV exports, OFX statements) into
// expenses.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ledger-sage/ledger-sage/internal/model"
)

// CSV column headers recognized by the importer, matched case-insensitively.
var csvColumns = map[string][]string{
	"date":     {"date"},
	"amount":   {"expense", "amount"},
	"category": {"category"},
	"remarks":  {"remarks", "memo", "description"},
}

var csvDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02T15:04:05Z07:00",
}

// ParseCSV reads a header-mapped CSV export into expenses. Date and amount
// columns are required; category and remarks are optional.
func ParseCSV(reader io.Reader) ([]model.Expense, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int)
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		for field, aliases := range csvColumns {
			for _, alias := range aliases {
				if name == alias {
					if _, taken := index[field]; !taken {
						index[field] = i
					}
				}
			}
		}
	}
	if _, ok := index["date"]; !ok {
		return nil, fmt.Errorf("CSV is missing a date column")
	}
	if _, ok := index["amount"]; !ok {
		return nil, fmt.Errorf("CSV is missing an expense/amount column")
	}

	var expenses []model.Expense
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		date, err := parseCSVDate(field(record, index, "date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(field(record, index, "amount"), ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount: %w", line, err)
		}

		expenses = append(expenses, model.Expense{
			Date:     date,
			Category: strings.ToLower(strings.TrimSpace(field(record, index, "category"))),
			Remarks:  strings.TrimSpace(field(record, index, "remarks")),
			Amount:   amount,
		})
	}

	return expenses, nil
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func parseCSVDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
