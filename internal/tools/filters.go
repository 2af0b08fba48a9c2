package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledger-sage/ledger-sage/internal/model"
)

// TimeFilter selects expenses by period. Exactly one interpretation applies,
// in precedence order: full date, year+month, year, year range, trailing
// months, no filter.
type TimeFilter struct {
	Year      int
	Month     int
	Day       int
	StartYear int
	EndYear   int
	Months    int
}

// IsZero reports whether no time constraint was given.
func (f TimeFilter) IsZero() bool {
	return f.Year == 0 && f.StartYear == 0 && f.EndYear == 0 && f.Months == 0
}

// Apply returns the expenses inside the filtered period. now anchors the
// trailing-months window.
func (f TimeFilter) Apply(records []model.Expense, now time.Time) []model.Expense {
	switch {
	case f.Year != 0 && f.Month != 0 && f.Day != 0:
		day := time.Date(f.Year, time.Month(f.Month), f.Day, 0, 0, 0, 0, time.UTC)
		return filter(records, func(e model.Expense) bool {
			y, m, d := e.Date.Date()
			return y == day.Year() && m == day.Month() && d == day.Day()
		})
	case f.Year != 0 && f.Month != 0:
		return filter(records, func(e model.Expense) bool {
			return e.Date.Year() == f.Year && e.Date.Month() == time.Month(f.Month)
		})
	case f.Year != 0:
		return filter(records, func(e model.Expense) bool {
			return e.Date.Year() == f.Year
		})
	case f.StartYear != 0 && f.EndYear != 0:
		return filter(records, func(e model.Expense) bool {
			return e.Date.Year() >= f.StartYear && e.Date.Year() <= f.EndYear
		})
	case f.Months != 0:
		cutoff := now.AddDate(0, -f.Months, 0)
		return filter(records, func(e model.Expense) bool {
			return !e.Date.Before(cutoff)
		})
	default:
		return records
	}
}

// Label describes the filtered period for result messages.
func (f TimeFilter) Label() string {
	switch {
	case f.Year != 0 && f.Month != 0 && f.Day != 0:
		return fmt.Sprintf("%04d-%02d-%02d", f.Year, f.Month, f.Day)
	case f.Year != 0 && f.Month != 0:
		return fmt.Sprintf("%d-%02d", f.Year, f.Month)
	case f.Year != 0:
		return fmt.Sprintf("%d", f.Year)
	case f.StartYear != 0 && f.EndYear != 0:
		return fmt.Sprintf("%d-%d", f.StartYear, f.EndYear)
	case f.Months != 0:
		return fmt.Sprintf("last %d months", f.Months)
	default:
		return "all time"
	}
}

// CategoryFilter selects expenses by category scope. Precedence: specific
// category, major category, remarks substring.
type CategoryFilter struct {
	Category      string
	MajorCategory string
	Remarks       string
}

// IsZero reports whether no category constraint was given.
func (f CategoryFilter) IsZero() bool {
	return f.Category == "" && f.MajorCategory == "" && f.Remarks == ""
}

// Apply returns the expenses matching the category scope. Category and major
// category compare case-insensitively; remarks is a case-insensitive
// substring match.
func (f CategoryFilter) Apply(records []model.Expense) []model.Expense {
	switch {
	case f.Category != "":
		want := strings.ToLower(f.Category)
		return filter(records, func(e model.Expense) bool {
			return strings.ToLower(e.Category) == want
		})
	case f.MajorCategory != "":
		want := strings.ToLower(f.MajorCategory)
		return filter(records, func(e model.Expense) bool {
			return strings.ToLower(e.MajorCategory) == want
		})
	case f.Remarks != "":
		want := strings.ToLower(f.Remarks)
		return filter(records, func(e model.Expense) bool {
			return strings.Contains(strings.ToLower(e.Remarks), want)
		})
	default:
		return records
	}
}

// Label describes the scope for result messages. fallback names the
// unfiltered scope, which differs per tool ("Total", "all expenses", ...).
func (f CategoryFilter) Label(fallback string) string {
	switch {
	case f.Category != "":
		return f.Category
	case f.MajorCategory != "":
		return f.MajorCategory
	case f.Remarks != "":
		return fmt.Sprintf("'%s'", f.Remarks)
	default:
		return fallback
	}
}

// Period identifies one side of a comparison: a year, a month, or a day.
type Period struct {
	Year  int
	Month int
	Day   int
}

// Label formats the period for messages.
func (p Period) Label() string {
	switch {
	case p.Month != 0 && p.Day != 0:
		return fmt.Sprintf("%04d-%02d-%02d", p.Year, p.Month, p.Day)
	case p.Month != 0:
		return fmt.Sprintf("%d-%02d", p.Year, p.Month)
	default:
		return fmt.Sprintf("%d", p.Year)
	}
}

// Before reports whether p starts before other.
func (p Period) Before(other Period) bool {
	return p.start().Before(other.start())
}

func (p Period) start() time.Time {
	month, day := p.Month, p.Day
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	return time.Date(p.Year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// Apply returns the expenses inside the period.
func (p Period) Apply(records []model.Expense) []model.Expense {
	switch {
	case p.Month != 0 && p.Day != 0:
		return filter(records, func(e model.Expense) bool {
			y, m, d := e.Date.Date()
			return y == p.Year && m == time.Month(p.Month) && d == p.Day
		})
	case p.Month != 0:
		return filter(records, func(e model.Expense) bool {
			return e.Date.Year() == p.Year && e.Date.Month() == time.Month(p.Month)
		})
	default:
		return filter(records, func(e model.Expense) bool {
			return e.Date.Year() == p.Year
		})
	}
}

func filter(records []model.Expense, keep func(model.Expense) bool) []model.Expense {
	out := make([]model.Expense, 0, len(records))
	for _, e := range records {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
