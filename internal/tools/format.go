package tools

import (
	"fmt"
	"math"
	"sort"

	"github.com/ledger-sage/ledger-sage/internal/model"
)

// formatAmount renders an amount as the currency symbol followed by the
// rounded value with thousands separators, e.g. "¥12,345".
func formatAmount(currency string, v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return sign + currency + string(out)
}

func sumAmounts(records []model.Expense) float64 {
	var total float64
	for _, e := range records {
		total += e.Amount
	}
	return total
}

func meanAmount(records []model.Expense) float64 {
	if len(records) == 0 {
		return 0
	}
	return sumAmounts(records) / float64(len(records))
}

func maxAmount(records []model.Expense) float64 {
	var max float64
	for _, e := range records {
		if e.Amount > max {
			max = e.Amount
		}
	}
	return max
}

func medianAmount(records []model.Expense) float64 {
	if len(records) == 0 {
		return 0
	}
	values := make([]float64, len(records))
	for i, e := range records {
		values[i] = e.Amount
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

// stddevAmount is the sample standard deviation. Zero when fewer than two
// records.
func stddevAmount(records []model.Expense) float64 {
	if len(records) < 2 {
		return 0
	}
	mean := meanAmount(records)
	var ss float64
	for _, e := range records {
		d := e.Amount - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(records)-1))
}
