package tools

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ledger-sage/ledger-sage/internal/chart"
	"github.com/ledger-sage/ledger-sage/internal/dataset"
	"github.com/ledger-sage/ledger-sage/internal/model"
)

// Comparison charts spending in two periods side by side, grouped by
// category. Periods can be two years, two months, or two specific dates, and
// are always presented with the chronologically earlier period first
// regardless of argument order. By default a second set of bars shows the
// average per transaction.
func Comparison(ds *dataset.Dataset, req ComparisonRequest, _ time.Time) (*chart.Config, string) {
	p1 := Period{Year: req.Y1, Month: req.M1, Day: req.D1}
	p2 := Period{Year: req.Y2, Month: req.M2, Day: req.D2}
	// Month and day fields only count when both sides carry them.
	if req.D1 == 0 || req.D2 == 0 {
		p1.Day, p2.Day = 0, 0
	}
	if req.M1 == 0 || req.M2 == 0 {
		p1.Month, p2.Month = 0, 0
		p1.Day, p2.Day = 0, 0
	}
	if p2.Before(p1) {
		p1, p2 = p2, p1
	}

	cf := CategoryFilter{Category: req.Category, MajorCategory: req.MajorCategory, Remarks: req.Remarks}
	var key groupKey
	switch {
	case req.Category != "":
		key = byCategory
	case req.MajorCategory != "":
		key = byCategory
	case req.Remarks != "":
		key = byRemarks
	default:
		key = byMajor
	}
	label := cf.Label("All Categories")

	records1 := cf.Apply(p1.Apply(ds.Records))
	records2 := cf.Apply(p2.Apply(ds.Records))
	if len(records1) == 0 || len(records2) == 0 {
		return nil, fmt.Sprintf("Insufficient data to compare %s and %s.", p1.Label(), p2.Label())
	}

	sums1, counts1 := groupStats(records1, key)
	sums2, counts2 := groupStats(records2, key)
	names := unionKeys(sums1, sums2)

	showAvg := req.ShowAvg == nil || *req.ShowAvg

	totalSeries := func(period string, sums map[string]float64) chart.Series {
		points := make([]chart.Point, len(names))
		for i, name := range names {
			points[i] = chart.Point{
				Label: name,
				Value: sums[name],
				Text:  formatAmount(ds.Currency, sums[name]),
			}
		}
		return chart.Series{Name: period, Points: points}
	}

	s1 := totalSeries(fmt.Sprintf("%s Total", p1.Label()), sums1)
	s1.Color = chart.ColorPrimary
	s2 := totalSeries(fmt.Sprintf("%s Total", p2.Label()), sums2)
	s2.Color = chart.ColorSecondary
	series := []chart.Series{s1, s2}

	if showAvg {
		avg := func(period string, sums map[string]float64, counts map[string]int, color string) chart.Series {
			points := make([]chart.Point, len(names))
			for i, name := range names {
				var v float64
				if counts[name] > 0 {
					v = sums[name] / float64(counts[name])
				}
				points[i] = chart.Point{Label: name, Value: v, Text: formatAmount(ds.Currency, v)}
			}
			return chart.Series{Name: period, Color: color, Points: points}
		}
		series = append(series,
			avg(fmt.Sprintf("%s Avg", p1.Label()), sums1, counts1, chart.ColorPrimary),
			avg(fmt.Sprintf("%s Avg", p2.Label()), sums2, counts2, chart.ColorSecondary))
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s: %s vs %s", label, p1.Label(), p2.Label())
	}

	cfg := &chart.Config{
		Type:   chart.TypeBar,
		Title:  title,
		XAxis:  "Category",
		YAxis:  fmt.Sprintf("Amount (%s)", ds.Currency),
		Series: series,
	}

	total1 := sumAmounts(records1)
	total2 := sumAmounts(records2)
	var changePct float64
	switch {
	case total1 > 0:
		changePct = (total2 - total1) / total1 * 100
	case total2 > 0:
		changePct = 100
	}
	direction := "no change"
	if changePct > 0 {
		direction = "increase"
	} else if changePct < 0 {
		direction = "decrease"
	}

	msg := fmt.Sprintf("Comparison: %s (%s) vs %s (%s) | Change: %.1f%% %s",
		p1.Label(), formatAmount(ds.Currency, total1),
		p2.Label(), formatAmount(ds.Currency, total2),
		math.Abs(changePct), direction)

	return cfg, msg
}

func groupStats(records []model.Expense, key groupKey) (map[string]float64, map[string]int) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range records {
		name := key(e)
		if name == "" {
			continue
		}
		sums[name] += e.Amount
		counts[name]++
	}
	return sums, counts
}

func unionKeys(a, b map[string]float64) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var names []string
	for name := range a {
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for name := range b {
		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
