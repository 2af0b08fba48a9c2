package tools

import (
	"fmt"
	"sort"
	"time"

	"github.com/ledger-sage/ledger-sage/internal/chart"
	"github.com/ledger-sage/ledger-sage/internal/dataset"
	"github.com/ledger-sage/ledger-sage/internal/model"
)

const dateLayout = "2006-01-02"

// TimeSeries charts spending over time. The visualization adapts to data
// density: sparse data gets per-transaction bars with an average reference
// line, spans over three months get weekly totals with a 4-week trend, and
// anything in between gets daily totals with a 7-day average.
func TimeSeries(ds *dataset.Dataset, req TimeSeriesRequest, now time.Time) (*chart.Config, string) {
	tf := TimeFilter{
		Year:      req.Year,
		Month:     req.Month,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
		Months:    req.Months,
	}
	cf := CategoryFilter{Category: req.Category, MajorCategory: req.MajorCategory, Remarks: req.Remarks}

	records := cf.Apply(tf.Apply(ds.Records, now))
	label := cf.Label("Total")
	if len(records) == 0 {
		return nil, fmt.Sprintf("No spending data found for %s in the specified period.", label)
	}

	records = sortByDate(records)

	total := sumAmounts(records)
	avg := meanAmount(records)
	max := maxAmount(records)
	spanDays := int(records[len(records)-1].Date.Sub(records[0].Date).Hours() / 24)

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%s Spending Over Time", label)
	}

	cfg := &chart.Config{
		Title: title,
		XAxis: "Date",
		YAxis: fmt.Sprintf("Amount (%s)", ds.Currency),
	}

	switch {
	case len(records) < 100:
		cfg.Type = chart.TypeBar
		points := make([]chart.Point, len(records))
		for i, e := range records {
			points[i] = chart.Point{
				Label: e.Date.Format(dateLayout),
				Value: e.Amount,
				Text:  formatAmount(ds.Currency, e.Amount),
			}
		}
		cfg.Series = []chart.Series{{Name: "Transaction", Color: chart.ColorPrimary, Points: points}}
		cfg.RefLine = &chart.RefLine{
			Value: avg,
			Label: fmt.Sprintf("Avg %s", formatAmount(ds.Currency, avg)),
			Color: chart.ColorSecondary,
			Dash:  chart.DashDashed,
		}
	case spanDays > 90:
		weeks := bucketWeekly(records)
		cfg.Type = chart.TypeLine
		cfg.Series = []chart.Series{{
			Name:   "Weekly Total",
			Color:  chart.ColorPrimary,
			Fill:   true,
			Points: weeks,
		}}
		if len(weeks) >= 4 {
			cfg.Series = append(cfg.Series, chart.Series{
				Name:   "4-Week Trend",
				Color:  chart.ColorSecondary,
				Dash:   chart.DashDotted,
				Points: movingAverage(weeks, 4),
			})
		}
	default:
		days := bucketDaily(records)
		cfg.Type = chart.TypeLine
		cfg.Series = []chart.Series{{
			Name:   "Daily Total",
			Color:  chart.ColorPrimary,
			Fill:   true,
			Points: days,
		}}
		if len(days) >= 7 {
			cfg.Series = append(cfg.Series, chart.Series{
				Name:   "7-Day Average",
				Color:  chart.ColorSecondary,
				Dash:   chart.DashDashed,
				Points: movingAverage(days, 7),
			})
		}
	}

	msg := fmt.Sprintf("Time-series for %s: %s (n=%d) | Avg: %s | Max: %s",
		label,
		formatAmount(ds.Currency, total),
		len(records),
		formatAmount(ds.Currency, avg),
		formatAmount(ds.Currency, max))

	return cfg, msg
}

func sortByDate(records []model.Expense) []model.Expense {
	out := make([]model.Expense, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// bucketDaily sums amounts per calendar day, in date order. Input must be
// sorted by date.
func bucketDaily(records []model.Expense) []chart.Point {
	var points []chart.Point
	for _, e := range records {
		label := e.Date.Format(dateLayout)
		if n := len(points); n > 0 && points[n-1].Label == label {
			points[n-1].Value += e.Amount
			continue
		}
		points = append(points, chart.Point{Label: label, Value: e.Amount})
	}
	return points
}

// bucketWeekly sums amounts per ISO week, labeled by the week's Monday.
// Input must be sorted by date.
func bucketWeekly(records []model.Expense) []chart.Point {
	var points []chart.Point
	for _, e := range records {
		label := weekStart(e.Date).Format(dateLayout)
		if n := len(points); n > 0 && points[n-1].Label == label {
			points[n-1].Value += e.Amount
			continue
		}
		points = append(points, chart.Point{Label: label, Value: e.Amount})
	}
	return points
}

func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// movingAverage smooths the values with a trailing window, using the partial
// window at the start of the series.
func movingAverage(points []chart.Point, window int) []chart.Point {
	out := make([]chart.Point, len(points))
	var sum float64
	for i := range points {
		sum += points[i].Value
		n := window
		if i+1 < window {
			n = i + 1
		} else if i >= window {
			sum -= points[i-window].Value
		}
		out[i] = chart.Point{Label: points[i].Label, Value: sum / float64(n)}
	}
	return out
}
