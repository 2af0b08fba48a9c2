package tools

import (
	"fmt"
	"time"

	"github.com/ledger-sage/ledger-sage/internal/chart"
	"github.com/ledger-sage/ledger-sage/internal/dataset"
)

// Total sums spending for a scope and period, reporting the transaction
// count and average per transaction. It never produces a chart.
func Total(ds *dataset.Dataset, req TotalRequest, now time.Time) (*chart.Config, string) {
	tf := TimeFilter{
		Year:      req.Year,
		Month:     req.Month,
		Day:       req.Day,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
	}
	cf := CategoryFilter{Category: req.Category, MajorCategory: req.MajorCategory, Remarks: req.Remarks}

	records := cf.Apply(tf.Apply(ds.Records, now))
	label := cf.Label("Total")
	timeLabel := tf.Label()

	if len(records) == 0 {
		return nil, fmt.Sprintf("No transactions found for %s in %s.", label, timeLabel)
	}

	total := sumAmounts(records)
	count := len(records)
	avg := total / float64(count)

	return nil, fmt.Sprintf("%s in %s: %s (n=%d, avg %s)",
		label, timeLabel,
		formatAmount(ds.Currency, total),
		count,
		formatAmount(ds.Currency, avg))
}
