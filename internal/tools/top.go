package tools

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ledger-sage/ledger-sage/internal/chart"
	"github.com/ledger-sage/ledger-sage/internal/dataset"
	"github.com/ledger-sage/ledger-sage/internal/model"
)

const defaultTopN = 10

// TopExpenses lists the N largest expenses in a scope and period, optionally
// above a minimum amount.
func TopExpenses(ds *dataset.Dataset, req TopExpensesRequest, now time.Time) (*chart.Config, string) {
	n := req.N
	if n <= 0 {
		n = defaultTopN
	}

	tf := TimeFilter{Year: req.Year, Month: req.Month}
	cf := CategoryFilter{Category: req.Category, MajorCategory: req.MajorCategory, Remarks: req.Remarks}

	records := cf.Apply(tf.Apply(ds.Records, now))
	label := cf.Label("all expenses")
	timeLabel := tf.Label()

	if req.MinAmount > 0 {
		records = filter(records, func(e model.Expense) bool {
			return e.Amount >= req.MinAmount
		})
	}

	if len(records) == 0 {
		return nil, fmt.Sprintf("No expenses found for %s in %s.", label, timeLabel)
	}

	sorted := make([]model.Expense, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Amount > sorted[j].Amount })
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d expenses for %s in %s:\n", len(sorted), label, timeLabel)
	for _, e := range sorted {
		fmt.Fprintf(&b, "• %s: %s (%s)", e.Date.Format(dateLayout), formatAmount(ds.Currency, e.Amount), e.Category)
		if e.HasRemarks() {
			fmt.Fprintf(&b, " - %s", e.Remarks)
		}
		b.WriteByte('\n')
	}
	return nil, strings.TrimSpace(b.String())
}
