package tools

import (
	"fmt"
	"sort"
	"time"

	"github.com/ledger-sage/ledger-sage/internal/chart"
	"github.com/ledger-sage/ledger-sage/internal/dataset"
	"github.com/ledger-sage/ledger-sage/internal/model"
)

type groupKey func(model.Expense) string

var (
	byCategory = func(e model.Expense) string { return e.Category }
	byMajor    = func(e model.Expense) string { return e.MajorCategory }
	byRemarks  = func(e model.Expense) string { return e.Remarks }
)

type group struct {
	Name  string
	Total float64
}

// Distribution charts how spending splits across groups as a donut. The
// grouping adapts to the filter: unfiltered data splits by major category, a
// major category splits into its specific categories, a specific category
// splits into individual remarks, and a remarks search splits by category.
func Distribution(ds *dataset.Dataset, req DistributionRequest, now time.Time) (*chart.Config, string) {
	tf := TimeFilter{Year: req.Year, Month: req.Month}
	timeLabel := "All Time"
	if !tf.IsZero() {
		timeLabel = tf.Label()
	}
	records := tf.Apply(ds.Records, now)

	var (
		key          groupKey
		defaultTitle string
		filterLabel  string
		remarksWise  bool
		majorWise    bool
	)
	switch {
	case req.Remarks != "":
		records = CategoryFilter{Remarks: req.Remarks}.Apply(records)
		key = byCategory
		defaultTitle = fmt.Sprintf("Categories for '%s' - %s", req.Remarks, timeLabel)
		filterLabel = fmt.Sprintf("remarks containing '%s'", req.Remarks)
	case req.Category != "":
		records = CategoryFilter{Category: req.Category}.Apply(records)
		if anyRemarks(records) {
			key = byRemarks
			remarksWise = true
			defaultTitle = fmt.Sprintf("%s Transactions - %s", req.Category, timeLabel)
		} else {
			key = byCategory
			defaultTitle = fmt.Sprintf("%s Breakdown - %s", req.Category, timeLabel)
		}
		filterLabel = fmt.Sprintf("category '%s'", req.Category)
	case req.MajorCategory != "":
		records = CategoryFilter{MajorCategory: req.MajorCategory}.Apply(records)
		key = byCategory
		defaultTitle = fmt.Sprintf("%s Breakdown - %s", req.MajorCategory, timeLabel)
		filterLabel = fmt.Sprintf("major category '%s'", req.MajorCategory)
	default:
		key = byMajor
		majorWise = true
		defaultTitle = fmt.Sprintf("Spending Distribution - %s", timeLabel)
		filterLabel = "all expenses"
	}

	if len(records) == 0 {
		return nil, fmt.Sprintf("No data found for %s in %s.", filterLabel, timeLabel)
	}

	groups := groupSums(records, key)
	var total float64
	for _, g := range groups {
		total += g.Total
	}
	groups = mergeOthers(groups, total, remarksWise)

	points := make([]chart.Point, len(groups))
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
		points[i] = chart.Point{
			Label: g.Name,
			Value: g.Total,
			Text:  formatAmount(ds.Currency, g.Total),
		}
	}

	var colors []string
	if majorWise {
		colors = chart.MajorColors(names)
	} else {
		colors = chart.SubcategoryColors(len(names))
	}

	title := req.Title
	if title == "" {
		title = defaultTitle
	}

	cfg := &chart.Config{
		Type:   chart.TypeDonut,
		Title:  title,
		Series: []chart.Series{{Name: filterLabel, Points: points}},
		Colors: colors,
		Hole:   0.5,
	}

	msg := fmt.Sprintf("Distribution for %s: %s (n=%d across %d items)",
		filterLabel, formatAmount(ds.Currency, total), len(records), len(groups))

	return cfg, msg
}

func anyRemarks(records []model.Expense) bool {
	for _, e := range records {
		if e.HasRemarks() {
			return true
		}
	}
	return false
}

// groupSums totals amounts per group name, sorted by total descending.
// Records with an empty key are excluded.
func groupSums(records []model.Expense, key groupKey) []group {
	totals := make(map[string]float64)
	var order []string
	for _, e := range records {
		name := key(e)
		if name == "" {
			continue
		}
		if _, ok := totals[name]; !ok {
			order = append(order, name)
		}
		totals[name] += e.Amount
	}
	groups := make([]group, len(order))
	for i, name := range order {
		groups[i] = group{Name: name, Total: totals[name]}
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Total > groups[j].Total })
	return groups
}

// mergeOthers folds small groups into an "Others" slice to keep the donut
// readable. Remarks groupings keep the top 10; other groupings with more
// than 12 slices merge everything under 3% of the total.
func mergeOthers(groups []group, total float64, remarksWise bool) []group {
	if remarksWise {
		if len(groups) <= 10 {
			return groups
		}
		var others float64
		for _, g := range groups[10:] {
			others += g.Total
		}
		groups = groups[:10]
		if others > 0 {
			groups = append(groups, group{Name: "Others", Total: others})
		}
		return groups
	}

	if len(groups) <= 12 {
		return groups
	}
	threshold := total * 0.03
	var kept []group
	var others float64
	for _, g := range groups {
		if g.Total >= threshold {
			kept = append(kept, g)
		} else {
			others += g.Total
		}
	}
	if others > 0 {
		kept = append(kept, group{Name: "Others", Total: others})
	}
	return kept
}
