package tools

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ledger-sage/ledger-sage/internal/chart"
	"github.com/ledger-sage/ledger-sage/internal/dataset"
	"github.com/ledger-sage/ledger-sage/internal/model"
)

// Statistics reports mean, median, and standard deviation for one period, or
// compares two periods with a Welch t-test and Cohen's d effect size when
// compare is set.
func Statistics(ds *dataset.Dataset, req StatisticsRequest, _ time.Time) (*chart.Config, string) {
	cf := CategoryFilter{Category: req.Category, MajorCategory: req.MajorCategory, Remarks: req.Remarks}
	label := cf.Label("Total")

	if req.Compare && req.Y1 != 0 && req.Y2 != 0 {
		p1 := Period{Year: req.Y1, Month: req.M1, Day: req.D1}
		p2 := Period{Year: req.Y2, Month: req.M2, Day: req.D2}
		if req.D1 == 0 || req.D2 == 0 {
			p1.Day, p2.Day = 0, 0
		}
		if req.M1 == 0 || req.M2 == 0 {
			p1.Month, p2.Month = 0, 0
			p1.Day, p2.Day = 0, 0
		}

		records1 := cf.Apply(p1.Apply(ds.Records))
		records2 := cf.Apply(p2.Apply(ds.Records))
		if len(records1) < 2 || len(records2) < 2 {
			return nil, fmt.Sprintf("Insufficient data for statistical comparison of %s.", label)
		}

		mean1, mean2 := meanAmount(records1), meanAmount(records2)
		pValue := welchPValue(records1, records2)
		d := cohensD(records1, records2)

		sig := "not statistically significant"
		if pValue < 0.05 {
			sig = "statistically significant"
		}
		effect := "small"
		if math.Abs(d) > 0.8 {
			effect = "large"
		} else if math.Abs(d) > 0.5 {
			effect = "medium"
		}

		msg := fmt.Sprintf("%s - %s: mean %s (n=%d), %s: mean %s (n=%d) | Difference is %s (p=%.4f), effect size: %s (d=%.3f)",
			label,
			p1.Label(), formatAmount(ds.Currency, mean1), len(records1),
			p2.Label(), formatAmount(ds.Currency, mean2), len(records2),
			sig, pValue, effect, d)
		return nil, msg
	}

	tf := TimeFilter{Year: req.Y1, Month: req.M1}
	records := cf.Apply(tf.Apply(ds.Records, time.Time{}))
	timeLabel := tf.Label()

	if len(records) == 0 {
		return nil, fmt.Sprintf("No transactions found for %s in %s.", label, timeLabel)
	}

	msg := fmt.Sprintf("%s in %s: Mean %s, Median %s, Std Dev %s (n=%d)",
		label, timeLabel,
		formatAmount(ds.Currency, meanAmount(records)),
		formatAmount(ds.Currency, medianAmount(records)),
		formatAmount(ds.Currency, stddevAmount(records)),
		len(records))
	return nil, msg
}

// welchPValue is the two-sided p-value of Welch's unequal-variance t-test.
func welchPValue(a, b []model.Expense) float64 {
	n1, n2 := float64(len(a)), float64(len(b))
	v1 := math.Pow(stddevAmount(a), 2)
	v2 := math.Pow(stddevAmount(b), 2)

	se2 := v1/n1 + v2/n2
	if se2 == 0 {
		return 1
	}
	t := (meanAmount(a) - meanAmount(b)) / math.Sqrt(se2)

	// Welch-Satterthwaite degrees of freedom.
	df := se2 * se2 / (v1*v1/(n1*n1*(n1-1)) + v2*v2/(n2*n2*(n2-1)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

// cohensD is the standardized mean difference using the pooled standard
// deviation. Zero when the pooled deviation is zero.
func cohensD(a, b []model.Expense) float64 {
	n1, n2 := float64(len(a)), float64(len(b))
	v1 := math.Pow(stddevAmount(a), 2)
	v2 := math.Pow(stddevAmount(b), 2)

	pooled := math.Sqrt(((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2))
	if pooled == 0 {
		return 0
	}
	return (meanAmount(a) - meanAmount(b)) / pooled
}
