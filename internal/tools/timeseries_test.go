package tools

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-sage/ledger-sage/internal/chart"
	"github.com/ledger-sage/ledger-sage/internal/config"
	"github.com/ledger-sage/ledger-sage/internal/dataset"
	"github.com/ledger-sage/ledger-sage/internal/model"
)

func TestTimeSeries_SparseDataGetsBars(t *testing.T) {
	ds := testDataset(t)

	cfg, msg := TimeSeries(ds, TimeSeriesRequest{Category: "grocery"}, testNow)
	require.NotNil(t, cfg)

	assert.Equal(t, "Time-series for grocery: ¥12,800 (n=4) | Avg: ¥3,200 | Max: ¥3,500", msg)
	assert.Equal(t, chart.TypeBar, cfg.Type)
	assert.Equal(t, "grocery Spending Over Time", cfg.Title)

	require.Len(t, cfg.Series, 1)
	points := cfg.Series[0].Points
	require.Len(t, points, 4)
	assert.Equal(t, "2024-01-05", points[0].Label)
	assert.Equal(t, "2025-03-01", points[3].Label)

	require.NotNil(t, cfg.RefLine)
	assert.Equal(t, 3200.0, cfg.RefLine.Value)
	assert.Equal(t, "Avg ¥3,200", cfg.RefLine.Label)
	assert.Equal(t, chart.DashDashed, cfg.RefLine.Dash)
}

func TestTimeSeries_LongSpanGetsWeeklyBuckets(t *testing.T) {
	ds := syntheticDataset(120, 1) // 120 daily records, ~17 weeks

	cfg, msg := TimeSeries(ds, TimeSeriesRequest{}, testNow)
	require.NotNil(t, cfg)

	assert.Contains(t, msg, "(n=120)")
	assert.Equal(t, chart.TypeLine, cfg.Type)

	require.Len(t, cfg.Series, 2)
	assert.Equal(t, "Weekly Total", cfg.Series[0].Name)
	assert.True(t, cfg.Series[0].Fill)
	assert.Equal(t, "4-Week Trend", cfg.Series[1].Name)
	assert.Equal(t, chart.DashDotted, cfg.Series[1].Dash)

	// 2024-01-01 is a Monday, so the first bucket keeps that label and
	// sums the whole week.
	first := cfg.Series[0].Points[0]
	assert.Equal(t, "2024-01-01", first.Label)
	assert.Equal(t, 700.0, first.Value)
}

func TestTimeSeries_DenseShortSpanGetsDailyBuckets(t *testing.T) {
	ds := syntheticDataset(50, 2) // 100 records over 50 days

	cfg, _ := TimeSeries(ds, TimeSeriesRequest{}, testNow)
	require.NotNil(t, cfg)

	assert.Equal(t, chart.TypeLine, cfg.Type)
	require.Len(t, cfg.Series, 2)
	assert.Equal(t, "Daily Total", cfg.Series[0].Name)
	assert.Equal(t, "7-Day Average", cfg.Series[1].Name)
	assert.Len(t, cfg.Series[0].Points, 50)
	assert.Equal(t, 200.0, cfg.Series[0].Points[0].Value)
}

func TestTimeSeries_Empty(t *testing.T) {
	ds := testDataset(t)

	cfg, msg := TimeSeries(ds, TimeSeriesRequest{Category: "grocery", Year: 2023}, testNow)
	assert.Nil(t, cfg)
	assert.Equal(t, "No spending data found for grocery in the specified period.", msg)
}

func TestMovingAverage_PartialStartWindow(t *testing.T) {
	points := make([]chart.Point, 6)
	for i := range points {
		points[i] = chart.Point{Label: fmt.Sprintf("p%d", i), Value: float64(i + 1)}
	}

	got := movingAverage(points, 4)

	want := []float64{1, 1.5, 2, 2.5, 3.5, 4.5}
	require.Len(t, got, len(want))
	for i, v := range want {
		assert.InDelta(t, v, got[i].Value, 1e-9, "index %d", i)
		assert.Equal(t, points[i].Label, got[i].Label)
	}
}

// syntheticDataset spreads perDay transactions of ¥100 over days consecutive
// days starting 2024-01-01.
func syntheticDataset(days, perDay int) *dataset.Dataset {
	var records []model.Expense
	start := day(2024, 1, 1)
	for i := 0; i < days; i++ {
		for j := 0; j < perDay; j++ {
			records = append(records, model.Expense{
				Date:     start.AddDate(0, 0, i),
				Category: "grocery",
				Amount:   100,
			})
		}
	}
	return dataset.New(records, config.DefaultCategoryMapping(), "¥")
}
