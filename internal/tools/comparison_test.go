package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-sage/ledger-sage/internal/chart"
)

func TestComparison_ReordersPeriods(t *testing.T) {
	ds := testDataset(t)

	// Later year given first; output leads with the earlier one.
	cfg, msg := Comparison(ds, ComparisonRequest{Category: "grocery", Y1: 2025, Y2: 2024}, testNow)
	require.NotNil(t, cfg)

	assert.Equal(t, "Comparison: 2024 (¥6,000) vs 2025 (¥6,800) | Change: 13.3% increase", msg)
	assert.Equal(t, chart.TypeBar, cfg.Type)
	assert.Equal(t, "grocery: 2024 vs 2025", cfg.Title)

	require.Len(t, cfg.Series, 4)
	assert.Equal(t, "2024 Total", cfg.Series[0].Name)
	assert.Equal(t, "2025 Total", cfg.Series[1].Name)
	assert.Equal(t, "2024 Avg", cfg.Series[2].Name)
	assert.Equal(t, "2025 Avg", cfg.Series[3].Name)

	require.Len(t, cfg.Series[0].Points, 1)
	assert.Equal(t, "grocery", cfg.Series[0].Points[0].Label)
	assert.Equal(t, 6000.0, cfg.Series[0].Points[0].Value)
	assert.Equal(t, 6800.0, cfg.Series[1].Points[0].Value)
	assert.Equal(t, 3000.0, cfg.Series[2].Points[0].Value)
	assert.Equal(t, 3400.0, cfg.Series[3].Points[0].Value)
}

func TestComparison_WithoutAverages(t *testing.T) {
	ds := testDataset(t)
	showAvg := false

	cfg, _ := Comparison(ds, ComparisonRequest{Category: "grocery", Y1: 2024, Y2: 2025, ShowAvg: &showAvg}, testNow)
	require.NotNil(t, cfg)
	assert.Len(t, cfg.Series, 2)
}

func TestComparison_UnfilteredGroupsByMajorCategory(t *testing.T) {
	ds := testDataset(t)

	cfg, msg := Comparison(ds, ComparisonRequest{Y1: 2024, Y2: 2025}, testNow)
	require.NotNil(t, cfg)

	assert.Equal(t, "All Categories: 2024 vs 2025", cfg.Title)
	assert.Equal(t, "Comparison: 2024 (¥23,050) vs 2025 (¥11,800) | Change: 48.8% decrease", msg)

	labels := make([]string, 0, len(cfg.Series[0].Points))
	for _, p := range cfg.Series[0].Points {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"Fitness", "Food"}, labels)
}

func TestComparison_MonthsOnlyCountWhenBothSidesHaveThem(t *testing.T) {
	ds := testDataset(t)

	// M1 set without M2 degrades both sides to whole years.
	_, msg := Comparison(ds, ComparisonRequest{Category: "grocery", Y1: 2024, M1: 1, Y2: 2025}, testNow)
	assert.Equal(t, "Comparison: 2024 (¥6,000) vs 2025 (¥6,800) | Change: 13.3% increase", msg)
}

func TestComparison_InsufficientData(t *testing.T) {
	ds := testDataset(t)

	cfg, msg := Comparison(ds, ComparisonRequest{Category: "grocery", Y1: 2023, Y2: 2024}, testNow)
	assert.Nil(t, cfg)
	assert.Equal(t, "Insufficient data to compare 2023 and 2024.", msg)
}
