package tools

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledger-sage/ledger-sage/internal/chart"
	"github.com/ledger-sage/ledger-sage/internal/config"
	"github.com/ledger-sage/ledger-sage/internal/dataset"
	"github.com/ledger-sage/ledger-sage/internal/model"
)

func TestDistribution_UnfilteredByMajorCategory(t *testing.T) {
	ds := testDataset(t)

	cfg, msg := Distribution(ds, DistributionRequest{Year: 2024}, testNow)
	require.NotNil(t, cfg)

	assert.Equal(t, "Distribution for all expenses: ¥23,050 (n=6 across 2 items)", msg)
	assert.Equal(t, chart.TypeDonut, cfg.Type)
	assert.Equal(t, "Spending Distribution - 2024", cfg.Title)
	assert.Equal(t, 0.5, cfg.Hole)

	require.Len(t, cfg.Series, 1)
	points := cfg.Series[0].Points
	require.Len(t, points, 2)
	assert.Equal(t, "Food", points[0].Label)
	assert.Equal(t, 12050.0, points[0].Value)
	assert.Equal(t, "Fitness", points[1].Label)
	assert.Equal(t, 11000.0, points[1].Value)

	// Major categories carry their fixed colors.
	assert.Equal(t, []string{
		chart.MajorCategoryColors["Food"],
		chart.MajorCategoryColors["Fitness"],
	}, cfg.Colors)
}

func TestDistribution_MajorCategorySplitsIntoCategories(t *testing.T) {
	ds := testDataset(t)

	cfg, msg := Distribution(ds, DistributionRequest{MajorCategory: "Food", Year: 2024}, testNow)
	require.NotNil(t, cfg)

	assert.Equal(t, "Distribution for major category 'Food': ¥12,050 (n=4 across 3 items)", msg)
	assert.Equal(t, "Food Breakdown - 2024", cfg.Title)

	points := cfg.Series[0].Points
	require.Len(t, points, 3)
	assert.Equal(t, "grocery", points[0].Label)
	assert.Equal(t, 6000.0, points[0].Value)
	assert.Equal(t, "dining", points[1].Label)
	assert.Equal(t, "snack", points[2].Label)
}

func TestDistribution_CategorySplitsIntoRemarks(t *testing.T) {
	ds := testDataset(t)

	cfg, msg := Distribution(ds, DistributionRequest{Category: "grocery"}, testNow)
	require.NotNil(t, cfg)

	assert.Equal(t, "Distribution for category 'grocery': ¥12,800 (n=4 across 2 items)", msg)
	assert.Equal(t, "grocery Transactions - All Time", cfg.Title)

	points := cfg.Series[0].Points
	require.Len(t, points, 2)
	assert.Equal(t, "supermarket", points[0].Label)
	assert.Equal(t, 6700.0, points[0].Value)
	assert.Equal(t, "market", points[1].Label)
	assert.Equal(t, 6100.0, points[1].Value)
}

func TestDistribution_CategoryWithoutRemarks(t *testing.T) {
	ds := testDataset(t)

	// futsal game records carry no remarks, so the single category is the
	// only slice.
	cfg, msg := Distribution(ds, DistributionRequest{Category: "futsal game"}, testNow)
	require.NotNil(t, cfg)

	assert.Equal(t, "Distribution for category 'futsal game': ¥8,000 (n=2 across 1 items)", msg)
	assert.Equal(t, "futsal game Breakdown - All Time", cfg.Title)
}

func TestDistribution_RemarksSearchSplitsByCategory(t *testing.T) {
	ds := testDataset(t)

	cfg, msg := Distribution(ds, DistributionRequest{Remarks: "market"}, testNow)
	require.NotNil(t, cfg)

	// "market" also matches "supermarket" remarks.
	assert.Equal(t, "Distribution for remarks containing 'market': ¥12,800 (n=4 across 1 items)", msg)
	assert.Equal(t, "Categories for 'market' - All Time", cfg.Title)
	assert.Equal(t, "grocery", cfg.Series[0].Points[0].Label)
}

func TestDistribution_Empty(t *testing.T) {
	ds := testDataset(t)

	cfg, msg := Distribution(ds, DistributionRequest{Year: 2023}, testNow)
	assert.Nil(t, cfg)
	assert.Equal(t, "No data found for all expenses in 2023.", msg)
}

func TestDistribution_MergesSmallGroups(t *testing.T) {
	// 13 categories: one dominant, twelve tiny ones below 3% of the total.
	var records []model.Expense
	records = append(records, model.Expense{Date: day(2024, 1, 1), Category: "big", Amount: 100000})
	for i := 0; i < 12; i++ {
		records = append(records, model.Expense{
			Date:     day(2024, 1, 2),
			Category: fmt.Sprintf("tiny-%d", i),
			Amount:   10,
		})
	}
	ds := dataset.New(records, config.DefaultCategoryMapping(), "¥")

	cfg, _ := Distribution(ds, DistributionRequest{MajorCategory: "Miscellaneous"}, time.Time{})
	require.NotNil(t, cfg)

	points := cfg.Series[0].Points
	require.Len(t, points, 2)
	assert.Equal(t, "big", points[0].Label)
	assert.Equal(t, "Others", points[1].Label)
	assert.Equal(t, 120.0, points[1].Value)
}
