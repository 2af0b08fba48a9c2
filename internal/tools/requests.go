package tools

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Request structs mirror the arguments each tool accepts. Arguments arrive as
// loosely typed maps from parsed model output; weak decoding coerces "2024"
// and 2024.0 alike into ints.

// TimeSeriesRequest holds arguments for the spending-over-time chart.
type TimeSeriesRequest struct {
	Category      string `mapstructure:"category"`
	MajorCategory string `mapstructure:"major_category"`
	Remarks       string `mapstructure:"remarks"`
	Year          int    `mapstructure:"year"`
	Month         int    `mapstructure:"month"`
	StartYear     int    `mapstructure:"start_year"`
	EndYear       int    `mapstructure:"end_year"`
	Months        int    `mapstructure:"months"`
	Title         string `mapstructure:"title"`
}

// DistributionRequest holds arguments for the donut breakdown chart.
type DistributionRequest struct {
	Year          int    `mapstructure:"year"`
	Month         int    `mapstructure:"month"`
	MajorCategory string `mapstructure:"major_category"`
	Category      string `mapstructure:"category"`
	Remarks       string `mapstructure:"remarks"`
	Title         string `mapstructure:"title"`
}

// ComparisonRequest holds arguments for the two-period bar comparison.
type ComparisonRequest struct {
	Category      string `mapstructure:"category"`
	MajorCategory string `mapstructure:"major_category"`
	Remarks       string `mapstructure:"remarks"`
	Y1            int    `mapstructure:"y1"`
	M1            int    `mapstructure:"m1"`
	D1            int    `mapstructure:"d1"`
	Y2            int    `mapstructure:"y2"`
	M2            int    `mapstructure:"m2"`
	D2            int    `mapstructure:"d2"`
	ShowAvg       *bool  `mapstructure:"show_avg"`
	Title         string `mapstructure:"title"`
}

// TotalRequest holds arguments for the total/count/average summary.
type TotalRequest struct {
	Category      string `mapstructure:"category"`
	MajorCategory string `mapstructure:"major_category"`
	Remarks       string `mapstructure:"remarks"`
	Year          int    `mapstructure:"year"`
	Month         int    `mapstructure:"month"`
	Day           int    `mapstructure:"day"`
	StartYear     int    `mapstructure:"start_year"`
	EndYear       int    `mapstructure:"end_year"`
}

// StatisticsRequest holds arguments for descriptive statistics and the
// two-period significance comparison.
type StatisticsRequest struct {
	Category      string `mapstructure:"category"`
	MajorCategory string `mapstructure:"major_category"`
	Remarks       string `mapstructure:"remarks"`
	Y1            int    `mapstructure:"y1"`
	M1            int    `mapstructure:"m1"`
	D1            int    `mapstructure:"d1"`
	Y2            int    `mapstructure:"y2"`
	M2            int    `mapstructure:"m2"`
	D2            int    `mapstructure:"d2"`
	Compare       bool   `mapstructure:"compare"`
}

// TopExpensesRequest holds arguments for the largest-expenses listing.
type TopExpensesRequest struct {
	N             int     `mapstructure:"n"`
	Category      string  `mapstructure:"category"`
	MajorCategory string  `mapstructure:"major_category"`
	Remarks       string  `mapstructure:"remarks"`
	Year          int     `mapstructure:"year"`
	Month         int     `mapstructure:"month"`
	MinAmount     float64 `mapstructure:"min_amount"`
}

// decodeArgs fills a request struct from loosely typed tool arguments.
func decodeArgs(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("creating argument decoder: %w", err)
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("decoding tool arguments: %w", err)
	}
	return nil
}
