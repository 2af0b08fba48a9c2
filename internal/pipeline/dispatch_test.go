package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledger-sage/ledger-sage/internal/tools"
)

func TestSelectTool(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		want         tools.Kind
		wantFallback bool
	}{
		{name: "exact name", raw: "plot_time_series", want: tools.KindTimeSeries},
		{name: "padded answer keeps first token", raw: "calculate_total is the right tool", want: tools.KindTotal},
		{name: "backtick wrapped", raw: "`plot_distribution`", want: tools.KindDistribution},
		{name: "quoted", raw: "'get_top_expenses'", want: tools.KindTopExpenses},
		{name: "surrounding whitespace", raw: "  plot_comparison_bars\n", want: tools.KindComparison},
		{name: "unknown output falls back", raw: "do_magic", want: tools.KindTotal, wantFallback: true},
		{name: "empty output falls back", raw: "", want: tools.KindTotal, wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fellBack := SelectTool(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantFallback, fellBack)
		})
	}
}
