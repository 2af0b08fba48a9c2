package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "clean output untouched",
			content: "fig, result = calculate_total(df, category='grocery', year=2024)",
			want:    "fig, result = calculate_total(df, category='grocery', year=2024)",
		},
		{
			name:    "python fence stripped",
			content: "Here you go:\n```python\nfig, result = calculate_total(df, year=2024)\n```\nHope that helps!",
			want:    "fig, result = calculate_total(df, year=2024)",
		},
		{
			name:    "anonymous fence stripped",
			content: "```\nfig, result = plot_distribution(df)\n```",
			want:    "fig, result = plot_distribution(df)",
		},
		{
			name:    "inline backticks stripped",
			content: "`fig, result = calculate_total(df)`",
			want:    "fig, result = calculate_total(df)",
		},
		{
			name:    "missing assignment prepended",
			content: "calculate_total(df, category='gym')",
			want:    "fig, result = calculate_total(df, category='gym')",
		},
		{
			name:    "fenced call without assignment",
			content: "```python\ncalculate_total(df, year=2025)\n```",
			want:    "fig, result = calculate_total(df, year=2025)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCode(tt.content, "calculate_total"))
		})
	}
}

func TestParseToolCall(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		wantName string
		wantArgs map[string]any
	}{
		{
			name:     "full assignment form",
			code:     "fig, result = calculate_total(df, category='grocery', year=2024)",
			wantName: "calculate_total",
			wantArgs: map[string]any{"category": "grocery", "year": 2024},
		},
		{
			name:     "bare call",
			code:     "plot_distribution(df, major_category=\"Food\")",
			wantName: "plot_distribution",
			wantArgs: map[string]any{"major_category": "Food"},
		},
		{
			name:     "quoted string containing a comma",
			code:     "calculate_total(df, remarks='lunch, with friends')",
			wantName: "calculate_total",
			wantArgs: map[string]any{"remarks": "lunch, with friends"},
		},
		{
			name:     "None values dropped",
			code:     "plot_comparison_bars(df, category=None, y1=2024, y2=2025)",
			wantName: "plot_comparison_bars",
			wantArgs: map[string]any{"y1": 2024, "y2": 2025},
		},
		{
			name:     "booleans and floats",
			code:     "get_top_expenses(df, min_amount=99.5, compare=True, flag=False)",
			wantName: "get_top_expenses",
			wantArgs: map[string]any{"min_amount": 99.5, "compare": true, "flag": false},
		},
		{
			name:     "no arguments",
			code:     "plot_time_series(df)",
			wantName: "plot_time_series",
			wantArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, err := ParseToolCall(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, call.Name)
			assert.Equal(t, tt.wantArgs, call.Args)
		})
	}
}

func TestParseToolCall_Errors(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "no call at all", code: "I cannot answer that."},
		{name: "positional argument", code: "calculate_total(df, 2024)"},
		{name: "invalid function name", code: "fig, result = 123bad(df)"},
		{name: "unsupported literal", code: "calculate_total(df, year=[2024])"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToolCall(tt.code)
			assert.Error(t, err)
		})
	}
}
