package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		value    float64
		want     string
	}{
		{name: "small", currency: "¥", value: 450, want: "¥450"},
		{name: "thousands", currency: "¥", value: 3000, want: "¥3,000"},
		{name: "rounds", currency: "¥", value: 3166.7, want: "¥3,167"},
		{name: "millions", currency: "¥", value: 1234567, want: "¥1,234,567"},
		{name: "negative", currency: "¥", value: -1500, want: "-¥1,500"},
		{name: "zero", currency: "$", value: 0, want: "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAmount(tt.currency, tt.value))
		})
	}
}
