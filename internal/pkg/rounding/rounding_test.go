package rounding_test

import (
	"testing"

	"production/internal/pkg/rounding"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDivHalfEven(t *testing.T) {
	tests := []struct {
		n, d     string
		scale    int32
		expected string
	}{
		{"10", "4", 2, "2.5"},
		{"10", "3", 2, "3.33"},
		{"2", "3", 2, "0.67"},
		{"1", "8", 2, "0.12"},
		{"27", "200", 2, "0.14"},
		{"-1", "8", 2, "-0.12"},
		{"-27", "200", 2, "-0.14"},
		{"1", "-8", 2, "-0.12"},
		{"2", "-3", 2, "-0.67"},
		{"5", "2", 0, "2"},
		{"7", "2", 0, "4"},
		{"1.00000000000000000005", "2", 20, "0.50000000000000000002"},
		{"1.00000000000000000015", "2", 20, "0.50000000000000000008"},
	}

	for _, tt := range tests {
		t.Run(tt.n+"/"+tt.d, func(t *testing.T) {
			got := rounding.DivHalfEven(decimal.RequireFromString(tt.n), decimal.RequireFromString(tt.d), tt.scale)

			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}
