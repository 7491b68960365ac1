package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1500000, "1,500,000"},
		{-25000, "-25,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount))
	}
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "12,345.68", FormatDecimal(decimal.RequireFromString("12345.678"), 2))
	assert.Equal(t, "33.33", FormatDecimal(decimal.RequireFromString("33.333"), 2))
}
