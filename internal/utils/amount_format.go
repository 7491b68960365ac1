package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders whole currency units with thousands separators.
// Example: 1500000 returns "1,500,000"
func FormatAmount(amount int64) string {
	return FormatDecimal(decimal.NewFromInt(amount), 0)
}

// FormatDecimal rounds amount to precision places and groups the integer part.
// Example: 12345.678 with precision 2 returns "12,345.68"
func FormatDecimal(amount decimal.Decimal, precision int) string {
	s := amount.StringFixed(int32(precision))
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		return sign + b.String() + "." + frac
	}
	return sign + b.String()
}
