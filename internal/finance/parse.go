package finance

import (
	"strconv"
	"strings"
)

// ParseAmount converts an externally supplied numeric string to a
// float64. Everything except digits, sign and decimal point is
// stripped first (currency symbols, thousands separators, whitespace).
// An unparsable result degrades to zero; this function never fails.
func ParseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// AmountOf coerces a loosely typed JSON value to an amount. Numbers pass
// through, strings go through ParseAmount, anything else is zero.
func AmountOf(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		return ParseAmount(x)
	case nil:
		return 0
	default:
		return 0
	}
}
