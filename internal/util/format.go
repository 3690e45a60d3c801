package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with exactly two decimals and no grouping,
// the form persisted in the flat files.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatCurrency renders an amount with thousands separators behind a
// currency prefix, e.g. "₱1,234.50".
func FormatCurrency(amount decimal.Decimal, prefix string) string {
	return prefix + FormatGrouped(amount)
}

// FormatGrouped renders an amount with two decimals and comma grouping.
func FormatGrouped(amount decimal.Decimal) string {
	str := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(str, "-") {
		sign = "-"
		str = str[1:]
	}

	intPart, decPart, _ := strings.Cut(str, ".")
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	return sign + intPart + "." + decPart
}

// FormatCount renders an integer with comma grouping.
func FormatCount(n int) string {
	s := FormatGrouped(decimal.NewFromInt(int64(n)))
	return strings.TrimSuffix(s, ".00")
}
