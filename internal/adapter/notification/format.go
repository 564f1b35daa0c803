package notification

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatVND renders an amount as whole dong with comma grouping, e.g. 150,000đ.
func FormatVND(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String() + "đ"
	}
	return b.String() + "đ"
}
