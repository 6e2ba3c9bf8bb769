package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyGlyph prefixes every formatted amount.
const CurrencyGlyph = "₹"

// FormatAmount renders an amount for display with a currency glyph, thousands
// separators, and two fractional digits. Negative amounts keep their sign
// ahead of the glyph.
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(CurrencyGlyph)
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
