package intake

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice reads the leading decimal number of raw, the way a browser's
// parseFloat does. Anything without a numeric prefix is zero.
func ParsePrice(raw string) decimal.Decimal {
	prefix := numericPrefix(raw, true)
	if prefix == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseStock reads the leading integer of raw, like parseInt(raw, 10).
func ParseStock(raw string) int64 {
	prefix := numericPrefix(raw, false)
	if prefix == "" {
		return 0
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return 0
	}
	return d.IntPart()
}

func numericPrefix(raw string, fraction bool) string {
	s := strings.TrimSpace(raw)
	var b strings.Builder
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if s[i] == '-' {
			b.WriteByte('-')
		}
		i++
	}

	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		b.WriteByte(s[i])
		digits++
	}
	if fraction && i < len(s) && s[i] == '.' {
		frac := 0
		j := i + 1
		for ; j < len(s) && isDigit(s[j]); j++ {
			frac++
		}
		if frac > 0 {
			if digits == 0 {
				b.WriteByte('0')
			}
			b.WriteString(s[i:j])
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
