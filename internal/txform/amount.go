package txform

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MinAmount is the smallest amount the submit action accepts.
var MinAmount = decimal.NewFromInt(1)

// MaxExponent bounds the decimal exponent of a parsed amount. Comparing a
// decimal rescales it to a shared exponent, so "1e-100000000" would build a
// hundred-million-digit integer.
const MaxExponent = 18

// ParseAmount parses raw amount text as a base-10 number.
// Surrounding whitespace is ignored. ok is false for empty, non-numeric or
// malformed text, and for exponents beyond MaxExponent in either direction;
// a failed parse is never reported as zero.
func ParseAmount(text string) (amount decimal.Decimal, ok bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if exp := d.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return decimal.Decimal{}, false
	}
	return d, true
}

// CanSubmit reports whether text is a usable amount: non-empty, numeric and
// at least MinAmount.
func CanSubmit(text string) bool {
	if text == "" {
		return false
	}
	d, ok := ParseAmount(text)
	return ok && d.GreaterThanOrEqual(MinAmount)
}
