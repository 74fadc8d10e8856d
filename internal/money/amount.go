// Package money implements the ledger's fixed-point monetary value.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// scale is the number of fractional decimal digits an Amount carries.
const scale = 10_000

// Amount is a signed fixed-point scalar with exactly 4 fractional decimal
// digits, stored as real value * 10_000. The zero value is zero.
type Amount struct {
	scaled int64
}

// Zero is the additive identity.
var Zero = Amount{}

// FromScaled constructs an Amount from an already-scaled integer, with no
// conversion applied.
func FromScaled(scaled int64) Amount {
	return Amount{scaled: scaled}
}

// FromFloat converts a floating-point decimal into an Amount, rounding to
// the nearest scaled unit, ties away from zero.
func FromFloat(value float64) Amount {
	return Amount{scaled: int64(math.Round(value * scale))}
}

// FromString parses a decimal string such as "100.5" or "-0.0001" into an
// Amount, rounding any digits beyond the 4th fractional place half-away
// from zero.
func FromString(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, fmt.Errorf("money: empty amount")
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" {
		return Zero, fmt.Errorf("money: invalid amount")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	wholeVal, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}

	var fracScaled int64
	if hasFrac {
		fracScaled, err = roundFraction(frac)
		if err != nil {
			return Zero, fmt.Errorf("money: invalid amount %q: %w", s, err)
		}
	}

	total := wholeVal*scale + fracScaled
	if neg {
		total = -total
	}
	return Amount{scaled: total}, nil
}

// roundFraction rounds a fractional digit string to 4 places, half-away
// from zero, returning the scaled contribution (0..scale).
func roundFraction(frac string) (int64, error) {
	for _, r := range frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit fractional part %q", frac)
		}
	}

	if len(frac) <= 4 {
		padded := frac + strings.Repeat("0", 4-len(frac))
		v, err := strconv.ParseInt(padded, 10, 64)
		return v, err
	}

	kept := frac[:4]
	next := frac[4]
	v, err := strconv.ParseInt(kept, 10, 64)
	if err != nil {
		return 0, err
	}
	if next >= '5' {
		v++
	}
	return v, nil
}

// Scaled returns the raw scaled integer representation.
func (a Amount) Scaled() int64 {
	return a.scaled
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{scaled: a.scaled + b.scaled}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{scaled: a.scaled - b.scaled}
}

// Increment adds b to *a in place.
func (a *Amount) Increment(b Amount) {
	a.scaled += b.scaled
}

// Decrement subtracts b from *a in place.
func (a *Amount) Decrement(b Amount) {
	a.scaled -= b.scaled
}

// Negate returns -a.
func (a Amount) Negate() Amount {
	return Amount{scaled: -a.scaled}
}

// IsZero reports whether a is exactly zero.
func (a Amount) IsZero() bool {
	return a.scaled == 0
}

// Compare returns -1, 0 or 1 as a is less than, equal to, or greater than b.
func (a Amount) Compare(b Amount) int {
	switch {
	case a.scaled < b.scaled:
		return -1
	case a.scaled > b.scaled:
		return 1
	default:
		return 0
	}
}

// LessThan reports whether a < b.
func (a Amount) LessThan(b Amount) bool {
	return a.scaled < b.scaled
}

// String formats the amount as "[-]W.FFFF" with exactly 4 fractional digits.
func (a Amount) String() string {
	sign := ""
	abs := a.scaled
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	whole := abs / scale
	frac := abs % scale
	return fmt.Sprintf("%s%d.%04d", sign, whole, frac)
}
