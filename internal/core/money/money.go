// Package money provides an exact fixed-point representation for monetary
// amounts. Values are stored as integer cents so that sums over many
// transactions never accumulate binary floating-point drift.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidAmount = errors.New("invalid monetary amount")

// Money is an amount in cents (two fixed fractional digits).
type Money int64

func FromCents(cents int64) Money {
	return Money(cents)
}

// Parse converts a decimal string to Money with half-up rounding on the
// third fractional digit. Both dot and comma decimal separators are
// accepted. Negative amounts are rejected: the ledger records direction
// through the transaction type, not the sign.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	// first two fractional digits, half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	return Money(iv*100 + fracCents), nil
}

func (m Money) Cents() int64 {
	return int64(m)
}

func (m Money) Add(o Money) Money {
	return m + o
}

// Sub may go negative: a budget's remaining amount is allowed to be
// overdrawn.
func (m Money) Sub(o Money) Money {
	return m - o
}

func (m Money) IsZero() bool {
	return m == 0
}

func (m Money) IsNegative() bool {
	return m < 0
}

// String renders the amount with exactly two fractional digits, e.g.
// "920.00" or "-0.50".
func (m Money) String() string {
	cents := int64(m)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Float64 is for display-only ratios. Never feed this back into sums.
func (m Money) Float64() float64 {
	return float64(m) / 100.0
}

// PercentOf reports m as a percentage of whole, or 0 when whole is not
// positive. Division happens once, on the final ratio, so there is no
// accumulation error.
func (m Money) PercentOf(whole Money) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(m) / float64(whole) * 100
}

// MarshalJSON emits the amount as a plain JSON number with two fractional
// digits (e.g. 920.00), matching the wire shape callers expect for
// decimal currency fields.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		*m = 0
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
