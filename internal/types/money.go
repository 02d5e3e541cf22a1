// README: Common money and rate value objects used across modules.
package types

import (
	"fmt"
	"math"
	"strconv"
)

// DefaultCurrency is the currency every fare table is denominated in.
const DefaultCurrency = "PHP"

// Money is an amount in minor units (centavos).
type Money struct {
	Amount   int64
	Currency string
}

// Peso builds a Money from a decimal amount, rounding half away from zero to the centavo.
func Peso(v float64) Money {
	return Money{Amount: int64(math.Round(v * 100)), Currency: DefaultCurrency}
}

func (m Money) IsNegative() bool {
	return m.Amount < 0
}

// Float returns the amount in major units. Display only.
func (m Money) Float() float64 {
	return float64(m.Amount) / 100
}

// String renders the amount with exactly two decimals, e.g. "10.40".
func (m Money) String() string {
	sign := ""
	a := m.Amount
	if a < 0 {
		sign = "-"
		a = -a
	}
	return fmt.Sprintf("%s%d.%02d", sign, a/100, a%100)
}

// MarshalJSON emits a bare JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// Discounted applies rate multiplicatively and rounds half-up to the centavo.
func (m Money) Discounted(r Rate) Money {
	if r <= 0 {
		return m
	}
	num := m.Amount * (RateScale - int64(r))
	q := num / RateScale
	if rem := num % RateScale; rem*2 >= RateScale {
		q++
	}
	return Money{Amount: q, Currency: m.Currency}
}

// RateScale is the number of basis points in a whole.
const RateScale int64 = 10000

// Rate is a fraction held in basis points so discount arithmetic stays exact.
type Rate int64

// RateFromFraction converts 0.2 into 2000 basis points.
func RateFromFraction(f float64) Rate {
	return Rate(math.Round(f * float64(RateScale)))
}

func (r Rate) Fraction() float64 {
	return float64(r) / float64(RateScale)
}

// Valid reports whether the rate lies in [0, 1).
func (r Rate) Valid() bool {
	return r >= 0 && int64(r) < RateScale
}

func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(r.Fraction(), 'f', -1, 64)), nil
}
