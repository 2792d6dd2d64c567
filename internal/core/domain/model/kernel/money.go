package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits every Money amount is
// normalized to.
const moneyScale = 2

// Money is an immutable monetary value. Every amount is normalized to two
// fractional digits using banker's rounding (round half to even), so
// arithmetic is scale-stable: adding or subtracting two Money values always
// yields a value at the same scale. Equality is value-based on the normalized
// amount.
//
// The zero value represents 0.00 and is valid for arithmetic; order creation
// rules that require a strictly positive price are enforced by the order
// aggregate, not here.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money representing 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero.RoundBank(moneyScale)}
}

// NewMoney creates a Money from a decimal amount, normalizing it to two
// fractional digits with half-to-even rounding. 10.005 becomes 10.00 and
// 10.015 becomes 10.02.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.RoundBank(moneyScale)}
}

// NewMoneyFromString parses a decimal string such as "25.50" into a Money.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	return NewMoney(amount), nil
}

// Amount returns the normalized decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two Money values at the normalized scale.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).RoundBank(moneyScale)}
}

// Subtract returns the difference of two Money values at the normalized scale.
func (m Money) Subtract(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount).RoundBank(moneyScale)}
}

// MultiplyInt returns this amount multiplied by a whole quantity, normalized.
func (m Money) MultiplyInt(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity))).RoundBank(moneyScale)}
}

// IsGreaterThanZero reports whether the amount is strictly positive.
func (m Money) IsGreaterThanZero() bool {
	return m.amount.IsPositive()
}

// IsGreaterThan reports whether this amount is strictly greater than other.
func (m Money) IsGreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsEqual compares two Money values on their normalized amounts.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two fractional digits, e.g. "25.50".
func (m Money) String() string {
	return m.amount.StringFixedBank(moneyScale)
}

// MarshalJSON serializes the amount as a decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// UnmarshalJSON parses a decimal value, quoted or not, and normalizes it.
func (m *Money) UnmarshalJSON(data []byte) error {
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}
	m.amount = amount.RoundBank(moneyScale)
	return nil
}
