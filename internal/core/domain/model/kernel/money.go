package kernel

import (
	"fmt"
	"math"

	"chatorder/internal/pkg/errs"
)

// Money is an amount in minor currency units (paise). Unlike the other kernel
// value objects, the zero value is a legitimate amount (an empty cart totals
// to zero), so Money carries no constructor guard.
type Money struct {
	amount int64
}

// NewMoney creates a Money from minor units. Negative amounts are rejected.
func NewMoney(minorUnits int64) (Money, error) {
	if minorUnits < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d minor units is negative", minorUnits))
	}
	return Money{amount: minorUnits}, nil
}

// MoneyFromMajor converts a major-unit amount (the form prices arrive in on
// gateway payloads) to Money, rounding to the nearest minor unit.
func MoneyFromMajor(major float64) (Money, error) {
	if major < 0 || math.IsNaN(major) || math.IsInf(major, 0) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%v is not a valid amount", major))
	}
	return Money{amount: int64(math.Round(major * 100))}, nil
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// MultiplyQty returns the amount multiplied by a line quantity.
func (m Money) MultiplyQty(qty int) Money {
	return Money{amount: m.amount * int64(qty)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsEqual reports whether both amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String formats the amount for customer-facing messages, e.g. "₹140.00".
func (m Money) String() string {
	return fmt.Sprintf("₹%d.%02d", m.amount/100, m.amount%100)
}
