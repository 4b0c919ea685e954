package domain

import "math"

// MaxPriceCredits caps the price of a single package.
const MaxPriceCredits int64 = 1_000_000_000

// SumCredits adds amounts and fails with a ValidationError on "lines" when the sum leaves the int64 range.
func SumCredits(amounts ...int64) (int64, error) {
	var total int64
	for _, amount := range amounts {
		if (amount > 0 && total > math.MaxInt64-amount) || (amount < 0 && total < math.MinInt64-amount) {
			return 0, NewValidationError("lines", "total out of range")
		}
		total += amount
	}
	return total, nil
}

// ApplyDelta returns balance+delta. A result above math.MaxInt64 is a ValidationError on "amount",
// a negative result is ErrInsufficientFunds.
func ApplyDelta(balance, delta int64) (int64, error) {
	if delta > 0 && balance > math.MaxInt64-delta {
		return 0, NewValidationError("amount", "balance out of range")
	}
	if delta < 0 && balance < -delta {
		return 0, ErrInsufficientFunds
	}
	return balance + delta, nil
}
