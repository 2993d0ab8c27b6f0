package account

import (
	"math"
	"sort"
)

// Ledger computations. All functions here are pure: they never mutate the
// movement slice they are given and are safe to call any number of times.

// Balance returns the sum of all movements.
func Balance(movements []float64) float64 {
	var sum float64
	for _, m := range movements {
		sum += m
	}
	return sum
}

// TotalDeposits returns the sum of all positive movements.
func TotalDeposits(movements []float64) float64 {
	var sum float64
	for _, m := range movements {
		if m > 0 {
			sum += m
		}
	}
	return sum
}

// TotalWithdrawals returns the absolute sum of all negative movements,
// reported as a positive magnitude.
func TotalWithdrawals(movements []float64) float64 {
	var sum float64
	for _, m := range movements {
		if m < 0 {
			sum += m
		}
	}
	return math.Abs(sum)
}

// TotalInterest returns the hypothetical interest earned on deposits at the
// given percent rate, truncated toward zero. The interest is displayed only;
// it is never appended to the movements and never affects the balance.
func TotalInterest(movements []float64, ratePercent float64) float64 {
	var sum float64
	for _, m := range movements {
		if m > 0 {
			sum += m * ratePercent / 100
		}
	}
	return math.Trunc(sum)
}

// SortedView returns an ascending copy of the movements for display. The
// stored order is never touched.
func SortedView(movements []float64) []float64 {
	view := make([]float64, len(movements))
	copy(view, movements)
	sort.Float64s(view)
	return view
}
