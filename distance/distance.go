package distance

import (
	"fmt"
	"math"
)

// Func is a function type for distance calculation.
// Assumes vectors are the same length (caller's responsibility).
type Func func(a, b []float64) float64

// Manhattan calculates the Minkowski distance of order 1: the sum of
// absolute coordinate differences.
func Manhattan(a, b []float64) float64 {
	var sum float64

	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}

	return sum
}

// Euclidean calculates the Minkowski distance of order 2.
func Euclidean(a, b []float64) float64 {
	var sum float64

	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum)
}

// Chebyshev calculates the limiting Minkowski distance as the order grows
// without bound: the largest absolute coordinate difference.
func Chebyshev(a, b []float64) float64 {
	var max float64

	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > max {
			max = d
		}
	}

	return max
}

// Minkowski returns the distance function of the given order. Orders 1, 2
// and +Inf dispatch to the specialized kernels; any other order of at least
// 1 uses the general form. Orders below 1 are rejected.
func Minkowski(p float64) (Func, error) {
	switch {
	case math.IsNaN(p) || p < 1:
		return nil, fmt.Errorf("unsupported minkowski order: %v", p)
	case p == 1:
		return Manhattan, nil
	case p == 2:
		return Euclidean, nil
	case math.IsInf(p, 1):
		return Chebyshev, nil
	}

	return func(a, b []float64) float64 {
		var sum float64

		for i := range a {
			sum += math.Pow(math.Abs(a[i]-b[i]), p)
		}

		return math.Pow(sum, 1/p)
	}, nil
}
