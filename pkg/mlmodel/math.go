package mlmodel

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimension is returned whenever a vector does not match the width a
// fitted component expects.
var ErrDimension = errors.New("dimension mismatch")

func checkDim(what string, got, want int) error {
	if got != want {
		return fmt.Errorf("%s: got %d values, want %d: %w", what, got, want, ErrDimension)
	}
	return nil
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Sigmoid is the logistic link used by boosted trees and the meta-learner.
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Round rounds v to places decimals, half away from zero. Magnitudes with no
// fractional digits left, and values whose scaled form would overflow, are
// returned unchanged.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= 1e15 {
		return v
	}
	p := math.Pow(10, float64(places))
	scaled := v * p
	if math.IsInf(scaled, 0) {
		return v
	}
	return math.Round(scaled) / p
}
