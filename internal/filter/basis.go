package filter

import (
	"math"

	"github.com/tphakala/go-bspline/internal/elemops"
)

// CubicBasis evaluates the centered cubic B-spline basis at t. The
// support is (-2, 2); outside it the basis is identically zero.
func CubicBasis(t float64) float64 {
	at := math.Abs(t)
	switch {
	case at < 1:
		return 2.0/3.0 - at*at + at*at*at/2
	case at < 2:
		d := 2 - at
		return d * d * d / 6
	default:
		return 0
	}
}

// QuadraticBasis evaluates the centered quadratic B-spline basis at t.
// The support is (-1.5, 1.5).
func QuadraticBasis(t float64) float64 {
	at := math.Abs(t)
	switch {
	case at < 0.5:
		return 0.75 - at*at
	case at < 1.5:
		d := at - 1.5
		return d * d / 2
	default:
		return 0
	}
}

// CubicKernel returns the cubic basis sampled at the integers, the
// symmetric FIR that maps cubic spline coefficients back to samples.
func CubicKernel[F elemops.Float]() []F {
	return []F{1.0 / 6.0, 4.0 / 6.0, 1.0 / 6.0}
}

// QuadraticKernel returns the quadratic basis sampled at the integers.
func QuadraticKernel[F elemops.Float]() []F {
	return []F{1.0 / 8.0, 6.0 / 8.0, 1.0 / 8.0}
}
