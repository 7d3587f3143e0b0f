// Package spline solves for B-spline coefficients along lines and over
// matrices. Solving means running the inverse of the sampled basis
// through the symmetric IIR cascades: one first-order pass for pure
// interpolation, or one second-order pass when a cubic smoothing
// parameter reshapes the filter.
package spline

import (
	"github.com/tphakala/go-bspline/internal/elemops"
	"github.com/tphakala/go-bspline/internal/filter"
	"github.com/tphakala/go-bspline/internal/strided"
	"github.com/tphakala/go-bspline/internal/symiir"
)

// Cubic1D replaces line with its cubic spline coefficients. A lambda
// above filter.SmoothingLambdaMin selects the smoothing filter; at or
// below it the coefficients interpolate the samples exactly. scratch
// must hold line.N elements.
func Cubic1D[F elemops.Float](line strided.Line[F], lambda, precision float64, scratch []F) error {
	if lambda > filter.SmoothingLambdaMin {
		r, omega, err := filter.SmoothingRoot(lambda)
		if err != nil {
			return err
		}
		return symiir.Order2(line, F(r), F(omega), precision, scratch)
	}
	return symiir.Order1(line, F(filter.CubicGain), F(filter.CubicPole), precision, scratch)
}

// Quadratic1D replaces line with its quadratic spline coefficients.
func Quadratic1D[F elemops.Float](line strided.Line[F], precision float64, scratch []F) error {
	return symiir.Order1(line, F(filter.QuadraticGain), F(filter.QuadraticPole), precision, scratch)
}

// Cubic2D replaces m with its cubic spline coefficients, filtering all
// rows and then all columns. scratch must hold max(rows, cols)
// elements.
func Cubic2D[F elemops.Float](m strided.Mat[F], lambda, precision float64, scratch []F) error {
	if lambda > filter.SmoothingLambdaMin {
		r, omega, err := filter.SmoothingRoot(lambda)
		if err != nil {
			return err
		}
		return eachLine(m, func(line strided.Line[F]) error {
			return symiir.Order2(line, F(r), F(omega), precision, scratch)
		})
	}
	return eachLine(m, func(line strided.Line[F]) error {
		return symiir.Order1(line, F(filter.CubicGain), F(filter.CubicPole), precision, scratch)
	})
}

// Quadratic2D replaces m with its quadratic spline coefficients.
func Quadratic2D[F elemops.Float](m strided.Mat[F], precision float64, scratch []F) error {
	return eachLine(m, func(line strided.Line[F]) error {
		return symiir.Order1(line, F(filter.QuadraticGain), F(filter.QuadraticPole), precision, scratch)
	})
}

// eachLine applies the separable transform: every row, then every
// column of the partially transformed matrix.
func eachLine[E elemops.Element](m strided.Mat[E], apply func(strided.Line[E]) error) error {
	for i := range m.Rows {
		if err := apply(m.Row(i)); err != nil {
			return err
		}
	}
	for j := range m.Cols {
		if err := apply(m.Col(j)); err != nil {
			return err
		}
	}
	return nil
}
