package bspline

import (
	"fmt"

	"github.com/tphakala/go-bspline/internal/spline"
	"github.com/tphakala/go-bspline/internal/strided"
	"github.com/tphakala/go-bspline/internal/symiir"
)

// CSpline1D computes the cubic B-spline coefficients of a 1-D signal
// at the default precision for the element kind. With lambda at or
// below [SmoothingLambdaMin] the coefficients interpolate the samples
// exactly; above it they solve the cubic smoothing-spline system.
func CSpline1D[F Float](signal []F, lambda float64) ([]F, error) {
	out, scratch, err := copySignal(signal)
	if err != nil {
		return nil, err
	}
	precision := normalizePrecision[F](-1, splineDefault)
	if err := spline.Cubic1D(strided.FromSlice(out), lambda, precision, scratch); err != nil {
		return nil, mapFilterErr(err)
	}
	return out, nil
}

// QSpline1D computes the quadratic B-spline coefficients of a 1-D
// signal at the default precision for the element kind. Quadratic
// smoothing is not implemented, so there is no lambda parameter.
func QSpline1D[F Float](signal []F) ([]F, error) {
	out, scratch, err := copySignal(signal)
	if err != nil {
		return nil, err
	}
	precision := normalizePrecision[F](-1, splineDefault)
	if err := spline.Quadratic1D(strided.FromSlice(out), precision, scratch); err != nil {
		return nil, mapFilterErr(err)
	}
	return out, nil
}

// copySignal validates the 1-D input and returns a working copy plus a
// scratch buffer of the same length.
func copySignal[F Float](signal []F) (out, scratch []F, err error) {
	if len(signal) < symiir.MinLen {
		return nil, nil, fmt.Errorf("%w: signal has %d samples, need %d", ErrInvalidArgument, len(signal), symiir.MinLen)
	}
	out = make([]F, len(signal))
	copy(out, signal)
	return out, make([]F, len(signal)), nil
}
