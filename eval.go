package bspline

import (
	"fmt"
	"math"

	"github.com/tphakala/go-bspline/internal/filter"
	"github.com/tphakala/go-bspline/internal/mathutil"
)

// CSpline1DEval evaluates a cubic spline from its coefficients at the
// points in x. Coefficient j sits at abscissa x0 + j·dx; points beyond
// either end read coefficients through the whole-sample mirror fold,
// matching the boundary the solvers assume. Feeding back the
// coefficient grid itself (x0, x0+dx, ...) reproduces the samples the
// coefficients interpolate.
func CSpline1DEval[F Float](coeffs []F, x []F, dx, x0 float64) ([]F, error) {
	return evalSpline(coeffs, x, dx, x0, 4, filter.CubicBasis)
}

// QSpline1DEval evaluates a quadratic spline from its coefficients at
// the points in x, with the same grid and boundary conventions as
// [CSpline1DEval].
func QSpline1DEval[F Float](coeffs []F, x []F, dx, x0 float64) ([]F, error) {
	return evalSpline(coeffs, x, dx, x0, 3, filter.QuadraticBasis)
}

// evalSpline sums taps coefficients around each point against the
// basis. taps covers the basis support: four for the cubic's (-2, 2),
// three for the quadratic's (-1.5, 1.5).
func evalSpline[F Float](coeffs []F, x []F, dx, x0 float64, taps int, basis func(float64) float64) ([]F, error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("%w: no coefficients", ErrInvalidArgument)
	}
	if dx <= 0 {
		return nil, fmt.Errorf("%w: dx must be positive, have %g", ErrInvalidArgument, dx)
	}

	n := len(coeffs)
	out := make([]F, len(x))
	for i, xi := range x {
		t := (float64(xi) - x0) / dx

		// Leftmost tap with possible support overlap. The cubic's even
		// tap count centers on the interval, the quadratic's odd count
		// on the nearest knot.
		var first int
		if taps%2 == 0 {
			first = int(math.Floor(t)) - taps/2 + 1
		} else {
			first = int(math.Round(t)) - taps/2
		}

		var acc float64
		for j := first; j < first+taps; j++ {
			acc += float64(coeffs[mathutil.MirrorIndex(j, n)]) * basis(t-float64(j))
		}
		out[i] = F(acc)
	}
	return out, nil
}
