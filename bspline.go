package bspline

import (
	"errors"
	"fmt"

	"github.com/tphakala/simd/cpu"

	"github.com/tphakala/go-bspline/internal/elemops"
	"github.com/tphakala/go-bspline/internal/sepfir"
	"github.com/tphakala/go-bspline/internal/spline"
	"github.com/tphakala/go-bspline/internal/strided"
	"github.com/tphakala/go-bspline/internal/symiir"
)

// Float is the type constraint for the real element kinds. The spline
// coefficient solvers accept only these.
type Float interface {
	float32 | float64
}

// Element is the type constraint covering every supported element kind.
// Separable FIR filtering and the first-order symmetric filter accept
// all four.
type Element interface {
	float32 | float64 | complex64 | complex128
}

// Common errors returned by the filtering operations. Specific causes
// are wrapped, so errors.Is sees both the category and the cause.
var (
	// ErrInvalidArgument indicates a malformed input: bad shape, even
	// kernel length, an unstable pole, or a rejected parameter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConvergenceFailure indicates a boundary series that did not
	// reach the requested precision within the signal length.
	ErrConvergenceFailure = errors.New("filter did not converge")

	// ErrInternal indicates a failure with no argument-level cause.
	ErrInternal = errors.New("internal filtering failure")
)

// CSpline2D computes the cubic B-spline coefficients of a 2-D signal,
// filtering every row and then every column. With lambda at or below
// [SmoothingLambdaMin] the coefficients interpolate the input exactly;
// above it they solve the cubic smoothing-spline system for lambda.
//
// A precision outside (0, 1] selects the default for the element kind,
// [DefaultSplinePrecision32] or [DefaultSplinePrecision64]. The input
// matrix is left untouched; the result is a fresh compact matrix.
func CSpline2D[F Float](input Matrix[F], lambda, precision float64) (Matrix[F], error) {
	out, err := solveSpline(input, func(m strided.Mat[F], scratch []F) error {
		return spline.Cubic2D(m, lambda, normalizePrecision[F](precision, splineDefault), scratch)
	})
	if err != nil {
		return Matrix[F]{}, err
	}
	return out, nil
}

// QSpline2D computes the quadratic B-spline coefficients of a 2-D
// signal. Quadratic smoothing is not implemented: any nonzero lambda
// fails with [ErrInvalidArgument]. Precision is handled as in
// [CSpline2D].
func QSpline2D[F Float](input Matrix[F], lambda, precision float64) (Matrix[F], error) {
	if lambda != 0 {
		return Matrix[F]{}, fmt.Errorf("%w: quadratic smoothing is not supported (lambda %g)", ErrInvalidArgument, lambda)
	}
	out, err := solveSpline(input, func(m strided.Mat[F], scratch []F) error {
		return spline.Quadratic2D(m, normalizePrecision[F](precision, splineDefault), scratch)
	})
	if err != nil {
		return Matrix[F]{}, err
	}
	return out, nil
}

// solveSpline copies input into a fresh compact matrix and runs the
// in-place coefficient transform over it.
func solveSpline[F Float](input Matrix[F], transform func(strided.Mat[F], []F) error) (Matrix[F], error) {
	if err := input.Validate(); err != nil {
		return Matrix[F]{}, err
	}
	if input.Rows < symiir.MinLen || input.Cols < symiir.MinLen {
		return Matrix[F]{}, fmt.Errorf("%w: shape %dx%d is below the %dx%d minimum for spline solving",
			ErrInvalidArgument, input.Rows, input.Cols, symiir.MinLen, symiir.MinLen)
	}

	out := NewMatrix[F](input.Rows, input.Cols)
	strided.Copy(out.view(), input.view())

	scratch := make([]F, max(input.Rows, input.Cols))
	if err := transform(out.view(), scratch); err != nil {
		return Matrix[F]{}, mapFilterErr(err)
	}
	return out, nil
}

// SepFIR2D convolves a 2-D signal with the separable kernel
// hrow × hcol under the whole-sample mirror boundary. Both kernels must
// have odd length so a center tap aligns with each output sample. Rows
// of length one are valid: the mirror degenerates to a constant
// extension. The input matrix is left untouched.
func SepFIR2D[E Element](input Matrix[E], hrow, hcol []E) (Matrix[E], error) {
	if err := input.Validate(); err != nil {
		return Matrix[E]{}, err
	}
	if input.Rows < 1 || input.Cols < 1 {
		return Matrix[E]{}, fmt.Errorf("%w: empty input %dx%d", ErrInvalidArgument, input.Rows, input.Cols)
	}

	out := NewMatrix[E](input.Rows, input.Cols)
	scratch := make([]E, input.Rows*input.Cols)
	if err := sepfir.Convolve2D(out.view(), input.view(), hrow, hcol, scratch); err != nil {
		return Matrix[E]{}, mapFilterErr(err)
	}
	return out, nil
}

// SymIIROrder1 runs the first-order symmetric filter
// c0/((1-z1·z⁻¹)(1-z1·z)) over a 1-D signal mirrored at both ends.
// The pole z1 must lie strictly inside the unit circle. A precision
// outside (0, 1] selects the default for the element kind,
// [DefaultIIRPrecision32] or [DefaultIIRPrecision64].
func SymIIROrder1[E Element](signal []E, c0, z1 E, precision float64) ([]E, error) {
	if len(signal) < symiir.MinLen {
		return nil, fmt.Errorf("%w: signal has %d samples, need %d", ErrInvalidArgument, len(signal), symiir.MinLen)
	}

	out := make([]E, len(signal))
	copy(out, signal)
	scratch := make([]E, len(signal))
	err := symiir.Order1(strided.FromSlice(out), c0, z1, normalizePrecision[E](precision, iirDefault), scratch)
	if err != nil {
		return nil, mapFilterErr(err)
	}
	return out, nil
}

// SymIIROrder2 runs the second-order symmetric filter with the
// conjugate pole pair r·e^±iω over a 1-D signal mirrored at both ends.
// The radius r must lie strictly inside the unit circle. Precision is
// handled as in [SymIIROrder1].
func SymIIROrder2[F Float](signal []F, r, omega F, precision float64) ([]F, error) {
	if len(signal) < symiir.MinLen {
		return nil, fmt.Errorf("%w: signal has %d samples, need %d", ErrInvalidArgument, len(signal), symiir.MinLen)
	}

	out := make([]F, len(signal))
	copy(out, signal)
	scratch := make([]F, len(signal))
	err := symiir.Order2(strided.FromSlice(out), r, omega, normalizePrecision[F](precision, iirDefault), scratch)
	if err != nil {
		return nil, mapFilterErr(err)
	}
	return out, nil
}

// mapFilterErr lifts internal filter errors into the package's error
// taxonomy, keeping the specific cause in the chain.
func mapFilterErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, symiir.ErrNotConverged):
		return fmt.Errorf("%w: %w", ErrConvergenceFailure, err)
	case errors.Is(err, symiir.ErrUnstablePole),
		errors.Is(err, symiir.ErrShortLine),
		errors.Is(err, sepfir.ErrEvenKernel):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// precisionKind selects which per-kind default normalizePrecision
// falls back to.
type precisionKind int

const (
	splineDefault precisionKind = iota
	iirDefault
)

// normalizePrecision returns precision unchanged when it lies in
// (0, 1], and the element kind's default otherwise. Out-of-range
// values, including the conventional -1 sentinel, never fail.
func normalizePrecision[E Element](precision float64, kind precisionKind) float64 {
	if precision > 0 && precision <= 1 {
		return precision
	}
	ops := elemops.For[E]()
	if kind == splineDefault {
		return ops.SplinePrecision
	}
	return ops.IIRPrecision
}

// SIMDInfo reports the detected CPU capability backing the accelerated
// kernels, such as "AVX2" or "scalar".
func SIMDInfo() string {
	return cpu.Info()
}
