package bspline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-bspline/internal/testutil"
)

// TestCSpline1DEval_ReproducesSamples solves for coefficients and
// evaluates the spline back on the sample grid.
func TestCSpline1DEval_ReproducesSamples(t *testing.T) {
	const n = 32
	signal := make([]float64, n)
	x := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(0.4*float64(i)) + 0.2*float64(i%3)
		x[i] = float64(i)
	}

	coeffs, err := CSpline1D(signal, 0)
	require.NoError(t, err)

	got, err := CSpline1DEval(coeffs, x, 1, 0)
	require.NoError(t, err)
	testutil.AssertSlicesClose(t, signal, got, testutil.Solve64Tolerance)
}

// TestQSpline1DEval_ReproducesSamples does the same for the quadratic
// spline.
func TestQSpline1DEval_ReproducesSamples(t *testing.T) {
	const n = 32
	signal := make([]float64, n)
	x := make([]float64, n)
	for i := range signal {
		signal[i] = math.Cos(0.7 * float64(i))
		x[i] = float64(i)
	}

	coeffs, err := QSpline1D(signal)
	require.NoError(t, err)

	got, err := QSpline1DEval(coeffs, x, 1, 0)
	require.NoError(t, err)
	testutil.AssertSlicesClose(t, signal, got, testutil.Solve64Tolerance)
}

// TestEval_GridMapping verifies dx and x0 place coefficient j at
// abscissa x0 + j·dx.
func TestEval_GridMapping(t *testing.T) {
	const (
		n  = 24
		dx = 0.5
		x0 = 2.0
	)
	signal := make([]float64, n)
	x := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(0.6 * float64(i))
		x[i] = x0 + dx*float64(i)
	}

	coeffs, err := CSpline1D(signal, 0)
	require.NoError(t, err)

	got, err := CSpline1DEval(coeffs, x, dx, x0)
	require.NoError(t, err)
	testutil.AssertSlicesClose(t, signal, got, testutil.Solve64Tolerance)
}

// TestEval_PartitionOfUnity verifies unit coefficients evaluate to one
// everywhere, including far beyond the ends where taps read through the
// mirror fold.
func TestEval_PartitionOfUnity(t *testing.T) {
	coeffs := make([]float64, 10)
	for i := range coeffs {
		coeffs[i] = 1
	}
	x := []float64{-7.3, -1.0, -0.4, 0, 2.5, 4.75, 8.9, 9.0, 11.6, 20.1}

	cubic, err := CSpline1DEval(coeffs, x, 1, 0)
	require.NoError(t, err)
	quadratic, err := QSpline1DEval(coeffs, x, 1, 0)
	require.NoError(t, err)

	for i := range x {
		assert.InDelta(t, 1.0, cubic[i], 1e-12, "cubic at %g", x[i])
		assert.InDelta(t, 1.0, quadratic[i], 1e-12, "quadratic at %g", x[i])
	}
}

// TestEval_LinearReproduction verifies B-splines reproduce straight
// lines from ramp coefficients, away from the boundary fold.
func TestEval_LinearReproduction(t *testing.T) {
	coeffs := make([]float64, 20)
	for i := range coeffs {
		coeffs[i] = float64(i)
	}
	x := []float64{3.0, 5.3, 7.75, 12.01, 15.9}

	cubic, err := CSpline1DEval(coeffs, x, 1, 0)
	require.NoError(t, err)
	quadratic, err := QSpline1DEval(coeffs, x, 1, 0)
	require.NoError(t, err)

	for i, xi := range x {
		assert.InDelta(t, xi, cubic[i], 1e-12, "cubic at %g", xi)
		assert.InDelta(t, xi, quadratic[i], 1e-12, "quadratic at %g", xi)
	}
}

// TestEval_DenseWithinEnvelope evaluates a fitted sinusoid between the
// knots and checks the values stay inside the signal's amplitude band.
// The bound is the true amplitude, not the sample extrema: the
// interpolant tracks the underlying function, which peaks between
// samples.
func TestEval_DenseWithinEnvelope(t *testing.T) {
	const (
		n         = 32
		amplitude = 0.8
		perKnot   = 8
	)
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = amplitude * math.Sin(0.4*float64(i))
	}

	coeffs, err := CSpline1D(signal, 0)
	require.NoError(t, err)

	x := make([]float64, perKnot*(n-1)+1)
	for i := range x {
		x[i] = float64(i) / perKnot
	}

	got, err := CSpline1DEval(coeffs, x, 1, 0)
	require.NoError(t, err)
	testutil.AssertAllInRange(t, got, -amplitude-1e-3, amplitude+1e-3)
	testutil.AssertNoNaNOrInf(t, got)
}

// TestEval_MirrorSymmetry verifies the evaluated spline is symmetric
// about both ends of the coefficient grid.
func TestEval_MirrorSymmetry(t *testing.T) {
	coeffs := []float64{2, -1, 4, 0.5, 3, -2, 1, 5}
	n := float64(len(coeffs) - 1)
	deltas := []float64{0.3, 0.8, 1.3, 2.6}

	for _, d := range deltas {
		left, err := CSpline1DEval(coeffs, []float64{-d, d}, 1, 0)
		require.NoError(t, err)
		assert.InDelta(t, left[1], left[0], 1e-12, "fold about zero at delta %g", d)

		right, err := CSpline1DEval(coeffs, []float64{n - d, n + d}, 1, 0)
		require.NoError(t, err)
		assert.InDelta(t, right[0], right[1], 1e-12, "fold about the last knot at delta %g", d)
	}
}

// TestEval_Float32 verifies the 32-bit instantiation.
func TestEval_Float32(t *testing.T) {
	signal := make([]float32, 16)
	x := make([]float32, 16)
	for i := range signal {
		signal[i] = float32(math.Sin(0.5 * float64(i)))
		x[i] = float32(i)
	}

	coeffs, err := CSpline1D(signal, 0)
	require.NoError(t, err)

	got, err := CSpline1DEval(coeffs, x, 1, 0)
	require.NoError(t, err)
	for i := range signal {
		assert.InDelta(t, float64(signal[i]), float64(got[i]), testutil.Solve32Tolerance, "sample %d", i)
	}
}

// TestEval_Errors verifies argument validation.
func TestEval_Errors(t *testing.T) {
	coeffs := []float64{1, 2, 3}

	t.Run("no_coefficients", func(t *testing.T) {
		_, err := CSpline1DEval([]float64{}, []float64{0}, 1, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("zero_dx", func(t *testing.T) {
		_, err := CSpline1DEval(coeffs, []float64{0}, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("negative_dx", func(t *testing.T) {
		_, err := QSpline1DEval(coeffs, []float64{0}, -0.5, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("no_points", func(t *testing.T) {
		out, err := CSpline1DEval(coeffs, nil, 1, 0)
		assert.NoError(t, err)
		assert.Empty(t, out)
	})
}
