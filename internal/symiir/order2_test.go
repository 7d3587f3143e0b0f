package symiir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-bspline/internal/elemops"
	"github.com/tphakala/go-bspline/internal/filter"
	"github.com/tphakala/go-bspline/internal/mathutil"
	"github.com/tphakala/go-bspline/internal/strided"
	"github.com/tphakala/go-bspline/internal/testutil"
)

const (
	// The order-2 boundary series decay like r^k with r up to ~0.5, so
	// the reference window and its dead zone are wider than order 1.
	order2RefCount = 48
	order2RefPad   = 150
)

func checkOrder2Constant[F elemops.Float](t *testing.T, r, omega F, precision, tolerance float64) {
	t.Helper()

	const n = 64
	want := F(4)
	sig := make([]F, n)
	for i := range sig {
		sig[i] = want
	}

	err := Order2(strided.FromSlice(sig), r, omega, precision, make([]F, n))
	require.NoError(t, err)
	testutil.AssertUniform(t, sig, want, tolerance)
}

// TestOrder2_ConstantInvariance verifies the cascade normalization
// keeps DC gain at one for smoothing pole pairs of both angle regimes.
func TestOrder2_ConstantInvariance(t *testing.T) {
	tests := []struct {
		name   string
		lambda float64
	}{
		{"obtuse_angle", 0.02},
		{"acute_angle", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, omega, err := filter.SmoothingRoot(tt.lambda)
			require.NoError(t, err)

			checkOrder2Constant[float64](t, r, omega, testPrecision, 1e-7)
			checkOrder2Constant[float32](t, float32(r), float32(omega), 1e-5, 1e-3)
		})
	}
}

// TestOrder2_RealPolePairs verifies the degenerate trigonometric limits
// at pole angles 0 and π still normalize to unit DC gain.
func TestOrder2_RealPolePairs(t *testing.T) {
	checkOrder2Constant[float64](t, 0.3, 0, testPrecision, 1e-7)
	checkOrder2Constant[float64](t, 0.3, math.Pi, testPrecision, 1e-7)
}

// mirrorOrder2Reference filters the mirror extension of x directly,
// with enough unfolded padding that the unseeded start-up state of both
// passes decays below double precision inside the window.
func mirrorOrder2Reference(x []float64, r, omega float64, pad int) []float64 {
	n := len(x)
	cs := 1 - 2*r*math.Cos(omega) + r*r
	a2 := 2 * r * math.Cos(omega)
	a3 := -(r * r)

	ext := make([]float64, n+2*pad)
	for j := range ext {
		ext[j] = x[mathutil.MirrorIndex(j-pad, n)]
	}

	fwd := make([]float64, len(ext))
	fwd[0] = cs * ext[0]
	fwd[1] = cs*ext[1] + a2*fwd[0]
	for j := 2; j < len(ext); j++ {
		fwd[j] = cs*ext[j] + a2*fwd[j-1] + a3*fwd[j-2]
	}

	bwd := make([]float64, len(ext))
	last := len(ext) - 1
	bwd[last] = cs * fwd[last]
	bwd[last-1] = cs*fwd[last-1] + a2*bwd[last]
	for j := last - 2; j >= 0; j-- {
		bwd[j] = cs*fwd[j] + a2*bwd[j+1] + a3*bwd[j+2]
	}
	return bwd[pad : pad+n]
}

// TestOrder2_MirrorReference compares the seeded in-place filter
// against brute-force filtering of the unfolded signal for smoothing
// pole pairs on both sides of the angle transition.
func TestOrder2_MirrorReference(t *testing.T) {
	tests := []struct {
		name   string
		lambda float64
	}{
		{"light_smoothing", 0.05},
		{"heavy_smoothing", 1},
	}

	x := make([]float64, order2RefCount)
	for i := range x {
		x[i] = math.Sin(0.31*float64(i)) + 0.5*math.Cos(1.7*float64(i))
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, omega, err := filter.SmoothingRoot(tt.lambda)
			require.NoError(t, err)

			got := make([]float64, len(x))
			copy(got, x)
			err = Order2(strided.FromSlice(got), r, omega, refPrecision, make([]float64, len(x)))
			require.NoError(t, err)

			want := mirrorOrder2Reference(x, r, omega, order2RefPad)
			testutil.AssertSlicesClose(t, want, got, refTolerance)
		})
	}
}

// TestOrder2_SymmetricInput verifies a palindromic signal filters to a
// palindromic result.
func TestOrder2_SymmetricInput(t *testing.T) {
	const n = 31
	sig := make([]float64, n)
	for i := range sig {
		d := float64(i) - float64(n-1)/2
		sig[i] = 1 / (1 + d*d/9)
	}

	r, omega, err := filter.SmoothingRoot(0.3)
	require.NoError(t, err)

	err = Order2(strided.FromSlice(sig), r, omega, testPrecision, make([]float64, n))
	require.NoError(t, err)
	testutil.AssertSymmetric(t, sig, 1e-9)
}

// TestOrder2_StridedLine verifies a non-unit-stride view filters to the
// same values as a compact copy of the same samples.
func TestOrder2_StridedLine(t *testing.T) {
	const n = 32
	r, omega, err := filter.SmoothingRoot(0.1)
	require.NoError(t, err)

	compact := make([]float64, n)
	buf := make([]float64, 2*n+7)
	for i := range compact {
		compact[i] = math.Sin(1.1 * float64(i))
		buf[7+2*i] = compact[i]
	}

	err = Order2(strided.FromSlice(compact), r, omega, testPrecision, make([]float64, n))
	require.NoError(t, err)

	view := strided.Line[float64]{Data: buf, Off: 7, Stride: 2, N: n}
	err = Order2(view, r, omega, testPrecision, make([]float64, n))
	require.NoError(t, err)

	for i := range n {
		assert.InDelta(t, compact[i], view.At(i), 1e-12, "sample %d", i)
	}
}

// TestOrder2_ImpulseResponseIdentities validates the closed-form
// boundary coefficients against the defining recurrences of the
// transfer functions they sample.
func TestOrder2_ImpulseResponseIdentities(t *testing.T) {
	r, omega, err := filter.SmoothingRoot(0.3)
	require.NoError(t, err)
	cs := 1 - 2*r*math.Cos(omega) + r*r
	a2 := 2 * r * math.Cos(omega)
	a3 := -(r * r)

	t.Run("causal_base_cases", func(t *testing.T) {
		assert.InDelta(t, cs, hc(0, cs, r, omega), 1e-14)
		assert.InDelta(t, cs*a2, hc(1, cs, r, omega), 1e-14)
		assert.Zero(t, hc(-1, cs, r, omega))
	})

	t.Run("causal_recurrence", func(t *testing.T) {
		for k := 2; k <= 40; k++ {
			want := a2*hc(k-1, cs, r, omega) + a3*hc(k-2, cs, r, omega)
			assert.InDelta(t, want, hc(k, cs, r, omega), 1e-13, "tap %d", k)
		}
	})

	t.Run("symmetric_even", func(t *testing.T) {
		for k := 1; k <= 20; k++ {
			assert.Equal(t, hs(k, cs, r, omega), hs(-k, cs, r, omega), "tap %d", k)
		}
	})

	t.Run("symmetric_unit_sum", func(t *testing.T) {
		sum := hs(0, cs, r, omega)
		for k := 1; k <= 200; k++ {
			sum += 2 * hs(k, cs, r, omega)
		}
		assert.InDelta(t, 1.0, sum, 1e-10)
	})
}

// TestOrder2_DegenerateAngleContinuity verifies the closed forms at
// pole angles 0 and π agree with the trigonometric forms evaluated just
// off the degeneracy.
func TestOrder2_DegenerateAngleContinuity(t *testing.T) {
	const (
		r   = 0.4
		eps = 1e-7
	)
	cs := 1 - 2*r + r*r

	for k := 0; k <= 10; k++ {
		assert.InDelta(t, hc(k, cs, r, 0), hc(k, cs, r, eps), 1e-8, "hc tap %d", k)
		assert.InDelta(t, hs(k, cs, r, 0), hs(k, cs, r, eps), 1e-6, "hs tap %d", k)
		assert.InDelta(t, hc(k, cs, r, math.Pi), hc(k, cs, r, math.Pi-eps), 1e-8, "hc alternating tap %d", k)
	}
}

// TestOrder2_Errors exercises the failure paths.
func TestOrder2_Errors(t *testing.T) {
	t.Run("short_line", func(t *testing.T) {
		sig := []float64{1}
		err := Order2(strided.FromSlice(sig), 0.5, 0.8, testPrecision, make([]float64, 1))
		assert.ErrorIs(t, err, ErrShortLine)
	})

	t.Run("pole_on_unit_circle", func(t *testing.T) {
		sig := []float64{1, 2, 3, 4}
		err := Order2(strided.FromSlice(sig), 1.0, 0.8, testPrecision, make([]float64, 4))
		assert.ErrorIs(t, err, ErrUnstablePole)
	})

	t.Run("pole_outside_unit_circle", func(t *testing.T) {
		sig := []float64{1, 2, 3, 4}
		err := Order2(strided.FromSlice(sig), 1.2, 0.8, testPrecision, make([]float64, 4))
		assert.ErrorIs(t, err, ErrUnstablePole)
	})

	t.Run("precision_unreachable", func(t *testing.T) {
		sig := []float64{1, 2, 3, 4}
		err := Order2(strided.FromSlice(sig), 0.5, 0.8, 1e-300, make([]float64, 4))
		assert.ErrorIs(t, err, ErrNotConverged)
	})
}
