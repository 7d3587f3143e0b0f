// Package testutil provides reusable test helper functions for the
// spline filtering tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-bspline/internal/elemops"
)

// Default tolerances for various test scenarios.
const (
	// DefaultTolerance suits float64 comparisons against exact values.
	DefaultTolerance = 1e-10

	// Solve32Tolerance and Solve64Tolerance bound the boundary-series
	// truncation error of coefficient solves run at the per-kind
	// default precision.
	Solve32Tolerance = 5e-3
	Solve64Tolerance = 1e-5
)

// halfDivisor is used for finding center indices in symmetric arrays.
const halfDivisor = 2

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertSlicesClose verifies elementwise closeness of two slices of any
// supported element kind, comparing magnitudes of the differences.
func AssertSlicesClose[E elemops.Element](t *testing.T, want, got []E, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Equal(t, len(want), len(got), "length mismatch: want %d, got %d", len(want), len(got)) {
		return false
	}
	ops := elemops.For[E]()
	for i := range want {
		diff := math.Sqrt(ops.AbsSq(want[i] - got[i]))
		if diff > tolerance {
			return assert.Fail(t, "slices differ",
				"index %d: |%v - %v| = %e exceeds %e", i, want[i], got[i], diff, tolerance)
		}
	}
	return true
}

// AssertUniform verifies that every element equals want within
// tolerance.
func AssertUniform[E elemops.Element](t *testing.T, s []E, want E, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	ops := elemops.For[E]()
	for i, v := range s {
		diff := math.Sqrt(ops.AbsSq(v - want))
		if diff > tolerance {
			return assert.Fail(t, "slice not uniform",
				"s[%d]=%v differs from %v by %e (tolerance %e)", i, v, want, diff, tolerance)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertDCGain verifies that the sum of coefficients equals the expected DC gain.
func AssertDCGain(t *testing.T, coeffs []float64, expectedGain, tolerance float64) bool {
	t.Helper()
	var sum float64
	for _, c := range coeffs {
		sum += c
	}
	return assert.InDelta(t, expectedGain, sum, tolerance,
		"DC gain = %f, want %f", sum, expectedGain)
}

// AssertCenterIsMax verifies that the center element is the maximum value.
func AssertCenterIsMax(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	centerIdx := len(s) / halfDivisor
	centerValue := s[centerIdx]
	for i, v := range s {
		if v > centerValue {
			return assert.Fail(t, "center is not max",
				"s[%d]=%f > center s[%d]=%f", i, v, centerIdx, centerValue)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertOddLength verifies that a slice has an odd length.
func AssertOddLength[E elemops.Element](t *testing.T, s []E, msgAndArgs ...any) bool {
	t.Helper()
	return assert.Equal(t, 1, len(s)%halfDivisor, "slice length %d is not odd", len(s))
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}
