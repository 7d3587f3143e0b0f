// Package filter provides the design side of B-spline filtering: the
// closed-form poles and gains of the spline inverse filters, the
// smoothing-spline root derivation, and the B-spline basis kernels used
// to reconstruct samples from coefficients.
package filter

import (
	"fmt"
	"math"
)

// Poles and gains of the symmetric all-pole inverse filters. Sampling the
// centered B-spline of order p at the integers gives a symmetric FIR
// whose inverse factors into a forward/backward pole pair at z1 and 1/z1;
// the gain makes the cascade's DC response exactly one.
const (
	// CubicPole is the in-unit-circle root of z² + 4z + 1, i.e. √3 - 2.
	CubicPole = -0.26794919243112270647

	// CubicGain normalizes the cubic cascade: c0 / (1-z1)² = 1 at DC.
	CubicGain = -6 * CubicPole

	// QuadraticPole is the in-unit-circle root of z² + 6z + 1, i.e. 2√2 - 3.
	QuadraticPole = -0.17157287525380990240

	// QuadraticGain normalizes the quadratic cascade.
	QuadraticGain = -8 * QuadraticPole
)

// SmoothingLambdaMin is the smallest smoothing parameter with a
// complex-conjugate pole pair: the discriminant 144λ - 1 of the pole
// angle goes negative below it. Cubic solves with lambda at or below
// this threshold use the pure interpolation path.
const SmoothingLambdaMin = 1.0 / 144.0

// smoothingObtuseLambda is the radius sign change of the smoothing
// quartic: below 1/24 the conjugate pole pair sits in the left half
// plane and the pole angle is obtuse.
const smoothingObtuseLambda = 1.0 / 24.0

// SmoothingRoot derives the pole radius and angle of the second-order
// smoothing-spline filter from the smoothing parameter lambda.
//
// The smoothed coefficients c solve (B³(z) + λ·S(z)²)·c = x with
// B³(z) = (z+4+z⁻¹)/6 the sampled cubic spline and S(z) = z-2+z⁻¹ the
// second difference. The symmetric quartic on the left factors into the
// conjugate pole pairs {r·e^±iω, e^±iω/r}:
//
//	r = (√(2+24λ+√d) - √(2+√d)) / √(24λ),  d = 3 + 144λ
//	tan²ω = (144λ-1) / ξ,                  ξ = 1 - 96λ + 24λ√d
//
// Larger lambda moves the pole pair closer to the unit circle, widening
// the smoothing kernel.
func SmoothingRoot(lambda float64) (r, omega float64, err error) {
	if lambda <= SmoothingLambdaMin {
		return 0, 0, fmt.Errorf("smoothing parameter %g must exceed %g", lambda, SmoothingLambdaMin)
	}

	d := math.Sqrt(3 + 144*lambda)
	xi := 1 - 96*lambda + 24*lambda*d

	r = (math.Sqrt(2+24*lambda+d) - math.Sqrt(2+d)) / math.Sqrt(24*lambda)

	cosPart := math.Sqrt(xi)
	if lambda < smoothingObtuseLambda {
		cosPart = -cosPart
	}
	omega = math.Atan2(math.Sqrt(144*lambda-1), cosPart)

	return r, omega, nil
}
