// Package elemops provides generic element operations for the four
// numeric kinds the kernels support: float32, float64, complex64 and
// complex128. A single generic codebase covers all four without
// duplication; the real kinds delegate to SIMD-accelerated routines.
//
// With Profile-Guided Optimization (Go 1.22+), function pointer calls in
// hot paths can be devirtualized and inlined, achieving near-zero
// overhead.
package elemops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for the real element kinds.
type Float interface {
	float32 | float64
}

// Complex is the type constraint for the complex element kinds.
type Complex interface {
	complex64 | complex128
}

// Element is the type constraint covering every supported kind.
type Element interface {
	float32 | float64 | complex64 | complex128
}

// Default convergence thresholds per element width. The 32-bit kinds get
// looser defaults than the 64-bit kinds; complex kinds follow the width
// of their components.
const (
	// SplinePrecision32 and SplinePrecision64 are the default precision
	// for spline coefficient solvers.
	SplinePrecision32 = 1e-3
	SplinePrecision64 = 1e-6

	// IIRPrecision32 and IIRPrecision64 are the default precision for
	// the symmetric IIR filters.
	IIRPrecision32 = 1e-6
	IIRPrecision64 = 1e-11
)

// Ops provides element operations and per-kind constants for type E.
// Function pointers allow type-safe generic code while delegating to
// optimized type-specific implementations.
type Ops[E Element] struct {
	// AbsSq returns the squared magnitude of v as float64. Convergence
	// tests compare squared magnitudes against squared thresholds to
	// avoid square roots in series loops.
	AbsSq func(v E) float64

	// DotUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotUnsafe func(a, b []E) E

	// ConvolveValid computes dst[i] = Σ signal[i+j]·kernel[j] for
	// len(dst) = len(signal)-len(kernel)+1 output positions.
	ConvolveValid func(dst, signal, kernel []E)

	// SplinePrecision is the default precision for spline solvers.
	SplinePrecision float64

	// IIRPrecision is the default precision for symmetric IIR filters.
	IIRPrecision float64
}

// Pre-instantiated operations for each element kind.
var (
	ops32 = Ops[float32]{
		AbsSq:           absSq32,
		DotUnsafe:       f32.DotProductUnsafe,
		ConvolveValid:   f32.ConvolveValid,
		SplinePrecision: SplinePrecision32,
		IIRPrecision:    IIRPrecision32,
	}
	ops64 = Ops[float64]{
		AbsSq:           absSq64,
		DotUnsafe:       f64.DotProductUnsafe,
		ConvolveValid:   f64.ConvolveValid,
		SplinePrecision: SplinePrecision64,
		IIRPrecision:    IIRPrecision64,
	}
	opsC64 = Ops[complex64]{
		AbsSq:           absSqC64,
		DotUnsafe:       dotC64,
		ConvolveValid:   convolveValid[complex64],
		SplinePrecision: SplinePrecision32,
		IIRPrecision:    IIRPrecision32,
	}
	opsC128 = Ops[complex128]{
		AbsSq:           absSqC128,
		DotUnsafe:       dotC128,
		ConvolveValid:   convolveValid[complex128],
		SplinePrecision: SplinePrecision64,
		IIRPrecision:    IIRPrecision64,
	}
)

// For returns the Ops instance for type E.
// The type switch happens at instantiation time, not in hot paths.
func For[E Element]() *Ops[E] {
	var zero E
	switch any(zero).(type) {
	case float32:
		ops, ok := any(&ops32).(*Ops[E])
		if !ok {
			panic("elemops: type assertion failed for float32")
		}
		return ops
	case float64:
		ops, ok := any(&ops64).(*Ops[E])
		if !ok {
			panic("elemops: type assertion failed for float64")
		}
		return ops
	case complex64:
		ops, ok := any(&opsC64).(*Ops[E])
		if !ok {
			panic("elemops: type assertion failed for complex64")
		}
		return ops
	case complex128:
		ops, ok := any(&opsC128).(*Ops[E])
		if !ok {
			panic("elemops: type assertion failed for complex128")
		}
		return ops
	default:
		panic("elemops: unsupported element type")
	}
}

func absSq32(v float32) float64 {
	f := float64(v)
	return f * f
}

func absSq64(v float64) float64 {
	return v * v
}

func absSqC64(v complex64) float64 {
	re := float64(real(v))
	im := float64(imag(v))
	return re*re + im*im
}

func absSqC128(v complex128) float64 {
	return real(v)*real(v) + imag(v)*imag(v)
}

// Complex dot products have no SIMD backing; plain loops keep them
// correct and portable.

func dotC64(a, b []complex64) complex64 {
	var acc complex64
	for i := range a {
		acc += a[i] * b[i]
	}
	return acc
}

func dotC128(a, b []complex128) complex128 {
	var acc complex128
	for i := range a {
		acc += a[i] * b[i]
	}
	return acc
}

func convolveValid[E Element](dst, signal, kernel []E) {
	for i := range dst {
		var acc E
		window := signal[i : i+len(kernel)]
		for j, k := range kernel {
			acc += window[j] * k
		}
		dst[i] = acc
	}
}
