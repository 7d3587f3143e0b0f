package bspline

import (
	"github.com/tphakala/go-bspline/internal/elemops"
	"github.com/tphakala/go-bspline/internal/filter"
)

// Default convergence precision per element width. Operations receive
// these when the caller passes a precision outside (0, 1]; complex
// kinds follow the width of their components.
const (
	// DefaultSplinePrecision32 and DefaultSplinePrecision64 apply to
	// the spline coefficient solvers.
	DefaultSplinePrecision32 = elemops.SplinePrecision32
	DefaultSplinePrecision64 = elemops.SplinePrecision64

	// DefaultIIRPrecision32 and DefaultIIRPrecision64 apply to the
	// symmetric IIR filters.
	DefaultIIRPrecision32 = elemops.IIRPrecision32
	DefaultIIRPrecision64 = elemops.IIRPrecision64
)

// SmoothingLambdaMin is the largest cubic smoothing parameter that
// still selects plain interpolation: above it the smoothing filter has
// the complex pole pair its derivation requires, and [CSpline2D]
// switches to it.
const SmoothingLambdaMin = filter.SmoothingLambdaMin
