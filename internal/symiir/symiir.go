// Package symiir applies symmetric forward/backward IIR filters along
// strided lines. These cascades are the recursive half of the B-spline
// machinery: a causal all-pole pass followed by its anti-causal twin,
// with boundary values seeded from the whole-sample mirror extension of
// the signal (x[-k] = x[k], x[n-1+k] = x[n-1-k], no edge duplicate).
//
// Both orders transform the line in place. Callers provide a scratch
// buffer for the intermediate causal pass so that repeated calls over
// the rows of a matrix reuse one allocation.
package symiir

import "errors"

// Errors reported by the filters. The caller decides which of these are
// argument errors and which are numerical failures.
var (
	// ErrShortLine means the line has fewer than MinLen samples, too few
	// to seed the boundary recursions.
	ErrShortLine = errors.New("line too short for symmetric filtering")

	// ErrUnstablePole means a filter pole lies on or outside the unit
	// circle, so the recursions diverge.
	ErrUnstablePole = errors.New("pole magnitude must be below one")

	// ErrNotConverged means a boundary series was still above the
	// requested precision when it ran out of samples.
	ErrNotConverged = errors.New("boundary series did not converge")
)

// MinLen is the fewest samples a line may hold: the boundary seeds of
// both filter orders reference two distinct samples at each edge.
const MinLen = 2
