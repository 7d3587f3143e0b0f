package symiir

import (
	"fmt"

	"github.com/tphakala/go-bspline/internal/elemops"
	"github.com/tphakala/go-bspline/internal/strided"
)

// Order1 runs a first-order symmetric filter along line, replacing it
// with c0/((1-z1·z⁻¹)(1-z1·z)) applied to the mirror-extended signal.
// The causal pass lands in scratch, which must hold at least line.N
// elements, so the transform is safe when line aliases other data.
//
// The causal seed is the mirror series y⁺[0] = x[0] + Σ z1ᵏ·x[k],
// truncated once |z1ᵏ|² drops to precision²; a line too short to reach
// that point fails with ErrNotConverged. The anti-causal seed is exact:
// the mirror closes the backward recursion at the last sample, giving
// y[n-1] = c0·(y⁺[n-1] + z1·y⁺[n-2])/(1-z1²).
func Order1[E elemops.Element](line strided.Line[E], c0, z1 E, precision float64, scratch []E) error {
	n := line.N
	if n < MinLen {
		return fmt.Errorf("%w: have %d samples, need %d", ErrShortLine, n, MinLen)
	}

	ops := elemops.For[E]()
	if ops.AbsSq(z1) >= 1 {
		return fmt.Errorf("%w: |z1|² = %g", ErrUnstablePole, ops.AbsSq(z1))
	}

	precSq := precision * precision
	yp := scratch[:n]

	seed := line.At(0)
	converged := false
	pow := E(1)
	for k := 1; k < n; k++ {
		pow *= z1
		seed += pow * line.At(k)
		if ops.AbsSq(pow) <= precSq {
			converged = true
			break
		}
	}
	if !converged {
		return fmt.Errorf("%w: needs more than %d samples at precision %g", ErrNotConverged, n, precision)
	}

	yp[0] = seed
	for k := 1; k < n; k++ {
		yp[k] = line.At(k) + z1*yp[k-1]
	}

	line.Set(n-1, c0*(yp[n-1]+z1*yp[n-2])/(E(1)-z1*z1))
	for k := n - 2; k >= 0; k-- {
		line.Set(k, c0*yp[k]+z1*line.At(k+1))
	}
	return nil
}
