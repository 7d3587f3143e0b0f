package symiir

import (
	"fmt"
	"math"

	"github.com/tphakala/go-bspline/internal/elemops"
	"github.com/tphakala/go-bspline/internal/strided"
)

// Order2 runs a second-order symmetric filter along line, replacing it
// with cs²/(A(z⁻¹)·A(z)) applied to the mirror-extended signal, where
// A(z⁻¹) = 1 - 2r·cosω·z⁻¹ + r²·z⁻² has the conjugate pole pair
// r·e^±iω and cs = 1 - 2r·cosω + r² holds the DC gain at one.
//
// Boundary values come from the filter's impulse responses summed over
// the mirror extension: the causal seeds from hc, the half-filter
// response, and the anti-causal seeds from hs, the response of the full
// symmetric cascade. Each series truncates once its coefficient
// magnitude drops to precision and fails with ErrNotConverged if the
// line runs out first. scratch must hold at least line.N elements.
func Order2[F elemops.Float](line strided.Line[F], r, omega F, precision float64, scratch []F) error {
	n := line.N
	if n < MinLen {
		return fmt.Errorf("%w: have %d samples, need %d", ErrShortLine, n, MinLen)
	}

	rf := float64(r)
	wf := float64(omega)
	if rf*rf >= 1 {
		return fmt.Errorf("%w: |r|² = %g", ErrUnstablePole, rf*rf)
	}

	cs := 1 - 2*rf*math.Cos(wf) + rf*rf
	precSq := precision * precision
	yp := scratch[:n]

	// Causal seeds over the left mirror: y⁺[0] = Σ hc(k)·x̃[-k] and
	// y⁺[1] = Σ hc(k)·x̃[1-k] with x̃[-k] = x[k].
	seed0 := hc(0, cs, rf, wf) * float64(line.At(0))
	converged := false
	for k := 1; k < n; k++ {
		coef := hc(k, cs, rf, wf)
		seed0 += coef * float64(line.At(k))
		if coef*coef <= precSq {
			converged = true
			break
		}
	}
	if !converged {
		return notConverged(n, precision)
	}

	seed1 := hc(0, cs, rf, wf)*float64(line.At(1)) + hc(1, cs, rf, wf)*float64(line.At(0))
	converged = false
	for k := 1; k < n; k++ {
		coef := hc(k+1, cs, rf, wf)
		seed1 += coef * float64(line.At(k))
		if coef*coef <= precSq {
			converged = true
			break
		}
	}
	if !converged {
		return notConverged(n, precision)
	}

	a2 := F(2 * rf * math.Cos(wf))
	a3 := F(-(rf * rf))
	csF := F(cs)

	yp[0] = F(seed0)
	yp[1] = F(seed1)
	for k := 2; k < n; k++ {
		yp[k] = csF*line.At(k) + a2*yp[k-1] + a3*yp[k-2]
	}

	// Anti-causal seeds over the right mirror, summed against the raw
	// signal before either is stored so the line may alias it. The last
	// sample sits on the mirror axis, so its own coefficient stays
	// single while every interior sample picks up its reflection.
	last := hs(0, cs, rf, wf) * float64(line.At(n-1))
	converged = false
	for k := 1; k < n; k++ {
		coef := 2 * hs(k, cs, rf, wf)
		last += coef * float64(line.At(n-1-k))
		if coef*coef <= precSq {
			converged = true
			break
		}
	}
	if !converged {
		return notConverged(n, precision)
	}

	prev := hs(1, cs, rf, wf) * float64(line.At(n-1))
	converged = false
	for k := 0; k < n-1; k++ {
		coef := hs(k, cs, rf, wf) + hs(k+2, cs, rf, wf)
		prev += coef * float64(line.At(n-2-k))
		if coef*coef <= precSq {
			converged = true
			break
		}
	}
	if !converged {
		return notConverged(n, precision)
	}

	line.Set(n-1, F(last))
	line.Set(n-2, F(prev))
	for k := n - 3; k >= 0; k-- {
		line.Set(k, csF*yp[k]+a2*line.At(k+1)+a3*line.At(k+2))
	}
	return nil
}

func notConverged(n int, precision float64) error {
	return fmt.Errorf("%w: needs more than %d samples at precision %g", ErrNotConverged, n, precision)
}

// hc is the impulse response of the causal half cs/A(z⁻¹), zero for
// negative taps. The trigonometric form degenerates when the poles are
// real (ω of 0 or π), where the confluent limit applies.
func hc(k int, cs, r, omega float64) float64 {
	if k < 0 {
		return 0
	}
	rk := math.Pow(r, float64(k))
	switch omega {
	case 0:
		return cs * rk * float64(k+1)
	case math.Pi:
		return cs * rk * float64(k+1) * parity(k)
	}
	return cs * rk * math.Sin(omega*float64(k+1)) / math.Sin(omega)
}

// hs is the impulse response of the full symmetric cascade
// cs²/(A(z⁻¹)·A(z)), even in k.
func hs(k int, cs, r, omega float64) float64 {
	if k < 0 {
		k = -k
	}
	csSq := cs * cs
	rSq := r * r
	rk := math.Pow(r, float64(k))
	if omega == 0 || omega == math.Pi {
		base := 1 - rSq
		c0 := csSq * (1 + rSq) / (base * base * base)
		gamma := (1 - rSq) / (1 + rSq)
		v := c0 * rk * (1 + gamma*float64(k))
		if omega == math.Pi {
			v *= parity(k)
		}
		return v
	}
	c0 := csSq * (1 + rSq) / (1 - rSq) / (1 - 2*rSq*math.Cos(2*omega) + rSq*rSq)
	gamma := (1 - rSq) / (1 + rSq) / math.Tan(omega)
	return c0 * rk * (math.Cos(omega*float64(k)) + gamma*math.Sin(omega*float64(k)))
}

// parity is (-1)ᵏ.
func parity(k int) float64 {
	if k%2 != 0 {
		return -1
	}
	return 1
}
