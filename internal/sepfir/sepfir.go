// Package sepfir convolves matrices with separable FIR kernels under
// the whole-sample mirror boundary (x[-k] = x[k], x[n-1+k] = x[n-1-k]).
// Kernels are odd-length and centered, so output i is the kernel dotted
// against the mirror-extended window around sample i.
package sepfir

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-bspline/internal/elemops"
	"github.com/tphakala/go-bspline/internal/mathutil"
	"github.com/tphakala/go-bspline/internal/strided"
)

// ErrEvenKernel means a kernel has even length and therefore no center
// tap to align with the output sample.
var ErrEvenKernel = errors.New("kernel length must be odd")

// Convolve2D convolves src with hrow along each row and hcol down each
// column, writing into dst. The row pass lands in scratch, which must
// hold rows*cols elements; dst may not alias src.
func Convolve2D[E elemops.Element](dst, src strided.Mat[E], hrow, hcol []E, scratch []E) error {
	if len(hrow)%2 == 0 {
		return fmt.Errorf("%w: row kernel has %d taps", ErrEvenKernel, len(hrow))
	}
	if len(hcol)%2 == 0 {
		return fmt.Errorf("%w: column kernel has %d taps", ErrEvenKernel, len(hcol))
	}
	if dst.Rows != src.Rows || dst.Cols != src.Cols {
		return fmt.Errorf("shape mismatch: dst %dx%d, src %dx%d", dst.Rows, dst.Cols, src.Rows, src.Cols)
	}

	rows, cols := src.Rows, src.Cols
	ops := elemops.For[E]()
	tmp := strided.Mat[E]{
		Data:      scratch[:rows*cols],
		Rows:      rows,
		Cols:      cols,
		RowStride: cols,
		ColStride: 1,
	}

	hrowRev := reversed(hrow)
	for r := 0; r < rows; r++ {
		convolveLine(tmp.Row(r), src.Row(r), hrow, hrowRev, ops)
	}

	hcolRev := reversed(hcol)
	for c := 0; c < cols; c++ {
		convolveLine(dst.Col(c), tmp.Col(c), hcol, hcolRev, ops)
	}
	return nil
}

// convolveLine writes the mirror convolution of src with h into dst.
// hrev is h reversed, the correlation form used on the interior where
// no tap leaves the line. dst and src must not alias.
func convolveLine[E elemops.Element](dst, src strided.Line[E], h, hrev []E, ops *elemops.Ops[E]) {
	n := src.N
	half := len(h) / 2

	if n <= 2*half {
		for i := 0; i < n; i++ {
			dst.Set(i, folded(src, h, half, i))
		}
		return
	}

	for i := 0; i < half; i++ {
		dst.Set(i, folded(src, h, half, i))
	}

	switch {
	case src.Stride == 1 && dst.Stride == 1:
		signal := src.Data[src.Off : src.Off+n]
		out := dst.Data[dst.Off+half : dst.Off+n-half]
		ops.ConvolveValid(out, signal, hrev)
	case src.Stride == 1:
		signal := src.Data[src.Off : src.Off+n]
		for i := half; i < n-half; i++ {
			dst.Set(i, ops.DotUnsafe(hrev, signal[i-half:i+half+1]))
		}
	default:
		for i := half; i < n-half; i++ {
			var acc E
			for j, hj := range hrev {
				acc += hj * src.At(i - half + j)
			}
			dst.Set(i, acc)
		}
	}

	for i := n - half; i < n; i++ {
		dst.Set(i, folded(src, h, half, i))
	}
}

// folded evaluates output i with every tap routed through the mirror
// fold, covering the edges and lines narrower than the kernel.
func folded[E elemops.Element](src strided.Line[E], h []E, half, i int) E {
	var acc E
	for m, hm := range h {
		acc += hm * src.At(mathutil.MirrorIndex(i+half-m, src.N))
	}
	return acc
}

func reversed[E elemops.Element](h []E) []E {
	r := make([]E, len(h))
	for i, v := range h {
		r[len(h)-1-i] = v
	}
	return r
}
