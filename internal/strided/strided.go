// Package strided provides rank-1 and rank-2 strided views over
// caller-owned slices. Strides are expressed in elements, not bytes, and
// may be negative or non-unit, so a view can describe reversed or
// subsampled windows of a larger buffer without copying.
//
// Views never allocate or free the memory they address. Indexing through
// a view that was not validated against its backing slice panics on
// misuse, which is treated as a programming error rather than a
// recoverable condition.
package strided

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates a view whose dimensions and strides address
// elements outside its backing slice.
var ErrOutOfBounds = errors.New("view addresses elements outside the backing data")

// Line is a rank-1 strided view: element i lives at Data[Off+i*Stride].
type Line[E any] struct {
	Data   []E
	Off    int
	Stride int
	N      int
}

// FromSlice wraps a slice as a contiguous Line.
func FromSlice[E any](s []E) Line[E] {
	return Line[E]{Data: s, Off: 0, Stride: 1, N: len(s)}
}

// At returns element i.
func (l Line[E]) At(i int) E {
	return l.Data[l.Off+i*l.Stride]
}

// Set stores v at element i.
func (l Line[E]) Set(i int, v E) {
	l.Data[l.Off+i*l.Stride] = v
}

// Reverse returns a view of the same elements in opposite order.
func (l Line[E]) Reverse() Line[E] {
	return Line[E]{
		Data:   l.Data,
		Off:    l.Off + (l.N-1)*l.Stride,
		Stride: -l.Stride,
		N:      l.N,
	}
}

// Validate checks that every addressable element falls inside the
// backing slice.
func (l Line[E]) Validate() error {
	if l.N < 0 {
		return fmt.Errorf("%w: negative length %d", ErrOutOfBounds, l.N)
	}
	if l.N == 0 {
		return nil
	}
	lo, hi := l.Off, l.Off
	if end := l.Off + (l.N-1)*l.Stride; end < lo {
		lo = end
	} else {
		hi = end
	}
	if lo < 0 || hi >= len(l.Data) {
		return fmt.Errorf("%w: offsets [%d,%d] with len %d", ErrOutOfBounds, lo, hi, len(l.Data))
	}
	return nil
}

// Mat is a rank-2 strided view: element (i,j) lives at
// Data[Off+i*RowStride+j*ColStride].
type Mat[E any] struct {
	Data      []E
	Off       int
	Rows      int
	Cols      int
	RowStride int
	ColStride int
}

// NewMat allocates a fresh contiguous row-major matrix.
func NewMat[E any](rows, cols int) Mat[E] {
	return Mat[E]{
		Data:      make([]E, rows*cols),
		Rows:      rows,
		Cols:      cols,
		RowStride: cols,
		ColStride: 1,
	}
}

// At returns element (i,j).
func (m Mat[E]) At(i, j int) E {
	return m.Data[m.Off+i*m.RowStride+j*m.ColStride]
}

// Set stores v at element (i,j).
func (m Mat[E]) Set(i, j int, v E) {
	m.Data[m.Off+i*m.RowStride+j*m.ColStride] = v
}

// Row returns row i as a Line of length Cols.
func (m Mat[E]) Row(i int) Line[E] {
	return Line[E]{Data: m.Data, Off: m.Off + i*m.RowStride, Stride: m.ColStride, N: m.Cols}
}

// Col returns column j as a Line of length Rows.
func (m Mat[E]) Col(j int) Line[E] {
	return Line[E]{Data: m.Data, Off: m.Off + j*m.ColStride, Stride: m.RowStride, N: m.Rows}
}

// Contiguous reports whether the view is a dense row-major block
// starting at offset zero.
func (m Mat[E]) Contiguous() bool {
	return m.Off == 0 && m.ColStride == 1 && m.RowStride == m.Cols && len(m.Data) == m.Rows*m.Cols
}

// Validate checks that every addressable element falls inside the
// backing slice.
func (m Mat[E]) Validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrOutOfBounds, m.Rows, m.Cols)
	}
	if m.Rows == 0 || m.Cols == 0 {
		return nil
	}
	lo, hi := m.Off, m.Off
	for _, span := range []int{(m.Rows - 1) * m.RowStride, (m.Cols - 1) * m.ColStride} {
		if span < 0 {
			lo += span
		} else {
			hi += span
		}
	}
	if lo < 0 || hi >= len(m.Data) {
		return fmt.Errorf("%w: offsets [%d,%d] with len %d", ErrOutOfBounds, lo, hi, len(m.Data))
	}
	return nil
}

// Increment advances a row-major multi-index over the given dimensions.
// It returns false once the index wraps past the final element, leaving
// the index at all zeros. Dimension entries must be positive; idx and
// dims must have equal length.
func Increment(idx, dims []int) bool {
	for axis := len(dims) - 1; axis >= 0; axis-- {
		idx[axis]++
		if idx[axis] < dims[axis] {
			return true
		}
		idx[axis] = 0
	}
	return false
}

// Copy copies src into dst element by element. Both views must have the
// same dimensions; a mismatch panics, as does any out-of-range access.
func Copy[E any](dst, src Mat[E]) {
	if dst.Rows != src.Rows || dst.Cols != src.Cols {
		panic(fmt.Sprintf("strided: copy dimension mismatch %dx%d -> %dx%d",
			src.Rows, src.Cols, dst.Rows, dst.Cols))
	}
	if src.Rows == 0 || src.Cols == 0 {
		return
	}
	idx := []int{0, 0}
	dims := []int{src.Rows, src.Cols}
	for {
		dst.Set(idx[0], idx[1], src.At(idx[0], idx[1]))
		if !Increment(idx, dims) {
			return
		}
	}
}
