package bspline

import (
	"fmt"

	"github.com/tphakala/go-bspline/internal/strided"
)

// Matrix is a strided two-dimensional view over a flat element slice.
// Element (i, j) lives at Data[Off + i·RowStride + j·ColStride], so a
// view can walk a sub-rectangle, a transpose, or an interleaved plane
// of a larger buffer without copying it. The filtering operations
// accept any valid view and always produce compact row-major results.
type Matrix[E Element] struct {
	// Data holds the viewed elements.
	Data []E

	// Off is the index of element (0, 0) in Data.
	Off int

	// Rows and Cols are the logical dimensions.
	Rows int
	Cols int

	// RowStride is the Data index step between vertically adjacent
	// elements, ColStride between horizontally adjacent ones. Strides
	// may be negative.
	RowStride int
	ColStride int
}

// NewMatrix allocates a zeroed compact row-major matrix.
func NewMatrix[E Element](rows, cols int) Matrix[E] {
	return Matrix[E]{
		Data:      make([]E, rows*cols),
		Rows:      rows,
		Cols:      cols,
		RowStride: cols,
		ColStride: 1,
	}
}

// MatrixFromSlice wraps an existing row-major slice without copying.
// The slice must hold at least rows*cols elements.
func MatrixFromSlice[E Element](data []E, rows, cols int) Matrix[E] {
	return Matrix[E]{
		Data:      data,
		Rows:      rows,
		Cols:      cols,
		RowStride: cols,
		ColStride: 1,
	}
}

// At returns the element at row i, column j.
func (m Matrix[E]) At(i, j int) E {
	return m.Data[m.Off+i*m.RowStride+j*m.ColStride]
}

// Set stores v at row i, column j.
func (m Matrix[E]) Set(i, j int, v E) {
	m.Data[m.Off+i*m.RowStride+j*m.ColStride] = v
}

// Transpose returns a view with rows and columns swapped, sharing the
// underlying data.
func (m Matrix[E]) Transpose() Matrix[E] {
	return Matrix[E]{
		Data:      m.Data,
		Off:       m.Off,
		Rows:      m.Cols,
		Cols:      m.Rows,
		RowStride: m.ColStride,
		ColStride: m.RowStride,
	}
}

// Contiguous reports whether the view is compact row-major with no gap
// between rows.
func (m Matrix[E]) Contiguous() bool {
	return m.view().Contiguous()
}

// Compact returns a freshly allocated row-major copy of the view.
func (m Matrix[E]) Compact() Matrix[E] {
	out := NewMatrix[E](m.Rows, m.Cols)
	strided.Copy(out.view(), m.view())
	return out
}

// Validate checks that the shape is non-negative and that every index
// the view can produce stays inside Data.
func (m Matrix[E]) Validate() error {
	if err := m.view().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return nil
}

// view converts to the internal strided representation.
func (m Matrix[E]) view() strided.Mat[E] {
	return strided.Mat[E]{
		Data:      m.Data,
		Off:       m.Off,
		Rows:      m.Rows,
		Cols:      m.Cols,
		RowStride: m.RowStride,
		ColStride: m.ColStride,
	}
}
