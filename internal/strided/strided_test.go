package strided

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLine_FromSlice verifies the compact wrapper reads in order.
func TestLine_FromSlice(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	line := FromSlice(data)

	assert.Equal(t, len(data), line.N)
	for i, want := range data {
		assert.Equal(t, want, line.At(i), "element %d", i)
	}
}

// TestLine_StridedAccess verifies At and Set through a gapped view.
func TestLine_StridedAccess(t *testing.T) {
	data := []float64{0, 10, 0, 20, 0, 30}
	line := Line[float64]{Data: data, Off: 1, Stride: 2, N: 3}

	assert.Equal(t, 10.0, line.At(0))
	assert.Equal(t, 20.0, line.At(1))
	assert.Equal(t, 30.0, line.At(2))

	line.Set(1, 25)
	assert.Equal(t, 25.0, data[3], "Set must write through the stride")
}

// TestLine_Reverse verifies the reversed view walks backward and
// writes land on the mirrored slot.
func TestLine_Reverse(t *testing.T) {
	data := []int{1, 2, 3, 4, 5}
	rev := FromSlice(data).Reverse()

	assert.Equal(t, 5, rev.N)
	assert.Equal(t, 5, rev.At(0))
	assert.Equal(t, 1, rev.At(4))

	rev.Set(0, 50)
	assert.Equal(t, 50, data[4])

	twice := rev.Reverse()
	for i, want := range data {
		assert.Equal(t, want, twice.At(i), "double reverse must restore order")
	}
}

// TestLine_Validate covers in-bounds and out-of-bounds views.
func TestLine_Validate(t *testing.T) {
	data := make([]float64, 6)

	tests := []struct {
		name    string
		line    Line[float64]
		wantErr bool
	}{
		{"compact", FromSlice(data), false},
		{"strided_in_bounds", Line[float64]{Data: data, Off: 1, Stride: 2, N: 3}, false},
		{"reversed", FromSlice(data).Reverse(), false},
		{"empty", Line[float64]{Data: data, Off: 0, Stride: 1, N: 0}, false},
		{"negative_length", Line[float64]{Data: data, Off: 0, Stride: 1, N: -1}, true},
		{"past_end", Line[float64]{Data: data, Off: 2, Stride: 2, N: 3}, true},
		{"before_start", Line[float64]{Data: data, Off: 2, Stride: -2, N: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrOutOfBounds)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestMat_NewMat verifies the allocating constructor yields a compact
// row-major view.
func TestMat_NewMat(t *testing.T) {
	m := NewMat[float32](3, 4)

	assert.Equal(t, 3, m.Rows)
	assert.Equal(t, 4, m.Cols)
	assert.True(t, m.Contiguous())
	assert.NoError(t, m.Validate())
	assert.Len(t, m.Data, 12)
}

// TestMat_RowColViews verifies row and column views address the right
// elements of a row-major matrix.
func TestMat_RowColViews(t *testing.T) {
	// 2x3 matrix: [1 2 3; 4 5 6]
	m := Mat[float64]{Data: []float64{1, 2, 3, 4, 5, 6}, Rows: 2, Cols: 3, RowStride: 3, ColStride: 1}

	row1 := m.Row(1)
	require.Equal(t, 3, row1.N)
	assert.Equal(t, 4.0, row1.At(0))
	assert.Equal(t, 6.0, row1.At(2))
	assert.Equal(t, 1, row1.Stride, "row of a row-major matrix is compact")

	col2 := m.Col(2)
	require.Equal(t, 2, col2.N)
	assert.Equal(t, 3.0, col2.At(0))
	assert.Equal(t, 6.0, col2.At(1))
	assert.Equal(t, 3, col2.Stride, "column stride must be the row stride")
}

// TestMat_TransposedView verifies that swapping strides transposes
// without copying.
func TestMat_TransposedView(t *testing.T) {
	// [1 2 3; 4 5 6] viewed as its 3x2 transpose
	data := []float64{1, 2, 3, 4, 5, 6}
	tr := Mat[float64]{Data: data, Rows: 3, Cols: 2, RowStride: 1, ColStride: 3}

	assert.NoError(t, tr.Validate())
	assert.False(t, tr.Contiguous())
	assert.Equal(t, 1.0, tr.At(0, 0))
	assert.Equal(t, 4.0, tr.At(0, 1))
	assert.Equal(t, 3.0, tr.At(2, 0))
	assert.Equal(t, 6.0, tr.At(2, 1))
}

// TestMat_Validate covers shape and bounds violations.
func TestMat_Validate(t *testing.T) {
	data := make([]float64, 6)

	tests := []struct {
		name    string
		m       Mat[float64]
		wantErr bool
	}{
		{"compact", Mat[float64]{Data: data, Rows: 2, Cols: 3, RowStride: 3, ColStride: 1}, false},
		{"transposed", Mat[float64]{Data: data, Rows: 3, Cols: 2, RowStride: 1, ColStride: 3}, false},
		{"zero_rows", Mat[float64]{Data: data, Rows: 0, Cols: 3, RowStride: 3, ColStride: 1}, false},
		{"negative_rows", Mat[float64]{Data: data, Rows: -1, Cols: 3, RowStride: 3, ColStride: 1}, true},
		{"offset_past_end", Mat[float64]{Data: data, Off: 2, Rows: 2, Cols: 3, RowStride: 3, ColStride: 1}, true},
		{"stride_past_end", Mat[float64]{Data: data, Rows: 2, Cols: 3, RowStride: 4, ColStride: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrOutOfBounds)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestIncrement walks a 2x3 index space in row-major order.
func TestIncrement(t *testing.T) {
	dims := []int{2, 3}
	idx := []int{0, 0}

	want := [][]int{{0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	for _, next := range want {
		require.True(t, Increment(idx, dims))
		assert.Equal(t, next, idx)
	}

	assert.False(t, Increment(idx, dims), "advancing past the last index must wrap")
	assert.Equal(t, []int{0, 0}, idx, "wrap must reset to the origin")
}

// TestCopy verifies strided-to-compact copies preserve the logical
// layout.
func TestCopy(t *testing.T) {
	// Transposed source view of [1 2 3; 4 5 6]
	src := Mat[float64]{Data: []float64{1, 2, 3, 4, 5, 6}, Rows: 3, Cols: 2, RowStride: 1, ColStride: 3}
	dst := NewMat[float64](3, 2)

	Copy(dst, src)

	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, dst.Data)
}

// TestCopy_DimensionMismatch verifies the copy refuses shape changes.
func TestCopy_DimensionMismatch(t *testing.T) {
	src := NewMat[float64](2, 3)
	dst := NewMat[float64](3, 2)

	assert.Panics(t, func() { Copy(dst, src) })
}
