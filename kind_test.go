package bspline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestKindOf verifies the type-to-kind mapping.
func TestKindOf(t *testing.T) {
	assert.Equal(t, Float32, KindOf[float32]())
	assert.Equal(t, Float64, KindOf[float64]())
	assert.Equal(t, Complex64, KindOf[complex64]())
	assert.Equal(t, Complex128, KindOf[complex128]())
}

// TestKinds verifies the enumeration covers all four kinds.
func TestKinds(t *testing.T) {
	assert.Equal(t, []Kind{Float32, Float64, Complex64, Complex128}, Kinds())
}

// TestKind_Properties verifies the per-kind metadata table.
func TestKind_Properties(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
		real bool
		bits int
	}{
		{Float32, "float32", true, 32},
		{Float64, "float64", true, 64},
		{Complex64, "complex64", false, 32},
		{Complex128, "complex128", false, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.real, tt.kind.Real())
			assert.Equal(t, tt.bits, tt.kind.ComponentBits())
		})
	}

	assert.Equal(t, "unknown", Kind(99).String())
}

// TestKind_Precisions verifies the default precisions track component
// width.
func TestKind_Precisions(t *testing.T) {
	for _, k := range Kinds() {
		if k.ComponentBits() == 32 {
			assert.Equal(t, DefaultSplinePrecision32, k.SplinePrecision(), k.String())
			assert.Equal(t, DefaultIIRPrecision32, k.IIRPrecision(), k.String())
		} else {
			assert.Equal(t, DefaultSplinePrecision64, k.SplinePrecision(), k.String())
			assert.Equal(t, DefaultIIRPrecision64, k.IIRPrecision(), k.String())
		}
	}
}
