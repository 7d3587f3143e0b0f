package bspline

// Kind identifies one of the four supported element kinds. It exists
// for introspection: reporting tools and tests can enumerate kinds and
// query their per-kind defaults without instantiating generic code.
type Kind int

const (
	// Float32 is the 32-bit real kind.
	Float32 Kind = iota

	// Float64 is the 64-bit real kind.
	Float64

	// Complex64 is the complex kind with float32 components.
	Complex64

	// Complex128 is the complex kind with float64 components.
	Complex128
)

// Kinds lists every supported element kind.
func Kinds() []Kind {
	return []Kind{Float32, Float64, Complex64, Complex128}
}

// KindOf returns the Kind corresponding to element type E.
func KindOf[E Element]() Kind {
	var zero E
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	default:
		panic("bspline: unsupported element type")
	}
}

// String returns the Go type name of the kind.
func (k Kind) String() string {
	switch k {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	}
	return "unknown"
}

// Real reports whether the kind is one of the real element kinds.
// Spline coefficient solving and the second-order symmetric filter
// accept only real kinds.
func (k Kind) Real() bool {
	return k == Float32 || k == Float64
}

// ComponentBits returns the width in bits of one real component, which
// decides the kind's default precisions.
func (k Kind) ComponentBits() int {
	if k == Float32 || k == Complex64 {
		return 32
	}
	return 64
}

// SplinePrecision returns the default spline solver precision for the
// kind.
func (k Kind) SplinePrecision() float64 {
	if k.ComponentBits() == 32 {
		return DefaultSplinePrecision32
	}
	return DefaultSplinePrecision64
}

// IIRPrecision returns the default symmetric IIR precision for the
// kind.
func (k Kind) IIRPrecision() float64 {
	if k.ComponentBits() == 32 {
		return DefaultIIRPrecision32
	}
	return DefaultIIRPrecision64
}
