package main

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	bspline "github.com/tphakala/go-bspline"
	"github.com/tphakala/go-bspline/internal/filter"
)

const (
	// Measured response parameters
	responseLen   = 256             // FFT length for measured responses
	impulseCenter = responseLen / 2 // Impulse position, clear of both mirrors

	// Frequency table resolution: DC through Nyquist inclusive
	tableRows = 9
	tableStep = responseLen / 2 / (tableRows - 1)
)

// Smoothing parameters to tabulate. All must exceed the interpolation
// threshold 1/144.
var smoothingLambdas = []float64{0.01, 1.0 / 24.0, 0.1, 0.5, 1, 5, 10, 100}

// Smoothing parameters whose frequency response is measured end to end.
var measuredLambdas = []float64{0.1, 1, 10}

func main() {
	fmt.Println("=== Interpolation Filter Poles ===")

	poles := []struct {
		name string
		pole float64
		gain float64
	}{
		{"cubic", filter.CubicPole, filter.CubicGain},
		{"quadratic", filter.QuadraticPole, filter.QuadraticGain},
	}

	for _, p := range poles {
		dc := p.gain / ((1 - p.pole) * (1 - p.pole))
		fmt.Printf("  %-9s  pole %.17f  gain %.17f  cascade DC %.12f\n",
			p.name, p.pole, p.gain, dc)
	}

	fmt.Println("\n=== Boundary Series Horizons ===")
	fmt.Println("Terms until the mirror seed series falls below each default precision:")

	precisions := []struct {
		name  string
		value float64
	}{
		{"spline float32", bspline.DefaultSplinePrecision32},
		{"spline float64", bspline.DefaultSplinePrecision64},
		{"iir float32", bspline.DefaultIIRPrecision32},
		{"iir float64", bspline.DefaultIIRPrecision64},
	}
	for _, prec := range precisions {
		fmt.Printf("  %-15s (%.0e): cubic %3d terms, quadratic %3d terms\n",
			prec.name, prec.value,
			seriesHorizon(filter.CubicPole, prec.value),
			seriesHorizon(filter.QuadraticPole, prec.value))
	}

	fmt.Println("\n=== Smoothing Roots ===")
	fmt.Printf("  %-10s %-10s %-10s %-12s %-10s %s\n",
		"lambda", "radius", "angle", "gain", "gain norm", "terms")

	for _, lambda := range smoothingLambdas {
		r, omega, err := filter.SmoothingRoot(lambda)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		// The cascade gain equals r/sqrt(lambda), so the normalized
		// column should read exactly 1.
		cs := 1 - 2*r*math.Cos(omega) + r*r
		fmt.Printf("  %-10.4g %-10.6f %-10.6f %-12.8f %-10.8f %d\n",
			lambda, r, omega, cs, cs*math.Sqrt(lambda)/r,
			seriesHorizon(r, bspline.DefaultSplinePrecision64))
	}
	fmt.Printf("  (interpolation threshold: lambda <= %g)\n", bspline.SmoothingLambdaMin)

	fmt.Println("\n=== Reconstruction Kernel Response ===")
	fft := fourier.NewFFT(responseLen)

	cubicKernel := []float64{1.0 / 6.0, 4.0 / 6.0, 1.0 / 6.0}
	quadKernel := []float64{1.0 / 8.0, 6.0 / 8.0, 1.0 / 8.0}
	cubicResp := kernelResponse(fft, cubicKernel)
	quadResp := kernelResponse(fft, quadKernel)

	fmt.Printf("  %-12s %-12s %s\n", "freq", "cubic", "quadratic")
	for row := range tableRows {
		bin := row * tableStep
		fmt.Printf("  %-12.4f %-12.6f %-12.6f\n",
			float64(bin)/responseLen, cubicResp[bin], quadResp[bin])
	}
	fmt.Printf("  (kernel DC sums: cubic %.12f, quadratic %.12f)\n",
		floats.Sum(cubicKernel), floats.Sum(quadKernel))

	fmt.Println("\n=== Smoothing Frequency Response (measured) ===")

	measured := make([][]float64, len(measuredLambdas))
	for i, lambda := range measuredLambdas {
		resp, err := measureSmoothingResponse(fft, lambda)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		measured[i] = resp
	}

	fmt.Printf("  %-12s", "freq")
	for _, lambda := range measuredLambdas {
		fmt.Printf(" lambda=%-8.4g", lambda)
	}
	fmt.Println()
	for row := range tableRows {
		bin := row * tableStep
		fmt.Printf("  %-12.4f", float64(bin)/responseLen)
		for i := range measuredLambdas {
			fmt.Printf(" %-15.6f", measured[i][bin])
		}
		fmt.Println()
	}

	// Compare against the closed form B/(B + lambda*S^2) on the
	// infinite line; the residual is the mirror fold leaking through
	// the measurement window.
	for i, lambda := range measuredLambdas {
		diffs := make([]float64, len(measured[i]))
		for bin, got := range measured[i] {
			want := predictedSmoothingGain(float64(bin)/responseLen, lambda)
			diffs[bin] = math.Abs(got - want)
		}
		fmt.Printf("  lambda %-8.4g max |measured - predicted| = %.3e\n",
			lambda, floats.Max(diffs))
	}

	fmt.Println("\n=== Element Kinds ===")
	fmt.Printf("  %-12s %-6s %-6s %-16s %s\n", "kind", "real", "bits", "spline precision", "iir precision")
	for _, kind := range bspline.Kinds() {
		fmt.Printf("  %-12s %-6t %-6d %-16.0e %.0e\n",
			kind, kind.Real(), kind.ComponentBits(),
			kind.SplinePrecision(), kind.IIRPrecision())
	}

	fmt.Printf("\nSIMD: %s\n", bspline.SIMDInfo())
}

// seriesHorizon returns the number of terms before |pole|^k drops below
// precision, the minimum signal length that avoids a convergence error.
func seriesHorizon(pole, precision float64) int {
	return int(math.Ceil(math.Log(precision) / math.Log(math.Abs(pole))))
}

// kernelResponse returns the magnitude response of a short FIR kernel,
// zero padded to the FFT length.
func kernelResponse(fft *fourier.FFT, kernel []float64) []float64 {
	padded := make([]float64, responseLen)
	copy(padded, kernel)
	coeffs := fft.Coefficients(nil, padded)

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	return mags
}

// measureSmoothingResponse pushes a centered unit impulse through the
// full smoothing path and returns its magnitude spectrum.
func measureSmoothingResponse(fft *fourier.FFT, lambda float64) ([]float64, error) {
	impulse := make([]float64, responseLen)
	impulse[impulseCenter] = 1

	coeffs, err := bspline.CSpline1D(impulse, lambda)
	if err != nil {
		return nil, err
	}
	fit, err := bspline.SepFIR2D(
		bspline.MatrixFromSlice(coeffs, 1, len(coeffs)),
		[]float64{1.0 / 6.0, 4.0 / 6.0, 1.0 / 6.0},
		[]float64{1},
	)
	if err != nil {
		return nil, err
	}

	spectrum := fft.Coefficients(nil, fit.Data)
	mags := make([]float64, len(spectrum))
	for i, c := range spectrum {
		mags[i] = cmplx.Abs(c)
	}
	return mags, nil
}

// predictedSmoothingGain evaluates B/(B + lambda*S^2) at the normalized
// frequency f, with B the sampled cubic spline and S the second
// difference.
func predictedSmoothingGain(f, lambda float64) float64 {
	omega := 2 * math.Pi * f
	b := (4 + 2*math.Cos(omega)) / 6
	s := 2*math.Cos(omega) - 2
	return b / (b + lambda*s*s)
}
