package engine

import "math"

// ResampledLength returns the number of samples produced when a sequence
// of n samples on a raster of period from is resampled onto a raster of
// period to, both starting at t = 0 and ending no later than the last input.
func ResampledLength(n int, from, to float64) int {
	if n <= 0 || from <= 0 || to <= 0 {
		return 0
	}
	if n == 1 {
		return 1
	}
	return int(math.Floor(float64(n-1)*from/to+rasterEpsilon)) + 1
}

// HermiteResample resamples src from a raster of period from onto a raster
// of period to using 4-point cubic Hermite interpolation. Edge samples are
// replicated for the points outside the input. dst must have length
// ResampledLength(len(src), from, to); the filled slice is returned.
func HermiteResample(dst, src []float64, from, to float64) []float64 {
	n := len(src)
	out := dst[:ResampledLength(n, from, to)]
	if n == 0 {
		return out
	}

	step := to / from
	for m := range out {
		pos := float64(m) * step
		i := int(pos)
		if i >= n-1 {
			out[m] = src[n-1]
			continue
		}
		out[m] = interpolate(
			src[clampIndex(i-1, n)],
			src[i],
			src[i+1],
			src[clampIndex(i+2, n)],
			pos-float64(i),
		)
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// interpolate performs cubic Hermite interpolation between y1 and y2.
// Uses the formula: y = ((a*x + b)*x + c)*x + d
// where x is the fractional position between y1 and y2.
func interpolate(y0, y1, y2, y3, x float64) float64 {
	// Hermite basis functions
	// These coefficients provide smooth interpolation with continuous first derivative
	coefA := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
	coefB := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
	coefC := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2
	coefD := y1

	// Evaluate polynomial
	return ((coefA*x+coefB)*x+coefC)*x + coefD
}
