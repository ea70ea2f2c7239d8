// Package mathutil provides the field-of-view model and unit helpers for
// spiral trajectory design.
package mathutil

import (
	"errors"
	"math"
)

// ErrDensityFactor is returned by LinearFOV for a density factor outside (0, 1].
var ErrDensityFactor = errors.New("density factor must be in (0, 1]")

// FOV evaluates the field-of-view polynomial and its derivative at radius kr.
//
//	FOV(kr)   = Σ coeffs[i] * kr^i
//	dFOV/dkr  = Σ i * coeffs[i] * kr^(i-1)
//
// An empty coefficient slice yields (0, 0). Callers must not divide by the
// result without checking it; a zero FOV has no physical meaning.
func FOV(kr float64, coeffs []float64) (fov, dfov float64) {
	for i, c := range coeffs {
		fov += c * math.Pow(kr, float64(i))
		if i > 0 {
			dfov += float64(i) * c * math.Pow(kr, float64(i-1))
		}
	}
	return fov, dfov
}

// MinFOV returns the smallest FOV value found on an evenly spaced grid of
// points+1 radii covering [0, krmax], and the radius where it occurs.
// Used to reject polynomials that reach zero or go negative inside the
// design range.
func MinFOV(coeffs []float64, krmax float64, points int) (minFOV, atKr float64) {
	if points < 1 {
		points = 1
	}
	minFOV = math.Inf(1)
	for i := 0; i <= points; i++ {
		kr := krmax * float64(i) / float64(points)
		f, _ := FOV(kr, coeffs)
		if f < minFOV || math.IsNaN(f) {
			minFOV, atKr = f, kr
			if math.IsNaN(f) {
				return minFOV, atKr
			}
		}
	}
	return minFOV, atKr
}

// LinearFOV returns the two-term variable-density FOV polynomial that
// starts at fov0 in the k-space center and falls linearly to
// fov0*density at krmax. A density of 1 gives a uniform spiral.
func LinearFOV(fov0, density, krmax float64) ([]float64, error) {
	if density <= minDensityFactor || density > maxDensityFactor || math.IsNaN(density) {
		return nil, ErrDensityFactor
	}
	if density == maxDensityFactor {
		return []float64{fov0}, nil
	}
	return []float64{fov0, -fov0 * (1 - density) / krmax}, nil
}

// KrmaxFromResolution converts an in-plane resolution in cm to the
// k-space extent in 1/cm.
func KrmaxFromResolution(resolution float64) float64 {
	return 1 / (nyquistDivisor * resolution)
}

// GradMTmToGcm converts a gradient amplitude from mT/m to G/cm.
func GradMTmToGcm(g float64) float64 {
	return g * gaussPerCmPerMilliTeslaPerM
}

// SlewTmsToGcms converts a slew rate from T/m/s to G/cm/s.
func SlewTmsToGcms(s float64) float64 {
	return s * gaussPerCmPerTeslaPerM
}
