package spiral

import (
	"fmt"

	"github.com/tphakala/go-spiral/internal/mathutil"
)

// Common hardware classes for convenience constructors.
const (
	// GradMaxClinical is a typical clinical gradient amplitude (40 mT/m) in G/cm.
	GradMaxClinical = 4.0

	// SlewMaxClinical is a typical clinical slew rate (150 T/m/s) in G/cm/s.
	SlewMaxClinical = 15000.0

	// GradMaxHighPerformance is a high-performance gradient amplitude (80 mT/m) in G/cm.
	GradMaxHighPerformance = 8.0

	// SlewMaxHighPerformance is a high-performance slew rate (200 T/m/s) in G/cm/s.
	SlewMaxHighPerformance = 20000.0
)

// NewUniformConfig returns a uniform-density prescription for a field of
// view fov (cm), in-plane resolution (cm) and interleave count, with
// clinical gradient limits on a 4 µs raster.
func NewUniformConfig(fov, resolution float64, interleaves int) (*Config, error) {
	return NewVariableDensityConfig(fov, resolution, interleaves, defaultUniformDensity)
}

// NewVariableDensityConfig returns a prescription whose FOV falls linearly
// from fov at the k-space center to fov·density at krmax. density must be
// in (0, 1]; 1 is a uniform spiral.
func NewVariableDensityConfig(fov, resolution float64, interleaves int, density float64) (*Config, error) {
	if fov <= 0 || resolution <= 0 {
		return nil, fmt.Errorf("%w: fov and resolution must be positive", ErrInvalidConfig)
	}

	krmax := mathutil.KrmaxFromResolution(resolution)
	coeffs, err := mathutil.LinearFOV(fov, density, krmax)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	config := &Config{
		SlewMax:        defaultSlewMax,
		GradMax:        defaultGradMax,
		GradientRaster: defaultRaster,
		DataRaster:     defaultRaster,
		Interleaves:    interleaves,
		FOV:            coeffs,
		KrMax:          krmax,
		MaxSamples:     defaultMaxSamples,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// KrmaxFromResolution converts an in-plane resolution (cm) to krmax (1/cm).
func KrmaxFromResolution(resolution float64) float64 {
	return mathutil.KrmaxFromResolution(resolution)
}

// GradMTmToGcm converts a gradient amplitude from mT/m to G/cm.
func GradMTmToGcm(g float64) float64 {
	return mathutil.GradMTmToGcm(g)
}

// SlewTmsToGcms converts a slew rate from T/m/s to G/cm/s.
func SlewTmsToGcms(s float64) float64 {
	return mathutil.SlewTmsToGcms(s)
}

// FOVAt evaluates an FOV polynomial at radius kr (1/cm).
func FOVAt(coeffs []float64, kr float64) float64 {
	fov, _ := mathutil.FOV(kr, coeffs)
	return fov
}
