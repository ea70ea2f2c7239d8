package spiral

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-spiral/internal/mathutil"
	"github.com/tphakala/go-spiral/internal/simdops"
)

// Gamma is the gyromagnetic ratio (Hz/G) used by every design formula.
const Gamma = mathutil.Gamma

// Config holds the spiral design prescription.
type Config struct {
	// SlewMax is the maximum gradient slew rate in G/cm/s.
	SlewMax float64

	// GradMax is the maximum gradient amplitude in G/cm.
	GradMax float64

	// GradientRaster is the gradient sample period in seconds. It is the
	// integration step; oversampling the gradient makes the design more
	// accurate.
	GradientRaster float64

	// DataRaster is the acquisition sample period in seconds. It caps the
	// gradient through the FOV (no aliasing within one sample) and sets
	// the raster of Result.DataTrajectory. Zero means GradientRaster.
	DataRaster float64

	// Interleaves is the number of spiral arms.
	Interleaves int

	// FOV holds the field-of-view polynomial coefficients:
	// FOV(kr) = FOV[0] + FOV[1]·kr + FOV[2]·kr² + ... in cm.
	// FOV(kr) must stay positive on [0, KrMax].
	FOV []float64

	// KrMax is the k-space radius at which the design stops, in 1/cm.
	// KrMax = 1/(2·resolution). KrMax <= 0 gives an empty waveform.
	KrMax float64

	// MaxSamples caps the gradient waveform length. A design that hits it
	// is truncated before KrMax. MaxSamples <= 0 gives an empty waveform.
	MaxSamples int

	// EnableParallel rotates interleaves concurrently.
	// The output is bit-identical to sequential processing.
	EnableParallel bool

	// Strict turns numerical fallbacks into errors: a truncated design
	// returns ErrNotConverged and a complex slew root returns
	// ErrComplexRoot. The result is still returned alongside the error.
	Strict bool
}

// Common errors returned by the designer.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid spiral configuration")

	// ErrDegenerateFOV indicates an FOV polynomial that is empty, zero or
	// negative somewhere on [0, KrMax]. The design divides by the FOV.
	ErrDegenerateFOV = errors.New("degenerate FOV polynomial")

	// ErrNotConverged indicates the design stopped at MaxSamples before
	// reaching KrMax (Strict mode only).
	ErrNotConverged = errors.New("design did not reach krmax")

	// ErrComplexRoot indicates the slew-rate quadratic had no real root at
	// some step and its real part was used (Strict mode only).
	ErrComplexRoot = errors.New("slew-rate solve fell back to real part")
)

// Validate checks if the configuration is valid.
//
// Limits of zero or below are accepted: the design then never reaches
// KrMax and is truncated at MaxSamples. KrMax <= 0 or MaxSamples <= 0
// describe an empty design, for which the FOV is not checked.
func (c *Config) Validate() error {
	if !isFinite(c.SlewMax) || !isFinite(c.GradMax) {
		return fmt.Errorf("%w: gradient limits must be finite", ErrInvalidConfig)
	}

	if c.GradientRaster <= 0 || !isFinite(c.GradientRaster) || c.DataRaster < 0 || !isFinite(c.DataRaster) {
		return fmt.Errorf("%w: sample periods must be positive", ErrInvalidConfig)
	}

	if c.Interleaves < minInterleaves || c.Interleaves > maxInterleaves {
		return fmt.Errorf("%w: interleaves must be %d-%d", ErrInvalidConfig, minInterleaves, maxInterleaves)
	}

	if !isFinite(c.KrMax) {
		return fmt.Errorf("%w: krmax must be finite", ErrInvalidConfig)
	}

	if c.MaxSamples > maxMaxSamples {
		return fmt.Errorf("%w: max samples must be at most %d", ErrInvalidConfig, maxMaxSamples)
	}

	if c.empty() {
		return nil
	}

	if len(c.FOV) == 0 {
		return fmt.Errorf("%w: no coefficients", ErrDegenerateFOV)
	}

	minFOV, at := mathutil.MinFOV(c.FOV, c.KrMax, fovCheckPoints)
	if minFOV <= 0 || math.IsNaN(minFOV) {
		return fmt.Errorf("%w: FOV(%.4g) = %g", ErrDegenerateFOV, at, minFOV)
	}

	return nil
}

// empty reports whether the prescription produces no gradient samples.
func (c *Config) empty() bool {
	return c.KrMax <= 0 || c.MaxSamples <= 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// dataRaster returns the effective acquisition sample period.
func (c *Config) dataRaster() float64 {
	if c.DataRaster == 0 {
		return c.GradientRaster
	}
	return c.DataRaster
}

// Info describes the design implementation.
type Info struct {
	// Algorithm describes the integration scheme.
	Algorithm string

	// SIMDType describes the SIMD instruction set used for buffer operations.
	SIMDType string

	// CPUFeatures lists the vector extensions reported by the host.
	CPUFeatures string
}

// GetInfo returns information about the design implementation.
func GetInfo() Info {
	return Info{
		Algorithm:   algorithmName,
		SIMDType:    simdops.Info(),
		CPUFeatures: simdops.Features(),
	}
}
