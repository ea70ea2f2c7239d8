package spiral

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-spiral/internal/analysis"
	"github.com/tphakala/go-spiral/internal/engine"
	"github.com/tphakala/go-spiral/internal/trajectory"
)

// Summary describes a gradient waveform. See Waveform.Summary.
type Summary = analysis.Summary

// Spectrum is the one-sided amplitude spectrum of one gradient axis.
type Spectrum = analysis.Spectrum

// Diagnostics records the numerical events of one design.
type Diagnostics = engine.Diagnostics

// Waveform is the single-arm gradient waveform.
type Waveform struct {
	*engine.Waveform

	// Raster is the gradient sample period in seconds.
	Raster float64
}

// Summary returns peak and mean gradient, peak slew and readout time.
func (w *Waveform) Summary() Summary {
	return analysis.Summarize(w.Gx, w.Gy, w.Raster)
}

// SlewRate returns the slew magnitude per sample in G/cm/s.
func (w *Waveform) SlewRate() []float64 {
	return analysis.SlewRate(w.Gx, w.Gy, w.Raster)
}

// TimeAxis returns the sample times in seconds.
func (w *Waveform) TimeAxis() []float64 {
	return analysis.TimeAxis(w.Len(), w.Raster)
}

// Spectrum returns the amplitude spectra of the x and y gradients.
func (w *Waveform) Spectrum() (x, y Spectrum) {
	return analysis.ComputeSpectrum(w.Gx, w.Raster), analysis.ComputeSpectrum(w.Gy, w.Raster)
}

// Trajectory is the multi-interleave k-space trajectory with density
// compensation weights, normalized to the unit disk.
type Trajectory struct {
	*trajectory.Trajectory

	// Raster is the sample period of the trajectory in seconds.
	Raster float64
}

// Result holds a complete design.
type Result struct {
	Waveform   *Waveform
	Trajectory *Trajectory

	// DataTrajectory is Trajectory on the data raster. It is the same
	// value as Trajectory when both rasters are equal.
	DataTrajectory *Trajectory
}

// DesignWaveform designs the single-arm gradient waveform.
//
// The integration runs twice: once to find the waveform length, once to
// fill exactly-sized buffers. The result is a pure function of config.
func DesignWaveform(config *Config) (*Waveform, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	params := &engine.Params{
		Limits: engine.Limits{
			SlewMax: config.SlewMax,
			GradMax: config.GradMax,
		},
		Timing: engine.Timing{
			Gradient: config.GradientRaster,
			Data:     config.dataRaster(),
		},
		Interleaves: config.Interleaves,
		FOV:         config.FOV,
	}

	w := &Waveform{
		Waveform: engine.Integrate(params, config.KrMax, config.MaxSamples),
		Raster:   config.GradientRaster,
	}

	if w.Diagnostics.NonFinite {
		return nil, fmt.Errorf("%w: state became non-finite at kr=%g", ErrDegenerateFOV, w.Diagnostics.FinalKr)
	}

	if config.Strict {
		if err := strictCheck(w.Diagnostics, config.KrMax); err != nil {
			return w, err
		}
	}

	return w, nil
}

// strictCheck turns silent numerical fallbacks into errors.
func strictCheck(d Diagnostics, krmax float64) error {
	var errs []error
	if !d.ReachedKrmax {
		errs = append(errs, fmt.Errorf("%w: stopped at kr=%g of %g", ErrNotConverged, d.FinalKr, krmax))
	}
	if d.ComplexRootSteps > 0 {
		errs = append(errs, fmt.Errorf("%w: %d steps", ErrComplexRoot, d.ComplexRootSteps))
	}
	return errors.Join(errs...)
}

// ComputeTrajectory rotates the waveform into config.Interleaves arms and
// computes the density compensation weights.
func ComputeTrajectory(w *Waveform, config *Config) (*Trajectory, error) {
	if w == nil || w.Waveform == nil {
		return nil, fmt.Errorf("%w: waveform is nil", ErrInvalidConfig)
	}
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	return TrajectoryFromGradients(w.Gx, w.Gy, config.Interleaves, config.GradientRaster, config.KrMax, config.EnableParallel)
}

// TrajectoryFromGradients computes the trajectory from raw gradient
// samples (G/cm) on a raster of tg seconds. The result has
// interleaves·len(gx) samples; positions are divided by krmax.
func TrajectoryFromGradients(gx, gy []float64, interleaves int, tg, krmax float64, parallel bool) (*Trajectory, error) {
	traj, err := trajectory.Compute(gx, gy, interleaves, tg, krmax, parallel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Trajectory{Trajectory: traj, Raster: tg}, nil
}

// ResampleToRaster returns the trajectory resampled onto a raster of period
// seconds with cubic Hermite interpolation, interleave by interleave.
func ResampleToRaster(t *Trajectory, period float64) (*Trajectory, error) {
	if t == nil || t.Trajectory == nil {
		return nil, fmt.Errorf("%w: trajectory is nil", ErrInvalidConfig)
	}
	if period <= 0 {
		return nil, fmt.Errorf("%w: sample period must be positive", ErrInvalidConfig)
	}
	if period == t.Raster {
		return t, nil
	}

	m := engine.ResampledLength(t.Samples, t.Raster, period)
	out := &trajectory.Trajectory{
		Interleaves:      t.Interleaves,
		Samples:          m,
		X:                make([]float64, m*t.Interleaves),
		Y:                make([]float64, m*t.Interleaves),
		Weights:          make([]float64, m*t.Interleaves),
		DegenerateAngles: t.DegenerateAngles,
	}

	for i := range t.Interleaves {
		x, y, w := t.Interleave(i)
		dx, dy, dw := out.Interleave(i)
		engine.HermiteResample(dx, x, t.Raster, period)
		engine.HermiteResample(dy, y, t.Raster, period)
		engine.HermiteResample(dw, w, t.Raster, period)
		// Interpolation overshoot must not produce negative weights.
		for j, v := range dw {
			if v < 0 {
				dw[j] = 0
			}
		}
	}

	return &Trajectory{Trajectory: out, Raster: period}, nil
}

// Design runs DesignWaveform and ComputeTrajectory, and resamples the
// trajectory onto the data raster when it differs from the gradient raster.
// In Strict mode a non-nil Result may accompany the error.
func Design(config *Config) (*Result, error) {
	w, err := DesignWaveform(config)
	if w == nil {
		return nil, err
	}
	strictErr := err

	traj, err := ComputeTrajectory(w, config)
	if err != nil {
		return nil, err
	}

	data, err := ResampleToRaster(traj, config.dataRaster())
	if err != nil {
		return nil, err
	}

	return &Result{
		Waveform:       w,
		Trajectory:     traj,
		DataTrajectory: data,
	}, strictErr
}
