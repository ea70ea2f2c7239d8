// Package spiral designs variable-density spiral k-space trajectories for
// MRI in pure Go.
//
// Given gradient hardware limits, a field of view that may vary with the
// k-space radius, an interleave count and a target k-space extent, the
// package computes the single-arm gradient waveform and the rotated
// multi-interleave trajectory with density compensation weights.
//
// # Quick Start
//
// For a uniform 24 cm, 1 mm spiral with 16 interleaves:
//
//	config, err := spiral.NewUniformConfig(24, 0.1, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := spiral.Design(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Waveform.Len(), "gradient samples per arm")
//
// # Design Method
//
// The trajectory k(t) = kr(t)·exp(iθ(t)) is chosen so that the radial
// spacing between interleaves never exceeds 1/FOV(kr):
//
//	dkr/dθ = N / (2π·FOV(kr))
//
// with FOV(kr) = FOV[0] + FOV[1]·kr + FOV[2]·kr² + ... At every gradient
// sample the design is either amplitude limited (GradMax, or the FOV
// ceiling 1/(γ·FOV·DataRaster)) or slew limited, in which case the slew
// constraint is a quadratic in kr''. The state is advanced with forward
// Euler steps until kr reaches KrMax or MaxSamples is hit.
//
// The waveform length is not known in closed form. [DesignWaveform]
// integrates once to count samples and once more, identically, to fill
// buffers of exactly that size.
//
// # Units
//
// Gradients are in G/cm, slew rates in G/cm/s, times in seconds and
// k-space in 1/cm. Use [GradMTmToGcm] and [SlewTmsToGcms] to convert
// scanner units. γ is 4258 Hz/G.
//
// # Numerical Fallbacks
//
// Two conditions are recovered locally: a slew quadratic whose
// discriminant rounds negative uses the real part of its root, and a zero
// gradient or position vector is given an angle of π/2 when computing
// weights. Both are counted in [Diagnostics] and
// [Trajectory.DegenerateAngles]. With [Config.Strict] the former, and
// designs truncated by MaxSamples, are reported as errors.
//
// An FOV polynomial that reaches zero on [0, KrMax] is rejected with
// [ErrDegenerateFOV].
//
// # Thread Safety
//
// All functions are safe for concurrent use; a design call owns all of its
// state. With [Config.EnableParallel] the interleave rotation runs on one
// goroutine per interleave and is bit-identical to the sequential path.
package spiral
