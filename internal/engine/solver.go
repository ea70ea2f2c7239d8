// Package engine implements the variable-density spiral gradient design:
// the per-step derivative solver and the forward-Euler integrator that
// drives it.
//
// The trajectory is k(t) = kr(t)·exp(i·θ(t)). The FOV constraint
// dkr/dθ = N/(2π·FOV(kr)) ties θ to kr, so
//
//	θ'  = 2π·FOV/N · kr'
//	θ'' = 2π/N · dFOV/dkr · kr'² + 2π·FOV/N · kr''
//
// and the gradient and slew magnitudes become functions of kr, kr', kr''
// only. At each step the spiral is either amplitude limited (gradmax or
// the FOV-derived ceiling) or slew limited, in which case |slew| = slewmax
// is a quadratic in kr''.
package engine

import (
	"math"

	"github.com/tphakala/go-spiral/internal/mathutil"
)

// Limits holds the gradient hardware limits.
type Limits struct {
	// SlewMax is the maximum slew rate in G/cm/s.
	SlewMax float64

	// GradMax is the maximum gradient amplitude in G/cm.
	GradMax float64
}

// Timing holds the sample periods in seconds.
type Timing struct {
	// Gradient is the gradient raster (integration step).
	Gradient float64

	// Data is the acquisition sample period. It only enters the
	// FOV-derived gradient ceiling.
	Data float64
}

// Params is the constant input of one design call.
type Params struct {
	Limits      Limits
	Timing      Timing
	Interleaves int

	// FOV holds the field-of-view polynomial coefficients in cm, cm², ...
	// FOV(kr) must stay positive over the design range.
	FOV []float64
}

// Step is the result of one derivative evaluation.
type Step struct {
	KrDotDot    float64
	ThetaDotDot float64

	// AmplitudeLimited is set when kr' exceeded the amplitude ceiling and
	// kr'' was chosen to pull it back within one gradient sample.
	AmplitudeLimited bool

	// ComplexRoot is set when the slew quadratic had a negative
	// discriminant and only the real part of the root was used.
	ComplexRoot bool
}

// StepDerivatives computes kr'' and θ'' for the current radius and radial
// velocity. It is a pure function of its inputs.
func StepDerivatives(p *Params, kr, krdot float64) Step {
	fov, dfov := mathutil.FOV(kr, p.FOV)

	// FOV-derived ceiling on gradient amplitude, local to this step.
	gradmax := p.Limits.GradMax
	gmaxfov := 1 / mathutil.Gamma / fov / p.Timing.Data
	if gradmax > gmaxfov {
		gradmax = gmaxfov
	}

	n := float64(p.Interleaves)

	// Maximum kr' allowed by the amplitude limit.
	gg := mathutil.Gamma * gradmax
	ang := quadraticTwo * mathutil.Pi * fov * kr / n
	maxkrdot := math.Sqrt(gg * gg / (1 + ang*ang))

	tpf := quadraticTwo * mathutil.Pi * fov / n
	tpfsq := tpf * tpf

	var step Step
	if krdot > maxkrdot {
		step.KrDotDot = (maxkrdot - krdot) / p.Timing.Gradient
		step.AmplitudeLimited = true
	} else {
		step.KrDotDot, step.ComplexRoot = slewLimitedKrDotDot(p.Limits.SlewMax, kr, krdot, fov, dfov, tpf, tpfsq)
	}

	step.ThetaDotDot = tpf*dfov/fov*krdot*krdot + tpf*step.KrDotDot
	return step
}

// slewLimitedKrDotDot solves |slew(kr, kr', kr'')| = slewmax for kr''.
// The roots are real in exact arithmetic; when rounding makes the
// discriminant negative the vertex is returned and complexRoot is true.
func slewLimitedKrDotDot(slewmax, kr, krdot, fov, dfov, tpf, tpfsq float64) (krdotdot float64, complexRoot bool) {
	krdot2 := krdot * krdot
	krdot4 := krdot2 * krdot2

	qdfA := 1 + tpfsq*kr*kr
	qdfB := quadraticTwo*tpfsq*kr*krdot2 +
		quadraticTwo*tpfsq/fov*dfov*kr*kr*krdot2

	c1 := tpfsq * kr * krdot2
	c3 := tpf * dfov / fov * kr * krdot2
	gs := mathutil.Gamma * slewmax
	qdfC := c1*c1 + quadraticFour*tpfsq*krdot4 +
		c3*c3 +
		quadraticFour*tpfsq*dfov/fov*kr*krdot4 -
		gs*gs

	vertex := -qdfB / (quadraticTwo * qdfA)
	disc := qdfB*qdfB/(quadraticFour*qdfA*qdfA) - qdfC/qdfA

	if disc < 0 {
		return vertex, true
	}
	return vertex + math.Sqrt(disc), false
}
