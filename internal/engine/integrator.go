package engine

import (
	"math"

	"github.com/tphakala/go-spiral/internal/mathutil"
)

// Diagnostics records what happened during an integration.
type Diagnostics struct {
	// FinalKr is the radius reached by the last step (1/cm).
	FinalKr float64

	// ReachedKrmax is false when the sample ceiling stopped the design
	// before the target extent.
	ReachedKrmax bool

	// ComplexRootSteps counts steps where the slew quadratic had a
	// negative discriminant.
	ComplexRootSteps int

	// AmplitudeLimitedSteps counts steps where kr' was clamped to the
	// amplitude ceiling.
	AmplitudeLimitedSteps int

	// NonFinite is set when the state stopped being finite, which only
	// happens when the FOV polynomial reaches zero inside the design range.
	NonFinite bool
}

// Waveform is a single-arm gradient waveform and the polar trajectory
// that produced it. All slices have the same length.
type Waveform struct {
	Gx, Gy []float64 // G/cm
	Kr     []float64 // 1/cm, after each step
	Theta  []float64 // rad, after each step

	Diagnostics Diagnostics
}

// Len returns the number of gradient samples.
func (w *Waveform) Len() int {
	return len(w.Gx)
}

// state is the spiral state advanced once per gradient sample.
type state struct {
	kr, krdot       float64
	theta, thetadot float64
}

// advance integrates one forward-Euler step and returns the derivatives used.
func (s *state) advance(p *Params) Step {
	step := StepDerivatives(p, s.kr, s.krdot)
	dt := p.Timing.Gradient

	s.thetadot += step.ThetaDotDot * dt
	s.theta += s.thetadot * dt

	s.krdot += step.KrDotDot * dt
	s.kr += s.krdot * dt

	return step
}

func (s *state) finite() bool {
	return !math.IsNaN(s.kr) && !math.IsInf(s.kr, 0) &&
		!math.IsNaN(s.theta) && !math.IsInf(s.theta, 0)
}

// CountSamples runs the integration without storing anything and returns
// the number of gradient samples it produces.
func CountSamples(p *Params, krmax float64, ngmax int) int {
	var s state
	count := 0
	for s.kr < krmax && count < ngmax {
		s.advance(p)
		count++
	}
	return count
}

// Integrate designs the gradient waveform. The first pass finds the
// length, the second pass repeats the identical integration into buffers
// of exactly that size. krmax <= 0 or ngmax <= 0 yields an empty waveform.
//
// p.FOV must be positive over [0, krmax]; otherwise the state becomes
// NaN, the loop stops and Diagnostics.NonFinite is set.
func Integrate(p *Params, krmax float64, ngmax int) *Waveform {
	n := CountSamples(p, krmax, ngmax)

	w := &Waveform{
		Gx:    make([]float64, n),
		Gy:    make([]float64, n),
		Kr:    make([]float64, n),
		Theta: make([]float64, n),
	}

	var s state
	var lastkx, lastky float64
	scale := 1 / mathutil.Gamma / p.Timing.Gradient

	i := 0
	for s.kr < krmax && i < ngmax {
		if i == n {
			panic("engine: fill pass ran longer than count pass")
		}

		step := s.advance(p)
		if step.ComplexRoot {
			w.Diagnostics.ComplexRootSteps++
		}
		if step.AmplitudeLimited {
			w.Diagnostics.AmplitudeLimitedSteps++
		}

		kx := s.kr * math.Cos(s.theta)
		ky := s.kr * math.Sin(s.theta)
		w.Gx[i] = scale * (kx - lastkx)
		w.Gy[i] = scale * (ky - lastky)
		w.Kr[i] = s.kr
		w.Theta[i] = s.theta
		lastkx, lastky = kx, ky

		i++
	}
	if i != n {
		panic("engine: fill pass ended before count pass")
	}

	w.Diagnostics.FinalKr = s.kr
	w.Diagnostics.ReachedKrmax = s.kr >= krmax
	w.Diagnostics.NonFinite = !s.finite()
	return w
}
