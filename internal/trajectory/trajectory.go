// Package trajectory turns a single-arm spiral gradient waveform into the
// full multi-interleave k-space trajectory with density-compensation
// weights.
package trajectory

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/tphakala/go-spiral/internal/mathutil"
	"github.com/tphakala/go-spiral/internal/simdops"
)

// Errors returned by Compute.
var (
	ErrLengthMismatch = errors.New("gradient x and y lengths differ")
	ErrInterleaves    = errors.New("interleave count must be at least 1")
	ErrRaster         = errors.New("gradient raster must be positive")
	ErrKrmax          = errors.New("krmax must be positive for a non-empty waveform")
)

// degenerateAngle replaces atan2 for a zero vector.
const degenerateAngle = mathutil.Pi / 2

// Trajectory holds every interleave back to back: samples
// [i*Samples, (i+1)*Samples) belong to interleave i.
type Trajectory struct {
	Interleaves int
	Samples     int // per interleave

	// X and Y are k-space positions normalized by krmax (unit disk).
	X, Y []float64

	// Weights are the density-compensation weights, >= 0.
	Weights []float64

	// DegenerateAngles counts samples of the base arm where the gradient
	// or the position was the zero vector and π/2 was used as its angle.
	DegenerateAngles int
}

// Interleave returns the slices of interleave i. They alias the
// trajectory buffers.
func (t *Trajectory) Interleave(i int) (x, y, w []float64) {
	lo, hi := i*t.Samples, (i+1)*t.Samples
	return t.X[lo:hi], t.Y[lo:hi], t.Weights[lo:hi]
}

// Len returns the total number of samples over all interleaves.
func (t *Trajectory) Len() int {
	return len(t.X)
}

// baseArm is the unrotated arm shared read-only by all interleaves.
type baseArm struct {
	kx, ky  []float64 // 1/cm, one-sample lag
	weights []float64
	zeros   int
}

// Compute builds the trajectory for nints interleaves from the gradient
// waveform (G/cm) sampled every tg seconds. When parallel is set the
// interleaves are rotated concurrently; the result is identical either way.
func Compute(gx, gy []float64, nints int, tg, krmax float64, parallel bool) (*Trajectory, error) {
	if len(gx) != len(gy) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(gx), len(gy))
	}
	if nints < 1 {
		return nil, ErrInterleaves
	}
	if tg <= 0 {
		return nil, ErrRaster
	}
	if krmax <= 0 && len(gx) > 0 {
		return nil, ErrKrmax
	}

	n := len(gx)
	arm := buildBaseArm(gx, gy, tg)

	traj := &Trajectory{
		Interleaves:      nints,
		Samples:          n,
		X:                make([]float64, n*nints),
		Y:                make([]float64, n*nints),
		Weights:          make([]float64, n*nints),
		DegenerateAngles: arm.zeros,
	}

	if !parallel || nints == 1 {
		for i := range nints {
			rotateInto(traj, arm, i, krmax)
		}
		return traj, nil
	}

	// Each goroutine writes a disjoint range and only reads the base arm.
	var wg sync.WaitGroup
	for i := range nints {
		wg.Add(1)
		go func(inter int) {
			defer wg.Done()
			rotateInto(traj, arm, inter, krmax)
		}(i)
	}
	wg.Wait()

	return traj, nil
}

// buildBaseArm integrates the gradient into positions and computes the
// weights. Position j uses gradient samples [0, j-1], so position 0 is the
// origin. The weight is |g|·|sin(∠g − ∠k)|, the gradient component
// perpendicular to the trajectory; it does not depend on the rotation.
func buildBaseArm(gx, gy []float64, tg float64) *baseArm {
	n := len(gx)
	arm := &baseArm{
		kx:      make([]float64, n),
		ky:      make([]float64, n),
		weights: make([]float64, n),
	}

	var xtr, ytr float64
	for j := range n {
		if j > 0 {
			xtr += mathutil.Gamma * gx[j-1] * tg
			ytr += mathutil.Gamma * gy[j-1] * tg
		}
		arm.kx[j] = xtr
		arm.ky[j] = ytr

		angG, zeroG := angle(gx[j], gy[j])
		angT, zeroT := angle(xtr, ytr)
		if zeroG || zeroT {
			arm.zeros++
		}

		absG := math.Sqrt(gx[j]*gx[j] + gy[j]*gy[j])
		arm.weights[j] = absG * math.Abs(math.Sin(angG-angT))
	}
	return arm
}

// angle returns atan2(y, x), or π/2 with zero set for the zero vector.
func angle(x, y float64) (a float64, zero bool) {
	if x == 0 && y == 0 {
		return degenerateAngle, true
	}
	return math.Atan2(y, x), false
}

// rotateInto writes interleave i, rotated by 2π·i/N clockwise in the
// (x, y) plane and normalized by krmax.
func rotateInto(traj *Trajectory, arm *baseArm, i int, krmax float64) {
	rotation := float64(i) * 2 * mathutil.Pi / float64(traj.Interleaves)
	c, s := math.Cos(rotation), math.Sin(rotation)

	x, y, w := traj.Interleave(i)
	for j := range arm.kx {
		xt := arm.kx[j]*c + arm.ky[j]*s
		yt := -(arm.kx[j] * s) + arm.ky[j]*c
		x[j] = xt / krmax
		y[j] = yt / krmax
	}
	copy(w, arm.weights)
}

// NormalizedWeights returns a copy of the weights scaled so the largest
// weight is 1. All-zero weights are returned unchanged.
func (t *Trajectory) NormalizedWeights() []float64 {
	out := make([]float64, len(t.Weights))
	peak := 0.0
	for _, w := range t.Weights {
		peak = math.Max(peak, w)
	}
	if peak == 0 {
		copy(out, t.Weights)
		return out
	}
	simdops.Float64Ops().Scale(out, t.Weights, 1/peak)
	return out
}

// Float32 returns float32 copies of the positions and weights, the
// storage precision used by reconstruction pipelines.
func (t *Trajectory) Float32() (x, y, w []float32) {
	x = make([]float32, len(t.X))
	y = make([]float32, len(t.Y))
	w = make([]float32, len(t.Weights))
	simdops.Convert(x, t.X)
	simdops.Convert(y, t.Y)
	simdops.Convert(w, t.Weights)
	return x, y, w
}
