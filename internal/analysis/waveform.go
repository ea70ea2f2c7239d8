// Package analysis derives hardware-facing figures from a designed
// gradient waveform: slew rate, peaks, readout timing and the gradient
// amplitude spectrum.
package analysis

import (
	"math"

	"github.com/tphakala/go-spiral/internal/simdops"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a gradient waveform.
type Summary struct {
	Samples int

	// ReadoutTime is the waveform duration in seconds.
	ReadoutTime float64

	PeakGradient float64 // G/cm
	MeanGradient float64 // G/cm
	RMSGradient  float64 // G/cm
	PeakSlew     float64 // G/cm/s
}

// ReadoutMilliseconds returns the readout time in ms.
func (s Summary) ReadoutMilliseconds() float64 {
	return s.ReadoutTime * secondsToMilliseconds
}

// Magnitude returns |g| per sample.
func Magnitude(gx, gy []float64) []float64 {
	mag := make([]float64, len(gx))
	for i := range gx {
		mag[i] = math.Hypot(gx[i], gy[i])
	}
	return mag
}

// SlewRate returns the slew magnitude per sample in G/cm/s, by backward
// difference. The waveform starts from zero gradient, so sample 0 is
// |g[0]|/tg.
func SlewRate(gx, gy []float64, tg float64) []float64 {
	slew := make([]float64, len(gx))
	var px, py float64
	for i := range gx {
		slew[i] = math.Hypot(gx[i]-px, gy[i]-py) / tg
		px, py = gx[i], gy[i]
	}
	return slew
}

// TimeAxis returns the sample times 0, tg, 2·tg, ... for n samples.
func TimeAxis(n int, tg float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{0}
	}
	return floats.Span(make([]float64, n), 0, float64(n-1)*tg)
}

// Summarize computes the waveform summary. An empty waveform gives a
// zero Summary.
func Summarize(gx, gy []float64, tg float64) Summary {
	n := len(gx)
	if n == 0 {
		return Summary{}
	}

	mag := Magnitude(gx, gy)
	ops := simdops.Float64Ops()
	energy := ops.DotProduct(gx, gx) + ops.DotProduct(gy, gy)

	return Summary{
		Samples:      n,
		ReadoutTime:  float64(n) * tg,
		PeakGradient: floats.Max(mag),
		MeanGradient: stat.Mean(mag, nil),
		RMSGradient:  math.Sqrt(energy / float64(n)),
		PeakSlew:     floats.Max(SlewRate(gx, gy, tg)),
	}
}
