package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is the one-sided amplitude spectrum of a gradient axis.
type Spectrum struct {
	Freqs     []float64 // Hz
	Amplitude []float64 // G/cm
}

// ComputeSpectrum returns the amplitude spectrum of g sampled every tg
// seconds. The waveform is zero-padded to a power of two of at least
// minFFTSize samples. Gradient spectra are checked against the acoustic
// resonances of the gradient coil.
func ComputeSpectrum(g []float64, tg float64) Spectrum {
	fftSize := minFFTSize
	for fftSize < len(g) {
		fftSize *= 2
	}

	padded := make([]float64, fftSize)
	copy(padded, g)

	fft := fourier.NewFFT(fftSize)
	coeffs := fft.Coefficients(nil, padded)

	bins := fftSize/fftHermitianDivisor + 1
	spec := Spectrum{
		Freqs:     make([]float64, bins),
		Amplitude: make([]float64, bins),
	}

	// Normalize by the number of real samples so a constant waveform
	// reads its own amplitude at DC.
	norm := 1.0
	if len(g) > 0 {
		norm = 1 / float64(len(g))
	}
	for k := range bins {
		spec.Freqs[k] = fft.Freq(k) / tg
		amp := cmplx.Abs(coeffs[k]) * norm
		if k != 0 && k != bins-1 {
			amp *= singleSidedScale
		}
		spec.Amplitude[k] = amp
	}
	return spec
}

// Peak returns the frequency and amplitude of the strongest non-DC bin.
func (s Spectrum) Peak() (freq, amplitude float64) {
	if len(s.Amplitude) < 2 {
		return 0, 0
	}
	k := floats.MaxIdx(s.Amplitude[1:]) + 1
	return s.Freqs[k], s.Amplitude[k]
}

// BandAmplitude returns the largest amplitude found in [lo, hi] Hz, used
// to check a forbidden acoustic band.
func (s Spectrum) BandAmplitude(lo, hi float64) float64 {
	peak := 0.0
	for k, f := range s.Freqs {
		if f >= lo && f <= hi && s.Amplitude[k] > peak {
			peak = s.Amplitude[k]
		}
	}
	return peak
}
