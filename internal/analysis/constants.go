package analysis

// Spectrum constants
const (
	// fftHermitianDivisor is used to calculate unique frequency bins in real FFT.
	// Due to Hermitian symmetry, a real FFT of size N has N/2 + 1 unique complex coefficients.
	fftHermitianDivisor = 2

	// Minimum FFT size; shorter waveforms are zero-padded.
	minFFTSize = 64

	// singleSidedScale doubles non-DC, non-Nyquist bins of a one-sided spectrum.
	singleSidedScale = 2.0
)

// Unit conversion
const (
	secondsToMilliseconds = 1e3
)
