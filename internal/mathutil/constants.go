package mathutil

// Physical constants baked into the spiral design formulas.
// Waveforms computed elsewhere with these exact values are used as
// reference tables, so they must not be replaced by more precise ones.
const (
	// Gamma is the proton gyromagnetic ratio in Hz/G.
	Gamma = 4258.0

	// Pi is π truncated to six decimals.
	Pi = 3.141592
)

// Unit conversion factors
const (
	gaussPerCmPerMilliTeslaPerM = 0.1   // 1 mT/m = 0.1 G/cm
	gaussPerCmPerTeslaPerM      = 100.0 // 1 T/m/s = 100 G/cm/s
	nyquistDivisor              = 2.0   // krmax = 1 / (2 * resolution)
)

// Variable-density bounds
const (
	minDensityFactor = 0.0 // exclusive
	maxDensityFactor = 1.0 // inclusive, 1 = uniform density
)
