package main

// Default command-line flag values
const (
	defaultFOV         = 24.0  // cm
	defaultResolution  = 0.1   // cm (1 mm)
	defaultInterleaves = 16    // spiral arms
	defaultDensity     = 1.0   // uniform
	defaultRasterUs    = 4.0   // µs
	defaultMaxSamples  = 50000 // gradient samples per arm
)

// Unit conversion
const (
	secondsPerMicrosecond = 1e-6
)

// Demo prescriptions
const (
	demoFOV        = 24.0
	demoResolution = 0.1
)

// Demo interleave counts
var demoInterleaves = []int{1, 8, 16, 32}

// Demo density factors, FOV at krmax relative to the center
var demoDensities = []float64{1.0, 0.75, 0.5, 0.25}

// Scanner units for display
const (
	mTmPerGcm  = 10.0 // G/cm -> mT/m
	tmsPerGcms = 0.01 // G/cm/s -> T/m/s
)
