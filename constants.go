package spiral

// Scanner defaults used by the preset constructors.
const (
	defaultGradMax        = GradMaxClinical
	defaultSlewMax        = SlewMaxClinical
	defaultRaster         = 4e-6   // s, gradient and data raster
	defaultMaxSamples     = 100000 // gradient samples per arm
	defaultUniformDensity = 1.0    // no FOV reduction at the edge of k-space
)

// Validation limits
const (
	minInterleaves = 1
	maxInterleaves = 4096
	maxMaxSamples  = 1 << 24

	// fovCheckPoints is the number of intervals on which the FOV
	// polynomial is checked to stay positive over [0, krmax].
	fovCheckPoints = 1024
)

// Algorithm names reported by GetInfo.
const (
	algorithmName = "variable-density spiral, forward Euler"
)
