package engine

// Cubic (Hermite) interpolation constants
const (
	// Slack when flooring raster ratios, absorbs rounding in from/to.
	rasterEpsilon = 1e-9

	// Hermite interpolation coefficients for smooth C1 continuity
	// Formula: y = ((a*x + b)*x + c)*x + d
	// coefA := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5
)

// Step solver constants
const (
	quadraticTwo  = 2.0 // 2A and 2B terms of the quadratic formula
	quadraticFour = 4.0 // 4A² and 4·tpf² terms
)
