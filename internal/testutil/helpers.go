// Package testutil provides reusable test helper functions for spiral design tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance    = 1e-10
	RotationTolerance   = 1e-12
	GradientTolerance   = 1e-9
	RelativeTolerance   = 1e-6
	HardwareLimitMargin = 1.05 // discretization overshoot allowed on hardware limits
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertNonNegative verifies that every element is >= 0.
func AssertNonNegative(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < 0 || math.IsNaN(v) {
			return assert.Fail(t, "negative value", "s[%d]=%g", i, v)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is monotonically non-decreasing.
func AssertMonotonic(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertBitIdentical verifies two slices have the same length and
// bit-identical contents.
func AssertBitIdentical(t *testing.T, expected, actual []float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if math.Float64bits(expected[i]) != math.Float64bits(actual[i]) {
			return assert.Fail(t, "not bit-identical",
				"index %d: expected %v, got %v", i, expected[i], actual[i])
		}
	}
	return true
}

// AssertRotated verifies that (x, y) equals (x0, y0) rotated clockwise by
// angle about the origin, point by point.
func AssertRotated(t *testing.T, x0, y0, x, y []float64, angle, tolerance float64) bool {
	t.Helper()
	c, s := math.Cos(angle), math.Sin(angle)
	for j := range x0 {
		wantX := x0[j]*c + y0[j]*s
		wantY := -x0[j]*s + y0[j]*c
		if math.Abs(wantX-x[j]) > tolerance || math.Abs(wantY-y[j]) > tolerance {
			return assert.Fail(t, "not a rotation",
				"sample %d: got (%g, %g), want (%g, %g)", j, x[j], y[j], wantX, wantY)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}
