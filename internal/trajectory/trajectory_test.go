package trajectory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-spiral/internal/engine"
	"github.com/tphakala/go-spiral/internal/mathutil"
	"github.com/tphakala/go-spiral/internal/testutil"
)

const (
	testRaster      = 4e-6
	testKrmax       = 5.0
	testInterleaves = 16
)

func scenarioWaveform(t testing.TB) *engine.Waveform {
	t.Helper()
	p := &engine.Params{
		Limits:      engine.Limits{SlewMax: 15000, GradMax: 4.0},
		Timing:      engine.Timing{Gradient: testRaster, Data: testRaster},
		Interleaves: testInterleaves,
		FOV:         []float64{24.0},
	}
	w := engine.Integrate(p, testKrmax, 50000)
	require.Positive(t, w.Len())
	return w
}

// TestCompute_Scenario tests lengths and the starting point of every interleave.
func TestCompute_Scenario(t *testing.T) {
	w := scenarioWaveform(t)
	traj, err := Compute(w.Gx, w.Gy, testInterleaves, testRaster, testKrmax, false)
	require.NoError(t, err)

	n := w.Len()
	assert.Equal(t, testInterleaves*n, traj.Len())
	assert.Len(t, traj.Y, testInterleaves*n)
	assert.Len(t, traj.Weights, testInterleaves*n)
	assert.Equal(t, n, traj.Samples)

	for i := range testInterleaves {
		x, y, _ := traj.Interleave(i)
		assert.Zero(t, x[0], "interleave %d", i)
		assert.Zero(t, y[0], "interleave %d", i)
	}

	testutil.AssertNoNaNOrInf(t, traj.X)
	testutil.AssertNoNaNOrInf(t, traj.Y)
	testutil.AssertNonNegative(t, traj.Weights)

	// Normalized positions stay inside the unit disk, up to the last step
	// overshooting krmax.
	for j := range traj.X {
		r := math.Hypot(traj.X[j], traj.Y[j])
		if r > 1.01 {
			t.Fatalf("sample %d outside unit disk: r=%g", j, r)
		}
	}
}

// TestCompute_PositionsIntegrateGradient tests the one-sample lag.
func TestCompute_PositionsIntegrateGradient(t *testing.T) {
	w := scenarioWaveform(t)
	traj, err := Compute(w.Gx, w.Gy, 1, testRaster, testKrmax, false)
	require.NoError(t, err)

	// Position j+1 is the k-space location reached after gradient j.
	for _, j := range []int{0, 10, w.Len() / 2, w.Len() - 2} {
		wantX := w.Kr[j] * math.Cos(w.Theta[j]) / testKrmax
		wantY := w.Kr[j] * math.Sin(w.Theta[j]) / testKrmax
		assert.InDelta(t, wantX, traj.X[j+1], 1e-9, "j=%d", j)
		assert.InDelta(t, wantY, traj.Y[j+1], 1e-9, "j=%d", j)
	}
}

// TestCompute_RotationSymmetry tests that interleave i is interleave 0
// rotated by 2π·i/N.
func TestCompute_RotationSymmetry(t *testing.T) {
	w := scenarioWaveform(t)
	traj, err := Compute(w.Gx, w.Gy, testInterleaves, testRaster, testKrmax, false)
	require.NoError(t, err)

	x0, y0, w0 := traj.Interleave(0)
	for i := 1; i < testInterleaves; i++ {
		x, y, wi := traj.Interleave(i)
		angle := 2 * mathutil.Pi * float64(i) / testInterleaves
		testutil.AssertRotated(t, x0, y0, x, y, angle, testutil.RotationTolerance)
		testutil.AssertBitIdentical(t, w0, wi)
	}
}

// TestCompute_ParallelMatchesSequential tests that concurrent rotation is bit-exact.
func TestCompute_ParallelMatchesSequential(t *testing.T) {
	w := scenarioWaveform(t)
	seq, err := Compute(w.Gx, w.Gy, testInterleaves, testRaster, testKrmax, false)
	require.NoError(t, err)
	par, err := Compute(w.Gx, w.Gy, testInterleaves, testRaster, testKrmax, true)
	require.NoError(t, err)

	testutil.AssertBitIdentical(t, seq.X, par.X)
	testutil.AssertBitIdentical(t, seq.Y, par.Y)
	testutil.AssertBitIdentical(t, seq.Weights, par.Weights)
	assert.Equal(t, seq.DegenerateAngles, par.DegenerateAngles)
}

// TestCompute_Weights tests the perpendicular-component weight on hand-made input.
func TestCompute_Weights(t *testing.T) {
	tests := []struct {
		name     string
		gx, gy   []float64
		expected []float64
		zeros    int
	}{
		{
			// Position 0 is the origin, so its angle is π/2 and the weight is |gx|.
			name:     "Radial then tangential",
			gx:       []float64{1, 0},
			gy:       []float64{0, 2},
			expected: []float64{1, 2},
			zeros:    1,
		},
		{
			name:     "Purely radial",
			gx:       []float64{1, 1, 1},
			gy:       []float64{0, 0, 0},
			expected: []float64{1, 0, 0},
			zeros:    1,
		},
		{
			name:     "Zero gradient",
			gx:       []float64{0, 0},
			gy:       []float64{0, 0},
			expected: []float64{0, 0},
			zeros:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traj, err := Compute(tt.gx, tt.gy, 1, testRaster, testKrmax, false)
			require.NoError(t, err)
			require.Len(t, traj.Weights, len(tt.expected))
			for j := range tt.expected {
				assert.InDelta(t, tt.expected[j], traj.Weights[j], 1e-6, "j=%d", j)
			}
			assert.Equal(t, tt.zeros, traj.DegenerateAngles)
		})
	}
}

// TestCompute_Empty tests an empty waveform.
func TestCompute_Empty(t *testing.T) {
	traj, err := Compute(nil, nil, 4, testRaster, testKrmax, true)
	require.NoError(t, err)
	assert.Zero(t, traj.Len())
	assert.Equal(t, 4, traj.Interleaves)

	// No sample is divided by krmax, so an empty design accepts any krmax.
	traj, err = Compute(nil, nil, 4, testRaster, 0, false)
	require.NoError(t, err)
	assert.Zero(t, traj.Len())
}

// TestCompute_InvalidInput tests argument validation.
func TestCompute_InvalidInput(t *testing.T) {
	g := []float64{1, 2}

	_, err := Compute(g, g[:1], 1, testRaster, testKrmax, false)
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Compute(g, g, 0, testRaster, testKrmax, false)
	require.ErrorIs(t, err, ErrInterleaves)

	_, err = Compute(g, g, 1, 0, testKrmax, false)
	require.ErrorIs(t, err, ErrRaster)

	_, err = Compute(g, g, 1, testRaster, 0, false)
	require.ErrorIs(t, err, ErrKrmax)
}

func TestNormalizedWeights(t *testing.T) {
	traj := &Trajectory{Weights: []float64{0, 2, 4, 1}}
	assert.Equal(t, []float64{0, 0.5, 1, 0.25}, traj.NormalizedWeights())
	assert.Equal(t, []float64{0, 2, 4, 1}, traj.Weights)

	zero := &Trajectory{Weights: []float64{0, 0}}
	assert.Equal(t, []float64{0, 0}, zero.NormalizedWeights())
}

func TestFloat32(t *testing.T) {
	traj := &Trajectory{
		X:       []float64{0, 0.25},
		Y:       []float64{0, -0.5},
		Weights: []float64{1, 2},
	}
	x, y, w := traj.Float32()
	assert.Equal(t, []float32{0, 0.25}, x)
	assert.Equal(t, []float32{0, -0.5}, y)
	assert.Equal(t, []float32{1, 2}, w)
}

// BenchmarkCompute_Sequential benchmarks the sequential rotation pass.
func BenchmarkCompute_Sequential(b *testing.B) {
	w := scenarioWaveform(b)
	for b.Loop() {
		_, _ = Compute(w.Gx, w.Gy, testInterleaves, testRaster, testKrmax, false)
	}
}

// BenchmarkCompute_Parallel benchmarks the concurrent rotation pass.
func BenchmarkCompute_Parallel(b *testing.B) {
	w := scenarioWaveform(b)
	for b.Loop() {
		_, _ = Compute(w.Gx, w.Gy, testInterleaves, testRaster, testKrmax, true)
	}
}
