package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	spiral "github.com/tphakala/go-spiral"
)

func testTrajectory(t *testing.T) *spiral.Trajectory {
	t.Helper()
	traj, err := spiral.TrajectoryFromGradients(
		[]float64{1, 1, 0.5}, []float64{0, 0.5, 1}, 2, 4e-6, 1, false)
	require.NoError(t, err)
	return traj
}

// TestWriteTrajectoryCSV tests the row layout and round-trip precision.
func TestWriteTrajectoryCSV(t *testing.T) {
	traj := testTrajectory(t)

	var buf bytes.Buffer
	require.NoError(t, writeTrajectoryCSV(&buf, traj, false))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+traj.Len())
	assert.Equal(t, csvHeader, records[0])

	for k, rec := range records[1:] {
		i, err := strconv.Atoi(rec[0])
		require.NoError(t, err)
		j, err := strconv.Atoi(rec[1])
		require.NoError(t, err)
		assert.Equal(t, k/traj.Samples, i)
		assert.Equal(t, k%traj.Samples, j)

		kx, err := strconv.ParseFloat(rec[2], 64)
		require.NoError(t, err)
		w, err := strconv.ParseFloat(rec[4], 64)
		require.NoError(t, err)
		assert.Equal(t, traj.X[k], kx)
		assert.Equal(t, traj.Weights[k], w)
	}
}

// TestWriteTrajectoryCSV_Normalized tests that normalized weights peak at 1
// and keep their ratios.
func TestWriteTrajectoryCSV_Normalized(t *testing.T) {
	traj := testTrajectory(t)
	want := traj.NormalizedWeights()

	var buf bytes.Buffer
	require.NoError(t, writeTrajectoryCSV(&buf, traj, true))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+traj.Len())

	peak := 0.0
	for k, rec := range records[1:] {
		w, err := strconv.ParseFloat(rec[4], 64)
		require.NoError(t, err)
		assert.Equal(t, want[k], w)
		peak = max(peak, w)
	}
	assert.InDelta(t, 1.0, peak, 1e-12)
}

// TestWriteTrajectoryCSVFile tests writing to disk.
func TestWriteTrajectoryCSVFile(t *testing.T) {
	traj := testTrajectory(t)
	path := filepath.Join(t.TempDir(), "traj.csv")

	require.NoError(t, writeTrajectoryCSVFile(path, traj, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "interleave,sample,kx,ky,weight")

	err = writeTrajectoryCSVFile(filepath.Join(t.TempDir(), "missing", "traj.csv"), traj, false)
	assert.Error(t, err)
}
