package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	spiral "github.com/tphakala/go-spiral"
)

func TestSampleRateFromRaster(t *testing.T) {
	assert.Equal(t, 250000, sampleRateFromRaster(4e-6))
	assert.Equal(t, 100000, sampleRateFromRaster(10e-6))
}

func TestValidBitDepth(t *testing.T) {
	assert.True(t, validBitDepth(16))
	assert.True(t, validBitDepth(24))
	assert.True(t, validBitDepth(32))
	assert.False(t, validBitDepth(8))
	assert.False(t, validBitDepth(12))
}

func TestInterleaveGradients(t *testing.T) {
	gx := []float64{0, 2, 4, -4}
	gy := []float64{1, -2, 0, 8} // 8 G/cm is beyond full scale

	out := interleaveGradients[float64](gx, gy, 4, bitsPerSample16)
	assert.Equal(t, []int{0, 8192, 16384, -16384, 32767, 0, -32767, 32767}, out)
}

func TestInterleaveGradients_Float32MatchesFloat64(t *testing.T) {
	gx := []float64{0.1, 0.5, 1.25, -3.9}
	gy := []float64{-0.3, 2.2, 0, 3.99}

	a := interleaveGradients[float64](gx, gy, 4, bitsPerSample16)
	b := interleaveGradients[float32](gx, gy, 4, bitsPerSample16)
	for i := range a {
		assert.InDelta(t, a[i], b[i], 1, "sample %d", i)
	}
}

func TestDeinterleaveGradients(t *testing.T) {
	gx, gy := deinterleaveGradients([]int{0, 8192, 16384, -16384}, 4, bitsPerSample16)
	require.Len(t, gx, 2)
	assert.InDelta(t, 0.0, gx[0], 1e-12)
	assert.InDelta(t, 8192*4/maxInt16, gy[0], 1e-12)
	assert.InDelta(t, 16384*4/maxInt16, gx[1], 1e-12)
	assert.InDelta(t, -16384*4/maxInt16, gy[1], 1e-12)
}

func TestWriteGradientWAV_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		bitDepth int
	}{
		{"16-bit", bitsPerSample16},
		{"24-bit", bitsPerSample24},
		{"32-bit", bitsPerSample32},
	}

	config, err := spiral.NewUniformConfig(24, 0.25, 8)
	require.NoError(t, err)
	w, err := spiral.DesignWaveform(config)
	require.NoError(t, err)
	require.Positive(t, w.Len())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "spiral.wav")
			opts := gradientWAVOptions{
				sampleRate: sampleRateFromRaster(config.GradientRaster),
				bitDepth:   tt.bitDepth,
				fullScale:  config.GradMax,
			}
			require.NoError(t, writeGradientWAV[float64](path, w.Gx, w.Gy, opts))

			g, err := readGradientWAV(path, config.GradMax)
			require.NoError(t, err)
			assert.Equal(t, opts.sampleRate, g.sampleRate)
			assert.Equal(t, tt.bitDepth, g.bitDepth)
			require.Len(t, g.gx, w.Len())
			require.Len(t, g.gy, w.Len())

			// One quantization step of tolerance.
			tol := config.GradMax / getMaxValue(tt.bitDepth)
			for i := range w.Gx {
				assert.InDelta(t, w.Gx[i], g.gx[i], tol, "gx[%d]", i)
				assert.InDelta(t, w.Gy[i], g.gy[i], tol, "gy[%d]", i)
			}
		})
	}
}

func TestWriteGradientWAV_Errors(t *testing.T) {
	dir := t.TempDir()
	opts := gradientWAVOptions{sampleRate: 250000, bitDepth: 16, fullScale: 4}

	err := writeGradientWAV[float64](filepath.Join(dir, "a.wav"), []float64{1}, []float64{1, 2}, opts)
	assert.Error(t, err)

	bad := opts
	bad.bitDepth = 12
	err = writeGradientWAV[float64](filepath.Join(dir, "b.wav"), []float64{1}, []float64{1}, bad)
	assert.Error(t, err)

	err = writeGradientWAV[float64]("/nonexistent/dir/out.wav", []float64{1}, []float64{1}, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestReadGradientWAV_FileNotFound(t *testing.T) {
	_, err := readGradientWAV("/nonexistent/file.wav", 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestReadGradientWAV_InvalidWAV(t *testing.T) {
	invalidFile := filepath.Join(t.TempDir(), "invalid.wav")
	require.NoError(t, os.WriteFile(invalidFile, []byte("not a wav file"), 0o644))

	_, err := readGradientWAV(invalidFile, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}
