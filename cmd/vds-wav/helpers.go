package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/go-spiral/internal/simdops"
)

const (
	gradientChannels = 2 // Gx, Gy

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16     = 32767.0
	maxInt24     = 8388607.0
	maxInt32     = 2147483647.0
	percentScale = 100

	// wavFormatPCM is the WAVE_FORMAT_PCM audio format tag.
	wavFormatPCM = 1
)

// gradientWAVOptions describes the PCM encoding of a gradient waveform.
type gradientWAVOptions struct {
	sampleRate int
	bitDepth   int

	// fullScale is the gradient amplitude in G/cm mapped to the largest
	// sample value.
	fullScale float64
}

// gradientWAV holds a decoded gradient waveform.
type gradientWAV struct {
	gx, gy     []float64
	sampleRate int
	bitDepth   int
}

func validBitDepth(bits int) bool {
	return bits == bitsPerSample16 || bits == bitsPerSample24 || bits == bitsPerSample32
}

// sampleRateFromRaster returns the WAV sample rate for a raster in seconds.
func sampleRateFromRaster(raster float64) int {
	return int(math.Round(1 / raster))
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// interleaveGradients converts Gx and Gy into interleaved PCM samples,
// clipping anything beyond full scale.
func interleaveGradients[F simdops.Float](gx, gy []float64, fullScale float64, bitDepth int) []int {
	ops := simdops.For[F]()
	n := len(gx)
	maxVal := getMaxValue(bitDepth)

	x := make([]F, n)
	y := make([]F, n)
	simdops.Convert(x, gx)
	simdops.Convert(y, gy)

	gain := F(maxVal / fullScale)
	ops.Scale(x, x, gain)
	ops.Scale(y, y, gain)

	interleaved := make([]F, n*gradientChannels)
	ops.Interleave2(interleaved, x, y)

	out := make([]int, len(interleaved))
	for i, v := range interleaved {
		s := math.Round(float64(v))
		if s > maxVal {
			s = maxVal
		} else if s < -maxVal {
			s = -maxVal
		}
		out[i] = int(s)
	}
	return out
}

// deinterleaveGradients converts interleaved PCM samples back to G/cm.
func deinterleaveGradients(data []int, fullScale float64, bitDepth int) (gx, gy []float64) {
	n := len(data) / gradientChannels
	gx = make([]float64, n)
	gy = make([]float64, n)
	scale := fullScale / getMaxValue(bitDepth)
	for i := range n {
		gx[i] = float64(data[i*gradientChannels]) * scale
		gy[i] = float64(data[i*gradientChannels+1]) * scale
	}
	return gx, gy
}

// writeGradientWAV writes the waveform to path as 2-channel PCM.
func writeGradientWAV[F simdops.Float](path string, gx, gy []float64, opts gradientWAVOptions) (err error) {
	if len(gx) != len(gy) {
		return fmt.Errorf("gradient lengths differ: %d != %d", len(gx), len(gy))
	}
	if !validBitDepth(opts.bitDepth) {
		return fmt.Errorf("unsupported bit depth %d", opts.bitDepth)
	}
	if opts.fullScale <= 0 || opts.sampleRate <= 0 {
		return fmt.Errorf("full scale and sample rate must be positive")
	}

	outputFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := outputFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	encoder := wav.NewEncoder(outputFile, opts.sampleRate, opts.bitDepth, gradientChannels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: gradientChannels,
			SampleRate:  opts.sampleRate,
		},
		Data:           interleaveGradients[F](gx, gy, opts.fullScale, opts.bitDepth),
		SourceBitDepth: opts.bitDepth,
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}

// readGradientWAV reads a 2-channel gradient WAV written by writeGradientWAV.
func readGradientWAV(path string, fullScale float64) (*gradientWAV, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = inputFile.Close() }()

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}

	format := decoder.Format()
	if format.NumChannels != gradientChannels {
		return nil, fmt.Errorf("expected %d channels, got %d", gradientChannels, format.NumChannels)
	}

	bitDepth := int(decoder.BitDepth)
	gx, gy := deinterleaveGradients(buf.Data, fullScale, bitDepth)
	return &gradientWAV{
		gx:         gx,
		gy:         gy,
		sampleRate: format.SampleRate,
		bitDepth:   bitDepth,
	}, nil
}
