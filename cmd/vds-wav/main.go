// Command vds-wav designs a variable-density spiral and writes its gradient
// waveform as a 2-channel PCM WAV file (Gx left, Gy right) sampled at the
// gradient raster, for playback on an arbitrary waveform generator.
//
// Usage:
//
//	vds-wav -fov 24 -res 0.1 -interleaves 16 spiral.wav
//	vds-wav -density 0.5 -bits 24 spiral_vd.wav
//	vds-wav -inspect spiral.wav
//
// Full scale (the largest sample value) corresponds to -gmax G/cm.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	spiral "github.com/tphakala/go-spiral"
	"github.com/tphakala/go-spiral/internal/analysis"
)

const (
	// CLI defaults
	defaultFOV         = 24.0
	defaultResolution  = 0.1
	defaultInterleaves = 16
	defaultRasterUs    = 4.0
	defaultBitDepth    = bitsPerSample16
	minRequiredArgs    = 1

	secondsPerMicrosecond = 1e-6
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	fov := flag.Float64("fov", defaultFOV, "Field of view at the k-space center in cm")
	resolution := flag.Float64("res", defaultResolution, "In-plane resolution in cm")
	interleaves := flag.Int("interleaves", defaultInterleaves, "Number of spiral interleaves")
	density := flag.Float64("density", 1.0, "FOV at krmax relative to the center, (0, 1]")
	gmax := flag.Float64("gmax", spiral.GradMaxClinical, "Maximum gradient amplitude in G/cm (WAV full scale)")
	smax := flag.Float64("smax", spiral.SlewMaxClinical, "Maximum slew rate in G/cm/s")
	raster := flag.Float64("raster", defaultRasterUs, "Gradient raster in µs (sets the WAV sample rate)")
	bits := flag.Int("bits", defaultBitDepth, "PCM bit depth: 16, 24 or 32")
	fast := flag.Bool("fast", false, "Use float32 precision for sample conversion")
	inspect := flag.Bool("inspect", false, "Read a gradient WAV and print its summary")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s spiral.wav                      # 16-arm uniform spiral\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -density 0.5 -bits 24 vd.wav     # Variable density, 24-bit\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -inspect -gmax 4 spiral.wav      # Summarize an existing file\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}
	path := args[0]

	if *inspect {
		return inspectWAV(path, *gmax)
	}

	if !validBitDepth(*bits) {
		return fmt.Errorf("unsupported bit depth %d", *bits)
	}

	config, err := spiral.NewVariableDensityConfig(*fov, *resolution, *interleaves, *density)
	if err != nil {
		return err
	}
	config.GradMax = *gmax
	config.SlewMax = *smax
	config.GradientRaster = *raster * secondsPerMicrosecond
	config.DataRaster = config.GradientRaster

	w, err := spiral.DesignWaveform(config)
	if err != nil {
		return fmt.Errorf("design failed: %w", err)
	}

	rate := sampleRateFromRaster(config.GradientRaster)
	if *verbose {
		log.Printf("Output: %s", path)
		log.Printf("Samples: %d at %d Hz, %d-bit", w.Len(), rate, *bits)
		log.Printf("Full scale: %g G/cm", *gmax)
		if *fast {
			log.Printf("Precision: float32 (fast mode)")
		}
	}

	opts := gradientWAVOptions{
		sampleRate: rate,
		bitDepth:   *bits,
		fullScale:  *gmax,
	}
	if *fast {
		err = writeGradientWAV[float32](path, w.Gx, w.Gy, opts)
	} else {
		err = writeGradientWAV[float64](path, w.Gx, w.Gy, opts)
	}
	if err != nil {
		return err
	}

	s := w.Summary()
	fmt.Printf("Wrote %s\n", filepath.Base(path))
	fmt.Printf("  %d samples at %d Hz (%.3f ms)\n", s.Samples, rate, s.ReadoutMilliseconds())
	fmt.Printf("  Peak gradient: %.3f G/cm (%.1f%% of full scale)\n", s.PeakGradient, s.PeakGradient / *gmax * percentScale)
	return nil
}

// inspectWAV reads a gradient WAV and prints the waveform summary.
func inspectWAV(path string, fullScale float64) error {
	g, err := readGradientWAV(path, fullScale)
	if err != nil {
		return err
	}

	s := analysis.Summarize(g.gx, g.gy, 1/float64(g.sampleRate))
	fmt.Printf("%s: %d Hz, %d-bit, %d samples\n", filepath.Base(path), g.sampleRate, g.bitDepth, s.Samples)
	fmt.Printf("  Readout: %.3f ms\n", s.ReadoutMilliseconds())
	fmt.Printf("  Peak gradient: %.3f G/cm\n", s.PeakGradient)
	fmt.Printf("  Peak slew: %.0f G/cm/s\n", s.PeakSlew)
	return nil
}
