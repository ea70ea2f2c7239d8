package main

import (
	"flag"
	"fmt"

	spiral "github.com/tphakala/go-spiral"
)

const (
	// Prescription (matching the vds defaults)
	defaultFOV         = 24.0
	defaultResolution  = 0.1
	defaultInterleaves = 16

	// Display limits
	binsToShow = 8 // strongest bins listed per axis
)

// acousticBand is a gradient coil mechanical resonance to stay out of.
type acousticBand struct {
	name   string
	lo, hi float64 // Hz
}

// Typical forbidden bands of whole-body gradient coils.
var forbiddenBands = []acousticBand{
	{"Band 1", 530, 630},
	{"Band 2", 1050, 1250},
}

func main() {
	fov := flag.Float64("fov", defaultFOV, "Field of view in cm")
	resolution := flag.Float64("res", defaultResolution, "In-plane resolution in cm")
	interleaves := flag.Int("interleaves", defaultInterleaves, "Number of spiral interleaves")
	density := flag.Float64("density", 1.0, "FOV at krmax relative to the center, (0, 1]")
	flag.Parse()

	fmt.Println("=== Analyzing Gradient Spectrum ===")

	config, err := spiral.NewVariableDensityConfig(*fov, *resolution, *interleaves, *density)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	w, err := spiral.DesignWaveform(config)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	s := w.Summary()
	fmt.Printf("Waveform info:\n")
	fmt.Printf("  Samples: %d\n", s.Samples)
	fmt.Printf("  Readout: %.3f ms\n", s.ReadoutMilliseconds())
	fmt.Printf("  Peak gradient: %.4f G/cm\n", s.PeakGradient)
	fmt.Printf("  Peak slew: %.0f G/cm/s\n\n", s.PeakSlew)

	x, y := w.Spectrum()
	for _, axis := range []struct {
		name string
		spec spiral.Spectrum
	}{{"Gx", x}, {"Gy", y}} {
		freq, amp := axis.spec.Peak()
		fmt.Printf("%s spectrum (%d bins, %.1f Hz resolution):\n",
			axis.name, len(axis.spec.Freqs), axis.spec.Freqs[1]-axis.spec.Freqs[0])
		fmt.Printf("  Peak: %.1f Hz, %.5f G/cm\n", freq, amp)

		fmt.Println("  Strongest bins:")
		for _, k := range strongestBins(axis.spec.Amplitude, binsToShow) {
			fmt.Printf("    %8.1f Hz: %.5f\n", axis.spec.Freqs[k], axis.spec.Amplitude[k])
		}

		for _, band := range forbiddenBands {
			level := axis.spec.BandAmplitude(band.lo, band.hi)
			ratio := 0.0
			if amp > 0 {
				ratio = level / amp
			}
			fmt.Printf("  %s (%4.0f-%4.0f Hz): %.5f G/cm (%.1f%% of peak)\n",
				band.name, band.lo, band.hi, level, ratio*100)
		}
		fmt.Println()
	}
}

// strongestBins returns the indices of the n largest non-DC amplitudes in
// descending order.
func strongestBins(amp []float64, n int) []int {
	var idx []int
	used := make([]bool, len(amp))
	for range n {
		best := -1
		for k := 1; k < len(amp); k++ {
			if !used[k] && (best < 0 || amp[k] > amp[best]) {
				best = k
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		idx = append(idx, best)
	}
	return idx
}
