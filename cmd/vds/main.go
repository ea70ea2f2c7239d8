package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	spiral "github.com/tphakala/go-spiral"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	// Command-line flags
	var (
		fov         = flag.Float64("fov", defaultFOV, "Field of view at the k-space center in cm")
		resolution  = flag.Float64("res", defaultResolution, "In-plane resolution in cm")
		interleaves = flag.Int("interleaves", defaultInterleaves, "Number of spiral interleaves")
		density     = flag.Float64("density", defaultDensity, "FOV at krmax relative to the center, (0, 1]")
		gmax        = flag.Float64("gmax", spiral.GradMaxClinical, "Maximum gradient amplitude in G/cm")
		smax        = flag.Float64("smax", spiral.SlewMaxClinical, "Maximum slew rate in G/cm/s")
		raster      = flag.Float64("raster", defaultRasterUs, "Gradient raster in µs")
		dataRaster  = flag.Float64("data-raster", 0, "Data sample period in µs (0 = gradient raster)")
		ngmax       = flag.Int("ngmax", defaultMaxSamples, "Maximum gradient samples per interleave")
		parallel    = flag.Bool("parallel", false, "Rotate interleaves concurrently")
		strict      = flag.Bool("strict", false, "Fail on truncated designs and complex slew roots")
		csvPath     = flag.String("csv", "", "Write the trajectory and weights to this CSV file")
		normalize   = flag.Bool("normalize", false, "Scale CSV weights so the largest is 1")
		demo        = flag.Bool("demo", false, "Run a demonstration")
		verbose     = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	if *demo {
		runDemo()
		return
	}

	config, err := spiral.NewVariableDensityConfig(*fov, *resolution, *interleaves, *density)
	if err != nil {
		log.Fatalf("Invalid prescription: %v", err)
	}
	config.GradMax = *gmax
	config.SlewMax = *smax
	config.GradientRaster = *raster * secondsPerMicrosecond
	config.DataRaster = *dataRaster * secondsPerMicrosecond
	config.MaxSamples = *ngmax
	config.EnableParallel = *parallel
	config.Strict = *strict

	if *verbose {
		info := spiral.GetInfo()
		log.Printf("Algorithm: %s", info.Algorithm)
		log.Printf("SIMD: %s (CPU: %s)", info.SIMDType, info.CPUFeatures)
		log.Printf("FOV coefficients: %v, krmax %.4g 1/cm", config.FOV, config.KrMax)
	}

	exitCode := 0
	result, err := spiral.Design(config)
	if err != nil {
		if result == nil {
			log.Fatalf("Design failed: %v", err)
		}
		// Strict mode still returns the design.
		log.Printf("Design check failed: %v", err)
		printIssues(err)
		exitCode = 1
	}

	p := message.NewPrinter(language.English)
	printSummary(p, result)

	if *csvPath != "" {
		if err := writeTrajectoryCSVFile(*csvPath, result.DataTrajectory, *normalize); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		p.Printf("Wrote %d samples to %s\n", result.DataTrajectory.Len(), *csvPath)
	}

	os.Exit(exitCode)
}

func printSummary(p *message.Printer, result *spiral.Result) {
	w := result.Waveform
	s := w.Summary()
	d := w.Diagnostics

	p.Printf("Spiral design:\n")
	p.Printf("  Gradient samples: %d per interleave\n", s.Samples)
	p.Printf("  Readout: %.3f ms\n", s.ReadoutMilliseconds())
	p.Printf("  Peak gradient: %.3f G/cm (mean %.3f, RMS %.3f)\n", s.PeakGradient, s.MeanGradient, s.RMSGradient)
	p.Printf("  Peak slew: %.0f G/cm/s\n", s.PeakSlew)
	p.Printf("  Final kr: %.4f 1/cm (reached krmax: %v)\n", d.FinalKr, d.ReachedKrmax)
	p.Printf("  Amplitude-limited steps: %d\n", d.AmplitudeLimitedSteps)
	if d.ComplexRootSteps > 0 {
		p.Printf("  Complex slew roots: %d\n", d.ComplexRootSteps)
	}

	t := result.DataTrajectory
	p.Printf("  Trajectory: %d interleaves x %d samples = %d points\n", t.Interleaves, t.Samples, t.Len())
	if t.DegenerateAngles > 0 {
		p.Printf("  Degenerate angles: %d\n", t.DegenerateAngles)
	}

	x, _ := w.Spectrum()
	freq, amp := x.Peak()
	p.Printf("  Gx spectral peak: %.0f Hz (%.3f G/cm)\n", freq, amp)
}

func printIssues(err error) {
	if errors.Is(err, spiral.ErrNotConverged) {
		log.Printf("  raise -ngmax or relax the prescription")
	}
	if errors.Is(err, spiral.ErrComplexRoot) {
		log.Printf("  the slew solve lost precision; check the FOV polynomial")
	}
}

func runDemo() {
	p := message.NewPrinter(language.English)
	fmt.Println("=== Variable-Density Spiral Design Demo ===")

	// Demo 1: Interleave count
	fmt.Println("\n1. Interleave Count (uniform 24 cm, 1 mm)")
	fmt.Println("-----------------------------------------")

	for _, n := range demoInterleaves {
		config, err := spiral.NewUniformConfig(demoFOV, demoResolution, n)
		if err != nil {
			fmt.Printf("  %d interleaves: Error - %v\n", n, err)
			continue
		}
		w, err := spiral.DesignWaveform(config)
		if err != nil {
			fmt.Printf("  %d interleaves: Error - %v\n", n, err)
			continue
		}
		s := w.Summary()
		p.Printf("  %2d interleaves: %6d samples, %7.3f ms readout\n", n, s.Samples, s.ReadoutMilliseconds())
	}

	// Demo 2: Variable density
	fmt.Println("\n2. Variable Density (16 interleaves)")
	fmt.Println("------------------------------------")

	for _, density := range demoDensities {
		config, err := spiral.NewVariableDensityConfig(demoFOV, demoResolution, defaultInterleaves, density)
		if err != nil {
			fmt.Printf("  density %.2f: Error - %v\n", density, err)
			continue
		}
		w, err := spiral.DesignWaveform(config)
		if err != nil {
			fmt.Printf("  density %.2f: Error - %v\n", density, err)
			continue
		}
		s := w.Summary()
		p.Printf("  density %.2f: FOV %4.1f -> %4.1f cm, %6d samples, %7.3f ms\n",
			density, spiral.FOVAt(config.FOV, 0), spiral.FOVAt(config.FOV, config.KrMax),
			s.Samples, s.ReadoutMilliseconds())
	}

	// Demo 3: Gradient hardware
	fmt.Println("\n3. Gradient Hardware (16 interleaves, 1 mm)")
	fmt.Println("-------------------------------------------")

	hardware := []struct {
		name       string
		gmax, smax float64
	}{
		{"Clinical", spiral.GradMaxClinical, spiral.SlewMaxClinical},
		{"High performance", spiral.GradMaxHighPerformance, spiral.SlewMaxHighPerformance},
	}

	for _, hw := range hardware {
		config, err := spiral.NewUniformConfig(demoFOV, demoResolution, defaultInterleaves)
		if err != nil {
			continue
		}
		config.GradMax = hw.gmax
		config.SlewMax = hw.smax

		w, err := spiral.DesignWaveform(config)
		if err != nil {
			fmt.Printf("  %s: Error - %v\n", hw.name, err)
			continue
		}
		s := w.Summary()
		p.Printf("  %-16s: %.0f mT/m, %.0f T/m/s -> %6d samples, peak slew %.0f G/cm/s\n",
			hw.name, hw.gmax*mTmPerGcm, hw.smax*tmsPerGcms, s.Samples, s.PeakSlew)
	}
}
