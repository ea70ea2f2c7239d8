package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	spiral "github.com/tphakala/go-spiral"
)

// csvHeader names the columns written by writeTrajectoryCSV.
var csvHeader = []string{"interleave", "sample", "kx", "ky", "weight"}

// writeTrajectoryCSVFile writes the trajectory to path, replacing any
// existing file.
func writeTrajectoryCSVFile(path string, t *spiral.Trajectory, normalize bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return writeTrajectoryCSV(f, t, normalize)
}

// writeTrajectoryCSV writes one row per sample: interleave index, sample
// index, normalized kx and ky, and the density compensation weight. With
// normalize set the weights are scaled so the largest is 1.
func writeTrajectoryCSV(w io.Writer, t *spiral.Trajectory, normalize bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	weights := t.Weights
	if normalize {
		weights = t.NormalizedWeights()
	}

	row := make([]string, len(csvHeader))
	for i := range t.Interleaves {
		x, y, _ := t.Interleave(i)
		wt := weights[i*t.Samples : (i+1)*t.Samples]
		row[0] = strconv.Itoa(i)
		for j := range x {
			row[1] = strconv.Itoa(j)
			row[2] = strconv.FormatFloat(x[j], 'g', -1, 64)
			row[3] = strconv.FormatFloat(y[j], 'g', -1, 64)
			row[4] = strconv.FormatFloat(wt[j], 'g', -1, 64)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
