// Package psdfile reads two-column ASCII power spectral densities.
package psdfile

import (
	"fmt"
	"math"
	"strconv"

	"tmpltbank/internal/textio"

	"tmpltbank-core/metric"
)

// Read returns the frequency and value columns of path. Rows must have
// exactly two finite numbers; blank rows and '#' comment rows are skipped.
func Read(path string) (freqs, vals []float64, err error) {
	err = textio.ReadFile(path, func(ln int, f []string) error {
		if len(f) != 2 {
			return fmt.Errorf("line %d: want 2 columns (frequency value), got %d", ln, len(f))
		}
		var row [2]float64
		for i, s := range f {
			x, err := strconv.ParseFloat(s, 64)
			if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("line %d: %q is not a finite number", ln, s)
			}
			row[i] = x
		}
		freqs = append(freqs, row[0])
		vals = append(vals, row[1])
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return freqs, vals, nil
}

// Load reads path and interpolates it onto the metric frequency grid of p.
func Load(path string, p metric.Params) (*metric.PSD, error) {
	freqs, vals, err := Read(path)
	if err != nil {
		return nil, err
	}
	psd, err := metric.NewPSD(p, freqs, vals)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return psd, nil
}
