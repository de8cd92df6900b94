package metric

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrPSDRange is returned when the sampled PSD does not cover the
// frequency range of the metric calculation.
var ErrPSDRange = errors.New("psd does not cover frequency range")

// PSD is a one-sided power spectral density sampled on a uniform grid:
// Values[i] is the PSD at i*DeltaF. Bins below the low-frequency cutoff are
// zero and never used.
type PSD struct {
	DeltaF float64
	Values []float64
}

// NewPSD linearly interpolates the sampled (freqs, vals) curve onto the
// delta-f grid of p, up to but excluding p.FUpper.
func NewPSD(p Params, freqs, vals []float64) (*PSD, error) {
	if len(freqs) != len(vals) {
		return nil, fmt.Errorf("psd: %d frequencies but %d values", len(freqs), len(vals))
	}
	if len(freqs) < 2 {
		return nil, fmt.Errorf("psd: need at least two samples, got %d", len(freqs))
	}
	for i := range freqs {
		if i > 0 && freqs[i] <= freqs[i-1] {
			return nil, fmt.Errorf("psd: frequencies must be strictly increasing (row %d)", i+1)
		}
		if !(vals[i] > 0) || math.IsInf(vals[i], 0) {
			return nil, fmt.Errorf("psd: value at %g Hz must be finite and > 0 (got %g)", freqs[i], vals[i])
		}
	}
	if freqs[0] > p.FLow || freqs[len(freqs)-1] < p.FUpper-p.DeltaF {
		return nil, fmt.Errorf("%w: samples span [%g, %g] Hz, need [%g, %g)",
			ErrPSDRange, freqs[0], freqs[len(freqs)-1], p.FLow, p.FUpper)
	}

	n := int(math.Ceil(p.FUpper / p.DeltaF))
	out := &PSD{DeltaF: p.DeltaF, Values: make([]float64, n)}
	for i := firstBin(p.FLow, p.DeltaF); i < n; i++ {
		out.Values[i] = interpolate(freqs, vals, float64(i)*p.DeltaF)
	}
	return out, nil
}

// At returns the PSD in bin i, or 0 outside the grid.
func (s *PSD) At(i int) float64 {
	if i < 0 || i >= len(s.Values) {
		return 0
	}
	return s.Values[i]
}

func (s *PSD) clone() *PSD {
	return &PSD{DeltaF: s.DeltaF, Values: append([]float64(nil), s.Values...)}
}

func firstBin(fLow, deltaF float64) int {
	return int(math.Ceil(fLow/deltaF - 1e-9))
}

func interpolate(xs, ys []float64, x float64) float64 {
	j := sort.SearchFloat64s(xs, x)
	switch {
	case j == 0:
		return ys[0]
	case j >= len(xs):
		return ys[len(ys)-1]
	case xs[j] == x:
		return ys[j]
	}
	t := (x - xs[j-1]) / (xs[j] - xs[j-1])
	return ys[j-1] + t*(ys[j]-ys[j-1])
}
