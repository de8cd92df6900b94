package metric

import (
	"fmt"
	"math"
	"sort"
)

// Moment indices: n runs over 1..MaxMomentIndex and the log power over
// 0..MaxLogPower.
const (
	MaxMomentIndex = 18
	MaxLogPower    = 4
)

var logPrefixes = [MaxLogPower + 1]string{"J", "log", "loglog", "logloglog", "loglogloglog"}

// MomentName returns the conventional name of a moment, e.g. "J7" or "loglog12".
func MomentName(logPower, n int) string {
	return fmt.Sprintf("%s%d", logPrefixes[logPower], n)
}

// Moments holds the noise-weighted integrals
//
//	(ln x^(1/3))^k x^(-n/3) dx / S(x),   x = f/f0,
//
// over [fLow, fMax) for every upper cutoff fMax, normalised so that J7 = 1.
type Moments struct {
	values map[float64]*momentTable
}

type momentTable [MaxLogPower + 1][MaxMomentIndex + 1]float64

// ComputeMoments integrates the PSD for each upper cutoff. With no cutoffs
// only p.FUpper is used.
func ComputeMoments(p Params, psd *PSD, cutoffs ...float64) (*Moments, error) {
	if psd == nil {
		return nil, fmt.Errorf("%w: psd", ErrMissingProduct)
	}
	if len(cutoffs) == 0 {
		cutoffs = []float64{p.FUpper}
	}
	m := &Moments{values: make(map[float64]*momentTable, len(cutoffs))}
	for _, fMax := range cutoffs {
		if fMax <= p.FLow || fMax > p.FUpper {
			return nil, fmt.Errorf("%w: cutoff %g Hz outside (%g, %g]", ErrInvalidParams, fMax, p.FLow, p.FUpper)
		}
		t, err := integrate(p, psd, fMax)
		if err != nil {
			return nil, err
		}
		m.values[fMax] = t
	}
	return m, nil
}

func integrate(p Params, psd *PSD, fMax float64) (*momentTable, error) {
	var t momentTable
	dx := p.DeltaF / p.F0
	bins := 0
	for i := firstBin(p.FLow, p.DeltaF); float64(i)*p.DeltaF < fMax; i++ {
		s := psd.At(i)
		if s <= 0 {
			return nil, fmt.Errorf("%w: no psd value at %g Hz", ErrPSDRange, float64(i)*p.DeltaF)
		}
		x := float64(i) * p.DeltaF / p.F0
		lx := math.Log(x) / 3
		w := dx / s
		for n := 1; n <= MaxMomentIndex; n++ {
			v := math.Pow(x, -float64(n)/3) * w
			for k := 0; k <= MaxLogPower; k++ {
				t[k][n] += v
				v *= lx
			}
		}
		bins++
	}
	if bins == 0 {
		return nil, fmt.Errorf("%w: no frequency bins below %g Hz", ErrInvalidParams, fMax)
	}
	norm := t[0][7]
	for k := range t {
		for n := range t[k] {
			t[k][n] /= norm
		}
	}
	return &t, nil
}

// Cutoffs returns the upper frequency cutoffs, ascending.
func (m *Moments) Cutoffs() []float64 {
	out := make([]float64, 0, len(m.values))
	for f := range m.values {
		out = append(out, f)
	}
	sort.Float64s(out)
	return out
}

// Get returns the moment with the given log power and index at fMax.
func (m *Moments) Get(logPower, n int, fMax float64) (float64, bool) {
	t, ok := m.values[fMax]
	if !ok || logPower < 0 || logPower > MaxLogPower || n < 1 || n > MaxMomentIndex {
		return 0, false
	}
	return t[logPower][n], true
}

// Named returns every moment at fMax keyed by MomentName.
func (m *Moments) Named(fMax float64) map[string]float64 {
	t, ok := m.values[fMax]
	if !ok {
		return nil
	}
	out := make(map[string]float64, (MaxLogPower+1)*MaxMomentIndex)
	for k := 0; k <= MaxLogPower; k++ {
		for n := 1; n <= MaxMomentIndex; n++ {
			out[MomentName(k, n)] = t[k][n]
		}
	}
	return out
}

func (m *Moments) clone() *Moments {
	out := &Moments{values: make(map[float64]*momentTable, len(m.values))}
	for f, t := range m.values {
		c := *t
		out.values[f] = &c
	}
	return out
}
