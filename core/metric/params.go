// core/metric/params.go
// Settings of the parameter-space metric calculation.

package metric

import (
	"errors"
	"fmt"
	"math"

	"tmpltbank-core/pnutils"
)

// DefaultF0 is the reference frequency (Hz) used to rescale frequencies
// before integrating; it only affects numerical conditioning.
const DefaultF0 = 70.0

// ErrInvalidParams reports malformed metric settings.
var ErrInvalidParams = errors.New("invalid metric parameters")

// Params are the metric-calculation settings. Frequencies are in Hz.
type Params struct {
	PNOrder string
	FLow    float64
	FUpper  float64
	DeltaF  float64
	F0      float64
}

// NewParams validates and returns metric settings. f0 <= 0 selects DefaultF0.
func NewParams(pnOrder string, fLow, fUpper, deltaF, f0 float64) (Params, error) {
	if f0 <= 0 {
		f0 = DefaultF0
	}
	p := Params{PNOrder: pnOrder, FLow: fLow, FUpper: fUpper, DeltaF: deltaF, F0: f0}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks the PN order and frequency settings.
func (p Params) Validate() error {
	if !pnutils.IsTmpltbankOrder(p.PNOrder) {
		return fmt.Errorf("%w: unknown pn-order %q", ErrInvalidParams, p.PNOrder)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{{"f-low", p.FLow}, {"f-upper", p.FUpper}, {"delta-f", p.DeltaF}, {"f0", p.F0}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) || v.val <= 0 {
			return fmt.Errorf("%w: %s must be > 0 (got %g)", ErrInvalidParams, v.name, v.val)
		}
	}
	if p.FUpper <= p.FLow {
		return fmt.Errorf("%w: f-upper (%g) must be larger than f-low (%g)", ErrInvalidParams, p.FUpper, p.FLow)
	}
	if p.DeltaF >= p.FUpper-p.FLow {
		return fmt.Errorf("%w: delta-f (%g) leaves no frequency bins in [%g, %g)", ErrInvalidParams, p.DeltaF, p.FLow, p.FUpper)
	}
	return nil
}
