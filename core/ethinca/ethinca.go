// core/ethinca/ethinca.go
// Settings of the auxiliary ethinca metric (coincidence-test metric
// components) and their cross-check against the bank metric.

package ethinca

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"tmpltbank-core/metric"
	"tmpltbank-core/pnutils"
)

// ErrConfig reports inconsistent ethinca settings.
var ErrConfig = errors.New("ethinca configuration")

// Params are the ethinca metric settings. An empty PNOrder inherits the bank
// metric order in CheckAgainstBank; FLow == 0 means "same as the bank".
type Params struct {
	PNOrder   string
	Cutoff    string
	FreqStep  float64
	FLow      float64
	DoEthinca bool
}

// New validates the settings. Without doEthinca the other fields are kept
// but not checked.
func New(pnOrder, cutoff string, freqStep, fLow float64, doEthinca bool) (Params, error) {
	p := Params{PNOrder: pnOrder, Cutoff: cutoff, FreqStep: freqStep, FLow: fLow, DoEthinca: doEthinca}
	if !doEthinca {
		return p, nil
	}
	if !pnutils.IsFrequencyCutoff(cutoff) {
		return Params{}, fmt.Errorf("%w: need a valid cutoff formula to calculate ethinca, possible values are %s",
			ErrConfig, strings.Join(pnutils.FrequencyCutoffNames(), ", "))
	}
	if !(freqStep > 0) {
		return Params{}, fmt.Errorf("%w: need a positive cutoff frequency step to calculate ethinca (got %g)", ErrConfig, freqStep)
	}
	if pnOrder != "" {
		if _, ok := pnutils.EthincaOrderIndex(pnOrder); !ok {
			return Params{}, fmt.Errorf("%w: pn-order %q is not usable for ethinca, possible values are %s",
				ErrConfig, pnOrder, strings.Join(pnutils.EthincaOrders(), ", "))
		}
	}
	if fLow < 0 {
		return Params{}, fmt.Errorf("%w: f-low must be >= 0 (got %g)", ErrConfig, fLow)
	}
	return p, nil
}

// CheckAgainstBank cross-checks e against the bank metric settings and
// returns e with an unset PN order replaced by the bank order.
func CheckAgainstBank(e Params, m metric.Params) (Params, error) {
	if !e.DoEthinca {
		return e, nil
	}
	if m.F0 != m.FLow {
		return Params{}, fmt.Errorf("%w: if calculating ethinca metric, f0 (%g) and f-low (%g) must be equal",
			ErrConfig, m.F0, m.FLow)
	}
	if e.FLow != 0 && e.FLow != m.FLow {
		return Params{}, fmt.Errorf("%w: ethinca f-low %g differs from the bank metric f-low %g",
			ErrConfig, e.FLow, m.FLow)
	}
	if e.PNOrder == "" {
		if _, ok := pnutils.EthincaOrderIndex(m.PNOrder); !ok {
			return Params{}, fmt.Errorf("%w: bank pn-order %q cannot be inherited by ethinca", ErrConfig, m.PNOrder)
		}
		e.PNOrder = m.PNOrder
	}
	return e, nil
}

// FMax returns the upper frequency cutoff assigned to a template: the
// analytic cutoff for (m1, m2) rounded to the nearest multiple of FreqStep.
func (e Params) FMax(m1, m2 float64) (float64, error) {
	f, ok := pnutils.Cutoff(e.Cutoff)
	if !ok {
		return 0, fmt.Errorf("%w: unknown cutoff formula %q", ErrConfig, e.Cutoff)
	}
	if !(e.FreqStep > 0) {
		return 0, fmt.Errorf("%w: frequency step must be > 0", ErrConfig)
	}
	v := f(m1, m2)
	return math.Max(e.FreqStep, math.Round(v/e.FreqStep)*e.FreqStep), nil
}
