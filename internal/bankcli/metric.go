package bankcli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"tmpltbank/internal/clibase"

	"tmpltbank-core/metric"
	"tmpltbank-core/pnutils"
)

// MetricOptions are the parameter-space metric settings.
type MetricOptions struct {
	PNOrder string
	F0      float64
	FLow    OptionalFloat
	FUpper  OptionalFloat
	DeltaF  OptionalFloat
}

// RegisterMetric wires the metric flags onto fs.
func RegisterMetric(fs *flag.FlagSet, o *MetricOptions) {
	fs.StringVar(&o.PNOrder, "pn-order", "",
		"Determines the PN order to use. For a bank of non-spinning templates, spin-related terms in the "+
			"metric will be zero. REQUIRED. Choices:\n"+pnutils.OrdersHelp())
	fs.Float64Var(&o.F0, "f0", metric.DefaultF0,
		"f0 is used as a dynamic scaling factor when calculating integrals used in metric construction. "+
			"I.e. instead of integrating F(f) we integrate F(f/f0) then rescale by powers of f0. The default "+
			"value 70Hz should be fine for most applications. OPTIONAL. UNITS=Hz.\n"+
			"WARNING: if the ethinca metric is to be calculated, f0 must be set equal to f-low")
	fs.Var(&o.FLow, "f-low", "Lower frequency cutoff used in computing the parameter space metric. REQUIRED. UNITS=Hz")
	fs.Var(&o.FUpper, "f-upper", "Upper frequency cutoff used in computing the parameter space metric. REQUIRED. UNITS=Hz")
	fs.Var(&o.DeltaF, "delta-f",
		"Frequency spacing used in computing the parameter space metric: integrals of the form "+
			"int F(f) df are approximated as sum F(f) delta_f. REQUIRED. UNITS=Hz")
}

// MetricGroup describes the metric flags for help output.
func MetricGroup() clibase.Group {
	return clibase.Group{
		Title: "Options related to calculating the parameter space metric",
		Flags: []string{"pn-order", "f0", "f-low", "f-upper", "delta-f"},
	}
}

// VerifyMetric checks that every required metric option was supplied.
func VerifyMetric(o *MetricOptions) error {
	if o.PNOrder == "" {
		return errors.New("must supply --pn-order")
	}
	if !pnutils.IsTmpltbankOrder(o.PNOrder) {
		return fmt.Errorf("invalid --pn-order %q (choices: %s)", o.PNOrder, strings.Join(pnutils.TmpltbankOrders, ", "))
	}
	for _, f := range []struct {
		name string
		v    *OptionalFloat
	}{{"f-low", &o.FLow}, {"f-upper", &o.FUpper}, {"delta-f", &o.DeltaF}} {
		if v, ok := f.v.Get(); !ok || v == 0 {
			return fmt.Errorf("must supply --%s", f.name)
		}
	}
	if o.F0 <= 0 {
		return errors.New("--f0 must be > 0")
	}
	return nil
}

// MetricParams converts verified options.
func MetricParams(o *MetricOptions) (metric.Params, error) {
	return metric.NewParams(o.PNOrder, o.FLow.Value(), o.FUpper.Value(), o.DeltaF.Value(), o.F0)
}
