package bankcli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"tmpltbank/internal/clibase"

	"tmpltbank-core/ethinca"
	"tmpltbank-core/metric"
	"tmpltbank-core/pnutils"
)

// DefaultEthincaFreqStep is the default spacing of ethinca f_max values (Hz).
const DefaultEthincaFreqStep = 10.0

// EthincaOptions control calculation of the ethinca metric components.
type EthincaOptions struct {
	Calculate bool
	PNOrder   string
	Cutoff    string
	FreqStep  float64
	FLow      OptionalFloat
}

func RegisterEthinca(fs *flag.FlagSet, o *EthincaOptions) {
	fs.BoolVar(&o.Calculate, "calculate-ethinca-metric", false,
		"If given, the ethinca metric will be calculated and reported for each candidate point. OPTIONAL")
	fs.StringVar(&o.PNOrder, "ethinca-pn-order", "",
		"Specify a PN order to be used in calculating the ethinca metric. OPTIONAL: if not specified, the "+
			"same order will be used as for the bank metric. Choices: "+strings.Join(pnutils.EthincaOrders(), ", "))
	fs.StringVar(&o.Cutoff, "ethinca-cutoff", "",
		"Specify an upper frequency cutoff formula for the ethinca metric calculation. REQUIRED if the "+
			"calculate-ethinca-metric option is given. Choices: "+strings.Join(pnutils.FrequencyCutoffNames(), ", "))
	fs.Float64Var(&o.FreqStep, "ethinca-frequency-step", DefaultEthincaFreqStep,
		"Control the precision with which the upper frequency cutoff is specified. For speed, the metric is "+
			"calculated only for discrete f_max values with a spacing given by this option. Each template is "+
			"then assigned the result for the f_max closest to its analytical cutoff formula. OPTIONAL. UNITS=Hz")
	fs.Var(&o.FLow, "ethinca-f-low",
		"Lower frequency cutoff for the ethinca metric. OPTIONAL, must equal --f-low if given. UNITS=Hz")
}

// EthincaGroup describes the ethinca flags for help output.
func EthincaGroup() clibase.Group {
	return clibase.Group{
		Title:       "Ethinca metric options",
		Description: "Options used in the calculation of Gamma metric components for the ethinca coincidence test.",
		Flags: []string{
			"calculate-ethinca-metric", "ethinca-pn-order", "ethinca-cutoff",
			"ethinca-frequency-step", "ethinca-f-low",
		},
	}
}

// VerifyEthinca checks that the ethinca options are complete and that none
// are given without --calculate-ethinca-metric.
func VerifyEthinca(o *EthincaOptions) error {
	if !o.Calculate {
		switch {
		case o.Cutoff != "":
			return errors.New("can't specify --ethinca-cutoff if not calculating ethinca metric")
		case o.PNOrder != "":
			return errors.New("can't specify --ethinca-pn-order if not calculating ethinca metric")
		case o.FLow.IsSet():
			return errors.New("can't specify --ethinca-f-low if not calculating ethinca metric")
		}
		return nil
	}
	if !pnutils.IsFrequencyCutoff(o.Cutoff) {
		return fmt.Errorf("need a valid --ethinca-cutoff to calculate ethinca (choices: %s)",
			strings.Join(pnutils.FrequencyCutoffNames(), ", "))
	}
	if !(o.FreqStep > 0) {
		return errors.New("--ethinca-frequency-step must be > 0")
	}
	if o.PNOrder != "" {
		if _, ok := pnutils.EthincaOrderIndex(o.PNOrder); !ok {
			return fmt.Errorf("invalid --ethinca-pn-order %q (choices: %s)",
				o.PNOrder, strings.Join(pnutils.EthincaOrders(), ", "))
		}
	}
	return nil
}

// CheckEthincaAgainstBankOpts cross-checks the ethinca options against the
// metric options before any core parameters are built.
func CheckEthincaAgainstBankOpts(e *EthincaOptions, m *MetricOptions) error {
	if !e.Calculate {
		return nil
	}
	if m.F0 != m.FLow.Value() {
		return fmt.Errorf("if calculating ethinca metric, --f0 (%g) and --f-low (%g) must be equal",
			m.F0, m.FLow.Value())
	}
	if v, ok := e.FLow.Get(); ok && v != m.FLow.Value() {
		return fmt.Errorf("--ethinca-f-low (%g) must equal --f-low (%g)", v, m.FLow.Value())
	}
	return nil
}

// EthincaParams converts verified options and resolves them against the
// bank metric.
func EthincaParams(o *EthincaOptions, m metric.Params) (ethinca.Params, error) {
	e, err := ethinca.New(o.PNOrder, o.Cutoff, o.FreqStep, o.FLow.Value(), o.Calculate)
	if err != nil {
		return ethinca.Params{}, err
	}
	return ethinca.CheckAgainstBank(e, m)
}
