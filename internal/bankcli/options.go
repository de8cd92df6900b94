package bankcli

import (
	"flag"
	"fmt"
	"io"

	"tmpltbank/internal/bankconfig"
	"tmpltbank/internal/clibase"
	"tmpltbank/internal/cliutil"
)

// spinFlags are rejected together with --non-spin.
var spinFlags = []string{"max-ns-spin-mag", "max-bh-spin-mag", "ns-bh-boundary-mass", "nsbh-flag"}

type Options struct {
	clibase.Common

	Metric  MetricOptions
	Mass    MassOptions
	Ethinca EthincaOptions

	// ConfigApplied lists the flags filled from --config.
	ConfigApplied []string
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	common := clibase.CommonGroups()
	groups := []clibase.Group{common[0], MetricGroup(), MassRangeGroup(false), EthincaGroup()}
	groups = append(groups, common[1:]...)
	clibase.UsageGroups(fs, name, func(out io.Writer) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] --pn-order P --f-low F --f-upper F --delta-f F \\\n", name)
		_, _ = fmt.Fprintln(out, "      --min-mass1 M --max-mass1 M --min-mass2 M --max-mass2 M [points.txt ...]")
		_, _ = fmt.Fprintf(out, "  %s --config bank.yaml [options] [points.txt[.gz] | -]\n", name)
		_, _ = fmt.Fprintln(out, "\nCommand-line options override values read from --config.")
	}, groups)
	return fs
}

// PrintExamples prints a short quickstart for the bank parameter tool.
func PrintExamples(out io.Writer, name string) {
	clibase.PrintExamples(out, name, func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Resolve an aligned-spin BNS/NSBH/BBH range and print it:")
		_, _ = fmt.Fprintf(w, "  %s \\\n", name)
		_, _ = fmt.Fprintln(w, "    --pn-order threePointFivePN --f-low 15 --f-upper 1024 --delta-f 0.1 \\")
		_, _ = fmt.Fprintln(w, "    --min-mass1 1 --max-mass1 20 --min-mass2 1 --max-mass2 20 \\")
		_, _ = fmt.Fprintln(w, "    --max-ns-spin-mag 0.05 --max-bh-spin-mag 0.98 --min-chirp-mass 2")
		_, _ = fmt.Fprintln(w, "\nClassify candidate points and compute metric products from a PSD:")
		_, _ = fmt.Fprintf(w, "  %s --config bank.yaml --psd-file aligo.txt --points 10,5 --output json\n", name)
	})
}

// ParseArgs registers every option group on fs, parses argv, fills unset
// flags from --config and verifies the result.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool

	clibase.Register(fs, &o.Common)
	RegisterMetric(fs, &o.Metric)
	RegisterMassRange(fs, &o.Mass, false)
	RegisterEthinca(fs, &o.Ethinca)
	fs.BoolVar(&help, "h", false, "show this help")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if o.Examples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}

	if o.ConfigFile != "" {
		cfg, err := bankconfig.Load(o.ConfigFile)
		if err != nil {
			return o, err
		}
		applied, err := cfg.Apply(fs, cliutil.SetFlags(fs))
		if err != nil {
			return o, err
		}
		o.ConfigApplied = applied
	}

	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return o, err
		}
		o.PointFiles = append(o.PointFiles, exp...)
	}
	if err := clibase.Validate(&o.Common); err != nil {
		return o, err
	}
	if o.NonSpin {
		set := cliutil.SetFlags(fs)
		for _, name := range spinFlags {
			if set[name] {
				return o, fmt.Errorf("--%s cannot be used with --non-spin", name)
			}
		}
	}
	if err := VerifyMetric(&o.Metric); err != nil {
		return o, err
	}
	if err := VerifyMassRange(&o.Mass, o.NonSpin); err != nil {
		return o, err
	}
	if err := VerifyEthinca(&o.Ethinca); err != nil {
		return o, err
	}
	if err := CheckEthincaAgainstBankOpts(&o.Ethinca, &o.Metric); err != nil {
		return o, err
	}
	return o, nil
}
