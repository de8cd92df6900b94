package bankcli

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tmpltbank/internal/clibase"

	"tmpltbank-core/massrange"
)

var metricArgs = []string{"--pn-order", "threePointFivePN", "--f-low", "15", "--f-upper", "1024", "--delta-f", "0.5"}

func args(extra ...string) []string {
	return append(append([]string{}, metricArgs...), extra...)
}

func mustParse(t *testing.T, argv []string) Options {
	t.Helper()
	fs := NewFlagSet("tmpltbank-params")
	fs.SetOutput(io.Discard)
	o, err := ParseArgs(fs, argv)
	if err != nil {
		t.Fatalf("ParseArgs(%v): %v", argv, err)
	}
	return o
}

func parseErr(t *testing.T, argv []string) error {
	t.Helper()
	fs := NewFlagSet("tmpltbank-params")
	fs.SetOutput(io.Discard)
	_, err := ParseArgs(fs, argv)
	if err == nil {
		t.Fatalf("ParseArgs(%v): expected error", argv)
	}
	return err
}

func TestRequiredOptions(t *testing.T) {
	masses := []string{"--min-mass1", "1", "--max-mass1", "2", "--min-mass2", "1", "--max-mass2", "2", "--max-ns-spin-mag", "0.05"}
	cases := []struct {
		name string
		argv []string
		want string
	}{
		{"no pn order", []string{"--f-low", "15", "--f-upper", "1024", "--delta-f", "1"}, "--pn-order"},
		{"bad pn order", append([]string{"--pn-order", "fourPN", "--f-low", "15"}, masses...), "invalid --pn-order"},
		{"no f-low", append([]string{"--pn-order", "twoPN", "--f-upper", "1024", "--delta-f", "1"}, masses...), "--f-low"},
		{"zero f-low", append([]string{"--pn-order", "twoPN", "--f-low", "0", "--f-upper", "1024", "--delta-f", "1"}, masses...), "--f-low"},
		{"no delta-f", append([]string{"--pn-order", "twoPN", "--f-low", "15", "--f-upper", "1024"}, masses...), "--delta-f"},
		{"no max-mass2", args("--min-mass1", "1", "--max-mass1", "2", "--min-mass2", "1"), "--max-mass2"},
		{"inverted minimum", args("--min-mass1", "1", "--max-mass1", "4", "--min-mass2", "2", "--max-mass2", "3"), "--min-mass1"},
		{"bad output", args(append(masses, "--output", "xml")...), "--output"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := parseErr(t, tc.argv)
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestSpinLimitRules(t *testing.T) {
	t.Run("bbh copies bh bound to ns", func(t *testing.T) {
		o := mustParse(t, args("--min-mass1", "5", "--max-mass1", "20", "--min-mass2", "5", "--max-mass2", "20", "--max-bh-spin-mag", "0.9"))
		if o.Mass.MaxNSSpinMag.Value() != 0.9 {
			t.Fatalf("ns spin = %v, want 0.9", o.Mass.MaxNSSpinMag.Value())
		}
	})
	t.Run("bns copies ns bound to bh", func(t *testing.T) {
		o := mustParse(t, args("--min-mass1", "1", "--max-mass1", "2", "--min-mass2", "1", "--max-mass2", "2", "--max-ns-spin-mag", "0.05"))
		if o.Mass.MaxBHSpinMag.Value() != 0.05 {
			t.Fatalf("bh spin = %v, want 0.05", o.Mass.MaxBHSpinMag.Value())
		}
	})
	t.Run("mixed range needs both", func(t *testing.T) {
		err := parseErr(t, args("--min-mass1", "1", "--max-mass1", "20", "--min-mass2", "1", "--max-mass2", "20", "--max-ns-spin-mag", "0.05"))
		if !strings.Contains(err.Error(), "--max-bh-spin-mag") {
			t.Fatalf("unexpected error %v", err)
		}
		err = parseErr(t, args("--min-mass1", "1", "--max-mass1", "20", "--min-mass2", "1", "--max-mass2", "20", "--max-bh-spin-mag", "0.9"))
		if !strings.Contains(err.Error(), "--max-ns-spin-mag") {
			t.Fatalf("unexpected error %v", err)
		}
	})
	t.Run("max mass1 on boundary is a black hole", func(t *testing.T) {
		err := parseErr(t, args("--min-mass1", "1", "--max-mass1", "3", "--min-mass2", "1", "--max-mass2", "2", "--max-ns-spin-mag", "0.05"))
		if !strings.Contains(err.Error(), "--max-bh-spin-mag") {
			t.Fatalf("unexpected error %v", err)
		}
	})
	t.Run("custom boundary", func(t *testing.T) {
		o := mustParse(t, args("--min-mass1", "1", "--max-mass1", "4", "--min-mass2", "1", "--max-mass2", "4",
			"--ns-bh-boundary-mass", "5", "--max-ns-spin-mag", "0.4"))
		if o.Mass.MaxBHSpinMag.Value() != 0.4 {
			t.Fatalf("bh spin = %v, want 0.4", o.Mass.MaxBHSpinMag.Value())
		}
	})
	t.Run("nsbh flag needs both", func(t *testing.T) {
		err := parseErr(t, args("--min-mass1", "5", "--max-mass1", "20", "--min-mass2", "5", "--max-mass2", "20",
			"--nsbh-flag", "--max-bh-spin-mag", "0.9"))
		if !strings.Contains(err.Error(), "--max-ns-spin-mag") {
			t.Fatalf("unexpected error %v", err)
		}
	})
	t.Run("nsbh flag excludes boundary", func(t *testing.T) {
		err := parseErr(t, args("--min-mass1", "5", "--max-mass1", "20", "--min-mass2", "1", "--max-mass2", "2",
			"--nsbh-flag", "--ns-bh-boundary-mass", "4", "--max-bh-spin-mag", "0.9", "--max-ns-spin-mag", "0.05"))
		if !strings.Contains(err.Error(), "mutually exclusive") {
			t.Fatalf("unexpected error %v", err)
		}
	})
}

func TestNonSpin(t *testing.T) {
	o := mustParse(t, args("--non-spin", "--min-mass1", "1", "--max-mass1", "20", "--min-mass2", "1", "--max-mass2", "20"))
	p, err := MassRangeParams(&o.Mass, o.NonSpin)
	if err != nil {
		t.Fatal(err)
	}
	if s := p.Spins(); s.MaxNSSpinMag != 0 || s.MaxBHSpinMag != 0 {
		t.Fatalf("non-spin bank has spin limits %+v", s)
	}

	err = parseErr(t, args("--non-spin", "--min-mass1", "1", "--max-mass1", "20", "--min-mass2", "1", "--max-mass2", "20",
		"--max-bh-spin-mag", "0.9"))
	if !strings.Contains(err.Error(), "--non-spin") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestEthincaRules(t *testing.T) {
	bbh := []string{"--min-mass1", "5", "--max-mass1", "20", "--min-mass2", "5", "--max-mass2", "20", "--max-bh-spin-mag", "0.9"}
	cases := []struct {
		name string
		argv []string
		want string // "" means accepted
	}{
		{"cutoff without flag", args(append(bbh, "--ethinca-cutoff", "SchwarzISCO")...), "--ethinca-cutoff"},
		{"order without flag", args(append(bbh, "--ethinca-pn-order", "twoPN")...), "--ethinca-pn-order"},
		{"f-low without flag", args(append(bbh, "--ethinca-f-low", "15")...), "--ethinca-f-low"},
		{"flag without cutoff", args(append(bbh, "--calculate-ethinca-metric", "--f0", "15")...), "--ethinca-cutoff"},
		{"bad cutoff", args(append(bbh, "--calculate-ethinca-metric", "--f0", "15", "--ethinca-cutoff", "ISCO")...), "--ethinca-cutoff"},
		{"zero step", args(append(bbh, "--calculate-ethinca-metric", "--f0", "15", "--ethinca-cutoff", "ERD",
			"--ethinca-frequency-step", "0")...), "--ethinca-frequency-step"},
		{"bank-only order", args(append(bbh, "--calculate-ethinca-metric", "--f0", "15", "--ethinca-cutoff", "ERD",
			"--ethinca-pn-order", "taylorF4_45PN")...), "--ethinca-pn-order"},
		{"f0 differs from f-low", args(append(bbh, "--calculate-ethinca-metric", "--ethinca-cutoff", "ERD")...), "--f0"},
		{"f-low differs", args(append(bbh, "--calculate-ethinca-metric", "--f0", "15", "--ethinca-cutoff", "ERD",
			"--ethinca-f-low", "20")...), "--ethinca-f-low"},
		{"accepted", args(append(bbh, "--calculate-ethinca-metric", "--f0", "15", "--ethinca-cutoff", "ERD",
			"--ethinca-f-low", "15")...), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.want == "" {
				o := mustParse(t, tc.argv)
				m, err := MetricParams(&o.Metric)
				if err != nil {
					t.Fatal(err)
				}
				e, err := EthincaParams(&o.Ethinca, m)
				if err != nil {
					t.Fatal(err)
				}
				if e.PNOrder != "threePointFivePN" || e.FreqStep != DefaultEthincaFreqStep {
					t.Fatalf("ethinca params %+v", e)
				}
				return
			}
			err := parseErr(t, tc.argv)
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "bank.yaml")
	body := `
metric:
  pn_order: twoPN
  f_low: 20
  f_upper: 1024
  delta_f: 1
mass_range:
  min_mass1: 5
  max_mass1: 20
  min_mass2: 5
  max_mass2: 20
  max_bh_spin_mag: 0.5
`
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	o := mustParse(t, []string{"--config", cfg, "--f-low", "30", "--max-mass1", "25"})
	if o.Metric.FLow.Value() != 30 || o.Mass.MaxMass1.Value() != 25 {
		t.Fatalf("command line did not win: f-low=%v max-mass1=%v", o.Metric.FLow.Value(), o.Mass.MaxMass1.Value())
	}
	if o.Metric.PNOrder != "twoPN" || o.Mass.MaxBHSpinMag.Value() != 0.5 {
		t.Fatalf("config not applied: %+v", o.Metric)
	}
	for _, name := range o.ConfigApplied {
		if name == "f-low" || name == "max-mass1" {
			t.Fatalf("%s reported as applied from config", name)
		}
	}

	p, err := MassRangeParams(&o.Mass, o.NonSpin)
	if err != nil {
		t.Fatal(err)
	}
	if b := p.Bounds(); b.MaxTotMass != 45 {
		t.Fatalf("max total mass = %v, want 45", b.MaxTotMass)
	}
}

func TestPositionalsArePointFiles(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("10 5\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	o := mustParse(t, args("--min-mass1", "5", "--max-mass1", "20", "--min-mass2", "5", "--max-mass2", "20",
		"--max-bh-spin-mag", "0.9", filepath.Join(dir, "*.txt"), "--points", "10,5"))
	if len(o.PointFiles) != 2 || len(o.PointSpecs) != 1 {
		t.Fatalf("point files %v specs %v", o.PointFiles, o.PointSpecs)
	}
}

func TestHelpVersionExamples(t *testing.T) {
	fs := NewFlagSet("tmpltbank-params")
	fs.SetOutput(io.Discard)
	if _, err := ParseArgs(fs, []string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("-h: %v", err)
	}
	fs = NewFlagSet("tmpltbank-params")
	fs.SetOutput(io.Discard)
	if _, err := ParseArgs(fs, []string{"--examples"}); !errors.Is(err, clibase.ErrPrintedAndExitOK) {
		t.Fatalf("--examples: %v", err)
	}
	o := mustParse(t, []string{"--version"})
	if !o.Version {
		t.Fatal("version not set")
	}
}

func TestHelpIsGroupedAndWrapped(t *testing.T) {
	fs := NewFlagSet("tmpltbank-params")
	var sb strings.Builder
	fs.SetOutput(io.Discard)
	_, _ = ParseArgs(fs, []string{"-h"})
	fs.SetOutput(&sb)
	fs.Usage()
	out := sb.String()
	for _, want := range []string{
		"Options related to calculating the parameter space metric:",
		"Options related to mass and spin limits for bank generation:",
		"Ethinca metric options:",
		"--min-mass1 float",
		"--nsbh-flag\n",
		"--max-eta float",
		"[0.25]",
		"zeroPN",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("help output lacks %q", want)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 90 {
			t.Errorf("help line not wrapped: %q", line)
		}
	}
}

func TestMassRangeParamsInfeasible(t *testing.T) {
	o := mustParse(t, args("--min-mass1", "1", "--max-mass1", "2", "--min-mass2", "1", "--max-mass2", "2",
		"--max-ns-spin-mag", "0.05", "--min-chirp-mass", "5"))
	_, err := MassRangeParams(&o.Mass, o.NonSpin)
	if !errors.Is(err, massrange.ErrInfeasible) {
		t.Fatalf("want ErrInfeasible, got %v", err)
	}
}
