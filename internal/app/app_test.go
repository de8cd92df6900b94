package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tmpltbank/internal/provenance"
	"tmpltbank/pkg/api"
)

var bbh = []string{
	"--pn-order", "twoPN", "--f-low", "15", "--f0", "15", "--f-upper", "512", "--delta-f", "1",
	"--min-mass1", "5", "--max-mass1", "20", "--min-mass2", "5", "--max-mass2", "20",
	"--max-bh-spin-mag", "0.9",
}

func argv(extra ...string) []string {
	return append(append([]string{}, bbh...), extra...)
}

func run(t *testing.T, args []string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := Run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func writePSD(t *testing.T) string {
	t.Helper()
	var sb strings.Builder
	for f := 0; f <= 1024; f += 2 {
		fmt.Fprintf(&sb, "%d %g\n", f, 1e-46*(1+(40.0/float64(f+1))*(40.0/float64(f+1))))
	}
	p := filepath.Join(t.TempDir(), "psd.txt")
	if err := os.WriteFile(p, []byte(sb.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNoArgsPrintsHelp(t *testing.T) {
	code, out, _ := run(t, nil)
	if code != 0 || !strings.Contains(out, "Options related to calculating the parameter space metric") {
		t.Fatalf("code=%d out=%q", code, out)
	}
}

func TestVersionAndExamples(t *testing.T) {
	code, out, _ := run(t, []string{"--version"})
	if code != 0 || !strings.HasPrefix(out, "tmpltbank-params version ") {
		t.Fatalf("version: code=%d out=%q", code, out)
	}
	code, out, _ = run(t, []string{"--examples"})
	if code != 0 || !strings.Contains(out, "quickstart") {
		t.Fatalf("examples: code=%d out=%q", code, out)
	}
}

func TestExitCodes(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code int
	}{
		{"ok", argv(), 0},
		{"missing required", []string{"--pn-order", "twoPN"}, 2},
		{"unknown flag", argv("--no-such-flag"), 2},
		{"infeasible", argv("--max-chirp-mass", "2"), 4},
		{"missing point file", argv(filepath.Join(t.TempDir(), "missing.txt")), 3},
		{"bad point", argv("--points", "10,x"), 2},
		{"missing psd", argv("--psd-file", filepath.Join(t.TempDir(), "missing.txt")), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, stderr := run(t, tc.args)
			if code != tc.code {
				t.Fatalf("exit %d, want %d (stderr %q)", code, tc.code, stderr)
			}
			if tc.code != 0 && !strings.Contains(stderr, "error:") {
				t.Fatalf("stderr lacks error: %q", stderr)
			}
		})
	}
}

func TestTextReport(t *testing.T) {
	code, out, stderr := run(t, argv("--min-chirp-mass", "8", "--points", "12,10", "--points", "6,5"))
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, want := range []string{
		"metric.pn_order\ttwoPN\n",
		"restriction\tmin-chirp-mass\t8\tmin-total-mass\tapplied\t",
		"point\t--points\t0\t12\t10\t0\t0\tok\t",
		"point\t--points\t0\t6\t5\t0\t0\tviolates:total-mass\t",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if !strings.Contains(stderr, "WARN: 1 of 2 points lie outside the mass range") {
		t.Errorf("missing warning in %q", stderr)
	}
}

func TestJSONWithMetricProducts(t *testing.T) {
	psd := writePSD(t)
	code, out, stderr := run(t, argv("--psd-file", psd, "--output", "json", "-q", "--threads", "2",
		"--calculate-ethinca-metric", "--ethinca-cutoff", "SchwarzISCO",
		"--points", "10,5", "--points", "20,20", "--points", "7,6"))
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var rep api.BankParamsV1
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if rep.Products == nil || rep.Products.FMax != 512 || len(rep.Products.Evals) != 4 {
		t.Fatalf("products %+v", rep.Products)
	}
	if rep.Ethinca == nil || rep.Ethinca.PNOrder != "twoPN" {
		t.Fatalf("ethinca %+v", rep.Ethinca)
	}
	if len(rep.Points) != 3 {
		t.Fatalf("points %+v", rep.Points)
	}
	for _, p := range rep.Points {
		if len(p.Mu) != 4 || len(p.Xi) != 4 {
			t.Fatalf("point %+v lacks mu/xi", p)
		}
		if p.EthincaFMax <= 15 || p.EthincaFMax > 512 || math.Mod(p.EthincaFMax, 10) != 0 && p.EthincaFMax != 512 {
			t.Fatalf("ethinca f_max %v", p.EthincaFMax)
		}
	}
	if len(rep.Products.Cutoffs) < 2 {
		t.Fatalf("expected per-point cutoffs, got %v", rep.Products.Cutoffs)
	}
}

func TestRecordDB(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	code, out, stderr := run(t, argv("--record-db", db, "--output", "json"))
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var rep api.BankParamsV1
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatal(err)
	}
	if rep.RunID == "" {
		t.Fatal("report lacks run_id")
	}

	if code, _, _ := run(t, argv("--record-db", db, "--max-chirp-mass", "2")); code != 4 {
		t.Fatalf("infeasible exit %d", code)
	}
	if code, _, _ := run(t, []string{"--record-db", db, "--pn-order", "twoPN"}); code != 2 {
		t.Fatalf("invalid exit %d", code)
	}

	store, err := provenance.Open(db)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	runs, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("recorded %d runs, want 3", len(runs))
	}
	if runs[0].Outcome != provenance.OutcomeInvalid || runs[1].Outcome != provenance.OutcomeInfeasible || runs[2].Outcome != provenance.OutcomeOK {
		t.Fatalf("outcomes %s %s %s", runs[0].Outcome, runs[1].Outcome, runs[2].Outcome)
	}
	if runs[2].ID != rep.RunID || len(runs[2].Params) == 0 {
		t.Fatalf("ok run %+v does not match report %s", runs[2], rep.RunID)
	}
	if !strings.Contains(runs[1].Error, "max-chirp-mass") {
		t.Fatalf("infeasible error text %q", runs[1].Error)
	}
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errBuf bytes.Buffer
	code := RunContext(ctx, argv("--psd-file", writePSD(t)), &out, &errBuf)
	if code != exitCanceled {
		t.Fatalf("exit %d, want %d", code, exitCanceled)
	}
}
