// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"tmpltbank/internal/app"
	"tmpltbank/pkg/api"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func TestEndToEndHCLConfig(t *testing.T) {
	cfg := write(t, "bank.hcl", `
metric {
  pn_order = "threePointFivePN"
  f_low    = 15
  f_upper  = 1024
  delta_f  = 0.5
}

mass_range {
  min_mass1       = 1
  max_mass1       = 3
  min_mass2       = 1
  max_mass2       = 3
  min_chirp_mass  = 2
  max_ns_spin_mag = 0.05
  max_bh_spin_mag = 0.05
}
`)
	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--config", cfg, "--output", "yaml"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	var rep api.BankParamsV1
	if err := yaml.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, out.String())
	}
	want := 4 * 1.148698354997035 // 4 * 2^(1/5)
	if got := rep.MassRange.MinTotalMass; got < want*(1-1e-8) || got > want*(1+1e-8) {
		t.Fatalf("min total mass %v, want %v", got, want)
	}
	if rep.Metric.Dimension != 8 {
		t.Fatalf("dimension %d", rep.Metric.Dimension)
	}
}

func TestPointsFromGzip(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "pts.txt.gz")
	fh, err := os.Create(fn)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(fh)
	_, _ = zw.Write([]byte("# m1 m2 s1z s2z\n1.4 1.3 0.01 -0.02\n2.0 1.0 0.5 0\n"))
	_ = zw.Close()
	_ = fh.Close()

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--pn-order", "twoPN", "--f-low", "20", "--f-upper", "1024", "--delta-f", "1",
		"--min-mass1", "1", "--max-mass1", "2.5", "--min-mass2", "1", "--max-mass2", "2.5",
		"--max-ns-spin-mag", "0.05",
		fn,
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errBuf.String())
	}
	text := out.String()
	if !strings.Contains(text, "\t2\t1.4\t1.3\t0.01\t-0.02\tok\t") {
		t.Errorf("first point not accepted:\n%s", text)
	}
	if !strings.Contains(text, "\t3\t2\t1\t0.5\t0\tviolates:spin1z\t") {
		t.Errorf("second point not rejected on spin1z:\n%s", text)
	}
}
