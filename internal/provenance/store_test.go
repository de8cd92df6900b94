package provenance

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordGetRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	in := Run{
		Tool:      "tmpltbank-params",
		Argv:      []string{"--pn-order", "twoPN", "--f-low", "15"},
		Params:    json.RawMessage(`{"metric":{"pn_order":"twoPN"}}`),
		Outcome:   OutcomeOK,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC),
	}
	rec, err := s.Record(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Fatal("Record did not assign an id")
	}
	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGetNotFound(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRecentNewestFirst(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	outcomes := []Outcome{OutcomeOK, OutcomeInvalid, OutcomeInfeasible}
	for _, o := range outcomes {
		r := Run{Tool: "tmpltbank-params", Outcome: o}
		if o != OutcomeOK {
			r.Error = "rejected: " + string(o)
		}
		if _, err := s.Record(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Outcome != OutcomeInfeasible || got[1].Outcome != OutcomeInvalid {
		t.Fatalf("Recent = %+v", got)
	}
	if got[0].Params != nil || got[0].Error != "rejected: infeasible" {
		t.Fatalf("null columns not restored: %+v", got[0])
	}
	if got[0].Argv == nil || len(got[0].Argv) != 0 {
		t.Fatalf("argv = %#v, want empty slice", got[0].Argv)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := s.Record(context.Background(), Run{Tool: "t", Outcome: OutcomeOK})
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Get(context.Background(), rec.ID); err != nil {
		t.Fatal(err)
	}
}
