package appshell

import (
	"context"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInvokeEmptyArgvAsksForHelp(t *testing.T) {
	var got []string
	code := Invoke(context.Background(), func(_ context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		return 0
	}, nil, io.Discard, io.Discard)
	if code != 0 {
		t.Fatalf("code = %d", code)
	}
	if diff := cmp.Diff([]string{"-h"}, got); diff != "" {
		t.Fatalf("argv (-want +got):\n%s", diff)
	}
}

func TestInvokeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := func(context.Context, []string, io.Writer, io.Writer) int { return 0 }
	if code := Invoke(ctx, ok, []string{"x"}, io.Discard, io.Discard); code != ExitCanceled {
		t.Fatalf("code = %d, want %d", code, ExitCanceled)
	}
	usage := func(context.Context, []string, io.Writer, io.Writer) int { return 2 }
	if code := Invoke(ctx, usage, []string{"x"}, io.Discard, io.Discard); code != 2 {
		t.Fatalf("code = %d, want 2", code)
	}
}
