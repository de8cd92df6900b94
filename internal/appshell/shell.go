// Package appshell connects a tool's run function to the process: argv,
// the standard streams, SIGINT/SIGTERM and the exit status.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// ExitCanceled is the status of a run stopped by SIGINT or SIGTERM.
const ExitCanceled = 130

// RunFunc is the shape of every tool entry point.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

func Main(run RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Invoke(ctx, run, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Invoke calls run, asking for help when argv is empty. A run that reports
// success after ctx was canceled exits with ExitCanceled.
func Invoke(ctx context.Context, run RunFunc, argv []string, stdout, stderr io.Writer) int {
	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == 0 {
		code = ExitCanceled
	}
	return code
}
