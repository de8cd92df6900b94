// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"tmpltbank/internal/appshell"
	"tmpltbank/internal/bankcli"
	"tmpltbank/internal/clibase"
	"tmpltbank/internal/cmdutil"
	"tmpltbank/internal/jsonutil"
	"tmpltbank/internal/provenance"
	"tmpltbank/internal/report"
	"tmpltbank/internal/version"
)

const toolName = "tmpltbank-params"

// Exit codes.
const (
	exitOK         = 0
	exitUsage      = 2
	exitIO         = 3
	exitInfeasible = 4
	exitCanceled   = appshell.ExitCanceled
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := bankcli.NewFlagSet(toolName)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := bankcli.ParseArgs(fs, argv)
	if err != nil {
		switch {
		case errors.Is(err, clibase.ErrPrintedAndExitOK):
			bankcli.PrintExamples(outw, toolName)
			return flush(outw, stderr, exitOK)
		case errors.Is(err, flag.ErrHelp):
			fs.SetOutput(outw)
			fs.Usage()
			return flush(outw, stderr, exitOK)
		}
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_, _ = fmt.Fprintf(stderr, "Run '%s -h' for usage.\n", toolName)
		if opts.RecordDB != "" {
			recordFailure(parent, opts.RecordDB, argv, provenance.OutcomeInvalid, err, stderr)
		}
		return exitUsage
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", toolName, version.Version)
		return flush(outw, stderr, exitOK)
	}

	log := cmdutil.NewLogger(stderr, opts.Quiet, opts.Verbose)
	if opts.ConfigFile != "" {
		log.Debug("config applied", "file", opts.ConfigFile, "flags", opts.ConfigApplied)
	}

	rep, err := configure(parent, opts, log, stderr)
	if err != nil {
		code, outcome := classify(err)
		_, _ = fmt.Fprintln(stderr, "error:", err)
		if opts.RecordDB != "" && outcome != "" {
			recordFailure(parent, opts.RecordDB, argv, outcome, err, stderr)
		}
		return code
	}

	if opts.RecordDB != "" {
		id, err := recordSuccess(parent, opts.RecordDB, argv, rep)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "error:", err)
			return exitIO
		}
		rep.RunID = id
		log.Debug("run recorded", "db", opts.RecordDB, "run_id", id)
	}

	if err := report.Write(outw, opts.Output, rep); report.IsBrokenPipe(err) {
		return exitOK
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitIO
	}
	return flush(outw, stderr, exitOK)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); report.IsBrokenPipe(e) {
		return exitOK
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return exitIO
	}
	return code
}

func recordSuccess(ctx context.Context, path string, argv []string, rep any) (string, error) {
	params, err := jsonutil.Compact(rep)
	if err != nil {
		return "", fmt.Errorf("provenance: %w", err)
	}
	store, err := provenance.Open(path)
	if err != nil {
		return "", fmt.Errorf("provenance: %w", err)
	}
	defer func() { _ = store.Close() }()
	run, err := store.Record(ctx, provenance.Run{
		Tool:    toolName,
		Argv:    argv,
		Params:  params,
		Outcome: provenance.OutcomeOK,
	})
	if err != nil {
		return "", fmt.Errorf("provenance: %w", err)
	}
	return run.ID, nil
}

// recordFailure stores a rejected configuration. Failing to record only
// warns: the configuration error is what the caller reports.
func recordFailure(ctx context.Context, path string, argv []string, outcome provenance.Outcome, cause error, stderr io.Writer) {
	store, err := provenance.Open(path)
	if err == nil {
		_, err = store.Record(ctx, provenance.Run{
			Tool:    toolName,
			Argv:    argv,
			Outcome: outcome,
			Error:   cause.Error(),
		})
		_ = store.Close()
	}
	if err != nil {
		cmdutil.Warnf(stderr, false, "provenance: %v", err)
	}
}
