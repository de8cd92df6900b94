// internal/report/registry.go
package report

import (
	"fmt"
	"io"
	"sort"

	"tmpltbank/pkg/api"
)

// Writers maps an --output format to its handler. Handlers register in
// init() blocks of the per-format files.
var Writers = map[string]func(w io.Writer, r *api.BankParamsV1) error{}

// Register adds (or replaces) the handler for format.
func Register(format string, fn func(io.Writer, *api.BankParamsV1) error) { Writers[format] = fn }

// Formats lists the registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(Writers))
	for f := range Writers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write renders r in format to w.
func Write(w io.Writer, format string, r *api.BankParamsV1) error {
	fn, ok := Writers[format]
	if !ok {
		return fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	return fn(w, r)
}
