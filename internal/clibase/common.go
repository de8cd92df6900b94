// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// Common holds CLI fields shared by the bank tools.
type Common struct {
	// Input
	ConfigFile string
	PointSpecs []string // inline "m1,m2[,s1z,s2z]"
	PointFiles []string
	PSDFile    string
	NonSpin    bool

	// Output
	Output   string // text|json|jsonl|yaml
	RecordDB string

	// Misc
	Threads  int
	Quiet    bool
	Verbose  bool
	Version  bool
	Examples bool
}

// sliceValue appends each value to a *[]string (for repeatable flags)
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, " ")
}
func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}
func (s *sliceValue) TypeName() string { return "list" }

// Register wires shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	// Inputs
	fs.StringVar(&c.ConfigFile, "config", "", "YAML (.yaml, .yml) or HCL (.hcl) file supplying defaults for any option not given on the command line")
	fs.Var(&sliceValue{dst: &c.PointSpecs}, "points", "Candidate point m1,m2[,s1z,s2z] to classify against the mass range. Repeatable.")
	fs.Var(&sliceValue{dst: &c.PointFiles}, "point-file", "File of candidate points (m1 m2 [s1z s2z] per row, '#' comments, .gz ok) or '-' for STDIN. Repeatable; positionals are also point files.")
	fs.StringVar(&c.PSDFile, "psd-file", "", "ASCII PSD (frequency value per row). When given, the metric products are computed and reported.")
	fs.BoolVar(&c.NonSpin, "non-spin", false, "Configure a non-spinning bank: spin options are rejected and spins are fixed at zero.")

	// Output
	fs.StringVar(&c.Output, "output", "text", "Output: text | json | jsonl (one point per line) | yaml")
	fs.StringVar(&c.Output, "o", "text", "alias of --output")
	fs.StringVar(&c.RecordDB, "record-db", "", "SQLite database to record the resolved configuration in")

	// Misc
	fs.IntVar(&c.Threads, "threads", 0, "Workers used to project points onto the metric (0 = all CPUs)")
	fs.BoolVar(&c.Quiet, "quiet", false, "Suppress non-essential warnings")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Verbose, "verbose", false, "Log resolution steps to stderr")
	fs.BoolVar(&c.Version, "v", false, "alias of --version")
	fs.BoolVar(&c.Version, "version", false, "Print version and exit")
	fs.BoolVar(&c.Examples, "examples", false, "Show quickstart examples and exit")
}

// CommonGroups describes the shared flags for help output.
func CommonGroups() []Group {
	return []Group{
		{Title: "Input", Flags: []string{"config", "points", "point-file", "psd-file", "non-spin"}},
		{Title: "Output", Flags: []string{"output", "record-db"}},
		{Title: "Miscellaneous", Flags: []string{"threads", "quiet", "verbose", "version", "examples"}},
	}
}

// Validate applies shared CLI invariants used by all tools.
func Validate(c *Common) error {
	switch c.Output {
	case "text", "json", "jsonl", "yaml":
	default:
		return fmt.Errorf("invalid --output %q", c.Output)
	}
	if c.Threads < 0 {
		return fmt.Errorf("--threads must be >= 0 (got %d)", c.Threads)
	}
	if c.Quiet && c.Verbose {
		return errors.New("--quiet conflicts with --verbose")
	}
	return nil
}
