// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"tmpltbank/internal/version"
)

const (
	helpWidth  = 78
	helpIndent = "        "
)

// Group is a titled block of flags in the help output.
type Group struct {
	Title       string
	Description string
	Flags       []string
}

// UsageGroups installs a shared Usage() handler on fs that prints the
// header, the tool-specific extra block and then one section per group.
// Descriptions and flag help are word-wrapped; explicit newlines are kept.
func UsageGroups(fs *flag.FlagSet, name string, extra func(out io.Writer), groups []Group) {
	fs.Usage = func() {
		out := fs.Output()

		// Header
		_, _ = fmt.Fprintf(out, "%s – template bank parameter configuration\n\n", name)
		_, _ = fmt.Fprintln(out, "Author:  Erick Samera (erick.samera@kpu.ca)")
		_, _ = fmt.Fprintln(out, "License: MIT")
		_, _ = fmt.Fprintf(out, "Version: %s\n", version.Version)

		if extra != nil {
			_, _ = fmt.Fprintln(out)
			extra(out)
		}
		for _, g := range groups {
			writeGroup(out, fs, g)
		}
	}
}

func writeGroup(out io.Writer, fs *flag.FlagSet, g Group) {
	_, _ = fmt.Fprintf(out, "\n%s:\n", g.Title)
	if g.Description != "" {
		_, _ = fmt.Fprintln(out, indent(wordwrap.WrapString(g.Description, helpWidth-2), "  "))
	}
	for _, name := range g.Flags {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		_, _ = fmt.Fprintf(out, "  %s\n", flagLine(f))
		usage := f.Usage
		if f.DefValue != "" && f.DefValue != "false" {
			usage += fmt.Sprintf(" [%s]", f.DefValue)
		}
		_, _ = fmt.Fprintln(out, indent(wordwrap.WrapString(usage, uint(helpWidth-len(helpIndent))), helpIndent))
	}
}

func flagLine(f *flag.Flag) string {
	typ := typeName(f)
	if typ == "" {
		return "--" + f.Name
	}
	return "--" + f.Name + " " + typ
}

func typeName(f *flag.Flag) string {
	if t, ok := f.Value.(interface{ TypeName() string }); ok {
		return t.TypeName()
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return ""
	}
	typ, _ := flag.UnquoteUsage(f)
	return typ
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
