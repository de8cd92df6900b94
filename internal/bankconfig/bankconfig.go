// Package bankconfig loads option defaults for the bank tools from a YAML or
// HCL file. Values from the file only fill flags that were not given on the
// command line.
package bankconfig

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gopkg.in/yaml.v3"

	"tmpltbank-core/massrange"
	"tmpltbank-core/metric"
)

// File is the top-level structure of a config file. Every field is optional.
type File struct {
	Metric    *Metric    `yaml:"metric" hcl:"metric,block"`
	MassRange *MassRange `yaml:"mass_range" hcl:"mass_range,block"`
	Ethinca   *Ethinca   `yaml:"ethinca" hcl:"ethinca,block"`
}

type Metric struct {
	PNOrder *string  `yaml:"pn_order" hcl:"pn_order,optional"`
	F0      *float64 `yaml:"f0" hcl:"f0,optional"`
	FLow    *float64 `yaml:"f_low" hcl:"f_low,optional"`
	FUpper  *float64 `yaml:"f_upper" hcl:"f_upper,optional"`
	DeltaF  *float64 `yaml:"delta_f" hcl:"delta_f,optional"`
}

type MassRange struct {
	MinMass1         *float64 `yaml:"min_mass1" hcl:"min_mass1,optional"`
	MaxMass1         *float64 `yaml:"max_mass1" hcl:"max_mass1,optional"`
	MinMass2         *float64 `yaml:"min_mass2" hcl:"min_mass2,optional"`
	MaxMass2         *float64 `yaml:"max_mass2" hcl:"max_mass2,optional"`
	MinTotalMass     *float64 `yaml:"min_total_mass" hcl:"min_total_mass,optional"`
	MaxTotalMass     *float64 `yaml:"max_total_mass" hcl:"max_total_mass,optional"`
	MinChirpMass     *float64 `yaml:"min_chirp_mass" hcl:"min_chirp_mass,optional"`
	MaxChirpMass     *float64 `yaml:"max_chirp_mass" hcl:"max_chirp_mass,optional"`
	MinEta           *float64 `yaml:"min_eta" hcl:"min_eta,optional"`
	MaxEta           *float64 `yaml:"max_eta" hcl:"max_eta,optional"`
	MaxNSSpinMag     *float64 `yaml:"max_ns_spin_mag" hcl:"max_ns_spin_mag,optional"`
	MaxBHSpinMag     *float64 `yaml:"max_bh_spin_mag" hcl:"max_bh_spin_mag,optional"`
	NSBHBoundaryMass *float64 `yaml:"ns_bh_boundary_mass" hcl:"ns_bh_boundary_mass,optional"`
	NSBHFlag         *bool    `yaml:"nsbh_flag" hcl:"nsbh_flag,optional"`
}

type Ethinca struct {
	Calculate     *bool    `yaml:"calculate_metric" hcl:"calculate_metric,optional"`
	PNOrder       *string  `yaml:"pn_order" hcl:"pn_order,optional"`
	Cutoff        *string  `yaml:"cutoff" hcl:"cutoff,optional"`
	FrequencyStep *float64 `yaml:"frequency_step" hcl:"frequency_step,optional"`
	FLow          *float64 `yaml:"f_low" hcl:"f_low,optional"`
}

// Setting is one flag value supplied by a config file.
type Setting struct {
	Flag  string
	Value string
}

// Load reads path, choosing the decoder from its extension.
func Load(path string) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	case ".hcl":
		return loadHCL(path)
	default:
		return nil, fmt.Errorf("bankconfig: %q: unsupported extension (want .yaml, .yml or .hcl)", path)
	}
}

func loadYAML(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bankconfig: read %q: %w", path, err)
	}
	f := &File{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("bankconfig: parse yaml %q: %w", path, err)
	}
	return f, nil
}

func loadHCL(path string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("bankconfig: parse hcl %q: %w", path, diags)
	}
	f := &File{}
	if diags := gohcl.DecodeBody(hclFile.Body, evalContext(), f); diags.HasErrors() {
		return nil, fmt.Errorf("bankconfig: decode hcl %q: %w", path, diags)
	}
	return f, nil
}

// evalContext exposes the built-in defaults and a few numeric functions to
// HCL expressions, e.g. f0 = default_f0 or max_total_mass = min(40, 2 * 18).
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_f0":                  cty.NumberFloatVal(metric.DefaultF0),
			"default_max_eta":             cty.NumberFloatVal(massrange.DefaultMaxEta),
			"default_ns_bh_boundary_mass": cty.NumberFloatVal(massrange.DefaultNSBHBoundaryMass),
		},
		Functions: map[string]function.Function{
			"min": stdlib.MinFunc,
			"max": stdlib.MaxFunc,
			"pow": stdlib.PowFunc,
			"abs": stdlib.AbsoluteFunc,
		},
	}
}

// Settings flattens f into flag assignments, in a stable order.
func (f *File) Settings() []Setting {
	var out []Setting
	str := func(name string, v *string) {
		if v != nil {
			out = append(out, Setting{name, *v})
		}
	}
	num := func(name string, v *float64) {
		if v != nil {
			out = append(out, Setting{name, strconv.FormatFloat(*v, 'g', -1, 64)})
		}
	}
	boolean := func(name string, v *bool) {
		if v != nil {
			out = append(out, Setting{name, strconv.FormatBool(*v)})
		}
	}

	if m := f.Metric; m != nil {
		str("pn-order", m.PNOrder)
		num("f0", m.F0)
		num("f-low", m.FLow)
		num("f-upper", m.FUpper)
		num("delta-f", m.DeltaF)
	}
	if r := f.MassRange; r != nil {
		num("min-mass1", r.MinMass1)
		num("max-mass1", r.MaxMass1)
		num("min-mass2", r.MinMass2)
		num("max-mass2", r.MaxMass2)
		num("min-total-mass", r.MinTotalMass)
		num("max-total-mass", r.MaxTotalMass)
		num("min-chirp-mass", r.MinChirpMass)
		num("max-chirp-mass", r.MaxChirpMass)
		num("min-eta", r.MinEta)
		num("max-eta", r.MaxEta)
		num("max-ns-spin-mag", r.MaxNSSpinMag)
		num("max-bh-spin-mag", r.MaxBHSpinMag)
		num("ns-bh-boundary-mass", r.NSBHBoundaryMass)
		boolean("nsbh-flag", r.NSBHFlag)
	}
	if e := f.Ethinca; e != nil {
		boolean("calculate-ethinca-metric", e.Calculate)
		str("ethinca-pn-order", e.PNOrder)
		str("ethinca-cutoff", e.Cutoff)
		num("ethinca-frequency-step", e.FrequencyStep)
		num("ethinca-f-low", e.FLow)
	}
	return out
}

// Apply sets every config value whose flag is not in explicit. It returns
// the names of the flags it set.
func (f *File) Apply(fs *flag.FlagSet, explicit map[string]bool) ([]string, error) {
	var applied []string
	for _, s := range f.Settings() {
		if explicit[s.Flag] {
			continue
		}
		if fs.Lookup(s.Flag) == nil {
			return applied, fmt.Errorf("bankconfig: option %q is not accepted by this tool", s.Flag)
		}
		if err := fs.Set(s.Flag, s.Value); err != nil {
			return applied, fmt.Errorf("bankconfig: %s: %w", s.Flag, err)
		}
		applied = append(applied, s.Flag)
	}
	return applied, nil
}
