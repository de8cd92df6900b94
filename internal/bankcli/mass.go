package bankcli

import (
	"errors"
	"flag"
	"fmt"

	"tmpltbank/internal/clibase"

	"tmpltbank-core/massrange"
)

// MassOptions are the component-mass, total-mass, chirp-mass, eta and spin
// limits of the bank.
type MassOptions struct {
	MinMass1, MaxMass1 OptionalFloat
	MinMass2, MaxMass2 OptionalFloat

	MinTotMass, MaxTotMass     OptionalFloat
	MinChirpMass, MaxChirpMass OptionalFloat
	MinEta, MaxEta             float64

	MaxNSSpinMag     OptionalFloat
	MaxBHSpinMag     OptionalFloat
	NSBHBoundaryMass OptionalFloat
	NSBHFlag         bool
}

// RegisterMassRange wires the mass-range flags onto fs. With nonSpin the
// spin options are left out.
func RegisterMassRange(fs *flag.FlagSet, o *MassOptions, nonSpin bool) {
	fs.Var(&o.MinMass1, "min-mass1", "Minimum mass1: must be >= min-mass2. REQUIRED. UNITS=Solar mass")
	fs.Var(&o.MaxMass1, "max-mass1", "Maximum mass1: must be >= max-mass2. REQUIRED. UNITS=Solar mass")
	fs.Var(&o.MinMass2, "min-mass2", "Minimum mass2. REQUIRED. UNITS=Solar mass")
	fs.Var(&o.MaxMass2, "max-mass2", "Maximum mass2. REQUIRED. UNITS=Solar mass")
	fs.Var(&o.MaxTotMass, "max-total-mass",
		"Maximum total mass. OPTIONAL, if not provided the max total mass is determined by the component masses. UNITS=Solar mass")
	fs.Var(&o.MinTotMass, "min-total-mass",
		"Minimum total mass. OPTIONAL, if not provided the min total mass is determined by the component masses. UNITS=Solar mass")
	fs.Var(&o.MaxChirpMass, "max-chirp-mass",
		"Maximum chirp mass. OPTIONAL, if not provided the max chirp mass is determined by the component masses. UNITS=Solar mass")
	fs.Var(&o.MinChirpMass, "min-chirp-mass",
		"Minimum chirp mass. OPTIONAL, if not provided the min chirp mass is determined by the component masses. UNITS=Solar mass")
	fs.Float64Var(&o.MaxEta, "max-eta", massrange.DefaultMaxEta,
		"Maximum symmetric mass ratio. OPTIONAL, no upper bound on eta will be imposed if not provided.")
	fs.Float64Var(&o.MinEta, "min-eta", 0,
		"Minimum symmetric mass ratio. OPTIONAL, no lower bound on eta will be imposed if not provided.")
	if nonSpin {
		return
	}

	fs.Var(&o.MaxNSSpinMag, "max-ns-spin-mag",
		"Maximum neutron star spin magnitude. Neutron stars are defined as components lighter than the "+
			"NS-BH boundary mass. REQUIRED if min-mass2 < ns-bh-boundary-mass")
	fs.Var(&o.MaxBHSpinMag, "max-bh-spin-mag",
		"Maximum black hole spin magnitude. Black holes are defined as components at or above the NS-BH "+
			"boundary mass. REQUIRED if max-mass1 >= ns-bh-boundary-mass")
	fs.Var(&o.NSBHBoundaryMass, "ns-bh-boundary-mass",
		"Mass boundary between neutron stars and black holes. Components below this mass are considered "+
			"neutron stars and are subject to the neutron star spin limits. Components above are considered "+
			"black holes and are subject to the black hole spin limits. OPTIONAL, if not set the default value of 3 is used.")
	fs.BoolVar(&o.NSBHFlag, "nsbh-flag", false,
		"Set this flag if generating a bank that contains only systems with 1 black hole and 1 neutron star. "+
			"With this flag set the heavier body will always be subject to the black hole spin restriction and the "+
			"lighter to the neutron star spin restriction, regardless of mass. OPTIONAL, cannot be combined with --ns-bh-boundary-mass.")
}

// MassRangeGroup describes the mass-range flags for help output.
func MassRangeGroup(nonSpin bool) clibase.Group {
	g := clibase.Group{
		Title: "Options related to mass and spin limits for bank generation",
		Flags: []string{
			"min-mass1", "max-mass1", "min-mass2", "max-mass2",
			"max-total-mass", "min-total-mass", "max-chirp-mass", "min-chirp-mass",
			"max-eta", "min-eta",
		},
	}
	if !nonSpin {
		g.Flags = append(g.Flags, "max-ns-spin-mag", "max-bh-spin-mag", "ns-bh-boundary-mass", "nsbh-flag")
	}
	return g
}

// VerifyMassRange checks the required bounds and resolves the spin-limit
// rules: a neutron-star bound is needed when light bodies can occur, a
// black-hole bound when heavy bodies can occur, and a missing bound that is
// not needed is copied from the other one.
func VerifyMassRange(o *MassOptions, nonSpin bool) error {
	for _, f := range []struct {
		name string
		v    *OptionalFloat
	}{
		{"min-mass1", &o.MinMass1}, {"min-mass2", &o.MinMass2},
		{"max-mass1", &o.MaxMass1}, {"max-mass2", &o.MaxMass2},
	} {
		if v, ok := f.v.Get(); !ok || v == 0 {
			return fmt.Errorf("must supply --%s", f.name)
		}
	}
	if o.MinMass1.Value() < o.MinMass2.Value() {
		return errors.New("--min-mass1 cannot be less than --min-mass2")
	}
	if o.MaxMass1.Value() < o.MaxMass2.Value() {
		return errors.New("--max-mass1 cannot be less than --max-mass2")
	}
	if o.MaxEta < o.MinEta {
		return errors.New("--max-eta must be larger than --min-eta")
	}
	if nonSpin {
		return nil
	}

	if o.NSBHFlag && o.NSBHBoundaryMass.IsSet() {
		return errors.New("--ns-bh-boundary-mass and --nsbh-flag are mutually exclusive")
	}
	boundary := o.NSBHBoundaryMass.Or(massrange.DefaultNSBHBoundaryMass)

	if !o.MaxNSSpinMag.IsSet() {
		if o.NSBHFlag || o.MinMass2.Value() < boundary {
			return errors.New("must supply --max-ns-spin-mag")
		}
		if v, ok := o.MaxBHSpinMag.Get(); ok {
			o.MaxNSSpinMag.SetValue(v)
		}
	}
	if !o.MaxBHSpinMag.IsSet() {
		if o.NSBHFlag || o.MaxMass1.Value() >= boundary {
			return errors.New("must supply --max-bh-spin-mag")
		}
		o.MaxBHSpinMag.SetValue(o.MaxNSSpinMag.Value())
	}
	return nil
}

// MassRangeParams converts verified options and resolves the total-mass
// bounds. Errors wrap massrange.ErrInvalidRange or massrange.ErrInfeasible.
func MassRangeParams(o *MassOptions, nonSpin bool) (*massrange.Params, error) {
	cfg := massrange.Config{
		MinMass1: o.MinMass1.Value(), MaxMass1: o.MaxMass1.Value(),
		MinMass2: o.MinMass2.Value(), MaxMass2: o.MaxMass2.Value(),
		MinTotMass: o.MinTotMass.Value(), MaxTotMass: o.MaxTotMass.Value(),
		MinChirpMass: o.MinChirpMass.Value(), MaxChirpMass: o.MaxChirpMass.Value(),
		MinEta: o.MinEta, MaxEta: o.MaxEta,
	}
	if !nonSpin {
		cfg.MaxNSSpinMag = o.MaxNSSpinMag.Value()
		cfg.MaxBHSpinMag = o.MaxBHSpinMag.Value()
		cfg.NSBHBoundaryMass = o.NSBHBoundaryMass.Value()
		cfg.NSBHFlag = o.NSBHFlag
	}
	return massrange.New(cfg)
}
