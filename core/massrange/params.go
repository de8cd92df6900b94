// core/massrange/params.go
// Component-mass / spin ranges for template-bank generation and the derived,
// tightened total-mass bounds. mass1 is always the heavier body.

package massrange

import (
	"fmt"
	"math"
)

const (
	// DefaultMaxEta is the physical upper limit of the symmetric mass ratio.
	DefaultMaxEta = 0.25
	// DefaultNSBHBoundaryMass separates neutron stars from black holes (Msun).
	DefaultNSBHBoundaryMass = 3.0
)

// Config carries the user-supplied bounds. Zero-valued optional fields are
// unset: total-mass bounds derive from the component bounds, MaxEta falls
// back to 0.25 and chirp-mass bounds are unrestricted.
type Config struct {
	MinMass1, MaxMass1 float64
	MinMass2, MaxMass2 float64

	MinTotMass, MaxTotMass     float64
	MinEta, MaxEta             float64
	MinChirpMass, MaxChirpMass float64

	MaxNSSpinMag     float64
	MaxBHSpinMag     float64
	NSBHBoundaryMass float64
	NSBHFlag         bool
}

// Bounds is the resolved, self-consistent mass box.
type Bounds struct {
	MinMass1, MaxMass1         float64
	MinMass2, MaxMass2         float64
	MinTotMass, MaxTotMass     float64
	MinEta, MaxEta             float64
	MinChirpMass, MaxChirpMass float64 // 0 = unrestricted
}

// SpinLimits bounds |spinz| per body class.
type SpinLimits struct {
	MaxNSSpinMag     float64
	MaxBHSpinMag     float64
	NSBHBoundaryMass float64
	NSBHFlag         bool
}

// Params is an immutable, resolved mass range.
type Params struct {
	bounds       Bounds
	spins        SpinLimits
	restrictions []Restriction
}

// New validates cfg and derives the tightest total-mass bounds implied by the
// chirp-mass and eta restrictions.
func New(cfg Config) (*Params, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	b := Bounds{
		MinMass1: cfg.MinMass1, MaxMass1: cfg.MaxMass1,
		MinMass2: cfg.MinMass2, MaxMass2: cfg.MaxMass2,
		MinTotMass:   cfg.MinMass1 + cfg.MinMass2,
		MaxTotMass:   cfg.MaxMass1 + cfg.MaxMass2,
		MinEta:       cfg.MinEta,
		MaxEta:       cfg.MaxEta,
		MinChirpMass: cfg.MinChirpMass,
		MaxChirpMass: cfg.MaxChirpMass,
	}
	if b.MaxEta == 0 {
		b.MaxEta = DefaultMaxEta
	}
	if cfg.MinTotMass > b.MinTotMass {
		b.MinTotMass = cfg.MinTotMass
	}
	if cfg.MaxTotMass > 0 && cfg.MaxTotMass < b.MaxTotMass {
		b.MaxTotMass = cfg.MaxTotMass
	}

	r := resolver{b: b}
	restr, err := r.resolve()
	if err != nil {
		return nil, err
	}

	spins := SpinLimits{
		MaxNSSpinMag:     cfg.MaxNSSpinMag,
		MaxBHSpinMag:     cfg.MaxBHSpinMag,
		NSBHBoundaryMass: cfg.NSBHBoundaryMass,
		NSBHFlag:         cfg.NSBHFlag,
	}
	if spins.NSBHBoundaryMass == 0 {
		spins.NSBHBoundaryMass = DefaultNSBHBoundaryMass
	}
	return &Params{bounds: r.b, spins: spins, restrictions: restr}, nil
}

func validate(cfg Config) error {
	required := []struct {
		name string
		v    float64
	}{
		{"min-mass1", cfg.MinMass1}, {"max-mass1", cfg.MaxMass1},
		{"min-mass2", cfg.MinMass2}, {"max-mass2", cfg.MaxMass2},
	}
	for _, r := range required {
		if math.IsNaN(r.v) || r.v <= 0 {
			return invalid("%s must be > 0 (got %g)", r.name, r.v)
		}
	}
	if cfg.MinMass1 < cfg.MinMass2 {
		return invalid("min-mass1 (%g) cannot be less than min-mass2 (%g)", cfg.MinMass1, cfg.MinMass2)
	}
	if cfg.MaxMass1 < cfg.MaxMass2 {
		return invalid("max-mass1 (%g) cannot be less than max-mass2 (%g)", cfg.MaxMass1, cfg.MaxMass2)
	}
	if cfg.MinMass1 > cfg.MaxMass1 {
		return invalid("min-mass1 (%g) cannot be larger than max-mass1 (%g)", cfg.MinMass1, cfg.MaxMass1)
	}
	if cfg.MinMass2 > cfg.MaxMass2 {
		return invalid("min-mass2 (%g) cannot be larger than max-mass2 (%g)", cfg.MinMass2, cfg.MaxMass2)
	}

	if cfg.MinTotMass < 0 || cfg.MaxTotMass < 0 {
		return invalid("total-mass bounds must be >= 0")
	}
	if cfg.MinTotMass > cfg.MaxMass1+cfg.MaxMass2 {
		return invalid("min-total-mass %g greater than the sum of the max component masses %g and %g",
			cfg.MinTotMass, cfg.MaxMass1, cfg.MaxMass2)
	}
	if cfg.MaxTotMass > 0 && cfg.MaxTotMass < cfg.MinMass1+cfg.MinMass2 {
		return invalid("max-total-mass %g smaller than the sum of the min component masses %g and %g",
			cfg.MaxTotMass, cfg.MinMass1, cfg.MinMass2)
	}
	if cfg.MaxTotMass > 0 && cfg.MinTotMass > cfg.MaxTotMass {
		return invalid("min-total-mass (%g) cannot be larger than max-total-mass (%g)", cfg.MinTotMass, cfg.MaxTotMass)
	}

	maxEta := cfg.MaxEta
	if maxEta == 0 {
		maxEta = DefaultMaxEta
	}
	if cfg.MinEta < 0 || maxEta > DefaultMaxEta || maxEta < 0 {
		return invalid("eta bounds must lie in [0, 0.25] (got min %g, max %g)", cfg.MinEta, maxEta)
	}
	if cfg.MinEta > maxEta {
		return invalid("max-eta (%g) must be larger than min-eta (%g)", maxEta, cfg.MinEta)
	}

	if cfg.MinChirpMass < 0 || cfg.MaxChirpMass < 0 {
		return invalid("chirp-mass bounds must be >= 0")
	}
	if cfg.MaxChirpMass > 0 && cfg.MinChirpMass > cfg.MaxChirpMass {
		return invalid("min-chirp-mass (%g) cannot be larger than max-chirp-mass (%g)", cfg.MinChirpMass, cfg.MaxChirpMass)
	}
	if cfg.MaxNSSpinMag < 0 || cfg.MaxBHSpinMag < 0 {
		return invalid("spin magnitudes must be >= 0")
	}
	if cfg.NSBHBoundaryMass < 0 {
		return invalid("ns-bh-boundary-mass must be >= 0")
	}
	return nil
}

// Bounds returns a copy of the resolved bounds.
func (p *Params) Bounds() Bounds { return p.bounds }

// Spins returns the spin limits.
func (p *Params) Spins() SpinLimits { return p.spins }

// Restrictions reports how each one-sided restriction was resolved, in
// evaluation order.
func (p *Params) Restrictions() []Restriction {
	return append([]Restriction(nil), p.restrictions...)
}

// MinCompMass and MaxCompMass bound either component.
func (p *Params) MinCompMass() float64 { return p.bounds.MinMass2 }
func (p *Params) MaxCompMass() float64 { return p.bounds.MaxMass1 }

// Config returns a Config that reproduces p when passed to New.
func (p *Params) Config() Config {
	b := p.bounds
	return Config{
		MinMass1: b.MinMass1, MaxMass1: b.MaxMass1,
		MinMass2: b.MinMass2, MaxMass2: b.MaxMass2,
		MinTotMass: b.MinTotMass, MaxTotMass: b.MaxTotMass,
		MinEta: b.MinEta, MaxEta: b.MaxEta,
		MinChirpMass: b.MinChirpMass, MaxChirpMass: b.MaxChirpMass,
		MaxNSSpinMag:     p.spins.MaxNSSpinMag,
		MaxBHSpinMag:     p.spins.MaxBHSpinMag,
		NSBHBoundaryMass: p.spins.NSBHBoundaryMass,
		NSBHFlag:         p.spins.NSBHFlag,
	}
}

func (p *Params) String() string {
	b := p.bounds
	return fmt.Sprintf("mass1=[%g,%g] mass2=[%g,%g] mtotal=[%g,%g] eta=[%g,%g]",
		b.MinMass1, b.MaxMass1, b.MinMass2, b.MaxMass2, b.MinTotMass, b.MaxTotMass, b.MinEta, b.MaxEta)
}
