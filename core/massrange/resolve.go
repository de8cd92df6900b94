package massrange

import (
	"fmt"

	"tmpltbank-core/pnutils"
)

// Outcome describes what a one-sided restriction did to the mass box.
type Outcome string

const (
	NotRequested Outcome = "not-requested"
	Redundant    Outcome = "redundant"
	Applied      Outcome = "applied"
)

// Restriction records how one restriction (or a chirp-mass/eta combination)
// was resolved against the component-mass rectangle.
type Restriction struct {
	Name      string  // e.g. "min-chirp-mass" or "min-chirp-mass+max-eta"
	Value     float64 // the restriction value (the eta value for combinations)
	Side      string  // "min-total-mass" or "max-total-mass"
	Outcome   Outcome
	Bound     float64 // total-mass bound implied by the restriction
	Tightened bool    // the bound moved the resolved total-mass limit
}

const (
	sideMin = "min-total-mass"
	sideMax = "max-total-mass"
)

// resolver walks the restrictions in a fixed order: the lower total-mass
// bound from min-chirp-mass then max-eta, the upper bound from max-chirp-mass
// then min-eta. Bounds only ever tighten.
type resolver struct {
	b Bounds
}

func (r *resolver) resolve() ([]Restriction, error) {
	var out []Restriction
	steps := []func() ([]Restriction, error){
		r.minChirpMass,
		r.maxEta,
		r.maxChirpMass,
		r.minEta,
	}
	for _, step := range steps {
		rs, err := step()
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	if r.b.MinTotMass > r.b.MaxTotMass {
		return nil, &InfeasibleError{
			Restriction: "total mass",
			Detail: fmt.Sprintf("derived min-total-mass %g exceeds max-total-mass %g",
				r.b.MinTotMass, r.b.MaxTotMass),
		}
	}
	return out, nil
}

func within(v, lo, hi float64) bool { return v >= lo && v <= hi }

func (r *resolver) raiseMin(rs *Restriction, bound float64) {
	rs.Bound = bound
	if bound > r.b.MinTotMass {
		r.b.MinTotMass = bound
		rs.Tightened = true
	}
}

func (r *resolver) lowerMax(rs *Restriction, bound float64) {
	rs.Bound = bound
	if bound < r.b.MaxTotMass {
		r.b.MaxTotMass = bound
		rs.Tightened = true
	}
}

func (r *resolver) minChirpMass() ([]Restriction, error) {
	b := r.b
	mc := b.MinChirpMass
	rs := Restriction{Name: "min-chirp-mass", Value: mc, Side: sideMin}
	if mc <= 0 {
		rs.Outcome = NotRequested
		return []Restriction{rs}, nil
	}

	bound := b.MinTotMass
	switch {
	case pnutils.MassToChirpMass(b.MinMass1, b.MinMass2) >= mc:
		rs.Outcome = Redundant
	case pnutils.MassToChirpMass(b.MaxMass1, b.MaxMass2) < mc:
		return nil, &InfeasibleError{
			Restriction: "min-chirp-mass",
			Detail:      fmt.Sprintf("%g is not possible given restrictions on component masses", mc),
		}
	default:
		t, ok := minChirpIntersection(b, mc)
		if !ok {
			return nil, &InfeasibleError{
				Restriction: "min-chirp-mass",
				Detail:      fmt.Sprintf("curve for %g does not cross the component-mass rectangle", mc),
			}
		}
		rs.Outcome = Applied
		bound = t
	}
	r.raiseMin(&rs, bound)
	out := []Restriction{rs}

	if b.MaxEta < DefaultMaxEta {
		combo := Restriction{Name: "min-chirp-mass+max-eta", Value: b.MaxEta, Side: sideMin, Outcome: Redundant}
		m1, m2 := pnutils.MchirpEtaToMass1Mass2(mc, b.MaxEta)
		if t := m1 + m2; t > r.b.MinTotMass {
			if m1 > b.MaxMass1 {
				return nil, &InfeasibleError{
					Restriction: "min-chirp-mass+max-eta",
					Detail:      "the combination of component mass, chirp mass, eta and total mass limits has precluded all systems",
				}
			}
			combo.Outcome = Applied
			r.raiseMin(&combo, t)
		} else {
			combo.Bound = t
		}
		out = append(out, combo)
	}
	return out, nil
}

// minChirpIntersection returns the smallest total mass on the constant
// chirp-mass curve inside the rectangle: where the curve enters at
// mass2 = maxMass2, at mass1 = minMass1, or its equal-mass point.
func minChirpIntersection(b Bounds, mc float64) (float64, bool) {
	m1AtMaxM2 := pnutils.MchirpMass1ToMass2(mc, b.MaxMass2)
	if m1AtMaxM2 >= b.MaxMass2 && within(m1AtMaxM2, b.MinMass1, b.MaxMass1) {
		return b.MaxMass2 + m1AtMaxM2, true
	}
	m2AtMinM1 := pnutils.MchirpMass1ToMass2(mc, b.MinMass1)
	if m2AtMinM1 <= b.MinMass1 && within(m2AtMinM1, b.MinMass2, b.MaxMass2) {
		return b.MinMass1 + m2AtMinM1, true
	}
	m1, m2 := pnutils.MchirpEtaToMass1Mass2(mc, DefaultMaxEta)
	if within(m1, b.MinMass1, b.MaxMass1) && within(m2, b.MinMass2, b.MaxMass2) {
		return m1 + m2, true
	}
	return 0, false
}

func (r *resolver) maxEta() ([]Restriction, error) {
	b := r.b
	eta := b.MaxEta
	rs := Restriction{Name: "max-eta", Value: eta, Side: sideMin}
	if eta >= DefaultMaxEta {
		rs.Outcome = NotRequested
		return []Restriction{rs}, nil
	}
	if pnutils.MassToEta(b.MinMass1, b.MinMass2) <= eta {
		rs.Outcome = Redundant
		rs.Bound = b.MinTotMass
		return []Restriction{rs}, nil
	}

	m1AtMinM2 := pnutils.EtaMass1ToMass2(eta, b.MinMass2, true)
	m2AtMinM1 := pnutils.EtaMass1ToMass2(eta, b.MinMass1, false)
	switch {
	case within(m1AtMinM2, b.MinMass1, b.MaxMass1):
		rs.Outcome = Applied
		r.raiseMin(&rs, b.MinMass2+m1AtMinM2)
	case within(m2AtMinM1, b.MinMass2, b.MaxMass2):
		rs.Outcome = Applied
		r.raiseMin(&rs, b.MinMass1+m2AtMinM1)
	default:
		return nil, &InfeasibleError{
			Restriction: "max-eta",
			Detail:      fmt.Sprintf("%g is not possible given restrictions on component masses", eta),
		}
	}
	return []Restriction{rs}, nil
}

func (r *resolver) maxChirpMass() ([]Restriction, error) {
	b := r.b
	mc := b.MaxChirpMass
	rs := Restriction{Name: "max-chirp-mass", Value: mc, Side: sideMax}
	if mc <= 0 {
		rs.Outcome = NotRequested
		return []Restriction{rs}, nil
	}

	bound := b.MaxTotMass
	switch {
	case pnutils.MassToChirpMass(b.MaxMass1, b.MaxMass2) <= mc:
		rs.Outcome = Redundant
	case pnutils.MassToChirpMass(b.MinMass1, b.MinMass2) > mc:
		return nil, &InfeasibleError{
			Restriction: "max-chirp-mass",
			Detail:      fmt.Sprintf("%g is not possible given restrictions on component masses", mc),
		}
	default:
		t, ok := maxChirpIntersection(b, mc)
		if !ok {
			return nil, &InfeasibleError{
				Restriction: "max-chirp-mass",
				Detail:      fmt.Sprintf("curve for %g does not cross the component-mass rectangle", mc),
			}
		}
		rs.Outcome = Applied
		bound = t
	}
	r.lowerMax(&rs, bound)
	out := []Restriction{rs}

	if b.MinEta > 0 {
		combo := Restriction{Name: "max-chirp-mass+min-eta", Value: b.MinEta, Side: sideMax, Outcome: Redundant}
		m1, m2 := pnutils.MchirpEtaToMass1Mass2(mc, b.MinEta)
		if t := m1 + m2; t < r.b.MaxTotMass {
			if m1 < b.MinMass1 {
				return nil, &InfeasibleError{
					Restriction: "max-chirp-mass+min-eta",
					Detail:      "the combination of component mass, chirp mass, eta and total mass limits has precluded all systems",
				}
			}
			combo.Outcome = Applied
			r.lowerMax(&combo, t)
		} else {
			combo.Bound = t
		}
		out = append(out, combo)
	}
	return out, nil
}

// maxChirpIntersection returns the largest total mass on the constant
// chirp-mass curve inside the rectangle, where the curve leaves it at
// mass2 = minMass2 or at mass1 = maxMass1.
func maxChirpIntersection(b Bounds, mc float64) (float64, bool) {
	m1AtMinM2 := pnutils.MchirpMass1ToMass2(mc, b.MinMass2)
	if m1AtMinM2 >= b.MinMass2 && within(m1AtMinM2, b.MinMass1, b.MaxMass1) {
		return b.MinMass2 + m1AtMinM2, true
	}
	m2AtMaxM1 := pnutils.MchirpMass1ToMass2(mc, b.MaxMass1)
	if m2AtMaxM1 <= b.MaxMass1 && within(m2AtMaxM1, b.MinMass2, b.MaxMass2) {
		return b.MaxMass1 + m2AtMaxM1, true
	}
	return 0, false
}

func (r *resolver) minEta() ([]Restriction, error) {
	b := r.b
	eta := b.MinEta
	rs := Restriction{Name: "min-eta", Value: eta, Side: sideMax}
	if eta <= 0 {
		rs.Outcome = NotRequested
		return []Restriction{rs}, nil
	}
	if pnutils.MassToEta(b.MaxMass1, b.MaxMass2) >= eta {
		rs.Outcome = Redundant
		rs.Bound = b.MaxTotMass
		return []Restriction{rs}, nil
	}

	m1AtMaxM2 := pnutils.EtaMass1ToMass2(eta, b.MaxMass2, true)
	m2AtMaxM1 := pnutils.EtaMass1ToMass2(eta, b.MaxMass1, false)
	switch {
	case within(m1AtMaxM2, b.MinMass1, b.MaxMass1):
		rs.Outcome = Applied
		r.lowerMax(&rs, b.MaxMass2+m1AtMaxM2)
	case within(m2AtMaxM1, b.MinMass2, b.MaxMass2):
		rs.Outcome = Applied
		r.lowerMax(&rs, b.MaxMass1+m2AtMaxM1)
	default:
		return nil, &InfeasibleError{
			Restriction: "min-eta",
			Detail:      fmt.Sprintf("%g is not possible given restrictions on component masses", eta),
		}
	}
	return []Restriction{rs}, nil
}
