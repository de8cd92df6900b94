package massrange

import (
	"math"

	"tmpltbank-core/pnutils"
)

// Names of the bound reported by Violation.
const (
	ViolMass1     = "mass1"
	ViolMass2     = "mass2"
	ViolSpin1z    = "spin1z"
	ViolSpin2z    = "spin2z"
	ViolTotalMass = "total-mass"
	ViolEta       = "eta"
	ViolChirpMass = "chirp-mass"
)

// IsUnphysical reports whether (mass1, mass2, spin1z, spin2z) lies outside
// the resolved range.
func (p *Params) IsUnphysical(mass1, mass2, spin1z, spin2z float64) bool {
	return p.Violation(mass1, mass2, spin1z, spin2z) != ""
}

// Violation returns the first bound the point violates, or "" if the point
// is inside the range.
func (p *Params) Violation(mass1, mass2, spin1z, spin2z float64) string {
	b := p.bounds
	if mass1 < b.MinMass1 || mass1 > b.MaxMass1 {
		return ViolMass1
	}
	if mass2 < b.MinMass2 || mass2 > b.MaxMass2 {
		return ViolMass2
	}
	if math.Abs(spin1z) > p.SpinLimit(mass1, true) {
		return ViolSpin1z
	}
	if math.Abs(spin2z) > p.SpinLimit(mass2, false) {
		return ViolSpin2z
	}

	mtot := mass1 + mass2
	if mtot < b.MinTotMass || mtot > b.MaxTotMass {
		return ViolTotalMass
	}
	eta := pnutils.MassToEta(mass1, mass2)
	if eta < b.MinEta || eta > b.MaxEta {
		return ViolEta
	}
	mc := mtot * math.Pow(eta, 3.0/5.0)
	if b.MinChirpMass > 0 && mc < b.MinChirpMass {
		return ViolChirpMass
	}
	if b.MaxChirpMass > 0 && mc > b.MaxChirpMass {
		return ViolChirpMass
	}
	return ""
}

// SpinLimit returns the spin-magnitude bound for a body. With the NS-BH flag
// the heavier body is always a black hole and the lighter a neutron star;
// otherwise bodies lighter than the boundary mass are neutron stars.
func (p *Params) SpinLimit(mass float64, heavier bool) float64 {
	if p.spins.NSBHFlag {
		if heavier {
			return p.spins.MaxBHSpinMag
		}
		return p.spins.MaxNSSpinMag
	}
	if mass < p.spins.NSBHBoundaryMass {
		return p.spins.MaxNSSpinMag
	}
	return p.spins.MaxBHSpinMag
}
