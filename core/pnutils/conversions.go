// core/pnutils/conversions.go
// Conversions between component masses, total mass, symmetric mass ratio (eta)
// and chirp mass. Masses are in solar masses; mass1 is the heavier body.
//
//   eta   = m1*m2 / (m1+m2)^2          in (0, 0.25]
//   Mc    = (m1*m2)^(3/5) / (m1+m2)^(1/5) = M * eta^(3/5)

package pnutils

import "math"

// MassToEta returns the symmetric mass ratio of (m1, m2).
func MassToEta(m1, m2 float64) float64 {
	mtot := m1 + m2
	return m1 * m2 / (mtot * mtot)
}

// MassToChirpMass returns the chirp mass of (m1, m2).
func MassToChirpMass(m1, m2 float64) float64 {
	mtot := m1 + m2
	return mtot * math.Pow(MassToEta(m1, m2), 3.0/5.0)
}

// MassToMtotalEta returns (total mass, eta).
func MassToMtotalEta(m1, m2 float64) (float64, float64) {
	return m1 + m2, MassToEta(m1, m2)
}

// MtotalEtaToMass1Mass2 splits a total mass at the given eta; mass1 >= mass2.
func MtotalEtaToMass1Mass2(mtot, eta float64) (float64, float64) {
	d := math.Sqrt(math.Max(0, 1-4*eta))
	return 0.5 * mtot * (1 + d), 0.5 * mtot * (1 - d)
}

// MchirpEtaToMass1Mass2 returns the component masses on the intersection of
// a chirp-mass curve and an eta curve; mass1 >= mass2.
func MchirpEtaToMass1Mass2(mchirp, eta float64) (float64, float64) {
	return MtotalEtaToMass1Mass2(MchirpEtaToMtotal(mchirp, eta), eta)
}

// MchirpEtaToMtotal returns the total mass at (chirp mass, eta).
func MchirpEtaToMtotal(mchirp, eta float64) float64 {
	return mchirp * math.Pow(eta, -3.0/5.0)
}

// MchirpMass1ToMass2 returns the other component mass x such that
// MassToChirpMass(m, x) == mchirp. x may be heavier or lighter than m.
//
// x is the unique positive root of m^3 x^3 - Mc^5 x - Mc^5 m = 0.
func MchirpMass1ToMass2(mchirp, m float64) float64 {
	mc5 := math.Pow(mchirp, 5)
	p := -mc5 / (m * m * m)
	q := -mc5 / (m * m)

	disc := q*q/4 + p*p*p/27
	if disc >= 0 {
		s := math.Sqrt(disc)
		return math.Cbrt(-q/2+s) + math.Cbrt(-q/2-s)
	}
	// three real roots; the k=0 trigonometric root is the largest and the only positive one
	r := 2 * math.Sqrt(-p/3)
	arg := 3 * q / (2 * p) * math.Sqrt(-3/p)
	arg = math.Max(-1, math.Min(1, arg))
	return r * math.Cos(math.Acos(arg)/3)
}

// EtaMass1ToMass2 returns the other component mass for a body of mass m at
// the given eta. heavier selects the root above m; otherwise the lighter root
// is returned. At eta = 0.25 both roots equal m.
func EtaMass1ToMass2(eta, m float64, heavier bool) float64 {
	if eta <= 0 {
		if heavier {
			return math.Inf(1)
		}
		return 0
	}
	d := math.Sqrt(math.Max(0, 1-4*eta))
	if heavier {
		return m * (1 - 2*eta + d) / (2 * eta)
	}
	return m * (1 - 2*eta - d) / (2 * eta)
}
