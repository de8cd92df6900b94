package pnutils

import (
	"math"
	"sort"
)

// MTSunSI is G*Msun/c^3 in seconds.
const MTSunSI = 4.925491025543576e-06

// CutoffFunc maps component masses (solar masses) to a frequency in Hz.
type CutoffFunc func(m1, m2 float64) float64

var frequencyCutoffs = map[string]CutoffFunc{
	"SchwarzISCO": fSchwarzISCO,
	"LightRing":   fLightRing,
	"BKLISCO":     fBKLISCO,
	"ERD":         fERD,
	"FRD":         fFRD,
	"LRD":         fLRD,
}

// FrequencyCutoffNames returns the valid cutoff formula names, sorted.
func FrequencyCutoffNames() []string {
	names := make([]string, 0, len(frequencyCutoffs))
	for k := range frequencyCutoffs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Cutoff looks up a frequency cutoff formula by name.
func Cutoff(name string) (CutoffFunc, bool) {
	f, ok := frequencyCutoffs[name]
	return f, ok
}

// IsFrequencyCutoff reports whether name is a known cutoff formula.
func IsFrequencyCutoff(name string) bool {
	_, ok := frequencyCutoffs[name]
	return ok
}

// VelocityToFrequency converts a PN velocity parameter v to the GW frequency
// of a binary with total mass mtot.
func VelocityToFrequency(v, mtot float64) float64 {
	return v * v * v / (mtot * MTSunSI * math.Pi)
}

func fSchwarzISCO(m1, m2 float64) float64 {
	return VelocityToFrequency(1/math.Sqrt(6), m1+m2)
}

func fLightRing(m1, m2 float64) float64 {
	return VelocityToFrequency(1/math.Sqrt(3), m1+m2)
}

// Buonanno-Kidder-Lehner ISCO, mass-ratio corrected.
func fBKLISCO(m1, m2 float64) float64 {
	q := math.Min(m1/m2, m2/m1)
	return fSchwarzISCO(m1, m2) * (1 + 2.8*q - 2.6*q*q + 0.8*q*q*q)
}

// Effective ringdown frequency.
func fERD(m1, m2 float64) float64 {
	return 1.07 * 0.5326 / (2 * math.Pi * 0.955 * (m1 + m2) * MTSunSI)
}

// Fundamental ringdown frequency (Berti et al. fit).
func fFRD(m1, m2 float64) float64 {
	mtot, eta := MassToMtotalEta(m1, m2)
	tmp := (1 - 0.63*math.Pow(1-3.4641016*eta+2.9*eta*eta, 0.3)) /
		(1 - 0.057191*eta - 0.498*eta*eta)
	return tmp / (2 * math.Pi * mtot * MTSunSI)
}

func fLRD(m1, m2 float64) float64 {
	return 1.2 * fFRD(m1, m2)
}
