package metric

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"tmpltbank-core/pnutils"
)

// term is one coordinate direction of the non-spinning TaylorF2 phase:
// x^(pow/3) * (ln x^(1/3))^log.
type term struct {
	pow int
	log int
}

// phaseTerms lists the coordinate directions, in lambda order, that each PN
// order adds. The constant 2.5PN term is degenerate with the phase and is
// dropped.
var phaseTerms = []struct {
	order string
	terms []term
}{
	{"zeroPN", []term{{-5, 0}}},
	{"onePN", []term{{-3, 0}}},
	{"onePointFivePN", []term{{-2, 0}}},
	{"twoPN", []term{{-1, 0}}},
	{"twoPointFivePN", []term{{0, 1}}},
	{"threePN", []term{{1, 0}, {1, 1}}},
	{"threePointFivePN", []term{{2, 0}}},
}

// basis returns the lambda directions used at order. taylorF4_45PN shares
// the 3.5PN non-spinning basis.
func basis(order string) ([]term, error) {
	if order == "taylorF4_45PN" {
		order = "threePointFivePN"
	}
	var out []term
	for _, pt := range phaseTerms {
		out = append(out, pt.terms...)
		if pt.order == order {
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown pn-order %q", ErrInvalidParams, order)
}

// Dimension returns the number of lambda coordinates at order, or 0 if the
// order is unknown.
func Dimension(order string) int {
	b, err := basis(order)
	if err != nil {
		return 0
	}
	return len(b)
}

// ComputeMetric returns the metric in the lambda coordinates at cutoff fMax:
//
//	g_ab = (<psi_a psi_b> - <psi_a><psi_b>) / 2
//
// where <.> is the noise-weighted average normalised by J7.
func ComputeMetric(p Params, m *Moments, fMax float64) (*mat.SymDense, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: moments", ErrMissingProduct)
	}
	terms, err := basis(p.PNOrder)
	if err != nil {
		return nil, err
	}
	avg := func(pow, log int) (float64, error) {
		v, ok := m.Get(log, 7-pow, fMax)
		if !ok {
			return 0, fmt.Errorf("%w: moments at %g Hz", ErrMissingProduct, fMax)
		}
		return v, nil
	}

	n := len(terms)
	g := mat.NewSymDense(n, nil)
	for a := 0; a < n; a++ {
		ma, err := avg(terms[a].pow, terms[a].log)
		if err != nil {
			return nil, err
		}
		for b := a; b < n; b++ {
			mb, err := avg(terms[b].pow, terms[b].log)
			if err != nil {
				return nil, err
			}
			mab, err := avg(terms[a].pow+terms[b].pow, terms[a].log+terms[b].log)
			if err != nil {
				return nil, err
			}
			g.SetSym(a, b, 0.5*(mab-ma*mb))
		}
	}
	return g, nil
}

// ChirpParams returns the lambda coordinates of a non-spinning binary with
// component masses m1, m2 (solar masses), in the order of the metric basis.
func ChirpParams(p Params, m1, m2 float64) ([]float64, error) {
	terms, err := basis(p.PNOrder)
	if err != nil {
		return nil, err
	}
	if !(m1 > 0) || !(m2 > 0) {
		return nil, fmt.Errorf("%w: masses must be > 0 (got %g, %g)", ErrInvalidParams, m1, m2)
	}
	mtot, eta := pnutils.MassToMtotalEta(m1, m2)
	v0 := math.Cbrt(math.Pi * mtot * pnutils.MTSunSI * p.F0)
	lv := math.Log(v0)
	pre := 3 / (128 * eta)
	pi2 := math.Pi * math.Pi

	alpha2 := 20.0 / 9.0 * (743.0/336.0 + 11.0/4.0*eta)
	alpha3 := -16 * math.Pi
	alpha4 := 10 * (3058673.0/1016064.0 + 5429.0/1008.0*eta + 617.0/144.0*eta*eta)
	alpha5log := 3 * math.Pi * (38645.0/756.0 - 65.0/9.0*eta)
	alpha6 := 11583231236531.0/4694215680.0 - 640.0/3.0*pi2 - 6848.0/21.0*eulerGamma +
		eta*(-15737765635.0/3048192.0+2255.0/12.0*pi2) +
		76055.0/1728.0*eta*eta - 127825.0/1296.0*eta*eta*eta
	alpha6log := -6848.0 / 21.0
	alpha7 := math.Pi * (77096675.0/254016.0 + 378515.0/1512.0*eta - 74045.0/756.0*eta*eta)

	coef := map[term]float64{
		{-5, 0}: 1,
		{-3, 0}: alpha2,
		{-2, 0}: alpha3,
		{-1, 0}: alpha4,
		{0, 1}:  alpha5log,
		{1, 0}:  alpha6 + alpha6log*(math.Log(4)+lv),
		{1, 1}:  alpha6log,
		{2, 0}:  alpha7,
	}
	out := make([]float64, len(terms))
	for i, t := range terms {
		out[i] = pre * math.Pow(v0, float64(t.pow)) * coef[t]
	}
	return out, nil
}

const eulerGamma = 0.5772156649015329
