// internal/report/api_conv.go
package report

import (
	"tmpltbank/pkg/api"

	"tmpltbank-core/ethinca"
	"tmpltbank-core/massrange"
	"tmpltbank-core/metric"
	"tmpltbank-core/pnutils"
)

// ToAPIMetric converts metric parameters into the public wire type.
func ToAPIMetric(p metric.Params) api.MetricV1 {
	return api.MetricV1{
		PNOrder:   p.PNOrder,
		F0:        p.F0,
		FLow:      p.FLow,
		FUpper:    p.FUpper,
		DeltaF:    p.DeltaF,
		Dimension: metric.Dimension(p.PNOrder),
	}
}

// ToAPIMassRange converts a resolved mass range. With nonSpin the spin
// limits are reported as zero.
func ToAPIMassRange(p *massrange.Params, nonSpin bool) api.MassRangeV1 {
	b, s := p.Bounds(), p.Spins()
	out := api.MassRangeV1{
		MinMass1:     b.MinMass1,
		MaxMass1:     b.MaxMass1,
		MinMass2:     b.MinMass2,
		MaxMass2:     b.MaxMass2,
		MinTotalMass: b.MinTotMass,
		MaxTotalMass: b.MaxTotMass,
		MinEta:       b.MinEta,
		MaxEta:       b.MaxEta,
		MinChirpMass: b.MinChirpMass,
		MaxChirpMass: b.MaxChirpMass,
		NonSpin:      nonSpin,
	}
	if !nonSpin {
		out.MaxNSSpinMag = s.MaxNSSpinMag
		out.MaxBHSpinMag = s.MaxBHSpinMag
		out.NSBHBoundaryMass = s.NSBHBoundaryMass
		out.NSBHFlag = s.NSBHFlag
	}
	for _, r := range p.Restrictions() {
		out.Restrictions = append(out.Restrictions, api.RestrictionV1{
			Name:      r.Name,
			Value:     r.Value,
			Side:      r.Side,
			Outcome:   string(r.Outcome),
			Bound:     r.Bound,
			Tightened: r.Tightened,
		})
	}
	return out
}

// ToAPIEthinca returns nil when the ethinca metric is not requested.
func ToAPIEthinca(e ethinca.Params) *api.EthincaV1 {
	if !e.DoEthinca {
		return nil
	}
	return &api.EthincaV1{
		PNOrder:       e.PNOrder,
		Cutoff:        e.Cutoff,
		FrequencyStep: e.FreqStep,
		FLow:          e.FLow,
	}
}

// ToAPIProducts summarises the metric at the upper cutoff; only the plain
// J moments are reported.
func ToAPIProducts(p *metric.Products) *api.MetricProductsV1 {
	fMax := p.Params().FUpper
	out := &api.MetricProductsV1{
		FMax:    fMax,
		Cutoffs: p.Cutoffs(),
		Moments: map[string]float64{},
	}
	mom := p.Moments()
	for n := 1; n <= metric.MaxMomentIndex; n++ {
		if v, ok := mom.Get(0, n, fMax); ok {
			out.Moments[metric.MomentName(0, n)] = v
		}
	}
	if g, ok := p.Metric(fMax); ok {
		n := g.SymmetricDim()
		out.Metric = make([][]float64, n)
		for i := range out.Metric {
			out.Metric[i] = make([]float64, n)
			for j := range out.Metric[i] {
				out.Metric[i][j] = g.At(i, j)
			}
		}
	}
	if ev, ok := p.Evals(fMax); ok {
		out.Evals = ev
	}
	return out
}

// ToAPIPoint fills the mass-derived fields of a point; classification and
// metric coordinates are added by the caller.
func ToAPIPoint(source string, line int, m1, m2, s1z, s2z float64) api.PointV1 {
	mtot, eta := pnutils.MassToMtotalEta(m1, m2)
	return api.PointV1{
		Source:    source,
		Line:      line,
		Mass1:     m1,
		Mass2:     m2,
		Spin1z:    s1z,
		Spin2z:    s2z,
		TotalMass: mtot,
		Eta:       eta,
		ChirpMass: pnutils.MassToChirpMass(m1, m2),
	}
}
