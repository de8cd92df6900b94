package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"tmpltbank/pkg/api"
)

func init() { Register("text", writeText) }

// writeText prints one tab-separated key/value line per setting, then one
// line per restriction and per candidate point.
func writeText(w io.Writer, r *api.BankParamsV1) error {
	tw := &textWriter{w: w}
	tw.kv("tool", r.Tool)
	tw.kv("version", r.Version)
	if r.RunID != "" {
		tw.kv("run_id", r.RunID)
	}

	m := r.Metric
	tw.kv("metric.pn_order", m.PNOrder)
	tw.kv("metric.f0", num(m.F0))
	tw.kv("metric.f_low", num(m.FLow))
	tw.kv("metric.f_upper", num(m.FUpper))
	tw.kv("metric.delta_f", num(m.DeltaF))
	tw.kv("metric.dimension", strconv.Itoa(m.Dimension))

	b := r.MassRange
	tw.kv("mass_range.mass1", interval(b.MinMass1, b.MaxMass1))
	tw.kv("mass_range.mass2", interval(b.MinMass2, b.MaxMass2))
	tw.kv("mass_range.total_mass", interval(b.MinTotalMass, b.MaxTotalMass))
	tw.kv("mass_range.eta", interval(b.MinEta, b.MaxEta))
	if b.MinChirpMass > 0 {
		tw.kv("mass_range.min_chirp_mass", num(b.MinChirpMass))
	}
	if b.MaxChirpMass > 0 {
		tw.kv("mass_range.max_chirp_mass", num(b.MaxChirpMass))
	}
	if b.NonSpin {
		tw.kv("mass_range.non_spin", "true")
	} else {
		tw.kv("mass_range.max_ns_spin_mag", num(b.MaxNSSpinMag))
		tw.kv("mass_range.max_bh_spin_mag", num(b.MaxBHSpinMag))
		if b.NSBHFlag {
			tw.kv("mass_range.nsbh_flag", "true")
		} else {
			tw.kv("mass_range.ns_bh_boundary_mass", num(b.NSBHBoundaryMass))
		}
	}
	for _, rs := range b.Restrictions {
		tw.row("restriction", rs.Name, num(rs.Value), rs.Side, rs.Outcome, num(rs.Bound))
	}

	if e := r.Ethinca; e != nil {
		tw.kv("ethinca.pn_order", e.PNOrder)
		tw.kv("ethinca.cutoff", e.Cutoff)
		tw.kv("ethinca.frequency_step", num(e.FrequencyStep))
		tw.kv("ethinca.f_low", num(e.FLow))
	}

	if p := r.Products; p != nil {
		tw.kv("metric_products.f_max", num(p.FMax))
		tw.kv("metric_products.evals", nums(p.Evals))
		names := make([]string, 0, len(p.Moments))
		for k := range p.Moments {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			tw.kv("metric_products.moment."+k, num(p.Moments[k]))
		}
	}

	if len(r.Points) > 0 {
		tw.row("#point", "source", "line", "mass1", "mass2", "spin1z", "spin2z", "status", "ethinca_f_max", "xi")
	}
	for _, pt := range r.Points {
		status := "ok"
		if !pt.Physical {
			status = "violates:" + pt.Violation
		}
		fmax := ""
		if pt.EthincaFMax > 0 {
			fmax = num(pt.EthincaFMax)
		}
		tw.row("point", pt.Source, strconv.Itoa(pt.Line),
			num(pt.Mass1), num(pt.Mass2), num(pt.Spin1z), num(pt.Spin2z), status, fmax, nums(pt.Xi))
	}
	return tw.err
}

type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) kv(k, v string) { t.row(k, v) }

func (t *textWriter) row(cols ...string) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintln(t.w, strings.Join(cols, "\t"))
}

func num(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }

func nums(vs []float64) string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = num(v)
	}
	return strings.Join(s, ",")
}

func interval(lo, hi float64) string { return "[" + num(lo) + "," + num(hi) + "]" }
