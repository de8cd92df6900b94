package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"tmpltbank/internal/bankcli"
	"tmpltbank/internal/cmdutil"
	"tmpltbank/internal/pipeline"
	"tmpltbank/internal/points"
	"tmpltbank/internal/provenance"
	"tmpltbank/internal/psdfile"
	"tmpltbank/internal/report"
	"tmpltbank/internal/version"
	"tmpltbank/pkg/api"

	"tmpltbank-core/ethinca"
	"tmpltbank-core/massrange"
	"tmpltbank-core/metric"
)

// ioError marks failures reading inputs, as opposed to bad values in them.
type ioError struct{ err error }

func (e *ioError) Error() string { return e.err.Error() }
func (e *ioError) Unwrap() error { return e.err }

// classify maps a configuration error to an exit code and the provenance
// outcome to record ("" for I/O failures and cancellation, which are not
// recorded).
func classify(err error) (int, provenance.Outcome) {
	var ioe *ioError
	switch {
	case errors.Is(err, context.Canceled):
		return exitCanceled, ""
	case errors.Is(err, massrange.ErrInfeasible):
		return exitInfeasible, provenance.OutcomeInfeasible
	case errors.As(err, &ioe):
		return exitIO, ""
	default:
		return exitUsage, provenance.OutcomeInvalid
	}
}

// wrapInput tags file-system errors as I/O failures.
func wrapInput(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return &ioError{err}
	}
	return err
}

// configure resolves the option groups into core parameters, classifies the
// candidate points and, with a PSD, computes the metric products.
func configure(ctx context.Context, opts bankcli.Options, log *slog.Logger, stderr io.Writer) (*api.BankParamsV1, error) {
	mp, err := bankcli.MetricParams(&opts.Metric)
	if err != nil {
		return nil, err
	}
	mr, err := bankcli.MassRangeParams(&opts.Mass, opts.NonSpin)
	if err != nil {
		return nil, err
	}
	for _, r := range mr.Restrictions() {
		log.Debug("restriction resolved", "name", r.Name, "value", r.Value, "outcome", string(r.Outcome),
			"side", r.Side, "bound", r.Bound, "tightened", r.Tightened)
	}
	ep, err := bankcli.EthincaParams(&opts.Ethinca, mp)
	if err != nil {
		return nil, err
	}

	rep := &api.BankParamsV1{
		Tool:      toolName,
		Version:   version.Version,
		Metric:    report.ToAPIMetric(mp),
		MassRange: report.ToAPIMassRange(mr, opts.NonSpin),
		Ethinca:   report.ToAPIEthinca(ep),
	}

	pts, err := points.Collect(opts.PointSpecs, opts.PointFiles)
	if err != nil {
		return nil, wrapInput(err)
	}
	fmaxes, err := pointCutoffs(pts, mp, ep, stderr, opts.Quiet)
	if err != nil {
		return nil, err
	}

	outside := 0
	for i, p := range pts {
		pv := report.ToAPIPoint(p.Source, p.Line, p.Mass1, p.Mass2, p.Spin1z, p.Spin2z)
		pv.Violation = mr.Violation(p.Mass1, p.Mass2, p.Spin1z, p.Spin2z)
		pv.Physical = pv.Violation == ""
		if !pv.Physical {
			outside++
			log.Debug("point outside mass range", "source", p.Source, "line", p.Line, "violation", pv.Violation)
		}
		if ep.DoEthinca {
			pv.EthincaFMax = fmaxes[i]
		}
		rep.Points = append(rep.Points, pv)
	}
	if outside > 0 {
		cmdutil.Warnf(stderr, opts.Quiet, "%d of %d points lie outside the mass range", outside, len(pts))
	}

	if opts.PSDFile == "" {
		return rep, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	psd, err := psdfile.Load(opts.PSDFile, mp)
	if err != nil {
		return nil, wrapInput(err)
	}
	prods, err := metric.Compute(mp, psd, distinct(fmaxes, mp.FUpper)...)
	if err != nil {
		return nil, err
	}
	log.Debug("metric computed", "cutoffs", prods.Cutoffs(), "dimension", metric.Dimension(mp.PNOrder))
	rep.Products = report.ToAPIProducts(prods)
	if err := project(ctx, opts.Threads, prods, pts, fmaxes, rep.Points, log); err != nil {
		return nil, err
	}
	return rep, nil
}

// pointCutoffs returns the metric upper cutoff used for each point: the
// ethinca f_max clipped to (f-low, f-upper], or f-upper without ethinca.
func pointCutoffs(pts []points.Point, mp metric.Params, ep ethinca.Params, stderr io.Writer, quiet bool) ([]float64, error) {
	out := make([]float64, len(pts))
	clipped := 0
	for i, p := range pts {
		out[i] = mp.FUpper
		if !ep.DoEthinca {
			continue
		}
		f, err := ep.FMax(p.Mass1, p.Mass2)
		if err != nil {
			return nil, err
		}
		switch {
		case f > mp.FUpper:
			f = mp.FUpper
			clipped++
		case f <= mp.FLow:
			return nil, fmt.Errorf("point %s:%d: ethinca f_max %g Hz is not above --f-low %g Hz",
				p.Source, p.Line, f, mp.FLow)
		}
		out[i] = f
	}
	if clipped > 0 {
		cmdutil.Warnf(stderr, quiet, "%d ethinca cutoffs above --f-upper were clipped to %g Hz", clipped, mp.FUpper)
	}
	return out, nil
}

// distinct returns extra followed by the unique values of vals.
func distinct(vals []float64, extra float64) []float64 {
	seen := map[float64]bool{extra: true}
	out := []float64{extra}
	for _, f := range vals {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// project fills mu (and, with at least two points, xi) for every point at
// its own cutoff. Per-point work runs on the worker pool.
func project(ctx context.Context, threads int, prods *metric.Products, pts []points.Point, fmaxes []float64, out []api.PointV1, log *slog.Logger) error {
	if len(pts) == 0 {
		return nil
	}
	p := prods.Params()
	cutoffs := prods.Cutoffs()
	pool := pipeline.Config{Threads: threads}

	// perPoint[i][k] is the mu of point i at cutoffs[k].
	perPoint, err := pipeline.Map(ctx, pool, len(pts), func(i int) ([][]float64, error) {
		l, err := metric.ChirpParams(p, pts[i].Mass1, pts[i].Mass2)
		if err != nil {
			return nil, err
		}
		row := make([][]float64, len(cutoffs))
		for k, f := range cutoffs {
			if row[k], err = prods.Mu(l, f); err != nil {
				return nil, err
			}
		}
		return row, nil
	})
	if err != nil {
		return err
	}

	mus := make(map[float64][][]float64, len(cutoffs))
	for k, f := range cutoffs {
		for i := range pts {
			mus[f] = append(mus[f], perPoint[i][k])
		}
	}
	for i := range pts {
		out[i].Mu = mus[fmaxes[i]][i]
	}
	if len(pts) < 2 {
		log.Debug("xi skipped", "reason", "fewer than two points")
		return nil
	}

	evecs := map[float64]*mat.Dense{}
	for f, m := range mus {
		v, err := metric.CovarianceEvecs(m)
		if err != nil {
			return err
		}
		evecs[f] = v
	}
	rot, err := prods.WithCovarianceEvecs(evecs)
	if err != nil {
		return err
	}
	xis, err := pipeline.Map(ctx, pool, len(pts), func(i int) ([]float64, error) {
		return rot.Xi(out[i].Mu, fmaxes[i])
	})
	if err != nil {
		return err
	}
	for i := range pts {
		out[i].Xi = xis[i]
	}
	return nil
}
