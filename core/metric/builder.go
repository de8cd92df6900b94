package metric

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrMissingProduct is returned when a derived product needed to build or
// use the metric has not been supplied.
var ErrMissingProduct = errors.New("metric product not set")

// Builder accumulates the PSD, moments and per-cutoff metrics. Build
// checks that every product is present and returns an immutable Products.
type Builder struct {
	params  Params
	psd     *PSD
	moments *Moments
	metrics map[float64]*mat.SymDense
}

// NewBuilder starts a build for the given settings.
func NewBuilder(p Params) *Builder {
	return &Builder{params: p, metrics: map[float64]*mat.SymDense{}}
}

func (b *Builder) WithPSD(psd *PSD) *Builder {
	b.psd = psd
	return b
}

func (b *Builder) WithMoments(m *Moments) *Builder {
	b.moments = m
	return b
}

// WithMetric sets the metric for the upper cutoff fMax.
func (b *Builder) WithMetric(fMax float64, g *mat.SymDense) *Builder {
	b.metrics[fMax] = g
	return b
}

// Build validates the accumulated products and eigen-decomposes every
// metric. A metric at p.FUpper is always required.
func (b *Builder) Build() (*Products, error) {
	if err := b.params.Validate(); err != nil {
		return nil, err
	}
	if b.psd == nil {
		return nil, fmt.Errorf("%w: psd", ErrMissingProduct)
	}
	if b.moments == nil {
		return nil, fmt.Errorf("%w: moments", ErrMissingProduct)
	}
	if _, ok := b.metrics[b.params.FUpper]; !ok {
		return nil, fmt.Errorf("%w: metric at f-upper %g Hz", ErrMissingProduct, b.params.FUpper)
	}

	dim := Dimension(b.params.PNOrder)
	p := &Products{
		params:  b.params,
		psd:     b.psd.clone(),
		moments: b.moments.clone(),
		metric:  make(map[float64]*mat.SymDense, len(b.metrics)),
		evals:   make(map[float64][]float64, len(b.metrics)),
		evecs:   make(map[float64]*mat.Dense, len(b.metrics)),
	}
	for fMax, g := range b.metrics {
		if g == nil {
			return nil, fmt.Errorf("%w: metric at %g Hz", ErrMissingProduct, fMax)
		}
		if n := g.SymmetricDim(); n != dim {
			return nil, fmt.Errorf("metric at %g Hz is %dx%d, %s needs %dx%d", fMax, n, n, b.params.PNOrder, dim, dim)
		}
		var es mat.EigenSym
		if !es.Factorize(g, true) {
			return nil, fmt.Errorf("metric at %g Hz: eigen-decomposition failed", fMax)
		}
		var vecs mat.Dense
		es.VectorsTo(&vecs)
		p.metric[fMax] = copySym(g)
		p.evals[fMax] = es.Values(nil)
		p.evecs[fMax] = &vecs
	}
	return p, nil
}

// Compute runs the whole pipeline for a PSD: moments and metric at every
// cutoff (p.FUpper when none are given), then Build.
func Compute(p Params, psd *PSD, cutoffs ...float64) (*Products, error) {
	if len(cutoffs) == 0 {
		cutoffs = []float64{p.FUpper}
	}
	mom, err := ComputeMoments(p, psd, cutoffs...)
	if err != nil {
		return nil, err
	}
	b := NewBuilder(p).WithPSD(psd).WithMoments(mom)
	for _, f := range cutoffs {
		g, err := ComputeMetric(p, mom, f)
		if err != nil {
			return nil, err
		}
		b.WithMetric(f, g)
	}
	return b.Build()
}

// Products are the derived metric products. All accessors return copies.
type Products struct {
	params  Params
	psd     *PSD
	moments *Moments
	metric  map[float64]*mat.SymDense
	evals   map[float64][]float64
	evecs   map[float64]*mat.Dense
}

func (p *Products) Params() Params { return p.params }

func (p *Products) PSD() *PSD { return p.psd.clone() }

func (p *Products) Moments() *Moments { return p.moments.clone() }

// Cutoffs returns the upper frequency cutoffs with a metric, ascending.
func (p *Products) Cutoffs() []float64 {
	out := make([]float64, 0, len(p.metric))
	for f := range p.metric {
		out = append(out, f)
	}
	sort.Float64s(out)
	return out
}

func (p *Products) Metric(fMax float64) (*mat.SymDense, bool) {
	g, ok := p.metric[fMax]
	if !ok {
		return nil, false
	}
	return copySym(g), true
}

// Evals returns the metric eigenvalues at fMax in ascending order.
func (p *Products) Evals(fMax float64) ([]float64, bool) {
	v, ok := p.evals[fMax]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), v...), true
}

// Evecs returns the metric eigenvectors at fMax as columns.
func (p *Products) Evecs(fMax float64) (*mat.Dense, bool) {
	v, ok := p.evecs[fMax]
	if !ok {
		return nil, false
	}
	return mat.DenseCopyOf(v), true
}

// Mu rotates lambda coordinates into the metric eigen-directions and
// rescales them so the metric becomes the identity.
func (p *Products) Mu(lambdas []float64, fMax float64) ([]float64, error) {
	vecs, ok := p.evecs[fMax]
	if !ok {
		return nil, fmt.Errorf("%w: metric at %g Hz", ErrMissingProduct, fMax)
	}
	evals := p.evals[fMax]
	if len(lambdas) != len(evals) {
		return nil, fmt.Errorf("lambda has %d coordinates, metric has %d", len(lambdas), len(evals))
	}
	var mu mat.VecDense
	mu.MulVec(vecs.T(), mat.NewVecDense(len(lambdas), append([]float64(nil), lambdas...)))
	out := make([]float64, len(evals))
	for i, ev := range evals {
		out[i] = mu.AtVec(i) * math.Sqrt(math.Abs(ev))
	}
	return out, nil
}

// WithCovarianceEvecs attaches the principal directions of the mu space for
// every cutoff and returns the second-phase result.
func (p *Products) WithCovarianceEvecs(evecsCV map[float64]*mat.Dense) (*Rotated, error) {
	r := &Rotated{Products: p, evecsCV: make(map[float64]*mat.Dense, len(evecsCV))}
	for _, f := range p.Cutoffs() {
		v, ok := evecsCV[f]
		if !ok || v == nil {
			return nil, fmt.Errorf("%w: covariance eigenvectors at %g Hz", ErrMissingProduct, f)
		}
		n := len(p.evals[f])
		if rows, cols := v.Dims(); rows != n || cols != n {
			return nil, fmt.Errorf("covariance eigenvectors at %g Hz are %dx%d, want %dx%d", f, rows, cols, n, n)
		}
		r.evecsCV[f] = mat.DenseCopyOf(v)
	}
	return r, nil
}

// Rotated carries the covariance eigenvectors on top of Products.
type Rotated struct {
	*Products
	evecsCV map[float64]*mat.Dense
}

func (r *Rotated) EvecsCV(fMax float64) (*mat.Dense, bool) {
	v, ok := r.evecsCV[fMax]
	if !ok {
		return nil, false
	}
	return mat.DenseCopyOf(v), true
}

// Xi projects mu coordinates onto the covariance principal directions.
func (r *Rotated) Xi(mu []float64, fMax float64) ([]float64, error) {
	v, ok := r.evecsCV[fMax]
	if !ok {
		return nil, fmt.Errorf("%w: covariance eigenvectors at %g Hz", ErrMissingProduct, fMax)
	}
	n, _ := v.Dims()
	if len(mu) != n {
		return nil, fmt.Errorf("mu has %d coordinates, want %d", len(mu), n)
	}
	var xi mat.VecDense
	xi.MulVec(v.T(), mat.NewVecDense(n, append([]float64(nil), mu...)))
	return mat.Col(nil, 0, &xi), nil
}

// CovarianceEvecs returns the eigenvectors (as columns, by ascending
// variance) of the sample covariance of mu-space points.
func CovarianceEvecs(mus [][]float64) (*mat.Dense, error) {
	if len(mus) < 2 {
		return nil, fmt.Errorf("need at least two points for a covariance, got %d", len(mus))
	}
	dim := len(mus[0])
	data := make([]float64, 0, len(mus)*dim)
	for i, m := range mus {
		if len(m) != dim {
			return nil, fmt.Errorf("point %d has %d coordinates, want %d", i, len(m), dim)
		}
		data = append(data, m...)
	}
	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, mat.NewDense(len(mus), dim, data), nil)
	var es mat.EigenSym
	if !es.Factorize(&cov, true) {
		return nil, errors.New("covariance eigen-decomposition failed")
	}
	var vecs mat.Dense
	es.VectorsTo(&vecs)
	return &vecs, nil
}

func copySym(g *mat.SymDense) *mat.SymDense {
	out := mat.NewSymDense(g.SymmetricDim(), nil)
	out.CopySym(g)
	return out
}
