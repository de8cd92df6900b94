// pkg/api/bank_params_v1.go
package api

// BankParamsV1 is the stable JSON/YAML schema of a resolved bank
// configuration. Keep fields, names, and types stable. Add new fields only
// with ",omitempty".
type BankParamsV1 struct {
	Tool      string            `json:"tool" yaml:"tool"`
	Version   string            `json:"version" yaml:"version"`
	RunID     string            `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Metric    MetricV1          `json:"metric" yaml:"metric"`
	MassRange MassRangeV1       `json:"mass_range" yaml:"mass_range"`
	Ethinca   *EthincaV1        `json:"ethinca,omitempty" yaml:"ethinca,omitempty"`
	Products  *MetricProductsV1 `json:"metric_products,omitempty" yaml:"metric_products,omitempty"`
	Points    []PointV1         `json:"points,omitempty" yaml:"points,omitempty"`
}

type MetricV1 struct {
	PNOrder   string  `json:"pn_order" yaml:"pn_order"`
	F0        float64 `json:"f0" yaml:"f0"`
	FLow      float64 `json:"f_low" yaml:"f_low"`
	FUpper    float64 `json:"f_upper" yaml:"f_upper"`
	DeltaF    float64 `json:"delta_f" yaml:"delta_f"`
	Dimension int     `json:"dimension" yaml:"dimension"`
}

// MassRangeV1 holds the resolved (tightened) bounds. Chirp-mass bounds of 0
// are unrestricted.
type MassRangeV1 struct {
	MinMass1         float64         `json:"min_mass1" yaml:"min_mass1"`
	MaxMass1         float64         `json:"max_mass1" yaml:"max_mass1"`
	MinMass2         float64         `json:"min_mass2" yaml:"min_mass2"`
	MaxMass2         float64         `json:"max_mass2" yaml:"max_mass2"`
	MinTotalMass     float64         `json:"min_total_mass" yaml:"min_total_mass"`
	MaxTotalMass     float64         `json:"max_total_mass" yaml:"max_total_mass"`
	MinEta           float64         `json:"min_eta" yaml:"min_eta"`
	MaxEta           float64         `json:"max_eta" yaml:"max_eta"`
	MinChirpMass     float64         `json:"min_chirp_mass,omitempty" yaml:"min_chirp_mass,omitempty"`
	MaxChirpMass     float64         `json:"max_chirp_mass,omitempty" yaml:"max_chirp_mass,omitempty"`
	NonSpin          bool            `json:"non_spin,omitempty" yaml:"non_spin,omitempty"`
	MaxNSSpinMag     float64         `json:"max_ns_spin_mag" yaml:"max_ns_spin_mag"`
	MaxBHSpinMag     float64         `json:"max_bh_spin_mag" yaml:"max_bh_spin_mag"`
	NSBHBoundaryMass float64         `json:"ns_bh_boundary_mass" yaml:"ns_bh_boundary_mass"`
	NSBHFlag         bool            `json:"nsbh_flag,omitempty" yaml:"nsbh_flag,omitempty"`
	Restrictions     []RestrictionV1 `json:"restrictions,omitempty" yaml:"restrictions,omitempty"`
}

// RestrictionV1 reports how one chirp-mass or eta restriction was resolved.
type RestrictionV1 struct {
	Name      string  `json:"name" yaml:"name"`
	Value     float64 `json:"value" yaml:"value"`
	Side      string  `json:"side" yaml:"side"`
	Outcome   string  `json:"outcome" yaml:"outcome"` // "not-requested" | "redundant" | "applied"
	Bound     float64 `json:"bound,omitempty" yaml:"bound,omitempty"`
	Tightened bool    `json:"tightened,omitempty" yaml:"tightened,omitempty"`
}

type EthincaV1 struct {
	PNOrder       string  `json:"pn_order" yaml:"pn_order"`
	Cutoff        string  `json:"cutoff" yaml:"cutoff"`
	FrequencyStep float64 `json:"frequency_step" yaml:"frequency_step"`
	FLow          float64 `json:"f_low" yaml:"f_low"`
}

// MetricProductsV1 summarises the metric computed at the upper cutoff.
type MetricProductsV1 struct {
	FMax    float64            `json:"f_max" yaml:"f_max"`
	Cutoffs []float64          `json:"cutoffs" yaml:"cutoffs"`
	Moments map[string]float64 `json:"moments" yaml:"moments"`
	Metric  [][]float64        `json:"metric" yaml:"metric"`
	Evals   []float64          `json:"evals" yaml:"evals"`
}

// PointV1 is one classified candidate point.
type PointV1 struct {
	Source      string    `json:"source" yaml:"source"`
	Line        int       `json:"line,omitempty" yaml:"line,omitempty"`
	Mass1       float64   `json:"mass1" yaml:"mass1"`
	Mass2       float64   `json:"mass2" yaml:"mass2"`
	Spin1z      float64   `json:"spin1z" yaml:"spin1z"`
	Spin2z      float64   `json:"spin2z" yaml:"spin2z"`
	TotalMass   float64   `json:"total_mass" yaml:"total_mass"`
	Eta         float64   `json:"eta" yaml:"eta"`
	ChirpMass   float64   `json:"chirp_mass" yaml:"chirp_mass"`
	Physical    bool      `json:"physical" yaml:"physical"`
	Violation   string    `json:"violation,omitempty" yaml:"violation,omitempty"`
	EthincaFMax float64   `json:"ethinca_f_max,omitempty" yaml:"ethinca_f_max,omitempty"`
	Mu          []float64 `json:"mu,omitempty" yaml:"mu,omitempty"`
	Xi          []float64 `json:"xi,omitempty" yaml:"xi,omitempty"`
}
