// Package props derives elastic member properties from the parsed ETABS
// catalogues: ACI 318 concrete modulus from fc, rectangular section
// geometry with Saint-Venant torsion, and a documented fallback chain
// for sections the export never defined.
package props

// MaterialValues are the elastic constants derived for one concrete
// material. Units are Pa throughout.
type MaterialValues struct {
	Name            string  `json:"name"`
	Fc              float64 `json:"fc"`
	E               float64 `json:"Ec"`
	Poisson         float64 `json:"poisson_ratio"`
	G               float64 `json:"G"`
	WeightPerVolume float64 `json:"weight_per_volume"`
}

// SectionGeometry are the geometric properties of a rectangular section
// in the section's own axes: Ixx about the strong axis, Iyy weak.
type SectionGeometry struct {
	Area float64 `json:"area"`
	Ixx  float64 `json:"Ixx"`
	Iyy  float64 `json:"Iyy"`
	J    float64 `json:"J"`
	Sxx  float64 `json:"Sxx"`
	Syy  float64 `json:"Syy"`
	Rx   float64 `json:"rx"`
	Ry   float64 `json:"ry"`
}

// SectionValues are the resolved inputs for one elasticBeamColumn in
// backend axis convention: Iz bends about the strong axis, Iy the weak.
type SectionValues struct {
	A     float64 `json:"A"`
	E     float64 `json:"E"`
	G     float64 `json:"G"`
	J     float64 `json:"J"`
	Iy    float64 `json:"Iy"`
	Iz    float64 `json:"Iz"`
	Width float64 `json:"b"`
	Depth float64 `json:"h"`
}

// Defaults are the fallback values used when a section, material or
// shape cannot be resolved from the catalogues.
type Defaults struct {
	Width       float64
	ColumnDepth float64
	BeamDepth   float64
	E           float64
	Poisson     float64
}

// StandardDefaults mirror the fallback rectangle and concrete modulus
// of the upstream translator.
func StandardDefaults() Defaults {
	return Defaults{
		Width:       0.40,
		ColumnDepth: 0.40,
		BeamDepth:   0.50,
		E:           2.5e10,
		Poisson:     0.2,
	}
}
