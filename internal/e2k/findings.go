package e2k

import (
	"fmt"
	"math"
)

// Findings is the non-fatal completeness report for a parsed model.
// Problems point at definitions downstream stages will have to paper over
// with defaults; Warnings flag sections that came back empty.
type Findings struct {
	Problems []string `json:"problems"`
	Warnings []string `json:"warnings"`
}

// Check inspects a parsed model for incomplete or inconsistent
// definitions. It never fails the parse; the report is informational.
func (m *Model) Check() Findings {
	var f Findings

	for name, mat := range m.Materials.Properties {
		switch mat.Type {
		case "Steel", "Kinematic":
			if mat.Fy == 0 {
				f.Problems = append(f.Problems, fmt.Sprintf("steel material %q missing yield strength (fy)", name))
			}
			if mat.Fu == 0 {
				f.Problems = append(f.Problems, fmt.Sprintf("steel material %q missing ultimate strength (fu)", name))
			}
		}
	}
	for name, mat := range m.Materials.Concrete {
		if mat.Fc == 0 {
			f.Problems = append(f.Problems, fmt.Sprintf("concrete material %q missing compressive strength (fc)", name))
		}
		if mat.WeightPerVolume == 0 {
			f.Problems = append(f.Problems, fmt.Sprintf("concrete material %q missing weight per volume", name))
		}
	}

	for name, fs := range m.FrameSections {
		if fs.Material != "" {
			if _, ok := m.Materials.Properties[fs.Material]; !ok {
				f.Problems = append(f.Problems, fmt.Sprintf("frame section %q references unknown material %q", name, fs.Material))
			}
		}
		if fs.Shape == "" {
			f.Problems = append(f.Problems, fmt.Sprintf("frame section %q missing shape definition", name))
		}
		if fs.Dims.D == nil && fs.Dims.B == nil {
			f.Problems = append(f.Problems, fmt.Sprintf("frame section %q missing dimensions", name))
		}
	}

	for name, rb := range m.Rebar {
		if rb.Area == 0 {
			f.Problems = append(f.Problems, fmt.Sprintf("rebar %q missing area", name))
		}
		if rb.Diameter == 0 {
			f.Problems = append(f.Problems, fmt.Sprintf("rebar %q missing diameter", name))
		}
		if rb.Area > 0 && rb.Diameter > 0 {
			circle := math.Pi * rb.Diameter * rb.Diameter / 4
			if math.Abs(rb.Area-circle)/circle > 0.1 {
				f.Problems = append(f.Problems, fmt.Sprintf("rebar %q area/diameter inconsistency", name))
			}
		}
	}

	if len(m.Stories) == 0 {
		f.Warnings = append(f.Warnings, "no stories found, verify STORIES section exists")
	}
	if len(m.Points) == 0 {
		f.Warnings = append(f.Warnings, "no points found, verify POINT COORDINATES section exists")
	}
	if len(m.Lines) == 0 {
		f.Warnings = append(f.Warnings, "no lines found, verify LINE CONNECTIVITIES section exists")
	}
	return f
}

// Clean reports whether the check raised no problems (warnings allowed).
func (f Findings) Clean() bool {
	return len(f.Problems) == 0
}
