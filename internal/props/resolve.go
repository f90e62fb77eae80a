package props

import (
	"fmt"
	"strings"

	"github.com/dmirandah/e2kops/internal/e2k"
)

// Resolver maps section names to elasticBeamColumn inputs, joining the
// frame-section and material catalogues. Every unresolved step falls
// back to the standard defaults and is reported in the notes.
type Resolver struct {
	sections  map[string]e2k.FrameSection
	materials map[string]MaterialValues
	defaults  Defaults
}

// NewResolver builds a resolver over the parsed catalogues.
func NewResolver(raw *e2k.Model, d Defaults) *Resolver {
	return &Resolver{
		sections:  raw.FrameSections,
		materials: Materials(raw.Materials),
		defaults:  d,
	}
}

// Materials returns the derived concrete material constants.
func (r *Resolver) Materials() map[string]MaterialValues {
	return r.materials
}

// Resolve returns the section values for a member, with notes for
// every fallback taken. The member kind selects the default depth when
// the section itself cannot be resolved.
func (r *Resolver) Resolve(section string, kind e2k.LineKind) (SectionValues, []string) {
	var notes []string

	if section == "" {
		notes = append(notes, "no section assigned")
		return r.fallback(kind), notes
	}

	fs, ok := r.sections[section]
	if !ok {
		notes = append(notes, fmt.Sprintf("section %q not in catalogue", section))
		return r.fallback(kind), notes
	}

	if !strings.Contains(fs.Shape, "Rectangular") {
		notes = append(notes, fmt.Sprintf("section %q: unsupported shape %q", section, fs.Shape))
		return r.fallback(kind), notes
	}

	if fs.Dims.B == nil || fs.Dims.D == nil || *fs.Dims.B <= 0 || *fs.Dims.D <= 0 {
		notes = append(notes, fmt.Sprintf("section %q: missing or invalid dimensions", section))
		return r.fallback(kind), notes
	}

	b, d := *fs.Dims.B, *fs.Dims.D
	geo := Rectangle(b, d)

	e := r.defaults.E
	nu := r.defaults.Poisson
	if mv, ok := r.materials[fs.Material]; ok {
		e = mv.E
		nu = mv.Poisson
	} else {
		notes = append(notes, fmt.Sprintf("section %q: material %q not derivable, default E", section, fs.Material))
	}

	return SectionValues{
		A:     geo.Area,
		E:     e,
		G:     ShearModulus(e, nu),
		J:     geo.J,
		Iy:    geo.Iyy,
		Iz:    geo.Ixx,
		Width: b,
		Depth: d,
	}, notes
}

// fallback builds section values for the default rectangle of the
// member kind.
func (r *Resolver) fallback(kind e2k.LineKind) SectionValues {
	b := r.defaults.Width
	h := r.defaults.ColumnDepth
	if kind == e2k.LineBeam {
		h = r.defaults.BeamDepth
	}
	geo := Rectangle(b, h)
	e := r.defaults.E
	return SectionValues{
		A:     geo.Area,
		E:     e,
		G:     ShearModulus(e, r.defaults.Poisson),
		J:     geo.J,
		Iy:    geo.Iyy,
		Iz:    geo.Ixx,
		Width: b,
		Depth: h,
	}
}
