package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmirandah/e2kops/internal/e2k"
)

func fptr(v float64) *float64 { return &v }

func catalogueModel() *e2k.Model {
	return &e2k.Model{
		FrameSections: map[string]e2k.FrameSection{
			"B30X50": {
				Name:     "B30X50",
				Material: "C30",
				Shape:    "Concrete Rectangular",
				Dims:     e2k.SectionDims{B: fptr(0.3), D: fptr(0.5)},
			},
			"W14": {
				Name:     "W14",
				Material: "A992",
				Shape:    "Steel I/Wide Flange",
				Dims:     e2k.SectionDims{B: fptr(0.2), D: fptr(0.35)},
			},
			"NODIMS": {
				Name:     "NODIMS",
				Material: "C30",
				Shape:    "Concrete Rectangular",
			},
			"ORPHAN": {
				Name:     "ORPHAN",
				Material: "GHOST",
				Shape:    "Concrete Rectangular",
				Dims:     e2k.SectionDims{B: fptr(0.4), D: fptr(0.4)},
			},
		},
		Materials: e2k.Materials{
			Concrete: map[string]*e2k.Material{
				"C30": {Name: "C30", Fc: 30e6, WeightPerVolume: 24000},
			},
		},
	}
}

func TestResolveCataloguedSection(t *testing.T) {
	r := NewResolver(catalogueModel(), StandardDefaults())

	sv, notes := r.Resolve("B30X50", e2k.LineBeam)
	assert.Empty(t, notes)

	assert.InDelta(t, 0.15, sv.A, 1e-12)
	// backend axes: Iz bends about the strong axis
	geo := Rectangle(0.3, 0.5)
	assert.InDelta(t, geo.Ixx, sv.Iz, 1e-12)
	assert.InDelta(t, geo.Iyy, sv.Iy, 1e-12)
	assert.InDelta(t, geo.J, sv.J, 1e-12)
	assert.InDelta(t, ElasticModulus(30e6), sv.E, 1e-3)
	assert.InDelta(t, sv.E/2.4, sv.G, 1e-3)
	assert.Equal(t, 0.3, sv.Width)
	assert.Equal(t, 0.5, sv.Depth)
}

func TestResolveNoSectionAssigned(t *testing.T) {
	r := NewResolver(catalogueModel(), StandardDefaults())

	sv, notes := r.Resolve("", e2k.LineColumn)
	require.Equal(t, []string{"no section assigned"}, notes)
	// column fallback is the default square
	assert.Equal(t, 0.40, sv.Width)
	assert.Equal(t, 0.40, sv.Depth)
	assert.Equal(t, 2.5e10, sv.E)
}

func TestResolveUnknownSection(t *testing.T) {
	r := NewResolver(catalogueModel(), StandardDefaults())

	sv, notes := r.Resolve("MISSING", e2k.LineBeam)
	require.Len(t, notes, 1)
	assert.Equal(t, `section "MISSING" not in catalogue`, notes[0])
	// beam fallback is deeper than the column one
	assert.Equal(t, 0.50, sv.Depth)
}

func TestResolveUnsupportedShape(t *testing.T) {
	r := NewResolver(catalogueModel(), StandardDefaults())

	_, notes := r.Resolve("W14", e2k.LineBeam)
	require.Len(t, notes, 1)
	assert.Equal(t, `section "W14": unsupported shape "Steel I/Wide Flange"`, notes[0])
}

func TestResolveMissingDimensions(t *testing.T) {
	r := NewResolver(catalogueModel(), StandardDefaults())

	_, notes := r.Resolve("NODIMS", e2k.LineColumn)
	require.Len(t, notes, 1)
	assert.Equal(t, `section "NODIMS": missing or invalid dimensions`, notes[0])
}

func TestResolveUnderivableMaterialKeepsGeometry(t *testing.T) {
	r := NewResolver(catalogueModel(), StandardDefaults())

	sv, notes := r.Resolve("ORPHAN", e2k.LineColumn)
	require.Len(t, notes, 1)
	assert.Equal(t, `section "ORPHAN": material "GHOST" not derivable, default E`, notes[0])
	// real dimensions survive, only the modulus falls back
	assert.Equal(t, 0.4, sv.Width)
	assert.Equal(t, 2.5e10, sv.E)
}

func TestResolverMaterials(t *testing.T) {
	r := NewResolver(catalogueModel(), StandardDefaults())
	require.Contains(t, r.Materials(), "C30")
}
