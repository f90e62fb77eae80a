package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmirandah/e2kops/internal/config"
	"github.com/dmirandah/e2kops/internal/e2k"
	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/tag"
)

const beamsFixture = `$ STORIES - IN SEQUENCE FROM TOP
  STORY "Roof"  HEIGHT 3
  STORY "Base"  ELEV 0

$ POINT COORDINATES
  POINT "1"  0 0
  POINT "2"  5 0
  POINT "3"  5 0

$ POINT ASSIGNS
  POINTASSIGN "1"  "Roof"
  POINTASSIGN "2"  "Roof"
  POINTASSIGN "3"  "Roof"

$ LINE CONNECTIVITIES
  LINE "B1"  BEAM  "1"  "2"
  LINE "B2"  BEAM  "1"  "9"
  LINE "B3"  BEAM  "2"  "3"

$ LINE ASSIGNS
  LINEASSIGN "B1"  "Roof"  SECTION "B30X50"
  LINEASSIGN "B2"  "Roof"
  LINEASSIGN "B3"  "Roof"

$ MATERIAL PROPERTIES
  MATERIAL "C30"  TYPE "Concrete"  FC 30000000  WEIGHTPERVOLUME 24000

$ FRAME SECTIONS
  FRAMESECTION "B30X50"  MATERIAL "C30"  SHAPE "Concrete Rectangular"  D 0.5  B 0.3
`

func TestBeamsSameStoryMembers(t *testing.T) {
	ctx, rec := testContext(t, beamsFixture, config.Default())

	rep, err := Beams(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Members)
	assert.Equal(t, 1, rep.Elements)

	reasons := skipReasons(rep.Skips)
	require.Len(t, reasons, 2)
	assert.Contains(t, reasons, "point 9 not active on Roof")
	assert.Contains(t, reasons, "zero length between nodes 2000 and 3000")

	etag := tag.Element(e2k.LineBeam, "B1", 0)
	require.Len(t, rec.Elements, 1)
	el := rec.Elements[0]
	assert.Equal(t, etag, el.Tag)
	// beams keep the drawn connectivity, no reorientation
	assert.Equal(t, 1000, el.INode)
	assert.Equal(t, 2000, el.JNode)
	assert.Equal(t, tag.BeamTransform(etag), el.TransfTag)
	// the catalogued 0.3×0.5 rectangle resolved
	assert.InDelta(t, 0.15, el.Sec.A, 1e-12)

	tr, ok := rec.TransformByTag(el.TransfTag)
	require.True(t, ok)
	assert.Equal(t, [3]float64{0, 0, 1}, tr.VecXZ)

	ge := ctx.Graph.Elements[0]
	assert.Equal(t, model.ElemBeam, ge.Kind)
	assert.Equal(t, "B30X50", ge.Section)
	assert.InDelta(t, 5.0, ge.Length, 1e-12)
}

func TestBeamsJointOffsets(t *testing.T) {
	ctx, rec := testContext(t, `$ STORIES - IN SEQUENCE FROM TOP
  STORY "Roof"  HEIGHT 3
$ POINT COORDINATES
  POINT "1"  0 0
  POINT "2"  5 0
$ POINT ASSIGNS
  POINTASSIGN "1"  "Roof"
  POINTASSIGN "2"  "Roof"
$ LINE CONNECTIVITIES
  LINE "B1"  BEAM  "1"  "2"
$ LINE ASSIGNS
  LINEASSIGN "B1"  "Roof"  LENGTHOFFI 0.4  OFFSETYI 0.05
`, config.Default())

	_, err := Beams(ctx)
	require.NoError(t, err)

	require.Len(t, rec.Elements, 1)
	tr, ok := rec.TransformByTag(rec.Elements[0].TransfTag)
	require.True(t, ok)
	require.NotNil(t, tr.DI)
	// axial end length along +x plus the lateral y offset
	assert.InDelta(t, 0.4, tr.DI[0], 1e-12)
	assert.InDelta(t, 0.05, tr.DI[1], 1e-12)

	assert.True(t, ctx.Graph.Elements[0].HasOffsets)
}

func TestBeamsPerStoryInstances(t *testing.T) {
	ctx, rec := testContext(t, `$ STORIES - IN SEQUENCE FROM TOP
  STORY "Roof"  HEIGHT 3
  STORY "Base"  ELEV 0
$ POINT COORDINATES
  POINT "1"  0 0
  POINT "2"  5 0
$ POINT ASSIGNS
  POINTASSIGN "1"  "Roof"
  POINTASSIGN "2"  "Roof"
  POINTASSIGN "1"  "Base"
  POINTASSIGN "2"  "Base"
$ LINE CONNECTIVITIES
  LINE "B1"  BEAM  "1"  "2"
$ LINE ASSIGNS
  LINEASSIGN "B1"  "Roof"
  LINEASSIGN "B1"  "Base"
`, config.Default())

	rep, err := Beams(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Members)

	// one element per story instance, distinct tags
	require.Len(t, rec.Elements, 2)
	assert.NotEqual(t, rec.Elements[0].Tag, rec.Elements[1].Tag)
	assert.Equal(t, tag.Element(e2k.LineBeam, "B1", 0), rec.Elements[0].Tag)
	assert.Equal(t, tag.Element(e2k.LineBeam, "B1", 1), rec.Elements[1].Tag)
}
