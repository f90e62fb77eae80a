package tag

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/dmirandah/e2kops/internal/e2k"
)

func TestPointIntNumericPassthrough(t *testing.T) {
	assert.Equal(t, 19, PointInt("19"))
	assert.Equal(t, 19, PointInt("  19  "))
	assert.Equal(t, 0, PointInt("0"))
}

func TestPointIntHashedIDs(t *testing.T) {
	a := PointInt("A1")
	assert.Equal(t, a, PointInt("A1"), "hashed ids must be stable")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 10_000_000)
	assert.NotEqual(t, a, PointInt("A2"))
}

func TestGridEncodesPointAndStory(t *testing.T) {
	// point 19 on story index 2
	assert.Equal(t, 19002, Grid("19", 2))
	assert.Equal(t, 19000, Grid("19", 0))

	g := Grid("A1", 3)
	assert.Equal(t, 3, g%StoryMultiplier)
	assert.Equal(t, PointInt("A1"), g/StoryMultiplier)
}

func TestElementTagBands(t *testing.T) {
	col := Element(e2k.LineColumn, "C1", 0)
	assert.GreaterOrEqual(t, col, columnBase)
	assert.Less(t, col, columnBase+elementSpan)

	beam := Element(e2k.LineBeam, "B1", 0)
	assert.GreaterOrEqual(t, beam, beamBase)
	assert.Less(t, beam, beamBase+elementSpan)

	assert.Equal(t, col, Element(e2k.LineColumn, "C1", 0), "tags must be deterministic")
	assert.NotEqual(t, col, Element(e2k.LineColumn, "C2", 0))
	assert.NotEqual(t, col, Element(e2k.LineColumn, "C1", 1))
}

func TestTransformTags(t *testing.T) {
	assert.Equal(t, 1_000_000_005, BeamTransform(5))
	assert.Equal(t, 1_100_000_005, ColumnTransform(5))
}

func TestSpringTags(t *testing.T) {
	assert.Equal(t, 9_019_002, SpringGround(19002))
	assert.Equal(t, 8_019_002, SpringElement(19002))
}

func TestGridRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("numeric grid tags decompose into point and story", prop.ForAll(
		func(pid int, sidx int) bool {
			tag := Grid(strconv.Itoa(pid), sidx)
			return tag/StoryMultiplier == pid && tag%StoryMultiplier == sidx
		},
		gen.IntRange(1, 5_000_000),
		gen.IntRange(0, 999),
	))

	properties.Property("element tags stay inside their kind band", prop.ForAll(
		func(name string, sidx int) bool {
			tag := Element(e2k.LineBeam, name, sidx)
			return tag >= beamBase && tag < beamBase+elementSpan
		},
		gen.AlphaString(),
		gen.IntRange(0, 200),
	))

	properties.TestingRun(t)
}
