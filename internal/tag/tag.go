// Package tag derives the stable node and element identifiers used across
// the model graph, so repeated runs over the same export produce identical
// tags and model diffs stay clean.
package tag

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmirandah/e2kops/internal/e2k"
)

// Tag layout. Grid nodes occupy point_int*1000+story_index, elements get
// hashed tags above their kind base, transforms ride 1e9 above elements,
// and spring parts shift off the structural node tag. Interface nodes from
// rigid-end splitting live in their own 32-bit band (see Allocator).
const (
	StoryMultiplier = 1000

	beamBase    = 1_000_000
	columnBase  = 2_000_000
	elementSpan = 900_000_000

	beamTransformBase   = 1_000_000_000
	columnTransformBase = 1_100_000_000

	springGroundOffset = 9_000_000
	springElementBase  = 8_000_000

	// SpringMaterialBase seeds the uniaxial material tag sequence for
	// spring stiffnesses.
	SpringMaterialBase = 900_000
)

// stableInt maps text to a deterministic 32-bit integer, portable across
// runs and platforms.
func stableInt(text string) int {
	sum := sha1.Sum([]byte(text))
	return int(binary.BigEndian.Uint32(sum[:4]))
}

// PointInt converts a point id to its numeric form. Numeric ids pass
// through; anything else hashes into a compact stable range.
func PointInt(pid string) int {
	if v, err := strconv.Atoi(strings.TrimSpace(pid)); err == nil {
		return v
	}
	return stableInt("PT|"+pid) % 10_000_000
}

// Grid returns the node tag for a point instantiated at a story index
// (0 = top story). Injective over story indexes below StoryMultiplier.
func Grid(pid string, storyIndex int) int {
	return PointInt(pid)*StoryMultiplier + storyIndex
}

// Element returns the stable element tag for a member at a story slice.
// Beams and columns use separate bases to keep the kinds visually distinct
// when reading a model dump.
func Element(kind e2k.LineKind, lineName string, storyIndex int) int {
	base := columnBase
	if kind == e2k.LineBeam {
		base = beamBase
	}
	return base + stableInt(fmt.Sprintf("%s|%s|%d", kind, lineName, storyIndex))%elementSpan
}

// BeamTransform returns the geometric transform tag paired with a beam
// element tag.
func BeamTransform(elementTag int) int {
	return beamTransformBase + elementTag
}

// ColumnTransform returns the geometric transform tag paired with a column
// element tag.
func ColumnTransform(elementTag int) int {
	return columnTransformBase + elementTag
}

// SpringGround returns the tag of the fixed ground node paired with a
// spring-bearing structural node.
func SpringGround(nodeTag int) int {
	return nodeTag + springGroundOffset
}

// SpringElement returns the zero-length element tag for a spring at a
// structural node.
func SpringElement(nodeTag int) int {
	return springElementBase + nodeTag
}
