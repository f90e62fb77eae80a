package rigidend

import (
	"fmt"
	"math"

	"github.com/dmirandah/e2kops/internal/tag"
)

// Segment roles in split mode.
const (
	RoleRigidI     = "rigid_i"
	RoleDeformable = "deformable"
	RoleRigidJ     = "rigid_j"
)

// Line-name suffixes that derive per-segment element tags.
const (
	SuffixRigidI = "::rigidI"
	SuffixRigidJ = "::rigidJ"
)

// Segment is one element of a split member. Rigid segments get their
// section constants scaled up by the configured rigid-end factor.
type Segment struct {
	Role   string
	Suffix string
	ITag   int
	JTag   int
	Rigid  bool
}

// InterfaceNode is a node minted at a rigid/deformable boundary. Its
// story index derives from the adjacent endpoint tag; the source string
// is the idempotency key shared with the tag allocator.
type InterfaceNode struct {
	Tag        int
	End        tag.End
	X, Y, Z    float64
	StoryIndex int
	Source     string
}

// Plan is the decomposition of one member into segments plus the
// interface nodes the split created.
type Plan struct {
	Segments   []Segment
	Interfaces []InterfaceNode
}

func clampOffset(off, length float64) float64 {
	if length <= 0 {
		return 0
	}
	return math.Max(0, math.Min(off, length))
}

func pointAt(pI, pJ [3]float64, length, off float64, end tag.End) [3]float64 {
	t := 0.0
	if length > 0 {
		t = clampOffset(off, length) / length
	}
	v := [3]float64{pJ[0] - pI[0], pJ[1] - pI[1], pJ[2] - pI[2]}
	if end == tag.EndI {
		return [3]float64{pI[0] + v[0]*t, pI[1] + v[1]*t, pI[2] + v[2]*t}
	}
	return [3]float64{pJ[0] - v[0]*t, pJ[1] - v[1]*t, pJ[2] - v[2]*t}
}

// Split decomposes a member with rigid end lengths into up to three
// segments joined at interface nodes allocated through alloc. An end
// participates only when its length is positive and the member has
// extent. Members without usable ends come back as a single deformable
// segment between the original tags.
func Split(alloc *tag.Allocator, iTag, jTag int, pI, pJ [3]float64, lenI, lenJ float64) (Plan, error) {
	v := [3]float64{pJ[0] - pI[0], pJ[1] - pI[1], pJ[2] - pI[2]}
	length := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])

	hasI := lenI > 0 && length > 0
	hasJ := lenJ > 0 && length > 0

	plan := Plan{}
	nIm, nJm := iTag, jTag

	if hasI {
		pIm := pointAt(pI, pJ, length, lenI, tag.EndI)
		t, err := alloc.Interface(iTag, jTag, tag.EndI)
		if err != nil {
			return Plan{}, err
		}
		nIm = t
		plan.Interfaces = append(plan.Interfaces, InterfaceNode{
			Tag:        t,
			End:        tag.EndI,
			X:          pIm[0],
			Y:          pIm[1],
			Z:          pIm[2],
			StoryIndex: iTag % 1000,
			Source:     fmt.Sprintf("interface(%d,%d,%s)", iTag, jTag, tag.EndI),
		})
		plan.Segments = append(plan.Segments, Segment{
			Role: RoleRigidI, Suffix: SuffixRigidI, ITag: iTag, JTag: nIm, Rigid: true,
		})
	}

	if hasJ {
		pJm := pointAt(pI, pJ, length, lenJ, tag.EndJ)
		t, err := alloc.Interface(iTag, jTag, tag.EndJ)
		if err != nil {
			return Plan{}, err
		}
		nJm = t
		plan.Interfaces = append(plan.Interfaces, InterfaceNode{
			Tag:        t,
			End:        tag.EndJ,
			X:          pJm[0],
			Y:          pJm[1],
			Z:          pJm[2],
			StoryIndex: jTag % 1000,
			Source:     fmt.Sprintf("interface(%d,%d,%s)", iTag, jTag, tag.EndJ),
		})
	}

	plan.Segments = append(plan.Segments, Segment{
		Role: RoleDeformable, ITag: nIm, JTag: nJm,
	})

	if hasJ {
		plan.Segments = append(plan.Segments, Segment{
			Role: RoleRigidJ, Suffix: SuffixRigidJ, ITag: nJm, JTag: jTag, Rigid: true,
		})
	}

	return plan, nil
}
