package assemble

import (
	"fmt"
	"math"

	"github.com/dmirandah/e2kops/internal/config"
	"github.com/dmirandah/e2kops/internal/e2k"
	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/props"
	"github.com/dmirandah/e2kops/internal/rigidend"
	"github.com/dmirandah/e2kops/internal/story"
	"github.com/dmirandah/e2kops/internal/tag"
)

// columnVecXZ is the local xz vector for vertical members.
var columnVecXZ = [3]float64{1, 0, 0}

// endpoint is a resolved member end: its grid node plus world position.
type endpoint struct {
	Node int
	Pos  [3]float64
}

func distance(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ensureEndpoint brings a point's grid node into the graph (and
// backend) if the nodes stage has not already, returning the endpoint.
func ensureEndpoint(ctx *Context, pid, sname string, sidx int) (endpoint, error) {
	ap, ok := ctx.Story.PointOn(sname, pid)
	if !ok {
		return endpoint{}, fmt.Errorf("point %s not active on %s", pid, sname)
	}
	t := tag.Grid(pid, sidx)
	n := model.Node{
		Tag: t, X: ap.X, Y: ap.Y, Z: ap.Z,
		Kind: model.KindGrid, Story: sname, StoryIndex: sidx,
	}
	_, created, err := ctx.Graph.EnsureNode(n)
	if err != nil {
		return endpoint{}, err
	}
	if created {
		if err := ctx.Domain.Node(t, ap.X, ap.Y, ap.Z); err != nil {
			return endpoint{}, err
		}
	}
	return endpoint{Node: t, Pos: [3]float64{ap.X, ap.Y, ap.Z}}, nil
}

// resolveSharedPoint implements the single-point rule (line i == j):
// the column spans from the current story to the first story strictly
// below where the point is active again.
func resolveSharedPoint(ctx *Context, al story.ActiveLine, sname string, sidx int) (top, bot endpoint, err error) {
	kFound := -1
	for k := sidx + 1; k < len(ctx.Story.Order); k++ {
		cand := ctx.Story.Order[k]
		if ctx.Story.HasPointOn(cand, al.I) && ctx.Story.HasPointOn(cand, al.J) {
			kFound = k
			break
		}
	}
	if kFound < 0 {
		return endpoint{}, endpoint{}, fmt.Errorf("no lower story with both endpoints")
	}

	top, err = ensureEndpoint(ctx, al.I, sname, sidx)
	if err != nil {
		return endpoint{}, endpoint{}, err
	}
	bot, err = ensureEndpoint(ctx, al.J, ctx.Story.Order[kFound], kFound)
	if err != nil {
		return endpoint{}, endpoint{}, err
	}
	return top, bot, nil
}

// resolveLowestOccurrence implements the explicit-endpoint rule (line
// i != j): each endpoint independently resolves to its lowest-elevation
// active occurrence scanning from the current story downward.
func resolveLowestOccurrence(ctx *Context, pid string, sidx int) (endpoint, error) {
	bestIdx := -1
	bestZ := math.Inf(1)
	for k := sidx; k < len(ctx.Story.Order); k++ {
		ap, ok := ctx.Story.PointOn(ctx.Story.Order[k], pid)
		if ok && ap.Z < bestZ {
			bestIdx = k
			bestZ = ap.Z
		}
	}
	if bestIdx < 0 {
		return endpoint{}, fmt.Errorf("point %s not active on or below current story", pid)
	}
	return ensureEndpoint(ctx, pid, ctx.Story.Order[bestIdx], bestIdx)
}

// Columns creates column elements story by story. Lines sharing one
// point id span to the next lower story where the point reappears;
// lines with two point ids resolve each endpoint to its bottom-most
// occurrence. Orientation follows the configured convention (I at the
// lower end by default); rigid end lengths stay bound to the I/J
// labels of the oriented element.
func Columns(ctx *Context) (ElementsReport, error) {
	rep := ElementsReport{}

	for sidx, sname := range ctx.Story.Order {
		for _, al := range ctx.Story.ActiveLines[sname] {
			if al.Kind != e2k.LineColumn {
				continue
			}

			var top, bot endpoint
			var err error
			if al.I != al.J {
				top, err = resolveLowestOccurrence(ctx, al.I, sidx)
				if err == nil {
					bot, err = resolveLowestOccurrence(ctx, al.J, sidx)
				}
				if err == nil && top.Pos[2] < bot.Pos[2] {
					// z decides which resolved end is the bottom
					top, bot = bot, top
				}
			} else {
				top, bot, err = resolveSharedPoint(ctx, al, sname, sidx)
			}
			if err != nil {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "column " + al.Name, Story: sname, Reason: err.Error(),
				})
				continue
			}

			length := distance(top.Pos, bot.Pos)
			if length < ctx.Cfg.Tolerances.MinLength {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "column " + al.Name, Story: sname,
					Reason: fmt.Sprintf("zero length between nodes %d and %d", top.Node, bot.Node),
				})
				continue
			}

			nI, nJ := bot, top
			if !ctx.Cfg.Columns.EnforceIAtBottom {
				nI, nJ = top, bot
			}

			lenI, lenJ := deref(al.LengthOffI), deref(al.LengthOffJ)
			sv, notes := ctx.Props.Resolve(al.Section, e2k.LineColumn)
			for _, note := range notes {
				ctx.Log.Warn("column section fallback", "line", al.Name, "story", sname, "note", note)
			}

			created, err := emitMember(ctx, memberSpec{
				Kind:       e2k.LineColumn,
				ElemKind:   model.ElemColumn,
				Line:       al.Name,
				Story:      sname,
				StoryIndex: sidx,
				I:          nI,
				J:          nJ,
				LenI:       lenI,
				LenJ:       lenJ,
				LatI:       al.OffsetsI,
				LatJ:       al.OffsetsJ,
				Section:    al.Section,
				Values:     sv,
				VecXZ:      columnVecXZ,
				Transform:  tag.ColumnTransform,
			})
			if err != nil {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "column " + al.Name, Story: sname, Reason: err.Error(),
				})
				continue
			}
			rep.Members++
			rep.Elements += created
		}
	}

	ctx.Log.Info("columns", "members", rep.Members, "elements", rep.Elements, "skipped", len(rep.Skips))
	return rep, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// memberSpec carries one oriented member through element emission.
type memberSpec struct {
	Kind       e2k.LineKind
	ElemKind   model.ElementKind
	Line       string
	Story      string
	StoryIndex int
	I, J       endpoint
	LenI, LenJ float64
	LatI, LatJ *e2k.Offsets
	Section    string
	Values     props.SectionValues
	VecXZ      [3]float64
	Transform  func(etag int) int
}

// emitMember creates the backend elements for one member: a single
// element with joint offsets on its transform, or the rigid/deformable
// segment chain when splitting is configured and the member carries end
// lengths. Returns the number of elements created.
func emitMember(ctx *Context, m memberSpec) (int, error) {
	if ctx.Cfg.RigidEnds.Mode == config.ModeSplit && (m.LenI > 0 || m.LenJ > 0) {
		return emitSplit(ctx, m)
	}

	dI, dJ := rigidend.Offsets(m.I.Pos, m.J.Pos, m.LenI, m.LenJ, m.LatI, m.LatJ)
	hasOffsets := rigidend.HasOffsets(dI, dJ, rigidend.DefaultTol)

	etag := tag.Element(m.Kind, m.Line, m.StoryIndex)
	ttag := m.Transform(etag)

	var pdI, pdJ *[3]float64
	if hasOffsets {
		pdI, pdJ = &dI, &dJ
	}
	if err := ctx.Domain.GeomTransf(ttag, "Linear", m.VecXZ, pdI, pdJ); err != nil {
		return 0, fmt.Errorf("backend transform: %w", err)
	}
	if err := ctx.Domain.ElasticBeamColumn(etag, m.I.Node, m.J.Node, sectionArgs(m.Values), ttag); err != nil {
		return 0, fmt.Errorf("backend element: %w", err)
	}

	ctx.Graph.AddElement(model.Element{
		Tag:          etag,
		Kind:         m.ElemKind,
		Line:         m.Line,
		Story:        m.Story,
		StoryIndex:   m.StoryIndex,
		INode:        m.I.Node,
		JNode:        m.J.Node,
		Section:      m.Section,
		Props:        m.Values,
		TransformTag: ttag,
		JointOffsetI: dI,
		JointOffsetJ: dJ,
		HasOffsets:   hasOffsets,
		Length:       distance(m.I.Pos, m.J.Pos),
	})
	return 1, nil
}

// emitSplit realizes rigid ends as explicit stiff segments joined at
// interface nodes. Lateral offsets are not applied in this mode.
func emitSplit(ctx *Context, m memberSpec) (int, error) {
	plan, err := rigidend.Split(ctx.Alloc, m.I.Node, m.J.Node, m.I.Pos, m.J.Pos, m.LenI, m.LenJ)
	if err != nil {
		return 0, fmt.Errorf("interface allocation: %w", err)
	}

	pos := map[int][3]float64{
		m.I.Node: m.I.Pos,
		m.J.Node: m.J.Pos,
	}
	for _, in := range plan.Interfaces {
		storyName := fmt.Sprintf("StoryIndex-%d", in.StoryIndex)
		if in.StoryIndex >= 0 && in.StoryIndex < len(ctx.Story.Order) {
			storyName = ctx.Story.Order[in.StoryIndex]
		}
		n := model.Node{
			Tag: in.Tag, X: in.X, Y: in.Y, Z: in.Z,
			Kind:       model.KindRigidInterface,
			Story:      storyName,
			StoryIndex: in.StoryIndex,
			Source:     in.Source,
		}
		if _, created, err := ctx.Graph.EnsureNode(n); err != nil {
			return 0, err
		} else if created {
			if err := ctx.Domain.Node(in.Tag, in.X, in.Y, in.Z); err != nil {
				return 0, fmt.Errorf("backend interface node: %w", err)
			}
		}
		pos[in.Tag] = [3]float64{in.X, in.Y, in.Z}
	}

	created := 0
	for _, seg := range plan.Segments {
		etag := tag.Element(m.Kind, m.Line+seg.Suffix, m.StoryIndex)
		ttag := m.Transform(etag)
		if err := ctx.Domain.GeomTransf(ttag, "Linear", m.VecXZ, nil, nil); err != nil {
			return created, fmt.Errorf("backend transform: %w", err)
		}

		sv := m.Values
		if seg.Rigid {
			sv = scaleRigid(sv, ctx.Cfg.RigidEnds.Scale)
		}
		if err := ctx.Domain.ElasticBeamColumn(etag, seg.ITag, seg.JTag, sectionArgs(sv), ttag); err != nil {
			return created, fmt.Errorf("backend element: %w", err)
		}

		ctx.Graph.AddElement(model.Element{
			Tag:          etag,
			Kind:         m.ElemKind,
			Line:         m.Line,
			Story:        m.Story,
			StoryIndex:   m.StoryIndex,
			INode:        seg.ITag,
			JNode:        seg.JTag,
			Section:      m.Section,
			Props:        sv,
			TransformTag: ttag,
			Segment:      seg.Role,
			Length:       distance(pos[seg.ITag], pos[seg.JTag]),
		})
		created++
	}
	return created, nil
}
