package assemble

import (
	"fmt"

	"github.com/dmirandah/e2kops/internal/e2k"
	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/tag"
)

// beamVecXZ is the local xz vector for horizontal members.
var beamVecXZ = [3]float64{0, 0, 1}

// Beams creates beam elements story by story. Both endpoints must be
// active on the member's own story; beams keep the connectivity order
// as drawn, there is no reorientation.
func Beams(ctx *Context) (ElementsReport, error) {
	rep := ElementsReport{}

	for sidx, sname := range ctx.Story.Order {
		for _, al := range ctx.Story.ActiveLines[sname] {
			if al.Kind != e2k.LineBeam {
				continue
			}

			nI, err := ensureEndpoint(ctx, al.I, sname, sidx)
			var nJ endpoint
			if err == nil {
				nJ, err = ensureEndpoint(ctx, al.J, sname, sidx)
			}
			if err != nil {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "beam " + al.Name, Story: sname, Reason: err.Error(),
				})
				continue
			}

			length := distance(nI.Pos, nJ.Pos)
			if length < ctx.Cfg.Tolerances.MinLength {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "beam " + al.Name, Story: sname,
					Reason: fmt.Sprintf("zero length between nodes %d and %d", nI.Node, nJ.Node),
				})
				continue
			}

			sv, notes := ctx.Props.Resolve(al.Section, e2k.LineBeam)
			for _, note := range notes {
				ctx.Log.Warn("beam section fallback", "line", al.Name, "story", sname, "note", note)
			}

			created, err := emitMember(ctx, memberSpec{
				Kind:       e2k.LineBeam,
				ElemKind:   model.ElemBeam,
				Line:       al.Name,
				Story:      sname,
				StoryIndex: sidx,
				I:          nI,
				J:          nJ,
				LenI:       deref(al.LengthOffI),
				LenJ:       deref(al.LengthOffJ),
				LatI:       al.OffsetsI,
				LatJ:       al.OffsetsJ,
				Section:    al.Section,
				Values:     sv,
				VecXZ:      beamVecXZ,
				Transform:  tag.BeamTransform,
			})
			if err != nil {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "beam " + al.Name, Story: sname, Reason: err.Error(),
				})
				continue
			}
			rep.Members++
			rep.Elements += created
		}
	}

	ctx.Log.Info("beams", "members", rep.Members, "elements", rep.Elements, "skipped", len(rep.Skips))
	return rep, nil
}
