package assemble

import (
	"strings"

	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/tag"
)

// restraintSource marks supports that came from POINTASSIGN RESTRAINT
// tokens, as opposed to synthetic spring ground fixities.
const restraintSource = "ETABS_restraint"

// parseRestraintMask turns a RESTRAINT token list into the fixity mask
// in (UX, UY, UZ, RX, RY, RZ) order. Unknown tokens are ignored.
func parseRestraintMask(restraint string) [6]int {
	present := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToUpper(restraint)) {
		present[tok] = true
	}
	order := [6]string{"UX", "UY", "UZ", "RX", "RY", "RZ"}
	var mask [6]int
	for i, dof := range order {
		if present[dof] {
			mask[i] = 1
		}
	}
	return mask
}

// Restraints applies point restraints from the raw assignments. The
// assignment's story must exist and the grid node must already be in
// the graph; anything else is a skip, never an error.
func Restraints(ctx *Context) (RestraintsReport, error) {
	rep := RestraintsReport{}

	for _, pa := range ctx.Raw.PointAssigns {
		if pa.Restraint == "" {
			continue
		}

		sidx, ok := ctx.Story.Index(pa.Story)
		if !ok {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "point " + pa.Point, Story: pa.Story, Reason: "unknown story",
			})
			continue
		}

		nodeTag := tag.Grid(pa.Point, sidx)
		if !ctx.Graph.Has(nodeTag) {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "point " + pa.Point, Story: pa.Story, Reason: "node not in graph",
			})
			continue
		}

		mask := parseRestraintMask(pa.Restraint)
		if err := ctx.Domain.Fix(nodeTag, mask[0], mask[1], mask[2], mask[3], mask[4], mask[5]); err != nil {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "point " + pa.Point, Story: pa.Story, Reason: "backend fix: " + err.Error(),
			})
			continue
		}

		ctx.Graph.AddSupport(model.Support{
			Node:   nodeTag,
			Mask:   mask,
			Source: restraintSource,
			Story:  pa.Story,
		})
		rep.Applied++
	}

	ctx.Log.Info("point restraints", "applied", rep.Applied, "skipped", len(rep.Skips))
	return rep, nil
}
