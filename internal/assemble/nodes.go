package assemble

import (
	"errors"

	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/tag"
)

// Nodes creates one grid node per active point, story by story from the
// top. Node tags are deterministic, so re-running over a partially
// built graph is a no-op for nodes that already exist.
func Nodes(ctx *Context) (NodesReport, error) {
	rep := NodesReport{}

	for sidx, sname := range ctx.Story.Order {
		for _, ap := range ctx.Story.ActivePoints[sname] {
			t := tag.Grid(ap.ID, sidx)
			n := model.Node{
				Tag:        t,
				X:          ap.X,
				Y:          ap.Y,
				Z:          ap.Z,
				Kind:       model.KindGrid,
				Story:      sname,
				StoryIndex: sidx,
			}

			_, created, err := ctx.Graph.EnsureNode(n)
			if err != nil {
				if errors.Is(err, model.ErrTagCollision) {
					rep.Skips = append(rep.Skips, model.Skip{
						Unit: "point " + ap.ID, Story: sname, Reason: err.Error(),
					})
					continue
				}
				return rep, err
			}
			if !created {
				continue
			}

			if err := ctx.Domain.Node(t, ap.X, ap.Y, ap.Z); err != nil {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "point " + ap.ID, Story: sname, Reason: "backend node: " + err.Error(),
				})
				continue
			}
			rep.Created++
		}
		ctx.Log.Debug("story nodes created", "story", sname, "total", rep.Created)
	}

	ctx.Log.Info("grid nodes", "created", rep.Created, "skipped", len(rep.Skips))
	return rep, nil
}
