package assemble

import (
	"math"
	"sort"
	"strings"

	"github.com/dmirandah/e2kops/internal/geom"
	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/story"
	"github.com/dmirandah/e2kops/internal/tag"
)

// disconnectedLabel opts a point out of diaphragm membership, any case.
const disconnectedLabel = "disconnected"

// restrainedStoryIndices returns the story indices carrying explicit
// point restraints. Spring ground fixities do not count: a story whose
// only vertical support is a spring still gets its diaphragm.
func restrainedStoryIndices(g *model.Graph, storyCount int) map[int]bool {
	out := make(map[int]bool)
	for _, s := range g.Supports {
		n, ok := g.Node(s.Node)
		if !ok || n.Kind != model.KindGrid {
			continue
		}
		idx := s.Node % tag.StoryMultiplier
		if idx >= 0 && idx < storyCount {
			out[idx] = true
		}
	}
	return out
}

// planeCandidates filters a story's active points to those lying on the
// story plane within eps.
func planeCandidates(pts []story.ActivePoint, elev, eps float64) []story.ActivePoint {
	var out []story.ActivePoint
	for _, ap := range pts {
		if math.Abs(ap.Z-elev) <= eps {
			out = append(out, ap)
		}
	}
	return out
}

// Diaphragms creates at most one rigid diaphragm per story: master node
// at the candidate centroid, slab mass from the convex hull area, fix
// pattern leaving the in-plane DOFs free, and a rigidDiaphragm tie over
// the sorted slave set. The all-or-nothing label rule and the
// restrained-story exclusion are both enforced here.
func Diaphragms(ctx *Context) (DiaphragmsReport, error) {
	rep := DiaphragmsReport{}
	cfg := ctx.Cfg

	restrained := restrainedStoryIndices(ctx.Graph, len(ctx.Story.Order))
	nextMaster := ctx.Graph.MaxNodeTag() + 1

	for sidx, sname := range ctx.Story.Order {
		pts := ctx.Story.ActivePoints[sname]
		if len(pts) == 0 {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "diaphragm", Story: sname, Reason: "no active points",
			})
			continue
		}

		if restrained[sidx] {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "diaphragm", Story: sname, Reason: "story has supports",
			})
			continue
		}

		elev := ctx.Story.Elev[sname]
		plane := planeCandidates(pts, elev, cfg.Tolerances.Eps)
		if len(plane) == 0 {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "diaphragm", Story: sname, Reason: "no candidates on story plane",
			})
			continue
		}

		allLabeled := true
		allKnown := true
		for _, ap := range plane {
			label := strings.TrimSpace(ap.Diaphragm)
			if label == "" || strings.ToLower(label) == disconnectedLabel {
				allLabeled = false
				continue
			}
			if ctx.Raw.HasDiaphragmCatalogue() && !ctx.Raw.DiaphragmDeclared(label) {
				allKnown = false
			}
		}
		if !allLabeled {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "diaphragm", Story: sname,
				Reason: "mixed or missing diaphragm labels (all-or-nothing)",
			})
			continue
		}
		if !allKnown {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "diaphragm", Story: sname, Reason: "label not in diaphragm catalogue",
			})
			continue
		}

		if len(plane) < 2 {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "diaphragm", Story: sname, Reason: "fewer than 2 candidate nodes",
			})
			continue
		}

		slaves := make([]int, 0, len(plane))
		xy := make([]geom.Point, 0, len(plane))
		var zSum float64
		for _, ap := range plane {
			slaves = append(slaves, tag.Grid(ap.ID, sidx))
			xy = append(xy, geom.Point{X: ap.X, Y: ap.Y})
			zSum += ap.Z
		}
		sort.Ints(slaves)

		center := geom.Centroid(xy)
		cz := zSum / float64(len(plane))
		area := geom.PolygonArea(geom.ConvexHull(xy))

		master := nextMaster
		nextMaster++

		mn := model.Node{
			Tag: master, X: center.X, Y: center.Y, Z: cz,
			Kind: model.KindDiaphragmMaster, Story: sname, StoryIndex: sidx,
		}
		if _, _, err := ctx.Graph.EnsureNode(mn); err != nil {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "diaphragm", Story: sname, Reason: "master node: " + err.Error(),
			})
			continue
		}
		if err := ctx.Domain.Node(master, center.X, center.Y, cz); err != nil {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "diaphragm", Story: sname, Reason: "backend master node: " + err.Error(),
			})
			continue
		}

		m := cfg.Diaphragms.ConcreteDensity * cfg.Diaphragms.SlabThickness * area
		izz := cfg.Diaphragms.RZMassFactor * m

		massApplied := true
		if err := ctx.Domain.Mass(master, m, m, 0, 0, 0, izz); err != nil {
			ctx.Log.Warn("diaphragm mass failed", "story", sname, "master", master, "err", err)
			massApplied = false
		}
		fixApplied := true
		if err := ctx.Domain.Fix(master, 0, 0, 1, 1, 1, 0); err != nil {
			ctx.Log.Warn("diaphragm fix failed", "story", sname, "master", master, "err", err)
			fixApplied = false
		}

		if err := ctx.Domain.RigidDiaphragm(3, master, slaves); err != nil {
			rep.Skips = append(rep.Skips, model.Skip{
				Unit: "diaphragm", Story: sname, Reason: "rigidDiaphragm: " + err.Error(),
			})
			continue
		}

		ctx.Graph.AddDiaphragm(model.Diaphragm{
			Story:  sname,
			Master: master,
			Slaves: slaves,
			Mass: model.MassBlock{
				M: m, Izz: izz, Area: area,
				Thickness: cfg.Diaphragms.SlabThickness,
				Density:   cfg.Diaphragms.ConcreteDensity,
				Applied:   massApplied,
			},
			Fix: model.FixBlock{
				UX: 0, UY: 0, UZ: 1, RX: 1, RY: 1, RZ: 0, Applied: fixApplied,
			},
		})
		rep.Created++
		ctx.Log.Info("rigid diaphragm",
			"story", sname, "master", master, "slaves", len(slaves), "area", area)
	}

	ctx.Log.Info("diaphragms", "created", rep.Created, "skipped", len(rep.Skips))
	return rep, nil
}

// AttachInterfaces adds rigid interface nodes lying on a diaphragm
// story's plane to that diaphragm's slave set. The pass is additive,
// deduplicating and idempotent; it extends the recorded slave sets
// without re-issuing the backend constraint. Returns the number of
// tags attached.
func AttachInterfaces(ctx *Context) int {
	byStory := make(map[string][]int)
	offPlane := 0
	for _, n := range ctx.Graph.NodesOfKind(model.KindRigidInterface) {
		if n.Story == "" {
			continue
		}
		elev, ok := ctx.Story.Elev[n.Story]
		if !ok {
			continue
		}
		if math.Abs(n.Z-elev) > ctx.Cfg.Tolerances.PlaneTol {
			offPlane++
			continue
		}
		byStory[n.Story] = append(byStory[n.Story], n.Tag)
	}
	if offPlane > 0 {
		ctx.Log.Debug("interface nodes off story plane", "count", offPlane)
	}
	if len(byStory) == 0 {
		return 0
	}

	added := 0
	for i := range ctx.Graph.Diaphragms {
		d := &ctx.Graph.Diaphragms[i]
		candidates, ok := byStory[d.Story]
		if !ok {
			continue
		}
		have := make(map[int]bool, len(d.Slaves))
		for _, s := range d.Slaves {
			have[s] = true
		}
		grew := false
		for _, t := range candidates {
			if !have[t] {
				have[t] = true
				d.Slaves = append(d.Slaves, t)
				added++
				grew = true
			}
		}
		if grew {
			sort.Ints(d.Slaves)
		}
	}
	if added > 0 {
		ctx.Log.Info("attached interface nodes to diaphragms", "added", added)
	}
	return added
}
