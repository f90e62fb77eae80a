package assemble

import (
	"github.com/dmirandah/e2kops/internal/e2k"
	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/tag"
)

// springGroundSource marks ground fixities synthesized for springs on
// otherwise unrestrained points.
const springGroundSource = "spring_ground"

// dofOrder fixes the DOF iteration for material creation and the
// -mat/-dir lists. Directions are 1-based backend DOF numbers.
var dofOrder = [6]struct {
	Name string
	Dir  int
}{
	{"ux", 1}, {"uy", 2}, {"uz", 3}, {"rx", 4}, {"ry", 5}, {"rz", 6},
}

func stiffnessByDOF(sp e2k.SpringProp) [6]float64 {
	return [6]float64{sp.UX, sp.UY, sp.UZ, sp.RX, sp.RY, sp.RZ}
}

// Springs creates a zeroLength spring assembly for every active point
// carrying a spring property: a fixed ground twin node at the same
// coordinates plus per-DOF elastic materials shared across points with
// the same property. If the structural node carries an ETABS restraint
// the ground node inherits that mask instead of full fixity.
func Springs(ctx *Context) (SpringsReport, error) {
	rep := SpringsReport{}

	// property -> dof name -> material tag, built on first use
	matTags := make(map[string]map[string]int)
	matCounter := 0

	for sidx, sname := range ctx.Story.Order {
		for _, ap := range ctx.Story.ActivePoints[sname] {
			if ap.Spring == "" {
				continue
			}

			sp, ok := ctx.Raw.SpringProps[ap.Spring]
			if !ok {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "point " + ap.ID, Story: sname,
					Reason: "spring property " + ap.Spring + " not in catalogue",
				})
				continue
			}

			nodeTag := tag.Grid(ap.ID, sidx)
			if !ctx.Graph.Has(nodeTag) {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "point " + ap.ID, Story: sname, Reason: "node not in graph",
				})
				continue
			}

			ks := stiffnessByDOF(sp)
			if allZero(ks) {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "point " + ap.ID, Story: sname, Reason: "all spring stiffnesses zero",
				})
				continue
			}

			groundTag := tag.SpringGround(nodeTag)
			ground := model.Node{
				Tag:        groundTag,
				X:          ap.X,
				Y:          ap.Y,
				Z:          ap.Z,
				Kind:       model.KindSpringGround,
				Story:      sname,
				StoryIndex: sidx,
				Source:     springGroundSource,
			}
			if _, created, err := ctx.Graph.EnsureNode(ground); err != nil {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "point " + ap.ID, Story: sname, Reason: err.Error(),
				})
				continue
			} else if created {
				if err := ctx.Domain.Node(groundTag, ap.X, ap.Y, ap.Z); err != nil {
					rep.Skips = append(rep.Skips, model.Skip{
						Unit: "point " + ap.ID, Story: sname, Reason: "backend ground node: " + err.Error(),
					})
					continue
				}
				rep.Grounds++
			}

			// The ground absorbs the point's explicit restraint when
			// present, otherwise it is fixed in all six DOFs.
			mask := [6]int{1, 1, 1, 1, 1, 1}
			source := springGroundSource
			if m, ok := ctx.Graph.SupportMask(nodeTag); ok {
				mask = m
				source = restraintSource
			}
			if err := ctx.Domain.Fix(groundTag, mask[0], mask[1], mask[2], mask[3], mask[4], mask[5]); err != nil {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "point " + ap.ID, Story: sname, Reason: "backend ground fix: " + err.Error(),
				})
				continue
			}
			ctx.Graph.AddSupport(model.Support{
				Node:   groundTag,
				Mask:   mask,
				Source: source,
				Story:  sname,
			})

			if _, ok := matTags[ap.Spring]; !ok {
				tags := make(map[string]int)
				for i, dof := range dofOrder {
					if ks[i] <= 0 {
						continue
					}
					mt := tag.SpringMaterialBase + matCounter
					matCounter++
					if err := ctx.Domain.UniaxialElastic(mt, ks[i]); err != nil {
						rep.Skips = append(rep.Skips, model.Skip{
							Unit: "spring material " + ap.Spring + "/" + dof.Name,
							Reason: "backend material: " + err.Error(),
						})
						continue
					}
					tags[dof.Name] = mt
					ctx.Graph.AddSpringMaterial(model.SpringMaterial{
						Tag:       mt,
						Property:  ap.Spring,
						DOF:       dof.Name,
						Stiffness: ks[i],
					})
					rep.Materials++
				}
				matTags[ap.Spring] = tags
			}

			var mats, dirs []int
			for _, dof := range dofOrder {
				if mt, ok := matTags[ap.Spring][dof.Name]; ok {
					mats = append(mats, mt)
					dirs = append(dirs, dof.Dir)
				}
			}
			if len(mats) == 0 {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "point " + ap.ID, Story: sname, Reason: "no positive spring stiffness",
				})
				continue
			}

			eleTag := tag.SpringElement(nodeTag)
			if err := ctx.Domain.ZeroLength(eleTag, groundTag, nodeTag, mats, dirs); err != nil {
				rep.Skips = append(rep.Skips, model.Skip{
					Unit: "point " + ap.ID, Story: sname, Reason: "backend zeroLength: " + err.Error(),
				})
				continue
			}

			ctx.Graph.AddSpring(model.Spring{
				Element:  eleTag,
				Node:     nodeTag,
				Ground:   groundTag,
				Property: ap.Spring,
				Story:    sname,
				Point:    ap.ID,
				Mats:     mats,
				Dirs:     dirs,
			})
			rep.Springs++
		}
	}

	ctx.Log.Info("spring supports",
		"springs", rep.Springs, "grounds", rep.Grounds,
		"materials", rep.Materials, "skipped", len(rep.Skips))
	return rep, nil
}

func allZero(ks [6]float64) bool {
	for _, k := range ks {
		if k != 0 {
			return false
		}
	}
	return true
}
