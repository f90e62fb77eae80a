// Package story builds the story-centered view of a parsed model: resolved
// elevations plus the points and lines active on each story. Everything
// downstream (tagging, element assembly, diaphragms) reads this graph
// instead of the raw records.
package story

import (
	"fmt"

	"github.com/dmirandah/e2kops/internal/e2k"
)

// ActivePoint is a point instantiated on a story. Z is absolute: the story
// elevation, lowered by the point's third coordinate when one exists
// (ExplicitZ marks that case).
type ActivePoint struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	ExplicitZ bool    `json:"explicit_z"`
	Diaphragm string  `json:"diaphragm,omitempty"`
	Spring    string  `json:"springprop,omitempty"`
}

// ActiveLine is a member activated on a story by a line assignment,
// joined with its connectivity record.
type ActiveLine struct {
	Name       string       `json:"name"`
	Kind       e2k.LineKind `json:"type"`
	I          string       `json:"i"`
	J          string       `json:"j"`
	Section    string       `json:"section,omitempty"`
	LengthOffI *float64     `json:"length_off_i,omitempty"`
	LengthOffJ *float64     `json:"length_off_j,omitempty"`
	OffsetsI   *e2k.Offsets `json:"offsets_i,omitempty"`
	OffsetsJ   *e2k.Offsets `json:"offsets_j,omitempty"`
}

// Graph is the resolved story view. Order lists stories top to bottom;
// the story index used by node tags is the position in Order.
type Graph struct {
	Order        []string                 `json:"story_order_top_to_bottom"`
	Elev         map[string]float64       `json:"story_elev"`
	ActivePoints map[string][]ActivePoint `json:"active_points"`
	ActiveLines  map[string][]ActiveLine  `json:"active_lines"`

	orderIdx map[string]int
	pointIdx map[string]map[string]int
}

// Build assembles the story graph from a parsed model. Assignments that
// reference unknown stories or points are ignored. The resolved
// elevations must be non-increasing top to bottom; a violation is an
// error since every later stage depends on it.
func Build(raw *e2k.Model, eps float64) (*Graph, error) {
	g := &Graph{
		Elev:         Elevations(raw.Stories, eps),
		ActivePoints: map[string][]ActivePoint{},
		ActiveLines:  map[string][]ActiveLine{},
	}
	for _, s := range raw.Stories {
		g.Order = append(g.Order, s.Name)
	}

	for i := 0; i+1 < len(g.Order); i++ {
		hi, lo := g.Elev[g.Order[i]], g.Elev[g.Order[i+1]]
		if lo > hi+eps {
			return nil, fmt.Errorf("story elevations not monotonic: %q at %.6g below %q at %.6g in top-to-bottom order",
				g.Order[i], hi, g.Order[i+1], lo)
		}
	}

	for _, pa := range raw.PointAssigns {
		elev, known := g.Elev[pa.Story]
		if !known {
			continue
		}
		prec, ok := raw.Points[pa.Point]
		if !ok {
			continue
		}
		ap := ActivePoint{
			ID:        pa.Point,
			X:         prec.X,
			Y:         prec.Y,
			Z:         elev,
			Diaphragm: pa.Diaphragm,
			Spring:    pa.Spring,
		}
		if prec.HasThree && prec.Third != nil {
			ap.Z = elev - *prec.Third
			ap.ExplicitZ = true
		}
		g.ActivePoints[pa.Story] = append(g.ActivePoints[pa.Story], ap)
	}

	type lineKey struct{ story, line string }
	merged := map[lineKey]int{}
	for _, la := range raw.LineAssigns {
		if _, known := g.Elev[la.Story]; !known {
			continue
		}
		rec, ok := raw.Lines[la.Line]
		if !ok {
			continue
		}
		k := lineKey{la.Story, la.Line}
		if idx, seen := merged[k]; seen {
			al := &g.ActiveLines[la.Story][idx]
			if la.Section != "" {
				al.Section = la.Section
			}
			if la.LengthOffI != nil {
				al.LengthOffI = la.LengthOffI
			}
			if la.LengthOffJ != nil {
				al.LengthOffJ = la.LengthOffJ
			}
			if la.OffsetsI != nil {
				al.OffsetsI = la.OffsetsI
			}
			if la.OffsetsJ != nil {
				al.OffsetsJ = la.OffsetsJ
			}
			continue
		}
		g.ActiveLines[la.Story] = append(g.ActiveLines[la.Story], ActiveLine{
			Name:       rec.Name,
			Kind:       rec.Kind,
			I:          rec.I,
			J:          rec.J,
			Section:    la.Section,
			LengthOffI: la.LengthOffI,
			LengthOffJ: la.LengthOffJ,
			OffsetsI:   la.OffsetsI,
			OffsetsJ:   la.OffsetsJ,
		})
		merged[k] = len(g.ActiveLines[la.Story]) - 1
	}

	g.index()
	return g, nil
}

func (g *Graph) index() {
	g.orderIdx = make(map[string]int, len(g.Order))
	for i, name := range g.Order {
		g.orderIdx[name] = i
	}
	g.pointIdx = make(map[string]map[string]int, len(g.ActivePoints))
	for sname, pts := range g.ActivePoints {
		m := make(map[string]int, len(pts))
		for i, p := range pts {
			m[p.ID] = i
		}
		g.pointIdx[sname] = m
	}
}

// Index returns the top-to-bottom position of a story name.
func (g *Graph) Index(name string) (int, bool) {
	i, ok := g.orderIdx[name]
	return i, ok
}

// PointOn returns the active instance of a point id on a story.
func (g *Graph) PointOn(storyName, pointID string) (ActivePoint, bool) {
	if m, ok := g.pointIdx[storyName]; ok {
		if i, ok := m[pointID]; ok {
			return g.ActivePoints[storyName][i], true
		}
	}
	return ActivePoint{}, false
}

// HasPointOn reports whether a point id is active on a story.
func (g *Graph) HasPointOn(storyName, pointID string) bool {
	_, ok := g.PointOn(storyName, pointID)
	return ok
}
