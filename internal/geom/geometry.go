// Package geom provides the plan-view geometry used for diaphragm
// extents: convex hulls, shoelace areas and plan centroids of story
// point sets.
package geom

import (
	"math"
	"sort"
)

// Point is a plan coordinate.
type Point struct {
	X float64
	Y float64
}

// cross returns the z component of (a-o) × (b-o).
func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// ConvexHull returns the convex hull of the points in counter-clockwise
// order without repeating the first vertex (Andrew's monotone chain).
// Duplicate input points are ignored; collinear boundary points are
// dropped. Fewer than two distinct points hull to themselves.
func ConvexHull(pts []Point) []Point {
	uniq := dedupe(pts)
	if len(uniq) <= 1 {
		return uniq
	}

	var lower []Point
	for _, p := range uniq {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []Point
	for i := len(uniq) - 1; i >= 0; i-- {
		p := uniq[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

func dedupe(pts []Point) []Point {
	sorted := append([]Point(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	out := sorted[:0]
	for i, p := range sorted {
		if i == 0 || p != sorted[i-1] {
			out = append(out, p)
		}
	}
	return out
}

// PolygonArea returns the shoelace area of a simple polygon given as an
// ordered vertex ring. Degenerate rings have zero area.
func PolygonArea(ring []Point) float64 {
	if len(ring) < 3 {
		return 0
	}
	var a float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		a += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(a) * 0.5
}

// Centroid returns the arithmetic mean of the points. Diaphragm masters
// sit at the mean of the candidate set, not at the area centroid.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return Point{X: sx / n, Y: sy / n}
}
