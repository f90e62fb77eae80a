// Package diagram renders story plans and elevation profiles for
// terminal and image output.
package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dmirandah/e2kops/internal/geom"
)

// PlanPoint is one labelled node in a story plan.
type PlanPoint struct {
	ID string
	X  float64
	Y  float64
}

// PlanViewData holds everything needed to draw one story plan.
type PlanViewData struct {
	Story     string
	Elevation float64
	Points    []PlanPoint
	// Hull outlines the diaphragm candidates; empty when fewer than
	// three points lie on the story plane.
	Hull []geom.Point
	// Centroid marks the diaphragm master position, nil when the story
	// has no diaphragm.
	Centroid *geom.Point
}

// ExportPlanView draws one story plan to an image file: active points
// with their ids, the convex hull of the diaphragm candidates, and the
// centroid marker.
func ExportPlanView(data PlanViewData, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s  (z = %.3f)", data.Story, data.Elevation)
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	if len(data.Hull) >= 3 {
		fill := make(plotter.XYs, 0, len(data.Hull))
		for _, h := range data.Hull {
			fill = append(fill, plotter.XY{X: h.X, Y: h.Y})
		}
		poly, err := plotter.NewPolygon(fill)
		if err != nil {
			return err
		}
		poly.Color = color.RGBA{R: 100, G: 149, B: 237, A: 60}
		poly.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
		poly.LineStyle.Width = vg.Points(1.5)
		p.Add(poly)
	}

	if len(data.Points) > 0 {
		pts := make(plotter.XYs, len(data.Points))
		ids := make([]string, len(data.Points))
		for i, pp := range data.Points {
			pts[i] = plotter.XY{X: pp.X, Y: pp.Y}
			ids[i] = pp.ID
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = color.Black
		scatter.GlyphStyle.Radius = vg.Points(3)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)

		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: ids})
		if err != nil {
			return err
		}
		p.Add(labels)
	}

	if data.Centroid != nil {
		marker, err := plotter.NewScatter(plotter.XYs{{X: data.Centroid.X, Y: data.Centroid.Y}})
		if err != nil {
			return err
		}
		marker.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		marker.GlyphStyle.Radius = vg.Points(5)
		marker.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(marker)

		label, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: data.Centroid.X, Y: data.Centroid.Y}},
			Labels: []string{"CM"},
		})
		if err != nil {
			return err
		}
		p.Add(label)
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, filename)
}
