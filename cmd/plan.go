package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmirandah/e2kops/internal/config"
	"github.com/dmirandah/e2kops/internal/diagram"
	"github.com/dmirandah/e2kops/internal/e2k"
	"github.com/dmirandah/e2kops/internal/geom"
	"github.com/dmirandah/e2kops/internal/story"
	"github.com/dmirandah/e2kops/internal/tag"
)

var (
	planInput  string
	planOut    string
	planStory  string
	planConfig string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Draw story plan views",
	Long: `Draw a plan view image for each story: active points with their
ids, the convex hull of the points on the story plane, and the hull
centroid.

Examples:
  e2kops plan --input tower.e2k --out plans/
  e2kops plan -i tower.e2k -o plans/ --story Story1`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVarP(&planInput, "input", "i", "", "Path to the .e2k export [required]")
	planCmd.MarkFlagRequired("input")

	planCmd.Flags().StringVarP(&planOut, "out", "o", "plans", "Image output directory")
	planCmd.Flags().StringVar(&planStory, "story", "", "Draw only this story")
	planCmd.Flags().StringVar(&planConfig, "config", "", "Path to a YAML config file")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(planConfig)
	if err != nil {
		return err
	}
	text, err := os.ReadFile(planInput)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	sg, err := story.Build(e2k.Parse(string(text)), cfg.Tolerances.Eps)
	if err != nil {
		return err
	}

	stories := sg.Order
	if planStory != "" {
		if _, ok := sg.Index(planStory); !ok {
			return fmt.Errorf("unknown story %q", planStory)
		}
		stories = []string{planStory}
	}

	written := 0
	for _, name := range stories {
		active := sg.ActivePoints[name]
		if len(active) == 0 && planStory == "" {
			continue
		}

		pts := make([]story.ActivePoint, len(active))
		copy(pts, active)
		sort.Slice(pts, func(a, b int) bool {
			ta, tb := tag.PointInt(pts[a].ID), tag.PointInt(pts[b].ID)
			if ta != tb {
				return ta < tb
			}
			return pts[a].ID < pts[b].ID
		})

		data := diagram.PlanViewData{Story: name, Elevation: sg.Elev[name]}
		var onPlane []geom.Point
		for _, ap := range pts {
			data.Points = append(data.Points, diagram.PlanPoint{ID: ap.ID, X: ap.X, Y: ap.Y})
			if math.Abs(ap.Z-sg.Elev[name]) <= cfg.Tolerances.Eps {
				onPlane = append(onPlane, geom.Point{X: ap.X, Y: ap.Y})
			}
		}
		if len(onPlane) >= 3 {
			data.Hull = geom.ConvexHull(onPlane)
			c := geom.Centroid(onPlane)
			data.Centroid = &c
		}

		safe := strings.NewReplacer(" ", "_", "/", "_").Replace(name)
		file := filepath.Join(planOut, "plan_"+safe+".png")
		if err := diagram.ExportPlanView(data, file); err != nil {
			return fmt.Errorf("plan view %s: %w", name, err)
		}
		fmt.Printf("  wrote %s\n", file)
		written++
	}

	fmt.Printf("\n  %d plan view(s) written to %s\n", written, planOut)
	return nil
}
