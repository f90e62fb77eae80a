package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmirandah/e2kops/internal/geom"
)

func TestElevationProfile(t *testing.T) {
	order := []string{"Roof", "Level2", "Base"}
	elev := map[string]float64{"Roof": 6, "Level2": 3, "Base": 0}

	out := ElevationProfile(order, elev)

	assert.Contains(t, out, "STORY ELEVATIONS")
	assert.Contains(t, out, "base → roof")
	for _, name := range order {
		assert.Contains(t, out, name)
	}
	// story heights come from consecutive elevations; the base has none
	assert.Contains(t, out, "6.000")
	assert.Contains(t, out, "3.000")
	assert.Contains(t, out, "-")
}

func TestElevationProfileEmpty(t *testing.T) {
	assert.Equal(t, "  (no stories)\n", ElevationProfile(nil, nil))
}

func TestSummaryBox(t *testing.T) {
	out := SummaryBox("RESULTS", []string{"nodes: 9", "elements: 6"})

	assert.True(t, strings.HasPrefix(out, "  ╔"))
	assert.Contains(t, out, "RESULTS")
	assert.Contains(t, out, "nodes: 9")
	assert.Contains(t, out, "elements: 6")
	assert.Contains(t, out, "╠")
	assert.Contains(t, out, "╚")

	// title, two borders, divider, two lines, trailing newline
	assert.Len(t, strings.Split(out, "\n"), 7)
	assert.Equal(t, 6, strings.Count(out, "║"))
}

func TestSummaryBoxWidthFollowsLongestLine(t *testing.T) {
	out := SummaryBox("X", []string{"a much longer content line"})
	rows := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := utf8.RuneCountInString(rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, want, utf8.RuneCountInString(row), row)
	}
}

func TestExportPlanView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roof.png")
	data := PlanViewData{
		Story:     "Roof",
		Elevation: 3,
		Points: []PlanPoint{
			{ID: "1", X: 0, Y: 0},
			{ID: "2", X: 5, Y: 0},
			{ID: "3", X: 5, Y: 5},
			{ID: "4", X: 0, Y: 5},
		},
		Hull:     []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 0, Y: 5}},
		Centroid: &geom.Point{X: 2.5, Y: 2.5},
	}
	require.NoError(t, ExportPlanView(data, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportPlanViewDefaultsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan")
	require.NoError(t, ExportPlanView(PlanViewData{Story: "Base"}, path))

	_, err := os.Stat(path + ".png")
	assert.NoError(t, err)
}
