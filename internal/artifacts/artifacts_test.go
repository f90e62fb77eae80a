package artifacts

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmirandah/e2kops/internal/config"
	"github.com/dmirandah/e2kops/internal/e2k"
	"github.com/dmirandah/e2kops/internal/logging"
	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/ops"
	"github.com/dmirandah/e2kops/internal/pipeline"
	"github.com/dmirandah/e2kops/internal/version"
)

const artifactFixture = `$ STORIES - IN SEQUENCE FROM TOP
  STORY "Roof"  HEIGHT 3
  STORY "Base"  ELEV 0

$ POINT COORDINATES
  POINT "1"  0 0
  POINT "2"  6 0
  POINT "19"  2 2

$ POINT ASSIGNS
  POINTASSIGN "1"  "Roof"
  POINTASSIGN "2"  "Roof"
  POINTASSIGN "19"  "Roof"  SPRINGPROP "S1"
  POINTASSIGN "1"  "Base"  RESTRAINT "UX UY UZ"
  POINTASSIGN "2"  "Base"  RESTRAINT "UX UY UZ"

$ LINE CONNECTIVITIES
  LINE "C1"  COLUMN  "1"  "1"
  LINE "B1"  BEAM  "1"  "2"

$ LINE ASSIGNS
  LINEASSIGN "C1"  "Roof"
  LINEASSIGN "B1"  "Roof"

$ POINT SPRING PROPERTIES
  POINTSPRING "S1"  UZ 2E6
`

func runFixture(t *testing.T) *pipeline.Result {
	t.Helper()
	res, err := pipeline.Run(config.Default(), e2k.Parse(artifactFixture), ops.NewRecorder(), pipeline.StageAll, nil)
	require.NoError(t, err)
	return res
}

func readJSON(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestWriteAllEmitsEveryArtifact(t *testing.T) {
	res := runFixture(t)
	dir := t.TempDir()
	w := NewWriter(dir, logging.NewNop())
	require.NoError(t, w.WriteAll(res))

	want := []string{
		"parsed_raw.json", "story_graph.json", "nodes.json",
		"supports.json", "springs.json", "diaphragms.json",
		"columns.json", "beams.json",
		"story_table.csv", "point_matrix.csv",
		"manifest.json",
	}
	files := w.Files()
	require.Len(t, files, len(want))
	for i, f := range files {
		assert.Equal(t, want[i], f.Name)
		assert.Positive(t, f.Bytes)
		_, err := os.Stat(filepath.Join(dir, f.Name))
		assert.NoError(t, err, f.Name)
	}
}

func TestWriteAllManifest(t *testing.T) {
	res := runFixture(t)
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir, logging.NewNop()).WriteAll(res))

	var m struct {
		RunID       string     `json:"run_id"`
		GeneratedAt string     `json:"generated_at"`
		Tool        string     `json:"tool"`
		Version     string     `json:"version"`
		Stage       string     `json:"stage"`
		Files       []FileInfo `json:"files"`
	}
	readJSON(t, dir, "manifest.json", &m)

	_, err := uuid.Parse(m.RunID)
	assert.NoError(t, err)
	_, err = time.Parse(time.RFC3339, m.GeneratedAt)
	assert.NoError(t, err)
	assert.Equal(t, "e2kops", m.Tool)
	assert.Equal(t, version.Version, m.Version)
	assert.Equal(t, "all", m.Stage)
	// the manifest lists everything written before it, not itself
	assert.Len(t, m.Files, 10)
}

func TestWriteAllSupportsDoc(t *testing.T) {
	res := runFixture(t)
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir, logging.NewNop()).WriteAll(res))

	var sup struct {
		Version int             `json:"version"`
		Applied []model.Support `json:"applied"`
		Skipped int             `json:"skipped"`
	}
	readJSON(t, dir, "supports.json", &sup)

	assert.Equal(t, 1, sup.Version)
	require.Len(t, sup.Applied, 2)
	assert.Equal(t, [6]int{1, 1, 1, 0, 0, 0}, sup.Applied[0].Mask)
	assert.Equal(t, "ETABS_restraint", sup.Applied[0].Source)
	assert.Zero(t, sup.Skipped)
}

func TestWriteAllElementDocs(t *testing.T) {
	res := runFixture(t)
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir, logging.NewNop()).WriteAll(res))

	var cols struct {
		Columns []model.Element `json:"columns"`
		Counts  map[string]int  `json:"counts"`
	}
	readJSON(t, dir, "columns.json", &cols)
	require.Len(t, cols.Columns, 1)
	assert.Equal(t, model.ElemColumn, cols.Columns[0].Kind)
	assert.Equal(t, 1, cols.Counts["created"])

	var beams struct {
		Beams []model.Element `json:"beams"`
	}
	readJSON(t, dir, "beams.json", &beams)
	require.Len(t, beams.Beams, 1)
	assert.Equal(t, "B1", beams.Beams[0].Line)
}

func TestWriteAllNodesDoc(t *testing.T) {
	res := runFixture(t)
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir, logging.NewNop()).WriteAll(res))

	var doc struct {
		Nodes  []model.Node   `json:"nodes"`
		Counts map[string]int `json:"counts"`
	}
	readJSON(t, dir, "nodes.json", &doc)
	assert.Len(t, doc.Nodes, 5)
	assert.Equal(t, 5, doc.Counts["total"])
	assert.Equal(t, 5, doc.Counts["grid"])
	// the spring ground belongs to springs.json, not here
	assert.NotContains(t, doc.Counts, string(model.KindSpringGround))
	for _, n := range doc.Nodes {
		assert.NotEqual(t, model.KindSpringGround, n.Kind)
	}
}

func TestWriteAllSpringsDoc(t *testing.T) {
	res := runFixture(t)
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir, logging.NewNop()).WriteAll(res))

	var doc struct {
		Version     int            `json:"version"`
		GroundNodes []model.Node   `json:"ground_nodes"`
		Counts      map[string]int `json:"counts"`
	}
	readJSON(t, dir, "springs.json", &doc)
	assert.Equal(t, 2, doc.Version)
	require.Len(t, doc.GroundNodes, 1)
	assert.Equal(t, model.KindSpringGround, doc.GroundNodes[0].Kind)
	assert.Equal(t, 1, doc.Counts["elements"])
	assert.Equal(t, 1, doc.Counts["grounds"])
}

func TestWriteAllStoryTable(t *testing.T) {
	res := runFixture(t)
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir, logging.NewNop()).WriteAll(res))

	f, err := os.Open(filepath.Join(dir, "story_table.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"story", "index", "elevation", "points", "lines"}, rows[0])
	assert.Equal(t, []string{"Roof", "0", "3", "3", "2"}, rows[1])
	assert.Equal(t, []string{"Base", "1", "0", "2", "0"}, rows[2])
}

func TestWriteAllPointMatrix(t *testing.T) {
	res := runFixture(t)
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir, logging.NewNop()).WriteAll(res))

	f, err := os.Open(filepath.Join(dir, "point_matrix.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"point", "Roof", "Base"}, rows[0])
	assert.Equal(t, []string{"1", "1", "1"}, rows[1])
	assert.Equal(t, []string{"2", "1", "1"}, rows[2])
	assert.Equal(t, []string{"19", "1", "0"}, rows[3])
}

func TestWriteAllBadDirectory(t *testing.T) {
	blocked := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	w := NewWriter(filepath.Join(blocked, "out"), logging.NewNop())
	err := w.WriteAll(runFixture(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create artifact dir")
	assert.Empty(t, w.Files())
}
