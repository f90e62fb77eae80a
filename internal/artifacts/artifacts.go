// Package artifacts writes the JSON and CSV outputs of a translation
// run. A failed write is logged and skipped; artifacts never abort a
// run that already assembled its model.
package artifacts

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dmirandah/e2kops/internal/assemble"
	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/pipeline"
	"github.com/dmirandah/e2kops/internal/tag"
	"github.com/dmirandah/e2kops/internal/version"
)

// FileInfo is one manifest entry.
type FileInfo struct {
	Name  string `json:"name"`
	Bytes int    `json:"bytes"`
}

// Writer emits artifacts into a single output directory.
type Writer struct {
	Dir string
	Log *slog.Logger

	files []FileInfo
}

func NewWriter(dir string, log *slog.Logger) *Writer {
	return &Writer{Dir: dir, Log: log}
}

// WriteAll emits every artifact for the run and finishes with the
// manifest. Only the output directory itself is allowed to fail the
// call.
func (w *Writer) WriteAll(res *pipeline.Result) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	w.writeJSON("parsed_raw.json", map[string]any{
		"generator": "e2kops",
		"version":   version.Version,
		"model":     res.Raw,
	})
	w.writeJSON("story_graph.json", storyGraphDoc(res))
	w.writeJSON("nodes.json", nodesDoc(res.Graph))
	w.writeJSON("supports.json", map[string]any{
		"version": 1,
		"applied": res.Graph.Supports,
		"skipped": len(res.Restraints.Skips),
	})
	w.writeJSON("springs.json", map[string]any{
		"version":      2,
		"ground_nodes": res.Graph.NodesOfKind(model.KindSpringGround),
		"materials":    res.Graph.SpringMaterials,
		"elements":     res.Graph.Springs,
		"counts": map[string]int{
			"grounds":   res.Springs.Grounds,
			"materials": res.Springs.Materials,
			"elements":  res.Springs.Springs,
			"skipped":   len(res.Springs.Skips),
		},
	})
	w.writeJSON("diaphragms.json", map[string]any{
		"diaphragms": res.Graph.Diaphragms,
		"counts": map[string]int{
			"created":  res.Diaphragms.Created,
			"attached": res.Attached,
			"skipped":  len(res.Diaphragms.Skips),
		},
		"skips": skipsOrEmpty(res.Diaphragms.Skips),
	})
	w.writeJSON("columns.json", elementsDoc("columns", res.Graph, model.ElemColumn, res.Columns))
	w.writeJSON("beams.json", elementsDoc("beams", res.Graph, model.ElemBeam, res.Beams))

	w.writeCSV("story_table.csv", storyTable(res))
	w.writeCSV("point_matrix.csv", pointMatrix(res))

	w.writeJSON("manifest.json", map[string]any{
		"run_id":       uuid.NewString(),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"tool":         "e2kops",
		"version":      version.Version,
		"stage":        string(res.Stage),
		"files":        w.files,
	})
	return nil
}

// Files lists what was written so far, in write order.
func (w *Writer) Files() []FileInfo {
	out := make([]FileInfo, len(w.files))
	copy(out, w.files)
	return out
}

func (w *Writer) writeJSON(name string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		w.Log.Warn("artifact marshal failed", "file", name, "err", err)
		return
	}
	w.write(name, append(data, '\n'))
}

func (w *Writer) writeCSV(name string, rows [][]string) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(rows); err != nil {
		w.Log.Warn("artifact encode failed", "file", name, "err", err)
		return
	}
	w.write(name, buf.Bytes())
}

func (w *Writer) write(name string, data []byte) {
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		w.Log.Warn("artifact write failed", "file", name, "err", err)
		return
	}
	w.files = append(w.files, FileInfo{Name: name, Bytes: len(data)})
}

func storyGraphDoc(res *pipeline.Result) map[string]any {
	type row struct {
		Name      string  `json:"name"`
		Index     int     `json:"index"`
		Elevation float64 `json:"elevation"`
		Points    int     `json:"points"`
		Lines     int     `json:"lines"`
	}
	rows := make([]row, 0, len(res.Story.Order))
	for i, name := range res.Story.Order {
		rows = append(rows, row{
			Name:      name,
			Index:     i,
			Elevation: res.Story.Elev[name],
			Points:    len(res.Story.ActivePoints[name]),
			Lines:     len(res.Story.ActiveLines[name]),
		})
	}
	return map[string]any{"stories": rows}
}

// nodesDoc lists grid, master and interface nodes. Spring grounds are
// left to springs.json so each node appears in exactly one artifact.
func nodesDoc(g *model.Graph) map[string]any {
	nodes := make([]model.Node, 0)
	counts := map[string]int{}
	for _, n := range g.Nodes() {
		if n.Kind == model.KindSpringGround {
			continue
		}
		nodes = append(nodes, n)
		counts[string(n.Kind)]++
	}
	counts["total"] = len(nodes)
	return map[string]any{"nodes": nodes, "counts": counts}
}

func elementsDoc(key string, g *model.Graph, kind model.ElementKind, rep assemble.ElementsReport) map[string]any {
	elems := make([]model.Element, 0)
	for _, e := range g.Elements {
		if e.Kind == kind {
			elems = append(elems, e)
		}
	}
	return map[string]any{
		key:      elems,
		"counts": map[string]int{"created": rep.Elements},
		"skips":  skipsOrEmpty(rep.Skips),
	}
}

func skipsOrEmpty(s []model.Skip) []model.Skip {
	if s == nil {
		return []model.Skip{}
	}
	return s
}

func storyTable(res *pipeline.Result) [][]string {
	rows := [][]string{{"story", "index", "elevation", "points", "lines"}}
	for i, name := range res.Story.Order {
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%g", res.Story.Elev[name]),
			fmt.Sprintf("%d", len(res.Story.ActivePoints[name])),
			fmt.Sprintf("%d", len(res.Story.ActiveLines[name])),
		})
	}
	return rows
}

// pointMatrix tabulates which stories each point is active on, one row
// per point, one column per story in top-down order.
func pointMatrix(res *pipeline.Result) [][]string {
	seen := map[string]bool{}
	for _, name := range res.Story.Order {
		for _, ap := range res.Story.ActivePoints[name] {
			seen[ap.ID] = true
		}
	}
	ids := make([]string, 0, len(seen))
	for pid := range seen {
		ids = append(ids, pid)
	}
	sort.Slice(ids, func(a, b int) bool {
		ta, tb := tag.PointInt(ids[a]), tag.PointInt(ids[b])
		if ta != tb {
			return ta < tb
		}
		return ids[a] < ids[b]
	})

	header := append([]string{"point"}, res.Story.Order...)
	rows := [][]string{header}
	for _, pid := range ids {
		row := []string{pid}
		for _, name := range res.Story.Order {
			if res.Story.HasPointOn(name, pid) {
				row = append(row, "1")
			} else {
				row = append(row, "0")
			}
		}
		rows = append(rows, row)
	}
	return rows
}
