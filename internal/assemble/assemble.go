// Package assemble builds the model graph from the story graph, one
// stage per entity family: grid nodes, point restraints, spring
// supports, rigid diaphragms, columns and beams. Stages walk stories
// top to bottom, collect per-item skips instead of aborting, and drive
// the backend through the ops.Domain capability set.
package assemble

import (
	"log/slog"

	"github.com/dmirandah/e2kops/internal/config"
	"github.com/dmirandah/e2kops/internal/e2k"
	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/ops"
	"github.com/dmirandah/e2kops/internal/props"
	"github.com/dmirandah/e2kops/internal/story"
	"github.com/dmirandah/e2kops/internal/tag"
)

// Context carries everything a stage needs. The same context flows
// through all stages of one run.
type Context struct {
	Cfg    config.Config
	Raw    *e2k.Model
	Story  *story.Graph
	Graph  *model.Graph
	Domain ops.Domain
	Props  *props.Resolver
	Alloc  *tag.Allocator
	Log    *slog.Logger
}

// NodesReport summarizes the grid node stage.
type NodesReport struct {
	Created int          `json:"created"`
	Skips   []model.Skip `json:"skips,omitempty"`
}

// RestraintsReport summarizes the point restraint stage.
type RestraintsReport struct {
	Applied int          `json:"applied"`
	Skips   []model.Skip `json:"skips,omitempty"`
}

// SpringsReport summarizes the spring support stage.
type SpringsReport struct {
	Springs   int          `json:"springs"`
	Grounds   int          `json:"ground_nodes"`
	Materials int          `json:"materials"`
	Skips     []model.Skip `json:"skips,omitempty"`
}

// DiaphragmsReport summarizes the rigid diaphragm stage. Interface
// attachment is counted at the pipeline level, where both passes run.
type DiaphragmsReport struct {
	Created int          `json:"created"`
	Skips   []model.Skip `json:"skips,omitempty"`
}

// ElementsReport summarizes a member stage. Elements counts backend
// elements, which exceeds Members when rigid-end splitting is active.
type ElementsReport struct {
	Members  int          `json:"members"`
	Elements int          `json:"elements"`
	Skips    []model.Skip `json:"skips,omitempty"`
}

func sectionArgs(sv props.SectionValues) ops.SectionArgs {
	return ops.SectionArgs{A: sv.A, E: sv.E, G: sv.G, J: sv.J, Iy: sv.Iy, Iz: sv.Iz}
}

func scaleRigid(sv props.SectionValues, factor float64) props.SectionValues {
	sv.A *= factor
	sv.Iy *= factor
	sv.Iz *= factor
	sv.J *= factor
	return sv
}
