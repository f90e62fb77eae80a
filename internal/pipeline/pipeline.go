// Package pipeline runs the full translation: story graph, model
// graph, then the assembly stages in their fixed order.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/dmirandah/e2kops/internal/assemble"
	"github.com/dmirandah/e2kops/internal/config"
	"github.com/dmirandah/e2kops/internal/e2k"
	"github.com/dmirandah/e2kops/internal/logging"
	"github.com/dmirandah/e2kops/internal/model"
	"github.com/dmirandah/e2kops/internal/ops"
	"github.com/dmirandah/e2kops/internal/props"
	"github.com/dmirandah/e2kops/internal/story"
	"github.com/dmirandah/e2kops/internal/tag"
)

// Stage names a cut point in the assembly order. Earlier stages always
// run; a stage selects how far the pipeline goes.
type Stage string

const (
	StageNodes   Stage = "nodes"
	StageColumns Stage = "columns"
	StageBeams   Stage = "beams"
	StageAll     Stage = "all"
)

// ParseStage maps a command-line stage string to a Stage. Empty means
// run everything.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case "":
		return StageAll, nil
	case StageNodes, StageColumns, StageBeams, StageAll:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown stage %q (want nodes, columns, beams or all)", s)
}

// Result is everything one run produced: the resolved story graph, the
// assembled model graph and the per-stage reports.
type Result struct {
	Raw   *e2k.Model
	Story *story.Graph
	Graph *model.Graph

	Nodes      assemble.NodesReport
	Restraints assemble.RestraintsReport
	Springs    assemble.SpringsReport
	Diaphragms assemble.DiaphragmsReport
	Columns    assemble.ElementsReport
	Beams      assemble.ElementsReport

	// Attached counts interface nodes folded into diaphragms across
	// both attach passes.
	Attached int

	Stage Stage
}

// Run translates a parsed model into a model graph, driving the domain
// backend as it goes. Stages run in a fixed order: nodes, restraints,
// springs, diaphragms, columns, beams. Interface nodes created by
// rigid-end splitting are attached to their story diaphragms in a
// second pass after beams.
func Run(cfg config.Config, raw *e2k.Model, domain ops.Domain, stage Stage, log *slog.Logger) (*Result, error) {
	if log == nil {
		log = logging.NewNop()
	}
	if stage == "" {
		stage = StageAll
	}

	sg, err := story.Build(raw, cfg.Tolerances.Eps)
	if err != nil {
		return nil, fmt.Errorf("story graph: %w", err)
	}

	ctx := &assemble.Context{
		Cfg:    cfg,
		Raw:    raw,
		Story:  sg,
		Graph:  model.NewGraph(),
		Domain: domain,
		Props:  props.NewResolver(raw, cfg.PropsDefaults()),
		Alloc:  tag.NewAllocator(),
		Log:    log,
	}

	res := &Result{Raw: raw, Story: sg, Graph: ctx.Graph, Stage: stage}

	if res.Nodes, err = assemble.Nodes(ctx); err != nil {
		return nil, fmt.Errorf("nodes: %w", err)
	}
	if res.Restraints, err = assemble.Restraints(ctx); err != nil {
		return nil, fmt.Errorf("restraints: %w", err)
	}
	if res.Springs, err = assemble.Springs(ctx); err != nil {
		return nil, fmt.Errorf("springs: %w", err)
	}
	if res.Diaphragms, err = assemble.Diaphragms(ctx); err != nil {
		return nil, fmt.Errorf("diaphragms: %w", err)
	}
	res.Attached += assemble.AttachInterfaces(ctx)

	if stage == StageNodes {
		return res, nil
	}

	if res.Columns, err = assemble.Columns(ctx); err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	if stage == StageColumns {
		return res, nil
	}

	if res.Beams, err = assemble.Beams(ctx); err != nil {
		return nil, fmt.Errorf("beams: %w", err)
	}

	if cfg.RigidEnds.Mode == config.ModeSplit {
		res.Attached += assemble.AttachInterfaces(ctx)
	}
	return res, nil
}
