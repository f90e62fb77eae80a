// Package model holds the translated finite-element model graph: nodes,
// elements, rigid diaphragms, supports and springs, indexed by their
// deterministic tags. The graph is the single source of node-membership
// truth during assembly; the backend receives definition calls but is
// never queried back.
package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrTagCollision reports a request to create a node whose tag already
// exists with materially different coordinates. It aborts the unit that
// requested the node, never the whole pipeline.
var ErrTagCollision = errors.New("node tag collision")

// coordTol is the coordinate tolerance applied when an existing tag is
// re-requested. Re-requests within this distance are idempotent.
const coordTol = 1e-6

// NodeKind classifies how a node entered the graph.
type NodeKind string

const (
	KindGrid            NodeKind = "grid"
	KindDiaphragmMaster NodeKind = "diaphragm_master"
	KindRigidInterface  NodeKind = "rigid_interface"
	KindSpringGround    NodeKind = "spring_ground"
)

// Node is one node of the translated model. Story and StoryIndex locate
// grid and interface nodes on the story graph; Source records where a
// synthetic node came from.
type Node struct {
	Tag        int      `json:"tag"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Z          float64  `json:"z"`
	Kind       NodeKind `json:"kind"`
	Story      string   `json:"story,omitempty"`
	StoryIndex int      `json:"-"`
	Source     string   `json:"source,omitempty"`
}

// Graph is the arena of everything assembly creates. Nodes keep
// insertion order; the tag index makes membership checks O(1).
type Graph struct {
	nodes []Node
	index map[int]int

	Elements        []Element
	Diaphragms      []Diaphragm
	Supports        []Support
	Springs         []Spring
	SpringMaterials []SpringMaterial

	supportIdx map[int]int
}

// NewGraph returns an empty model graph.
func NewGraph() *Graph {
	return &Graph{
		index:      make(map[int]int),
		supportIdx: make(map[int]int),
	}
}

// EnsureNode creates the node or returns the existing one with the same
// tag. The bool reports whether a node was created. Requesting an
// existing tag at materially different coordinates returns the existing
// node together with ErrTagCollision.
func (g *Graph) EnsureNode(n Node) (Node, bool, error) {
	if i, ok := g.index[n.Tag]; ok {
		have := g.nodes[i]
		if !sameCoords(have, n) {
			return have, false, fmt.Errorf(
				"tag %d at (%g, %g, %g), requested (%g, %g, %g): %w",
				n.Tag, have.X, have.Y, have.Z, n.X, n.Y, n.Z, ErrTagCollision)
		}
		return have, false, nil
	}
	g.index[n.Tag] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return n, true, nil
}

func sameCoords(a, b Node) bool {
	return math.Abs(a.X-b.X) <= coordTol &&
		math.Abs(a.Y-b.Y) <= coordTol &&
		math.Abs(a.Z-b.Z) <= coordTol
}

// Node returns the node with the given tag.
func (g *Graph) Node(tag int) (Node, bool) {
	i, ok := g.index[tag]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Has reports whether a node with the tag exists.
func (g *Graph) Has(tag int) bool {
	_, ok := g.index[tag]
	return ok
}

// Nodes returns all nodes in insertion order. The slice is shared;
// callers must not mutate it.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// NodesOfKind returns the nodes of one kind, in insertion order.
func (g *Graph) NodesOfKind(kind NodeKind) []Node {
	var out []Node
	for _, n := range g.nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// MaxNodeTag returns the largest node tag present, or 0 for an empty
// graph. Diaphragm masters are allocated above this value.
func (g *Graph) MaxNodeTag() int {
	maxTag := 0
	for _, n := range g.nodes {
		if n.Tag > maxTag {
			maxTag = n.Tag
		}
	}
	return maxTag
}

// AddElement appends an element record.
func (g *Graph) AddElement(e Element) {
	g.Elements = append(g.Elements, e)
}

// AddDiaphragm appends a diaphragm record and returns a pointer into
// the graph so the attach pass can extend its slave set.
func (g *Graph) AddDiaphragm(d Diaphragm) *Diaphragm {
	g.Diaphragms = append(g.Diaphragms, d)
	return &g.Diaphragms[len(g.Diaphragms)-1]
}

// DiaphragmForStory returns the diaphragm created on a story, if any.
func (g *Graph) DiaphragmForStory(story string) (*Diaphragm, bool) {
	for i := range g.Diaphragms {
		if g.Diaphragms[i].Story == story {
			return &g.Diaphragms[i], true
		}
	}
	return nil, false
}

// AddSupport appends a support record and indexes its restraint mask by
// node tag.
func (g *Graph) AddSupport(s Support) {
	g.supportIdx[s.Node] = len(g.Supports)
	g.Supports = append(g.Supports, s)
}

// SupportMask returns the restraint mask applied to a node, if any.
func (g *Graph) SupportMask(nodeTag int) ([6]int, bool) {
	i, ok := g.supportIdx[nodeTag]
	if !ok {
		return [6]int{}, false
	}
	return g.Supports[i].Mask, true
}

// AddSpring appends a spring assembly record.
func (g *Graph) AddSpring(s Spring) {
	g.Springs = append(g.Springs, s)
}

// AddSpringMaterial appends a uniaxial spring material record.
func (g *Graph) AddSpringMaterial(m SpringMaterial) {
	g.SpringMaterials = append(g.SpringMaterials, m)
}
