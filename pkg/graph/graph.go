// Package graph assembles discovered entities into a node/edge graph with
// attached positions.
//
// A [Builder] accumulates entities from one discovery pass and finalizes
// into an immutable [Graph]. Nodes carry a 2D position; edges optionally
// carry a color tag and a weight class (river flow edges use the upstream
// node's Strahler order). The finished graph is handed, read-only, to a
// rendering collaborator.
//
// The builder is single-threaded by design: discovery is a pure traversal
// and assembly is sequential, with an explicit second pass for river
// adjacency because a node's inlet may reference a sibling that has not
// been visited yet. Callers needing parallel discovery over independent
// documents must each own a private builder and merge results themselves.
package graph

import (
	"slices"

	"github.com/terracarta/terraviz/pkg/entity"
	"github.com/terracarta/terraviz/pkg/geom"
)

// NodeID aliases the entity-level identifier; river and town ids are
// authoritative source indices, polygon/point ids are synthetic.
type NodeID = entity.NodeID

// Color tags an edge class for rendering.
type Color string

// ColorFlow marks a river flow edge (node to upstream inlet).
const ColorFlow Color = "flow"

// Node is one graph vertex with its position attribute.
type Node struct {
	ID  NodeID
	Pos geom.Vec2
}

// Edge is an undirected connection between two nodes. Color and Weight are
// optional attributes: the zero values mean "unclassified", which renderers
// draw with default styling. Weight on a flow edge is the upstream (inlet)
// node's Strahler order.
type Edge struct {
	A      NodeID
	B      NodeID
	Color  Color
	Weight uint
}

// Diagnostic records an edge dropped during assembly because it referenced
// a node absent from the graph (skipped by the elevation rule, or simply
// never present in the source).
type Diagnostic struct {
	From    NodeID
	To      NodeID
	Missing NodeID
}

// Graph is the immutable result of a build. The zero value is not usable;
// graphs are produced by [Builder.Build].
type Graph struct {
	nodes []Node // sorted by ID
	pos   map[NodeID]geom.Vec2
	edges []Edge
	diags []Diagnostic
}

// Nodes returns all nodes in ascending id order. The returned slice must
// not be modified.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns all edges in insertion order (ring edges first within each
// polygon, river flow edges in node order after all structural edges). The
// returned slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Pos returns the position of the node with the given id.
func (g *Graph) Pos(id NodeID) (geom.Vec2, bool) {
	p, ok := g.pos[id]
	return p, ok
}

// Has reports whether the node exists in the graph.
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.pos[id]
	return ok
}

// Diagnostics returns the dangling references dropped while assembling the
// graph, in the order they were encountered. An empty slice means the build
// was clean.
func (g *Graph) Diagnostics() []Diagnostic { return g.diags }

// Bounds returns the axis-aligned bounding box of all node positions.
// The second return is false for an empty graph.
func (g *Graph) Bounds() (min, max geom.Vec2, ok bool) {
	if len(g.nodes) == 0 {
		return geom.Vec2{}, geom.Vec2{}, false
	}
	min = g.nodes[0].Pos
	max = g.nodes[0].Pos
	for _, n := range g.nodes[1:] {
		if n.Pos.X < min.X {
			min.X = n.Pos.X
		}
		if n.Pos.Y < min.Y {
			min.Y = n.Pos.Y
		}
		if n.Pos.X > max.X {
			max.X = n.Pos.X
		}
		if n.Pos.Y > max.Y {
			max.Y = n.Pos.Y
		}
	}
	return min, max, true
}

// Restore reconstitutes a graph from previously exported nodes and edges,
// preserving edge attributes. Edges referencing unknown node ids are
// dropped and recorded as diagnostics, the same lenient policy a fresh
// build applies.
func Restore(nodes []Node, edges []Edge) *Graph {
	pos := make(map[NodeID]geom.Vec2, len(nodes))
	for _, n := range nodes {
		pos[n.ID] = n.Pos
	}

	var diags []Diagnostic
	kept := make([]Edge, 0, len(edges))
	for _, e := range edges {
		if _, ok := pos[e.A]; !ok {
			diags = append(diags, Diagnostic{From: e.A, To: e.B, Missing: e.A})
			continue
		}
		if _, ok := pos[e.B]; !ok {
			diags = append(diags, Diagnostic{From: e.A, To: e.B, Missing: e.B})
			continue
		}
		kept = append(kept, e)
	}
	return newGraph(pos, kept, diags)
}

// newGraph freezes builder state into a Graph.
func newGraph(pos map[NodeID]geom.Vec2, edges []Edge, diags []Diagnostic) *Graph {
	nodes := make([]Node, 0, len(pos))
	for id, p := range pos {
		nodes = append(nodes, Node{ID: id, Pos: p})
	}
	slices.SortFunc(nodes, func(a, b Node) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return &Graph{nodes: nodes, pos: pos, edges: edges, diags: diags}
}
