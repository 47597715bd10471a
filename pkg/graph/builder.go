package graph

import (
	"github.com/terracarta/terraviz/pkg/entity"
	"github.com/terracarta/terraviz/pkg/errors"
	"github.com/terracarta/terraviz/pkg/geom"
)

// Builder accumulates discovered entities into a graph.
//
// A builder has exactly two states: accumulating (accepts [Builder.Add])
// and finalized (after [Builder.Build]; further mutation fails with
// ALREADY_FINALIZED). The transition is one-way.
//
// Identity rules:
//   - River and town entities are keyed by their authoritative source
//     index, preserved verbatim.
//   - Polygon ring points and standalone points get synthetic ids from a
//     per-builder counter. The counter starts just below [entity.NoIndex]
//     and counts down, so synthetic ids can never collide with source ids
//     (which count up from zero) and never equal the sentinel.
//
// Re-adding a node id overwrites its position; last write wins.
type Builder struct {
	pos       map[NodeID]geom.Vec2
	edges     []Edge             // structural edges (ring, town), endpoint check deferred
	rivers    []entity.RiverNode // retained river nodes, for the adjacency pass
	strahler  map[NodeID]uint    // Strahler order of retained river nodes
	nextSynth NodeID
	finalized bool
}

// NewBuilder creates an empty builder in the accumulating state.
func NewBuilder() *Builder {
	return &Builder{
		pos:       make(map[NodeID]geom.Vec2),
		strahler:  make(map[NodeID]uint),
		nextSynth: entity.NoIndex - 1,
	}
}

// Add incorporates one discovered entity.
//
// Polygon: the closing duplicate point is dropped, each remaining ring
// point becomes a fresh synthetic node, and the ring is closed with one
// edge per point. Point: one synthetic node, no edges. RiverNode: skipped
// entirely when it has negative elevation and no inlets (no hydrological
// relevance); edge insertion is deferred to [Builder.Build]. TownNode:
// inserted by source id. TownEdge: recorded without requiring its
// endpoints to exist yet.
func (b *Builder) Add(e entity.Entity) error {
	if b.finalized {
		return errors.New(errors.ErrCodeAlreadyFinalized, "add %T after Build", e)
	}

	switch t := e.(type) {
	case entity.Polygon:
		b.addPolygon(t)
	case entity.Point:
		b.pos[b.synthID()] = geom.V(t.X, t.Y)
	case entity.RiverNode:
		if t.Elevation < 0 && len(t.Inlets) == 0 {
			return nil
		}
		b.pos[t.I] = t.Pos
		b.strahler[t.I] = t.Strahler
		b.rivers = append(b.rivers, t)
	case entity.TownNode:
		b.pos[t.I] = t.Pos
	case entity.TownEdge:
		b.edges = append(b.edges, Edge{A: t.A, B: t.B})
	default:
		return errors.New(errors.ErrCodeInternal, "unknown entity type %T", e)
	}
	return nil
}

func (b *Builder) addPolygon(p entity.Polygon) {
	ring := p.Exterior
	if n := len(ring); n > 0 {
		ring = ring[:n-1] // closing duplicate
	}
	if len(ring) == 0 {
		return
	}

	ids := make([]NodeID, len(ring))
	for i, pt := range ring {
		ids[i] = b.synthID()
		b.pos[ids[i]] = pt
	}
	if len(ids) < 2 {
		return
	}
	for i, a := range ids {
		b.edges = append(b.edges, Edge{A: a, B: ids[(i+1)%len(ids)]})
	}
}

func (b *Builder) synthID() NodeID {
	id := b.nextSynth
	b.nextSynth--
	return id
}

// Build finalizes the builder and returns the immutable graph.
//
// This is where the second river pass runs: every retained node contributes
// one flow edge per inlet, weighted by the inlet node's Strahler order (the
// upstream order, deliberately not the node's own). Structural edges whose
// endpoints are absent, and inlets referencing skipped or missing nodes,
// are dropped one edge at a time and recorded as diagnostics; the build
// never aborts on a dangling reference.
func (b *Builder) Build() (*Graph, error) {
	if b.finalized {
		return nil, errors.New(errors.ErrCodeAlreadyFinalized, "Build called twice")
	}
	b.finalized = true

	var diags []Diagnostic
	edges := make([]Edge, 0, len(b.edges))

	for _, e := range b.edges {
		if missing, ok := b.missingEndpoint(e); !ok {
			diags = append(diags, Diagnostic{From: e.A, To: e.B, Missing: missing})
			continue
		}
		edges = append(edges, e)
	}

	for _, n := range b.rivers {
		for _, inlet := range n.Inlets {
			order, ok := b.strahler[inlet]
			if !ok {
				diags = append(diags, Diagnostic{From: n.I, To: inlet, Missing: inlet})
				continue
			}
			edges = append(edges, Edge{A: n.I, B: inlet, Color: ColorFlow, Weight: order})
		}
	}

	return newGraph(b.pos, edges, diags), nil
}

// missingEndpoint reports which endpoint of e is absent, if any.
func (b *Builder) missingEndpoint(e Edge) (NodeID, bool) {
	if _, ok := b.pos[e.A]; !ok {
		return e.A, false
	}
	if _, ok := b.pos[e.B]; !ok {
		return e.B, false
	}
	return 0, true
}
