package graph

import (
	"testing"

	"github.com/terracarta/terraviz/pkg/entity"
	"github.com/terracarta/terraviz/pkg/errors"
	"github.com/terracarta/terraviz/pkg/geom"
)

func mustBuild(t *testing.T, ents ...entity.Entity) *Graph {
	t.Helper()
	b := NewBuilder()
	for _, e := range ents {
		if err := b.Add(e); err != nil {
			t.Fatalf("Add(%T): %v", e, err)
		}
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func triangle() entity.Polygon {
	return entity.Polygon{Exterior: []geom.Vec2{
		geom.V(0, 0), geom.V(1, 0), geom.V(1, 1), geom.V(0, 0),
	}}
}

func TestAddPolygonRingCycle(t *testing.T) {
	g := mustBuild(t, triangle())

	if g.NodeCount() != 3 {
		t.Fatalf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Fatalf("EdgeCount = %d, want 3", g.EdgeCount())
	}

	// Every node appears exactly twice across the edge set: once as source,
	// once as target.
	asA := map[NodeID]int{}
	asB := map[NodeID]int{}
	for _, e := range g.Edges() {
		asA[e.A]++
		asB[e.B]++
		if e.Color != "" || e.Weight != 0 {
			t.Errorf("ring edge carries attributes: %+v", e)
		}
	}
	for _, n := range g.Nodes() {
		if asA[n.ID] != 1 || asB[n.ID] != 1 {
			t.Errorf("node %d: source count %d, target count %d; want 1/1", n.ID, asA[n.ID], asB[n.ID])
		}
	}
}

func TestAddPolygonLargerRing(t *testing.T) {
	// Five ring points plus the closing duplicate.
	p := entity.Polygon{Exterior: []geom.Vec2{
		geom.V(0, 0), geom.V(2, 0), geom.V(3, 1), geom.V(1, 3), geom.V(-1, 1), geom.V(0, 0),
	}}
	g := mustBuild(t, p)
	if g.NodeCount() != 5 || g.EdgeCount() != 5 {
		t.Errorf("nodes=%d edges=%d, want 5/5", g.NodeCount(), g.EdgeCount())
	}
}

func TestAddPoint(t *testing.T) {
	g := mustBuild(t, entity.Point{X: 4, Y: -2}, entity.Point{X: 0, Y: 0})

	if g.NodeCount() != 2 || g.EdgeCount() != 0 {
		t.Fatalf("nodes=%d edges=%d, want 2/0", g.NodeCount(), g.EdgeCount())
	}
	for _, n := range g.Nodes() {
		if n.ID == entity.NoIndex {
			t.Error("synthetic id equals the sentinel")
		}
	}
}

func TestSyntheticIDsDistinctAcrossEntities(t *testing.T) {
	g := mustBuild(t, triangle(), entity.Point{X: 9, Y: 9}, triangle())
	if g.NodeCount() != 7 {
		t.Errorf("NodeCount = %d, want 7 (3+1+3 distinct synthetic ids)", g.NodeCount())
	}
}

func river(i NodeID, h float64, inlets []NodeID, strahler uint) entity.RiverNode {
	return entity.RiverNode{
		I:         i,
		Pos:       geom.V(float64(i), 0),
		Elevation: h,
		Inlets:    inlets,
		Strahler:  strahler,
	}
}

func TestRiverExclusionRule(t *testing.T) {
	tests := []struct {
		name     string
		node     entity.RiverNode
		retained bool
	}{
		{"NegativeNoInlets", river(0, -1.0, nil, 1), false},
		{"NegativeWithInlets", river(0, -1.0, []NodeID{5}, 1), true},
		{"PositiveNoInlets", river(0, 5.0, nil, 1), true},
		{"ZeroElevation", river(0, 0, nil, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustBuild(t, tt.node)
			if got := g.Has(0); got != tt.retained {
				t.Errorf("retained = %v, want %v", got, tt.retained)
			}
		})
	}
}

func TestRiverEdgeWeightIsInletOrder(t *testing.T) {
	// Node 1 (order 4) has inlet 0 (order 2): the edge weight must be the
	// inlet's order, 2. Two distinct orders catch an accidental swap.
	g := mustBuild(t,
		river(0, 5, nil, 2),
		river(1, 5, []NodeID{0}, 4),
	)

	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Fatalf("nodes=%d edges=%d, want 2/1", g.NodeCount(), g.EdgeCount())
	}
	e := g.Edges()[0]
	if e.A != 1 || e.B != 0 {
		t.Errorf("edge = (%d,%d), want (1,0)", e.A, e.B)
	}
	if e.Weight != 2 {
		t.Errorf("weight = %d, want 2 (the inlet's order)", e.Weight)
	}
	if e.Color != ColorFlow {
		t.Errorf("color = %q, want %q", e.Color, ColorFlow)
	}
}

func TestRiverInletBeforeSibling(t *testing.T) {
	// Node 0 references inlet 1, which is added afterwards. The deferred
	// second pass must still produce the edge.
	g := mustBuild(t,
		river(0, 5, []NodeID{1}, 3),
		river(1, 5, nil, 1),
	)
	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if e := g.Edges()[0]; e.A != 0 || e.B != 1 || e.Weight != 1 {
		t.Errorf("edge = %+v", e)
	}
}

func TestRiverDanglingInletDropped(t *testing.T) {
	// Node 2 was skipped by the exclusion rule; node 1 still lists it as an
	// inlet. The edge is dropped, the build continues, and the drop is
	// recorded.
	g := mustBuild(t,
		river(1, 5, []NodeID{2, 0}, 4),
		river(2, -3, nil, 1),
		river(0, 5, nil, 2),
	)

	if g.Has(2) {
		t.Fatal("skipped node 2 must not appear in the graph")
	}
	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d, want 1 (dangling edge dropped)", g.EdgeCount())
	}
	diags := g.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("Diagnostics = %v, want exactly one", diags)
	}
	if diags[0].From != 1 || diags[0].Missing != 2 {
		t.Errorf("diagnostic = %+v", diags[0])
	}
}

func TestTownGraph(t *testing.T) {
	g := mustBuild(t,
		// Edge arrives before its endpoints: insertion order in the source
		// is not guaranteed node-before-edge.
		entity.TownEdge{A: 0, B: 1},
		entity.TownNode{I: 0, Pos: geom.V(0, 0)},
		entity.TownNode{I: 1, Pos: geom.V(1, 0)},
	)

	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Fatalf("nodes=%d edges=%d, want 2/1", g.NodeCount(), g.EdgeCount())
	}
	if p, ok := g.Pos(1); !ok || p != geom.V(1, 0) {
		t.Errorf("Pos(1) = %v, %v", p, ok)
	}
}

func TestTownDanglingEdgeDropped(t *testing.T) {
	g := mustBuild(t,
		entity.TownNode{I: 0, Pos: geom.V(0, 0)},
		entity.TownEdge{A: 0, B: 99},
	)

	if g.NodeCount() != 1 || g.EdgeCount() != 0 {
		t.Fatalf("nodes=%d edges=%d, want 1/0 (lenient drop)", g.NodeCount(), g.EdgeCount())
	}
	diags := g.Diagnostics()
	if len(diags) != 1 || diags[0].Missing != 99 {
		t.Errorf("Diagnostics = %+v, want one entry missing node 99", diags)
	}
}

func TestTownIdentityIdempotent(t *testing.T) {
	build := func() *Graph {
		return mustBuild(t,
			entity.TownNode{I: 4, Pos: geom.V(0, 0)},
			entity.TownNode{I: 7, Pos: geom.V(1, 1)},
			entity.TownEdge{A: 4, B: 7},
		)
	}
	g1, g2 := build(), build()

	if g1.NodeCount() != g2.NodeCount() {
		t.Fatalf("node counts differ: %d vs %d", g1.NodeCount(), g2.NodeCount())
	}
	for i := range g1.Nodes() {
		if g1.Nodes()[i].ID != g2.Nodes()[i].ID {
			t.Errorf("node %d: id %d vs %d", i, g1.Nodes()[i].ID, g2.Nodes()[i].ID)
		}
	}
	for i := range g1.Edges() {
		if g1.Edges()[i] != g2.Edges()[i] {
			t.Errorf("edge %d differs: %+v vs %+v", i, g1.Edges()[i], g2.Edges()[i])
		}
	}
}

func TestDuplicateNodeLastWriteWins(t *testing.T) {
	g := mustBuild(t,
		entity.TownNode{I: 3, Pos: geom.V(0, 0)},
		entity.TownNode{I: 3, Pos: geom.V(5, 5)},
	)
	if g.NodeCount() != 1 {
		t.Fatalf("NodeCount = %d, want 1", g.NodeCount())
	}
	if p, _ := g.Pos(3); p != geom.V(5, 5) {
		t.Errorf("Pos(3) = %v, want the later position", p)
	}
}

func TestBuilderFinalized(t *testing.T) {
	b := NewBuilder()
	if err := b.Add(entity.Point{X: 1, Y: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	err := b.Add(entity.Point{X: 2, Y: 2})
	if !errors.Is(err, errors.ErrCodeAlreadyFinalized) {
		t.Errorf("Add after Build: err = %v, want ALREADY_FINALIZED", err)
	}
	if _, err := b.Build(); !errors.Is(err, errors.ErrCodeAlreadyFinalized) {
		t.Errorf("second Build: err = %v, want ALREADY_FINALIZED", err)
	}
}

func TestBounds(t *testing.T) {
	g := mustBuild(t,
		entity.TownNode{I: 0, Pos: geom.V(-1, 2)},
		entity.TownNode{I: 1, Pos: geom.V(3, -4)},
	)
	min, max, ok := g.Bounds()
	if !ok {
		t.Fatal("Bounds on non-empty graph")
	}
	if min != geom.V(-1, -4) || max != geom.V(3, 2) {
		t.Errorf("bounds = %v..%v", min, max)
	}

	empty := mustBuild(t)
	if _, _, ok := empty.Bounds(); ok {
		t.Error("Bounds on empty graph should report false")
	}
}
