// Package entity defines the typed models for the geometric records the
// discovery core extracts from generator output.
//
// Five shapes are discoverable: polygons and standalone points (from the
// nested polygon documents), river-network nodes, and town nodes/edges.
// Each model holds exactly the fields needed to add itself to a graph;
// everything else in the source record is validated where the wire contract
// requires it and then discarded.
//
// Constructors parse a [jsonval.Value] record and fail with a
// MALFORMED_RECORD error naming the missing or mistyped field. The one
// exception is the river node's outlet, which is optional by domain
// convention.
package entity

import (
	"github.com/terracarta/terraviz/pkg/errors"
	"github.com/terracarta/terraviz/pkg/geom"
	"github.com/terracarta/terraviz/pkg/jsonval"
)

// NodeID identifies a node within one graph.
//
// For river and town records the id is the integer index carried by the
// source record and is preserved verbatim as the graph key. Polygon ring
// points and standalone points have no source identity; the builder assigns
// them synthetic ids.
type NodeID uint64

// NoIndex is the domain-wide "no such index" sentinel: the maximum
// representable unsigned 64-bit value. It never appears as a live node id;
// adjacency references equal to it are elided at construction time.
const NoIndex = NodeID(^uint64(0))

// Entity is the closed set of discoverable models. The graph builder
// type-switches over it.
type Entity interface {
	entity()
}

// Polygon is a closed boundary discovered via an "exterior" member.
// Exterior still carries the closing duplicate of the first point; the
// builder drops it before ring construction.
type Polygon struct {
	Exterior []geom.Vec2
}

// Point is a standalone 2D point discovered via scalar "x"/"y" members.
type Point struct {
	X float64
	Y float64
}

// RiverNode is one node of a river network, keyed by its authoritative
// source index. Neighbors and Inlets are already sentinel-filtered.
type RiverNode struct {
	I         NodeID
	Pos       geom.Vec2
	Elevation float64
	Neighbors []NodeID
	Inlets    []NodeID
	Outlet    *NodeID // nil when the source carries no (or a falsy) outlet
	Direction geom.Vec2
	ForkAngle float64
	Strahler  uint
}

// TownNode is one node of a town street network, keyed by its source index.
type TownNode struct {
	I   NodeID
	Pos geom.Vec2
}

// TownEdge connects two town nodes by id. The endpoints may be inserted
// after the edge; existence is checked at build time.
type TownEdge struct {
	A NodeID
	B NodeID
}

func (Polygon) entity()   {}
func (Point) entity()     {}
func (RiverNode) entity() {}
func (TownNode) entity()  {}
func (TownEdge) entity()  {}

// =============================================================================
// Constructors
// =============================================================================

// PolygonFromValue builds a Polygon from the array value of an "exterior"
// member. Every element must be an object with numeric x and y.
func PolygonFromValue(exterior jsonval.Value, loc string) (Polygon, error) {
	if exterior.Kind() != jsonval.Array {
		return Polygon{}, errors.New(errors.ErrCodeMalformedRecord,
			"%s: exterior is %s, want array", loc, exterior.Kind())
	}
	pts := make([]geom.Vec2, 0, exterior.Len())
	for i, item := range exterior.Items() {
		p, err := vec2From(item, fieldLoc(loc, "exterior", i))
		if err != nil {
			return Polygon{}, err
		}
		pts = append(pts, p)
	}
	return Polygon{Exterior: pts}, nil
}

// PointFromValue builds a Point from an object with scalar x and y members.
func PointFromValue(v jsonval.Value, loc string) (Point, error) {
	x, err := floatMember(v, "x", loc)
	if err != nil {
		return Point{}, err
	}
	y, err := floatMember(v, "y", loc)
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

// RiverNodeFromValue builds a RiverNode from one record of a river
// document's "graph" array. The sentinel is filtered out of neighbors and
// inlets here, and a falsy outlet (absent, null, or zero) becomes nil.
func RiverNodeFromValue(v jsonval.Value, loc string) (RiverNode, error) {
	if v.Kind() != jsonval.Object {
		return RiverNode{}, errors.New(errors.ErrCodeMalformedRecord,
			"%s: node record is %s, want object", loc, v.Kind())
	}

	i, err := uintMember(v, "i", loc)
	if err != nil {
		return RiverNode{}, err
	}
	// "indices" is part of the wire contract but carries grid coordinates
	// the graph does not use. Validate the shape, drop the value.
	if _, err := vec2Member(v, "indices", loc); err != nil {
		return RiverNode{}, err
	}
	pos, err := vec2Member(v, "uv", loc)
	if err != nil {
		return RiverNode{}, err
	}
	h, err := floatMember(v, "h", loc)
	if err != nil {
		return RiverNode{}, err
	}
	neighbors, err := indexList(v, "neighbors", loc)
	if err != nil {
		return RiverNode{}, err
	}
	inlets, err := indexList(v, "inlets", loc)
	if err != nil {
		return RiverNode{}, err
	}
	outlet, err := optionalIndex(v, "outlet", loc)
	if err != nil {
		return RiverNode{}, err
	}
	dir, err := vec2Member(v, "direction", loc)
	if err != nil {
		return RiverNode{}, err
	}
	fork, err := floatMember(v, "fork_angle", loc)
	if err != nil {
		return RiverNode{}, err
	}
	strahler, err := uintMember(v, "strahler", loc)
	if err != nil {
		return RiverNode{}, err
	}

	return RiverNode{
		I:         NodeID(i),
		Pos:       pos,
		Elevation: h,
		Neighbors: neighbors,
		Inlets:    inlets,
		Outlet:    outlet,
		Direction: dir,
		ForkAngle: fork,
		Strahler:  uint(strahler),
	}, nil
}

// TownNodeFromValue builds a TownNode from a town document node record.
func TownNodeFromValue(v jsonval.Value, loc string) (TownNode, error) {
	if v.Kind() != jsonval.Object {
		return TownNode{}, errors.New(errors.ErrCodeMalformedRecord,
			"%s: node record is %s, want object", loc, v.Kind())
	}
	i, err := uintMember(v, "i", loc)
	if err != nil {
		return TownNode{}, err
	}
	pos, err := vec2Member(v, "uv", loc)
	if err != nil {
		return TownNode{}, err
	}
	return TownNode{I: NodeID(i), Pos: pos}, nil
}

// TownEdgeFromValue builds a TownEdge from a town document edge record.
func TownEdgeFromValue(v jsonval.Value, loc string) (TownEdge, error) {
	if v.Kind() != jsonval.Object {
		return TownEdge{}, errors.New(errors.ErrCodeMalformedRecord,
			"%s: edge record is %s, want object", loc, v.Kind())
	}
	a, err := uintMember(v, "a", loc)
	if err != nil {
		return TownEdge{}, err
	}
	b, err := uintMember(v, "b", loc)
	if err != nil {
		return TownEdge{}, err
	}
	return TownEdge{A: NodeID(a), B: NodeID(b)}, nil
}

// =============================================================================
// Field helpers
// =============================================================================

func fieldLoc(loc, field string, index int) string {
	if index < 0 {
		return loc + "." + field
	}
	return loc + "." + field + "[" + itoa(index) + "]"
}

// itoa avoids pulling strconv into every call site signature; small indices
// only.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}

func floatMember(v jsonval.Value, field, loc string) (float64, error) {
	m, ok := v.Member(field)
	if !ok {
		return 0, errors.New(errors.ErrCodeMalformedRecord, "%s: missing %q", loc, field)
	}
	f, ok := m.Float()
	if !ok {
		return 0, errors.New(errors.ErrCodeMalformedRecord,
			"%s: %s is %s, want number", loc, field, m.Kind())
	}
	return f, nil
}

func uintMember(v jsonval.Value, field, loc string) (uint64, error) {
	m, ok := v.Member(field)
	if !ok {
		return 0, errors.New(errors.ErrCodeMalformedRecord, "%s: missing %q", loc, field)
	}
	u, ok := m.Uint()
	if !ok {
		return 0, errors.New(errors.ErrCodeMalformedRecord,
			"%s: %s is not an unsigned integer", loc, field)
	}
	return u, nil
}

func vec2From(v jsonval.Value, loc string) (geom.Vec2, error) {
	if v.Kind() != jsonval.Object {
		return geom.Vec2{}, errors.New(errors.ErrCodeMalformedRecord,
			"%s: is %s, want object with x and y", loc, v.Kind())
	}
	x, err := floatMember(v, "x", loc)
	if err != nil {
		return geom.Vec2{}, err
	}
	y, err := floatMember(v, "y", loc)
	if err != nil {
		return geom.Vec2{}, err
	}
	return geom.V(x, y), nil
}

func vec2Member(v jsonval.Value, field, loc string) (geom.Vec2, error) {
	m, ok := v.Member(field)
	if !ok {
		return geom.Vec2{}, errors.New(errors.ErrCodeMalformedRecord, "%s: missing %q", loc, field)
	}
	return vec2From(m, fieldLoc(loc, field, -1))
}

// indexList reads an array of unsigned indices, dropping every occurrence
// of the NoIndex sentinel regardless of position.
func indexList(v jsonval.Value, field, loc string) ([]NodeID, error) {
	m, ok := v.Member(field)
	if !ok {
		return nil, errors.New(errors.ErrCodeMalformedRecord, "%s: missing %q", loc, field)
	}
	if m.Kind() != jsonval.Array {
		return nil, errors.New(errors.ErrCodeMalformedRecord,
			"%s: %s is %s, want array", loc, field, m.Kind())
	}
	out := make([]NodeID, 0, m.Len())
	for i, item := range m.Items() {
		u, ok := item.Uint()
		if !ok {
			return nil, errors.New(errors.ErrCodeMalformedRecord,
				"%s: element is not an unsigned integer", fieldLoc(loc, field, i))
		}
		if NodeID(u) == NoIndex {
			continue
		}
		out = append(out, NodeID(u))
	}
	return out, nil
}

// optionalIndex reads an optional index member. Absent, null, zero, and the
// sentinel all decode to nil: the source reuses zero-as-null for outlets,
// and the explicit pointer keeps that convention at the model boundary
// instead of leaking it into graph assembly.
func optionalIndex(v jsonval.Value, field, loc string) (*NodeID, error) {
	m, ok := v.Member(field)
	if !ok || !m.Truthy() {
		return nil, nil
	}
	u, ok := m.Uint()
	if !ok {
		return nil, errors.New(errors.ErrCodeMalformedRecord,
			"%s: %s is not an unsigned integer", loc, field)
	}
	id := NodeID(u)
	if id == NoIndex {
		return nil, nil
	}
	return &id, nil
}
