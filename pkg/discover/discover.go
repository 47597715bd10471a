// Package discover locates geometric records inside generator output by
// structural shape.
//
// The four source formats are mutually incompatible, so discovery runs in
// one of two structural modes selected from the top-level document:
//
//   - Nested-shape mode walks an arbitrarily nested document and matches
//     polygon and point records wherever they occur, with no fixed schema
//     path.
//   - Pre-shaped mode handles river and town documents, which carry
//     explicit top-level record collections that map directly through the
//     entity constructors.
//
// All discovery is lazy: entities are yielded one at a time in the order
// their pattern matches, and a malformed record stops the sequence with the
// error in the second position.
package discover

import (
	"fmt"
	"iter"

	"github.com/terracarta/terraviz/pkg/entity"
	"github.com/terracarta/terraviz/pkg/errors"
	"github.com/terracarta/terraviz/pkg/jsonval"
)

// markerExterior is the reserved member name identifying a polygon record.
const markerExterior = "exterior"

// Seq is a lazy sequence of discovered entities. A non-nil error terminates
// the sequence; no entity accompanies it.
type Seq = iter.Seq2[entity.Entity, error]

// DocKind identifies the structural mode a document belongs to.
type DocKind int

const (
	// DocNested is a polygon/point document searched recursively.
	DocNested DocKind = iota
	// DocRiver is a river network document with a top-level "graph" array.
	DocRiver
	// DocTown is a town document with "nodes"/"edges" element tables.
	DocTown
)

// String returns the kind name for diagnostics.
func (k DocKind) String() string {
	switch k {
	case DocNested:
		return "nested"
	case DocRiver:
		return "river"
	case DocTown:
		return "town"
	}
	return "invalid"
}

// DetectKind classifies the top-level document shape. Scalar roots match
// none of the known shapes and fail with UNRECOGNIZED_DOCUMENT.
func DetectKind(v jsonval.Value) (DocKind, error) {
	switch v.Kind() {
	case jsonval.Object:
		if g, ok := v.Member("graph"); ok && g.Kind() == jsonval.Array {
			return DocRiver, nil
		}
		nodes, hasNodes := v.Member("nodes")
		edges, hasEdges := v.Member("edges")
		if hasNodes && hasEdges && nodes.Has("elements") && edges.Has("elements") {
			return DocTown, nil
		}
		return DocNested, nil
	case jsonval.Array:
		return DocNested, nil
	}
	return 0, errors.New(errors.ErrCodeUnrecognizedDocument,
		"top-level value is %s; want an object or array", v.Kind())
}

// Discover classifies the document and yields its entities. If the
// top-level shape is unrecognized, the sequence yields exactly one error.
func Discover(v jsonval.Value) Seq {
	kind, err := DetectKind(v)
	if err != nil {
		return func(yield func(entity.Entity, error) bool) {
			yield(nil, err)
		}
	}
	switch kind {
	case DocRiver:
		return River(v)
	case DocTown:
		return Town(v)
	}
	return Nested(v)
}

// =============================================================================
// Nested-shape mode
// =============================================================================

// Nested yields polygons and points found anywhere in the document, in
// pre-order: a record is emitted the moment its pattern matches, before
// sibling branches are visited.
//
// This is the permissive walk variant: the search recurses into both
// objects and arrays. An object containing an "exterior" array member is a
// polygon record and is terminal; an object with numeric "x" and "y"
// members is a point record and is terminal. Terminal means the object's
// remaining members are not scanned, but the walk continues elsewhere.
// Polygon matching takes priority over point matching.
func Nested(v jsonval.Value) Seq {
	return func(yield func(entity.Entity, error) bool) {
		walkNested(v, "$", yield)
	}
}

// walkNested returns false when the consumer stopped or an error was
// yielded.
func walkNested(v jsonval.Value, loc string, yield func(entity.Entity, error) bool) bool {
	switch v.Kind() {
	case jsonval.Object:
		if ext, ok := v.Member(markerExterior); ok && ext.Kind() == jsonval.Array {
			poly, err := entity.PolygonFromValue(ext, loc)
			if err != nil {
				yield(nil, err)
				return false
			}
			return yield(poly, nil)
		}
		if isPointRecord(v) {
			pt, err := entity.PointFromValue(v, loc)
			if err != nil {
				yield(nil, err)
				return false
			}
			return yield(pt, nil)
		}
		for _, m := range v.Members() {
			if !walkNested(m.Value, loc+"."+m.Key, yield) {
				return false
			}
		}
	case jsonval.Array:
		for i, item := range v.Items() {
			if !walkNested(item, fmt.Sprintf("%s[%d]", loc, i), yield) {
				return false
			}
		}
	}
	return true
}

// isPointRecord reports whether the object matches the point pattern:
// numeric x and y members. Objects where x or y exist with non-numeric
// values are not points and stay open for recursion.
func isPointRecord(v jsonval.Value) bool {
	x, okX := v.Member("x")
	y, okY := v.Member("y")
	return okX && okY && x.Kind() == jsonval.Number && y.Kind() == jsonval.Number
}

// =============================================================================
// Pre-shaped modes
// =============================================================================

// River yields the node records of a river document's "graph" array in
// source order. Sentinel filtering of adjacency lists happens in the entity
// constructor.
func River(v jsonval.Value) Seq {
	return func(yield func(entity.Entity, error) bool) {
		g, ok := v.Member("graph")
		if !ok || g.Kind() != jsonval.Array {
			yield(nil, errors.New(errors.ErrCodeUnrecognizedDocument,
				"river document has no top-level \"graph\" array"))
			return
		}
		for i, rec := range g.Items() {
			node, err := entity.RiverNodeFromValue(rec, fmt.Sprintf("graph[%d]", i))
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(node, nil) {
				return
			}
		}
	}
}

// Town yields the node records of a town document followed by its edge
// records. Each element table value is a [record, auxiliary] pair; the
// auxiliary value (a bounding rectangle in current generator output) is
// discarded.
func Town(v jsonval.Value) Seq {
	return func(yield func(entity.Entity, error) bool) {
		nodes, err := elementTable(v, "nodes")
		if err != nil {
			yield(nil, err)
			return
		}
		edges, err := elementTable(v, "edges")
		if err != nil {
			yield(nil, err)
			return
		}

		for _, m := range nodes.Members() {
			loc := fmt.Sprintf("nodes.elements[%s]", m.Key)
			rec, err := tupleRecord(m.Value, loc)
			if err != nil {
				yield(nil, err)
				return
			}
			node, err := entity.TownNodeFromValue(rec, loc)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(node, nil) {
				return
			}
		}

		for _, m := range edges.Members() {
			loc := fmt.Sprintf("edges.elements[%s]", m.Key)
			rec, err := tupleRecord(m.Value, loc)
			if err != nil {
				yield(nil, err)
				return
			}
			edge, err := entity.TownEdgeFromValue(rec, loc)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(edge, nil) {
				return
			}
		}
	}
}

// elementTable returns the object under <name>.elements.
func elementTable(v jsonval.Value, name string) (jsonval.Value, error) {
	outer, ok := v.Member(name)
	if !ok {
		return jsonval.Value{}, errors.New(errors.ErrCodeUnrecognizedDocument,
			"town document has no top-level %q member", name)
	}
	elems, ok := outer.Member("elements")
	if !ok || elems.Kind() != jsonval.Object {
		return jsonval.Value{}, errors.New(errors.ErrCodeUnrecognizedDocument,
			"town document member %q has no \"elements\" table", name)
	}
	return elems, nil
}

// tupleRecord extracts the record from a [record, auxiliary] pair.
func tupleRecord(v jsonval.Value, loc string) (jsonval.Value, error) {
	if v.Kind() != jsonval.Array || v.Len() == 0 {
		return jsonval.Value{}, errors.New(errors.ErrCodeMalformedRecord,
			"%s: element is not a [record, auxiliary] pair", loc)
	}
	return v.Items()[0], nil
}
