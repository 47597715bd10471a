// Package io serializes assembled graphs to and from JSON.
//
// This is an adapter convention for saving a build and re-rendering it
// later without repeating discovery; the core itself defines no
// persistence format. The wire shape is:
//
//	{
//	  "nodes": [{"id": 0, "x": 0.5, "y": 0.25}],
//	  "edges": [{"a": 1, "b": 0, "color": "flow", "weight": 2}]
//	}
//
// Node order is ascending id; edge order matches assembly order. Dropped
// diagnostics are not serialized — an exported graph is already clean.
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/terracarta/terraviz/pkg/geom"
	"github.com/terracarta/terraviz/pkg/graph"
)

type graphJSON struct {
	Nodes []nodeJSON `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

type nodeJSON struct {
	ID uint64  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type edgeJSON struct {
	A      uint64 `json:"a"`
	B      uint64 `json:"b"`
	Color  string `json:"color,omitempty"`
	Weight uint   `json:"weight,omitempty"`
}

// WriteJSON writes g as indented JSON to w.
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := graphJSON{
		Nodes: make([]nodeJSON, 0, g.NodeCount()),
		Edges: make([]edgeJSON, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, nodeJSON{ID: uint64(n.ID), X: n.Pos.X, Y: n.Pos.Y})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edgeJSON{
			A: uint64(e.A), B: uint64(e.B),
			Color: string(e.Color), Weight: e.Weight,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a file at path, creating or truncating it.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}

// ReadJSON decodes a previously exported graph from r. The result carries
// the same node ids, positions, and edge attributes as the original;
// edges referencing unknown node ids are dropped and surface as
// dangling-reference diagnostics, exactly as in a fresh build.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data graphJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	nodes := make([]graph.Node, 0, len(data.Nodes))
	for _, n := range data.Nodes {
		nodes = append(nodes, graph.Node{ID: graph.NodeID(n.ID), Pos: geom.V(n.X, n.Y)})
	}
	edges := make([]graph.Edge, 0, len(data.Edges))
	for _, e := range data.Edges {
		edges = append(edges, graph.Edge{
			A: graph.NodeID(e.A), B: graph.NodeID(e.B),
			Color: graph.Color(e.Color), Weight: e.Weight,
		})
	}
	return graph.Restore(nodes, edges), nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
