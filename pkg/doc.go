// Package pkg provides the core libraries for terraviz map rendering.
//
// # Overview
//
// Terraviz turns the JSON exports of a procedural terrain generator into
// positioned node/edge drawings. The pkg directory is organized along the
// data flow:
//
//  1. [jsonval] - Order-preserving JSON document model
//  2. [discover] - Shape-based record discovery in generator documents
//  3. [entity] - Typed models for the discovered records
//  4. [graph] - Graph assembly (builder and immutable result)
//  5. [render] - Graphviz DOT generation and SVG/PNG rasterization
//  6. [io] - Graph JSON export/import
//  7. [cache], [config], [errors], [geom] - Supporting infrastructure
//
// # Architecture
//
// The typical flow through terraviz:
//
//	Generator JSON export
//	         ↓
//	    [jsonval] (decode, preserving member order)
//	         ↓
//	    [discover] (match polygon/point/river/town records)
//	         ↓
//	    [graph] (assemble nodes, edges, river adjacency)
//	         ↓
//	    [render] (DOT with pinned positions → SVG/PNG)
//
// # Quick Start
//
// Assemble and render a river document:
//
//	doc, _ := jsonval.Decode(f)
//	b := graph.NewBuilder()
//	for ent, err := range discover.Discover(doc) {
//	    if err != nil {
//	        return err
//	    }
//	    if err := b.Add(ent); err != nil {
//	        return err
//	    }
//	}
//	g, _ := b.Build()
//	svg, _ := render.SVG(ctx, render.ToDOT(g, render.DefaultOptions()))
//
// [jsonval]: https://pkg.go.dev/github.com/terracarta/terraviz/pkg/jsonval
// [discover]: https://pkg.go.dev/github.com/terracarta/terraviz/pkg/discover
// [entity]: https://pkg.go.dev/github.com/terracarta/terraviz/pkg/entity
// [graph]: https://pkg.go.dev/github.com/terracarta/terraviz/pkg/graph
// [render]: https://pkg.go.dev/github.com/terracarta/terraviz/pkg/render
// [io]: https://pkg.go.dev/github.com/terracarta/terraviz/pkg/io
// [cache]: https://pkg.go.dev/github.com/terracarta/terraviz/pkg/cache
// [config]: https://pkg.go.dev/github.com/terracarta/terraviz/pkg/config
// [errors]: https://pkg.go.dev/github.com/terracarta/terraviz/pkg/errors
// [geom]: https://pkg.go.dev/github.com/terracarta/terraviz/pkg/geom
package pkg
