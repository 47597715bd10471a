// Package render turns an assembled graph into an image.
//
// The graph is emitted as Graphviz DOT with every node pinned to its
// source position (neato's "x,y!" syntax), so the drawing reflects the
// generator's geometry instead of a computed layout. Flow edges carry a
// pen width derived from their weight class, which makes major rivers
// visually thicker than tributaries.
//
//	dot := render.ToDOT(g, render.DefaultOptions())
//	svg, err := render.SVG(ctx, dot)
//
// Rendering is an adapter around the core: it consumes the read-only graph
// and never mutates it.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/terracarta/terraviz/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// Scale multiplies source coordinates into Graphviz points. Generator
	// uv coordinates live in the unit square, so the default spreads them
	// over a 1000pt canvas.
	Scale float64

	// NodeSize is the point-marker diameter in inches.
	NodeSize float64

	// FlowColor is the stroke color for flow-classified edges.
	FlowColor string

	// EdgeColor is the stroke color for unclassified edges.
	EdgeColor string

	// WidthScale converts an edge weight class into a pen width. A weight
	// of w draws at 1 + w*WidthScale points.
	WidthScale float64
}

// DefaultOptions returns the rendering defaults.
func DefaultOptions() Options {
	return Options{
		Scale:      1000,
		NodeSize:   0.04,
		FlowColor:  "steelblue",
		EdgeColor:  "gray40",
		WidthScale: 0.6,
	}
}

// ToDOT converts a graph to Graphviz DOT with pinned node positions.
// The output is an undirected graph; edge direction carries no meaning in
// any of the source formats.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	fmt.Fprintf(&buf, "  node [shape=point, width=%g, color=black];\n", opts.NodeSize)
	fmt.Fprintf(&buf, "  edge [color=%q];\n", opts.EdgeColor)
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %d [pos=\"%.3f,%.3f!\"];\n", n.ID, n.Pos.X*opts.Scale, n.Pos.Y*opts.Scale)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(e, opts)
		if attrs == "" {
			fmt.Fprintf(&buf, "  %d -- %d;\n", e.A, e.B)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d [%s];\n", e.A, e.B, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(e graph.Edge, opts Options) string {
	if e.Color != graph.ColorFlow {
		return ""
	}
	width := 1 + float64(e.Weight)*opts.WidthScale
	return fmt.Sprintf("color=%q, penwidth=%.2f", opts.FlowColor, width)
}

// SVG renders a DOT graph to SVG with the neato engine, honouring the
// pinned positions.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// PNG renders a DOT graph to PNG with the neato engine.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
