// Package render converts ir graphs to Graphviz DOT and rasterized output.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/tracekit/tracekit/pkg/ir"
)

// Options configures DOT rendering.
type Options struct {
	// Detailed includes op tags and target names in node labels.
	// When false, only the node name is shown.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT format. Each node becomes a box
// and each def/use edge an arrow from the def to its user, deduplicated per
// node pair: a user referencing the same def in several positions gets one
// arrow. Placeholders and outputs are tinted to mark the graph boundary.
//
// The resulting DOT string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g *ir.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range g.Nodes() {
		for _, def := range orderedDefs(n) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", def.Name(), n.Name())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// orderedDefs returns a node's defs in argument-tree traversal order with
// duplicates removed, so DOT output is deterministic.
func orderedDefs(n *ir.Node) []*ir.Node {
	seen := make(map[*ir.Node]bool)
	var defs []*ir.Node
	record := func(d *ir.Node) ir.Argument {
		if !seen[d] {
			seen[d] = true
			defs = append(defs, d)
		}
		return d
	}
	ir.MapArg(n.Args(), record)
	ir.MapArg(n.Kwargs(), record)
	return defs
}

func fmtLabel(n *ir.Node, detailed bool) string {
	if !detailed {
		return n.Name()
	}
	return fmt.Sprintf("%s\n%s %s", n.Name(), n.Op(), ir.TargetString(n.Target()))
}

func fmtAttrs(n *ir.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Op() {
	case ir.OpPlaceholder:
		attrs = append(attrs, "fillcolor=lightblue")
	case ir.OpOutput:
		attrs = append(attrs, "fillcolor=lightgrey", "peripheries=2")
	case ir.OpGetAttr:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

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
