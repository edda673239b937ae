// Package pkg provides the core libraries for Tracekit computation graphs.
//
// # Overview
//
// Tracekit represents traced programs as a flat sequence of operation nodes
// with full def/use bookkeeping. The pkg directory is organized into five
// areas:
//
//  1. [ir] - Graph structure (nodes, arguments, rewriting, validation)
//  2. [ir/transform] - Graph passes (dead code elimination, target rewrites)
//  3. [graphio] - JSON serialization for graphs
//  4. [render] - Graphviz DOT and SVG/PNG rendering
//  5. [cache] - Rendered-artifact caching (file, Redis)
//
// # Architecture
//
// The typical data flow through Tracekit:
//
//	Serialized graph (JSON)
//	         ↓
//	    [graphio] package (decode + validate)
//	         ↓
//	    [ir] package (structure + rewriting)
//	         ↓
//	    [ir/transform] package (optimization passes)
//	         ↓
//	    [render] package (DOT, SVG, PNG)
//
// # Quick Start
//
// Build a graph, rewrite it, and render it:
//
//	import (
//	    "github.com/tracekit/tracekit/pkg/ir"
//	    "github.com/tracekit/tracekit/pkg/ir/transform"
//	    "github.com/tracekit/tracekit/pkg/render"
//	)
//
//	// 1. Build a graph
//	g := ir.New()
//	x, _ := g.Placeholder("x")
//	y, _ := g.CallFunction(ir.FuncRef{Name: "relu"}, ir.Tuple{x}, ir.Dict{})
//	g.Output(y)
//
//	// 2. Run passes
//	transform.EliminateDead(g)
//
//	// 3. Render to SVG
//	dot := render.ToDOT(g, render.Options{})
//	svg, _ := render.RenderSVG(dot)
//
// # Main Packages
//
// [ir] - The graph itself: typed argument trees, nodes linked into an
// ordered sequence, reverse def/use edges maintained on every mutation, and
// [ir.Validate] for checking structural invariants.
//
// [ir/transform] - Whole-graph passes built on the ir mutation primitives.
//
// [graphio] - Stable JSON wire format with read/write helpers for files and
// streams.
//
// [render] - DOT generation plus SVG/PNG rasterization via go-graphviz.
//
// [cache] - Content-addressed artifact cache with file, Redis, and no-op
// backends, used by the CLI to skip repeated renders.
//
// [buildinfo] - Build-time version metadata injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...         # All tests
//	go test ./pkg/ir/...      # Specific package
//	go test -run Example      # Examples only
//
// [ir]: https://pkg.go.dev/github.com/tracekit/tracekit/pkg/ir
// [ir/transform]: https://pkg.go.dev/github.com/tracekit/tracekit/pkg/ir/transform
// [graphio]: https://pkg.go.dev/github.com/tracekit/tracekit/pkg/graphio
// [render]: https://pkg.go.dev/github.com/tracekit/tracekit/pkg/render
// [cache]: https://pkg.go.dev/github.com/tracekit/tracekit/pkg/cache
// [buildinfo]: https://pkg.go.dev/github.com/tracekit/tracekit/pkg/buildinfo
package pkg
