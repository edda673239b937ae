// Package ir provides the computation-graph intermediate representation
// used to record and rewrite sequences of operations.
//
// # Overview
//
// A [Graph] owns an ordered sequence of [Node] values, each recording one
// operation invocation: what it invokes (its op tag and target) and the
// arguments it was invoked with. Arguments are recursively structured
// ([Argument]): scalars, node references, tuples, lists, string-keyed
// dicts, and slice triples. A node reference inside an argument tree is a
// def edge, and the referenced node tracks the referencing node in its
// users set, so both directions of every data dependency can be walked.
//
// # Basic Usage
//
// Create a graph with [New] and add nodes through its construction entry
// points:
//
//	g := ir.New()
//	x, _ := g.Placeholder("x")
//	add, _ := g.CallFunction(ir.FuncRef{Name: "add"}, ir.Tuple{x, x}, ir.Dict{})
//	g.Output(add)
//
// Rewrite passes substitute one value for another with
// [Node.ReplaceAllUsesWith], which rewrites every user's argument trees in
// place (shape preserved, only the matching leaves swapped) and leaves the
// replaced node with zero users so the graph can [Graph.Erase] it.
//
// # Def/Use Bookkeeping
//
// All argument mutation funnels through a single internal path: the setters
// diff the node leaves of the old trees against the new ones and patch the
// affected users sets. [Validate] checks the resulting invariants and the
// integrity of the node sequence.
//
// # Concurrency
//
// Graphs and nodes are not safe for concurrent use. All operations are
// finite in-memory traversals; callers sharing a graph across goroutines
// must provide their own mutual exclusion.
//
// # Related Packages
//
// The [transform] subpackage provides rewrite passes built on this core
// (dead-node elimination, node rewriting, retargeting). Serialization lives
// in [graphio] and DOT rendering in [render].
//
// [transform]: github.com/tracekit/tracekit/pkg/ir/transform
// [graphio]: github.com/tracekit/tracekit/pkg/graphio
// [render]: github.com/tracekit/tracekit/pkg/render
package ir
