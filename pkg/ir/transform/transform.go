// Package transform provides rewrite passes over ir graphs.
//
// Passes operate through the core mutation primitives only:
// [ir.Node.ReplaceAllUsesWith] to migrate users and [ir.Graph.Erase] to
// remove nodes, so def/use bookkeeping stays consistent by construction.
package transform

import (
	"github.com/tracekit/tracekit/pkg/ir"
)

// EliminateDead removes nodes with no users until a fixed point is reached.
// Placeholders and output nodes are kept regardless: placeholders define the
// traced signature and outputs anchor live values. Returns the number of
// nodes removed.
func EliminateDead(g *ir.Graph) int {
	removed := 0
	for {
		n := 0
		for _, node := range g.Nodes() {
			if node.Op() == ir.OpPlaceholder || node.Op() == ir.OpOutput {
				continue
			}
			if node.UsersLen() != 0 {
				continue
			}
			if err := g.Erase(node); err != nil {
				// Zero users was just checked; Erase cannot refuse.
				panic(err)
			}
			n++
		}
		if n == 0 {
			return removed
		}
		// Erasing a node may have dropped the last use of one of its defs.
		removed += n
	}
}

// RewriteNodes applies fn to every node in sequence order. When fn returns a
// node different from its input, all uses of the original are replaced with
// the returned node and the original is erased. fn must return a node in the
// same graph. Returns the number of nodes rewritten.
//
// fn is called on the snapshot taken before any rewriting, so replacements
// created by fn itself are not revisited.
func RewriteNodes(g *ir.Graph, fn func(*ir.Node) *ir.Node) (int, error) {
	rewritten := 0
	for _, node := range g.Nodes() {
		repl := fn(node)
		if repl == nil || repl == node {
			continue
		}
		node.ReplaceAllUsesWith(repl)
		if err := g.Erase(node); err != nil {
			return rewritten, err
		}
		rewritten++
	}
	return rewritten, nil
}

// ReplaceTarget retargets every call_function node whose target equals old.
// Targets are compared with ==, so string and [ir.FuncRef] targets both
// match. Returns the number of nodes retargeted.
func ReplaceTarget(g *ir.Graph, old, new ir.Target) (int, error) {
	n := 0
	for _, node := range g.Nodes() {
		if node.Op() != ir.OpCallFunction || node.Target() != old {
			continue
		}
		if err := node.Retarget(new); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
