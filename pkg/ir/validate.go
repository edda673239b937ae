package ir

import (
	"errors"
	"fmt"
)

var (
	// ErrBrokenLink is returned by [Validate] when the prev/next pointers of
	// the node sequence are inconsistent or the forward walk does not return
	// to the root sentinel. This indicates list corruption.
	ErrBrokenLink = errors.New("node sequence links are inconsistent")

	// ErrUseWithoutDef is returned by [Validate] when a node appears in
	// another node's users set but is not actually referenced by that
	// node's args or kwargs.
	ErrUseWithoutDef = errors.New("users entry without a matching reference")

	// ErrDefWithoutUse is returned by [Validate] when a node references
	// another node in its args or kwargs but is missing from that node's
	// users set.
	ErrDefWithoutUse = errors.New("reference without a matching users entry")

	// ErrNameMismatch is returned by [Validate] when the graph's name table
	// disagrees with the nodes in the sequence.
	ErrNameMismatch = errors.New("name table out of sync with node sequence")
)

// Validate checks the structural invariants of a graph and returns the
// first violation found, or nil:
//
//  1. The node sequence is a consistent circular list: walking forward from
//     the root returns to the root in exactly Len steps, every next/prev
//     pair is mutual, no node appears twice, and every node's graph
//     back-reference is g.
//  2. Def/use edges are symmetric in both directions: a node B is in A's
//     users set exactly when A is a node leaf of B's args or kwargs.
//  3. The name table maps each node's name to that node.
//
// Violations are unreachable through this package's API; Validate exists to
// catch corruption from misuse and as a test oracle. It runs in time linear
// in nodes plus argument-tree size.
func Validate(g *Graph) error {
	nodes, err := walkSequence(g)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if got := g.names[n.name]; got != n {
			return fmt.Errorf("%w: %q", ErrNameMismatch, n.name)
		}
		defs := n.collectDefs()
		for d := range defs {
			if _, ok := d.users.Get(n); !ok {
				return fmt.Errorf("%w: %s references %s", ErrDefWithoutUse, n.name, d.name)
			}
		}
		for _, u := range n.Users() {
			if _, ok := u.collectDefs()[n]; !ok {
				return fmt.Errorf("%w: %s lists user %s", ErrUseWithoutDef, n.name, u.name)
			}
		}
	}
	if len(g.names) != len(nodes) {
		return fmt.Errorf("%w: %d named, %d in sequence", ErrNameMismatch, len(g.names), len(nodes))
	}
	return nil
}

// walkSequence walks forward from the root sentinel and returns the nodes
// in order, verifying link consistency along the way.
func walkSequence(g *Graph) ([]*Node, error) {
	var nodes []*Node
	seen := map[*Node]bool{g.root: true}
	for n := g.root.next; n != g.root; n = n.next {
		if seen[n] {
			return nil, fmt.Errorf("%w: %s visited twice", ErrBrokenLink, n.name)
		}
		if n.next.prev != n || n.prev.next != n {
			return nil, fmt.Errorf("%w: around %s", ErrBrokenLink, n.name)
		}
		if n.graph != g {
			return nil, fmt.Errorf("%w: %s owned by another graph", ErrBrokenLink, n.name)
		}
		seen[n] = true
		nodes = append(nodes, n)
		if len(nodes) > g.n {
			return nil, fmt.Errorf("%w: sequence longer than %d nodes", ErrBrokenLink, g.n)
		}
	}
	if len(nodes) != g.n {
		return nil, fmt.Errorf("%w: walked %d nodes, graph has %d", ErrBrokenLink, len(nodes), g.n)
	}
	return nodes, nil
}
