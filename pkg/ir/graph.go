package ir

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrDuplicateName is returned by [Graph.NewNode] when an explicit name
	// is already taken by another node in the graph.
	ErrDuplicateName = errors.New("duplicate node name")

	// ErrHasUsers is returned by [Graph.Erase] when the node is still
	// referenced by other nodes. Call [Node.ReplaceAllUsesWith] first.
	ErrHasUsers = errors.New("node still has users")

	// ErrForeignNode is returned by [Graph.Erase] when the node belongs to
	// a different graph.
	ErrForeignNode = errors.New("node belongs to a different graph")
)

// Graph owns a sequence of nodes. It generates unique node names, maintains
// the intrasequence list through an internal root sentinel, and provides the
// only construction and erasure entry points for nodes.
//
// The zero value is not usable; use [New]. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	id    uuid.UUID
	root  *Node
	names map[string]*Node
	used  map[string]int // base name -> next suffix
	n     int
}

// New creates an empty graph. The root sentinel anchors the node sequence
// and is never returned by [Graph.Nodes].
func New() *Graph {
	return NewWithID(uuid.New())
}

// NewWithID creates an empty graph with a fixed identity token. Used when
// reconstructing a serialized graph.
func NewWithID(id uuid.UUID) *Graph {
	g := &Graph{
		id:    id,
		names: make(map[string]*Node),
		used:  make(map[string]int),
	}
	root, err := newNode(g, "", OpRoot, "", nil, Dict{}, nil)
	if err != nil {
		panic(err) // OpRoot is always valid
	}
	g.root = root
	return g
}

// ID returns the graph's identity token, carried through serialization for
// diagnostics.
func (g *Graph) ID() uuid.UUID { return g.id }

// Len returns the number of nodes in the graph, excluding the root sentinel.
func (g *Graph) Len() int { return g.n }

// Nodes returns the nodes in sequence order. The returned slice is a
// snapshot; relinking or erasing nodes does not affect it.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, g.n)
	for n := g.root.next; n != g.root; n = n.next {
		out = append(out, n)
		if len(out) > g.n {
			panic("ir: node sequence does not return to the root sentinel")
		}
	}
	return out
}

// FindNode returns the node with the given name, or nil if absent.
func (g *Graph) FindNode(name string) *Node {
	return g.names[name]
}

// NewNode creates a node and appends it to the end of the sequence. If name
// is empty, a unique name is derived from the target (or op). An explicit
// name that collides with an existing node returns [ErrDuplicateName].
// Construction validates the op tag and the string-target requirement for
// call_method and call_module nodes.
func (g *Graph) NewNode(name string, op Op, target Target, args Tuple, kwargs Dict) (*Node, error) {
	if name == "" {
		name = g.uniqueName(nameBase(op, target))
	} else if _, taken := g.names[name]; taken {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	n, err := newNode(g, name, op, target, args, kwargs, nil)
	if err != nil {
		return nil, err
	}
	g.root.Prepend(n) // before the sentinel = end of the sequence
	g.names[name] = n
	g.n++
	return n, nil
}

// Placeholder creates a placeholder node standing for a graph input.
func (g *Graph) Placeholder(name string) (*Node, error) {
	return g.NewNode(name, OpPlaceholder, name, nil, Dict{})
}

// GetAttr creates a node that fetches the named attribute from the traced
// root object.
func (g *Graph) GetAttr(target string) (*Node, error) {
	return g.NewNode("", OpGetAttr, target, nil, Dict{})
}

// CallFunction creates a node invoking a free function.
func (g *Graph) CallFunction(target Target, args Tuple, kwargs Dict) (*Node, error) {
	return g.NewNode("", OpCallFunction, target, args, kwargs)
}

// CallMethod creates a node invoking the named method on args[0].
func (g *Graph) CallMethod(target string, args Tuple, kwargs Dict) (*Node, error) {
	return g.NewNode("", OpCallMethod, target, args, kwargs)
}

// CallModule creates a node invoking the named submodule on its arguments.
func (g *Graph) CallModule(target string, args Tuple, kwargs Dict) (*Node, error) {
	return g.NewNode("", OpCallModule, target, args, kwargs)
}

// Output creates the output node of the graph. Its single argument holds
// the returned value, which may be an arbitrarily nested argument tree.
func (g *Graph) Output(result Argument) (*Node, error) {
	return g.NewNode("", OpOutput, "output", Tuple{result}, Dict{})
}

// Erase removes a node from the graph. The node must have no remaining
// users ([ErrHasUsers] otherwise); use [Node.ReplaceAllUsesWith] to migrate
// users first. Erase drops the node's own argument trees, releasing its
// reverse edges on its defs, unlinks it from the sequence, and marks it
// erased. The erased node is a detached singleton afterwards.
func (g *Graph) Erase(n *Node) error {
	if n.graph != g {
		return fmt.Errorf("%w: %s", ErrForeignNode, n.name)
	}
	if n == g.root {
		return errors.New("cannot erase the root sentinel")
	}
	if n.users.Len() != 0 {
		return fmt.Errorf("%w: %s has %d users", ErrHasUsers, n.name, n.users.Len())
	}
	n.updateArgsKwargs(nil, Dict{})
	n.removeFromList()
	n.prev, n.next = n, n
	n.erased = true
	delete(g.names, n.name)
	g.n--
	return nil
}

// uniqueName reserves and returns an unused name built from base, appending
// a numeric suffix on collision.
func (g *Graph) uniqueName(base string) string {
	if _, taken := g.names[base]; !taken && g.used[base] == 0 {
		g.used[base] = 1
		return base
	}
	for {
		g.used[base]++
		candidate := fmt.Sprintf("%s_%d", base, g.used[base])
		if _, taken := g.names[candidate]; !taken {
			return candidate
		}
	}
}

// nameBase derives a name stem from a node's target, falling back to the op
// tag. Characters outside [a-zA-Z0-9_] become underscores.
func nameBase(op Op, target Target) string {
	s := TargetString(target)
	if s == "" {
		s = string(op)
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
