package ir

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrUnknownOp is returned by node construction when the op tag is not
	// one of the defined [Op] constants.
	ErrUnknownOp = errors.New("unknown op tag")

	// ErrTargetNotString is returned by node construction when a
	// call_method or call_module node is given a non-string target.
	// Method and module targets name an attribute and must be strings.
	ErrTargetNotString = errors.New("call_method and call_module targets must be strings")
)

// Op tags the kind of operation a node records.
type Op string

// The closed set of op tags.
const (
	OpPlaceholder  Op = "placeholder"
	OpCallMethod   Op = "call_method"
	OpCallModule   Op = "call_module"
	OpCallFunction Op = "call_function"
	OpGetAttr      Op = "get_attr"
	OpOutput       Op = "output"
	OpRoot         Op = "root"
)

var validOps = map[Op]bool{
	OpPlaceholder:  true,
	OpCallMethod:   true,
	OpCallModule:   true,
	OpCallFunction: true,
	OpGetAttr:      true,
	OpOutput:       true,
	OpRoot:         true,
}

// Target identifies what a node invokes: a string (attribute, method, or
// module path) or a [FuncRef] naming a callable.
type Target any

// FuncRef names a callable target. Callables themselves are not held in the
// graph; the name is resolved by whatever executes or emits the graph.
// FuncRef is comparable, so retargeting passes can match on it.
type FuncRef struct {
	Name string
}

// String returns the callable name.
func (f FuncRef) String() string { return f.Name }

// TargetString renders a target for display and serialization.
func TargetString(t Target) string {
	switch v := t.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Node records one operation invocation in a [Graph]. Nodes link into a
// circular doubly-linked sequence owned by the graph and track bidirectional
// def/use edges: every node reachable as a leaf of this node's args or
// kwargs (a def) lists this node in its users set, and vice versa.
//
// Nodes are created through the graph's construction entry points
// ([Graph.NewNode] and its helpers), never directly. A Node is not safe for
// concurrent use; callers must serialize structural mutations per graph.
type Node struct {
	graph  *Graph
	name   string
	op     Op
	target Target
	args   Tuple
	kwargs Dict

	// users records every node that references this node in its args or
	// kwargs. One entry may stand for several uses (x + x appears once).
	// Iteration order is insertion order; ReplaceAllUsesWith depends on it.
	users *orderedmap.OrderedMap[*Node, struct{}]

	// typ is an optional type annotation, opaque to this package.
	typ any

	// prev and next point at the node itself until the node is linked into
	// a sequence, so a fresh node is a well-formed singleton list.
	prev *Node
	next *Node

	erased bool
}

// newNode constructs an unlinked node and registers it as a user of every
// node leaf in the initial args and kwargs. The caller links it into the
// graph sequence and name table.
func newNode(g *Graph, name string, op Op, target Target, args Tuple, kwargs Dict, typ any) (*Node, error) {
	if !validOps[op] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
	if op == OpCallMethod || op == OpCallModule {
		if _, ok := target.(string); !ok {
			return nil, fmt.Errorf("%w: got %T", ErrTargetNotString, target)
		}
	}
	n := &Node{
		graph:  g,
		name:   name,
		op:     op,
		target: target,
		kwargs: NewDict(),
		users:  orderedmap.New[*Node, struct{}](),
		typ:    typ,
	}
	n.prev, n.next = n, n
	n.updateArgsKwargs(args, kwargs)
	return n, nil
}

// Graph returns the owning graph. The association never changes after
// construction.
func (n *Node) Graph() *Graph { return n.graph }

// Name returns the node's name, unique within its graph.
func (n *Node) Name() string { return n.name }

// Op returns the node's op tag.
func (n *Node) Op() Op { return n.op }

// Target returns what the node invokes.
func (n *Node) Target() Target { return n.target }

// Type returns the optional type annotation, or nil.
func (n *Node) Type() any { return n.typ }

// SetType attaches a type annotation. The value is opaque to this package.
func (n *Node) SetType(t any) { n.typ = t }

// Retarget changes what the node invokes. The string-target requirement for
// call_method and call_module nodes applies here as at construction.
func (n *Node) Retarget(t Target) error {
	if n.op == OpCallMethod || n.op == OpCallModule {
		if _, ok := t.(string); !ok {
			return fmt.Errorf("%w: got %T", ErrTargetNotString, t)
		}
	}
	n.target = t
	return nil
}

// Erased reports whether the graph has removed this node from its sequence.
func (n *Node) Erased() bool { return n.erased }

// Args returns the positional arguments. Treat the returned tuple as
// read-only; use [Node.SetArgs] to change it so def/use edges stay in sync.
func (n *Node) Args() Tuple { return n.args }

// Kwargs returns the keyword arguments. Treat the returned dict as
// read-only; use [Node.SetKwargs] to change it so def/use edges stay in sync.
func (n *Node) Kwargs() Dict { return n.kwargs }

// SetArgs replaces the positional arguments and updates the users sets of
// every node that gained or lost a reference from this node.
func (n *Node) SetArgs(args Tuple) {
	n.updateArgsKwargs(args, n.kwargs)
}

// SetKwargs replaces the keyword arguments and updates the users sets of
// every node that gained or lost a reference from this node.
func (n *Node) SetKwargs(kwargs Dict) {
	n.updateArgsKwargs(n.args, kwargs)
}

// updateArgsKwargs is the single mutation path for args and kwargs. It
// installs the new trees and diffs the node leaves of the old trees against
// the new ones, removing this node from the users of dropped defs and adding
// it to the users of gained defs. Adding is idempotent: a def referenced in
// several positions carries one users entry.
func (n *Node) updateArgsKwargs(newArgs Tuple, newKwargs Dict) {
	oldDefs := n.collectDefs()
	n.args = newArgs
	n.kwargs = newKwargs
	newDefs := n.collectDefs()
	for d := range oldDefs {
		if _, ok := newDefs[d]; !ok {
			d.users.Delete(n)
		}
	}
	for d := range newDefs {
		if _, ok := oldDefs[d]; !ok {
			d.users.Set(n, struct{}{})
		}
	}
}

// collectDefs returns the set of node leaves reachable in the current args
// and kwargs trees.
func (n *Node) collectDefs() map[*Node]struct{} {
	defs := make(map[*Node]struct{})
	record := func(d *Node) Argument {
		defs[d] = struct{}{}
		return d
	}
	MapArg(n.args, record)
	MapArg(n.kwargs, record)
	return defs
}

// Defs returns the nodes this node references in its args and kwargs. Each
// def appears once regardless of how many positions reference it. The order
// is unspecified.
func (n *Node) Defs() []*Node {
	defs := n.collectDefs()
	out := make([]*Node, 0, len(defs))
	for d := range defs {
		out = append(out, d)
	}
	return out
}

// Users returns the nodes that reference this node, in the order they first
// gained a reference. The returned slice is a snapshot; later mutations do
// not affect it.
func (n *Node) Users() []*Node {
	out := make([]*Node, 0, n.users.Len())
	for p := n.users.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// UsersLen returns the number of distinct nodes referencing this node.
func (n *Node) UsersLen() int { return n.users.Len() }

// Next returns the node's successor in the graph sequence. For the last
// node this is the graph's root sentinel.
func (n *Node) Next() *Node { return n.next }

// Prev returns the node's predecessor in the graph sequence. For the first
// node this is the graph's root sentinel.
func (n *Node) Prev() *Node { return n.prev }

// Prepend removes x from its current position and splices it immediately
// before this node:
//
//	Before: p -> n        bx -> x -> ax
//	After:  p -> x -> n   bx -> ax
//
// Prepending a node before itself is a no-op; detaching and re-splicing at
// the same position would otherwise strand the node in a self-loop.
// Prepend panics if x belongs to a different graph; nodes never move between
// graphs.
func (n *Node) Prepend(x *Node) {
	if n.graph != x.graph {
		panic("ir: cannot move a node into a different graph")
	}
	if x == n {
		return
	}
	x.removeFromList()
	p := n.prev
	p.next, x.prev = x, p
	x.next, n.prev = n, x
}

// Append splices x immediately after this node. Equivalent to
// n.Next().Prepend(x).
func (n *Node) Append(x *Node) {
	n.next.Prepend(x)
}

// removeFromList detaches the node by linking its neighbors to each other.
// A singleton's self-loop is preserved unchanged.
func (n *Node) removeFromList() {
	p, nx := n.prev, n.next
	p.next, nx.prev = nx, p
}

// ReplaceAllUsesWith rewrites every user of this node to reference repl
// instead, preserving each user's argument tree shape and leaving all other
// leaves untouched. Afterwards this node has no users, which makes it safe
// for the graph to erase. Returns the users that were rewritten, in the
// order they first referenced this node.
//
// The users set is snapshotted before any rewrite: committing a user's new
// arguments migrates that user off this node's users set mid-loop, and
// iterating the live set while it shrinks would be unsound. Panics if any
// user remains afterwards; that can only mean the def/use bookkeeping was
// corrupted outside the sanctioned mutation path.
func (n *Node) ReplaceAllUsesWith(repl *Node) []*Node {
	users := n.Users()
	swap := func(d *Node) Argument {
		if d == n {
			return repl
		}
		return d
	}
	for _, u := range users {
		newArgs := MapArg(u.args, swap).(Tuple)
		newKwargs := MapArg(u.kwargs, swap).(Dict)
		u.updateArgsKwargs(newArgs, newKwargs)
	}
	if n.users.Len() != 0 {
		panic(fmt.Sprintf("ir: node %s still has %d users after replacement", n.name, n.users.Len()))
	}
	return users
}

// String returns the node's name.
func (n *Node) String() string { return n.name }
