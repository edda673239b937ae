package transform

import (
	"testing"

	"github.com/tracekit/tracekit/pkg/ir"
)

func buildChain(t *testing.T) (*ir.Graph, *ir.Node, *ir.Node) {
	t.Helper()
	g := ir.New()
	x, err := g.Placeholder("x")
	if err != nil {
		t.Fatalf("Placeholder: %v", err)
	}
	a, err := g.CallFunction(ir.FuncRef{Name: "relu"}, ir.Tuple{x}, ir.Dict{})
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	return g, x, a
}

func TestEliminateDead(t *testing.T) {
	g, x, a := buildChain(t)
	// dead1 -> dead2 chain: erasing dead2 frees dead1 on the next sweep.
	dead1, _ := g.CallFunction(ir.FuncRef{Name: "mul"}, ir.Tuple{x}, ir.Dict{})
	g.CallFunction(ir.FuncRef{Name: "neg"}, ir.Tuple{dead1}, ir.Dict{})
	g.Output(a)

	removed := EliminateDead(g)

	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if g.FindNode("mul") != nil || g.FindNode("neg") != nil {
		t.Error("dead chain still present")
	}
	if g.FindNode("relu") == nil {
		t.Error("live node was removed")
	}
	if err := ir.Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestEliminateDeadKeepsPlaceholders(t *testing.T) {
	g := ir.New()
	g.Placeholder("unused")

	if removed := EliminateDead(g); removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if g.FindNode("unused") == nil {
		t.Error("placeholder was removed")
	}
}

func TestRewriteNodes(t *testing.T) {
	g, x, a := buildChain(t)
	out, _ := g.Output(a)

	fast, err := g.CallFunction(ir.FuncRef{Name: "fast_relu"}, ir.Tuple{x}, ir.Dict{})
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}

	rewritten, err := RewriteNodes(g, func(n *ir.Node) *ir.Node {
		if n.Op() == ir.OpCallFunction && n.Target() == ir.Target(ir.FuncRef{Name: "relu"}) {
			return fast
		}
		return n
	})
	if err != nil {
		t.Fatalf("RewriteNodes: %v", err)
	}

	if rewritten != 1 {
		t.Errorf("rewritten = %d, want 1", rewritten)
	}
	if g.FindNode("relu") != nil {
		t.Error("rewritten node still present")
	}
	if got := out.Args()[0]; got != ir.Argument(fast) {
		t.Errorf("output arg = %v, want fast_relu", got)
	}
	if err := ir.Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestReplaceTarget(t *testing.T) {
	g, x, _ := buildChain(t)
	b, _ := g.CallFunction(ir.FuncRef{Name: "add"}, ir.Tuple{x, x}, ir.Dict{})
	g.CallFunction(ir.FuncRef{Name: "add"}, ir.Tuple{b, x}, ir.Dict{})

	n, err := ReplaceTarget(g, ir.FuncRef{Name: "add"}, ir.FuncRef{Name: "fused_add"})
	if err != nil {
		t.Fatalf("ReplaceTarget: %v", err)
	}
	if n != 2 {
		t.Errorf("retargeted = %d, want 2", n)
	}
	for _, node := range g.Nodes() {
		if node.Target() == ir.Target(ir.FuncRef{Name: "add"}) {
			t.Errorf("%s still targets add", node.Name())
		}
	}
}
