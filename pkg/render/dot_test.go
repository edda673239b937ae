package render

import (
	"strings"
	"testing"

	"github.com/tracekit/tracekit/pkg/ir"
)

func buildGraph(t *testing.T) *ir.Graph {
	t.Helper()
	g := ir.New()
	x, err := g.Placeholder("x")
	if err != nil {
		t.Fatalf("Placeholder: %v", err)
	}
	add, err := g.CallFunction(ir.FuncRef{Name: "add"}, ir.Tuple{x, x}, ir.Dict{})
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if _, err := g.Output(add); err != nil {
		t.Fatalf("Output: %v", err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	g := buildGraph(t)
	dot := ToDOT(g, Options{})

	for _, want := range []string{
		"digraph G {",
		`"x" [label="x", fillcolor=lightblue];`,
		`"add" [label="add"];`,
		`"x" -> "add";`,
		`"add" -> "output";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Two uses of x collapse to one edge.
	if got := strings.Count(dot, `"x" -> "add";`); got != 1 {
		t.Errorf("edge x->add appears %d times, want 1", got)
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := buildGraph(t)
	dot := ToDOT(g, Options{Detailed: true})

	if !strings.Contains(dot, `call_function add`) {
		t.Errorf("detailed DOT missing op/target label:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	g := buildGraph(t)
	a := ToDOT(g, Options{})
	for i := 0; i < 10; i++ {
		if b := ToDOT(g, Options{}); b != a {
			t.Fatal("ToDOT output varies between calls on an unchanged graph")
		}
	}
}
