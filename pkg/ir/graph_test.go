package ir

import (
	"errors"
	"testing"
)

func TestUniqueNameGeneration(t *testing.T) {
	g := New()
	a := mustCall(t, g, "add")
	b := mustCall(t, g, "add")
	c := mustCall(t, g, "add")

	if a.Name() != "add" || b.Name() != "add_2" || c.Name() != "add_3" {
		t.Errorf("names = %s, %s, %s, want add, add_2, add_3", a.Name(), b.Name(), c.Name())
	}
}

func TestNameSanitization(t *testing.T) {
	g := New()
	n, err := g.CallFunction(FuncRef{Name: "math.add"}, nil, Dict{})
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if n.Name() != "math_add" {
		t.Errorf("Name() = %q, want math_add", n.Name())
	}
}

func TestDuplicateExplicitName(t *testing.T) {
	g := New()
	mustPlaceholder(t, g, "x")
	_, err := g.Placeholder("x")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate Placeholder error = %v, want ErrDuplicateName", err)
	}
}

func TestFindNode(t *testing.T) {
	g := New()
	p := mustPlaceholder(t, g, "x")

	if got := g.FindNode("x"); got != p {
		t.Errorf("FindNode(x) = %v, want x", got)
	}
	if got := g.FindNode("missing"); got != nil {
		t.Errorf("FindNode(missing) = %v, want nil", got)
	}
}

func TestNodesSequenceOrder(t *testing.T) {
	g := New()
	mustPlaceholder(t, g, "x")
	mustCall(t, g, "relu")
	mustCall(t, g, "sum")

	got := names(g.Nodes())
	want := []string{"x", "relu", "sum"}
	if len(got) != len(want) {
		t.Fatalf("Nodes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Nodes() = %v, want %v", got, want)
		}
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
}

func TestEraseRequiresZeroUsers(t *testing.T) {
	g := New()
	p := mustPlaceholder(t, g, "x")
	mustCall(t, g, "relu", p)

	if err := g.Erase(p); !errors.Is(err, ErrHasUsers) {
		t.Fatalf("Erase with users error = %v, want ErrHasUsers", err)
	}
}

func TestEraseReleasesReverseEdges(t *testing.T) {
	g := New()
	p := mustPlaceholder(t, g, "x")
	a := mustCall(t, g, "relu", p)

	if err := g.Erase(a); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if !a.Erased() {
		t.Error("Erased() = false after Erase")
	}
	if p.UsersLen() != 0 {
		t.Errorf("x.UsersLen() = %d, want 0 after erasing its only user", p.UsersLen())
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
	if a.Next() != a || a.Prev() != a {
		t.Error("erased node is not a detached singleton")
	}
	if g.FindNode("relu") != nil {
		t.Error("erased node still resolvable by name")
	}
	if err := Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestEraseForeignNode(t *testing.T) {
	g1 := New()
	g2 := New()
	p := mustPlaceholder(t, g2, "x")

	if err := g1.Erase(p); !errors.Is(err, ErrForeignNode) {
		t.Fatalf("Erase foreign error = %v, want ErrForeignNode", err)
	}
}

func TestReplaceThenEraseRoundTrip(t *testing.T) {
	g := New()
	p := mustPlaceholder(t, g, "x")
	old := mustCall(t, g, "slow_op", p)
	mustCall(t, g, "consumer", old, old)
	repl := mustCall(t, g, "fast_op", p)

	old.ReplaceAllUsesWith(repl)
	if err := g.Erase(old); err != nil {
		t.Fatalf("Erase after replacement: %v", err)
	}
	if err := Validate(g); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := names(p.Users()); len(got) != 1 || got[0] != "fast_op" {
		t.Errorf("x.Users() = %v, want [fast_op]", got)
	}
}

func TestOutputHoldsResultTree(t *testing.T) {
	g := New()
	p := mustPlaceholder(t, g, "x")
	a := mustCall(t, g, "relu", p)
	out, err := g.Output(Tuple{a, p})
	if err != nil {
		t.Fatalf("Output: %v", err)
	}

	if out.Op() != OpOutput {
		t.Errorf("Op() = %v, want output", out.Op())
	}
	if got := names(a.Users()); len(got) != 1 || got[0] != "output" {
		t.Errorf("relu.Users() = %v, want [output]", got)
	}
}
