package ir_test

import (
	"fmt"

	"github.com/tracekit/tracekit/pkg/ir"
)

func Example_basic() {
	// Record x + x followed by relu.
	g := ir.New()
	x, _ := g.Placeholder("x")
	add, _ := g.CallFunction(ir.FuncRef{Name: "add"}, ir.Tuple{x, x}, ir.Dict{})
	relu, _ := g.CallMethod("relu", ir.Tuple{add}, ir.Dict{})
	g.Output(relu)

	for _, n := range g.Nodes() {
		fmt.Printf("%s = %s %s\n", n.Name(), n.Op(), ir.TargetString(n.Target()))
	}
	// Output:
	// x = placeholder x
	// add = call_function add
	// relu = call_method relu
	// output = output output
}

func ExampleNode_ReplaceAllUsesWith() {
	g := ir.New()
	x, _ := g.Placeholder("x")
	y, _ := g.Placeholder("y")
	add, _ := g.CallFunction(ir.FuncRef{Name: "add"}, ir.Tuple{x, x}, ir.Dict{})

	affected := x.ReplaceAllUsesWith(y)

	fmt.Println("affected:", len(affected))
	fmt.Println("x users:", len(x.Users()))
	fmt.Println("y users:", len(y.Users()))
	fmt.Println("args:", add.Args()[0] == ir.Argument(y), add.Args()[1] == ir.Argument(y))
	// Output:
	// affected: 1
	// x users: 0
	// y users: 1
	// args: true true
}

func ExampleMapArg() {
	g := ir.New()
	x, _ := g.Placeholder("x")

	kw := ir.NewDict()
	kw.Set("k", x)
	tree := ir.Tuple{x, ir.List{x, ir.Int(3)}, kw}

	mapped := ir.MapArg(tree, func(n *ir.Node) ir.Argument {
		return ir.String(n.Name())
	})

	out := mapped.(ir.Tuple)
	fmt.Println(out[0])
	lst := out[1].(ir.List)
	fmt.Println(lst[0], lst[1])
	v, _ := out[2].(ir.Dict).Get("k")
	fmt.Println(v)
	// Output:
	// x
	// x 3
	// x
}
