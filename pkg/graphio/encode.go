package graphio

import (
	"errors"
	"fmt"

	"github.com/tracekit/tracekit/pkg/ir"
)

// ErrUnsupportedTarget is returned when a node's target is neither a string
// nor an [ir.FuncRef]. Opaque callables cannot be serialized.
var ErrUnsupportedTarget = errors.New("unsupported target type")

// FromGraph converts a graph to its wire form. Nodes are emitted in
// sequence order with node references encoded by name.
func FromGraph(g *ir.Graph) (File, error) {
	out := File{ID: g.ID().String()}
	for _, n := range g.Nodes() {
		rec, err := fromNode(n)
		if err != nil {
			return File{}, fmt.Errorf("node %s: %w", n.Name(), err)
		}
		out.Nodes = append(out.Nodes, rec)
	}
	return out, nil
}

func fromNode(n *ir.Node) (NodeRecord, error) {
	target, err := fromTarget(n.Target())
	if err != nil {
		return NodeRecord{}, err
	}
	rec := NodeRecord{
		Name:   n.Name(),
		Op:     string(n.Op()),
		Target: target,
	}
	for _, a := range n.Args() {
		rec.Args = append(rec.Args, fromArg(a))
	}
	rec.Kwargs = fromDict(n.Kwargs())
	return rec, nil
}

func fromTarget(t ir.Target) (TargetRecord, error) {
	switch v := t.(type) {
	case string:
		return TargetRecord{Kind: kindTargetStr, Name: v}, nil
	case ir.FuncRef:
		return TargetRecord{Kind: kindTargetFunc, Name: v.Name}, nil
	default:
		return TargetRecord{}, fmt.Errorf("%w: %T", ErrUnsupportedTarget, t)
	}
}

func fromArg(a ir.Argument) ArgRecord {
	switch v := a.(type) {
	case nil:
		return ArgRecord{Kind: kindNull}
	case ir.String:
		return ArgRecord{Kind: kindString, Str: string(v)}
	case ir.Int:
		return ArgRecord{Kind: kindInt, Int: int64(v)}
	case ir.Float:
		return ArgRecord{Kind: kindFloat, Float: float64(v)}
	case ir.Bool:
		return ArgRecord{Kind: kindBool, Bool: bool(v)}
	case ir.Dtype:
		return ArgRecord{Kind: kindDtype, Str: string(v)}
	case ir.Tensor:
		return ArgRecord{Kind: kindTensor, Str: v.Ref}
	case *ir.Node:
		return ArgRecord{Kind: kindNode, Node: v.Name()}
	case ir.Tuple:
		rec := ArgRecord{Kind: kindTuple, Items: make([]ArgRecord, 0, len(v))}
		for _, elem := range v {
			rec.Items = append(rec.Items, fromArg(elem))
		}
		return rec
	case ir.List:
		rec := ArgRecord{Kind: kindList, Items: make([]ArgRecord, 0, len(v))}
		for _, elem := range v {
			rec.Items = append(rec.Items, fromArg(elem))
		}
		return rec
	case ir.Dict:
		return ArgRecord{Kind: kindDict, Entries: fromDict(v)}
	case ir.Slice:
		rec := ArgRecord{Kind: kindSlice}
		if v.Start != nil {
			start := fromArg(v.Start)
			rec.Start = &start
		}
		if v.Stop != nil {
			stop := fromArg(v.Stop)
			rec.Stop = &stop
		}
		if v.Step != nil {
			step := fromArg(v.Step)
			rec.Step = &step
		}
		return rec
	default:
		// The Argument union is closed; this is unreachable.
		panic(fmt.Sprintf("graphio: unknown argument type %T", a))
	}
}

func fromDict(d ir.Dict) []EntryRecord {
	var entries []EntryRecord
	d.Range(func(key string, v ir.Argument) bool {
		entries = append(entries, EntryRecord{Key: key, Value: fromArg(v)})
		return true
	})
	return entries
}
