package ir

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Argument is a value attached to a node invocation. It is a closed union:
// scalar leaves ([String], [Int], [Float], [Bool], [Dtype], [Tensor]), node
// references (*[Node]), ordered sequences ([Tuple], [List]), string-keyed
// mappings ([Dict]), and slice triples ([Slice]). A nil Argument is a valid
// leaf and stands for the absence of a value (e.g. an unset slice bound).
//
// Node references found while walking an argument tree are exactly the defs
// of the node that owns the tree.
type Argument interface {
	isArgument()
}

// String is a string literal argument.
type String string

// Int is an integer literal argument.
type Int int64

// Float is a floating-point literal argument.
type Float float64

// Bool is a boolean literal argument.
type Bool bool

// Dtype is an element-type tag (e.g. "float32"). It is opaque to this
// package and carried through traversals unchanged.
type Dtype string

// Tensor is an opaque handle naming a tensor literal owned by an external
// numeric library. Only the handle travels through the graph.
type Tensor struct {
	Ref string
}

// Tuple is a fixed-shape ordered sequence of arguments. Node argument lists
// are tuples. [MapArg] preserves the distinction between Tuple and [List].
type Tuple []Argument

// List is a growable ordered sequence of arguments.
type List []Argument

// Slice is a start/stop/step triple. Each bound may be any argument,
// including a nested node reference, or nil when unset.
type Slice struct {
	Start Argument
	Stop  Argument
	Step  Argument
}

func (String) isArgument() {}
func (Int) isArgument()    {}
func (Float) isArgument()  {}
func (Bool) isArgument()   {}
func (Dtype) isArgument()  {}
func (Tensor) isArgument() {}
func (Tuple) isArgument()  {}
func (List) isArgument()   {}
func (Slice) isArgument()  {}
func (Dict) isArgument()   {}
func (*Node) isArgument()  {}

// Dict is a string-keyed mapping of arguments with unique keys. Iteration
// order equals insertion order, so traversals over a Dict are deterministic.
// The zero value is an empty read-only Dict; use [NewDict] before calling Set.
type Dict struct {
	om *orderedmap.OrderedMap[string, Argument]
}

// NewDict creates an empty Dict ready for Set calls.
func NewDict() Dict {
	return Dict{om: orderedmap.New[string, Argument]()}
}

// Set stores v under key, keeping the key's original position if it already
// exists. The Dict must have been created with [NewDict].
func (d Dict) Set(key string, v Argument) {
	d.om.Set(key, v)
}

// Get returns the value stored under key and whether it was present.
func (d Dict) Get(key string) (Argument, bool) {
	if d.om == nil {
		return nil, false
	}
	return d.om.Get(key)
}

// Len returns the number of entries.
func (d Dict) Len() int {
	if d.om == nil {
		return 0
	}
	return d.om.Len()
}

// Keys returns the keys in insertion order.
func (d Dict) Keys() []string {
	if d.om == nil {
		return nil
	}
	keys := make([]string, 0, d.om.Len())
	for p := d.om.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Range calls fn for each entry in insertion order. Iteration stops early if
// fn returns false. The Dict must not be mutated during Range.
func (d Dict) Range(fn func(key string, v Argument) bool) {
	if d.om == nil {
		return
	}
	for p := d.om.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// MapArg applies fn to every node reference in a, rebuilding the surrounding
// structure unchanged: tuples stay tuples, lists stay lists, dicts keep their
// keys and key order, slices keep their start/stop/step positions. Leaves
// that are not node references are returned as-is.
//
// MapArg has no side effects beyond those of fn. It is used in two modes:
// def discovery, where fn records each node and the result is discarded, and
// substitution, where fn returns either the same node or a replacement and
// the result becomes the new argument tree.
func MapArg(a Argument, fn func(*Node) Argument) Argument {
	switch v := a.(type) {
	case Tuple:
		out := make(Tuple, len(v))
		for i, elem := range v {
			out[i] = MapArg(elem, fn)
		}
		return out
	case List:
		out := make(List, len(v))
		for i, elem := range v {
			out[i] = MapArg(elem, fn)
		}
		return out
	case Dict:
		out := NewDict()
		v.Range(func(key string, elem Argument) bool {
			out.Set(key, MapArg(elem, fn))
			return true
		})
		return out
	case Slice:
		return Slice{
			Start: MapArg(v.Start, fn),
			Stop:  MapArg(v.Stop, fn),
			Step:  MapArg(v.Step, fn),
		}
	case *Node:
		return fn(v)
	default:
		return a
	}
}
