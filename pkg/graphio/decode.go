package graphio

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tracekit/tracekit/pkg/ir"
)

var (
	// ErrUnknownNodeRef is returned when an argument references a node name
	// that does not appear in the file.
	ErrUnknownNodeRef = errors.New("reference to unknown node")

	// ErrBadRecord is returned for malformed records: unknown kind tags,
	// empty node names, or invalid targets.
	ErrBadRecord = errors.New("malformed record")
)

// ToGraph reconstructs a graph from its wire form. Nodes are created first
// with empty arguments, then each node's argument trees are installed with
// references resolved by name, so forward references between nodes are
// accepted. The rebuilt graph is validated before being returned.
func ToGraph(f File) (*ir.Graph, error) {
	g, err := newGraph(f.ID)
	if err != nil {
		return nil, err
	}

	for _, rec := range f.Nodes {
		if rec.Name == "" {
			return nil, fmt.Errorf("%w: node with empty name", ErrBadRecord)
		}
		target, err := toTarget(rec.Target)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", rec.Name, err)
		}
		if _, err := g.NewNode(rec.Name, ir.Op(rec.Op), target, nil, ir.Dict{}); err != nil {
			return nil, fmt.Errorf("node %s: %w", rec.Name, err)
		}
	}

	for _, rec := range f.Nodes {
		n := g.FindNode(rec.Name)
		args := make(ir.Tuple, 0, len(rec.Args))
		for _, a := range rec.Args {
			arg, err := toArg(g, a)
			if err != nil {
				return nil, fmt.Errorf("node %s: %w", rec.Name, err)
			}
			args = append(args, arg)
		}
		kwargs, err := toDict(g, rec.Kwargs)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", rec.Name, err)
		}
		n.SetArgs(args)
		n.SetKwargs(kwargs)
	}

	if err := ir.Validate(g); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return g, nil
}

func newGraph(id string) (*ir.Graph, error) {
	if id == "" {
		return ir.New(), nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: graph id %q", ErrBadRecord, id)
	}
	return ir.NewWithID(parsed), nil
}

func toTarget(t TargetRecord) (ir.Target, error) {
	switch t.Kind {
	case kindTargetStr:
		return t.Name, nil
	case kindTargetFunc:
		return ir.FuncRef{Name: t.Name}, nil
	default:
		return nil, fmt.Errorf("%w: target kind %q", ErrBadRecord, t.Kind)
	}
}

func toArg(g *ir.Graph, rec ArgRecord) (ir.Argument, error) {
	switch rec.Kind {
	case kindNull:
		return nil, nil
	case kindString:
		return ir.String(rec.Str), nil
	case kindInt:
		return ir.Int(rec.Int), nil
	case kindFloat:
		return ir.Float(rec.Float), nil
	case kindBool:
		return ir.Bool(rec.Bool), nil
	case kindDtype:
		return ir.Dtype(rec.Str), nil
	case kindTensor:
		return ir.Tensor{Ref: rec.Str}, nil
	case kindNode:
		n := g.FindNode(rec.Node)
		if n == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNodeRef, rec.Node)
		}
		return n, nil
	case kindTuple:
		out := make(ir.Tuple, 0, len(rec.Items))
		for _, item := range rec.Items {
			arg, err := toArg(g, item)
			if err != nil {
				return nil, err
			}
			out = append(out, arg)
		}
		return out, nil
	case kindList:
		out := make(ir.List, 0, len(rec.Items))
		for _, item := range rec.Items {
			arg, err := toArg(g, item)
			if err != nil {
				return nil, err
			}
			out = append(out, arg)
		}
		return out, nil
	case kindDict:
		return toDict(g, rec.Entries)
	case kindSlice:
		var out ir.Slice
		var err error
		if rec.Start != nil {
			if out.Start, err = toArg(g, *rec.Start); err != nil {
				return nil, err
			}
		}
		if rec.Stop != nil {
			if out.Stop, err = toArg(g, *rec.Stop); err != nil {
				return nil, err
			}
		}
		if rec.Step != nil {
			if out.Step, err = toArg(g, *rec.Step); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: argument kind %q", ErrBadRecord, rec.Kind)
	}
}

func toDict(g *ir.Graph, entries []EntryRecord) (ir.Dict, error) {
	out := ir.NewDict()
	for _, e := range entries {
		v, err := toArg(g, e.Value)
		if err != nil {
			return ir.Dict{}, err
		}
		out.Set(e.Key, v)
	}
	return out, nil
}
