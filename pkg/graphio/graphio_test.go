package graphio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracekit/tracekit/pkg/ir"
)

func buildGraph(t *testing.T) *ir.Graph {
	t.Helper()
	g := ir.New()
	x, err := g.Placeholder("x")
	require.NoError(t, err)

	kw := ir.NewDict()
	kw.Set("alpha", ir.Float(0.5))
	kw.Set("other", x)
	add, err := g.CallFunction(ir.FuncRef{Name: "add"},
		ir.Tuple{x, ir.List{x, ir.Int(3)}, ir.Slice{Start: x, Stop: ir.Int(10)}},
		kw)
	require.NoError(t, err)

	relu, err := g.CallMethod("relu", ir.Tuple{add}, ir.Dict{})
	require.NoError(t, err)
	_, err = g.Output(ir.Tuple{relu, ir.Tensor{Ref: "t0"}, ir.Dtype("float32")})
	require.NoError(t, err)
	return g
}

func TestRoundTrip(t *testing.T) {
	g := buildGraph(t)

	data, err := MarshalGraph(g)
	require.NoError(t, err)

	got, err := ReadGraph(bytes.NewReader(data))
	require.NoError(t, err)

	require.NoError(t, ir.Validate(got))
	assert.Equal(t, g.ID(), got.ID())
	require.Equal(t, g.Len(), got.Len())

	want := g.Nodes()
	nodes := got.Nodes()
	for i := range want {
		assert.Equal(t, want[i].Name(), nodes[i].Name())
		assert.Equal(t, want[i].Op(), nodes[i].Op())
		assert.Equal(t, ir.TargetString(want[i].Target()), ir.TargetString(nodes[i].Target()))
	}

	// Def/use edges are rebuilt: add references x in three positions but
	// carries a single users entry.
	x := got.FindNode("x")
	require.NotNil(t, x)
	users := x.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "add", users[0].Name())

	add := got.FindNode("add")
	require.NotNil(t, add)
	sl, ok := add.Args()[2].(ir.Slice)
	require.True(t, ok, "args[2] should decode as a slice")
	assert.Equal(t, ir.Argument(x), sl.Start)
	assert.Equal(t, ir.Argument(ir.Int(10)), sl.Stop)
	assert.Nil(t, sl.Step)

	keys := add.Kwargs().Keys()
	assert.Equal(t, []string{"alpha", "other"}, keys)
}

func TestReadRejectsUnknownRef(t *testing.T) {
	data := []byte(`{
	  "nodes": [
	    {"name": "a", "op": "call_function", "target": {"kind": "func", "name": "f"},
	     "args": [{"kind": "node", "node": "missing"}]}
	  ]
	}`)

	_, err := ReadGraph(bytes.NewReader(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownNodeRef)
}

func TestReadRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "EmptyNodeName",
			data: `{"nodes": [{"name": "", "op": "placeholder", "target": {"kind": "str", "name": "x"}}]}`,
		},
		{
			name: "UnknownArgKind",
			data: `{"nodes": [{"name": "a", "op": "call_function", "target": {"kind": "func", "name": "f"},
			        "args": [{"kind": "wat"}]}]}`,
		},
		{
			name: "UnknownTargetKind",
			data: `{"nodes": [{"name": "a", "op": "call_function", "target": {"kind": "wat", "name": "f"}}]}`,
		},
		{
			name: "BadGraphID",
			data: `{"id": "not-a-uuid", "nodes": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(bytes.NewReader([]byte(tt.data)))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadRecord)
		})
	}
}

func TestMarshalRejectsOpaqueTarget(t *testing.T) {
	g := ir.New()
	_, err := g.CallFunction(ir.Int(42), nil, ir.Dict{})
	require.NoError(t, err)

	_, err = MarshalGraph(g)
	assert.ErrorIs(t, err, ErrUnsupportedTarget)
}

func TestWriteReadFile(t *testing.T) {
	g := buildGraph(t)
	path := t.TempDir() + "/graph.json"

	require.NoError(t, WriteGraphFile(g, path))

	got, err := ReadGraphFile(path)
	require.NoError(t, err)
	assert.Equal(t, g.Len(), got.Len())
}
