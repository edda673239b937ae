package graphio

// File is the JSON wire form of a graph. Nodes appear in sequence order, so
// decoding replays the graph's construction.
type File struct {
	ID    string       `json:"id,omitempty"`
	Nodes []NodeRecord `json:"nodes"`
}

// NodeRecord is the wire form of one node.
type NodeRecord struct {
	Name   string        `json:"name"`
	Op     string        `json:"op"`
	Target TargetRecord  `json:"target"`
	Args   []ArgRecord   `json:"args,omitempty"`
	Kwargs []EntryRecord `json:"kwargs,omitempty"`
}

// TargetRecord is the wire form of a node target. Kind is "str" for string
// targets and "func" for callable references; Name carries the value.
type TargetRecord struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// EntryRecord is one key/value entry of a dict. Entries are stored as an
// array to preserve key order.
type EntryRecord struct {
	Key   string    `json:"key"`
	Value ArgRecord `json:"value"`
}

// ArgRecord is the tagged wire form of an argument tree. Kind selects which
// of the remaining fields is meaningful.
type ArgRecord struct {
	Kind string `json:"kind"`

	Str     string        `json:"str,omitempty"`     // string, dtype, tensor
	Int     int64         `json:"int,omitempty"`     // int
	Float   float64       `json:"float,omitempty"`   // float
	Bool    bool          `json:"bool,omitempty"`    // bool
	Node    string        `json:"node,omitempty"`    // node (by name)
	Items   []ArgRecord   `json:"items,omitempty"`   // tuple, list
	Entries []EntryRecord `json:"entries,omitempty"` // dict
	Start   *ArgRecord    `json:"start,omitempty"`   // slice
	Stop    *ArgRecord    `json:"stop,omitempty"`    // slice
	Step    *ArgRecord    `json:"step,omitempty"`    // slice
}

// Kind tags used in [ArgRecord] and [TargetRecord].
const (
	kindNull   = "null"
	kindString = "string"
	kindInt    = "int"
	kindFloat  = "float"
	kindBool   = "bool"
	kindDtype  = "dtype"
	kindTensor = "tensor"
	kindNode   = "node"
	kindTuple  = "tuple"
	kindList   = "list"
	kindDict   = "dict"
	kindSlice  = "slice"

	kindTargetStr  = "str"
	kindTargetFunc = "func"
)
