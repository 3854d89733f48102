package graph

import (
	"encoding/json"
	"math"
	"strconv"
)

// =============================================================================
// Node State
// =============================================================================

// NodeState is the presentation state of a node.
type NodeState string

// Node states, in the order a traversal usually moves through them.
const (
	StateDefault NodeState = "default"
	StateCurrent NodeState = "current"
	StateVisited NodeState = "visited"
	StatePath    NodeState = "path"
	StateError   NodeState = "error"
)

// DefaultWeight is the cost of an edge without an explicit weight.
const DefaultWeight = 1.0

// =============================================================================
// Distance
// =============================================================================

// Distance is an algorithm-assigned numeric distance that may be infinite.
//
// JSON has no representation for infinity, so +Inf is encoded as the string
// "Infinity" and -Inf as "-Infinity". Both decode back to the same value.
type Distance float64

// Inf is the distance of an unreached node.
var Inf = Distance(math.Inf(1))

// IsInf reports whether d is +Inf.
func (d Distance) IsInf() bool { return math.IsInf(float64(d), 1) }

// String formats the distance for descriptions ("∞" for unreachable).
func (d Distance) String() string {
	switch {
	case math.IsInf(float64(d), 1):
		return "∞"
	case math.IsInf(float64(d), -1):
		return "-∞"
	}
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}

// MarshalJSON implements json.Marshaler.
func (d Distance) MarshalJSON() ([]byte, error) {
	switch {
	case math.IsInf(float64(d), 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(float64(d), -1):
		return []byte(`"-Infinity"`), nil
	}
	return json.Marshal(float64(d))
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Distance) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "Infinity":
			*d = Inf
		case "-Infinity":
			*d = Distance(math.Inf(-1))
		default:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			*d = Distance(f)
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*d = Distance(f)
	return nil
}

// =============================================================================
// Node, Edge, Data
// =============================================================================

// Node is a vertex as drawn by the editor.
type Node struct {
	ID       string    `json:"id" yaml:"id"`
	Label    string    `json:"label,omitempty" yaml:"label,omitempty"`
	X        *float64  `json:"x,omitempty" yaml:"x,omitempty"` // A* heuristic and display only
	Y        *float64  `json:"y,omitempty" yaml:"y,omitempty"`
	State    NodeState `json:"state,omitempty" yaml:"state,omitempty"`
	Distance *Distance `json:"distance,omitempty" yaml:"distance,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge connects Source to Target. Presentation flags are set through trace steps.
type Edge struct {
	ID       string   `json:"id" yaml:"id"`
	Source   string   `json:"source" yaml:"source"`
	Target   string   `json:"target" yaml:"target"`
	Weight   *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	IsActive bool     `json:"isActive,omitempty" yaml:"isActive,omitempty"`
	InTree   bool     `json:"inTree,omitempty" yaml:"inTree,omitempty"`
	IsError  bool     `json:"isError,omitempty" yaml:"isError,omitempty"`
}

// Cost returns the edge weight, or DefaultWeight when none is set.
func (e *Edge) Cost() float64 {
	if e.Weight == nil {
		return DefaultWeight
	}
	return *e.Weight
}

// Other returns the endpoint opposite to id.
func (e *Edge) Other(id string) string {
	if e.Source == id {
		return e.Target
	}
	return e.Source
}

// Data is the graph snapshot handed to an algorithm run.
type Data struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Clone returns a deep copy of d. Pointer fields are duplicated so callers
// can modify the copy without affecting the original.
func (d Data) Clone() Data {
	out := Data{
		Nodes: make([]Node, len(d.Nodes)),
		Edges: make([]Edge, len(d.Edges)),
	}
	for i, n := range d.Nodes {
		n.X = clonePtr(n.X)
		n.Y = clonePtr(n.Y)
		n.Distance = clonePtr(n.Distance)
		out.Nodes[i] = n
	}
	for i, e := range d.Edges {
		e.Weight = clonePtr(e.Weight)
		out.Edges[i] = e
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Float returns a pointer to v, for optional coordinates and weights.
func Float(v float64) *float64 { return &v }

// Dist returns a pointer to v as a Distance.
func Dist(v Distance) *Distance { return &v }
