package graph

import (
	"math"

	errs "github.com/matzehuels/algotrace/pkg/errors"
)

// MaxWeight bounds the magnitude of an explicit edge weight. Sums of
// bounded weights stay finite, so path lengths and flow capacities never
// overflow to ∞.
const MaxWeight = 1e12

// Validate checks the structural invariants every algorithm relies on.
// It returns nil if valid, or an INVALID_GRAPH error describing the first
// violation found:
//
//  1. Node ids are non-empty and unique
//  2. Edge ids are non-empty and unique
//  3. Every edge source and target is a known node id
//  4. Every explicit weight is finite and at most MaxWeight in magnitude
//  5. Every explicit coordinate is finite
func (d Data) Validate() error {
	nodes := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if err := errs.ValidateID("node", n.ID); err != nil {
			return err
		}
		if nodes[n.ID] {
			return errs.New(errs.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		nodes[n.ID] = true
		if !finite(n.X) || !finite(n.Y) {
			return errs.New(errs.ErrCodeInvalidGraph, "node %s has non-finite coordinates", n.ID)
		}
	}

	edges := make(map[string]bool, len(d.Edges))
	for _, e := range d.Edges {
		if err := errs.ValidateID("edge", e.ID); err != nil {
			return err
		}
		if edges[e.ID] {
			return errs.New(errs.ErrCodeInvalidGraph, "duplicate edge id %q", e.ID)
		}
		edges[e.ID] = true

		if !nodes[e.Source] {
			return errs.New(errs.ErrCodeInvalidGraph, "edge %s references unknown source node %q", e.ID, e.Source)
		}
		if !nodes[e.Target] {
			return errs.New(errs.ErrCodeInvalidGraph, "edge %s references unknown target node %q", e.ID, e.Target)
		}
		if !finite(e.Weight) {
			return errs.New(errs.ErrCodeInvalidGraph, "edge %s has non-finite weight", e.ID)
		}
		if e.Weight != nil && math.Abs(*e.Weight) > MaxWeight {
			return errs.New(errs.ErrCodeInvalidGraph, "edge %s weight %g exceeds ±%g", e.ID, *e.Weight, MaxWeight)
		}
	}
	return nil
}

// finite reports whether an optional value is absent or a finite number.
func finite(v *float64) bool {
	return v == nil || !(math.IsNaN(*v) || math.IsInf(*v, 0))
}

// Adjacent pairs a neighboring node with the edge that reaches it.
type Adjacent struct {
	Node string
	Edge *Edge
}

// Index is a read-only lookup structure over a validated Data value.
// Adjacency queries scan the edge list, so results always follow edge
// insertion order.
type Index struct {
	data   Data
	pos    map[string]int
	shared map[string]bool
}

// NewIndex builds an index over d. The index keeps a clone, so later
// modifications of d are not observed.
func NewIndex(d Data) *Index {
	c := d.Clone()
	pos := make(map[string]int, len(c.Nodes))
	count := make(map[string]int, len(c.Nodes))
	for i, n := range c.Nodes {
		pos[n.ID] = i
		count[n.DisplayLabel()]++
	}
	shared := make(map[string]bool)
	for l, k := range count {
		if k > 1 {
			shared[l] = true
		}
	}
	return &Index{data: c, pos: pos, shared: shared}
}

// Len returns the number of nodes.
func (ix *Index) Len() int { return len(ix.data.Nodes) }

// Nodes returns the nodes in input order. The slice must not be modified.
func (ix *Index) Nodes() []Node { return ix.data.Nodes }

// Edges returns the edges in input order. The slice must not be modified.
func (ix *Index) Edges() []Edge { return ix.data.Edges }

// NodeIDs returns all node ids in input order.
func (ix *Index) NodeIDs() []string {
	ids := make([]string, len(ix.data.Nodes))
	for i, n := range ix.data.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Has reports whether id is a node of the graph.
func (ix *Index) Has(id string) bool {
	_, ok := ix.pos[id]
	return ok
}

// Position returns the input-order position of node id, or -1.
func (ix *Index) Position(id string) int {
	if i, ok := ix.pos[id]; ok {
		return i
	}
	return -1
}

// Node returns the node with the given id.
func (ix *Index) Node(id string) (*Node, bool) {
	i, ok := ix.pos[id]
	if !ok {
		return nil, false
	}
	return &ix.data.Nodes[i], true
}

// Label returns the display label of id, or id itself for unknown ids.
func (ix *Index) Label(id string) string {
	if n, ok := ix.Node(id); ok {
		return n.DisplayLabel()
	}
	return id
}

// UniqueLabel is Label, suffixed with the id in parentheses when another
// node shows the same label. Tables keyed by it never merge two nodes.
func (ix *Index) UniqueLabel(id string) string {
	l := ix.Label(id)
	if ix.shared[l] {
		return l + " (" + id + ")"
	}
	return l
}

// Coordinates returns the position of node id if both x and y are set.
func (ix *Index) Coordinates(id string) (x, y float64, ok bool) {
	n, found := ix.Node(id)
	if !found || n.X == nil || n.Y == nil {
		return 0, 0, false
	}
	return *n.X, *n.Y, true
}

// Neighbors returns every node joined to id by an edge, in either
// orientation. Used by algorithms that treat the graph as undirected.
// A node connected twice appears twice, once per edge.
func (ix *Index) Neighbors(id string) []Adjacent {
	var out []Adjacent
	for i := range ix.data.Edges {
		e := &ix.data.Edges[i]
		switch id {
		case e.Source:
			out = append(out, Adjacent{Node: e.Target, Edge: e})
		case e.Target:
			out = append(out, Adjacent{Node: e.Source, Edge: e})
		}
	}
	return out
}

// Outgoing returns the targets of edges whose source is id. Used by
// algorithms that treat the graph as directed.
func (ix *Index) Outgoing(id string) []Adjacent {
	var out []Adjacent
	for i := range ix.data.Edges {
		e := &ix.data.Edges[i]
		if e.Source == id {
			out = append(out, Adjacent{Node: e.Target, Edge: e})
		}
	}
	return out
}

// EdgeBetween returns the first edge from source to target, following the
// recorded orientation.
func (ix *Index) EdgeBetween(source, target string) (*Edge, bool) {
	for i := range ix.data.Edges {
		e := &ix.data.Edges[i]
		if e.Source == source && e.Target == target {
			return e, true
		}
	}
	return nil, false
}
