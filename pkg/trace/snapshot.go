package trace

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/algotrace/pkg/graph"
)

// Matrix is a labeled table of distances: row key, then column key.
// Distance tables, gScore/fScore maps and residual capacities all use it.
type Matrix map[string]map[string]graph.Distance

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for k, row := range m {
		out[k] = maps.Clone(row)
	}
	return out
}

// Keys returns the row keys in sorted order.
func (m Matrix) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}

func (m Matrix) relabel(label func(string) string) Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for k, row := range m {
		r := make(map[string]graph.Distance, len(row))
		for c, d := range row {
			r[label(c)] = d
		}
		out[label(k)] = r
	}
	return out
}

// SnapshotKind names a Snapshot variant on the wire.
type SnapshotKind string

// Snapshot variants.
const (
	KindFrontier  SnapshotKind = "frontier"
	KindDistances SnapshotKind = "distances"
	KindScores    SnapshotKind = "scores"
	KindTree      SnapshotKind = "tree"
	KindForest    SnapshotKind = "forest"
	KindAllPairs  SnapshotKind = "all-pairs"
	KindFlow      SnapshotKind = "flow"
)

// Snapshot is the auxiliary view a step carries. The set of implementations
// is closed; each one belongs to one algorithm family.
type Snapshot interface {
	Kind() SnapshotKind
	slots() Slots
	labeled(label func(string) string) Slots
}

// FrontierOrder distinguishes a queue from a stack.
type FrontierOrder string

// Frontier orders.
const (
	FIFO FrontierOrder = "fifo"
	LIFO FrontierOrder = "lifo"
)

// Frontier is the traversal view: pending nodes and visit order.
// Written to "queue" (FIFO) or "stack" (LIFO), and "list".
type Frontier struct {
	Order   FrontierOrder
	Items   []string
	Visited []string
}

// NewFrontier copies items and visited into a Frontier snapshot.
func NewFrontier(order FrontierOrder, items, visited []string) *Frontier {
	return &Frontier{Order: order, Items: ids(items), Visited: ids(visited)}
}

func (f *Frontier) Kind() SnapshotKind { return KindFrontier }

func (f *Frontier) slots() Slots { return f.labeled(identity) }

func (f *Frontier) labeled(label func(string) string) Slots {
	items := mapIDs(f.Items, label)
	s := Slots{List: mapIDs(f.Visited, label)}
	if f.Order == LIFO {
		s.Stack = items
	} else {
		s.Queue = items
	}
	return s
}

// Distances is the single-source view: tentative distances from Source and
// the pending frontier. Written to "matrix" as {Source: Dist} and "list".
type Distances struct {
	Source   string
	Dist     map[string]graph.Distance
	Frontier []string
}

// NewDistances copies dist and frontier into a Distances snapshot.
func NewDistances(source string, dist map[string]graph.Distance, frontier []string) *Distances {
	return &Distances{Source: source, Dist: maps.Clone(dist), Frontier: ids(frontier)}
}

func (d *Distances) Kind() SnapshotKind { return KindDistances }

func (d *Distances) slots() Slots { return d.labeled(identity) }

func (d *Distances) labeled(label func(string) string) Slots {
	m := Matrix{d.Source: d.Dist}
	return Slots{Matrix: m.relabel(label), List: mapIDs(d.Frontier, label)}
}

// Scores is the A* view. Written to "matrix" as {gScore, fScore}, "list"
// (open set) and, once the goal is reached, "result" (path).
type Scores struct {
	G    map[string]graph.Distance
	F    map[string]graph.Distance
	Open []string
	Path []string
}

// Matrix rows used by Scores.
const (
	RowGScore = "gScore"
	RowFScore = "fScore"
)

// NewScores copies g, f and open into a Scores snapshot. path may be nil.
func NewScores(g, f map[string]graph.Distance, open, path []string) *Scores {
	s := &Scores{G: maps.Clone(g), F: maps.Clone(f), Open: ids(open)}
	if path != nil {
		s.Path = ids(path)
	}
	return s
}

func (s *Scores) Kind() SnapshotKind { return KindScores }

func (s *Scores) slots() Slots { return s.labeled(identity) }

func (s *Scores) labeled(label func(string) string) Slots {
	out := Slots{List: mapIDs(s.Open, label)}
	m := Matrix{RowGScore: relabelRow(s.G, label), RowFScore: relabelRow(s.F, label)}
	out.Matrix = m
	if s.Path != nil {
		out.Result = mapIDs(s.Path, label)
	}
	return out
}

// Tree is the Prim view: tree nodes ("list"), frontier edge ids in pop
// order ("array") and accepted edge ids ("result").
type Tree struct {
	Nodes    []string
	Frontier []string
	Edges    []string
}

// NewTree copies its arguments into a Tree snapshot.
func NewTree(nodes, frontier, edges []string) *Tree {
	return &Tree{Nodes: ids(nodes), Frontier: ids(frontier), Edges: ids(edges)}
}

func (t *Tree) Kind() SnapshotKind { return KindTree }

func (t *Tree) slots() Slots { return t.labeled(identity) }

func (t *Tree) labeled(label func(string) string) Slots {
	return Slots{
		List:   mapIDs(t.Nodes, label),
		Array:  mapIDs(t.Frontier, identity),
		Result: mapIDs(t.Edges, identity),
	}
}

// Forest is the Kruskal union-find view: the parent of every node in graph
// order ("array") and accepted edge ids ("result").
type Forest struct {
	Parent []string
	Edges  []string
}

// NewForest copies its arguments into a Forest snapshot.
func NewForest(parent, edges []string) *Forest {
	return &Forest{Parent: ids(parent), Edges: ids(edges)}
}

func (f *Forest) Kind() SnapshotKind { return KindForest }

func (f *Forest) slots() Slots { return f.labeled(identity) }

func (f *Forest) labeled(label func(string) string) Slots {
	return Slots{Array: mapIDs(f.Parent, label), Result: mapIDs(f.Edges, identity)}
}

// AllPairs is the Floyd-Warshall distance table, written to "matrix".
type AllPairs struct {
	Dist Matrix
}

// NewAllPairs copies dist into an AllPairs snapshot.
func NewAllPairs(dist Matrix) *AllPairs { return &AllPairs{Dist: dist.Clone()} }

func (a *AllPairs) Kind() SnapshotKind { return KindAllPairs }

func (a *AllPairs) slots() Slots { return a.labeled(identity) }

func (a *AllPairs) labeled(label func(string) string) Slots {
	return Slots{Matrix: a.Dist.relabel(label)}
}

// Flow is the max-flow view: the latest augmenting path ("result") and the
// residual capacities after it was applied ("matrix").
type Flow struct {
	Path     []string
	Residual Matrix
}

// NewFlow copies its arguments into a Flow snapshot.
func NewFlow(path []string, residual Matrix) *Flow {
	return &Flow{Path: ids(path), Residual: residual.Clone()}
}

func (f *Flow) Kind() SnapshotKind { return KindFlow }

func (f *Flow) slots() Slots { return f.labeled(identity) }

func (f *Flow) labeled(label func(string) string) Slots {
	return Slots{Result: mapIDs(f.Path, label), Matrix: f.Residual.relabel(label)}
}

// decodeSnapshot rebuilds the variant named by kind from its slots.
func decodeSnapshot(kind SnapshotKind, s Slots) (Snapshot, error) {
	switch kind {
	case "":
		return nil, nil
	case KindFrontier:
		f := &Frontier{Order: FIFO, Items: deref(s.Queue), Visited: deref(s.List)}
		if s.Stack != nil {
			f.Order, f.Items = LIFO, deref(s.Stack)
		}
		return f, nil
	case KindDistances:
		d := &Distances{Frontier: deref(s.List)}
		for source, row := range s.Matrix {
			d.Source, d.Dist = source, row
		}
		return d, nil
	case KindScores:
		sc := &Scores{G: s.Matrix[RowGScore], F: s.Matrix[RowFScore], Open: deref(s.List)}
		if s.Result != nil {
			sc.Path = *s.Result
		}
		return sc, nil
	case KindTree:
		return &Tree{Nodes: deref(s.List), Frontier: deref(s.Array), Edges: deref(s.Result)}, nil
	case KindForest:
		return &Forest{Parent: deref(s.Array), Edges: deref(s.Result)}, nil
	case KindAllPairs:
		return &AllPairs{Dist: s.Matrix}, nil
	case KindFlow:
		return &Flow{Path: deref(s.Result), Residual: s.Matrix}, nil
	}
	return nil, fmt.Errorf("unknown snapshot kind %q", kind)
}

func identity(id string) string { return id }

// ids returns a non-nil copy of s.
func ids(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}

func mapIDs(s []string, label func(string) string) *[]string {
	out := make([]string, len(s))
	for i, id := range s {
		out[i] = label(id)
	}
	return &out
}

func relabelRow(row map[string]graph.Distance, label func(string) string) map[string]graph.Distance {
	out := make(map[string]graph.Distance, len(row))
	for k, v := range row {
		out[label(k)] = v
	}
	return out
}

func deref(p *[]string) []string {
	if p == nil {
		return []string{}
	}
	return *p
}
