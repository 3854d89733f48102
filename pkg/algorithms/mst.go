package algorithms

import (
	"fmt"

	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/trace"
)

const (
	primLineInit     = 2
	primLineSkip     = 5
	primLineAccept   = 7
	primLineComplete = 9

	kruskalLineInit     = 3
	kruskalLineAccept   = 6
	kruskalLineSkip     = 7
	kruskalLineComplete = 9
)

// Prim grows a minimum spanning tree from p.Start, treating edges as
// undirected.
//
// The frontier is lazy: when a node joins the tree, its edges to nodes
// outside the tree are appended, and edges that became internal are only
// discarded when popped. On a disconnected graph the tree spans the start
// node's component.
func Prim(d graph.Data, p Params) (*trace.Execution, error) {
	ix, err := prepare(d)
	if err != nil {
		return nil, err
	}
	start, err := startNode(ix, p)
	if err != nil {
		return nil, err
	}

	b := trace.NewBuilder(NamePrim, ix)
	inTree := map[string]bool{start: true}
	nodes := []string{start}
	var frontier []*graph.Edge
	var accepted []string
	total := 0.0

	grow := func(id string) {
		for _, adj := range ix.Neighbors(id) {
			if !inTree[adj.Node] {
				frontier = append(frontier, adj.Edge)
			}
		}
	}
	snapshot := func() trace.Snapshot {
		ids := make([]string, len(frontier))
		for i, e := range frontier {
			ids[i] = e.ID
		}
		return trace.NewTree(nodes, ids, accepted)
	}

	grow(start)
	b.Emit(trace.Step{
		Description: fmt.Sprintf("Start tree at %s with %d candidate edges", ix.Label(start), len(frontier)),
		CodeLine:    primLineInit,
		Event:       trace.EventInit,
		NodeUpdates: []trace.NodeUpdate{trace.Node(start).WithState(graph.StateVisited)},
		Snapshot:    snapshot(),
	})

	for len(frontier) > 0 && len(accepted) < ix.Len()-1 {
		sortByCost(frontier)
		e := frontier[0]
		frontier = frontier[1:]

		if inTree[e.Source] && inTree[e.Target] {
			b.Emit(trace.Step{
				Description: fmt.Sprintf("Edge %s would create a cycle, skipping", edgeName(ix, e, " – ")),
				CodeLine:    primLineSkip,
				Event:       trace.EventSkip,
				Snapshot:    snapshot(),
			})
			continue
		}

		v := e.Target
		if inTree[v] {
			v = e.Source
		}
		inTree[v] = true
		nodes = append(nodes, v)
		accepted = append(accepted, e.ID)
		total += e.Cost()
		grow(v)
		b.Emit(trace.Step{
			Description: fmt.Sprintf("Add edge %s (weight %g), %s joins the tree", edgeName(ix, e, " – "), e.Cost(), ix.Label(v)),
			CodeLine:    primLineAccept,
			Event:       trace.EventAccept,
			NodeUpdates: []trace.NodeUpdate{trace.Node(v).WithState(graph.StateVisited)},
			EdgeUpdates: []trace.EdgeUpdate{trace.Edge(e.ID).Tree(true)},
			Snapshot:    snapshot(),
		})
	}

	b.Emit(trace.Step{
		Description: fmt.Sprintf("Prim complete: %d edges, total weight %g", len(accepted), total),
		CodeLine:    primLineComplete,
		Event:       trace.EventComplete,
		Snapshot:    snapshot(),
		Value:       &total,
	})
	return b.Execution(), nil
}

// Kruskal builds a minimum spanning forest by scanning edges in ascending
// weight order and joining disjoint sets, treating edges as undirected.
//
// The union-find keeps plain parent pointers: find walks to the root
// without compressing and union hangs one root under the other.
func Kruskal(d graph.Data, p Params) (*trace.Execution, error) {
	ix, err := prepare(d)
	if err != nil {
		return nil, err
	}

	b := trace.NewBuilder(NameKruskal, ix)
	ids := ix.NodeIDs()
	parent := make(map[string]string, len(ids))
	for _, id := range ids {
		parent[id] = id
	}
	var find func(string) string
	find = func(x string) string {
		if parent[x] == x {
			return x
		}
		return find(parent[x])
	}

	edges := make([]*graph.Edge, 0, len(ix.Edges()))
	for i := range ix.Edges() {
		edges = append(edges, &ix.Edges()[i])
	}
	sortByCost(edges)

	var accepted []string
	total := 0.0
	snapshot := func() trace.Snapshot {
		parents := make([]string, len(ids))
		for i, id := range ids {
			parents[i] = parent[id]
		}
		return trace.NewForest(parents, accepted)
	}

	b.Emit(trace.Step{
		Description: fmt.Sprintf("Sorted %d edges by weight; every node starts in its own set", len(edges)),
		CodeLine:    kruskalLineInit,
		Event:       trace.EventInit,
		Snapshot:    snapshot(),
	})

	for _, e := range edges {
		if len(accepted) >= ix.Len()-1 {
			break
		}
		ru, rv := find(e.Source), find(e.Target)
		if ru == rv {
			b.Emit(trace.Step{
				Description: fmt.Sprintf("Skip edge %s: %s and %s are already in the same set", edgeName(ix, e, " – "), ix.Label(e.Source), ix.Label(e.Target)),
				CodeLine:    kruskalLineSkip,
				Event:       trace.EventSkip,
				Snapshot:    snapshot(),
			})
			continue
		}

		parent[ru] = rv
		accepted = append(accepted, e.ID)
		total += e.Cost()
		b.Emit(trace.Step{
			Description: fmt.Sprintf("Accept edge %s (weight %g), merging sets", edgeName(ix, e, " – "), e.Cost()),
			CodeLine:    kruskalLineAccept,
			Event:       trace.EventAccept,
			NodeUpdates: []trace.NodeUpdate{
				trace.Node(e.Source).WithState(graph.StateVisited),
				trace.Node(e.Target).WithState(graph.StateVisited),
			},
			EdgeUpdates: []trace.EdgeUpdate{trace.Edge(e.ID).Tree(true)},
			Snapshot:    snapshot(),
		})
	}

	b.Emit(trace.Step{
		Description: fmt.Sprintf("Kruskal complete: %d edges, total weight %g", len(accepted), total),
		CodeLine:    kruskalLineComplete,
		Event:       trace.EventComplete,
		Snapshot:    snapshot(),
		Value:       &total,
	})
	return b.Execution(), nil
}
