package algorithms

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/trace"
)

const (
	dijkstraLineInit     = 2
	dijkstraLineSkip     = 6
	dijkstraLineVisit    = 7
	dijkstraLineRelax    = 10
	dijkstraLineComplete = 12
)

type pqItem struct {
	dist graph.Distance
	node string
}

// Dijkstra computes shortest distances from p.Start along directed edges.
//
// The priority queue is a slice stably sorted before every pop, so ties
// resolve in insertion order. Improved nodes are pushed again and stale
// entries are skipped when popped. Only finite distances are ever pushed,
// so the frontier running empty is what ends the search; unreached nodes
// keep distance ∞.
func Dijkstra(d graph.Data, p Params) (*trace.Execution, error) {
	ix, err := prepare(d)
	if err != nil {
		return nil, err
	}
	start, err := startNode(ix, p)
	if err != nil {
		return nil, err
	}

	b := trace.NewBuilder(NameDijkstra, ix)
	dist := infinite(ix)
	dist[start] = 0
	visited := make(map[string]bool)
	pq := []pqItem{{0, start}}

	snapshot := func() trace.Snapshot {
		pending := make([]string, len(pq))
		for i, it := range pq {
			pending[i] = it.node
		}
		return trace.NewDistances(start, dist, pending)
	}

	b.Emit(trace.Step{
		Description: fmt.Sprintf("Initialize distances: %s = 0, all others ∞", ix.Label(start)),
		CodeLine:    dijkstraLineInit,
		Event:       trace.EventInit,
		NodeUpdates: distanceUpdates(ix, dist, start),
		Snapshot:    snapshot(),
	})

	for len(pq) > 0 {
		slices.SortStableFunc(pq, func(a, b pqItem) int { return cmp.Compare(a.dist, b.dist) })
		item := pq[0]
		pq = pq[1:]
		u := item.node

		if visited[u] {
			b.Emit(trace.Step{
				Description: fmt.Sprintf("%s already visited, skipping stale entry (%s)", ix.Label(u), item.dist),
				CodeLine:    dijkstraLineSkip,
				Event:       trace.EventSkip,
				Snapshot:    snapshot(),
			})
			continue
		}
		visited[u] = true
		b.Emit(trace.Step{
			Description: fmt.Sprintf("Visiting %s (distance %s)", ix.Label(u), dist[u]),
			CodeLine:    dijkstraLineVisit,
			Event:       trace.EventVisit,
			NodeUpdates: []trace.NodeUpdate{trace.Node(u).WithState(graph.StateVisited)},
			Snapshot:    snapshot(),
		})

		for _, adj := range ix.Outgoing(u) {
			v := adj.Node
			nd := dist[u] + graph.Distance(adj.Edge.Cost())
			if nd >= dist[v] {
				continue
			}
			old := dist[v]
			dist[v] = nd
			pq = append(pq, pqItem{nd, v})

			nu := trace.Node(v).WithDistance(nd)
			if !visited[v] {
				nu = nu.WithState(graph.StateCurrent)
			}
			b.Emit(trace.Step{
				Description: fmt.Sprintf("Relax %s: distance of %s %s → %s", edgeName(ix, adj.Edge, " → "), ix.Label(v), old, nd),
				CodeLine:    dijkstraLineRelax,
				Event:       trace.EventRelax,
				NodeUpdates: []trace.NodeUpdate{nu},
				EdgeUpdates: []trace.EdgeUpdate{trace.Edge(adj.Edge.ID).Active(true)},
				Snapshot:    snapshot(),
			})
		}
	}

	b.Emit(trace.Step{
		Description: fmt.Sprintf("Dijkstra complete: %d of %d nodes reached", len(visited), ix.Len()),
		CodeLine:    dijkstraLineComplete,
		Event:       trace.EventComplete,
		Snapshot:    snapshot(),
	})
	return b.Execution(), nil
}
