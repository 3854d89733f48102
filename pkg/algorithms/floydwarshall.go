package algorithms

import (
	"fmt"

	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/trace"
)

const (
	floydLineInit     = 3
	floydLineLoop     = 4
	floydLineRelax    = 8
	floydLineComplete = 9
)

// FloydWarshall computes the shortest distance between every pair of
// nodes. Edges are read in both directions unless p.Directed is set.
// Parallel edges keep the lowest weight.
func FloydWarshall(d graph.Data, p Params) (*trace.Execution, error) {
	ix, err := prepare(d)
	if err != nil {
		return nil, err
	}

	b := trace.NewBuilder(NameFloydWarshall, ix)
	ids := ix.NodeIDs()
	dist := make(trace.Matrix, len(ids))
	for _, i := range ids {
		row := make(map[string]graph.Distance, len(ids))
		for _, j := range ids {
			row[j] = graph.Inf
		}
		row[i] = 0
		dist[i] = row
	}
	set := func(u, v string, w graph.Distance) {
		if w < dist[u][v] {
			dist[u][v] = w
		}
	}
	for _, e := range ix.Edges() {
		w := graph.Distance(e.Cost())
		set(e.Source, e.Target, w)
		if !p.Directed {
			set(e.Target, e.Source, w)
		}
	}

	mode := "undirected"
	if p.Directed {
		mode = "directed"
	}
	b.Emit(trace.Step{
		Description: fmt.Sprintf("Initialize %d×%d distance matrix from %d %s edges", len(ids), len(ids), len(ix.Edges()), mode),
		CodeLine:    floydLineInit,
		Event:       trace.EventInit,
		Snapshot:    trace.NewAllPairs(dist),
	})

	for _, k := range ids {
		improved := 0
		for _, i := range ids {
			if dist[i][k].IsInf() {
				continue
			}
			for _, j := range ids {
				via := dist[i][k] + dist[k][j]
				if via >= dist[i][j] {
					continue
				}
				old := dist[i][j]
				dist[i][j] = via
				improved++
				b.Emit(trace.Step{
					Description: fmt.Sprintf("dist[%s][%s] improved via %s: %s → %s", ix.Label(i), ix.Label(j), ix.Label(k), old, via),
					CodeLine:    floydLineRelax,
					Event:       trace.EventRelax,
					NodeUpdates: []trace.NodeUpdate{trace.Node(k).WithState(graph.StateCurrent)},
				})
			}
		}
		b.Emit(trace.Step{
			Description: fmt.Sprintf("Finished intermediate node %s (%d improvements)", ix.Label(k), improved),
			CodeLine:    floydLineLoop,
			Event:       trace.EventSnapshot,
			NodeUpdates: []trace.NodeUpdate{trace.Node(k).WithState(graph.StateVisited)},
			Snapshot:    trace.NewAllPairs(dist),
		})
	}

	b.Emit(trace.Step{
		Description: "Floyd-Warshall complete: all-pairs shortest distances computed",
		CodeLine:    floydLineComplete,
		Event:       trace.EventComplete,
		Snapshot:    trace.NewAllPairs(dist),
	})
	return b.Execution(), nil
}
