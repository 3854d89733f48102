package algorithms

import (
	"fmt"

	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/trace"
)

const (
	bellmanFordLineInit     = 2
	bellmanFordLineExamine  = 5
	bellmanFordLineRelax    = 6
	bellmanFordLineCycle    = 10
	bellmanFordLineComplete = 11
)

// BellmanFord computes shortest distances from p.Start along directed edges,
// allowing negative weights.
//
// It makes at most |V|-1 passes over the edge list, stopping after a pass
// without updates. A final scan looks for an edge that still relaxes; if one
// does, the trace ends with a negative-cycle step and no complete step.
func BellmanFord(d graph.Data, p Params) (*trace.Execution, error) {
	ix, err := prepare(d)
	if err != nil {
		return nil, err
	}
	start, err := startNode(ix, p)
	if err != nil {
		return nil, err
	}

	b := trace.NewBuilder(NameBellmanFord, ix)
	dist := infinite(ix)
	dist[start] = 0
	edges := ix.Edges()

	snapshot := func() trace.Snapshot {
		return trace.NewDistances(start, dist, nil)
	}

	b.Emit(trace.Step{
		Description: fmt.Sprintf("Initialize distances: %s = 0, all others ∞", ix.Label(start)),
		CodeLine:    bellmanFordLineInit,
		Event:       trace.EventInit,
		NodeUpdates: distanceUpdates(ix, dist, start),
		Snapshot:    snapshot(),
	})

	// active is the edge highlighted by the previous examine step.
	active := ""
	highlight := func(id string) []trace.EdgeUpdate {
		var ups []trace.EdgeUpdate
		if active != "" && active != id {
			ups = append(ups, trace.Edge(active).Active(false))
		}
		if id != "" {
			ups = append(ups, trace.Edge(id).Active(true))
		}
		active = id
		return ups
	}

	for pass := 1; pass < ix.Len(); pass++ {
		changed := false
		for i := range edges {
			e := &edges[i]
			b.Emit(trace.Step{
				Description: fmt.Sprintf("Pass %d: checking edge %s (weight %g)", pass, edgeName(ix, e, " → "), e.Cost()),
				CodeLine:    bellmanFordLineExamine,
				Event:       trace.EventExamine,
				EdgeUpdates: highlight(e.ID),
			})

			nd := dist[e.Source] + graph.Distance(e.Cost())
			if dist[e.Source].IsInf() || nd >= dist[e.Target] {
				continue
			}
			old := dist[e.Target]
			dist[e.Target] = nd
			changed = true
			b.Emit(trace.Step{
				Description: fmt.Sprintf("Relax %s: distance of %s %s → %s", edgeName(ix, e, " → "), ix.Label(e.Target), old, nd),
				CodeLine:    bellmanFordLineRelax,
				Event:       trace.EventRelax,
				NodeUpdates: []trace.NodeUpdate{trace.Node(e.Target).WithDistance(nd).WithState(graph.StateCurrent)},
				Snapshot:    snapshot(),
			})
		}
		if !changed {
			break
		}
	}

	for i := range edges {
		e := &edges[i]
		if dist[e.Source].IsInf() || dist[e.Source]+graph.Distance(e.Cost()) >= dist[e.Target] {
			continue
		}
		ups := highlight("")
		ups = append(ups, trace.Edge(e.ID).Error(true))
		b.Emit(trace.Step{
			Description: fmt.Sprintf("Graph contains a negative weight cycle: edge %s can still be relaxed", edgeName(ix, e, " → ")),
			CodeLine:    bellmanFordLineCycle,
			Event:       trace.EventNegativeCycle,
			NodeUpdates: []trace.NodeUpdate{trace.Node(e.Target).WithState(graph.StateError)},
			EdgeUpdates: ups,
			Snapshot:    snapshot(),
		})
		return b.Execution(), nil
	}

	var done []trace.NodeUpdate
	reached := 0
	for _, id := range ix.NodeIDs() {
		if !dist[id].IsInf() {
			done = append(done, trace.Node(id).WithState(graph.StateVisited))
			reached++
		}
	}
	b.Emit(trace.Step{
		Description: fmt.Sprintf("Bellman-Ford complete: %d of %d nodes reachable, no negative cycles", reached, ix.Len()),
		CodeLine:    bellmanFordLineComplete,
		Event:       trace.EventComplete,
		NodeUpdates: done,
		EdgeUpdates: highlight(""),
		Snapshot:    snapshot(),
	})
	return b.Execution(), nil
}
