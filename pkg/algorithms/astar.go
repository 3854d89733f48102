package algorithms

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	errs "github.com/matzehuels/algotrace/pkg/errors"
	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/trace"
)

const (
	astarLineInit   = 3
	astarLinePath   = 7
	astarLineExpand = 8
	astarLineRelax  = 14
	astarLineNoPath = 15
)

// AStar finds a shortest path from p.Start to p.End along directed edges.
//
// The heuristic is the Euclidean distance between node coordinates, or 0
// when either node has none. Expanded nodes are closed and never reopened.
func AStar(d graph.Data, p Params) (*trace.Execution, error) {
	ix, err := prepare(d)
	if err != nil {
		return nil, err
	}
	start, err := startNode(ix, p)
	if err != nil {
		return nil, err
	}
	if p.End == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "astar requires an end node")
	}
	goal := p.End
	if err := endNode(ix, goal); err != nil {
		return nil, err
	}

	h := func(id string) graph.Distance {
		x1, y1, ok1 := ix.Coordinates(id)
		x2, y2, ok2 := ix.Coordinates(goal)
		if !ok1 || !ok2 {
			return 0
		}
		return graph.Distance(math.Hypot(x1-x2, y1-y2))
	}

	b := trace.NewBuilder(NameAStar, ix)
	g := infinite(ix)
	f := infinite(ix)
	g[start] = 0
	f[start] = h(start)
	open := []string{start}
	inOpen := map[string]bool{start: true}
	closed := make(map[string]bool)
	cameFrom := make(map[string]*graph.Edge)

	b.Emit(trace.Step{
		Description: fmt.Sprintf("Start at %s, goal %s (h = %s)", ix.Label(start), ix.Label(goal), f[start]),
		CodeLine:    astarLineInit,
		Event:       trace.EventInit,
		NodeUpdates: []trace.NodeUpdate{trace.Node(start).WithState(graph.StateCurrent).WithDistance(0)},
		Snapshot:    trace.NewScores(g, f, open, nil),
	})

	for len(open) > 0 {
		slices.SortStableFunc(open, func(a, b string) int { return cmp.Compare(f[a], f[b]) })
		current := open[0]

		if current == goal {
			path, edges := reconstruct(cameFrom, goal)
			nodes := make([]trace.NodeUpdate, len(path))
			for i, id := range path {
				nodes[i] = trace.Node(id).WithState(graph.StatePath)
			}
			edgeUps := make([]trace.EdgeUpdate, len(edges))
			for i, id := range edges {
				edgeUps[i] = trace.Edge(id).Active(true)
			}
			cost := float64(g[goal])
			b.Emit(trace.Step{
				Description: fmt.Sprintf("Path found: %s (cost %s)", labels(ix, path, " → "), g[goal]),
				CodeLine:    astarLinePath,
				Event:       trace.EventPathFound,
				NodeUpdates: nodes,
				EdgeUpdates: edgeUps,
				Snapshot:    trace.NewScores(g, f, open, path),
				Value:       &cost,
			})
			return b.Execution(), nil
		}

		open = open[1:]
		delete(inOpen, current)
		closed[current] = true
		b.Emit(trace.Step{
			Description: fmt.Sprintf("Expanding %s (g = %s, f = %s)", ix.Label(current), g[current], f[current]),
			CodeLine:    astarLineExpand,
			Event:       trace.EventVisit,
			NodeUpdates: []trace.NodeUpdate{trace.Node(current).WithState(graph.StateVisited)},
			Snapshot:    trace.NewScores(g, f, open, nil),
		})

		for _, adj := range ix.Outgoing(current) {
			n := adj.Node
			if closed[n] {
				continue
			}
			tentative := g[current] + graph.Distance(adj.Edge.Cost())
			if tentative >= g[n] {
				continue
			}
			cameFrom[n] = adj.Edge
			g[n] = tentative
			f[n] = tentative + h(n)
			if !inOpen[n] {
				inOpen[n] = true
				open = append(open, n)
			}
			b.Emit(trace.Step{
				Description: fmt.Sprintf("Update %s via %s: g = %s, f = %s", ix.Label(n), ix.Label(current), g[n], f[n]),
				CodeLine:    astarLineRelax,
				Event:       trace.EventRelax,
				NodeUpdates: []trace.NodeUpdate{trace.Node(n).WithState(graph.StateCurrent).WithDistance(tentative)},
				EdgeUpdates: []trace.EdgeUpdate{trace.Edge(adj.Edge.ID).Active(true)},
				Snapshot:    trace.NewScores(g, f, open, nil),
			})
		}
	}

	b.Emit(trace.Step{
		Description: fmt.Sprintf("No path from %s to %s", ix.Label(start), ix.Label(goal)),
		CodeLine:    astarLineNoPath,
		Event:       trace.EventNoPath,
		Snapshot:    trace.NewScores(g, f, open, nil),
	})
	return b.Execution(), nil
}

// reconstruct walks cameFrom back from goal and returns the node path and
// the ids of the edges along it, both in travel order.
func reconstruct(cameFrom map[string]*graph.Edge, goal string) (nodes, edges []string) {
	nodes = []string{goal}
	for at := goal; cameFrom[at] != nil; {
		e := cameFrom[at]
		edges = append(edges, e.ID)
		at = e.Source
		nodes = append(nodes, at)
	}
	slices.Reverse(nodes)
	slices.Reverse(edges)
	return nodes, edges
}
