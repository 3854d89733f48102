package algorithms

import (
	"fmt"
	"math"

	errs "github.com/matzehuels/algotrace/pkg/errors"
	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/trace"
)

const (
	fordLineInit     = 2
	fordLineAugment  = 8
	fordLineComplete = 9
)

// epsilon is the smallest residual capacity treated as usable. NaN never is.
const epsilon = 1e-9

// FordFulkerson computes the maximum flow from p.Start to p.End using
// breadth-first augmenting paths (Edmonds-Karp). Edge weights are
// capacities; parallel edges add up. The sink defaults to the last node.
//
// The complete step marks the source side of the minimum cut as visited.
func FordFulkerson(d graph.Data, p Params) (*trace.Execution, error) {
	ix, err := prepare(d)
	if err != nil {
		return nil, err
	}
	source, err := startNode(ix, p)
	if err != nil {
		return nil, err
	}
	ids := ix.NodeIDs()
	sink := p.End
	if sink == "" {
		sink = ids[len(ids)-1]
	} else if err := endNode(ix, sink); err != nil {
		return nil, err
	}
	if source == sink {
		return nil, errs.New(errs.ErrCodeInvalidInput, "source and sink must differ, both are %q", source)
	}

	n := len(ids)
	residual := make([][]float64, n)
	for i := range residual {
		residual[i] = make([]float64, n)
	}
	for _, e := range ix.Edges() {
		residual[ix.Position(e.Source)][ix.Position(e.Target)] += e.Cost()
	}
	for i, row := range residual {
		for j, c := range row {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, errs.New(errs.ErrCodeInvalidGraph,
					"capacity from %s to %s is not finite", ix.Label(ids[i]), ix.Label(ids[j]))
			}
		}
	}
	matrix := func() trace.Matrix {
		m := make(trace.Matrix, n)
		for i, u := range ids {
			row := make(map[string]graph.Distance, n)
			for j, v := range ids {
				row[v] = graph.Distance(residual[i][j])
			}
			m[u] = row
		}
		return m
	}

	b := trace.NewBuilder(NameFordFulkerson, ix)
	b.Emit(trace.Step{
		Description: fmt.Sprintf("Initialize residual capacities; source %s, sink %s", ix.Label(source), ix.Label(sink)),
		CodeLine:    fordLineInit,
		Event:       trace.EventInit,
		NodeUpdates: []trace.NodeUpdate{
			trace.Node(source).WithState(graph.StateCurrent),
			trace.Node(sink).WithState(graph.StateCurrent),
		},
		Snapshot: trace.NewFlow(nil, matrix()),
	})

	s, t := ix.Position(source), ix.Position(sink)
	flow := 0.0
	var prevNodes, prevEdges []string
	var reached []bool

	for {
		var parent []int
		parent, reached = augmentingPath(residual, s, t)
		if parent == nil {
			break
		}

		var path []int
		for v := t; v != -1; v = parent[v] {
			path = append([]int{v}, path...)
		}
		bottleneck := residual[path[0]][path[1]]
		for i := 1; i < len(path)-1; i++ {
			bottleneck = min(bottleneck, residual[path[i]][path[i+1]])
		}
		for i := 0; i < len(path)-1; i++ {
			u, v := path[i], path[i+1]
			residual[u][v] -= bottleneck
			residual[v][u] += bottleneck
		}
		flow += bottleneck

		pathIDs := make([]string, len(path))
		for i, pos := range path {
			pathIDs[i] = ids[pos]
		}
		var edgeIDs []string
		for i := 0; i < len(pathIDs)-1; i++ {
			if e, ok := ix.EdgeBetween(pathIDs[i], pathIDs[i+1]); ok {
				edgeIDs = append(edgeIDs, e.ID)
			} else if e, ok := ix.EdgeBetween(pathIDs[i+1], pathIDs[i]); ok {
				edgeIDs = append(edgeIDs, e.ID)
			}
		}

		nodeUps, edgeUps := remark(prevNodes, prevEdges, pathIDs, edgeIDs)
		prevNodes, prevEdges = pathIDs, edgeIDs
		b.Emit(trace.Step{
			Description: fmt.Sprintf("Augment along %s by %g (total flow %g)", labels(ix, pathIDs, " → "), bottleneck, flow),
			CodeLine:    fordLineAugment,
			Event:       trace.EventAugment,
			NodeUpdates: nodeUps,
			EdgeUpdates: edgeUps,
			Snapshot:    trace.NewFlow(pathIDs, matrix()),
		})
	}

	nodeUps, edgeUps := remark(prevNodes, prevEdges, nil, nil)
	cut := make(map[string]bool)
	for i, ok := range reached {
		if ok {
			cut[ids[i]] = true
		}
	}
	final := make([]trace.NodeUpdate, 0, len(nodeUps)+len(cut))
	for _, u := range nodeUps {
		if !cut[u.ID] {
			final = append(final, u)
		}
	}
	for _, id := range ids {
		if cut[id] {
			final = append(final, trace.Node(id).WithState(graph.StateVisited))
		}
	}
	b.Emit(trace.Step{
		Description: fmt.Sprintf("Maximum flow from %s to %s: %g", ix.Label(source), ix.Label(sink), flow),
		CodeLine:    fordLineComplete,
		Event:       trace.EventComplete,
		NodeUpdates: final,
		EdgeUpdates: edgeUps,
		Snapshot:    trace.NewFlow(nil, matrix()),
		Value:       &flow,
	})
	return b.Execution(), nil
}

// augmentingPath runs a breadth-first search over positive residual
// capacities, scanning nodes in input order. It returns the parent of every
// node on the search tree (nil if t was not reached) and which nodes were
// reached.
func augmentingPath(residual [][]float64, s, t int) (parent []int, reached []bool) {
	n := len(residual)
	parent = make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	reached = make([]bool, n)
	reached[s] = true
	queue := []int{s}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := 0; v < n; v++ {
			if reached[v] || !(residual[u][v] > epsilon) {
				continue
			}
			reached[v] = true
			parent[v] = u
			if v == t {
				return parent, reached
			}
			queue = append(queue, v)
		}
	}
	return nil, reached
}

// remark moves the path highlight from the previous augmenting path to the
// next one, resetting only what the new path does not cover.
func remark(prevNodes, prevEdges, nodes, edges []string) ([]trace.NodeUpdate, []trace.EdgeUpdate) {
	onPath := make(map[string]bool, len(nodes))
	for _, id := range nodes {
		onPath[id] = true
	}
	onEdge := make(map[string]bool, len(edges))
	for _, id := range edges {
		onEdge[id] = true
	}

	var nodeUps []trace.NodeUpdate
	for _, id := range prevNodes {
		if !onPath[id] {
			nodeUps = append(nodeUps, trace.Node(id).WithState(graph.StateDefault))
		}
	}
	for _, id := range nodes {
		nodeUps = append(nodeUps, trace.Node(id).WithState(graph.StatePath))
	}

	var edgeUps []trace.EdgeUpdate
	for _, id := range prevEdges {
		if !onEdge[id] {
			edgeUps = append(edgeUps, trace.Edge(id).Active(false))
		}
	}
	for _, id := range edges {
		edgeUps = append(edgeUps, trace.Edge(id).Active(true))
	}
	return nodeUps, edgeUps
}
