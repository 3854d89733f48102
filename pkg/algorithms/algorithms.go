// Package algorithms implements the instrumented graph algorithms.
//
// Every algorithm is a pure function from a graph and [Params] to a
// [trace.Execution]. The input is validated and cloned before it is read,
// and every state change the algorithm would make is recorded as a step
// instead of being applied.
//
// Edge direction is a per-algorithm property:
//
//	bfs, dfs, prim, kruskal          undirected (graph.Index.Neighbors)
//	floyd-warshall                   undirected unless Params.Directed
//	dijkstra, bellman-ford, astar    directed (graph.Index.Outgoing)
//	ford-fulkerson                   directed capacities
//
// Use [Lookup] to resolve an algorithm by name, or [Run] to resolve and run
// in one call.
package algorithms

import (
	"cmp"
	"slices"
	"strings"

	errs "github.com/matzehuels/algotrace/pkg/errors"
	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/trace"
)

// Params selects the endpoints of a run.
type Params struct {
	// Start is the source node. Defaults to the first node in input order.
	// Ignored by kruskal and floyd-warshall.
	Start string `json:"start,omitempty" yaml:"start,omitempty"`

	// End is the goal (astar, required) or sink (ford-fulkerson, defaults to
	// the last node in input order).
	End string `json:"end,omitempty" yaml:"end,omitempty"`

	// Directed makes floyd-warshall respect edge orientation.
	Directed bool `json:"directed,omitempty" yaml:"directed,omitempty"`
}

// Func is the signature shared by all algorithms.
type Func func(d graph.Data, p Params) (*trace.Execution, error)

// Info describes a registered algorithm.
type Info struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Directed   bool   `json:"directed"`
	NeedsStart bool   `json:"needsStart"`
	NeedsEnd   bool   `json:"needsEnd"`
	Summary    string `json:"summary"`
}

type entry struct {
	info Info
	run  Func
}

// Algorithm names.
const (
	NameBFS           = "bfs"
	NameDFS           = "dfs"
	NameDijkstra      = "dijkstra"
	NameBellmanFord   = "bellman-ford"
	NameAStar         = "astar"
	NamePrim          = "prim"
	NameKruskal       = "kruskal"
	NameFloydWarshall = "floyd-warshall"
	NameFordFulkerson = "ford-fulkerson"
)

var registry = map[string]entry{
	NameBFS: {Info{
		Title: "Breadth-First Search", NeedsStart: true,
		Summary: "Visits nodes level by level from the start node.",
	}, BFS},
	NameDFS: {Info{
		Title: "Depth-First Search", NeedsStart: true,
		Summary: "Follows each branch as deep as possible before backtracking.",
	}, DFS},
	NameDijkstra: {Info{
		Title: "Dijkstra's Algorithm", Directed: true, NeedsStart: true,
		Summary: "Shortest paths from the start node for non-negative weights.",
	}, Dijkstra},
	NameBellmanFord: {Info{
		Title: "Bellman-Ford", Directed: true, NeedsStart: true,
		Summary: "Shortest paths with negative weights and cycle detection.",
	}, BellmanFord},
	NameAStar: {Info{
		Title: "A* Search", Directed: true, NeedsStart: true, NeedsEnd: true,
		Summary: "Goal-directed shortest path using a Euclidean heuristic.",
	}, AStar},
	NamePrim: {Info{
		Title: "Prim's MST", NeedsStart: true,
		Summary: "Grows a minimum spanning tree from the start node.",
	}, Prim},
	NameKruskal: {Info{
		Title:   "Kruskal's MST",
		Summary: "Builds a minimum spanning forest from the cheapest edges.",
	}, Kruskal},
	NameFloydWarshall: {Info{
		Title:   "Floyd-Warshall",
		Summary: "Shortest distances between every pair of nodes.",
	}, FloydWarshall},
	NameFordFulkerson: {Info{
		Title: "Ford-Fulkerson (Edmonds-Karp)", Directed: true, NeedsStart: true, NeedsEnd: true,
		Summary: "Maximum flow from source to sink along shortest augmenting paths.",
	}, FordFulkerson},
}

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Func, error) {
	e, ok := registry[normalize(name)]
	if !ok {
		return nil, errs.NotImplemented(name)
	}
	return e.run, nil
}

// Describe returns the metadata of the algorithm registered under name.
func Describe(name string) (Info, error) {
	key := normalize(name)
	e, ok := registry[key]
	if !ok {
		return Info{}, errs.NotImplemented(name)
	}
	info := e.info
	info.Name = key
	return info, nil
}

// Names returns the registered algorithm names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns the metadata of every algorithm, sorted by name.
func All() []Info {
	out := make([]Info, 0, len(registry))
	for _, name := range Names() {
		info, _ := Describe(name)
		out = append(out, info)
	}
	return out
}

// Run resolves name and runs it.
func Run(name string, d graph.Data, p Params) (*trace.Execution, error) {
	fn, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return fn(d, p)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// prepare validates d and indexes it.
func prepare(d graph.Data) (*graph.Index, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return graph.NewIndex(d), nil
}

// startNode resolves p.Start, defaulting to the first node.
func startNode(ix *graph.Index, p Params) (string, error) {
	if p.Start == "" {
		if ix.Len() == 0 {
			return "", errs.New(errs.ErrCodeInvalidInput, "graph has no nodes")
		}
		return ix.Nodes()[0].ID, nil
	}
	if !ix.Has(p.Start) {
		return "", errs.New(errs.ErrCodeNodeNotFound, "start node %q not found", p.Start)
	}
	return p.Start, nil
}

func endNode(ix *graph.Index, id string) error {
	if !ix.Has(id) {
		return errs.New(errs.ErrCodeNodeNotFound, "end node %q not found", id)
	}
	return nil
}

// infinite returns a distance table with every node at infinity.
func infinite(ix *graph.Index) map[string]graph.Distance {
	dist := make(map[string]graph.Distance, ix.Len())
	for _, id := range ix.NodeIDs() {
		dist[id] = graph.Inf
	}
	return dist
}

// distanceUpdates sets every node's distance and marks start current.
func distanceUpdates(ix *graph.Index, dist map[string]graph.Distance, start string) []trace.NodeUpdate {
	ups := make([]trace.NodeUpdate, 0, ix.Len())
	for _, id := range ix.NodeIDs() {
		u := trace.Node(id).WithDistance(dist[id])
		if id == start {
			u = u.WithState(graph.StateCurrent)
		}
		ups = append(ups, u)
	}
	return ups
}

// sortByCost stably orders edges by ascending cost.
func sortByCost(edges []*graph.Edge) {
	slices.SortStableFunc(edges, func(a, b *graph.Edge) int {
		return cmp.Compare(a.Cost(), b.Cost())
	})
}

// labels joins the labels of ids with sep.
func labels(ix *graph.Index, ids []string, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = ix.Label(id)
	}
	return strings.Join(parts, sep)
}

func edgeName(ix *graph.Index, e *graph.Edge, sep string) string {
	return ix.Label(e.Source) + sep + ix.Label(e.Target)
}
