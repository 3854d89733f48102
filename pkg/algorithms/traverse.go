package algorithms

import (
	"fmt"

	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/trace"
)

// Listing lines shared by bfs and dfs.
const (
	traverseLineInit     = 2
	traverseLineLoop     = 3
	traverseLineSkip     = 5
	traverseLineVisit    = 6
	traverseLineAdd      = 9
	traverseLineComplete = 10
)

// BFS traverses the graph breadth-first from p.Start, treating edges as
// undirected.
func BFS(d graph.Data, p Params) (*trace.Execution, error) {
	return traverse(NameBFS, d, p, trace.FIFO)
}

// DFS traverses the graph depth-first from p.Start with an explicit stack,
// treating edges as undirected.
func DFS(d graph.Data, p Params) (*trace.Execution, error) {
	return traverse(NameDFS, d, p, trace.LIFO)
}

// traversal holds the state of one bfs or dfs run.
type traversal struct {
	ix       *graph.Index
	b        *trace.Builder
	order    trace.FrontierOrder
	frontier []string
	added    map[string]bool
	visited  map[string]bool
	seen     []string
}

func traverse(name string, d graph.Data, p Params, order trace.FrontierOrder) (*trace.Execution, error) {
	ix, err := prepare(d)
	if err != nil {
		return nil, err
	}
	start, err := startNode(ix, p)
	if err != nil {
		return nil, err
	}

	t := &traversal{
		ix:      ix,
		b:       trace.NewBuilder(name, ix),
		order:   order,
		added:   map[string]bool{start: true},
		visited: make(map[string]bool),
	}
	t.frontier = []string{start}

	t.b.Emit(trace.Step{
		Description: fmt.Sprintf("Starting %s from %s", t.title(), ix.Label(start)),
		CodeLine:    traverseLineInit,
		Event:       trace.EventInit,
		NodeUpdates: []trace.NodeUpdate{trace.Node(start).WithState(graph.StateCurrent)},
		Snapshot:    t.snapshot(),
	})

	for len(t.frontier) > 0 {
		t.step(t.pop())
		t.b.Emit(trace.Step{
			Description: fmt.Sprintf("%s: [%s]", t.structure(), labels(ix, t.frontier, ", ")),
			CodeLine:    traverseLineLoop,
			Event:       trace.EventSnapshot,
			Snapshot:    t.snapshot(),
		})
	}

	t.b.Emit(trace.Step{
		Description: fmt.Sprintf("%s complete: visited %d of %d nodes", t.title(), len(t.seen), ix.Len()),
		CodeLine:    traverseLineComplete,
		Event:       trace.EventComplete,
		Snapshot:    t.snapshot(),
	})
	return t.b.Execution(), nil
}

func (t *traversal) step(node string) {
	if t.visited[node] {
		t.b.Emit(trace.Step{
			Description: fmt.Sprintf("%s already visited, skipping", t.ix.Label(node)),
			CodeLine:    traverseLineSkip,
			Event:       trace.EventSkip,
			Snapshot:    t.snapshot(),
		})
		return
	}

	t.visited[node] = true
	t.seen = append(t.seen, node)
	t.b.Emit(trace.Step{
		Description: fmt.Sprintf("Visiting %s", t.ix.Label(node)),
		CodeLine:    traverseLineVisit,
		Event:       trace.EventVisit,
		NodeUpdates: []trace.NodeUpdate{trace.Node(node).WithState(graph.StateVisited)},
		Snapshot:    t.snapshot(),
	})

	for _, adj := range t.ix.Neighbors(node) {
		if t.visited[adj.Node] || t.added[adj.Node] {
			continue
		}
		t.added[adj.Node] = true
		t.frontier = append(t.frontier, adj.Node)

		verb, event := "Enqueueing", trace.EventEnqueue
		if t.order == trace.LIFO {
			verb, event = "Pushing", trace.EventPush
		}
		t.b.Emit(trace.Step{
			Description: fmt.Sprintf("%s %s (neighbor of %s)", verb, t.ix.Label(adj.Node), t.ix.Label(node)),
			CodeLine:    traverseLineAdd,
			Event:       event,
			NodeUpdates: []trace.NodeUpdate{trace.Node(adj.Node).WithState(graph.StateCurrent)},
			EdgeUpdates: []trace.EdgeUpdate{trace.Edge(adj.Edge.ID).Active(true)},
			Snapshot:    t.snapshot(),
		})
	}
}

func (t *traversal) pop() string {
	var node string
	if t.order == trace.LIFO {
		node = t.frontier[len(t.frontier)-1]
		t.frontier = t.frontier[:len(t.frontier)-1]
	} else {
		node = t.frontier[0]
		t.frontier = t.frontier[1:]
	}
	return node
}

func (t *traversal) snapshot() trace.Snapshot {
	return trace.NewFrontier(t.order, t.frontier, t.seen)
}

func (t *traversal) title() string {
	if t.order == trace.LIFO {
		return "DFS"
	}
	return "BFS"
}

func (t *traversal) structure() string {
	if t.order == trace.LIFO {
		return "Stack"
	}
	return "Queue"
}
