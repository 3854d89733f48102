package trace

import (
	"github.com/matzehuels/algotrace/pkg/graph"
)

// Apply merges the updates of s into d in place. Entries naming unknown
// ids are ignored.
func Apply(d *graph.Data, s Step) {
	nodes, edges := positions(*d)
	for _, u := range s.NodeUpdates {
		if i, ok := nodes[u.ID]; ok {
			mergeNode(&d.Nodes[i], u)
		}
	}
	for _, u := range s.EdgeUpdates {
		if i, ok := edges[u.ID]; ok {
			mergeEdge(&d.Edges[i], u)
		}
	}
}

// Replay applies every step of steps, in order, to a copy of d and returns
// the resulting graph.
func Replay(d graph.Data, steps []Step) graph.Data {
	out := d.Clone()
	for _, s := range steps {
		Apply(&out, s)
	}
	return out
}

func mergeNode(n *graph.Node, u NodeUpdate) {
	if u.State != nil {
		n.State = *u.State
	}
	if u.Distance != nil {
		d := *u.Distance
		n.Distance = &d
	}
}

func mergeEdge(e *graph.Edge, u EdgeUpdate) {
	if u.IsActive != nil {
		e.IsActive = *u.IsActive
	}
	if u.InTree != nil {
		e.InTree = *u.InTree
	}
	if u.IsError != nil {
		e.IsError = *u.IsError
	}
}

func positions(d graph.Data) (nodes, edges map[string]int) {
	nodes = make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		nodes[n.ID] = i
	}
	edges = make(map[string]int, len(d.Edges))
	for i, e := range d.Edges {
		edges[e.ID] = i
	}
	return nodes, edges
}

// undo holds the values a step overwrote.
type undo struct {
	nodes map[int]graph.Node
	edges map[int]graph.Edge
}

// Player steps through an execution over its own copy of the graph.
// Position 0 is the original graph; position n has steps 0..n-1 applied.
// A Player is not safe for concurrent use, but many players may share the
// same Execution.
type Player struct {
	exec   *Execution
	graph  graph.Data
	nodes  map[string]int
	edges  map[string]int
	undo   []undo
	cursor int
}

// NewPlayer positions a player before the first step of exec.
func NewPlayer(d graph.Data, exec *Execution) *Player {
	g := d.Clone()
	nodes, edges := positions(g)
	return &Player{exec: exec, graph: g, nodes: nodes, edges: edges}
}

// Len returns the number of steps in the execution.
func (p *Player) Len() int { return len(p.exec.Steps) }

// Position returns the number of applied steps.
func (p *Player) Position() int { return p.cursor }

// Done reports whether every step has been applied.
func (p *Player) Done() bool { return p.cursor == len(p.exec.Steps) }

// Current returns the most recently applied step.
func (p *Player) Current() (Step, bool) {
	if p.cursor == 0 {
		return Step{}, false
	}
	return p.exec.Steps[p.cursor-1], true
}

// Graph returns a copy of the graph at the current position.
func (p *Player) Graph() graph.Data { return p.graph.Clone() }

// Next applies the next step. It returns false at the end.
func (p *Player) Next() bool {
	if p.Done() {
		return false
	}
	s := p.exec.Steps[p.cursor]
	u := undo{nodes: make(map[int]graph.Node), edges: make(map[int]graph.Edge)}
	for _, nu := range s.NodeUpdates {
		if i, ok := p.nodes[nu.ID]; ok {
			if _, saved := u.nodes[i]; !saved {
				u.nodes[i] = p.graph.Nodes[i]
			}
			mergeNode(&p.graph.Nodes[i], nu)
		}
	}
	for _, eu := range s.EdgeUpdates {
		if i, ok := p.edges[eu.ID]; ok {
			if _, saved := u.edges[i]; !saved {
				u.edges[i] = p.graph.Edges[i]
			}
			mergeEdge(&p.graph.Edges[i], eu)
		}
	}
	p.undo = append(p.undo, u)
	p.cursor++
	return true
}

// Prev un-applies the last applied step. It returns false at position 0.
func (p *Player) Prev() bool {
	if p.cursor == 0 {
		return false
	}
	u := p.undo[len(p.undo)-1]
	p.undo = p.undo[:len(p.undo)-1]
	for i, n := range u.nodes {
		p.graph.Nodes[i] = n
	}
	for i, e := range u.edges {
		p.graph.Edges[i] = e
	}
	p.cursor--
	return true
}

// Seek moves to position n, clamped to [0, Len()].
func (p *Player) Seek(n int) {
	n = max(0, min(n, p.Len()))
	for p.cursor < n && p.Next() {
	}
	for p.cursor > n && p.Prev() {
	}
}
