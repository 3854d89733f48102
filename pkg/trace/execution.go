package trace

import (
	"github.com/matzehuels/algotrace/pkg/graph"
)

// Execution is the finished trace of one algorithm run.
//
// The engine always returns CurrentStep 0 and IsComplete false; advancing
// is the player's job. An Execution is never modified after it is returned.
type Execution struct {
	ID           string     `json:"id,omitempty"`
	Algorithm    string     `json:"algorithm"`
	Steps        []Step     `json:"steps"`
	CurrentStep  int        `json:"currentStep"`
	IsComplete   bool       `json:"isComplete"`
	OperationLog []LogEntry `json:"operationLog,omitempty"`
}

// LogEntry is the presentational projection of one step: the same auxiliary
// slots with node ids replaced by labels, plus every node visited so far.
type LogEntry struct {
	Step        int    `json:"step"`
	Event       Event  `json:"event,omitempty"`
	Description string `json:"description"`
	Slots
	Visited []string `json:"visited"`
}

// Last returns the final step.
func (e *Execution) Last() (Step, bool) {
	if len(e.Steps) == 0 {
		return Step{}, false
	}
	return e.Steps[len(e.Steps)-1], true
}

// Events returns the steps tagged with ev, in order.
func (e *Execution) Events(ev Event) []Step {
	var out []Step
	for _, s := range e.Steps {
		if s.Event == ev {
			out = append(out, s)
		}
	}
	return out
}

// HasEvent reports whether any step is tagged with ev.
func (e *Execution) HasEvent(ev Event) bool {
	for _, s := range e.Steps {
		if s.Event == ev {
			return true
		}
	}
	return false
}

// Builder accumulates the steps of a single run. It is owned by that run
// and must not be shared between goroutines.
type Builder struct {
	algorithm string
	ix        *graph.Index
	steps     []Step
	log       []LogEntry
	visited   []string
	seen      map[string]bool
}

// NewBuilder starts a trace for algorithm over the graph indexed by ix.
// The index is used to resolve labels for the operation log.
func NewBuilder(algorithm string, ix *graph.Index) *Builder {
	return &Builder{
		algorithm: algorithm,
		ix:        ix,
		seen:      make(map[string]bool),
	}
}

// Len returns the number of steps emitted so far.
func (b *Builder) Len() int { return len(b.steps) }

// Emit appends s, assigning its sequence number, and records its log entry.
func (b *Builder) Emit(s Step) {
	s.ID = len(b.steps)
	if s.NodeUpdates == nil {
		s.NodeUpdates = []NodeUpdate{}
	}
	if s.EdgeUpdates == nil {
		s.EdgeUpdates = []EdgeUpdate{}
	}
	b.steps = append(b.steps, s)
	b.log = append(b.log, b.entry(s))
}

func (b *Builder) entry(s Step) LogEntry {
	for _, u := range s.NodeUpdates {
		if u.State != nil && *u.State == graph.StateVisited && !b.seen[u.ID] {
			b.seen[u.ID] = true
			b.visited = append(b.visited, u.ID)
		}
	}

	e := LogEntry{
		Step:        s.ID,
		Event:       s.Event,
		Description: s.Description,
		Visited:     make([]string, len(b.visited)),
	}
	for i, id := range b.visited {
		e.Visited[i] = b.ix.UniqueLabel(id)
	}
	if s.Snapshot != nil {
		e.Slots = s.Snapshot.labeled(b.ix.UniqueLabel)
	}
	return e
}

// Execution wraps the accumulated steps. The builder must not be used
// afterwards.
func (b *Builder) Execution() *Execution {
	steps := b.steps
	if steps == nil {
		steps = []Step{}
	}
	return &Execution{
		Algorithm:    b.algorithm,
		Steps:        steps,
		OperationLog: b.log,
	}
}
