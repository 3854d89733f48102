package trace

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/algotrace/pkg/graph"
)

// Event tags what a step records. Players may ignore it; tests and tooling
// use it instead of parsing descriptions.
type Event string

// Step events.
const (
	EventInit          Event = "init"
	EventVisit         Event = "visit"
	EventSkip          Event = "skip"
	EventEnqueue       Event = "enqueue"
	EventPush          Event = "push"
	EventSnapshot      Event = "snapshot"
	EventExamine       Event = "examine"
	EventRelax         Event = "relax"
	EventAccept        Event = "accept"
	EventAugment       Event = "augment"
	EventPathFound     Event = "path-found"
	EventNoPath        Event = "no-path"
	EventNegativeCycle Event = "negative-cycle"
	EventComplete      Event = "complete"
)

// NodeUpdate is a partial node keyed by ID. Nil fields are unchanged.
type NodeUpdate struct {
	ID       string           `json:"id"`
	State    *graph.NodeState `json:"state,omitempty"`
	Distance *graph.Distance  `json:"distance,omitempty"`
}

// Node starts an update for node id.
func Node(id string) NodeUpdate { return NodeUpdate{ID: id} }

// WithState sets the node state.
func (u NodeUpdate) WithState(s graph.NodeState) NodeUpdate {
	u.State = &s
	return u
}

// WithDistance sets the node distance.
func (u NodeUpdate) WithDistance(d graph.Distance) NodeUpdate {
	u.Distance = &d
	return u
}

// EdgeUpdate is a partial edge keyed by ID. Nil fields are unchanged.
type EdgeUpdate struct {
	ID       string `json:"id"`
	IsActive *bool  `json:"isActive,omitempty"`
	InTree   *bool  `json:"inTree,omitempty"`
	IsError  *bool  `json:"isError,omitempty"`
}

// Edge starts an update for edge id.
func Edge(id string) EdgeUpdate { return EdgeUpdate{ID: id} }

// Active sets the isActive flag.
func (u EdgeUpdate) Active(v bool) EdgeUpdate {
	u.IsActive = &v
	return u
}

// Tree sets the inTree flag.
func (u EdgeUpdate) Tree(v bool) EdgeUpdate {
	u.InTree = &v
	return u
}

// Error sets the isError flag.
func (u EdgeUpdate) Error(v bool) EdgeUpdate {
	u.IsError = &v
	return u
}

// Step is one recorded state transition.
type Step struct {
	ID          int          // 0-based sequence number, assigned by the Builder
	Description string       // human-readable account of the transition
	CodeLine    int          // 1-based line in the algorithm's listing
	Event       Event        // machine-readable kind
	NodeUpdates []NodeUpdate // changed node fields
	EdgeUpdates []EdgeUpdate // changed edge flags
	Snapshot    Snapshot     // optional view of the working structures
	Value       *float64     // terminal scalar (max flow, tree weight)
}

// Slots are the named auxiliary fields of the external step shape.
// Each Snapshot variant fills only its own.
type Slots struct {
	Queue  *[]string `json:"queue,omitempty"`
	Stack  *[]string `json:"stack,omitempty"`
	Result *[]string `json:"result,omitempty"`
	List   *[]string `json:"list,omitempty"`
	Array  *[]string `json:"array,omitempty"`
	Matrix Matrix    `json:"matrix,omitempty"`
}

type wireStep struct {
	ID          int          `json:"id"`
	Description string       `json:"description"`
	CodeLine    int          `json:"codeLine"`
	Event       Event        `json:"event,omitempty"`
	NodeUpdates []NodeUpdate `json:"nodeUpdates"`
	EdgeUpdates []EdgeUpdate `json:"edgeUpdates"`
	Snapshot    SnapshotKind `json:"snapshot,omitempty"`
	Slots
	Value *float64 `json:"value,omitempty"`
}

// MarshalJSON writes the flat external step shape.
func (s Step) MarshalJSON() ([]byte, error) {
	w := wireStep{
		ID:          s.ID,
		Description: s.Description,
		CodeLine:    s.CodeLine,
		Event:       s.Event,
		NodeUpdates: s.NodeUpdates,
		EdgeUpdates: s.EdgeUpdates,
		Value:       s.Value,
	}
	if w.NodeUpdates == nil {
		w.NodeUpdates = []NodeUpdate{}
	}
	if w.EdgeUpdates == nil {
		w.EdgeUpdates = []EdgeUpdate{}
	}
	if s.Snapshot != nil {
		w.Snapshot = s.Snapshot.Kind()
		w.Slots = s.Snapshot.slots()
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the flat external step shape, rebuilding the snapshot
// variant named by the "snapshot" tag.
func (s *Step) UnmarshalJSON(data []byte) error {
	var w wireStep
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	snap, err := decodeSnapshot(w.Snapshot, w.Slots)
	if err != nil {
		return fmt.Errorf("step %d: %w", w.ID, err)
	}
	*s = Step{
		ID:          w.ID,
		Description: w.Description,
		CodeLine:    w.CodeLine,
		Event:       w.Event,
		NodeUpdates: w.NodeUpdates,
		EdgeUpdates: w.EdgeUpdates,
		Snapshot:    snap,
		Value:       w.Value,
	}
	return nil
}
