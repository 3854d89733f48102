package algorithms

import (
	"math"
	"testing"

	errs "github.com/matzehuels/algotrace/pkg/errors"
	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/trace"
)

// minCut returns the smallest total capacity of edges leaving a node set
// that contains source but not sink.
func minCut(d graph.Data, source, sink string) float64 {
	var inner []string
	for _, n := range d.Nodes {
		if n.ID != source && n.ID != sink {
			inner = append(inner, n.ID)
		}
	}
	best := math.Inf(1)
	for mask := 0; mask < 1<<len(inner); mask++ {
		side := map[string]bool{source: true}
		for i, id := range inner {
			if mask&(1<<i) != 0 {
				side[id] = true
			}
		}
		cut := 0.0
		for _, e := range d.Edges {
			if side[e.Source] && !side[e.Target] {
				cut += e.Cost()
			}
		}
		best = min(best, cut)
	}
	return best
}

func flowValue(t *testing.T, exec *trace.Execution) float64 {
	t.Helper()
	s := lastStep(t, exec)
	if s.Event != trace.EventComplete || s.Value == nil {
		t.Fatalf("last step = %q value %v, want complete with value", s.Event, s.Value)
	}
	return *s.Value
}

func TestFordFulkersonClassic(t *testing.T) {
	d := build([]string{"S", "A", "B", "T"},
		edge("sa", "S", "A", 10),
		edge("sb", "S", "B", 5),
		edge("ab", "A", "B", 15),
		edge("at", "A", "T", 5),
		edge("bt", "B", "T", 10),
	)
	// The sink defaults to the last node.
	exec := mustRun(t, NameFordFulkerson, d, Params{Start: "S"})
	if got := flowValue(t, exec); got != 15 {
		t.Errorf("max flow = %g, want 15", got)
	}

	for _, s := range exec.Events(trace.EventAugment) {
		fl, ok := s.Snapshot.(*trace.Flow)
		if !ok {
			t.Fatalf("snapshot type %T, want *trace.Flow", s.Snapshot)
		}
		if fl.Path[0] != "S" || fl.Path[len(fl.Path)-1] != "T" {
			t.Errorf("augmenting path %v does not run S to T", fl.Path)
		}
	}

	final := trace.Replay(d, exec.Steps)
	if got := nodeByID(t, final, "S").State; got != graph.StateVisited {
		t.Errorf("source state = %q, want visited (cut side)", got)
	}
	if got := nodeByID(t, final, "T").State; got == graph.StateVisited {
		t.Error("sink marked on the source side of the cut")
	}
}

func TestFordFulkersonMatchesMinCut(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		d := randomGraph(seed, 6, 12, 1, 9, false, false)
		exec := mustRun(t, NameFordFulkerson, d, Params{Start: "n0", End: "n5"})
		if got, want := flowValue(t, exec), minCut(d, "n0", "n5"); got != want {
			t.Errorf("seed %d: max flow %g, min cut %g", seed, got, want)
		}
	}
}

func TestFordFulkersonNoPath(t *testing.T) {
	d := build([]string{"S", "T"}, edge("ts", "T", "S", 3))
	exec := mustRun(t, NameFordFulkerson, d, Params{Start: "S", End: "T"})
	if got := flowValue(t, exec); got != 0 {
		t.Errorf("max flow = %g, want 0", got)
	}
	if exec.HasEvent(trace.EventAugment) {
		t.Error("unexpected augment step")
	}
}

func TestFordFulkersonParams(t *testing.T) {
	d := build([]string{"S", "T"}, edge("st", "S", "T", 3))
	if _, err := FordFulkerson(d, Params{Start: "S", End: "S"}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("source == sink: err = %v, want INVALID_INPUT", err)
	}
	if _, err := FordFulkerson(d, Params{Start: "S", End: "X"}); !errs.Is(err, errs.ErrCodeNodeNotFound) {
		t.Errorf("unknown sink: err = %v, want NODE_NOT_FOUND", err)
	}
	single := build([]string{"S"})
	if _, err := FordFulkerson(single, Params{}); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("single node: err = %v, want INVALID_INPUT", err)
	}
}

func TestFordFulkersonHugeParallelCapacities(t *testing.T) {
	d := build([]string{"S", "T"}, edge("a", "S", "T", 1e308), edge("b", "S", "T", 1e308))
	if _, err := FordFulkerson(d, Params{Start: "S", End: "T"}); !errs.Is(err, errs.ErrCodeInvalidGraph) {
		t.Fatalf("err = %v, want INVALID_GRAPH", err)
	}

	d = build([]string{"S", "T"}, edge("a", "S", "T", graph.MaxWeight), edge("b", "S", "T", graph.MaxWeight))
	exec := mustRun(t, NameFordFulkerson, d, Params{Start: "S", End: "T"})
	if got, want := flowValue(t, exec), 2*graph.MaxWeight; got != want {
		t.Errorf("max flow = %g, want %g", got, want)
	}
}

func TestAugmentingPathSkipsNaN(t *testing.T) {
	residual := [][]float64{
		{0, math.NaN()},
		{0, 0},
	}
	if parent, _ := augmentingPath(residual, 0, 1); parent != nil {
		t.Errorf("parent = %v, want no path through a NaN residual", parent)
	}
}
