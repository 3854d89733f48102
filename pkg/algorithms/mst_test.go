package algorithms

import (
	"math"
	"math/bits"
	"strings"
	"testing"

	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/trace"
)

// bruteForceMST tries every subset of |V|-1 edges and returns the lowest
// weight of one that spans the graph.
func bruteForceMST(d graph.Data) float64 {
	n := len(d.Nodes)
	pos := make(map[string]int, n)
	for i, node := range d.Nodes {
		pos[node.ID] = i
	}
	best := math.Inf(1)
	for mask := 0; mask < 1<<len(d.Edges); mask++ {
		if bits.OnesCount(uint(mask)) != n-1 {
			continue
		}
		parent := make([]int, n)
		for i := range parent {
			parent[i] = i
		}
		var find func(int) int
		find = func(x int) int {
			if parent[x] != x {
				parent[x] = find(parent[x])
			}
			return parent[x]
		}
		total, joins := 0.0, 0
		for i, e := range d.Edges {
			if mask&(1<<i) == 0 {
				continue
			}
			total += e.Cost()
			if a, b := find(pos[e.Source]), find(pos[e.Target]); a != b {
				parent[a] = b
				joins++
			}
		}
		if joins == n-1 && total < best {
			best = total
		}
	}
	return best
}

func treeEdges(d graph.Data, exec *trace.Execution) []string {
	var ids []string
	for _, e := range trace.Replay(d, exec.Steps).Edges {
		if e.InTree {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func TestMSTTriangle(t *testing.T) {
	d := build([]string{"A", "B", "C"},
		edge("ab", "A", "B", 1),
		edge("bc", "B", "C", 2),
		edge("ac", "A", "C", 3),
	)
	for _, name := range []string{NamePrim, NameKruskal} {
		t.Run(name, func(t *testing.T) {
			exec := mustRun(t, name, d, Params{Start: "A"})
			got := treeEdges(d, exec)
			if strings.Join(got, ",") != "ab,bc" {
				t.Errorf("tree edges = %v, want [ab bc]", got)
			}
			s := lastStep(t, exec)
			if s.Event != trace.EventComplete || s.Value == nil || *s.Value != 3 {
				t.Errorf("last step = %q value %v, want complete with 3", s.Event, s.Value)
			}
		})
	}
}

func TestMSTMatchesBruteForce(t *testing.T) {
	for seed := int64(1); seed <= 15; seed++ {
		d := randomGraph(seed, 5, 9, 1, 9, false, true)
		want := bruteForceMST(d)
		for _, name := range []string{NamePrim, NameKruskal} {
			exec := mustRun(t, name, d, Params{Start: "n2"})
			if got := len(treeEdges(d, exec)); got != len(d.Nodes)-1 {
				t.Errorf("seed %d %s: %d tree edges, want %d", seed, name, got, len(d.Nodes)-1)
			}
			if v := lastStep(t, exec).Value; v == nil || *v != want {
				t.Errorf("seed %d %s: weight %v, want %g", seed, name, v, want)
			}
		}
	}
}

func TestPrimDisconnected(t *testing.T) {
	d := build([]string{"A", "B", "C"}, edge("ab", "A", "B", 4))
	exec := mustRun(t, NamePrim, d, Params{Start: "A"})
	s := lastStep(t, exec)
	if s.Event != trace.EventComplete || *s.Value != 4 {
		t.Errorf("last step = %q value %v", s.Event, *s.Value)
	}
	if got := len(treeEdges(d, exec)); got != 1 {
		t.Errorf("tree edges = %d, want 1", got)
	}
}

func TestPrimSkipsCycleEdges(t *testing.T) {
	d := build([]string{"A", "B", "C", "D"},
		edge("ab", "A", "B", 1),
		edge("bc", "B", "C", 1),
		edge("ca", "C", "A", 2),
		edge("cd", "C", "D", 5),
	)
	exec := mustRun(t, NamePrim, d, Params{Start: "A"})
	skips := exec.Events(trace.EventSkip)
	if len(skips) != 1 || !strings.Contains(skips[0].Description, "cycle") {
		t.Errorf("skips = %+v, want one cycle skip", skips)
	}
}

func TestKruskalSameSet(t *testing.T) {
	d := build([]string{"A", "B", "C", "D"},
		edge("ab", "A", "B", 1),
		edge("bc", "B", "C", 1),
		edge("ca", "C", "A", 1),
		edge("cd", "C", "D", 5),
	)
	exec := mustRun(t, NameKruskal, d, Params{})

	skips := exec.Events(trace.EventSkip)
	if len(skips) != 1 || !strings.Contains(skips[0].Description, "same set") {
		t.Fatalf("skips = %+v, want one same-set skip", skips)
	}
	if got := strings.Join(treeEdges(d, exec), ","); got != "ab,bc,cd" {
		t.Errorf("tree edges = %s, want ab,bc,cd", got)
	}

	// Every node ends up under a single root.
	f := lastStep(t, exec).Snapshot.(*trace.Forest)
	roots := make(map[string]bool)
	parent := make(map[string]string)
	for i, id := range []string{"A", "B", "C", "D"} {
		parent[id] = f.Parent[i]
	}
	for id := range parent {
		for parent[id] != id {
			id = parent[id]
		}
		roots[id] = true
	}
	if len(roots) != 1 {
		t.Errorf("forest has %d roots, want 1", len(roots))
	}
}
