package algorithms_test

import (
	"fmt"

	"github.com/matzehuels/algotrace/pkg/algorithms"
	"github.com/matzehuels/algotrace/pkg/graph"
)

func ExampleDijkstra() {
	d := graph.Data{
		Nodes: []graph.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Edges: []graph.Edge{
			{ID: "ab", Source: "A", Target: "B", Weight: graph.Float(1)},
			{ID: "bc", Source: "B", Target: "C", Weight: graph.Float(2)},
			{ID: "ac", Source: "A", Target: "C", Weight: graph.Float(5)},
		},
	}
	exec, err := algorithms.Dijkstra(d, algorithms.Params{Start: "A"})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range exec.Steps {
		fmt.Printf("%d [line %d] %s\n", s.ID, s.CodeLine, s.Description)
	}
	// Output:
	// 0 [line 2] Initialize distances: A = 0, all others ∞
	// 1 [line 7] Visiting A (distance 0)
	// 2 [line 10] Relax A → B: distance of B ∞ → 1
	// 3 [line 10] Relax A → C: distance of C ∞ → 5
	// 4 [line 7] Visiting B (distance 1)
	// 5 [line 10] Relax B → C: distance of C 5 → 3
	// 6 [line 7] Visiting C (distance 3)
	// 7 [line 6] C already visited, skipping stale entry (5)
	// 8 [line 12] Dijkstra complete: 3 of 3 nodes reached
}

func ExampleRun() {
	d := graph.Data{
		Nodes: []graph.Node{{ID: "S"}, {ID: "A"}, {ID: "T"}},
		Edges: []graph.Edge{
			{ID: "sa", Source: "S", Target: "A", Weight: graph.Float(4)},
			{ID: "at", Source: "A", Target: "T", Weight: graph.Float(3)},
			{ID: "st", Source: "S", Target: "T", Weight: graph.Float(2)},
		},
	}
	exec, err := algorithms.Run("ford-fulkerson", d, algorithms.Params{Start: "S", End: "T"})
	if err != nil {
		fmt.Println(err)
		return
	}
	last, _ := exec.Last()
	fmt.Println(last.Description)
	// Output: Maximum flow from S to T: 5
}
