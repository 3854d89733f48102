// Package pkg provides the core libraries for algotrace, a recorder of
// replayable graph algorithm traces.
//
// # Overview
//
// An algorithm run never mutates its input. Instead it emits an ordered list
// of steps, each a small diff against the graph (node state and distance,
// edge flags) plus an optional snapshot of the algorithm's working structures
// and the pseudocode line being executed. Replaying a prefix of the steps
// reproduces the graph at any point of the run.
//
// The pkg directory is organized as:
//
//  1. [graph] - Nodes, edges, distances, validation and file I/O
//  2. [trace] - Steps, snapshots, executions, replay and the stepwise player
//  3. [algorithms] - The nine traced algorithms and their registry
//  4. [listing] - Pseudocode listings keyed by algorithm
//  5. [engine] - Validated, cached execution of a named algorithm
//  6. [render] - DOT, SVG, PNG and PDF output of a replayed frame
//  7. [cache], [config], [observability], [errors], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Graph file / HTTP request
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [engine] package (cache lookup, run, cache store)
//	         ↓
//	    [algorithms] package (emit steps through a trace.Builder)
//	         ↓
//	    [trace] package (Replay / Player)
//	         ↓
//	    JSON execution, terminal player, or rendered frame
//
// # Quick Start
//
//	d, _ := graph.ReadFile("city.json")
//	exec, _ := algorithms.Run("dijkstra", d, algorithms.Params{Start: "A"})
//
//	p := trace.NewPlayer(d, exec)
//	for p.Next() {
//	    s, _ := p.Current()
//	    fmt.Println(s.CodeLine, s.Description)
//	}
//	svg, _ := dot.SVG(p.Graph(), dot.Options{Directed: true})
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/algotrace/pkg/graph
// [trace]: https://pkg.go.dev/github.com/matzehuels/algotrace/pkg/trace
// [algorithms]: https://pkg.go.dev/github.com/matzehuels/algotrace/pkg/algorithms
// [listing]: https://pkg.go.dev/github.com/matzehuels/algotrace/pkg/listing
// [engine]: https://pkg.go.dev/github.com/matzehuels/algotrace/pkg/engine
// [render]: https://pkg.go.dev/github.com/matzehuels/algotrace/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/algotrace/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/algotrace/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/algotrace/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/algotrace/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/algotrace/pkg/buildinfo
package pkg
