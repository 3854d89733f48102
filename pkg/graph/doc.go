// Package graph provides the graph model consumed by every traced algorithm.
//
// A [Data] value is the snapshot an external editor hands to the engine before
// a run: an ordered list of [Node] values and an ordered list of [Edge] values.
// Algorithms never mutate it. They clone it, build an [Index] over the clone
// and describe intended mutations as trace steps.
//
// # Serialization
//
// The wire format is the node-link JSON shape players already expect:
//
//	{
//	  "nodes": [{"id": "A", "label": "A", "x": 10, "y": 20}],
//	  "edges": [{"id": "e1", "source": "A", "target": "B", "weight": 4}]
//	}
//
// YAML files with the same field names are accepted by [ReadFile].
// Unreachable distances are encoded as the string "Infinity" (see [Distance]).
//
// # Edge Direction
//
// Edges always carry a source and a target, but not every algorithm honors
// that orientation:
//
//	Neighbors (undirected): BFS, DFS, Prim, Kruskal, Floyd-Warshall
//	Outgoing  (directed):   Dijkstra, Bellman-Ford, A*, Ford-Fulkerson
//
// To model an undirected weighted graph for the directed algorithms, supply
// one edge per direction. This asymmetry changes trace output and is kept
// as-is on purpose; do not route a directed algorithm through [Index.Neighbors].
//
// # Validation
//
// [Data.Validate] reports unknown edge endpoints, duplicate or empty ids and
// non-finite weights as INVALID_GRAPH errors. Run it before building an index.
//
// # Concurrency
//
// Data and Index values are safe for concurrent reads. Index is immutable
// after [NewIndex] returns.
package graph
