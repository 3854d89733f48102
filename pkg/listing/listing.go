// Package listing holds the pseudocode shown next to a running trace.
//
// Steps point into these listings through their 1-based CodeLine, so a player
// can highlight the line an algorithm is executing. Line numbers are part of
// the trace format: reordering a listing changes the meaning of every
// recorded trace for that algorithm.
package listing

import "slices"

// NotImplemented is the single-line listing returned for unknown names.
const NotImplemented = "// Algorithm not implemented"

var listings = map[string][]string{
	"bfs": {
		"BFS(graph, start):",
		"  queue ← [start]; mark start as queued",
		"  while queue is not empty:",
		"    node ← queue.dequeue()",
		"    if node is visited: continue",
		"    mark node visited",
		"    for each neighbor of node:",
		"      if neighbor is neither visited nor queued:",
		"        queue.enqueue(neighbor)",
		"  return visited",
	},
	"dfs": {
		"DFS(graph, start):",
		"  stack ← [start]; mark start as pushed",
		"  while stack is not empty:",
		"    node ← stack.pop()",
		"    if node is visited: continue",
		"    mark node visited",
		"    for each neighbor of node:",
		"      if neighbor is neither visited nor pushed:",
		"        stack.push(neighbor)",
		"  return visited",
	},
	"dijkstra": {
		"Dijkstra(graph, source):",
		"  dist[v] ← ∞ for every v; dist[source] ← 0",
		"  pq ← [(0, source)]",
		"  while pq is not empty:",
		"    (d, u) ← pq.extractMin()",
		"    if u is visited: continue",
		"    mark u visited",
		"    for each edge (u, v, w) leaving u:",
		"      if dist[u] + w < dist[v]:",
		"        dist[v] ← dist[u] + w",
		"        pq.insert((dist[v], v))",
		"  return dist",
	},
	"bellman-ford": {
		"BellmanFord(graph, source):",
		"  dist[v] ← ∞ for every v; dist[source] ← 0",
		"  repeat |V| - 1 times:",
		"    for each edge (u, v, w):",
		"      if dist[u] + w < dist[v]:",
		"        dist[v] ← dist[u] + w",
		"    if no distance changed: break",
		"  for each edge (u, v, w):",
		"    if dist[u] + w < dist[v]:",
		"      report negative weight cycle",
		"  return dist",
	},
	"astar": {
		"AStar(graph, start, goal):",
		"  g[start] ← 0; f[start] ← h(start)",
		"  open ← [start]",
		"  while open is not empty:",
		"    current ← node in open with lowest f",
		"    if current = goal:",
		"      return reconstructPath(cameFrom, current)",
		"    remove current from open",
		"    for each edge (current, n, w) leaving current:",
		"      tentative ← g[current] + w",
		"      if tentative < g[n]:",
		"        cameFrom[n] ← current",
		"        g[n] ← tentative; f[n] ← g[n] + h(n)",
		"        add n to open",
		"  return failure",
	},
	"prim": {
		"Prim(graph, start):",
		"  tree ← {start}; frontier ← edges incident to start",
		"  while frontier is not empty and |tree edges| < |V| - 1:",
		"    e ← frontier.extractMin()",
		"    if both endpoints of e are in tree: continue",
		"    v ← endpoint of e not in tree",
		"    add v and e to tree",
		"    add edges incident to v to frontier",
		"  return tree edges",
	},
	"kruskal": {
		"Kruskal(graph):",
		"  sort edges by weight",
		"  make a singleton set for every node",
		"  for each edge (u, v, w) in sorted order:",
		"    if find(u) ≠ find(v):",
		"      union(u, v); add edge to tree",
		"    else: skip edge",
		"    if |tree edges| = |V| - 1: break",
		"  return tree edges",
	},
	"floyd-warshall": {
		"FloydWarshall(graph):",
		"  dist[i][j] ← ∞; dist[i][i] ← 0",
		"  for each edge (u, v, w): dist[u][v] ← w",
		"  for k in nodes:",
		"    for i in nodes:",
		"      for j in nodes:",
		"        if dist[i][k] + dist[k][j] < dist[i][j]:",
		"          dist[i][j] ← dist[i][k] + dist[k][j]",
		"  return dist",
	},
	"ford-fulkerson": {
		"EdmondsKarp(graph, source, sink):",
		"  residual ← capacities; flow ← 0",
		"  while BFS finds a path source → sink in residual:",
		"    bottleneck ← min residual along path",
		"    for each edge (u, v) on path:",
		"      residual[u][v] -= bottleneck",
		"      residual[v][u] += bottleneck",
		"    flow += bottleneck",
		"  return flow",
	},
}

// Lookup returns the listing for the named algorithm. Unknown names yield a
// one-line placeholder instead of an error. The returned slice is a copy.
func Lookup(name string) []string {
	if lines, ok := listings[name]; ok {
		return slices.Clone(lines)
	}
	return []string{NotImplemented}
}

// Has reports whether a listing exists for name.
func Has(name string) bool {
	_, ok := listings[name]
	return ok
}

// Len returns the number of lines in the named listing, or 0 if unknown.
func Len(name string) int { return len(listings[name]) }

// Names returns the algorithms with a listing, sorted.
func Names() []string {
	names := make([]string, 0, len(listings))
	for name := range listings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
