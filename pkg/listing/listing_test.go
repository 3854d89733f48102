package listing

import (
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name      string
		wantFirst string
	}{
		{"bfs", "BFS(graph, start):"},
		{"dijkstra", "Dijkstra(graph, source):"},
		{"ford-fulkerson", "EdmondsKarp(graph, source, sink):"},
		{"quicksort", NotImplemented},
		{"", NotImplemented},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Lookup(tt.name)
			if len(lines) == 0 {
				t.Fatal("Lookup returned no lines")
			}
			if lines[0] != tt.wantFirst {
				t.Errorf("first line = %q, want %q", lines[0], tt.wantFirst)
			}
		})
	}
}

func TestLookupUnknownIsSingleLine(t *testing.T) {
	if got := Lookup("nope"); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
	if Has("nope") || Len("nope") != 0 {
		t.Error("unknown name reported as present")
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	a := Lookup("bfs")
	a[0] = "changed"
	if Lookup("bfs")[0] == "changed" {
		t.Error("Lookup exposes the registry slice")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 9 {
		t.Fatalf("len(Names()) = %d, want 9", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
	for _, n := range names {
		if !Has(n) || Len(n) < 5 {
			t.Errorf("listing %q looks empty", n)
		}
		if strings.TrimSpace(Lookup(n)[len(Lookup(n))-1]) == "" {
			t.Errorf("listing %q ends with a blank line", n)
		}
	}
}
