package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/algotrace/pkg/algorithms"
	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/trace"
)

func triangleGraph() graph.Data {
	return graph.Data{
		Nodes: []graph.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Edges: []graph.Edge{
			{ID: "ab", Source: "A", Target: "B", Weight: graph.Float(1)},
			{ID: "bc", Source: "B", Target: "C", Weight: graph.Float(2)},
			{ID: "ac", Source: "A", Target: "C", Weight: graph.Float(5)},
		},
	}
}

func newTestPlayModel(t *testing.T) playModel {
	t.Helper()
	d := triangleGraph()
	exec, err := algorithms.Run(algorithms.NameDijkstra, d, algorithms.Params{Start: "A"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return newPlayModel(d, exec, 0)
}

func press(m playModel, keys ...tea.KeyMsg) (playModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(playModel)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
)

func TestPlayModelStepping(t *testing.T) {
	m := newTestPlayModel(t)
	if m.interval != defaultPlayInterval {
		t.Errorf("interval = %v, want default %v", m.interval, defaultPlayInterval)
	}

	m, _ = press(m, keyRight, keyRight, keyLeft)
	if got := m.player.Position(); got != 1 {
		t.Errorf("position after →→← = %d, want 1", got)
	}

	m, _ = press(m, runes("G"))
	if !m.player.Done() {
		t.Error("G did not seek to the end")
	}
	m, _ = press(m, keyRight)
	if got := m.player.Position(); got != m.player.Len() {
		t.Errorf("position past the end = %d, want %d", got, m.player.Len())
	}

	m, _ = press(m, runes("g"))
	if got := m.player.Position(); got != 0 {
		t.Errorf("position after g = %d, want 0", got)
	}
}

func TestPlayModelAutoplay(t *testing.T) {
	m := newTestPlayModel(t)

	m, cmd := press(m, keySpace)
	if !m.playing || cmd == nil {
		t.Fatal("space should start playing and schedule a tick")
	}

	next, cmd := m.Update(tickMsg{gen: m.gen})
	m = next.(playModel)
	if m.player.Position() != 1 || cmd == nil {
		t.Errorf("tick: position %d, cmd %v; want 1 and another tick", m.player.Position(), cmd)
	}

	m.player.Seek(m.player.Len())
	next, cmd = m.Update(tickMsg{gen: m.gen})
	m = next.(playModel)
	if m.playing || cmd != nil {
		t.Error("playback should stop at the last step")
	}

	m, _ = press(m, keySpace)
	if m.player.Position() != 0 {
		t.Error("play from the end should rewind")
	}
}

func TestPlayModelSpeed(t *testing.T) {
	m := newTestPlayModel(t)
	m, _ = press(m, runes("+"))
	if m.interval != defaultPlayInterval/2 {
		t.Errorf("interval after + = %v", m.interval)
	}
	for range 10 {
		m, _ = press(m, runes("+"))
	}
	if m.interval != minPlayInterval {
		t.Errorf("interval = %v, want floor %v", m.interval, minPlayInterval)
	}
	for range 10 {
		m, _ = press(m, runes("-"))
	}
	if m.interval != maxPlayInterval {
		t.Errorf("interval = %v, want ceiling %v", m.interval, maxPlayInterval)
	}
}

func TestPlayModelQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := press(newTestPlayModel(t), k)
		if cmd == nil {
			t.Fatalf("%s: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", k)
		}
	}
}

func TestPlayModelView(t *testing.T) {
	m := newTestPlayModel(t)

	view := m.View()
	for _, want := range []string{"dijkstra", "step 0/9", "Initial graph"} {
		if !strings.Contains(view, want) {
			t.Errorf("initial view lacks %q", want)
		}
	}

	m, _ = press(m, keyRight)
	view = m.View()
	for _, want := range []string{"step 1/9", "Initialize distances", "▸", "list", "matrix"} {
		if !strings.Contains(view, want) {
			t.Errorf("view after one step lacks %q:\n%s", want, view)
		}
	}
}

func TestPlayModelTickWhilePaused(t *testing.T) {
	m := newTestPlayModel(t)
	next, cmd := m.Update(tickMsg{gen: m.gen})
	if cmd != nil || next.(playModel).player.Position() != 0 {
		t.Error("a stray tick advanced a paused player")
	}
}

func TestPlayModelResumeDropsStaleTicks(t *testing.T) {
	m := newTestPlayModel(t)

	m, _ = press(m, keySpace)
	first := m.gen
	m, _ = press(m, keySpace, keySpace)
	if !m.playing || m.gen == first {
		t.Fatalf("playing %v gen %d, want a new playing generation after pause and resume", m.playing, m.gen)
	}

	next, cmd := m.Update(tickMsg{gen: first})
	m = next.(playModel)
	if cmd != nil || m.player.Position() != 0 {
		t.Errorf("tick from the paused loop: position %d, cmd %v; want 0 and no reschedule", m.player.Position(), cmd)
	}

	next, cmd = m.Update(tickMsg{gen: m.gen})
	m = next.(playModel)
	if cmd == nil || m.player.Position() != 1 {
		t.Errorf("current tick: position %d, cmd %v; want 1 and another tick", m.player.Position(), cmd)
	}
}

func TestMatrixTableSparseRows(t *testing.T) {
	m := trace.Matrix{"A": {"A": 0, "B": graph.Inf, "C": 2}}
	out := matrixTable(m)
	for _, want := range []string{"A", "B", "C", "∞", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("matrix table lacks %q:\n%s", want, out)
		}
	}
}
