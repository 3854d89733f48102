package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/listing"
	"github.com/matzehuels/algotrace/pkg/trace"
)

const (
	defaultPlayInterval = 700 * time.Millisecond
	minPlayInterval     = 100 * time.Millisecond
	maxPlayInterval     = 5 * time.Second
)

// playCommand creates the play command, an interactive trace stepper.
func (c *CLI) playCommand() *cobra.Command {
	var (
		flags    traceFlags
		interval time.Duration
		autoplay bool
	)

	cmd := &cobra.Command{
		Use:   "play <graph-file>",
		Short: "Step through a trace interactively",
		Long: `Run an algorithm and step through its trace in the terminal. The pseudocode
listing follows along, and node states, distances and working structures are
shown for the current step.

Keys: →/l next, ←/h back, space play/pause, +/- speed, g/G first/last, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, res, err := c.trace(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}
			m := newPlayModel(d, res.Execution, interval)
			m.playing = autoplay
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&interval, "interval", defaultPlayInterval, "delay between steps while playing")
	cmd.Flags().BoolVar(&autoplay, "autoplay", false, "start playing immediately")

	return cmd
}

// =============================================================================
// playModel
// =============================================================================

// tickMsg carries the playback generation that scheduled it. Toggling
// playback bumps the generation, so ticks from an earlier loop are dropped.
type tickMsg struct{ gen int }

// playModel is the bubbletea model of the stepper. The player is shared by
// value copies of the model; bubbletea only ever holds one.
type playModel struct {
	exec     *trace.Execution
	player   *trace.Player
	listing  []string
	interval time.Duration
	playing  bool
	gen      int
	height   int
}

func newPlayModel(d graph.Data, exec *trace.Execution, interval time.Duration) playModel {
	if interval <= 0 {
		interval = defaultPlayInterval
	}
	return playModel{
		exec:     exec,
		player:   trace.NewPlayer(d, exec),
		listing:  listing.Lookup(exec.Algorithm),
		interval: interval,
		height:   40,
	}
}

func (m playModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m playModel) Init() tea.Cmd {
	if m.playing {
		return m.tick()
	}
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.playing || msg.gen != m.gen {
			return m, nil
		}
		if !m.player.Next() {
			m.playing = false
			m.gen++
			return m, nil
		}
		return m, m.tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n":
			m.player.Next()
		case "left", "h", "p":
			m.player.Prev()
		case "g", "home":
			m.player.Seek(0)
		case "G", "end":
			m.player.Seek(m.player.Len())
		case " ":
			m.playing = !m.playing
			m.gen++
			if m.playing {
				if m.player.Done() {
					m.player.Seek(0)
				}
				return m, m.tick()
			}
		case "+", "=":
			m.interval = max(minPlayInterval, m.interval/2)
		case "-":
			m.interval = min(maxPlayInterval, m.interval*2)
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height
	}
	return m, nil
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.exec.Algorithm))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  step %d/%d", m.player.Position(), m.player.Len())))
	if m.playing {
		b.WriteString(StyleSuccess.Render("  ▶ " + m.interval.String()))
	}
	b.WriteString("\n\n")

	step, ok := m.player.Current()
	if ok {
		b.WriteString(eventStyle(step.Event).Render(string(step.Event)))
		b.WriteString(" " + StyleValue.Render(step.Description) + "\n\n")
	} else {
		b.WriteString(StyleDim.Render("Initial graph. Press → to apply the first step.") + "\n\n")
	}

	code := formatListing(m.listing, step.CodeLine)
	left := lipgloss.NewStyle().MarginRight(4).Render(code)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, nodeTable(m.player.Graph())))
	b.WriteString("\n")

	if ok {
		if slots := m.slots(); slots != "" {
			b.WriteString("\n" + slots + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("→ next  ← back  space play/pause  +/- speed  g/G first/last  q quit"))
	return b.String()
}

// slots formats the labeled working structures of the current step.
func (m playModel) slots() string {
	pos := m.player.Position() - 1
	if pos < 0 || pos >= len(m.exec.OperationLog) {
		return ""
	}
	entry := m.exec.OperationLog[pos]

	var lines []string
	add := func(name string, items *[]string) {
		if items != nil {
			lines = append(lines, fmt.Sprintf("%s %s", StyleDim.Render(fmt.Sprintf("%-8s", name)), strings.Join(*items, ", ")))
		}
	}
	add("queue", entry.Queue)
	add("stack", entry.Stack)
	add("result", entry.Result)
	add("list", entry.List)
	add("array", entry.Array)
	if len(entry.Visited) > 0 {
		add("visited", &entry.Visited)
	}
	if len(entry.Matrix) > 0 {
		lines = append(lines, StyleDim.Render("matrix")+"\n"+matrixTable(entry.Matrix))
	}
	return strings.Join(lines, "\n")
}

var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// stateStyles colors node rows by state.
var stateStyles = map[graph.NodeState]lipgloss.Style{
	graph.StateCurrent: lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
	graph.StateVisited: lipgloss.NewStyle().Foreground(colorBlue),
	graph.StatePath:    lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	graph.StateError:   lipgloss.NewStyle().Foreground(colorRed).Bold(true),
}

func nodeTable(d graph.Data) string {
	rows := make([][]string, len(d.Nodes))
	for i, n := range d.Nodes {
		dist := ""
		if n.Distance != nil {
			dist = n.Distance.String()
		}
		state := string(n.State)
		if state == "" {
			state = string(graph.StateDefault)
		}
		rows[i] = []string{n.DisplayLabel(), state, dist}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Node", "State", "Dist").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if s, ok := stateStyles[d.Nodes[row].State]; ok {
				return s
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// matrixTable renders a distance matrix with sorted row and column labels.
// Rows may be sparse; missing cells are left blank.
func matrixTable(m trace.Matrix) string {
	keys := m.Keys()
	seen := make(map[string]bool)
	var cols []string
	for _, row := range m {
		for c := range row {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	slices.Sort(cols)

	rows := make([][]string, len(keys))
	for i, from := range keys {
		row := []string{from}
		for _, to := range cols {
			cell := ""
			if d, ok := m[from][to]; ok {
				cell = d.String()
			}
			row = append(row, cell)
		}
		rows[i] = row
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(append([]string{""}, cols...)...).
		Rows(rows...).
		Render()
}
