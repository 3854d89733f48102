package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/algotrace/pkg/listing"
)

var (
	lineNumberStyle = lipgloss.NewStyle().Foreground(colorDim)
	lineCurrent     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// codeCommand creates the code command, which prints a pseudocode listing.
func (c *CLI) codeCommand() *cobra.Command {
	var highlight int

	cmd := &cobra.Command{
		Use:               "code <algorithm>",
		Short:             "Print the pseudocode listing of an algorithm",
		Example:           "  algotrace code dijkstra --line 7",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeAlgorithms,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatListing(listing.Lookup(args[0]), highlight))
			return nil
		},
	}

	cmd.Flags().IntVarP(&highlight, "line", "l", 0, "highlight a 1-based line")
	return cmd
}

// formatListing numbers lines from 1 and marks the highlighted one.
func formatListing(lines []string, highlight int) string {
	width := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, line := range lines {
		n := i + 1
		marker, style := "  ", lipgloss.NewStyle()
		if n == highlight {
			marker, style = "▸ ", lineCurrent
		}
		fmt.Fprintf(&b, "%s%s  %s\n", marker, lineNumberStyle.Render(fmt.Sprintf("%*d", width, n)), style.Render(line))
	}
	return b.String()
}
