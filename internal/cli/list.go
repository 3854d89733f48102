package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/algotrace/pkg/algorithms"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), algorithmTable(algorithms.All()))
			return nil
		},
	}
}

func algorithmTable(infos []algorithms.Info) string {
	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{info.Name, info.Title, direction(info), requiredParams(info), info.Summary}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Algorithm", "Edges", "Needs", "Summary").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleHighlight
			case col == 4:
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

func direction(info algorithms.Info) string {
	if info.Directed {
		return "directed"
	}
	return "undirected"
}

func requiredParams(info algorithms.Info) string {
	var need []string
	if info.NeedsStart {
		need = append(need, "--start")
	}
	if info.NeedsEnd {
		need = append(need, "--end")
	}
	if len(need) == 0 {
		return "-"
	}
	return strings.Join(need, " ")
}
