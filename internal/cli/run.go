package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/algotrace/pkg/errors"
	"github.com/matzehuels/algotrace/pkg/trace"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// runCommand creates the run command, which records and prints a trace.
func (c *CLI) runCommand() *cobra.Command {
	var (
		flags  traceFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "run <graph-file>",
		Short: "Run an algorithm and print its trace",
		Long: `Run an algorithm over a JSON or YAML graph file and print the recorded trace,
either as a step table or as the execution JSON.`,
		Example: `  algotrace run graph.json -a dijkstra -s A
  algotrace run graph.yaml -a ford-fulkerson -s S -e T --format json -o trace.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatTable && format != formatJSON {
				return errs.New(errs.ErrCodeInvalidInput, "invalid format: %s (must be 'table' or 'json')", format)
			}
			_, res, err := c.trace(cmd.Context(), args[0], flags)
			if err != nil {
				return err
			}

			if output != "" {
				if err := errs.ValidatePath(output); err != nil {
					return err
				}
				if err := writeExecutionFile(output, res.Execution); err != nil {
					return err
				}
				printSuccess("Recorded %s", res.Execution.Algorithm)
				printStats(len(res.Execution.Steps), res.CacheHit)
				printFile(output)
				printNewline()
				printNextStep("Step through it", fmt.Sprintf("algotrace play %s -a %s", args[0], res.Execution.Algorithm))
				return nil
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeExecution(out, res.Execution)
			}
			fmt.Fprintln(out, stepTable(res.Execution))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the execution JSON to a file")

	return cmd
}

func writeExecution(w io.Writer, exec *trace.Execution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exec)
}

func writeExecutionFile(path string, exec *trace.Execution) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeExecution(f, exec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// stepTable renders one row per step.
func stepTable(exec *trace.Execution) string {
	rows := make([][]string, len(exec.Steps))
	for i, s := range exec.Steps {
		rows[i] = []string{strconv.Itoa(s.ID), strconv.Itoa(s.CodeLine), string(s.Event), s.Description}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Line", "Event", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 2:
				return eventStyle(exec.Steps[row].Event)
			case col < 2:
				return StyleDim
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// eventStyle colors terminal events.
func eventStyle(ev trace.Event) lipgloss.Style {
	switch ev {
	case trace.EventComplete, trace.EventPathFound:
		return StyleSuccess
	case trace.EventNegativeCycle, trace.EventNoPath:
		return StyleWarning
	case trace.EventSnapshot:
		return StyleDim
	}
	return StyleHighlight
}
