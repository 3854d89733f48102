package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/algotrace/pkg/errors"
	"github.com/matzehuels/algotrace/pkg/graph"
	"github.com/matzehuels/algotrace/pkg/render"
	"github.com/matzehuels/algotrace/pkg/render/dot"
	"github.com/matzehuels/algotrace/pkg/trace"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	trace   traceFlags
	step    int     // index of the last applied step; -1 means the final step
	format  string  // dot, svg, png or pdf
	output  string  // output file; "-" or empty DOT goes to stdout
	scale   float64 // PNG scale factor
	weights bool    // label edges with weights
}

// renderCommand creates the render command, which draws the graph state at
// one step of a trace.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{step: -1, format: render.FormatSVG, scale: 2.0, weights: true}

	cmd := &cobra.Command{
		Use:   "render <graph-file>",
		Short: "Render the graph state at a trace step",
		Long: `Run an algorithm and draw the graph as it looks after a given step, with node
states, distances and highlighted edges. DOT and SVG are produced in-process;
PNG and PDF additionally require librsvg (rsvg-convert).`,
		Example: `  algotrace render graph.json -a prim --step 4
  algotrace render graph.json -a dijkstra -s A -f png -o dijkstra.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(render.Formats, opts.format) {
				return errs.New(errs.ErrCodeInvalidInput, "invalid format: %s (must be one of %s)",
					opts.format, strings.Join(render.Formats, ", "))
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	opts.trace.register(cmd)
	cmd.Flags().IntVar(&opts.step, "step", opts.step, "render after this 0-based step (-1: final state)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, png, pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default derived from the graph file)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.weights, "weights", opts.weights, "label edges with their weights")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	ctx := cmd.Context()
	d, res, err := c.trace(ctx, path, opts.trace)
	if err != nil {
		return err
	}
	exec := res.Execution

	step, err := resolveStep(opts.step, len(exec.Steps))
	if err != nil {
		return err
	}
	frame := trace.Replay(d, exec.Steps[:step+1])
	dotOpts := dot.Options{
		Directed: opts.trace.isDirected(),
		Caption:  fmt.Sprintf("Step %d: %s", step, exec.Steps[step].Description),
		Weights:  opts.weights,
	}

	if opts.format == render.FormatDOT && (opts.output == "" || opts.output == "-") {
		fmt.Fprint(cmd.OutOrStdout(), dot.ToDOT(frame, dotOpts))
		return nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	data, err := renderFrame(frame, dotOpts, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	out := opts.output
	if out == "" {
		out = defaultRenderPath(path, exec.Algorithm, step, opts.format)
	}
	if err := errs.ValidatePath(out); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printSuccess("Rendered %s at step %d of %d", exec.Algorithm, step, len(exec.Steps))
	printStats(len(exec.Steps), res.CacheHit)
	printFile(out)
	return nil
}

func renderFrame(frame graph.Data, dotOpts dot.Options, opts renderOpts) ([]byte, error) {
	if opts.format == render.FormatDOT {
		return []byte(dot.ToDOT(frame, dotOpts)), nil
	}
	svg, err := dot.SVG(frame, dotOpts)
	if err != nil {
		return nil, err
	}
	return render.Convert(svg, opts.format, opts.scale)
}

// resolveStep maps -1 to the final step and rejects steps outside the trace.
func resolveStep(step, n int) (int, error) {
	if step == -1 {
		return n - 1, nil
	}
	if step < -1 || step >= n {
		return 0, errs.New(errs.ErrCodeInvalidInput, "step %d out of range (trace has %d steps)", step, n)
	}
	return step, nil
}

// defaultRenderPath derives "<graph>.<algorithm>.step<N>.<format>" next to
// the graph file.
func defaultRenderPath(graphPath, algorithm string, step int, format string) string {
	base := strings.TrimSuffix(graphPath, filepath.Ext(graphPath))
	return fmt.Sprintf("%s.%s.step%d.%s", base, algorithm, step, format)
}
