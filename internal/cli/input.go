package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/algotrace/pkg/algorithms"
	"github.com/matzehuels/algotrace/pkg/engine"
	"github.com/matzehuels/algotrace/pkg/graph"
)

// traceFlags are the flags shared by commands that run an algorithm.
type traceFlags struct {
	algorithm string
	start     string
	end       string
	directed  bool
	noCache   bool
	refresh   bool
}

func (f *traceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "algorithm to run (see 'algotrace list')")
	cmd.Flags().StringVarP(&f.start, "start", "s", "", "start node, or flow source (default: first node)")
	cmd.Flags().StringVarP(&f.end, "end", "e", "", "goal node for astar, sink for ford-fulkerson")
	cmd.Flags().BoolVar(&f.directed, "directed", false, "treat edges as directed (floyd-warshall)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the execution cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached executions and rerun")
	_ = cmd.MarkFlagRequired("algorithm")
	_ = cmd.RegisterFlagCompletionFunc("algorithm", completeAlgorithms)
}

func (f traceFlags) options() engine.Options {
	return engine.Options{
		Algorithm: f.algorithm,
		Params: algorithms.Params{
			Start:    f.start,
			End:      f.end,
			Directed: f.directed,
		},
		Refresh: f.refresh,
	}
}

// isDirected reports whether the chosen algorithm follows edge direction.
func (f traceFlags) isDirected() bool {
	info, err := algorithms.Describe(f.algorithm)
	return f.directed || (err == nil && info.Directed)
}

// trace loads the graph at path and runs the selected algorithm on it.
func (c *CLI) trace(ctx context.Context, path string, f traceFlags) (graph.Data, *engine.Result, error) {
	logger := loggerFromContext(ctx)

	d, err := graph.ReadFile(path)
	if err != nil {
		return graph.Data{}, nil, err
	}
	logger.Debug("loaded graph", "path", path, "nodes", len(d.Nodes), "edges", len(d.Edges))

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return graph.Data{}, nil, err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Run(ctx, d, f.options())
	if err != nil {
		return graph.Data{}, nil, err
	}
	prog.done(fmt.Sprintf("Recorded %d steps", len(res.Execution.Steps)))
	return d, res, nil
}

func completeAlgorithms(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return algorithms.Names(), cobra.ShellCompDirectiveNoFileComp
}
