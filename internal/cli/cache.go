package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/algotrace/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the execution cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached execution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := c.Config.CacheOptions()
			if err != nil {
				return err
			}
			ch, err := cache.Open(ctx, opts)
			if err != nil {
				return err
			}
			defer ch.Close()

			clr, ok := ch.(cache.Clearer)
			if !ok || opts.Backend == cache.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}
			if err := clr.Clear(ctx); err != nil {
				return err
			}

			printSuccess("Cache cleared")
			switch opts.Backend {
			case cache.BackendRedis:
				printDetail("Backend: redis")
			default:
				printDetail("Directory: %s", opts.Dir)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.Config.CacheOptions()
			if err != nil {
				return err
			}
			if opts.Backend != cache.BackendFile {
				printInfo("Cache backend is %s", opts.Backend)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.Dir)
			return nil
		},
	}
}
