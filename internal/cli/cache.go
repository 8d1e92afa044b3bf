package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sparklines/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newStatus(cmd.OutOrStdout())
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				out.info("Cache is empty")
				return nil
			}

			count, size, err := clearDir(dir)
			if err != nil {
				return err
			}
			out.success("Cleared %d cached artifacts (%s)", count, humanize.Bytes(uint64(size)))
			out.detail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePruneCommand creates the "cache prune" subcommand.
func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newStatus(cmd.OutOrStdout())
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				out.info("Cache is empty")
				return nil
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			files, size, err := fc.Prune()
			if err != nil {
				return fmt.Errorf("prune %s: %w", dir, err)
			}
			if files == 0 {
				out.info("Nothing to prune")
				return nil
			}
			out.success("Pruned %d expired artifacts (%s)", files, humanize.Bytes(uint64(size)))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// clearDir removes every file below dir and then the emptied
// subdirectories. dir itself is kept.
func clearDir(dir string) (count int, size int64, err error) {
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || path == dir || info.IsDir() {
			return nil
		}
		if os.Remove(path) == nil {
			count++
			size += info.Size()
		}
		return nil
	})
	if err != nil {
		return count, size, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return count, size, err
	}
	for _, e := range entries {
		if e.IsDir() {
			_ = os.Remove(filepath.Join(dir, e.Name()))
		}
	}
	return count, size, nil
}
