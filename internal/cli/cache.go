package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/instantview/pkg/cache"
)

// cacheCommand groups the subcommands that manage the local file cache used
// by layout, render and inspect.
func (c *CLI) cacheCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local document, layout and render cache",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "cache directory (default: the user cache dir)")

	open := func() (*cache.FileCache, error) {
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return nil, fmt.Errorf("get cache dir: %w", err)
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached entry",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fc, err := open()
				if err != nil {
					return err
				}
				n, err := fc.Clear()
				if err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				if n == 0 {
					printInfo("Cache is already empty")
				} else {
					printSuccess("Removed %d cached entries", n)
				}
				printDetail("%s", fc.Dir())
				return nil
			},
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show the number and size of cached entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fc, err := open()
				if err != nil {
					return err
				}
				n, size, err := fc.Usage()
				if err != nil {
					return fmt.Errorf("scan cache: %w", err)
				}
				printKeyValue("Directory", fc.Dir())
				printKeyValue("Entries", fmt.Sprint(n))
				printKeyValue("Size", formatBytes(size))
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fc, err := open()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), fc.Dir())
				return nil
			},
		},
	)
	return cmd
}

// formatBytes renders n with a binary unit, e.g. "1.5 KiB".
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
