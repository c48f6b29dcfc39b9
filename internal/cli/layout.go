package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/instantview/pkg/pipeline"
)

// layoutCommand creates the layout command for computing page layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [page.json|page.toml]",
		Short: "Compute the layout of a page document",
		Long: `Compute the layout of a page document.

The output is a layout.json file (same format as 'render -f json') listing
every positioned item. It can be drawn with 'render' or browsed with 'inspect'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the page, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, flags layoutFlags) error {
	opts := flags.opts
	if err := readDocument(input, &opts); err != nil {
		return err
	}
	opts.Formats = []string{pipeline.FormatJSON}
	opts.Logger = c.Logger

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %s at %gpt...", input, opts.Width))
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	path := outputPath(output, input, pipeline.FormatJSON, true)
	if err := os.WriteFile(path, res.Artifacts[pipeline.FormatJSON], 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(res.Stats.BlockCount, res.Stats.ItemCount, res.CacheInfo.LayoutHit)
	printKeyValue("Height", fmt.Sprintf("%.1fpt", res.Layout.Height))
	printNewline()
	printNextStep("Render", appName+" render "+path)

	return nil
}
