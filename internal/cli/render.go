package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/errors"
	"github.com/matzehuels/instantview/pkg/pipeline"
)

// renderCommand creates the render command for drawing layouts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		flags      layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render [page.json|page.toml|page.layout.json]",
		Short: "Draw a page as SVG, PNG, PDF, JSON or DOT",
		Long: `Draw a page as SVG, PNG, PDF, JSON or DOT.

The input is either a page document, which is laid out first, or a
layout.json file written by 'layout'. The dot format diagrams the block tree
and needs a page document.

PNG and PDF output use rsvg-convert when installed. Pass --raster to paint
PNGs in-process instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&flags.opts.Labels, "labels", false, "outline and label every item")
	cmd.Flags().Float64Var(&flags.opts.Grid, "grid", 0, "draw a background grid with this step")
	cmd.Flags().BoolVar(&flags.opts.Fonts, "fonts", false, "embed the Go fonts in SVG output")
	cmd.Flags().BoolVar(&flags.opts.Raster, "raster", false, "paint PNG output without rsvg-convert")
	cmd.Flags().Float64Var(&flags.opts.Scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&flags.opts.Detailed, "detailed", false, "show block text excerpts (dot)")
	flags.register(cmd)

	return cmd
}

// runRender renders every requested format and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input, output string, flags layoutFlags) error {
	opts := flags.opts
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	artifacts, stats, err := c.renderArtifacts(ctx, input, opts, flags.noCache)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := outputPath(output, input, format, len(opts.Formats) == 1)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	if stats != nil {
		printStats(stats.Stats.BlockCount, stats.Stats.ItemCount, stats.CacheInfo.LayoutHit && stats.CacheInfo.RenderHit)
	}
	return nil
}

// renderArtifacts runs the pipeline on a page document, or renders a saved
// layout directly. The result is nil for saved layouts.
func (c *CLI) renderArtifacts(ctx context.Context, input string, opts pipeline.Options, noCache bool) (map[string][]byte, *pipeline.Result, error) {
	if isLayoutFile(input) {
		data, err := os.ReadFile(input)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", input)
			}
			return nil, nil, fmt.Errorf("read %s: %w", input, err)
		}
		c.Logger.Debug("rendering saved layout", "path", input, "formats", opts.Formats)
		artifacts, err := pipeline.RenderFromLayoutData(ctx, data, page.Page{}, opts)
		return artifacts, nil, err
	}

	if err := readDocument(input, &opts); err != nil {
		return nil, nil, err
	}
	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	return res.Artifacts, res, nil
}
