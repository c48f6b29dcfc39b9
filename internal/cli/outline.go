package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/instantview/pkg/core/render/outline"
	"github.com/matzehuels/instantview/pkg/errors"
	pkgio "github.com/matzehuels/instantview/pkg/io"
)

// outlineCommand creates the outline command for diagramming block trees.
func (c *CLI) outlineCommand() *cobra.Command {
	var (
		output string
		format string
		opts   outline.Options
	)

	cmd := &cobra.Command{
		Use:   "outline [page.json|page.toml]",
		Short: "Diagram the block tree of a page with Graphviz",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(format, "dot", "svg", "png", "pdf"); err != nil {
				return err
			}
			return c.runOutline(cmd.Context(), args[0], output, format, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.outline.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, pdf, dot")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show text excerpts and media references")
	cmd.Flags().IntVar(&opts.MaxExcerpt, "excerpt", 40, "excerpt length in characters")

	return cmd
}

func (c *CLI) runOutline(ctx context.Context, input, output, format string, opts outline.Options) error {
	if err := errors.ValidateDocumentFilename(input); err != nil {
		return err
	}
	prog := newProgress(c.Logger)
	pg, err := pkgio.Import(input)
	if err != nil {
		return err
	}
	dot := outline.ToDOT(pg, opts)

	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = outline.RenderSVG(ctx, dot)
	case "png":
		data, err = outline.RenderPNG(ctx, dot, 2)
	case "pdf":
		data, err = outline.RenderPDF(ctx, dot)
	}
	if err != nil {
		return fmt.Errorf("render outline: %w", err)
	}
	prog.done(fmt.Sprintf("Diagrammed %d blocks", len(pg.Blocks)))

	path := output
	if path == "" {
		path = basePath("", input) + ".outline." + format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	printSuccess("Outline complete")
	printFile(path)
	return nil
}
