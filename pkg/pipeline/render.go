package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/core/render/outline"
	"github.com/matzehuels/instantview/pkg/core/render/sink"
	"github.com/matzehuels/instantview/pkg/errors"
	"github.com/matzehuels/instantview/pkg/view"
)

// Render generates output artifacts in the requested formats. pg is only
// read for the dot format, which diagrams the block tree.
func Render(ctx context.Context, l view.Layout, pg page.Page, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, l, pg, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, l view.Layout, pg page.Page, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)
	switch format {
	case FormatJSON:
		return sink.RenderJSON(l, buildJSONOptions(pg, opts)...)
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...)}
		if opts.Raster {
			pngOpts = append(pngOpts, sink.WithRaster())
		}
		return sink.RenderPNG(ctx, l, pngOpts...)
	case FormatPDF:
		return sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
	case FormatDOT:
		if pg.Blocks == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "dot output needs the page document")
		}
		return []byte(outline.ToDOT(pg, outline.Options{Detailed: opts.Detailed})), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.Grid > 0 {
		svgOpts = append(svgOpts, sink.WithGrid(opts.Grid))
	}
	if opts.Fonts {
		svgOpts = append(svgOpts, sink.WithEmbeddedFonts())
	}
	return svgOpts
}

func buildJSONOptions(pg page.Page, opts Options) []sink.JSONOption {
	var jsonOpts []sink.JSONOption
	if pg.URL != "" {
		jsonOpts = append(jsonOpts, sink.WithJSONURL(pg.URL))
	}
	if opts.Theme != "" && !IsThemeFile(opts.Theme) {
		jsonOpts = append(jsonOpts, sink.WithJSONTheme(opts.Theme))
	}
	if opts.Metrics != "" {
		jsonOpts = append(jsonOpts, sink.WithJSONMetrics(opts.Metrics))
	}
	return jsonOpts
}

// RenderFromLayoutData renders a serialized layout, such as one computed
// earlier and stored by the CLI's layout command.
func RenderFromLayoutData(ctx context.Context, data []byte, pg page.Page, opts Options) (map[string][]byte, error) {
	l, err := view.UnmarshalLayout(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse layout")
	}
	return Render(ctx, l, pg, opts)
}
