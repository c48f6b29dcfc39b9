package sink

import (
	"context"

	"github.com/matzehuels/instantview/pkg/core/render"
	"github.com/matzehuels/instantview/pkg/view"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
	raster  bool
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithRaster forces the pure-Go painter even when rsvg-convert is present.
func WithRaster() PNGOption {
	return func(r *pngRenderer) { r.raster = true }
}

// RenderPNG renders the layout as PNG. It converts the SVG wireframe with
// rsvg-convert when available and paints with [RenderRaster] otherwise.
func RenderPNG(ctx context.Context, l view.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.raster || !render.Available() {
		return RenderRaster(l, WithRasterScale(r.scale))
	}
	svg := RenderSVG(l, append([]SVGOption{WithEmbeddedFonts()}, r.svgOpts...)...)
	return render.ToPNG(ctx, svg, r.scale)
}
