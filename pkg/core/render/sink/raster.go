package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/matzehuels/instantview/pkg/fonts"
	"github.com/matzehuels/instantview/pkg/view"
)

// RasterOption configures [RenderRaster].
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	scale      float64
	background string
	frames     bool
}

// WithRasterScale sets the pixel density (default 1).
func WithRasterScale(s float64) RasterOption { return func(r *rasterRenderer) { r.scale = s } }

// WithRasterBackground sets the page color (default white).
func WithRasterBackground(hex string) RasterOption {
	return func(r *rasterRenderer) { r.background = hex }
}

// WithRasterFrames outlines every item frame.
func WithRasterFrames() RasterOption { return func(r *rasterRenderer) { r.frames = true } }

// maxRasterPixels bounds the canvas so a tall page cannot exhaust memory.
const maxRasterPixels = 64 << 20

// RenderRaster paints the layout into a PNG without external tools.
func RenderRaster(l view.Layout, opts ...RasterOption) ([]byte, error) {
	r := rasterRenderer{scale: 1, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}
	w := int(math.Ceil(l.Width * r.scale))
	h := int(math.Ceil(l.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: empty layout %vx%v", l.Width, l.Height)
	}
	if w*h > maxRasterPixels {
		return nil, fmt.Errorf("raster: %dx%d pixels exceeds the canvas limit", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetHexColor(r.background)
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	p := painter{dc: dc, faces: map[faceKey]font.Face{}}
	for _, it := range l.Items {
		p.item(it)
		if r.frames {
			dc.SetHexColor(cmp.Or(frameColors[it.Type], "#000000"))
			dc.SetLineWidth(0.5)
			dc.DrawRectangle(it.X, it.Y, it.Width, it.Height)
			dc.Stroke()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type faceKey struct {
	face fonts.Face
	size float64
}

// painter holds per-render state; gg contexts and font faces are not safe
// for concurrent use.
type painter struct {
	dc    *gg.Context
	faces map[faceKey]font.Face
}

func (p *painter) item(it view.Item) {
	dc := p.dc
	switch it.Type {
	case view.TypeText:
		p.text(it)
	case view.TypeMedia, view.TypeSlideshow, view.TypeWebEmbed:
		dc.SetHexColor(placeholderFill)
		if it.Rounded {
			dc.DrawEllipse(it.X+it.Width/2, it.Y+it.Height/2, it.Width/2, it.Height/2)
			dc.Fill()
			return
		}
		dc.DrawRectangle(it.X, it.Y, it.Width, it.Height)
		dc.Fill()
		dc.SetHexColor(frameColors[it.Type])
		dc.SetLineWidth(0.5)
		dc.DrawLine(it.X, it.Y, it.X+it.Width, it.Y+it.Height)
		dc.DrawLine(it.X+it.Width, it.Y, it.X, it.Y+it.Height)
		dc.Stroke()
	case view.TypeShape:
		f := view.Rect{Width: it.Width, Height: it.Height}
		if it.ShapeFrame != nil {
			f = *it.ShapeFrame
		}
		x, y := it.X+f.X, it.Y+f.Y
		dc.SetHexColor(cmp.Or(it.Color, "#000000"))
		switch it.Shape {
		case "ellipse":
			dc.DrawEllipse(x+f.Width/2, y+f.Height/2, f.Width/2, f.Height/2)
		case "roundLine":
			dc.DrawRoundedRectangle(x, y, f.Width, f.Height, math.Min(f.Width, f.Height)/2)
		default:
			dc.DrawRectangle(x, y, f.Width, f.Height)
		}
		dc.Fill()
	case view.TypeChannel:
		dc.SetRGBA(0.92, 0.26, 0.21, 0.15)
		dc.DrawRectangle(it.X, it.Y, it.Width, it.Height)
		dc.Fill()
	case view.TypeDetails:
		dc.SetHexColor(frameColors[it.Type])
		dc.SetLineWidth(1.5)
		mid := it.Y + it.TitleHeight/2
		if it.Expanded {
			dc.DrawLine(it.X+14, mid+2, it.X+20, mid-4)
			dc.DrawLine(it.X+20, mid-4, it.X+26, mid+2)
		} else {
			dc.DrawLine(it.X+14, mid-4, it.X+20, mid+2)
			dc.DrawLine(it.X+20, mid+2, it.X+26, mid-4)
		}
		dc.Stroke()
		dc.SetHexColor("#c8c7cc")
		dc.SetLineWidth(0.5)
		dc.DrawLine(it.X, it.Y+it.TitleHeight, it.X+it.Width, it.Y+it.TitleHeight)
		dc.Stroke()
		if it.Title != nil {
			p.text(*it.Title)
		}
		if it.Expanded {
			for _, child := range it.Items {
				p.item(child)
			}
		}
	case view.TypeAnchor:
		// Anchors are invisible in the painted page.
	}
}

func (p *painter) text(it view.Item) {
	for _, ln := range it.Lines {
		x := it.X + ln.X
		for _, run := range ln.Runs {
			face := p.face(fonts.Select(run.Bold, run.Italic, run.Fixed), run.Size)
			if face == nil {
				continue
			}
			p.dc.SetFontFace(face)
			p.dc.SetHexColor(cmp.Or(run.Color, "#000000"))
			y := baseline(it.Y+ln.Y, ln.Height, run.Size)
			p.dc.DrawString(run.Text, x, y)
			adv, _ := p.dc.MeasureString(run.Text)
			if run.Underline || run.Strike {
				p.dc.SetLineWidth(math.Max(1, run.Size/16))
				if run.Underline {
					p.dc.DrawLine(x, y+2, x+adv, y+2)
				}
				if run.Strike {
					p.dc.DrawLine(x, y-run.Size*0.3, x+adv, y-run.Size*0.3)
				}
				p.dc.Stroke()
			}
			x += adv
		}
	}
}

func (p *painter) face(f fonts.Face, size float64) font.Face {
	key := faceKey{f, size}
	if face, ok := p.faces[key]; ok {
		return face
	}
	ft, err := parsedFont(f)
	if err != nil {
		return nil
	}
	face := truetype.NewFace(ft, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
	p.faces[key] = face
	return face
}

var (
	parsedMu sync.Mutex
	parsed   = map[fonts.Face]*truetype.Font{}
)

// parsedFont caches parsed fonts across renders; a *truetype.Font is
// read-only after parsing.
func parsedFont(f fonts.Face) (*truetype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if ft, ok := parsed[f]; ok {
		return ft, nil
	}
	ft, err := truetype.Parse(f.TTF())
	if err != nil {
		return nil, err
	}
	parsed[f] = ft
	return ft, nil
}
