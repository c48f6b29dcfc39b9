package sink

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/instantview/pkg/fonts"
	"github.com/matzehuels/instantview/pkg/view"
)

// Frame colors per item type.
var frameColors = map[string]string{
	view.TypeText:      "#4c8bf5",
	view.TypeMedia:     "#34a853",
	view.TypeSlideshow: "#a142f4",
	view.TypeShape:     "#5f6368",
	view.TypeWebEmbed:  "#f29900",
	view.TypeAnchor:    "#9aa0a6",
	view.TypeChannel:   "#ea4335",
	view.TypeDetails:   "#00897b",
}

const placeholderFill = "#eceff1"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	labels     bool
	frames     bool
	grid       float64
	fonts      bool
}

// WithBackground sets the page color (default white).
func WithBackground(hex string) SVGOption { return func(r *svgRenderer) { r.background = hex } }

// WithLabels annotates every item with its type. It implies [WithFrames].
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true; r.frames = true } }

// WithFrames outlines every item frame, text included.
func WithFrames() SVGOption { return func(r *svgRenderer) { r.frames = true } }

// WithGrid draws a background grid with the given step.
func WithGrid(step float64) SVGOption { return func(r *svgRenderer) { r.grid = step } }

// WithEmbeddedFonts inlines the Go fonts as @font-face rules, so the SVG
// renders identically without them installed.
func WithEmbeddedFonts() SVGOption { return func(r *svgRenderer) { r.fonts = true } }

// RenderSVG draws a wireframe of the layout.
func RenderSVG(l view.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	if r.fonts {
		renderFontFaces(&buf)
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	if r.grid > 0 {
		renderGrid(&buf, l.Width, l.Height, r.grid)
	}

	for _, it := range l.Items {
		r.renderItem(&buf, it, l.Serif)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderFontFaces(buf *bytes.Buffer) {
	buf.WriteString("  <defs><style>\n")
	for _, f := range fonts.Faces {
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; font-weight: %s; font-style: %s; src: url(data:font/ttf;base64,%s); }\n",
			f.Family(), f.Weight(), f.Style(), f.Base64())
	}
	buf.WriteString("  </style></defs>\n")
}

func renderGrid(buf *bytes.Buffer, w, h, step float64) {
	buf.WriteString(`  <g stroke="#e0e0e0" stroke-width="0.5">` + "\n")
	for x := step; x < w; x += step {
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f"/>`+"\n", x, x, h)
	}
	for y := step; y < h; y += step {
		fmt.Fprintf(buf, `    <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", y, w, y)
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderItem(buf *bytes.Buffer, it view.Item, serif bool) {
	color := frameColors[it.Type]
	switch it.Type {
	case view.TypeText:
		renderTextLines(buf, it, serif)
	case view.TypeMedia:
		if it.Rounded {
			fmt.Fprintf(buf, `  <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s" stroke="%s"/>`+"\n",
				it.X+it.Width/2, it.Y+it.Height/2, it.Width/2, it.Height/2, placeholderFill, color)
			break
		}
		renderPlaceholder(buf, it, color, mediaLabel(it))
	case view.TypeSlideshow:
		renderPlaceholder(buf, it, color, fmt.Sprintf("slideshow (%d)", len(it.Medias)))
		renderDots(buf, it, color)
	case view.TypeShape:
		renderShape(buf, it)
	case view.TypeWebEmbed:
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-dasharray="4 2"/>`+"\n",
			it.X, it.Y, it.Width, it.Height, placeholderFill, color)
		renderCenteredLabel(buf, it, cmp.Or(it.URL, "embed"))
	case view.TypeAnchor:
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="2 2"/>`+"\n",
			it.X, it.Y, it.X+it.Width, it.Y, color)
	case view.TypeChannel:
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.15" stroke="%s"/>`+"\n",
			it.X, it.Y, it.Width, it.Height, color, color)
		if it.Channel != nil {
			renderCenteredLabel(buf, it, it.Channel.Title)
		}
	case view.TypeDetails:
		r.renderDetails(buf, it, serif, color)
	}

	if r.frames && it.Type != view.TypeAnchor {
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="0.5"/>`+"\n",
			it.X, it.Y, it.Width, it.Height, color)
	}
	if r.labels {
		label := it.Type
		if it.Overlay {
			label += " (overlay)"
		}
		if it.Type == view.TypeAnchor {
			label += " #" + it.Name
		}
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="8" fill="%s">%s</text>`+"\n",
			it.X+2, it.Y+9, fonts.MonoFallback, color, escapeXML(label))
	}
}

// renderDetails draws the header band with a disclosure arrow, then the
// children when the section is expanded.
func (r *svgRenderer) renderDetails(buf *bytes.Buffer, it view.Item, serif bool, color string) {
	mid := it.Y + it.TitleHeight/2
	arrow := fmt.Sprintf("M%.1f %.1fL%.1f %.1fL%.1f %.1f", it.X+14, mid-4, it.X+20, mid+2, it.X+26, mid-4)
	if it.Expanded {
		arrow = fmt.Sprintf("M%.1f %.1fL%.1f %.1fL%.1f %.1f", it.X+14, mid+2, it.X+20, mid-4, it.X+26, mid+2)
	}
	fmt.Fprintf(buf, `  <path d="%s" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n", arrow, color)
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#c8c7cc" stroke-width="0.5"/>`+"\n",
		it.X, it.Y+it.TitleHeight, it.X+it.Width, it.Y+it.TitleHeight)
	if it.Title != nil {
		renderTextLines(buf, *it.Title, serif)
	}
	if !it.Expanded {
		return
	}
	for _, child := range it.Items {
		r.renderItem(buf, child, serif)
	}
}

func mediaLabel(it view.Item) string {
	if it.Index != nil && *it.Index >= 0 {
		return fmt.Sprintf("%s %s #%d", it.Kind, it.Media, *it.Index)
	}
	return it.Kind + " " + it.Media
}

func renderPlaceholder(buf *bytes.Buffer, it view.Item, color, label string) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s"/>`+"\n",
		it.X, it.Y, it.Width, it.Height, placeholderFill, color)
	fmt.Fprintf(buf, `  <path d="M%.1f %.1fL%.1f %.1fM%.1f %.1fL%.1f %.1f" stroke="%s" stroke-width="0.5"/>`+"\n",
		it.X, it.Y, it.X+it.Width, it.Y+it.Height, it.X+it.Width, it.Y, it.X, it.Y+it.Height, color)
	renderCenteredLabel(buf, it, label)
}

func renderDots(buf *bytes.Buffer, it view.Item, color string) {
	n := len(it.Medias)
	if n < 2 {
		return
	}
	const gap = 12.0
	x0 := it.X + it.Width/2 - gap*float64(n-1)/2
	for i := 0; i < n; i++ {
		fmt.Fprintf(buf, `  <circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>`+"\n", x0+gap*float64(i), it.Y+it.Height-12, color)
	}
}

func renderShape(buf *bytes.Buffer, it view.Item) {
	f := view.Rect{Width: it.Width, Height: it.Height}
	if it.ShapeFrame != nil {
		f = *it.ShapeFrame
	}
	x, y := it.X+f.X, it.Y+f.Y
	fill := cmp.Or(it.Color, "#000000")
	switch it.Shape {
	case "ellipse":
		fmt.Fprintf(buf, `  <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s"/>`+"\n",
			x+f.Width/2, y+f.Height/2, f.Width/2, f.Height/2, escapeXML(fill))
	case "roundLine":
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s"/>`+"\n",
			x, y, f.Width, f.Height, min(f.Width, f.Height)/2, escapeXML(fill))
	default:
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			x, y, f.Width, f.Height, escapeXML(fill))
	}
}

func renderCenteredLabel(buf *bytes.Buffer, it view.Item, label string) {
	if label == "" || it.Height < 12 {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="11" fill="#5f6368">%s</text>`+"\n",
		it.X+it.Width/2, it.Y+it.Height/2+4, fonts.MonoFallback, escapeXML(label))
}

func renderTextLines(buf *bytes.Buffer, it view.Item, serif bool) {
	for _, ln := range it.Lines {
		if len(ln.Runs) == 0 {
			continue
		}
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" xml:space="preserve">`, it.X+ln.X, baseline(it.Y+ln.Y, ln.Height, ln.Runs[0].Size))
		for _, run := range ln.Runs {
			wrapLink(buf, run.Link, func() {
				fmt.Fprintf(buf, `<tspan %s>%s</tspan>`, runAttrs(run, serif), escapeXML(run.Text))
			})
		}
		buf.WriteString("</text>\n")
	}
}

// baseline places text of the given size vertically centered in a line box.
func baseline(top, height, size float64) float64 {
	return top + (height+size*0.7)/2
}

func runAttrs(run view.Run, serif bool) string {
	family := fonts.SansFallback
	switch {
	case run.Fixed:
		family = fonts.MonoFallback
	case serif || run.Serif:
		family = fonts.SerifFallback
	}
	attrs := []string{
		fmt.Sprintf(`font-family="%s"`, escapeXML(family)),
		fmt.Sprintf(`font-size="%g"`, run.Size),
		fmt.Sprintf(`fill="%s"`, escapeXML(cmp.Or(run.Color, "#000000"))),
	}
	if run.Bold {
		attrs = append(attrs, `font-weight="bold"`)
	}
	if run.Italic {
		attrs = append(attrs, `font-style="italic"`)
	}
	var deco []string
	if run.Underline {
		deco = append(deco, "underline")
	}
	if run.Strike {
		deco = append(deco, "line-through")
	}
	if len(deco) > 0 {
		attrs = append(attrs, fmt.Sprintf(`text-decoration="%s"`, strings.Join(deco, " ")))
	}
	return strings.Join(attrs, " ")
}

func wrapLink(buf *bytes.Buffer, url string, fn func()) {
	if url != "" {
		fmt.Fprintf(buf, `<a href="%s">`, escapeXML(url))
	}
	fn()
	if url != "" {
		buf.WriteString("</a>")
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
