package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/instantview/pkg/core/media"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/core/render"
	"github.com/matzehuels/instantview/pkg/core/text"
)

// Options configures outline rendering.
type Options struct {
	// Detailed adds a text excerpt or media reference to each node label.
	// When false, only the block kind is shown.
	Detailed bool
	// MaxExcerpt bounds excerpt length in runes (default 40).
	MaxExcerpt int
}

// RootID is the node ID of the page itself.
const RootID = "page"

// ToDOT converts the block tree of pg to Graphviz DOT format.
// Node IDs are dotted paths of child indices ("b0", "b3.1").
func ToDOT(pg page.Page, opts Options) string {
	if opts.MaxExcerpt <= 0 {
		opts.MaxExcerpt = 40
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	root := "page"
	if pg.URL != "" {
		root += "\n" + pg.URL
	}
	fmt.Fprintf(&buf, "  %q [label=%q, shape=folder];\n", RootID, root)

	w := writer{buf: &buf, media: pg.Media, opts: opts}
	w.blocks(RootID, "b", pg.Blocks)

	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf   *bytes.Buffer
	media media.Table
	opts  Options
}

func (w writer) blocks(parent, prefix string, bs []page.Block) {
	for i, b := range bs {
		if b == nil {
			continue
		}
		id := fmt.Sprintf("%s%d", prefix, i)
		attrs := []string{fmt.Sprintf("label=%q", w.label(b))}
		attrs = append(attrs, w.style(b)...)
		fmt.Fprintf(w.buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
		fmt.Fprintf(w.buf, "  %q -> %q;\n", parent, id)
		w.blocks(id, id+".", page.Children(b))
	}
}

func (w writer) label(b page.Block) string {
	kind := string(b.Kind())
	if u, ok := b.(page.Unsupported); ok && u.Name != "" {
		kind += " (" + u.Name + ")"
	}
	if !w.opts.Detailed {
		return kind
	}
	if detail := w.detail(b); detail != "" {
		return kind + "\n" + detail
	}
	return kind
}

func (w writer) detail(b page.Block) string {
	switch v := b.(type) {
	case page.Image:
		return "media: " + string(v.Media)
	case page.Video:
		return "media: " + string(v.Media)
	case page.Audio:
		return "media: " + string(v.Media)
	case page.Anchor:
		return "#" + v.Name
	case page.WebEmbed:
		return v.URL
	case page.ChannelBanner:
		if v.Channel != nil {
			return v.Channel.Title
		}
	case page.List:
		return fmt.Sprintf("%d items", len(v.Items))
	case page.AuthorDate:
		return w.excerpt(v.Author)
	case page.PostEmbed:
		return w.excerpt(v.Author)
	case page.Details:
		return w.excerpt(v.Title)
	}
	if t, ok := blockText(b); ok {
		return w.excerpt(t)
	}
	return ""
}

func blockText(b page.Block) (text.RichText, bool) {
	switch v := b.(type) {
	case page.Title:
		return v.Text, true
	case page.Subtitle:
		return v.Text, true
	case page.Kicker:
		return v.Text, true
	case page.Header:
		return v.Text, true
	case page.Subheader:
		return v.Text, true
	case page.Paragraph:
		return v.Text, true
	case page.Preformatted:
		return v.Text, true
	case page.Footer:
		return v.Text, true
	case page.BlockQuote:
		return v.Text, true
	case page.PullQuote:
		return v.Text, true
	}
	return nil, false
}

func (w writer) excerpt(t text.RichText) string {
	s := strings.Join(strings.Fields(text.PlainString(t)), " ")
	r := []rune(s)
	if len(r) <= w.opts.MaxExcerpt {
		return s
	}
	return string(r[:w.opts.MaxExcerpt-1]) + "…"
}

func (w writer) style(b page.Block) []string {
	if _, ok := b.(page.Unsupported); ok {
		return []string{"style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black"}
	}
	if id, ok := mediaRef(b); ok {
		if _, found := w.media.Lookup(id); !found {
			return []string{"style=\"rounded,filled,dashed\"", "fillcolor=mistyrose", "color=red"}
		}
	}
	return nil
}

func mediaRef(b page.Block) (media.ID, bool) {
	switch v := b.(type) {
	case page.Image:
		return v.Media, true
	case page.Video:
		return v.Media, true
	case page.Audio:
		return v.Media, true
	}
	return "", false
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
