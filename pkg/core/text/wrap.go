package text

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/matzehuels/instantview/pkg/core/geom"
)

// Metrics reports glyph advances and line heights for resolved attributes.
// It is the only thing a measurer has to supply to reuse [Wrap].
type Metrics interface {
	Advance(s string, a Attributes) float64
	LineHeight(a Attributes) float64
}

type piece struct {
	text  string
	attrs Attributes
}

// Wrap breaks runs into lines no wider than maxWidth using Unicode line
// break opportunities (UAX #14). Segments that do not fit on a line of their
// own are split between grapheme clusters. Widths below one point are
// treated as one point.
func Wrap(runs []Run, maxWidth float64, m Metrics) Box {
	if maxWidth < 1 {
		maxWidth = 1
	}
	w := wrapper{max: maxWidth, m: m}

	var full strings.Builder
	ends := make([]int, len(runs))
	for i, r := range runs {
		full.WriteString(r.Text)
		ends[i] = full.Len()
	}

	rest := full.String()
	offset, state := 0, -1
	for len(rest) > 0 {
		var seg string
		var must bool
		seg, rest, must, state = uniseg.FirstLineSegmentInString(rest, state)
		pieces := slicePieces(runs, ends, offset, offset+len(seg))
		offset += len(seg)

		visible := w.width(trimTrailing(pieces))
		if len(w.cur) > 0 && w.advance+visible > w.max {
			w.commit()
		}
		w.place(pieces, visible)
		if must {
			w.commit()
		}
	}
	w.commit()

	var box Box
	for _, l := range w.lines {
		box.Size.Width = max(box.Size.Width, l.Frame.Width)
	}
	box.Size.Height = w.y
	box.Lines = w.lines
	return box
}

type wrapper struct {
	max     float64
	m       Metrics
	cur     []piece
	advance float64
	y       float64
	lines   []Line
}

func (w *wrapper) width(ps []piece) float64 {
	var sum float64
	for _, p := range ps {
		sum += w.m.Advance(p.text, p.attrs)
	}
	return sum
}

// place appends a segment to the current line, splitting it by grapheme
// cluster when it cannot fit on an empty line.
func (w *wrapper) place(ps []piece, visible float64) {
	if len(w.cur) > 0 || visible <= w.max {
		w.cur = append(w.cur, ps...)
		w.advance += w.width(ps)
		return
	}
	for _, p := range ps {
		rest, state := p.text, -1
		for len(rest) > 0 {
			var cluster string
			cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
			cw := w.m.Advance(cluster, p.attrs)
			if len(w.cur) > 0 && !isSpace(cluster) && w.advance+cw > w.max {
				w.commit()
			}
			w.cur = append(w.cur, piece{text: cluster, attrs: p.attrs})
			w.advance += cw
		}
	}
}

func (w *wrapper) commit() {
	if len(w.cur) == 0 {
		return
	}
	var height float64
	for _, p := range w.cur {
		height = max(height, w.m.LineHeight(p.attrs))
	}
	trimmed := trimTrailing(w.cur)
	width := min(w.width(trimmed), w.max)

	w.lines = append(w.lines, Line{
		Frame: geom.Rect{Y: w.y, Width: width, Height: height},
		Runs:  mergePieces(trimmed),
	})
	w.y += height
	w.cur = nil
	w.advance = 0
}

// slicePieces returns the parts of runs covering bytes [start, end) of their
// concatenation; ends holds each run's end offset.
func slicePieces(runs []Run, ends []int, start, end int) []piece {
	var out []piece
	runStart := 0
	for i, r := range runs {
		lo, hi := max(start, runStart), min(end, ends[i])
		if lo < hi {
			out = append(out, piece{text: r.Text[lo-runStart : hi-runStart], attrs: r.Attrs})
		}
		runStart = ends[i]
	}
	return out
}

func trimTrailing(ps []piece) []piece {
	out := append([]piece(nil), ps...)
	for len(out) > 0 {
		last := &out[len(out)-1]
		last.text = strings.TrimRight(last.text, " \t\r\n")
		if last.text != "" {
			break
		}
		out = out[:len(out)-1]
	}
	return out
}

func mergePieces(ps []piece) []Run {
	var runs []Run
	for _, p := range ps {
		if p.text == "" {
			continue
		}
		if n := len(runs); n > 0 && runs[n-1].Attrs == p.attrs {
			runs[n-1].Text += p.text
			continue
		}
		runs = append(runs, Run{Text: p.text, Attrs: p.attrs})
	}
	return runs
}

func isSpace(cluster string) bool {
	return strings.TrimSpace(cluster) == ""
}
