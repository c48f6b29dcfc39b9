package layout

import (
	"math"

	"github.com/matzehuels/instantview/pkg/core/geom"
	"github.com/matzehuels/instantview/pkg/core/page"
)

// pageInset is the horizontal padding of top-level text.
const pageInset = 17

// Page lays out a whole page at width. The media counter starts at zero for
// every call. Pages that are not loaded yet, and non-positive widths,
// produce an empty result.
//
// When the engine has no media registry of its own, the page's media table
// is used.
func (e *Engine) Page(pg page.Page, width float64) Result {
	if !pg.Loaded || width <= 0 {
		return emptyResult(math.Max(width, 0))
	}

	eng := e
	if e.media == nil && pg.Media != nil {
		cp := *e
		cp.media = pg.Media
		eng = &cp
	}

	var ibmw float64
	if e.maxContentWidth > 0 {
		ibmw = math.Max(0, (width-e.maxContentWidth)/2)
	}
	p := Params{
		BoundingWidth:        width,
		HorizontalInset:      pageInset + ibmw,
		InsetBetweenMaxWidth: ibmw,
	}

	var counter MediaCounter
	r := eng.stack(pg.Blocks, p, &counter, true, true)
	e.debug("page laid out", "blocks", len(pg.Blocks), "items", len(r.Items), "height", r.ContentSize.Height, "medias", counter.Count())
	return r
}

// fold is the accumulator of a vertical stack of blocks.
type fold struct {
	height   float64
	previous page.Block
	last     Result
	items    []Item
}

// stack lays blocks out top to bottom with [SpacingBetween] gaps. Zero-height
// results (anchors) are placed at the current height without a gap and do
// not become the previous block. opening adds the gap above the first drawn
// block and closing the one below the last.
func (e *Engine) stack(blocks []page.Block, p Params, counter *MediaCounter, opening, closing bool) Result {
	var f fold
	for _, b := range blocks {
		spacing := SpacingBetween(f.previous, b)
		if f.previous == nil && !opening {
			spacing = 0
		}
		if _, ok := f.previous.(page.Cover); ok && spacing < 0 {
			spacing -= f.last.ContentSize.Height - firstItemHeight(f.last)
		}

		bp := p
		bp.Overlay = spacing < 0
		r := e.Block(b, bp, counter)

		if r.ContentSize.Height == 0 {
			f.items = append(f.items, r.FlattenedItems(geom.Point{Y: f.height})...)
			continue
		}
		f.items = append(f.items, r.FlattenedItems(geom.Point{Y: f.height + spacing})...)
		f.height += spacing + r.ContentSize.Height
		f.previous, f.last = b, r
	}
	if closing && f.previous != nil {
		f.height += SpacingBetween(f.previous, nil)
	}
	return Result{ContentSize: geom.Size{Width: p.BoundingWidth, Height: f.height}, Items: f.items}
}

func firstItemHeight(r Result) float64 {
	if len(r.Items) == 0 {
		return 0
	}
	return r.Items[0].Frame().Height
}
