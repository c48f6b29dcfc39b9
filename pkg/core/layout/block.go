package layout

import (
	"math"

	"github.com/matzehuels/instantview/pkg/core/geom"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/core/text"
)

// Params is the context a single block is laid out in.
type Params struct {
	// BoundingWidth is the horizontal space available to the block.
	BoundingWidth float64
	// HorizontalInset pads text-bearing content on both sides. Full-bleed
	// media ignores it.
	HorizontalInset float64
	// IsCover switches media to aspect-fill with a clamped height.
	IsCover bool
	// FillToWidthAndHeight makes media fill a square cell (collages).
	FillToWidthAndHeight bool
	// InsetBetweenMaxWidth is the margin outside the maximum content width.
	InsetBetweenMaxWidth float64
	// Overlay is copied onto every produced item and has no geometric effect.
	Overlay bool
}

// Block lays out one block in block-local coordinates. It never fails:
// blocks that cannot be shown produce an empty result of width
// p.BoundingWidth and height 0. A nil counter starts a fresh one.
func (e *Engine) Block(b page.Block, p Params, counter *MediaCounter) Result {
	if counter == nil {
		counter = new(MediaCounter)
	}
	r := e.block(b, p, counter)
	if p.Overlay && len(r.Items) > 0 {
		items := make([]Item, len(r.Items))
		for i, it := range r.Items {
			items[i] = it.overlaid()
		}
		r.Items = items
	}
	return r
}

func (e *Engine) block(b page.Block, p Params, counter *MediaCounter) Result {
	switch v := b.(type) {
	case page.Cover:
		p.IsCover = true
		return e.block(v.Block, p, counter)
	case page.Title:
		return e.layoutText(v.Text, catTitle, p)
	case page.Subtitle:
		return e.layoutText(v.Text, catSubtitle, p)
	case page.Kicker:
		return e.layoutText(v.Text, catKicker, p)
	case page.Header:
		return e.layoutText(v.Text, catHeader, p)
	case page.Subheader:
		return e.layoutText(v.Text, catSubheader, p)
	case page.Paragraph:
		return e.layoutText(v.Text, catParagraph, p)
	case page.Footer:
		return e.layoutText(v.Text, catFooter, p)
	case page.Preformatted:
		return e.layoutPreformatted(v, p)
	case page.AuthorDate:
		return e.layoutText(e.byline(v.Author, v.Date), catCaption, p)
	case page.Image:
		return e.layoutImage(v, p, counter)
	case page.Video:
		return e.layoutVideo(v, p, counter)
	case page.Audio:
		return e.layoutAudio(v, p, counter)
	case page.WebEmbed:
		return e.layoutWebEmbed(v, p)
	case page.PostEmbed:
		return e.layoutPostEmbed(v, p, counter)
	case page.Collage:
		return e.layoutCollage(v, p, counter)
	case page.Slideshow:
		return e.layoutSlideshow(v, p, counter)
	case page.List:
		return e.layoutList(v, p, counter)
	case page.Details:
		return e.layoutDetails(v, p, counter)
	case page.BlockQuote:
		return e.layoutQuote(v.Text, v.Caption, p, false)
	case page.PullQuote:
		return e.layoutQuote(v.Text, v.Caption, p, true)
	case page.Divider:
		return e.layoutDivider(p)
	case page.Anchor:
		return Result{
			ContentSize: geom.Size{Width: p.BoundingWidth},
			Items:       []Item{AnchorItem{Box: Box{Rect: geom.Rect{Width: p.BoundingWidth}}, Name: v.Name}},
		}
	case page.ChannelBanner:
		return e.layoutChannelBanner(v, p)
	case page.Unsupported:
		e.debug("unsupported block", "name", v.Name)
	case nil:
	default:
		e.debug("unknown block", "kind", b.Kind())
	}
	return emptyResult(p.BoundingWidth)
}

// textItem measures t at width and returns an item at the origin whose
// frame hugs the measured lines. ok is false for empty text.
func (e *Engine) textItem(t text.RichText, styles text.StyleStack, width float64, align text.Alignment) (TextItem, bool) {
	box := e.measurer.Measure(t, styles, width)
	if box.IsEmpty() || len(box.Lines) == 0 {
		return TextItem{}, false
	}
	box = box.Align(align, box.Size.Width)
	item := TextItem{
		Box:       Box{Rect: geom.Rect{Width: box.Size.Width, Height: box.Size.Height}},
		Lines:     box.Lines,
		Alignment: align,
	}
	if e.links != nil && hasLinks(box.Lines) {
		item.Links = e.links
	}
	return item, true
}

func hasLinks(lines []text.Line) bool {
	for _, l := range lines {
		if len(l.Links()) > 0 {
			return true
		}
	}
	return false
}

// layoutText places one text block at (inset, 0).
func (e *Engine) layoutText(t text.RichText, c category, p Params) Result {
	item, ok := e.textItem(t, e.presentation.styles(c), p.BoundingWidth-2*p.HorizontalInset, text.AlignNatural)
	if !ok {
		return emptyResult(p.BoundingWidth)
	}
	return Result{
		ContentSize: geom.Size{Width: p.BoundingWidth, Height: item.Rect.Height},
		Items:       []Item{item.translated(p.HorizontalInset, 0)},
	}
}

const preformattedInset = 14

func (e *Engine) layoutPreformatted(v page.Preformatted, p Params) Result {
	item, ok := e.textItem(v.Text, e.presentation.styles(catPreformatted), p.BoundingWidth-2*p.HorizontalInset, text.AlignNatural)
	if !ok {
		return emptyResult(p.BoundingWidth)
	}
	h := item.Rect.Height + 2*preformattedInset
	bg := ShapeItem{
		Box:        Box{Rect: geom.Rect{Width: p.BoundingWidth, Height: h}},
		ShapeFrame: geom.Rect{Width: p.BoundingWidth, Height: h},
		Shape:      ShapeRect,
		Color:      e.presentation.CodeBackground,
	}
	return Result{
		ContentSize: geom.Size{Width: p.BoundingWidth, Height: h},
		Items:       []Item{bg, item.translated(p.HorizontalInset, preformattedInset)},
	}
}

func (e *Engine) layoutDivider(p Params) Result {
	w := math.Floor(p.BoundingWidth / 2)
	r := geom.Rect{X: math.Floor((p.BoundingWidth - w) / 2), Width: w, Height: 1}
	return Result{
		ContentSize: geom.Size{Width: p.BoundingWidth, Height: 1},
		Items: []Item{ShapeItem{
			Box:        Box{Rect: r},
			ShapeFrame: geom.Rect{Width: w, Height: 1},
			Shape:      ShapeRect,
			Color:      e.presentation.DividerColor,
		}},
	}
}

const channelBannerHeight = 40

func (e *Engine) layoutChannelBanner(v page.ChannelBanner, p Params) Result {
	if v.Channel == nil {
		return emptyResult(p.BoundingWidth)
	}
	ibmw := p.InsetBetweenMaxWidth
	return Result{
		ContentSize: geom.Size{Width: p.BoundingWidth, Height: channelBannerHeight},
		Items: []Item{ChannelItem{
			Box:     Box{Rect: geom.Rect{X: ibmw, Width: p.BoundingWidth - 2*ibmw, Height: channelBannerHeight}},
			Channel: *v.Channel,
		}},
	}
}

// caption appends a caption below top after gap and returns the new
// bottom. Centered captions sit at floor((W - w) / 2); others at the inset.
func (e *Engine) caption(items []Item, t text.RichText, p Params, x float64, centered bool, top, gap float64) ([]Item, float64) {
	if text.IsEmpty(t) {
		return items, top
	}
	width := p.BoundingWidth - 2*p.HorizontalInset
	if !centered {
		width = p.BoundingWidth - x - p.HorizontalInset
	}
	align := text.AlignNatural
	if centered {
		align = text.AlignCenter
	}
	item, ok := e.textItem(t, e.presentation.styles(catCaption), width, align)
	if !ok {
		return items, top
	}
	if centered {
		x = math.Floor((p.BoundingWidth - item.Rect.Width) / 2)
	}
	items = append(items, item.translated(x, top+gap))
	return items, top + gap + item.Rect.Height
}

// creditGap separates a credit line from the caption above it.
const creditGap = 10

// captioned appends a caption followed by its credit line. Without a caption
// the credit takes the caption's gap; the credit always sits at the inset.
func (e *Engine) captioned(items []Item, caption, credit text.RichText, p Params, x float64, centered bool, top, gap float64) ([]Item, float64) {
	items, h := e.caption(items, caption, p, x, centered, top, gap)
	if text.IsEmpty(credit) {
		return items, h
	}
	if h > top {
		gap = creditGap
	}
	item, ok := e.textItem(credit, e.presentation.styles(catCredit), p.BoundingWidth-2*p.HorizontalInset, text.AlignNatural)
	if !ok {
		return items, h
	}
	items = append(items, item.translated(p.HorizontalInset, h+gap))
	return items, h + gap + item.Rect.Height
}
