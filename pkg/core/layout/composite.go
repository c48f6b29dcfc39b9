package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/instantview/pkg/core/geom"
	"github.com/matzehuels/instantview/pkg/core/media"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/core/text"
)

// Post embed metrics.
const (
	embedVerticalInset = 4
	embedLineInset     = 20
	embedItemSpacing   = 10
	embedCaptionGap    = 14
	avatarSide         = 50
	avatarInset        = 62
	avatarTop          = 6
	avatarTopNoDate    = 11
	railWidth          = 3
)

func (e *Engine) layoutPostEmbed(v page.PostEmbed, p Params, counter *MediaCounter) Result {
	w, inset := p.BoundingWidth, p.HorizontalInset
	h := float64(embedVerticalInset)
	var items []Item
	var textInset float64

	if !text.IsEmpty(v.Author) {
		var verticalInset float64
		if v.Avatar != nil {
			if _, ok := e.resolveImage(*v.Avatar); ok {
				items = append(items, MediaItem{
					Box:     Box{Rect: geom.Rect{X: inset + embedLineInset + 1, Y: h - 2, Width: avatarSide, Height: avatarSide}},
					Media:   *v.Avatar,
					Kind:    media.KindImage,
					Index:   -1,
					Rounded: true,
				})
				textInset = avatarInset
				verticalInset = avatarTop
				if v.Date == 0 {
					verticalInset += avatarTopNoDate
				}
			} else {
				e.debug("unresolved avatar", "media", *v.Avatar)
			}
		}

		styles := e.presentation.styles(catParagraph).Push(text.Bolded())
		if author, ok := e.textItem(v.Author, styles, w-2*inset-embedLineInset-textInset, text.AlignNatural); ok {
			items = append(items, author.translated(inset+embedLineInset+textInset, h+verticalInset))
			h += author.Rect.Height
		}
		h += verticalInset
	}

	if v.Date != 0 {
		if len(items) > 0 {
			h += embedItemSpacing
		}
		styles := e.presentation.styles(catCaption)
		if date, ok := e.textItem(text.Plain(e.formatDate(v.Date)), styles, w-2*inset-embedLineInset-textInset, text.AlignNatural); ok {
			items = append(items, date.translated(inset+embedLineInset+textInset, h))
			h += date.Rect.Height
		}
	}

	if len(items) > 0 {
		h += embedItemSpacing
	}

	child := Params{BoundingWidth: w - 2*inset - embedLineInset}
	body := e.stack(v.Blocks, child, counter, true, false)
	items = append(items, body.FlattenedItems(geom.Point{X: inset + embedLineInset, Y: h})...)
	h += body.ContentSize.Height + embedVerticalInset

	items = append(items, rail(inset, h, e.presentation.AccentColor))
	items, h = e.captioned(items, v.Caption, v.Credit, p, inset, false, h, embedCaptionGap)
	return Result{ContentSize: geom.Size{Width: w, Height: h}, Items: items}
}

func rail(x, height float64, color text.Color) ShapeItem {
	return ShapeItem{
		Box:        Box{Rect: geom.Rect{X: x, Width: railWidth, Height: height}},
		ShapeFrame: geom.Rect{Width: railWidth, Height: height},
		Shape:      ShapeRoundLine,
		Color:      color,
	}
}

// List metrics.
const (
	listOrderedSpacing   = 7
	listUnorderedSpacing = 20
	listRowSpacing       = 20
	bulletWidth          = 6
	bulletHeight         = 12
)

func (e *Engine) layoutList(v page.List, p Params, counter *MediaCounter) Result {
	w, inset := p.BoundingWidth, p.HorizontalInset
	if len(v.Items) == 0 {
		return emptyResult(w)
	}
	styles := e.presentation.styles(catParagraph)

	var labels []TextItem
	var indexWidth float64
	spacing := float64(listUnorderedSpacing)
	if v.Ordered {
		spacing = listOrderedSpacing
		labels = make([]TextItem, len(v.Items))
		for i := range v.Items {
			label, ok := e.textItem(text.Plain(fmt.Sprintf("%d.", i+1)), styles, w-2*inset, text.AlignNatural)
			if !ok {
				continue
			}
			labels[i] = label
			indexWidth = math.Max(indexWidth, label.Rect.Width)
		}
	}

	textX := inset + spacing + indexWidth
	textWidth := w - 2*inset - spacing - indexWidth

	var items []Item
	var h float64
	var drawn int
	for i, row := range v.Items {
		body, height := e.listRow(row, styles, textWidth, counter)
		if height == 0 {
			continue
		}
		if drawn > 0 {
			h += listRowSpacing
		}
		drawn++

		switch {
		case !v.Ordered:
			items = append(items, ShapeItem{
				Box:        Box{Rect: geom.Rect{X: inset, Y: h, Width: bulletWidth, Height: bulletHeight}},
				ShapeFrame: geom.Rect{Y: 3, Width: bulletWidth, Height: bulletWidth},
				Shape:      ShapeEllipse,
				Color:      e.presentation.TextColor,
			})
		case len(labels[i].Lines) > 0:
			items = append(items, rightAligned(labels[i], indexWidth).translated(inset, h))
		}
		for _, it := range body {
			items = append(items, it.translated(textX, h))
		}
		h += height
	}
	if drawn == 0 {
		return emptyResult(w)
	}
	return Result{ContentSize: geom.Size{Width: w, Height: h}, Items: items}
}

// listRow lays out one row at the origin of the text column. Block rows
// stack their blocks without outer gaps; rows with nothing to show fall
// back to a single blank line.
func (e *Engine) listRow(row page.ListItem, styles text.StyleStack, width float64, counter *MediaCounter) ([]Item, float64) {
	t := row.Text
	if len(row.Blocks) > 0 {
		r := e.stack(row.Blocks, Params{BoundingWidth: width}, counter, false, false)
		if r.ContentSize.Height > 0 {
			return r.Items, r.ContentSize.Height
		}
		t = nil
	}
	if text.IsEmpty(t) {
		t = text.Plain(" ")
	}
	item, ok := e.textItem(t, styles, width, text.AlignNatural)
	if !ok {
		return nil, 0
	}
	return []Item{item}, item.Rect.Height
}

// rightAligned widens a single-line label to width and pushes its line to
// the right edge.
func rightAligned(label TextItem, width float64) TextItem {
	lines := make([]text.Line, len(label.Lines))
	for i, l := range label.Lines {
		l.Frame.X = width - l.Frame.Width
		lines[i] = l
	}
	label.Lines = lines
	label.Rect.Width = width
	label.Alignment = text.AlignRight
	return label
}

// Quote metrics.
const (
	quoteMargin     = 4
	quoteTextInset  = 20
	quoteCaptionGap = 14
)

func (e *Engine) layoutQuote(body, caption text.RichText, p Params, pull bool) Result {
	w, inset := p.BoundingWidth, p.HorizontalInset
	if text.IsEmpty(body) && text.IsEmpty(caption) {
		return emptyResult(w)
	}
	styles := e.presentation.styles(catQuote)
	h := float64(quoteMargin)
	var items []Item

	x, width, align := inset+quoteTextInset, w-2*inset-quoteTextInset, text.AlignNatural
	if pull {
		x, width, align = inset, w-2*inset, text.AlignCenter
	}

	if item, ok := e.textItem(body, styles, width, align); ok {
		if pull {
			x = math.Floor((w - item.Rect.Width) / 2)
		}
		items = append(items, item.translated(x, h))
		h += item.Rect.Height
	}

	if pull {
		items, h = e.caption(items, caption, p, inset, true, h, quoteCaptionGap)
	} else {
		items, h = e.caption(items, caption, p, inset+quoteTextInset, false, h, quoteCaptionGap)
	}
	h += quoteMargin

	if !pull {
		items = append([]Item{rail(inset, h, e.presentation.AccentColor)}, items...)
	}
	return Result{ContentSize: geom.Size{Width: w, Height: h}, Items: items}
}

// Details metrics.
const (
	detailsMinTitleHeight = 44
	detailsTitlePadding   = 13
	detailsArrowWidth     = 32
)

// layoutDetails lays out a collapsible section: a header row with the
// title, then the children stacked at the full width. Children keep the
// shared media counter but number nested details from zero. The block is as
// tall as the header when collapsed.
func (e *Engine) layoutDetails(v page.Details, p Params, counter *MediaCounter) Result {
	w, inset := p.BoundingWidth, p.HorizontalInset
	index := counter.nextDetails()

	item := DetailsItem{Index: index, Expanded: v.Expanded, TitleHeight: detailsMinTitleHeight}
	if title, ok := e.textItem(v.Title, e.presentation.styles(catParagraph), w-2*inset-detailsArrowWidth, text.AlignNatural); ok {
		item.TitleHeight = math.Max(detailsMinTitleHeight, title.Rect.Height+2*detailsTitlePadding)
		item.Title = title.translated(inset+detailsArrowWidth, math.Floor((item.TitleHeight-title.Rect.Height)/2)).(TextItem)
	}

	outer := counter.details
	counter.details = 0
	child := Params{BoundingWidth: w, HorizontalInset: inset, InsetBetweenMaxWidth: p.InsetBetweenMaxWidth}
	body := e.stack(v.Blocks, child, counter, true, true)
	counter.details = outer

	item.Items = body.FlattenedItems(geom.Point{Y: item.TitleHeight})
	item.ContentHeight = body.ContentSize.Height
	item.Rect = geom.Rect{Width: w, Height: item.TitleHeight}
	if v.Expanded {
		item.Rect.Height += item.ContentHeight
	}
	return Result{ContentSize: item.Rect.Size(), Items: []Item{item}}
}
