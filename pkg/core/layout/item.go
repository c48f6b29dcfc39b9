package layout

import (
	"github.com/matzehuels/instantview/pkg/core/geom"
	"github.com/matzehuels/instantview/pkg/core/media"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/core/text"
)

// Item is one positioned, renderable element of a layout. The concrete types
// are [TextItem], [MediaItem], [SlideshowItem], [ShapeItem], [WebEmbedItem],
// [AnchorItem], [ChannelItem] and [DetailsItem]. Items are values:
// translating one yields a copy and never touches the original.
type Item interface {
	Frame() geom.Rect
	IsOverlay() bool

	translated(dx, dy float64) Item
	overlaid() Item
}

// Box carries the state every item shares.
type Box struct {
	Rect    geom.Rect `json:"frame"`
	Overlay bool      `json:"overlay,omitempty"`
}

// Frame returns the item's rectangle in the coordinate space of the pass
// that produced it.
func (b Box) Frame() geom.Rect { return b.Rect }

// IsOverlay reports whether the item belongs to a block that overlaps the
// block above it.
func (b Box) IsOverlay() bool { return b.Overlay }

// TextItem is a block of measured lines. Line frames are relative to the
// item frame.
type TextItem struct {
	Box
	Lines     []text.Line    `json:"lines"`
	Alignment text.Alignment `json:"alignment"`
	Links     *LinkCallbacks `json:"-"`
}

// MediaItem shows one image, video or audio control. Index is the gallery
// position, or -1 for non-interactive media such as avatars.
type MediaItem struct {
	Box
	Media    media.ID   `json:"media"`
	Kind     media.Kind `json:"kind"`
	Index    int        `json:"index"`
	Rounded  bool       `json:"rounded,omitempty"`
	Autoplay bool       `json:"autoplay,omitempty"`
	Loop     bool       `json:"loop,omitempty"`
}

// MediaRef is one page of a slideshow or one entry of the media gallery.
type MediaRef struct {
	Media media.ID   `json:"media"`
	Kind  media.Kind `json:"kind"`
	Index int        `json:"index"`
	Size  geom.Size  `json:"size"`
}

// SlideshowItem is a horizontally paged carousel.
type SlideshowItem struct {
	Box
	Medias []MediaRef `json:"medias"`
}

// Shape is the geometry a [ShapeItem] draws.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeEllipse
	ShapeRoundLine
)

var shapeNames = [...]string{"rect", "ellipse", "roundLine"}

// String returns the shape name.
func (s Shape) String() string {
	if int(s) >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "rect"
}

// ParseShape is the inverse of [Shape.String].
func ParseShape(name string) (Shape, bool) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return ShapeRect, false
}

// ShapeItem is a filled shape. ShapeFrame is relative to the item frame.
type ShapeItem struct {
	Box
	ShapeFrame geom.Rect  `json:"shapeFrame"`
	Shape      Shape      `json:"shape"`
	Color      text.Color `json:"color"`
}

// WebEmbedItem hosts embedded web content.
type WebEmbedItem struct {
	Box
	URL        string `json:"url,omitempty"`
	HTML       string `json:"html,omitempty"`
	Scrollable bool   `json:"scrollable,omitempty"`
}

// AnchorItem marks the position of a named anchor; its frame has zero
// height.
type AnchorItem struct {
	Box
	Name string `json:"name"`
}

// ChannelItem is the channel banner.
type ChannelItem struct {
	Box
	Channel page.ChannelRef `json:"channel"`
}

// DetailsItem is a collapsible section. Title and Items are relative to the
// item frame; Items start at TitleHeight. The frame covers the header only
// unless the section is expanded. Index numbers the section among its
// siblings at the same nesting level.
type DetailsItem struct {
	Box
	Title         TextItem `json:"title"`
	TitleHeight   float64  `json:"titleHeight"`
	ContentHeight float64  `json:"contentHeight"`
	Index         int      `json:"index"`
	Expanded      bool     `json:"expanded"`
	Items         []Item   `json:"-"`
}

func (i TextItem) translated(dx, dy float64) Item      { i.Rect = i.Rect.Offset(dx, dy); return i }
func (i MediaItem) translated(dx, dy float64) Item     { i.Rect = i.Rect.Offset(dx, dy); return i }
func (i SlideshowItem) translated(dx, dy float64) Item { i.Rect = i.Rect.Offset(dx, dy); return i }
func (i ShapeItem) translated(dx, dy float64) Item     { i.Rect = i.Rect.Offset(dx, dy); return i }
func (i WebEmbedItem) translated(dx, dy float64) Item  { i.Rect = i.Rect.Offset(dx, dy); return i }
func (i AnchorItem) translated(dx, dy float64) Item    { i.Rect = i.Rect.Offset(dx, dy); return i }
func (i ChannelItem) translated(dx, dy float64) Item   { i.Rect = i.Rect.Offset(dx, dy); return i }
func (i DetailsItem) translated(dx, dy float64) Item   { i.Rect = i.Rect.Offset(dx, dy); return i }

func (i TextItem) overlaid() Item      { i.Overlay = true; return i }
func (i MediaItem) overlaid() Item     { i.Overlay = true; return i }
func (i SlideshowItem) overlaid() Item { i.Overlay = true; return i }
func (i ShapeItem) overlaid() Item     { i.Overlay = true; return i }
func (i WebEmbedItem) overlaid() Item  { i.Overlay = true; return i }
func (i AnchorItem) overlaid() Item    { i.Overlay = true; return i }
func (i ChannelItem) overlaid() Item   { i.Overlay = true; return i }

func (i DetailsItem) overlaid() Item {
	i.Overlay = true
	i.Title.Overlay = true
	items := make([]Item, len(i.Items))
	for k, it := range i.Items {
		items[k] = it.overlaid()
	}
	i.Items = items
	return i
}

// Translate returns a copy of it moved by (dx, dy).
func Translate(it Item, dx, dy float64) Item { return it.translated(dx, dy) }
