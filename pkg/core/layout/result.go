package layout

import (
	"sort"

	"github.com/matzehuels/instantview/pkg/core/geom"
)

// Result is the output of one layout pass: a content size and the items
// positioned inside it. Origin is a hint for the caller and is not applied
// to the items. A Result is never modified after it is returned.
type Result struct {
	Origin      geom.Point `json:"origin"`
	ContentSize geom.Size  `json:"contentSize"`
	Items       []Item     `json:"-"`
}

// emptyResult is what every degraded block produces.
func emptyResult(width float64) Result {
	return Result{ContentSize: geom.Size{Width: width}}
}

// IsEmpty reports whether the result has neither height nor items.
func (r Result) IsEmpty() bool { return r.ContentSize.Height == 0 && len(r.Items) == 0 }

// FlattenedItems returns copies of the items translated by origin. The
// receiver's items are left unchanged.
func (r Result) FlattenedItems(origin geom.Point) []Item {
	out := make([]Item, len(r.Items))
	for i, it := range r.Items {
		out[i] = it.translated(origin.X, origin.Y)
	}
	return out
}

// ItemsIn returns the items whose frames intersect rect, in item order.
// Zero-height anchors count as intersecting when their y lies inside rect.
func (r Result) ItemsIn(rect geom.Rect) []Item {
	var out []Item
	for _, it := range r.Items {
		if it.Frame().Intersects(rect) {
			out = append(out, it)
		}
	}
	return out
}

// Medias returns every interactive media reference, ordered by gallery
// index. Slideshow pages are expanded in place and collapsed details
// sections contribute their media too.
func (r Result) Medias() []MediaRef {
	out := appendMedias(nil, r.Items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func appendMedias(out []MediaRef, items []Item) []MediaRef {
	for _, it := range items {
		switch v := it.(type) {
		case MediaItem:
			if v.Index >= 0 {
				out = append(out, MediaRef{Media: v.Media, Kind: v.Kind, Index: v.Index, Size: v.Rect.Size()})
			}
		case SlideshowItem:
			out = append(out, v.Medias...)
		case DetailsItem:
			out = appendMedias(out, v.Items)
		}
	}
	return out
}

// Anchor returns the y offset of the named anchor. Anchors inside a details
// section resolve as if the section were expanded.
func (r Result) Anchor(name string) (float64, bool) {
	return anchorIn(r.Items, name)
}

func anchorIn(items []Item, name string) (float64, bool) {
	for _, it := range items {
		switch v := it.(type) {
		case AnchorItem:
			if v.Name == name {
				return v.Rect.Y, true
			}
		case DetailsItem:
			if y, ok := anchorIn(v.Items, name); ok {
				return v.Rect.Y + y, true
			}
		}
	}
	return 0, false
}

// MediaCounter hands out gallery indices. One counter is threaded through a
// whole page pass so that indices are unique and follow depth-first order.
// It also numbers details sections within their nesting level.
type MediaCounter struct {
	next    int
	details int
}

// Next returns the current index and advances the counter.
func (c *MediaCounter) Next() int {
	i := c.next
	c.next++
	return i
}

// Count returns how many indices have been handed out.
func (c *MediaCounter) Count() int { return c.next }

func (c *MediaCounter) nextDetails() int {
	i := c.details
	c.details++
	return i
}
