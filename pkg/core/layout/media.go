package layout

import (
	"math"

	"github.com/matzehuels/instantview/pkg/core/geom"
	"github.com/matzehuels/instantview/pkg/core/media"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/core/text"
)

const (
	maxMediaHeight   = 600
	captionGap       = 10
	audioHeight      = 48
	webEmbedFallback = 44
	// placeholderSide sizes images whose source dimensions are unknown.
	placeholderSide = 600
)

func (e *Engine) resolveImage(id media.ID) (media.Descriptor, bool) {
	d, ok := e.registry().Lookup(id)
	if !ok || (d.Kind != media.KindImage && !d.IsPhotoLike()) {
		return media.Descriptor{}, false
	}
	return d, true
}

func (e *Engine) resolveKind(id media.ID, kind media.Kind) (media.Descriptor, bool) {
	d, ok := e.registry().Lookup(id)
	if !ok || d.Kind != kind {
		return media.Descriptor{}, false
	}
	return d, true
}

// mediaSize picks the displayed size of a visual medium.
func mediaSize(dims geom.Size, p Params) geom.Size {
	w := p.BoundingWidth
	switch {
	case p.FillToWidthAndHeight:
		side := w - 2*p.InsetBetweenMaxWidth
		return geom.Size{Width: side, Height: side}
	case p.IsCover:
		s := dims.AspectFilled(geom.Size{Width: w})
		s.Height = math.Min(s.Height, math.Floor(w*3/5))
		return s
	}
	return dims.AspectFitted(geom.Size{Width: w, Height: maxMediaHeight})
}

func (e *Engine) layoutImage(v page.Image, p Params, counter *MediaCounter) Result {
	d, ok := e.resolveImage(v.Media)
	if !ok {
		e.debug("unresolved image", "media", v.Media)
		return emptyResult(p.BoundingWidth)
	}
	dims := d.Dimensions()
	if dims.IsEmpty() {
		dims = geom.Size{Width: placeholderSide, Height: placeholderSide}
	}
	return e.layoutVisual(MediaItem{Media: v.Media, Kind: media.KindImage}, dims, v.Caption, v.Credit, p, counter)
}

func (e *Engine) layoutVideo(v page.Video, p Params, counter *MediaCounter) Result {
	d, ok := e.resolveKind(v.Media, media.KindVideo)
	if !ok || d.Dimensions().IsEmpty() {
		e.debug("unresolved video", "media", v.Media)
		return emptyResult(p.BoundingWidth)
	}
	item := MediaItem{Media: v.Media, Kind: media.KindVideo, Autoplay: v.Autoplay, Loop: v.Loop}
	return e.layoutVisual(item, d.Dimensions(), v.Caption, v.Credit, p, counter)
}

func (e *Engine) layoutVisual(item MediaItem, dims geom.Size, caption, credit text.RichText, p Params, counter *MediaCounter) Result {
	w := p.BoundingWidth
	size := mediaSize(dims, p)
	item.Rect = geom.RectOf(geom.Point{X: math.Floor((w - size.Width) / 2)}, size)
	item.Index = counter.Next()

	items, h := e.captioned([]Item{item}, caption, credit, p, p.HorizontalInset, size.Width < w, size.Height, captionGap)
	return Result{ContentSize: geom.Size{Width: w, Height: h}, Items: items}
}

func (e *Engine) layoutAudio(v page.Audio, p Params, counter *MediaCounter) Result {
	if _, ok := e.resolveKind(v.Media, media.KindAudio); !ok {
		e.debug("unresolved audio", "media", v.Media)
		return emptyResult(p.BoundingWidth)
	}
	w := p.BoundingWidth
	item := MediaItem{
		Box:   Box{Rect: geom.Rect{Width: w, Height: audioHeight}},
		Media: v.Media,
		Kind:  media.KindAudio,
		Index: counter.Next(),
	}
	items, h := e.captioned([]Item{item}, v.Caption, v.Credit, p, p.HorizontalInset, true, audioHeight, captionGap)
	return Result{ContentSize: geom.Size{Width: w, Height: h}, Items: items}
}

func (e *Engine) layoutWebEmbed(v page.WebEmbed, p Params) Result {
	w := p.BoundingWidth
	embedWidth := w - 2*p.HorizontalInset
	if v.StretchToWidth {
		embedWidth = w
	}

	var size geom.Size
	switch {
	case v.Dimensions == nil:
		size = geom.Size{Width: embedWidth, Height: webEmbedFallback}
	case v.Dimensions.Width <= 0:
		// A declared height alone keeps its value; without one the embed
		// has nothing to show.
		if v.Dimensions.Height <= 0 {
			e.debug("embed without size", "url", v.URL)
			return emptyResult(w)
		}
		size = geom.Size{Width: embedWidth, Height: v.Dimensions.Height}
	default:
		size = v.Dimensions.AspectFitted(geom.Size{Width: embedWidth, Height: embedWidth})
		if size.IsEmpty() {
			size = geom.Size{Width: embedWidth, Height: webEmbedFallback}
		}
	}

	item := WebEmbedItem{
		Box:        Box{Rect: geom.RectOf(geom.Point{X: math.Floor((w - size.Width) / 2)}, size)},
		URL:        v.URL,
		HTML:       v.HTML,
		Scrollable: v.AllowScrolling,
	}
	items, h := e.captioned([]Item{item}, v.Caption, v.Credit, p, p.HorizontalInset, size.Width < w, size.Height, captionGap)
	return Result{ContentSize: geom.Size{Width: w, Height: h}, Items: items}
}

func (e *Engine) layoutSlideshow(v page.Slideshow, p Params, counter *MediaCounter) Result {
	w := p.BoundingWidth
	var refs []MediaRef
	var h float64
	for _, child := range v.Blocks {
		ref, dims, ok := e.slide(child)
		if !ok {
			continue
		}
		size := dims.Fitted(geom.Size{Width: w, Height: maxMediaHeight})
		size.Width = math.Min(size.Width, w)
		ref.Index = counter.Next()
		ref.Size = size
		refs = append(refs, ref)
		h = math.Max(h, size.Height)
	}
	if len(refs) == 0 {
		e.debug("empty slideshow", "children", len(v.Blocks))
		return emptyResult(w)
	}

	item := SlideshowItem{Box: Box{Rect: geom.Rect{Width: w, Height: h}}, Medias: refs}
	items, total := e.captioned([]Item{item}, v.Caption, v.Credit, p, p.HorizontalInset, false, h, captionGap)
	return Result{ContentSize: geom.Size{Width: w, Height: total}, Items: items}
}

// slide resolves one slideshow child; only images and videos qualify.
func (e *Engine) slide(b page.Block) (MediaRef, geom.Size, bool) {
	switch c := b.(type) {
	case page.Image:
		d, ok := e.resolveImage(c.Media)
		if !ok {
			return MediaRef{}, geom.Size{}, false
		}
		dims := d.Dimensions()
		if dims.IsEmpty() {
			dims = geom.Size{Width: placeholderSide, Height: placeholderSide}
		}
		return MediaRef{Media: c.Media, Kind: media.KindImage}, dims, true
	case page.Video:
		d, ok := e.resolveKind(c.Media, media.KindVideo)
		if !ok || d.Dimensions().IsEmpty() {
			return MediaRef{}, geom.Size{}, false
		}
		return MediaRef{Media: c.Media, Kind: media.KindVideo}, d.Dimensions(), true
	}
	return MediaRef{}, geom.Size{}, false
}

const (
	collageSpacing    = 2
	collageTargetCell = 150
)

func (e *Engine) layoutCollage(v page.Collage, p Params, counter *MediaCounter) Result {
	w := p.BoundingWidth
	n := len(v.Blocks)
	if n == 0 {
		return emptyResult(w)
	}

	k := max(1, min(int(math.Round(w/collageTargetCell)), n))
	cell := math.Floor((w - collageSpacing*float64(k-1)) / float64(k))

	var items []Item
	for i, child := range v.Blocks {
		r := e.block(child, Params{BoundingWidth: cell, FillToWidthAndHeight: true}, counter)
		x := float64(i%k) * (cell + collageSpacing)
		y := float64(i/k) * (cell + collageSpacing)
		items = append(items, r.FlattenedItems(geom.Point{X: x, Y: y})...)
	}

	rows := (n + k - 1) / k
	h := float64(rows)*cell + float64(rows-1)*collageSpacing
	items, h = e.captioned(items, v.Caption, v.Credit, p, p.HorizontalInset, false, h, captionGap)
	return Result{ContentSize: geom.Size{Width: w, Height: h}, Items: items}
}
