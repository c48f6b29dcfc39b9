// Package layout turns a page of content blocks into absolutely positioned
// items for a given width.
//
// # Overview
//
// Two functions do the work. [Engine.Block] lays out one block in
// block-local coordinates and recurses into composite blocks (post embeds,
// collages, slideshows, covers, details sections and lists with block
// rows). [Engine.Page] folds the top-level blocks
// into one vertical stack: it asks [SpacingBetween] for the gap between
// neighbours, translates every block's items to page coordinates and adds a
// closing gap at the end.
//
//	res := layout.Build(pg, 600,
//	    layout.WithPresentation(layout.DefaultPresentation()),
//	    layout.WithMeasurer(text.Estimator{}),
//	)
//	for _, it := range res.Items {
//	    fmt.Println(it.Frame())
//	}
//
// # Degradation
//
// Layout never fails. Missing media, videos without dimensions, embeds
// without a usable size, empty slideshows and unsupported blocks produce an empty [Result] of the
// bounding width and zero height. With [WithLogger] set, each such case is
// logged at debug level.
//
// # Media indices
//
// A [MediaCounter] is threaded through one page pass. Every interactive
// image, video, audio track and slideshow page takes the next index in
// depth-first order; post-embed avatars use -1. [Result.Medias] returns the
// resulting gallery, collapsed details sections included. The same counter
// numbers details sections within each nesting level.
//
// # Covers
//
// A title directly below a cover gets a negative spacing and overlaps the
// cover image. Its items are flagged with [Box.Overlay] and the overlap is
// measured from the bottom of the cover's first item, so a cover caption
// does not change where the title lands.
package layout
