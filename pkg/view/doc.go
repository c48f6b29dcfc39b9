// Package view provides the serialization format for computed page layouts.
//
// This package defines the canonical wire format for Instant View layouts,
// used for JSON files, HTTP responses, caching, and the debug renderers.
//
// # Architecture
//
// The package sits at the serialization boundary between the layout engine
// and external consumers:
//
//   - [Layout], [Item]: serialization types (this package)
//   - pkg/core/layout.Result: the engine's in-memory result
//
// Use [Export] to convert a result. The conversion is one way: a serialized
// layout is enough to draw and hit-test a page but carries no link
// callbacks.
//
// # Item types
//
// [Item] is a discriminated record; check Type to see which fields are set:
//
//	view.TypeText       // lines, alignment
//	view.TypeMedia      // media, kind, index, rounded, autoplay, loop
//	view.TypeSlideshow  // medias
//	view.TypeShape      // shape, shape_frame, color
//	view.TypeWebEmbed   // url, html, scrollable
//	view.TypeAnchor     // name
//	view.TypeChannel    // channel
//	view.TypeDetails    // title, title_height, expanded, index, items
package view
