// Package sink writes serialized layouts to output formats.
//
// # Formats
//
//   - [RenderJSON]: the [view.Layout] wire format with optional document
//     metadata
//   - [RenderSVG]: a wireframe drawing of every item frame, with text lines
//     set in the Go fonts
//   - [RenderPNG], [RenderPDF]: the wireframe converted by rsvg-convert
//   - [RenderRaster]: a pure-Go PNG painter for hosts without librsvg
//
// All sinks take options in the functional style:
//
//	svg := sink.RenderSVG(l, sink.WithLabels(), sink.WithGrid(50))
//	png, err := sink.RenderPNG(ctx, l, sink.WithScale(2))
//
// # Wireframes
//
// Text items draw their lines; media, slideshows and web embeds draw a
// placeholder box with a cross and the media identifier; shapes are filled
// with their color; anchors draw a dashed rule. With [WithLabels] every
// item is annotated with its type.
//
// The sinks never mutate the layout and are safe to call concurrently.
//
// [view.Layout]: github.com/matzehuels/instantview/pkg/view.Layout
package sink
