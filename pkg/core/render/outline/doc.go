// Package outline draws the block tree of a page as a Graphviz diagram.
//
// The outline is a debugging view of the document rather than of its
// layout: one node per block, edges from composite blocks to their
// children, in layout order.
//
//	dot := outline.ToDOT(pg, outline.Options{Detailed: true})
//	svg, err := outline.RenderSVG(ctx, dot)
//
// # Highlighting
//
// Blocks the layout engine will skip are drawn dashed: [page.Unsupported]
// blocks in grey, and media blocks whose reference does not resolve in the
// page's media table in red.
package outline
