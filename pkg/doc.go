// Package pkg provides the core libraries for Instant View page layout.
//
// # Overview
//
// Instant View turns an article, given as a tree of typed blocks, into the
// positioned items of a reader-mode page for one viewport width. The pkg
// directory is organized into these areas:
//
//  1. [core] - Domain logic (blocks, rich text, media, layout, rendering)
//  2. [io] - Page documents (JSON, TOML) and theme files
//  3. [view] - The serialized layout exchanged with clients and caches
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [cache] - File, Redis and MongoDB cache backends
//
// # Architecture
//
// The typical data flow:
//
//	page.json / page.toml
//	         ↓
//	    [io] package (decode blocks, media, rich text)
//	         ↓
//	    [core/layout] package (block layout function + page assembler)
//	         ↓
//	    [view] package (serialized items)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/instantview/pkg/core/layout"
//	    "github.com/matzehuels/instantview/pkg/core/render/sink"
//	    "github.com/matzehuels/instantview/pkg/core/text"
//	    pkgio "github.com/matzehuels/instantview/pkg/io"
//	    "github.com/matzehuels/instantview/pkg/view"
//	)
//
//	pg, _ := pkgio.ImportJSON("article.json")
//
//	e := layout.New(layout.WithMeasurer(text.Estimator{}), layout.WithMedia(pg.Media))
//	r := e.Page(pg, 390)
//
//	svg := sink.RenderSVG(view.Export(r, e.Presentation()), sink.WithLabels())
//
// # Main Packages
//
// [core/page] - The closed set of block variants (titles, paragraphs, media,
// lists, tables, details, embeds, covers, ...) and the Page that holds them.
//
// [core/text] - Rich text, the style stack, and the Measurer interface with
// a deterministic Estimator. [core/text/fontmetrics] measures with the Go
// fonts instead.
//
// [core/layout] - Lays out one block at a time and stacks the results into a
// page, applying the spacing table between neighbouring blocks.
//
// [core/render/sink] - Wireframe SVG, JSON, PNG and PDF output, plus an
// in-process raster painter.
//
// [core/render/outline] - Graphviz diagrams of the block tree.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/layout/...        # Specific package
//	go test -run Example                 # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/instantview/pkg/core
// [io]: https://pkg.go.dev/github.com/matzehuels/instantview/pkg/io
// [view]: https://pkg.go.dev/github.com/matzehuels/instantview/pkg/view
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/instantview/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/instantview/pkg/cache
// [core/page]: https://pkg.go.dev/github.com/matzehuels/instantview/pkg/core/page
// [core/text]: https://pkg.go.dev/github.com/matzehuels/instantview/pkg/core/text
// [core/text/fontmetrics]: https://pkg.go.dev/github.com/matzehuels/instantview/pkg/core/text/fontmetrics
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/instantview/pkg/core/layout
// [core/render/sink]: https://pkg.go.dev/github.com/matzehuels/instantview/pkg/core/render/sink
// [core/render/outline]: https://pkg.go.dev/github.com/matzehuels/instantview/pkg/core/render/outline
package pkg
