// Package io reads and writes page documents and theme files.
//
// # Overview
//
// A page document is the serialized form of a [page.Page]: its media table
// and its block tree. Documents are JSON or TOML; both decode through the
// same generic path, so every feature works in either format.
//
// # JSON Format
//
//	{
//	  "url": "https://example.com/article",
//	  "media": [
//	    {"id": "hero", "kind": "image", "width": 1600, "height": 900}
//	  ],
//	  "blocks": [
//	    {"type": "cover", "block": {"type": "image", "media": "hero"}},
//	    {"type": "title", "text": "Hello"},
//	    {"type": "paragraph", "text": {"concat": ["Read ", {"url": "more", "href": "https://example.com"}]}}
//	  ]
//	}
//
// "loaded" defaults to true. Block type tags match [page.Kind]. A block
// with an unknown tag decodes to [page.Unsupported] carrying the tag, so
// documents written for newer readers still load.
//
// # Rich Text
//
// Rich text is either a string, an array (concatenation) or an object with
// exactly one style key:
//
//	"plain"                         plain text
//	"concat"                        array of fragments
//	"bold", "italic", "underline",
//	"strike", "fixed"               styled fragment
//	"url" (+ "href")                link
//	"anchor" (+ "name")             link to an in-page anchor
//
// # TOML
//
// The same schema in TOML uses arrays of tables:
//
//	[[media]]
//	id = "hero"
//	kind = "image"
//	width = 1600
//	height = 900
//
//	[[blocks]]
//	type = "title"
//	text = "Hello"
//
// # Errors
//
// Structural problems (malformed syntax, a block without a type, an unknown
// media kind, nesting deeper than [MaxDepth], a page or embed URL that is not
// absolute http(s), an anchor name with whitespace) are reported with the
// INVALID_DOCUMENT code. Dangling media references are not errors: the
// layout engine degrades those blocks.
//
// # Themes
//
// [ReadTheme] and [LoadTheme] decode a TOML presentation:
//
//	base = "dark"
//	serif = true
//	link = "#5aa6e8"
package io
