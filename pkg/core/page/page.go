// Package page defines the content tree of an Instant View article: a
// closed set of block variants and the page that holds them.
//
// Blocks are plain immutable values. Composite blocks ([Cover], [PostEmbed],
// [Collage], [Slideshow], [Details] and lists with block rows) own their
// children; [Walk] visits the tree
// depth-first in the same order the layout engine does.
package page

import (
	"github.com/matzehuels/instantview/pkg/core/media"
)

// Page is a whole article.
type Page struct {
	URL    string
	Blocks []Block
	Media  media.Table
	// Loaded is false while the article body is still being fetched.
	Loaded bool
}

// Children returns the direct children of b, in layout order.
func Children(b Block) []Block {
	switch v := b.(type) {
	case Cover:
		if v.Block != nil {
			return []Block{v.Block}
		}
	case PostEmbed:
		return v.Blocks
	case Collage:
		return v.Blocks
	case Slideshow:
		return v.Blocks
	case Details:
		return v.Blocks
	case List:
		var out []Block
		for _, it := range v.Items {
			out = append(out, it.Blocks...)
		}
		return out
	}
	return nil
}

// Walk calls fn for every block in blocks and their descendants,
// depth-first and pre-order. Returning false from fn skips that block's
// children.
func Walk(blocks []Block, fn func(b Block, depth int) bool) {
	walk(blocks, 0, fn)
}

func walk(blocks []Block, depth int, fn func(Block, int) bool) {
	for _, b := range blocks {
		if b == nil {
			continue
		}
		if fn(b, depth) {
			walk(Children(b), depth+1, fn)
		}
	}
}

// MediaRefs returns the media IDs referenced by blocks, in visitation order.
// Post-embed avatars are included.
func MediaRefs(blocks []Block) []media.ID {
	var ids []media.ID
	Walk(blocks, func(b Block, _ int) bool {
		switch v := b.(type) {
		case Image:
			ids = append(ids, v.Media)
		case Video:
			ids = append(ids, v.Media)
		case Audio:
			ids = append(ids, v.Media)
		case PostEmbed:
			if v.Avatar != nil {
				ids = append(ids, *v.Avatar)
			}
		}
		return true
	})
	return ids
}

// Stats counts blocks per kind across the whole tree.
func Stats(blocks []Block) map[Kind]int {
	out := map[Kind]int{}
	Walk(blocks, func(b Block, _ int) bool {
		out[b.Kind()]++
		return true
	})
	return out
}

// Depth returns the maximum nesting depth of blocks; a flat list has depth 1
// and an empty one depth 0.
func Depth(blocks []Block) int {
	deepest := 0
	Walk(blocks, func(_ Block, d int) bool {
		deepest = max(deepest, d+1)
		return true
	})
	return deepest
}
