package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/instantview/pkg/core/media"
	"github.com/matzehuels/instantview/pkg/core/page"
)

// WriteJSON encodes a page as a JSON document and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(pg page.Page, w io.Writer) error {
	out := struct {
		URL    string             `json:"url,omitempty"`
		Loaded bool               `json:"loaded"`
		Media  []media.Descriptor `json:"media,omitempty"`
		Blocks []map[string]any   `json:"blocks"`
	}{
		URL:    pg.URL,
		Loaded: pg.Loaded,
		Media:  pg.Media.Sorted(),
		Blocks: make([]map[string]any, 0, len(pg.Blocks)),
	}
	for _, b := range pg.Blocks {
		out.Blocks = append(out.Blocks, encodeBlock(b))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a page to a JSON file at path.
func ExportJSON(pg page.Page, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(pg, f)
}

// node collects the fields of one encoded block, skipping zero values.
type node map[string]any

func (n node) set(key string, v any) node {
	switch x := v.(type) {
	case nil:
		return n
	case string:
		if x == "" {
			return n
		}
	case bool:
		if !x {
			return n
		}
	case int32:
		if x == 0 {
			return n
		}
	}
	n[key] = v
	return n
}

func encodeBlocks(bs []page.Block) []map[string]any {
	out := make([]map[string]any, 0, len(bs))
	for _, b := range bs {
		out = append(out, encodeBlock(b))
	}
	return out
}

func encodeBlock(b page.Block) map[string]any {
	if b == nil {
		return map[string]any{"type": string(page.KindUnsupported)}
	}
	n := node{"type": string(b.Kind())}
	switch v := b.(type) {
	case page.Cover:
		if v.Block != nil {
			n["block"] = encodeBlock(v.Block)
		}
	case page.Title:
		n.set("text", encodeRich(v.Text))
	case page.Subtitle:
		n.set("text", encodeRich(v.Text))
	case page.Kicker:
		n.set("text", encodeRich(v.Text))
	case page.Header:
		n.set("text", encodeRich(v.Text))
	case page.Subheader:
		n.set("text", encodeRich(v.Text))
	case page.Paragraph:
		n.set("text", encodeRich(v.Text))
	case page.Preformatted:
		n.set("text", encodeRich(v.Text))
	case page.Footer:
		n.set("text", encodeRich(v.Text))
	case page.AuthorDate:
		n.set("author", encodeRich(v.Author)).set("date", v.Date)
	case page.Image:
		n.set("media", string(v.Media)).set("caption", encodeRich(v.Caption)).set("credit", encodeRich(v.Credit))
	case page.Video:
		n.set("media", string(v.Media)).set("caption", encodeRich(v.Caption)).set("credit", encodeRich(v.Credit)).
			set("autoplay", v.Autoplay).set("loop", v.Loop)
	case page.Audio:
		n.set("media", string(v.Media)).set("caption", encodeRich(v.Caption)).set("credit", encodeRich(v.Credit))
	case page.WebEmbed:
		n.set("url", v.URL).set("html", v.HTML).set("caption", encodeRich(v.Caption)).set("credit", encodeRich(v.Credit)).
			set("stretchToWidth", v.StretchToWidth).set("allowScrolling", v.AllowScrolling)
		if v.Dimensions != nil {
			n["width"], n["height"] = v.Dimensions.Width, v.Dimensions.Height
		}
	case page.PostEmbed:
		if v.Avatar != nil {
			n.set("avatar", string(*v.Avatar))
		}
		n.set("author", encodeRich(v.Author)).set("date", v.Date).
			set("caption", encodeRich(v.Caption)).set("credit", encodeRich(v.Credit))
		n["blocks"] = encodeBlocks(v.Blocks)
	case page.Collage:
		n.set("caption", encodeRich(v.Caption)).set("credit", encodeRich(v.Credit))
		n["blocks"] = encodeBlocks(v.Blocks)
	case page.Slideshow:
		n.set("caption", encodeRich(v.Caption)).set("credit", encodeRich(v.Credit))
		n["blocks"] = encodeBlocks(v.Blocks)
	case page.Anchor:
		n.set("name", v.Name)
	case page.ChannelBanner:
		if v.Channel != nil {
			n["channel"] = v.Channel
		}
	case page.List:
		items := make([]any, 0, len(v.Items))
		for _, it := range v.Items {
			if len(it.Blocks) > 0 {
				items = append(items, map[string]any{"blocks": encodeBlocks(it.Blocks)})
				continue
			}
			e := encodeRich(it.Text)
			if e == nil {
				e = ""
			}
			items = append(items, e)
		}
		n["items"] = items
		n.set("ordered", v.Ordered)
	case page.BlockQuote:
		n.set("text", encodeRich(v.Text)).set("caption", encodeRich(v.Caption))
	case page.PullQuote:
		n.set("text", encodeRich(v.Text)).set("caption", encodeRich(v.Caption))
	case page.Details:
		n.set("title", encodeRich(v.Title)).set("expanded", v.Expanded)
		n["blocks"] = encodeBlocks(v.Blocks)
	case page.Unsupported:
		n.set("name", v.Name)
	}
	return n
}
