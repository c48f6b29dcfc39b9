package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/instantview/pkg/core/geom"
	"github.com/matzehuels/instantview/pkg/core/media"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/core/text"
	"github.com/matzehuels/instantview/pkg/errors"
)

// MaxDepth bounds block and rich-text nesting in documents.
const MaxDepth = 32

type document struct {
	URL    string             `json:"url,omitempty" toml:"url"`
	Loaded *bool              `json:"loaded,omitempty" toml:"loaded"`
	Media  []media.Descriptor `json:"media,omitempty" toml:"media"`
	Blocks []map[string]any   `json:"blocks" toml:"blocks"`
}

// ReadJSON decodes a JSON page document from r.
//
// ReadJSON does not close r. Errors carry the INVALID_DOCUMENT code.
func ReadJSON(r io.Reader) (page.Page, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return page.Page{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
	}
	return doc.page()
}

// ReadTOML decodes a TOML page document from r.
func ReadTOML(r io.Reader) (page.Page, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return page.Page{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode toml")
	}
	return doc.page()
}

// ImportJSON reads a JSON document file.
func ImportJSON(path string) (page.Page, error) {
	return importFile(path, ReadJSON)
}

// ImportTOML reads a TOML document file.
func ImportTOML(path string) (page.Page, error) {
	return importFile(path, ReadTOML)
}

// Import reads a document file, choosing the format by extension.
func Import(path string) (page.Page, error) {
	if err := errors.ValidateDocumentFilename(path); err != nil {
		return page.Page{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ImportTOML(path)
	}
	return ImportJSON(path)
}

func importFile(path string, read func(io.Reader) (page.Page, error)) (page.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return page.Page{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return page.Page{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	pg, err := read(f)
	if err != nil {
		return page.Page{}, fmt.Errorf("%s: %w", path, err)
	}
	return pg, nil
}

func (d document) page() (page.Page, error) {
	if d.URL != "" {
		if err := errors.ValidateURL(d.URL); err != nil {
			return page.Page{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "page url")
		}
	}
	pg := page.Page{URL: d.URL, Loaded: d.Loaded == nil || *d.Loaded, Media: media.NewTable(d.Media...)}
	for i, m := range d.Media {
		if m.ID == "" {
			return page.Page{}, errors.New(errors.ErrCodeInvalidDocument, "media %d: missing id", i)
		}
	}
	for i, raw := range d.Blocks {
		b, err := decodeBlock(raw, 1)
		if err != nil {
			return page.Page{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "block %d", i)
		}
		pg.Blocks = append(pg.Blocks, b)
	}
	return pg, nil
}

// =============================================================================
// Blocks
// =============================================================================

func decodeBlock(raw map[string]any, depth int) (page.Block, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("nesting deeper than %d", MaxDepth)
	}
	f := fields{raw: raw, depth: depth}
	tag := f.str("type")
	if tag == "" {
		return nil, fmt.Errorf("missing type")
	}

	var b page.Block
	switch page.Kind(tag) {
	case page.KindCover:
		inner, ok := raw["block"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cover: missing block")
		}
		child, err := decodeBlock(inner, depth+1)
		if err != nil {
			return nil, fmt.Errorf("cover: %w", err)
		}
		b = page.Cover{Block: child}
	case page.KindTitle:
		b = page.Title{Text: f.rich("text")}
	case page.KindSubtitle:
		b = page.Subtitle{Text: f.rich("text")}
	case page.KindKicker:
		b = page.Kicker{Text: f.rich("text")}
	case page.KindHeader:
		b = page.Header{Text: f.rich("text")}
	case page.KindSubheader:
		b = page.Subheader{Text: f.rich("text")}
	case page.KindParagraph:
		b = page.Paragraph{Text: f.rich("text")}
	case page.KindPreformatted:
		b = page.Preformatted{Text: f.rich("text")}
	case page.KindFooter:
		b = page.Footer{Text: f.rich("text")}
	case page.KindAuthorDate:
		b = page.AuthorDate{Author: f.rich("author"), Date: int32(f.num("date"))}
	case page.KindImage:
		b = page.Image{Media: media.ID(f.str("media")), Caption: f.rich("caption"), Credit: f.rich("credit")}
	case page.KindVideo:
		b = page.Video{Media: media.ID(f.str("media")), Caption: f.rich("caption"), Credit: f.rich("credit"), Autoplay: f.flag("autoplay"), Loop: f.flag("loop")}
	case page.KindAudio:
		b = page.Audio{Media: media.ID(f.str("media")), Caption: f.rich("caption"), Credit: f.rich("credit")}
	case page.KindWebEmbed:
		if u := f.str("url"); u != "" {
			if err := errors.ValidateURL(u); err != nil {
				return nil, fmt.Errorf("webEmbed: %w", err)
			}
		}
		e := page.WebEmbed{
			URL:            f.str("url"),
			HTML:           f.str("html"),
			Caption:        f.rich("caption"),
			Credit:         f.rich("credit"),
			StretchToWidth: f.flag("stretchToWidth"),
			AllowScrolling: f.flag("allowScrolling"),
		}
		if w, h := f.num("width"), f.num("height"); w > 0 || h > 0 {
			e.Dimensions = &geom.Size{Width: w, Height: h}
		}
		b = e
	case page.KindPostEmbed:
		children, err := f.blocks("blocks")
		if err != nil {
			return nil, fmt.Errorf("postEmbed: %w", err)
		}
		e := page.PostEmbed{Author: f.rich("author"), Date: int32(f.num("date")), Blocks: children, Caption: f.rich("caption"), Credit: f.rich("credit")}
		if id := f.str("avatar"); id != "" {
			avatar := media.ID(id)
			e.Avatar = &avatar
		}
		b = e
	case page.KindCollage:
		children, err := f.blocks("blocks")
		if err != nil {
			return nil, fmt.Errorf("collage: %w", err)
		}
		b = page.Collage{Blocks: children, Caption: f.rich("caption"), Credit: f.rich("credit")}
	case page.KindSlideshow:
		children, err := f.blocks("blocks")
		if err != nil {
			return nil, fmt.Errorf("slideshow: %w", err)
		}
		b = page.Slideshow{Blocks: children, Caption: f.rich("caption"), Credit: f.rich("credit")}
	case page.KindAnchor:
		name := f.str("name")
		if err := errors.ValidateAnchorName(name); err != nil {
			return nil, fmt.Errorf("anchor: %w", err)
		}
		b = page.Anchor{Name: name}
	case page.KindChannelBanner:
		var banner page.ChannelBanner
		if c, ok := raw["channel"].(map[string]any); ok {
			cf := fields{raw: c}
			banner.Channel = &page.ChannelRef{ID: int64(cf.num("id")), Title: cf.str("title"), Username: cf.str("username")}
		}
		b = banner
	case page.KindDivider:
		b = page.Divider{}
	case page.KindList:
		l := page.List{Ordered: f.flag("ordered")}
		items, _ := asList(raw["items"])
		for i, it := range items {
			row, err := decodeListItem(it, depth+1)
			if err != nil {
				return nil, fmt.Errorf("list: item %d: %w", i, err)
			}
			l.Items = append(l.Items, row)
		}
		b = l
	case page.KindDetails:
		children, err := f.blocks("blocks")
		if err != nil {
			return nil, fmt.Errorf("details: %w", err)
		}
		b = page.Details{Title: f.rich("title"), Blocks: children, Expanded: f.flag("expanded")}
	case page.KindBlockQuote:
		b = page.BlockQuote{Text: f.rich("text"), Caption: f.rich("caption")}
	case page.KindPullQuote:
		b = page.PullQuote{Text: f.rich("text"), Caption: f.rich("caption")}
	case page.KindUnsupported:
		b = page.Unsupported{Name: f.str("name")}
	default:
		b = page.Unsupported{Name: tag}
	}
	if f.err != nil {
		return nil, fmt.Errorf("%s: %w", tag, f.err)
	}
	return b, nil
}

// decodeListItem reads one list row: rich text, or an object whose "blocks"
// array makes it a block row.
func decodeListItem(v any, depth int) (page.ListItem, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return page.ListItem{Text: decodeRich(v, depth)}, nil
	}
	if _, ok := m["blocks"]; !ok {
		return page.ListItem{Text: decodeRich(v, depth)}, nil
	}
	f := fields{raw: m, depth: depth - 1}
	children, err := f.blocks("blocks")
	if err != nil {
		return page.ListItem{}, err
	}
	return page.ListItem{Blocks: children}, nil
}

// fields reads loosely typed values out of a decoded block object. The
// first rich-text nesting violation is kept in err.
type fields struct {
	raw   map[string]any
	depth int
	err   error
}

func (f *fields) str(key string) string {
	s, _ := f.raw[key].(string)
	return s
}

func (f *fields) flag(key string) bool {
	v, _ := f.raw[key].(bool)
	return v
}

func (f *fields) num(key string) float64 {
	switch v := f.raw[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case json.Number:
		n, _ := v.Float64()
		return n
	}
	return 0
}

func (f *fields) rich(key string) text.RichText {
	v, ok := f.raw[key]
	if !ok {
		return text.Empty{}
	}
	if d := richDepth(v, 0); f.depth+d > MaxDepth && f.err == nil {
		f.err = fmt.Errorf("%s: nesting deeper than %d", key, MaxDepth)
	}
	return decodeRich(v, f.depth+1)
}

func (f *fields) blocks(key string) ([]page.Block, error) {
	items, _ := asList(f.raw[key])
	var out []page.Block
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("child %d: not an object", i)
		}
		b, err := decodeBlock(m, f.depth+1)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// asList normalizes JSON arrays and TOML arrays of tables.
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}
