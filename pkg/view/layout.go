package view

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/instantview/pkg/core/layout"
	"github.com/matzehuels/instantview/pkg/core/text"
)

// Item types.
const (
	TypeText      = "text"
	TypeMedia     = "media"
	TypeSlideshow = "slideshow"
	TypeShape     = "shape"
	TypeWebEmbed  = "web_embed"
	TypeAnchor    = "anchor"
	TypeChannel   = "channel"
	TypeDetails   = "details"
)

var knownTypes = map[string]bool{
	TypeText: true, TypeMedia: true, TypeSlideshow: true, TypeShape: true,
	TypeWebEmbed: true, TypeAnchor: true, TypeChannel: true, TypeDetails: true,
}

// =============================================================================
// Layout - Serialized Page
// =============================================================================

// Layout is a laid-out page in page coordinates.
type Layout struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Serif  bool    `json:"serif,omitempty" bson:"serif,omitempty"`

	Items  []Item  `json:"items" bson:"items"`
	Medias []Media `json:"medias,omitempty" bson:"medias,omitempty"`
}

// Count returns the number of items of type t.
func (l Layout) Count(t string) int {
	n := 0
	for _, it := range l.Items {
		if it.Type == t {
			n++
		}
	}
	return n
}

// Anchor returns the y offset of the named anchor, looking inside details
// sections whether or not they are expanded.
func (l Layout) Anchor(name string) (float64, bool) {
	return anchorIn(l.Items, name)
}

func anchorIn(items []Item, name string) (float64, bool) {
	for _, it := range items {
		switch {
		case it.Type == TypeAnchor && it.Name == name:
			return it.Y, true
		case it.Type == TypeDetails:
			if y, ok := anchorIn(it.Items, name); ok {
				return y, true
			}
		}
	}
	return 0, false
}

// =============================================================================
// Item - Positioned Element
// =============================================================================

// Item is one positioned element.
type Item struct {
	Type    string  `json:"type" bson:"type"`
	X       float64 `json:"x" bson:"x"`
	Y       float64 `json:"y" bson:"y"`
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	Overlay bool    `json:"overlay,omitempty" bson:"overlay,omitempty"`

	// Text
	Lines     []Line `json:"lines,omitempty" bson:"lines,omitempty"`
	Alignment string `json:"alignment,omitempty" bson:"alignment,omitempty"`

	// Media
	Media    string `json:"media,omitempty" bson:"media,omitempty"`
	Kind     string `json:"kind,omitempty" bson:"kind,omitempty"`
	Index    *int   `json:"index,omitempty" bson:"index,omitempty"`
	Rounded  bool   `json:"rounded,omitempty" bson:"rounded,omitempty"`
	Autoplay bool   `json:"autoplay,omitempty" bson:"autoplay,omitempty"`
	Loop     bool   `json:"loop,omitempty" bson:"loop,omitempty"`

	// Slideshow
	Medias []Media `json:"medias,omitempty" bson:"medias,omitempty"`

	// Shape
	Shape      string `json:"shape,omitempty" bson:"shape,omitempty"`
	ShapeFrame *Rect  `json:"shape_frame,omitempty" bson:"shape_frame,omitempty"`
	Color      string `json:"color,omitempty" bson:"color,omitempty"`

	// Web embed
	URL        string `json:"url,omitempty" bson:"url,omitempty"`
	HTML       string `json:"html,omitempty" bson:"html,omitempty"`
	Scrollable bool   `json:"scrollable,omitempty" bson:"scrollable,omitempty"`

	// Anchor
	Name string `json:"name,omitempty" bson:"name,omitempty"`

	// Channel
	Channel *Channel `json:"channel,omitempty" bson:"channel,omitempty"`

	// Details. Title and Items are in page coordinates, as if the section
	// were expanded.
	Title       *Item   `json:"title,omitempty" bson:"title,omitempty"`
	TitleHeight float64 `json:"title_height,omitempty" bson:"title_height,omitempty"`
	Expanded    bool    `json:"expanded,omitempty" bson:"expanded,omitempty"`
	Items       []Item  `json:"items,omitempty" bson:"items,omitempty"`
}

// Rect is a rectangle relative to its item.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Line is one text line, positioned relative to its item.
type Line struct {
	Rect  `bson:",inline"`
	Text  string   `json:"text" bson:"text"`
	Runs  []Run    `json:"runs,omitempty" bson:"runs,omitempty"`
	Links []string `json:"links,omitempty" bson:"links,omitempty"`
}

// Run is a styled stretch of a line.
type Run struct {
	Text      string  `json:"text" bson:"text"`
	Size      float64 `json:"size" bson:"size"`
	Color     string  `json:"color" bson:"color"`
	Serif     bool    `json:"serif,omitempty" bson:"serif,omitempty"`
	Fixed     bool    `json:"fixed,omitempty" bson:"fixed,omitempty"`
	Bold      bool    `json:"bold,omitempty" bson:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty" bson:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty" bson:"underline,omitempty"`
	Strike    bool    `json:"strike,omitempty" bson:"strike,omitempty"`
	Link      string  `json:"link,omitempty" bson:"link,omitempty"`
}

// Media is one gallery entry or slideshow page.
type Media struct {
	Media  string  `json:"media" bson:"media"`
	Kind   string  `json:"kind" bson:"kind"`
	Index  int     `json:"index" bson:"index"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Channel is a channel banner target.
type Channel struct {
	ID       int64  `json:"id" bson:"id"`
	Title    string `json:"title" bson:"title"`
	Username string `json:"username,omitempty" bson:"username,omitempty"`
}

// =============================================================================
// Export
// =============================================================================

// Export converts an engine result to the wire format.
func Export(r layout.Result, p layout.Presentation) Layout {
	l := Layout{
		Width:  r.ContentSize.Width,
		Height: r.ContentSize.Height,
		Serif:  p.Serif,
		Items:  make([]Item, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		l.Items = append(l.Items, exportItem(it))
	}
	for _, m := range r.Medias() {
		l.Medias = append(l.Medias, exportMedia(m))
	}
	return l
}

func exportItem(it layout.Item) Item {
	f := it.Frame()
	out := Item{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height, Overlay: it.IsOverlay()}

	switch v := it.(type) {
	case layout.TextItem:
		out.Type = TypeText
		out.Alignment = v.Alignment.String()
		for _, ln := range v.Lines {
			out.Lines = append(out.Lines, exportLine(ln))
		}
	case layout.MediaItem:
		out.Type = TypeMedia
		out.Media = string(v.Media)
		out.Kind = v.Kind.String()
		idx := v.Index
		out.Index = &idx
		out.Rounded, out.Autoplay, out.Loop = v.Rounded, v.Autoplay, v.Loop
	case layout.SlideshowItem:
		out.Type = TypeSlideshow
		for _, m := range v.Medias {
			out.Medias = append(out.Medias, exportMedia(m))
		}
	case layout.ShapeItem:
		out.Type = TypeShape
		out.Shape = v.Shape.String()
		out.ShapeFrame = &Rect{X: v.ShapeFrame.X, Y: v.ShapeFrame.Y, Width: v.ShapeFrame.Width, Height: v.ShapeFrame.Height}
		out.Color = v.Color.Hex()
	case layout.WebEmbedItem:
		out.Type = TypeWebEmbed
		out.URL, out.HTML, out.Scrollable = v.URL, v.HTML, v.Scrollable
	case layout.AnchorItem:
		out.Type = TypeAnchor
		out.Name = v.Name
	case layout.ChannelItem:
		out.Type = TypeChannel
		out.Channel = &Channel{ID: v.Channel.ID, Title: v.Channel.Title, Username: v.Channel.Username}
	case layout.DetailsItem:
		out.Type = TypeDetails
		idx := v.Index
		out.Index = &idx
		out.TitleHeight, out.Expanded = v.TitleHeight, v.Expanded
		if len(v.Title.Lines) > 0 {
			title := exportItem(layout.Translate(v.Title, f.X, f.Y))
			out.Title = &title
		}
		for _, child := range v.Items {
			out.Items = append(out.Items, exportItem(layout.Translate(child, f.X, f.Y)))
		}
	}
	return out
}

func exportLine(ln text.Line) Line {
	out := Line{
		Rect:  Rect{X: ln.Frame.X, Y: ln.Frame.Y, Width: ln.Frame.Width, Height: ln.Frame.Height},
		Text:  ln.Text(),
		Links: ln.Links(),
	}
	for _, r := range ln.Runs {
		a := r.Attrs
		out.Runs = append(out.Runs, Run{
			Text: r.Text, Size: a.FontSize, Color: a.Color.Hex(),
			Serif: a.Serif, Fixed: a.Fixed, Bold: a.Bold, Italic: a.Italic,
			Underline: a.Underline, Strike: a.Strikethrough, Link: a.Link,
		})
	}
	return out
}

func exportMedia(m layout.MediaRef) Media {
	return Media{Media: string(m.Media), Kind: m.Kind.String(), Index: m.Index, Width: m.Size.Width, Height: m.Size.Height}
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout and checks that the
// width is positive and every item type is known.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 {
		return Layout{}, fmt.Errorf("layout width must be positive, got %v", l.Width)
	}
	if err := checkTypes(l.Items, "item"); err != nil {
		return Layout{}, err
	}
	return l, nil
}

func checkTypes(items []Item, path string) error {
	for i, it := range items {
		if !knownTypes[it.Type] {
			return fmt.Errorf("%s %d: unknown type %q", path, i, it.Type)
		}
		if err := checkTypes(it.Items, fmt.Sprintf("%s %d child", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
