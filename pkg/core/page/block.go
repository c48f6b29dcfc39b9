package page

import (
	"github.com/matzehuels/instantview/pkg/core/geom"
	"github.com/matzehuels/instantview/pkg/core/media"
	"github.com/matzehuels/instantview/pkg/core/text"
)

// Kind names a block variant. The names double as document type tags.
type Kind string

const (
	KindCover         Kind = "cover"
	KindTitle         Kind = "title"
	KindSubtitle      Kind = "subtitle"
	KindKicker        Kind = "kicker"
	KindHeader        Kind = "header"
	KindSubheader     Kind = "subheader"
	KindParagraph     Kind = "paragraph"
	KindPreformatted  Kind = "preformatted"
	KindFooter        Kind = "footer"
	KindAuthorDate    Kind = "authorDate"
	KindImage         Kind = "image"
	KindVideo         Kind = "video"
	KindAudio         Kind = "audio"
	KindWebEmbed      Kind = "webEmbed"
	KindPostEmbed     Kind = "postEmbed"
	KindCollage       Kind = "collage"
	KindSlideshow     Kind = "slideshow"
	KindAnchor        Kind = "anchor"
	KindChannelBanner Kind = "channelBanner"
	KindDivider       Kind = "divider"
	KindList          Kind = "list"
	KindBlockQuote    Kind = "blockQuote"
	KindPullQuote     Kind = "pullQuote"
	KindDetails       Kind = "details"
	KindUnsupported   Kind = "unsupported"
)

// Block is one content block. The set of implementations is closed; code
// switching over blocks treats anything unknown as [Unsupported].
type Block interface {
	Kind() Kind
	isBlock()
}

// Cover wraps the block shown full-bleed at the top of an article.
type Cover struct{ Block Block }

// Text blocks.
type (
	Title        struct{ Text text.RichText }
	Subtitle     struct{ Text text.RichText }
	Kicker       struct{ Text text.RichText }
	Header       struct{ Text text.RichText }
	Subheader    struct{ Text text.RichText }
	Paragraph    struct{ Text text.RichText }
	Preformatted struct{ Text text.RichText }
	Footer       struct{ Text text.RichText }
)

// AuthorDate is the byline. Date is a Unix timestamp; zero means absent.
type AuthorDate struct {
	Author text.RichText
	Date   int32
}

// Image is a photo with an optional caption. Credit is a second, smaller
// caption line naming the source.
type Image struct {
	Media   media.ID
	Caption text.RichText
	Credit  text.RichText
}

// Video is a video with an optional caption and credit.
type Video struct {
	Media    media.ID
	Caption  text.RichText
	Credit   text.RichText
	Autoplay bool
	Loop     bool
}

// Audio is an audio track with an optional caption and credit.
type Audio struct {
	Media   media.ID
	Caption text.RichText
	Credit  text.RichText
}

// WebEmbed is an embedded web page. Dimensions is nil when the source did
// not declare a size.
type WebEmbed struct {
	URL            string
	HTML           string
	Dimensions     *geom.Size
	Caption        text.RichText
	Credit         text.RichText
	StretchToWidth bool
	AllowScrolling bool
}

// PostEmbed is a quoted post from elsewhere, with its own nested blocks.
type PostEmbed struct {
	Avatar  *media.ID
	Author  text.RichText
	Date    int32
	Blocks  []Block
	Caption text.RichText
	Credit  text.RichText
}

// Collage is a grid of images and videos.
type Collage struct {
	Blocks  []Block
	Caption text.RichText
	Credit  text.RichText
}

// Slideshow is a horizontally paged carousel of images and videos.
type Slideshow struct {
	Blocks  []Block
	Caption text.RichText
	Credit  text.RichText
}

// Anchor marks an in-page link target.
type Anchor struct{ Name string }

// ChannelRef identifies the channel a banner promotes.
type ChannelRef struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Username string `json:"username,omitempty"`
}

// ChannelBanner promotes a channel; Channel may be nil when unresolved.
type ChannelBanner struct{ Channel *ChannelRef }

// Divider is a horizontal rule.
type Divider struct{}

// List is an ordered or bulleted list.
type List struct {
	Items   []ListItem
	Ordered bool
}

// ListItem is one list row. A row with Blocks is laid out as a nested stack
// and its Text is ignored.
type ListItem struct {
	Text   text.RichText
	Blocks []Block
}

// TextItems wraps plain rich-text rows.
func TextItems(rows ...text.RichText) []ListItem {
	items := make([]ListItem, len(rows))
	for i, r := range rows {
		items[i] = ListItem{Text: r}
	}
	return items
}

// BlockQuote is an indented quotation with a side rail.
type BlockQuote struct {
	Text    text.RichText
	Caption text.RichText
}

// PullQuote is a centered quotation.
type PullQuote struct {
	Text    text.RichText
	Caption text.RichText
}

// Details is a collapsible section. Expanded is its initial state.
type Details struct {
	Title    text.RichText
	Blocks   []Block
	Expanded bool
}

// Unsupported stands in for any block the engine cannot lay out. Name keeps
// the original type tag for diagnostics.
type Unsupported struct{ Name string }

func (Cover) Kind() Kind         { return KindCover }
func (Title) Kind() Kind         { return KindTitle }
func (Subtitle) Kind() Kind      { return KindSubtitle }
func (Kicker) Kind() Kind        { return KindKicker }
func (Header) Kind() Kind        { return KindHeader }
func (Subheader) Kind() Kind     { return KindSubheader }
func (Paragraph) Kind() Kind     { return KindParagraph }
func (Preformatted) Kind() Kind  { return KindPreformatted }
func (Footer) Kind() Kind        { return KindFooter }
func (AuthorDate) Kind() Kind    { return KindAuthorDate }
func (Image) Kind() Kind         { return KindImage }
func (Video) Kind() Kind         { return KindVideo }
func (Audio) Kind() Kind         { return KindAudio }
func (WebEmbed) Kind() Kind      { return KindWebEmbed }
func (PostEmbed) Kind() Kind     { return KindPostEmbed }
func (Collage) Kind() Kind       { return KindCollage }
func (Slideshow) Kind() Kind     { return KindSlideshow }
func (Anchor) Kind() Kind        { return KindAnchor }
func (ChannelBanner) Kind() Kind { return KindChannelBanner }
func (Divider) Kind() Kind       { return KindDivider }
func (List) Kind() Kind          { return KindList }
func (BlockQuote) Kind() Kind    { return KindBlockQuote }
func (PullQuote) Kind() Kind     { return KindPullQuote }
func (Details) Kind() Kind       { return KindDetails }
func (Unsupported) Kind() Kind   { return KindUnsupported }

func (Cover) isBlock()         {}
func (Title) isBlock()         {}
func (Subtitle) isBlock()      {}
func (Kicker) isBlock()        {}
func (Header) isBlock()        {}
func (Subheader) isBlock()     {}
func (Paragraph) isBlock()     {}
func (Preformatted) isBlock()  {}
func (Footer) isBlock()        {}
func (AuthorDate) isBlock()    {}
func (Image) isBlock()         {}
func (Video) isBlock()         {}
func (Audio) isBlock()         {}
func (WebEmbed) isBlock()      {}
func (PostEmbed) isBlock()     {}
func (Collage) isBlock()       {}
func (Slideshow) isBlock()     {}
func (Anchor) isBlock()        {}
func (ChannelBanner) isBlock() {}
func (Divider) isBlock()       {}
func (List) isBlock()          {}
func (BlockQuote) isBlock()    {}
func (PullQuote) isBlock()     {}
func (Details) isBlock()       {}
func (Unsupported) isBlock()   {}
