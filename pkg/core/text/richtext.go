package text

import "strings"

// RichText is a styled text tree. The concrete types are [Empty], [Plain],
// [Concat] and [Span]; a nil RichText behaves like [Empty].
type RichText interface {
	isRichText()
}

// Empty is the absent text.
type Empty struct{}

// Plain is an unstyled run.
type Plain string

// Concat is an ordered sequence of fragments.
type Concat []RichText

// SpanStyle selects the styling a [Span] applies to its content.
type SpanStyle int

const (
	StyleBold SpanStyle = iota
	StyleItalic
	StyleUnderline
	StyleStrikethrough
	StyleFixed
	StyleLink
	StyleAnchor
)

var spanStyleNames = map[SpanStyle]string{
	StyleBold:          "bold",
	StyleItalic:        "italic",
	StyleUnderline:     "underline",
	StyleStrikethrough: "strike",
	StyleFixed:         "fixed",
	StyleLink:          "url",
	StyleAnchor:        "anchor",
}

// String returns the document name of the style.
func (s SpanStyle) String() string {
	if n, ok := spanStyleNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseSpanStyle is the inverse of [SpanStyle.String].
func ParseSpanStyle(name string) (SpanStyle, bool) {
	for s, n := range spanStyleNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// Span applies one style to nested text. Target holds the URL for
// [StyleLink] and the anchor name for [StyleAnchor].
type Span struct {
	Style  SpanStyle
	Text   RichText
	Target string
}

func (Empty) isRichText()  {}
func (Plain) isRichText()  {}
func (Concat) isRichText() {}
func (Span) isRichText()   {}

// Bold wraps t in a bold span.
func Bold(t RichText) RichText { return Span{Style: StyleBold, Text: t} }

// Italic wraps t in an italic span.
func Italic(t RichText) RichText { return Span{Style: StyleItalic, Text: t} }

// Fixed wraps t in a fixed-width span.
func Fixed(t RichText) RichText { return Span{Style: StyleFixed, Text: t} }

// Link wraps t in a link to url.
func Link(t RichText, url string) RichText { return Span{Style: StyleLink, Text: t, Target: url} }

// Join concatenates fragments, dropping empty ones. It returns [Empty] when
// nothing remains and the fragment itself when only one does.
func Join(parts ...RichText) RichText {
	kept := make(Concat, 0, len(parts))
	for _, p := range parts {
		if !IsEmpty(p) {
			kept = append(kept, p)
		}
	}
	switch len(kept) {
	case 0:
		return Empty{}
	case 1:
		return kept[0]
	}
	return kept
}

// IsEmpty reports whether t renders no characters at all.
func IsEmpty(t RichText) bool {
	switch v := t.(type) {
	case nil, Empty:
		return true
	case Plain:
		return v == ""
	case Concat:
		for _, c := range v {
			if !IsEmpty(c) {
				return false
			}
		}
		return true
	case Span:
		return IsEmpty(v.Text)
	}
	return true
}

// PlainString flattens t to its characters, dropping all styling.
func PlainString(t RichText) string {
	var b strings.Builder
	writePlain(&b, t)
	return b.String()
}

func writePlain(b *strings.Builder, t RichText) {
	switch v := t.(type) {
	case Plain:
		b.WriteString(string(v))
	case Concat:
		for _, c := range v {
			writePlain(b, c)
		}
	case Span:
		writePlain(b, v.Text)
	}
}

// Run is a maximal stretch of characters sharing one set of attributes.
type Run struct {
	Text  string     `json:"text"`
	Attrs Attributes `json:"attrs"`
}

// Flatten resolves t against stack into attribute runs, in reading order.
// Spans push their directive onto a copy of the stack, so siblings never
// see each other's styling.
func Flatten(t RichText, stack StyleStack) []Run {
	var runs []Run
	flatten(t, stack, &runs)
	return runs
}

func flatten(t RichText, stack StyleStack, runs *[]Run) {
	switch v := t.(type) {
	case Plain:
		if v == "" {
			return
		}
		attrs := stack.Resolve()
		if n := len(*runs); n > 0 && (*runs)[n-1].Attrs == attrs {
			(*runs)[n-1].Text += string(v)
			return
		}
		*runs = append(*runs, Run{Text: string(v), Attrs: attrs})
	case Concat:
		for _, c := range v {
			flatten(c, stack, runs)
		}
	case Span:
		flatten(v.Text, stack.Push(spanDirective(v)), runs)
	}
}

func spanDirective(s Span) Directive {
	switch s.Style {
	case StyleBold:
		return Bolded()
	case StyleItalic:
		return Italicized()
	case StyleUnderline:
		return Underlined()
	case StyleStrikethrough:
		return Struck()
	case StyleFixed:
		return FixedWidth(true)
	case StyleLink:
		return LinkTarget(s.Target)
	case StyleAnchor:
		return LinkTarget("#" + s.Target)
	}
	return Directive{}
}
