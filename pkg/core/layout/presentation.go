package layout

import "github.com/matzehuels/instantview/pkg/core/text"

// Presentation holds the appearance settings the layout depends on. Only
// the serif flag changes geometry; colors are copied into items.
type Presentation struct {
	Serif          bool       `json:"serif" toml:"serif"`
	TextColor      text.Color `json:"text" toml:"text"`
	SecondaryColor text.Color `json:"secondary" toml:"secondary"`
	LinkColor      text.Color `json:"link" toml:"link"`
	DividerColor   text.Color `json:"divider" toml:"divider"`
	CodeBackground text.Color `json:"codeBackground" toml:"code_background"`
	AccentColor    text.Color `json:"accent" toml:"accent"`
}

// DefaultPresentation is the light, sans-serif appearance.
func DefaultPresentation() Presentation {
	return Presentation{
		TextColor:      0x000000,
		SecondaryColor: 0x79818c,
		LinkColor:      0x2481cc,
		DividerColor:   0xc8c7cc,
		CodeBackground: 0xf5f5f5,
		AccentColor:    0x000000,
	}
}

// DarkPresentation is the night appearance.
func DarkPresentation() Presentation {
	return Presentation{
		TextColor:      0xe9e9e9,
		SecondaryColor: 0x8e8e93,
		LinkColor:      0x5aa6e8,
		DividerColor:   0x3a3a3c,
		CodeBackground: 0x1f1f1f,
		AccentColor:    0xe9e9e9,
	}
}

type category int

const (
	catTitle category = iota
	catSubtitle
	catHeader
	catSubheader
	catParagraph
	catPreformatted
	catFooter
	catCaption
	catKicker
	catQuote
	catCredit
)

type textStyle struct {
	size      float64
	serif     bool
	fixed     bool
	bold      bool
	italic    bool
	secondary bool
}

func (p Presentation) style(c category) textStyle {
	switch c {
	case catTitle:
		return textStyle{size: 28, serif: true}
	case catSubtitle:
		return textStyle{size: 21, serif: true}
	case catHeader:
		return textStyle{size: 24, serif: true}
	case catSubheader:
		return textStyle{size: 19, serif: true}
	case catPreformatted:
		return textStyle{size: 16, fixed: true}
	case catFooter, catCaption:
		return textStyle{size: 15, serif: p.Serif, secondary: true}
	case catCredit:
		return textStyle{size: 13, serif: p.Serif, secondary: true}
	case catKicker:
		return textStyle{size: 14, bold: true}
	case catQuote:
		return textStyle{size: 17, serif: true, italic: true}
	}
	return textStyle{size: 17, serif: p.Serif}
}

// styles builds the stack for a text category.
func (p Presentation) styles(c category) text.StyleStack {
	s := p.style(c)
	color := p.TextColor
	if s.secondary {
		color = p.SecondaryColor
	}
	stack := text.StyleStack{}.
		Push(text.Foreground(color)).
		Push(text.Serif(s.serif)).
		Push(text.FontSize(s.size)).
		Push(text.LineSpacing(1))
	if s.fixed {
		stack = stack.Push(text.FixedWidth(true))
	}
	if s.bold {
		stack = stack.Push(text.Bolded())
	}
	if s.italic {
		stack = stack.Push(text.Italicized())
	}
	return stack
}
