package text

// DirectiveKind identifies what a [Directive] sets.
type DirectiveKind int

const (
	DirectiveNone DirectiveKind = iota
	DirectiveFontSize
	DirectiveSerif
	DirectiveFixed
	DirectiveLineSpacing
	DirectiveColor
	DirectiveBold
	DirectiveItalic
	DirectiveUnderline
	DirectiveStrikethrough
	DirectiveLink
)

// Directive is one styling instruction. Construct it with the helper
// functions below; the zero Directive is a no-op.
type Directive struct {
	Kind   DirectiveKind
	Number float64
	Flag   bool
	Color  Color
	Target string
}

// FontSize sets the point size.
func FontSize(pt float64) Directive { return Directive{Kind: DirectiveFontSize, Number: pt} }

// Serif selects the serif (true) or sans-serif (false) family.
func Serif(on bool) Directive { return Directive{Kind: DirectiveSerif, Flag: on} }

// FixedWidth selects the monospaced family.
func FixedWidth(on bool) Directive { return Directive{Kind: DirectiveFixed, Flag: on} }

// LineSpacing multiplies the natural line height.
func LineSpacing(f float64) Directive { return Directive{Kind: DirectiveLineSpacing, Number: f} }

// Foreground sets the text color.
func Foreground(c Color) Directive { return Directive{Kind: DirectiveColor, Color: c} }

// Bolded turns on bold weight.
func Bolded() Directive { return Directive{Kind: DirectiveBold, Flag: true} }

// Italicized turns on italics.
func Italicized() Directive { return Directive{Kind: DirectiveItalic, Flag: true} }

// Underlined turns on underlining.
func Underlined() Directive { return Directive{Kind: DirectiveUnderline, Flag: true} }

// Struck turns on strikethrough.
func Struck() Directive { return Directive{Kind: DirectiveStrikethrough, Flag: true} }

// LinkTarget marks text as a link. Targets starting with '#' name an
// in-page anchor.
func LinkTarget(target string) Directive { return Directive{Kind: DirectiveLink, Target: target} }

// Attributes is the effective style of a run after resolving a stack.
type Attributes struct {
	FontSize      float64 `json:"fontSize"`
	Serif         bool    `json:"serif,omitempty"`
	Fixed         bool    `json:"fixed,omitempty"`
	LineSpacing   float64 `json:"lineSpacing"`
	Color         Color   `json:"color"`
	Bold          bool    `json:"bold,omitempty"`
	Italic        bool    `json:"italic,omitempty"`
	Underline     bool    `json:"underline,omitempty"`
	Strikethrough bool    `json:"strikethrough,omitempty"`
	Link          string  `json:"link,omitempty"`
}

// DefaultAttributes is what an empty stack resolves to.
var DefaultAttributes = Attributes{FontSize: 17, LineSpacing: 1, Color: Black}

// StyleStack is an ordered, push-only sequence of directives. The zero value
// is an empty stack ready to use.
type StyleStack struct {
	items []Directive
}

// Push returns a new stack with d on top. The receiver is left untouched and
// the result never aliases its storage.
func (s StyleStack) Push(d Directive) StyleStack {
	items := make([]Directive, len(s.items), len(s.items)+1)
	copy(items, s.items)
	return StyleStack{items: append(items, d)}
}

// Len returns the number of directives.
func (s StyleStack) Len() int { return len(s.items) }

// Directives returns a copy of the directives, bottom first.
func (s StyleStack) Directives() []Directive {
	out := make([]Directive, len(s.items))
	copy(out, s.items)
	return out
}

// Resolve folds the stack from bottom to top over [DefaultAttributes]. Later
// directives override earlier ones.
func (s StyleStack) Resolve() Attributes {
	a := DefaultAttributes
	for _, d := range s.items {
		switch d.Kind {
		case DirectiveFontSize:
			a.FontSize = d.Number
		case DirectiveSerif:
			a.Serif = d.Flag
		case DirectiveFixed:
			a.Fixed = d.Flag
		case DirectiveLineSpacing:
			a.LineSpacing = d.Number
		case DirectiveColor:
			a.Color = d.Color
		case DirectiveBold:
			a.Bold = d.Flag
		case DirectiveItalic:
			a.Italic = d.Flag
		case DirectiveUnderline:
			a.Underline = d.Flag
		case DirectiveStrikethrough:
			a.Strikethrough = d.Flag
		case DirectiveLink:
			a.Link = d.Target
		}
	}
	return a
}
