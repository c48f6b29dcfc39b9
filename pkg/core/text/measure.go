package text

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/instantview/pkg/core/geom"
)

// Measurer lays rich text out into lines no wider than maxWidth.
//
// Implementations must be deterministic: equal inputs give equal boxes. The
// returned box width never exceeds maxWidth, and empty text measures as the
// zero Box.
type Measurer interface {
	Measure(t RichText, styles StyleStack, maxWidth float64) Box
}

// Box is a measured block of text.
type Box struct {
	Size  geom.Size `json:"size"`
	Lines []Line    `json:"lines,omitempty"`
}

// IsEmpty reports whether the box has no visible extent.
func (b Box) IsEmpty() bool { return b.Size.Width <= 0 && b.Size.Height <= 0 }

// Line is one wrapped line. Frame is relative to the top-left of the box.
type Line struct {
	Frame geom.Rect `json:"frame"`
	Runs  []Run     `json:"runs,omitempty"`
}

// Text returns the characters of the line.
func (l Line) Text() string {
	var s string
	for _, r := range l.Runs {
		s += r.Text
	}
	return s
}

// Links returns the distinct link targets on the line, in order.
func (l Line) Links() []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range l.Runs {
		if r.Attrs.Link != "" && !seen[r.Attrs.Link] {
			seen[r.Attrs.Link] = true
			out = append(out, r.Attrs.Link)
		}
	}
	return out
}

// Alignment is horizontal text alignment inside a text frame.
type Alignment int

const (
	AlignNatural Alignment = iota
	AlignCenter
	AlignRight
)

var alignmentNames = [...]string{"natural", "center", "right"}

// String returns the alignment name.
func (a Alignment) String() string {
	if int(a) >= 0 && int(a) < len(alignmentNames) {
		return alignmentNames[a]
	}
	return "natural"
}

// MarshalJSON encodes the alignment by name.
func (a Alignment) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }

// UnmarshalJSON decodes an alignment name.
func (a *Alignment) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for i, n := range alignmentNames {
		if n == s {
			*a = Alignment(i)
			return nil
		}
	}
	return fmt.Errorf("unknown alignment %q", s)
}

// Align positions each line horizontally within width. Natural alignment
// leaves lines at x = 0. The receiver is not modified.
func (b Box) Align(a Alignment, width float64) Box {
	if a == AlignNatural || len(b.Lines) == 0 {
		return b
	}
	lines := make([]Line, len(b.Lines))
	for i, l := range b.Lines {
		switch a {
		case AlignCenter:
			l.Frame.X = (width - l.Frame.Width) / 2
		case AlignRight:
			l.Frame.X = width - l.Frame.Width
		}
		lines[i] = l
	}
	b.Lines = lines
	return b
}
