// Package fontmetrics implements text.Measurer with real glyph advances from
// the Go font family.
//
// The Go fonts have no serif cut, so the serif flag only affects rendering,
// not measurement. Line breaking is shared with text.Estimator through
// text.Wrap, which keeps both measurers consistent apart from glyph widths.
package fontmetrics

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/matzehuels/instantview/pkg/core/text"
	"github.com/matzehuels/instantview/pkg/fonts"
)

// dpi of 72 makes one point one unit of layout space.
const dpi = 72

type faceKey struct {
	face fonts.Face
	size float64
}

// Measurer measures text with TrueType faces. Faces are parsed lazily and
// cached per (face, size); a Measurer is safe for concurrent use.
type Measurer struct {
	mu    sync.Mutex
	fonts map[fonts.Face]*truetype.Font
	faces map[faceKey]font.Face
}

// New returns a Measurer and parses the regular face eagerly, so a broken
// font surfaces here rather than during layout.
func New() (*Measurer, error) {
	m := &Measurer{
		fonts: map[fonts.Face]*truetype.Font{},
		faces: map[faceKey]font.Face{},
	}
	if _, err := m.font(fonts.Regular); err != nil {
		return nil, err
	}
	return m, nil
}

// Measure implements text.Measurer.
func (m *Measurer) Measure(t text.RichText, styles text.StyleStack, maxWidth float64) text.Box {
	if text.IsEmpty(t) {
		return text.Box{}
	}
	return text.Wrap(text.Flatten(t, styles), maxWidth, m)
}

// Advance implements text.Metrics.
func (m *Measurer) Advance(s string, a text.Attributes) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	face := m.face(a)
	if face == nil {
		return 0
	}
	return float64(font.MeasureString(face, s)) / 64
}

// LineHeight implements text.Metrics: 1.2 times the em height, scaled by
// the line spacing factor and rounded up.
func (m *Measurer) LineHeight(a text.Attributes) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	em := a.FontSize
	if face := m.face(a); face != nil {
		em = float64(face.Metrics().Height) / 64
	}
	spacing := a.LineSpacing
	if spacing <= 0 {
		spacing = 1
	}
	return math.Ceil(em*1.2*spacing - 1e-9)
}

// face returns the cached face for a; the caller holds m.mu.
func (m *Measurer) face(a text.Attributes) font.Face {
	key := faceKey{face: fonts.Select(a.Bold, a.Italic, a.Fixed), size: a.FontSize}
	if f, ok := m.faces[key]; ok {
		return f
	}
	ft, err := m.font(key.face)
	if err != nil {
		return nil
	}
	f := truetype.NewFace(ft, &truetype.Options{Size: a.FontSize, DPI: dpi, Hinting: font.HintingNone})
	m.faces[key] = f
	return f
}

func (m *Measurer) font(f fonts.Face) (*truetype.Font, error) {
	if ft, ok := m.fonts[f]; ok {
		return ft, nil
	}
	ft, err := truetype.Parse(f.TTF())
	if err != nil {
		return nil, fmt.Errorf("parse font %s %s/%s: %w", f.Family(), f.Weight(), f.Style(), err)
	}
	m.fonts[f] = ft
	return ft, nil
}
