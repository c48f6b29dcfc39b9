// Package fonts provides the Go font family for measuring and drawing text.
//
// The TTF data comes from golang.org/x/image/font/gofont, so it is compiled
// into the binary and available without any system fonts installed.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Face selects one member of the family.
type Face int

const (
	Regular Face = iota
	Bold
	Italic
	BoldItalic
	Mono
	MonoBold
)

// Faces lists every face in a stable order.
var Faces = []Face{Regular, Bold, Italic, BoldItalic, Mono, MonoBold}

// Select returns the face for a style combination. Monospaced text has no
// italic cut and falls back to the upright one.
func Select(bold, italic, mono bool) Face {
	switch {
	case mono && bold:
		return MonoBold
	case mono:
		return Mono
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	}
	return Regular
}

// TTF returns the raw font data of f.
func (f Face) TTF() []byte {
	switch f {
	case Bold:
		return gobold.TTF
	case Italic:
		return goitalic.TTF
	case BoldItalic:
		return gobolditalic.TTF
	case Mono:
		return gomono.TTF
	case MonoBold:
		return gomonobold.TTF
	}
	return goregular.TTF
}

// Family is the CSS font-family name of f.
func (f Face) Family() string {
	if f == Mono || f == MonoBold {
		return MonoFamily
	}
	return SansFamily
}

// Weight is the CSS font-weight of f.
func (f Face) Weight() string {
	if f == Bold || f == BoldItalic || f == MonoBold {
		return "bold"
	}
	return "normal"
}

// Style is the CSS font-style of f.
func (f Face) Style() string {
	if f == Italic || f == BoldItalic {
		return "italic"
	}
	return "normal"
}

// CSS family names.
const (
	SansFamily = "Go"
	MonoFamily = "Go Mono"
)

// Fallback stacks for renderers without the embedded fonts.
const (
	SansFallback  = `'Go', 'Helvetica Neue', Arial, sans-serif`
	SerifFallback = `Georgia, 'Times New Roman', serif`
	MonoFallback  = `'Go Mono', Menlo, Consolas, monospace`
)

// Cache for base64-encoded faces (computed once per face on first access).
var (
	encodedMu sync.Mutex
	encoded   = map[Face]string{}
)

// Base64 returns the TTF data of f as a base64 string, suitable for an
// @font-face data URL. The result is cached.
func (f Face) Base64() string {
	encodedMu.Lock()
	defer encodedMu.Unlock()
	if s, ok := encoded[f]; ok {
		return s
	}
	s := base64.StdEncoding.EncodeToString(f.TTF())
	encoded[f] = s
	return s
}
