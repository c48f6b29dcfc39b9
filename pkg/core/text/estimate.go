package text

import (
	"math"

	"github.com/rivo/uniseg"
)

// Average advances as a fraction of the font size.
const (
	regularAdvance = 0.5
	boldAdvance    = 0.5625
	fixedAdvance   = 0.625
	spaceAdvance   = 0.25
	wideAdvance    = 1.0
)

// Estimator is a font-free [Measurer]. It assigns every grapheme cluster an
// average advance, so results are stable across machines and platforms.
// East Asian wide clusters count as one em; fixed-width text uses the
// terminal cell width of each cluster.
type Estimator struct{}

// Measure implements [Measurer].
func (e Estimator) Measure(t RichText, styles StyleStack, maxWidth float64) Box {
	if IsEmpty(t) {
		return Box{}
	}
	return Wrap(Flatten(t, styles), maxWidth, e)
}

// Advance implements [Metrics].
func (Estimator) Advance(s string, a Attributes) float64 {
	var w float64
	state := -1
	for len(s) > 0 {
		var cluster string
		var cells int
		cluster, s, cells, state = uniseg.FirstGraphemeClusterInString(s, state)
		switch {
		case cluster == "\n" || cluster == "\r\n" || cluster == "\r":
		case a.Fixed:
			w += float64(cells) * fixedAdvance * a.FontSize
		case cluster == " " || cluster == "\t":
			w += spaceAdvance * a.FontSize
		case cells >= 2:
			w += wideAdvance * a.FontSize
		case a.Bold:
			w += boldAdvance * a.FontSize
		default:
			w += regularAdvance * a.FontSize
		}
	}
	return w
}

// LineHeight implements [Metrics]: 1.2 times the font size, scaled by the
// line spacing factor and rounded up to a whole point.
func (Estimator) LineHeight(a Attributes) float64 {
	spacing := a.LineSpacing
	if spacing <= 0 {
		spacing = 1
	}
	return math.Ceil(a.FontSize*12*spacing/10 - 1e-9)
}
