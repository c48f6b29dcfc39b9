package layout

import "github.com/matzehuels/instantview/pkg/core/page"

// Spacing between consecutive blocks, in points.
const (
	// coverTitleOverlap pulls a title up onto the cover above it.
	coverTitleOverlap = -24
	spacingDivider    = 32
	spacingQuote      = 27
	spacingKicker     = 16
	spacingTitle      = 20
	spacingByline     = 18
	spacingLead       = 34
	spacingSection    = 25
	spacingCode       = 19
	spacingHeading    = 32
	spacingDefault    = 20
	spacingEdge       = 25
)

// SpacingBetween returns the vertical gap between upper and lower. Either
// may be nil: a nil upper is the top of the page and a nil lower its end.
// The rules are checked in order and the first match wins.
func SpacingBetween(upper, lower page.Block) float64 {
	switch {
	case upper == nil && lower == nil:
		return 0
	case lower == nil:
		return spacingEdge
	case flush(lower):
		return 0
	case upper == nil:
		return spacingEdge
	}

	u, l := upper.Kind(), lower.Kind()
	switch {
	case u == page.KindCover && l == page.KindTitle:
		return coverTitleOverlap
	case u == page.KindDivider || l == page.KindDivider:
		return spacingDivider
	case isQuote(u) || isQuote(l):
		return spacingQuote
	}

	switch l {
	case page.KindTitle:
		if u == page.KindKicker {
			return spacingKicker
		}
		return spacingTitle
	case page.KindAuthorDate:
		if u == page.KindTitle || u == page.KindSubtitle {
			return spacingByline
		}
		return spacingDefault
	case page.KindParagraph:
		switch u {
		case page.KindTitle, page.KindAuthorDate:
			return spacingLead
		case page.KindHeader, page.KindSubheader, page.KindParagraph:
			return spacingSection
		}
		return spacingDefault
	case page.KindList:
		if u == page.KindTitle || u == page.KindAuthorDate {
			return spacingLead
		}
		return spacingSection
	case page.KindPreformatted:
		if u == page.KindParagraph {
			return spacingCode
		}
		return spacingDefault
	case page.KindHeader, page.KindSubheader:
		return spacingHeading
	}
	return spacingDefault
}

// flush kinds sit directly against whatever precedes them.
func flush(b page.Block) bool {
	switch b.Kind() {
	case page.KindCover, page.KindChannelBanner, page.KindAnchor:
		return true
	}
	return false
}

func isQuote(k page.Kind) bool {
	return k == page.KindBlockQuote || k == page.KindPullQuote
}
