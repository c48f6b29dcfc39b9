package errors

import (
	"math"
	"net/url"
	"slices"
	"strings"
	"unicode"
)

// MaxWidth bounds layout widths accepted from users.
const MaxWidth = 10000

// ValidateWidth checks a requested layout width.
// The engine itself accepts any width and degrades non-positive ones to an
// empty layout; callers reject them up front instead.
func ValidateWidth(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidWidth, "width must be a finite number")
	}
	if w <= 0 {
		return New(ErrCodeInvalidWidth, "width must be positive, got %v", w)
	}
	if w > MaxWidth {
		return New(ErrCodeInvalidWidth, "width too large (max %d)", MaxWidth)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateMetrics checks the name of a text measurer.
func ValidateMetrics(name string) error {
	switch name {
	case "estimate", "truetype":
		return nil
	}
	return New(ErrCodeInvalidMetrics, "unknown metrics %q (want estimate or truetype)", name)
}

// ValidateDocumentFilename checks that filename names a page document.
func ValidateDocumentFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidPath, "document filename cannot be empty")
	}
	switch strings.ToLower(filename[strings.LastIndexByte(filename, '.')+1:]) {
	case "json", "toml":
		return nil
	}
	return New(ErrCodeInvalidPath, "document %q must be a .json or .toml file", filename)
}

// ValidateURL checks that rawURL is an absolute http or https URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}

// MaxAnchorName bounds the length of anchor names in bytes.
const MaxAnchorName = 256

// ValidateAnchorName checks an in-page anchor name. Names are fragment
// identifiers, so they cannot contain whitespace or control characters.
func ValidateAnchorName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "anchor name cannot be empty")
	}
	if len(name) > MaxAnchorName {
		return New(ErrCodeInvalidInput, "anchor name too long (max %d bytes)", MaxAnchorName)
	}
	if i := strings.IndexFunc(name, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }); i >= 0 {
		return New(ErrCodeInvalidInput, "anchor name %q contains whitespace or control characters", name)
	}
	return nil
}
