package text

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque 24-bit RGB color, 0xRRGGBB.
type Color uint32

// Common colors.
const (
	Black Color = 0x000000
	White Color = 0xffffff
)

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string { return fmt.Sprintf("#%06x", uint32(c)&0xffffff) }

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// ParseColor parses "#rrggbb" or "#rgb". The leading '#' is optional.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(v), nil
}

// MarshalText encodes the color as "#rrggbb" for JSON and TOML.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

// UnmarshalText decodes "#rrggbb" or "#rgb".
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
