// Package media describes the media resources a page refers to and the
// registry the layout engine resolves them through.
package media

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/instantview/pkg/core/geom"
)

// ID identifies a media resource within one page.
type ID string

// Kind is the type of a media resource.
type Kind int

const (
	KindImage Kind = iota
	KindVideo
	KindAudio
	KindFile
)

var kindNames = [...]string{"image", "video", "audio", "file"}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown media kind %q", s)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Descriptor is what the registry knows about one resource.
type Descriptor struct {
	ID       ID      `json:"id" toml:"id"`
	Kind     Kind    `json:"kind" toml:"kind"`
	Width    float64 `json:"width,omitempty" toml:"width,omitempty"`
	Height   float64 `json:"height,omitempty" toml:"height,omitempty"`
	MimeType string  `json:"mimeType,omitempty" toml:"mime_type,omitempty"`
	URL      string  `json:"url,omitempty" toml:"url,omitempty"`
	Duration float64 `json:"duration,omitempty" toml:"duration,omitempty"`
	Title    string  `json:"title,omitempty" toml:"title,omitempty"`
}

// Dimensions returns the pixel size of the resource.
func (d Descriptor) Dimensions() geom.Size { return geom.Size{Width: d.Width, Height: d.Height} }

// IsPhotoLike reports whether a file resource can be shown as an image.
func (d Descriptor) IsPhotoLike() bool {
	return d.Kind == KindFile && strings.HasPrefix(d.MimeType, "image/") && !d.Dimensions().IsEmpty()
}

// Registry resolves media references. Lookups must be side-effect free.
type Registry interface {
	Lookup(id ID) (Descriptor, bool)
}

// Table is a map-backed Registry.
type Table map[ID]Descriptor

// NewTable indexes descriptors by ID. Later duplicates win.
func NewTable(ds ...Descriptor) Table {
	t := make(Table, len(ds))
	for _, d := range ds {
		t[d.ID] = d
	}
	return t
}

// Lookup implements Registry.
func (t Table) Lookup(id ID) (Descriptor, bool) {
	d, ok := t[id]
	return d, ok
}

// Sorted returns the descriptors ordered by ID.
func (t Table) Sorted() []Descriptor {
	out := make([]Descriptor, 0, len(t))
	for _, d := range t {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Empty is a Registry that resolves nothing.
var Empty Registry = Table(nil)
