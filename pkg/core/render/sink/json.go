package sink

import (
	"encoding/json"

	"github.com/matzehuels/instantview/pkg/view"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	url     string
	theme   string
	metrics string
	compact bool
}

// WithJSONURL records the source document URL.
func WithJSONURL(url string) JSONOption { return func(r *jsonRenderer) { r.url = url } }

// WithJSONTheme records the theme name the layout was computed for.
func WithJSONTheme(name string) JSONOption { return func(r *jsonRenderer) { r.theme = name } }

// WithJSONMetrics records the text measurer that produced the layout.
func WithJSONMetrics(name string) JSONOption { return func(r *jsonRenderer) { r.metrics = name } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	URL     string `json:"url,omitempty"`
	Theme   string `json:"theme,omitempty"`
	Metrics string `json:"metrics,omitempty"`
	view.Layout
}

// RenderJSON exports the layout as a JSON document. Without options the
// output is exactly [view.MarshalLayout], so it can be read back with
// [view.UnmarshalLayout]; the metadata fields are ignored on the way in.
func RenderJSON(l view.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	out := jsonOutput{URL: r.url, Theme: r.theme, Metrics: r.metrics, Layout: l}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
