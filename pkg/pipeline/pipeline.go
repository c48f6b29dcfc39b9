// Package pipeline runs the load -> layout -> render pipeline shared by the
// CLI and the HTTP service.
//
// # Stages
//
//  1. Load: decode a JSON or TOML page document into a [page.Page]
//  2. Layout: lay the page out at a width and export a [view.Layout]
//  3. Render: produce artifacts (json, svg, png, pdf, dot)
//
// Each stage can run on its own. [Runner] wraps the stages with caching so
// repeated requests for the same document and options are served from the
// cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:   "article.json",
//	    Document: data,
//	    Width:    390,
//	    Formats:  []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/instantview/pkg/cache"
	"github.com/matzehuels/instantview/pkg/core/layout"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/errors"
	"github.com/matzehuels/instantview/pkg/view"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default bounding width in points.
	DefaultWidth = 600.0

	// DefaultMaxContentWidth disables the centered content column.
	DefaultMaxContentWidth = 0.0

	// DefaultMetrics is the default text measurer.
	DefaultMetrics = MetricsEstimate

	// DefaultScale is the default PNG pixel density.
	DefaultScale = 2.0
)

// Text measurers.
const (
	MetricsEstimate = "estimate"
	MetricsTrueType = "truetype"
)

// Document formats.
const (
	DocumentJSON = "json"
	DocumentTOML = "toml"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
)

// Formats lists every supported output format.
var Formats = []string{FormatJSON, FormatSVG, FormatPNG, FormatPDF, FormatDOT}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It is JSON-tagged so the HTTP service
// can accept it as a request body.
type Options struct {
	// Load options
	Source         string `json:"source,omitempty"` // file name, used for logs and format detection
	Document       []byte `json:"-"`
	DocumentFormat string `json:"document_format,omitempty"`
	Refresh        bool   `json:"refresh,omitempty"`

	// Layout options
	Width              float64 `json:"width,omitempty"`
	MaxContentWidth    float64 `json:"max_content_width,omitempty"`
	Metrics            string  `json:"metrics,omitempty"`
	Theme              string  `json:"theme,omitempty"` // preset name or TOML theme path
	AuthorDateTemplate string  `json:"author_date_template,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Labels   bool     `json:"labels,omitempty"`
	Grid     float64  `json:"grid,omitempty"`
	Fonts    bool     `json:"fonts,omitempty"`
	Raster   bool     `json:"raster,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger       *log.Logger          `json:"-"`
	Presentation *layout.Presentation `json:"-"` // overrides Theme
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// PassID identifies the run in log lines.
	PassID string

	Page         page.Page
	DocumentHash string

	Layout     view.Layout
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount int
	ItemCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LoadHit   bool
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForLoad checks that a document is present and its format known.
func (o *Options) ValidateForLoad() error {
	if len(o.Document) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "document is empty")
	}
	if o.DocumentFormat == "" {
		o.DocumentFormat = DocumentJSON
		if strings.EqualFold(filepath.Ext(o.Source), ".toml") {
			o.DocumentFormat = DocumentTOML
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return errors.ValidateFormat(o.DocumentFormat, DocumentJSON, DocumentTOML)
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Metrics == "" {
		o.Metrics = DefaultMetrics
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets layout defaults and validates them.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateWidth(o.Width); err != nil {
		return err
	}
	if o.MaxContentWidth < 0 {
		return errors.New(errors.ErrCodeInvalidWidth, "max content width must not be negative, got %v", o.MaxContentWidth)
	}
	if err := errors.ValidateMetrics(o.Metrics); err != nil {
		return err
	}
	if o.Theme != "" && !IsThemeFile(o.Theme) {
		if _, err := presetTheme(o.Theme); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets render defaults and validates the formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f, Formats...); err != nil {
			return err
		}
	}
	if o.Scale < 0 || o.Grid < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale and grid must not be negative")
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	theme := o.Theme
	if o.Presentation != nil {
		// Runtime presentations have no name; key them by content.
		theme = "custom:" + presentationHash(*o.Presentation)
	}
	return cache.LayoutKeyOpts{
		Width:              o.Width,
		MaxContentWidth:    o.MaxContentWidth,
		Metrics:            o.Metrics,
		Theme:              theme,
		AuthorDateTemplate: o.AuthorDateTemplate,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF:
		k.Labels, k.Grid, k.Fonts = o.Labels, o.Grid, o.Fonts
	case FormatPNG:
		k.Labels, k.Grid, k.Scale, k.Raster = o.Labels, o.Grid, o.Scale, o.Raster
	case FormatDOT:
		k.Detailed = o.Detailed
	}
	return k
}
