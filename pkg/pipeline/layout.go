package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/instantview/pkg/cache"
	"github.com/matzehuels/instantview/pkg/core/layout"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/core/text"
	"github.com/matzehuels/instantview/pkg/core/text/fontmetrics"
	pkgio "github.com/matzehuels/instantview/pkg/io"
	"github.com/matzehuels/instantview/pkg/view"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout lays pg out with a fresh engine and exports the result.
func GenerateLayout(pg page.Page, opts Options) (view.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return view.Layout{}, err
	}
	engine, err := NewEngine(opts)
	if err != nil {
		return view.Layout{}, err
	}
	r := engine.Page(pg, opts.Width)
	return view.Export(r, engine.Presentation()), nil
}

// NewEngine builds a layout engine from the layout options.
func NewEngine(opts Options) (*layout.Engine, error) {
	m, err := measurer(opts.Metrics)
	if err != nil {
		return nil, err
	}
	p, err := opts.presentation()
	if err != nil {
		return nil, err
	}
	engineOpts := []layout.Option{
		layout.WithMeasurer(m),
		layout.WithPresentation(p),
		layout.WithMaxContentWidth(opts.MaxContentWidth),
		layout.WithLogger(opts.Logger),
	}
	if opts.AuthorDateTemplate != "" {
		engineOpts = append(engineOpts, layout.WithAuthorDateTemplate(opts.AuthorDateTemplate))
	}
	return layout.New(engineOpts...), nil
}

// trueType parses the Go fonts once per process.
var trueType = sync.OnceValues(fontmetrics.New)

func measurer(name string) (text.Measurer, error) {
	if name == MetricsTrueType {
		m, err := trueType()
		if err != nil {
			return nil, fmt.Errorf("load font metrics: %w", err)
		}
		return m, nil
	}
	return text.Estimator{}, nil
}

// =============================================================================
// Themes
// =============================================================================

func (o *Options) presentation() (layout.Presentation, error) {
	if o.Presentation != nil {
		return *o.Presentation, nil
	}
	if IsThemeFile(o.Theme) {
		return pkgio.LoadTheme(o.Theme)
	}
	return presetTheme(o.Theme)
}

// IsThemeFile reports whether theme names a TOML theme file rather than a
// preset.
func IsThemeFile(theme string) bool {
	return strings.EqualFold(filepath.Ext(theme), ".toml")
}

func presetTheme(name string) (layout.Presentation, error) {
	return pkgio.Preset(name)
}

func presentationHash(p layout.Presentation) string {
	return cache.Hash(fmt.Appendf(nil, "%+v", p))
}
