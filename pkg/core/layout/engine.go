package layout

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/instantview/pkg/core/media"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/core/text"
)

// DefaultAuthorDateTemplate joins author (%1$@) and date (%2$@).
const DefaultAuthorDateTemplate = "%1$@ • %2$@"

// LinkCallbacks receives link activations from text items. Either function
// may be nil.
type LinkCallbacks struct {
	OpenURL    func(url string)
	OpenAnchor func(name string)
}

// Activate dispatches target to the matching callback. Targets starting
// with '#' are in-page anchors.
func (l *LinkCallbacks) Activate(target string) {
	if l == nil || target == "" {
		return
	}
	if target[0] == '#' {
		if l.OpenAnchor != nil {
			l.OpenAnchor(target[1:])
		}
		return
	}
	if l.OpenURL != nil {
		l.OpenURL(target)
	}
}

// Engine holds everything a layout pass reads besides the blocks
// themselves. It is immutable after New, so one Engine may serve concurrent
// passes.
type Engine struct {
	measurer        text.Measurer
	media           media.Registry
	presentation    Presentation
	links           *LinkCallbacks
	logger          *log.Logger
	formatDate      func(int32) string
	authorDate      string
	maxContentWidth float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithMeasurer sets the text measurer. The default is [text.Estimator].
func WithMeasurer(m text.Measurer) Option { return func(e *Engine) { e.measurer = m } }

// WithMedia sets the media registry. When unset, [Engine.Page] uses the
// page's own media table.
func WithMedia(r media.Registry) Option { return func(e *Engine) { e.media = r } }

// WithPresentation sets the appearance.
func WithPresentation(p Presentation) Option { return func(e *Engine) { e.presentation = p } }

// WithLinks attaches callbacks to every text item that contains links.
func WithLinks(l *LinkCallbacks) Option { return func(e *Engine) { e.links = l } }

// WithLogger enables debug logging of degraded blocks.
func WithLogger(l *log.Logger) Option { return func(e *Engine) { e.logger = l } }

// WithDateFormatter replaces the default "January 2, 2006" UTC formatting
// of Unix timestamps.
func WithDateFormatter(f func(int32) string) Option {
	return func(e *Engine) {
		if f != nil {
			e.formatDate = f
		}
	}
}

// WithAuthorDateTemplate sets the byline template. It must contain %1$@
// and %2$@ exactly once each; otherwise bylines fall back to
// "author, date".
func WithAuthorDateTemplate(t string) Option { return func(e *Engine) { e.authorDate = t } }

// WithMaxContentWidth centers the content in a column of at most w points.
// Zero disables the limit.
func WithMaxContentWidth(w float64) Option { return func(e *Engine) { e.maxContentWidth = w } }

// New returns an Engine with the given options applied over the defaults.
func New(opts ...Option) *Engine {
	e := &Engine{
		measurer:     text.Estimator{},
		presentation: DefaultPresentation(),
		formatDate:   FormatDate,
		authorDate:   DefaultAuthorDateTemplate,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Build lays out pg at width with a fresh engine.
func Build(pg page.Page, width float64, opts ...Option) Result {
	return New(opts...).Page(pg, width)
}

// FormatDate renders a Unix timestamp in the long English form, in UTC.
func FormatDate(ts int32) string {
	return time.Unix(int64(ts), 0).UTC().Format("January 2, 2006")
}

// Presentation returns the engine's appearance settings.
func (e *Engine) Presentation() Presentation { return e.presentation }

func (e *Engine) registry() media.Registry {
	if e.media == nil {
		return media.Empty
	}
	return e.media
}

func (e *Engine) debug(msg string, keyvals ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, keyvals...)
	}
}
