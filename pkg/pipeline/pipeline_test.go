package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/instantview/pkg/cache"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/errors"
	"github.com/matzehuels/instantview/pkg/observability"
	"github.com/matzehuels/instantview/pkg/view"
)

const articleJSON = `{
  "url": "https://example.com/a",
  "blocks": [
    {"type": "title", "text": "Hello"},
    {"type": "paragraph", "text": ["Read ", {"url": "more", "href": "https://example.com"}]},
    {"type": "divider"},
    {"type": "anchor", "name": "end"}
  ]
}`

const articleTOML = `
url = "https://example.com/a"

[[blocks]]
type = "title"
text = "Hello"

[[blocks]]
type = "paragraph"
text = ["Read ", { url = "more", href = "https://example.com" }]

[[blocks]]
type = "divider"

[[blocks]]
type = "anchor"
name = "end"
`

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{name: "defaults", opts: Options{}},
		{name: "dark theme", opts: Options{Theme: "dark"}},
		{name: "theme file", opts: Options{Theme: "custom.toml"}},
		{name: "negative width", opts: Options{Width: -1}, code: errors.ErrCodeInvalidWidth},
		{name: "huge width", opts: Options{Width: errors.MaxWidth + 1}, code: errors.ErrCodeInvalidWidth},
		{name: "negative column", opts: Options{MaxContentWidth: -10}, code: errors.ErrCodeInvalidWidth},
		{name: "unknown metrics", opts: Options{Metrics: "harfbuzz"}, code: errors.ErrCodeInvalidMetrics},
		{name: "unknown theme", opts: Options{Theme: "sepia"}, code: errors.ErrCodeInvalidTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()
	if opts.Width != DefaultWidth {
		t.Errorf("Width = %v, want %v", opts.Width, DefaultWidth)
	}
	if opts.Metrics != DefaultMetrics {
		t.Errorf("Metrics = %q, want %q", opts.Metrics, DefaultMetrics)
	}
	if opts.MaxContentWidth != DefaultMaxContentWidth {
		t.Errorf("MaxContentWidth = %v", opts.MaxContentWidth)
	}
	if opts.Logger == nil {
		t.Error("Logger not set")
	}
}

func TestValidateForRender(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG || opts.Scale != DefaultScale {
		t.Errorf("defaults = %v %v", opts.Formats, opts.Scale)
	}

	for _, formats := range [][]string{{"gif"}, {"svg", "SVG"}} {
		opts := Options{Formats: formats}
		if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("%v: err = %v", formats, err)
		}
	}
}

func TestValidateForLoad(t *testing.T) {
	opts := Options{Source: "page.TOML", Document: []byte("x")}
	if err := opts.ValidateForLoad(); err != nil {
		t.Fatal(err)
	}
	if opts.DocumentFormat != DocumentTOML {
		t.Errorf("DocumentFormat = %q", opts.DocumentFormat)
	}

	opts = Options{}
	if err := opts.ValidateForLoad(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty document err = %v", err)
	}

	opts = Options{Document: []byte("x"), DocumentFormat: "yaml"}
	if err := opts.ValidateForLoad(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("yaml err = %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Labels: true, Grid: 10, Fonts: true, Scale: 3, Detailed: true}
	if k := opts.ArtifactKeyOpts(FormatJSON); k.Labels || k.Scale != 0 || k.Detailed {
		t.Errorf("json key carries unrelated options: %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatSVG); !k.Labels || !k.Fonts || k.Scale != 0 {
		t.Errorf("svg key = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 || !k.Labels {
		t.Errorf("png key = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatDOT); !k.Detailed || k.Labels {
		t.Errorf("dot key = %+v", k)
	}
}

func TestGenerateLayout(t *testing.T) {
	pg, err := Load(Options{Document: []byte(articleJSON)})
	if err != nil {
		t.Fatal(err)
	}

	for _, metrics := range []string{MetricsEstimate, MetricsTrueType} {
		t.Run(metrics, func(t *testing.T) {
			l, err := GenerateLayout(pg, Options{Width: 390, Metrics: metrics})
			if err != nil {
				t.Fatal(err)
			}
			if l.Width != 390 || l.Height <= 0 {
				t.Errorf("size = %vx%v", l.Width, l.Height)
			}
			if l.Count(view.TypeText) != 2 || l.Count(view.TypeShape) != 1 {
				t.Errorf("items = %+v", l.Items)
			}
			if _, ok := l.Anchor("end"); !ok {
				t.Error("anchor missing")
			}
		})
	}
}

func TestGenerateLayoutMaxContentWidth(t *testing.T) {
	pg, _ := Load(Options{Document: []byte(articleJSON)})
	wide, err := GenerateLayout(pg, Options{Width: 1000})
	if err != nil {
		t.Fatal(err)
	}
	column, err := GenerateLayout(pg, Options{Width: 1000, MaxContentWidth: 600})
	if err != nil {
		t.Fatal(err)
	}
	if column.Items[0].X <= wide.Items[0].X {
		t.Errorf("column title x = %v, full width x = %v", column.Items[0].X, wide.Items[0].X)
	}
}

func TestExecuteCaches(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	defer r.Close()

	opts := Options{
		Source:   "article.json",
		Document: []byte(articleJSON),
		Formats:  []string{FormatJSON, FormatSVG, FormatDOT},
	}
	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo != (CacheInfo{}) {
		t.Errorf("first run cache info = %+v", first.CacheInfo)
	}
	if first.PassID == "" || first.Stats.BlockCount != 4 || first.Stats.ItemCount == 0 {
		t.Errorf("result = %+v", first.Stats)
	}
	for _, f := range opts.Formats {
		if len(first.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(string(first.Artifacts[FormatDOT]), "digraph") {
		t.Error("dot artifact is not a digraph")
	}
	if _, err := view.UnmarshalLayout(first.Artifacts[FormatJSON]); err != nil {
		t.Errorf("json artifact: %v", err)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheInfo != (CacheInfo{LoadHit: true, LayoutHit: true, RenderHit: true}) {
		t.Errorf("second run cache info = %+v", second.CacheInfo)
	}
	if string(second.Artifacts[FormatSVG]) != string(first.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}
	if second.PassID == first.PassID {
		t.Error("pass IDs should differ per run")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo != (CacheInfo{}) {
		t.Errorf("refresh cache info = %+v", third.CacheInfo)
	}
}

func TestExecuteSharesLayoutsAcrossFormats(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	fromJSON, err := r.Execute(ctx, Options{Source: "a.json", Document: []byte(articleJSON)})
	if err != nil {
		t.Fatal(err)
	}
	fromTOML, err := r.Execute(ctx, Options{Source: "a.toml", Document: []byte(articleTOML)})
	if err != nil {
		t.Fatal(err)
	}
	if fromTOML.CacheInfo.LoadHit {
		t.Error("different source bytes should miss the document cache")
	}
	if !fromTOML.CacheInfo.LayoutHit {
		t.Error("equal pages should share the layout cache")
	}
	if fromJSON.DocumentHash != fromTOML.DocumentHash {
		t.Error("document hashes differ")
	}
}

func TestExecuteOptionsChangeLayoutKey(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	opts := Options{Document: []byte(articleJSON)}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	opts.Width = 320
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("a new width must not hit the cached layout")
	}
	if res.Layout.Width != 320 {
		t.Errorf("width = %v", res.Layout.Width)
	}
}

func TestExecuteRejectsBadDocument(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Document: []byte(`{"blocks": [{"text": "x"}]}`)})
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("err = %v, want INVALID_DOCUMENT", err)
	}
}

func TestRenderDOTNeedsPage(t *testing.T) {
	l := view.Layout{Width: 100, Height: 10}
	_, err := Render(context.Background(), l, page.Page{}, Options{Formats: []string{FormatDOT}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v", err)
	}
}

func TestRenderFromLayoutData(t *testing.T) {
	ctx := context.Background()
	pg, _ := Load(Options{Document: []byte(articleJSON)})
	l, err := GenerateLayout(pg, Options{})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := view.MarshalLayout(l)

	out, err := RenderFromLayoutData(ctx, data, page.Page{}, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out[FormatSVG]), "<svg") {
		t.Error("not an svg")
	}

	if _, err := RenderFromLayoutData(ctx, []byte("{"), page.Page{}, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad data err = %v", err)
	}
}

func TestRenderRasterPNG(t *testing.T) {
	pg, _ := Load(Options{Document: []byte(articleJSON)})
	l, _ := GenerateLayout(pg, Options{Width: 200})
	out, err := Render(context.Background(), l, pg, Options{Formats: []string{FormatPNG}, Raster: true, Scale: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out[FormatPNG]), "\x89PNG") {
		t.Error("not a png")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.record("load") }
func (h *recordingHooks) OnLayoutComplete(_ context.Context, items int, _ time.Duration, err error) {
	h.record("layout")
}
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render")
}

func TestExecuteEmitsHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), Options{Document: []byte(articleJSON)}); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(hooks.events, ","); got != "load,layout,render" {
		t.Errorf("events = %s", got)
	}
}
