package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/instantview/pkg/cache"
	"github.com/matzehuels/instantview/pkg/core/page"
	"github.com/matzehuels/instantview/pkg/errors"
	"github.com/matzehuels/instantview/pkg/observability"
	"github.com/matzehuels/instantview/pkg/view"
)

// Cache key types reported to observability hooks.
const (
	keyDocument = "document"
	keyLayout   = "layout"
	keyArtifact = "artifact"
)

// Runner wraps the pipeline stages with caching.
//
// A Runner holds no per-run state, so one Runner may serve concurrent runs
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer means [cache.DefaultKeyer] and a
// nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load -> layout -> render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	result := &Result{PassID: uuid.NewString()}
	logger := r.Logger.With("pass", result.PassID)
	hooks := observability.Pipeline()

	// Stage 1: Load
	start := time.Now()
	hooks.OnLoadStart(ctx, opts.Source)
	pg, docHash, hit, err := r.LoadWithCacheInfo(ctx, opts)
	result.Stats.LoadTime = time.Since(start)
	hooks.OnLoadComplete(ctx, opts.Source, len(pg.Blocks), result.Stats.LoadTime, err)
	if err != nil {
		return nil, err
	}
	result.Page, result.DocumentHash = pg, docHash
	result.Stats.BlockCount = len(pg.Blocks)
	result.CacheInfo.LoadHit = hit
	logger.Info("loaded document",
		"source", opts.Source,
		"blocks", len(pg.Blocks),
		"cached", hit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	start = time.Now()
	l, hit, err := r.layout(ctx, pg, docHash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.ItemCount = len(l.Items)
	result.CacheInfo.LayoutHit = hit
	logger.Info("computed layout",
		"width", opts.Width,
		"items", len(l.Items),
		"height", l.Height,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	start = time.Now()
	artifacts, layoutHash, hit, err := r.render(ctx, l, pg, docHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.LayoutHash = layoutHash
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit
	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo lays pg out, serving repeated requests from the
// cache, and reports whether the cache was hit.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, pg page.Page, opts Options) (view.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return view.Layout{}, false, err
	}
	docHash, err := PageHash(pg)
	if err != nil {
		return view.Layout{}, false, err
	}
	return r.layout(ctx, pg, docHash, opts)
}

// GenerateLayout is GenerateLayoutWithCacheInfo without the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, pg page.Page, opts Options) (view.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, pg, opts)
	return l, err
}

func (r *Runner) layout(ctx context.Context, pg page.Page, docHash string, opts Options) (view.Layout, bool, error) {
	key := r.Keyer.LayoutKey(docHash, opts.LayoutKeyOpts())
	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, keyLayout, key); hit {
			if l, err := view.UnmarshalLayout(data); err == nil {
				return l, true, nil
			}
		}
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, len(pg.Blocks), opts.Width)
	l, err := GenerateLayout(pg, opts)
	hooks.OnLayoutComplete(ctx, len(l.Items), time.Since(start), err)
	if err != nil {
		return view.Layout{}, false, err
	}

	if data, err := view.MarshalLayout(l); err == nil {
		r.cacheSet(ctx, keyLayout, key, data, cache.TTLLayout)
	}
	return l, false, nil
}

// RenderWithCacheInfo renders every requested format and reports whether all
// of them came from the cache. pg may be the zero Page unless the dot
// format is requested.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l view.Layout, pg page.Page, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	var docHash string
	if pg.Blocks != nil {
		h, err := PageHash(pg)
		if err != nil {
			return nil, false, err
		}
		docHash = h
	}
	artifacts, _, hit, err := r.render(ctx, l, pg, docHash, opts)
	return artifacts, hit, err
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, l view.Layout, pg page.Page, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, pg, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, l view.Layout, pg page.Page, docHash string, opts Options) (map[string][]byte, string, bool, error) {
	data, err := view.MarshalLayout(l)
	if err != nil {
		return nil, "", false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(data)
	// json and dot outputs also depend on the page (its URL and blocks).
	base := cache.Hash([]byte(docHash + ":" + layoutHash))

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(base, opts.ArtifactKeyOpts(format))
			if data, hit := r.cacheGet(ctx, keyArtifact, key); hit {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, layoutHash, true, nil
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, missing)
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, l, pg, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		r.cacheSet(ctx, keyArtifact, r.Keyer.ArtifactKey(base, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return artifacts, layoutHash, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cacheGet reads key, retrying transient backend errors. A failing cache is
// treated as a miss.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	var (
		data []byte
		hit  bool
	)
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit
}

func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
