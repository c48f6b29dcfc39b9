package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/instantview/pkg/cache"
	"github.com/matzehuels/instantview/pkg/core/page"
	pkgio "github.com/matzehuels/instantview/pkg/io"
)

// Load decodes opts.Document in opts.DocumentFormat.
func Load(opts Options) (page.Page, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return page.Page{}, err
	}
	r := bytes.NewReader(opts.Document)
	if opts.DocumentFormat == DocumentTOML {
		return pkgio.ReadTOML(r)
	}
	return pkgio.ReadJSON(r)
}

// canonical re-encodes a page as JSON. JSON and TOML sources of the same
// page produce the same bytes, so they share layout cache entries.
func canonical(pg page.Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(pg, &buf); err != nil {
		return nil, fmt.Errorf("encode page: %w", err)
	}
	return buf.Bytes(), nil
}

// PageHash returns the content hash of a page's canonical encoding.
func PageHash(pg page.Page) (string, error) {
	data, err := canonical(pg)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// LoadWithCacheInfo decodes the document, caching its canonical form under
// the hash of the source bytes. It returns the page, its canonical hash and
// whether the cache was hit.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (page.Page, string, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return page.Page{}, "", false, err
	}
	key := r.Keyer.DocumentKey(cache.Hash(opts.Document))

	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, keyDocument, key); hit {
			pg, err := pkgio.ReadJSON(bytes.NewReader(data))
			if err == nil {
				return pg, cache.Hash(data), true, nil
			}
			r.Logger.Debug("discarding unreadable cached document", "key", key, "err", err)
		}
	}

	pg, err := Load(opts)
	if err != nil {
		return page.Page{}, "", false, err
	}
	data, err := canonical(pg)
	if err != nil {
		return page.Page{}, "", false, err
	}
	r.cacheSet(ctx, keyDocument, key, data, cache.TTLDocument)
	return pg, cache.Hash(data), false, nil
}
