// Package cache stores computed documents, layouts and rendered artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (HTTP service)
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled
//
// [Open] picks a backend from a [Config].
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect
// the cached value, so a changed width or theme never returns a stale
// layout. [ScopedKeyer] prefixes keys for tenant isolation.
package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key; a ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry kind.
const (
	TTLDocument = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config selects and configures a backend.
type Config struct {
	Backend string `json:"backend"`
	// Dir is the FileCache directory; empty means [DefaultDir].
	Dir string `json:"dir,omitempty"`
	// URL is the redis:// or mongodb:// connection string.
	URL string `json:"url,omitempty"`
	// Database and Collection name the MongoDB collection.
	Database   string `json:"database,omitempty"`
	Collection string `json:"collection,omitempty"`
}

// Open creates the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendRedis:
		return NewRedisCache(ctx, cfg.URL)
	case BackendMongo:
		return NewMongoCache(ctx, cfg.URL, cfg.Database, cfg.Collection)
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

// DefaultDir returns the per-user cache directory,
// $XDG_CACHE_HOME/instantview or ~/.cache/instantview.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "instantview"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "instantview"), nil
}
