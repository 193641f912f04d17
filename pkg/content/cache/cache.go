// Package cache keeps fetched content bundles around so remote CMS sources are
// not hit on every reload.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-cmsfront/pkg/content"
)

// Cache stores raw bundle payloads by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Loader wraps a content.Loader with a read-through cache.
type Loader struct {
	next  content.Loader
	cache Cache
	ttl   time.Duration
}

var _ content.Loader = (*Loader)(nil)

// NewLoader returns a caching loader. A nil cache disables caching.
func NewLoader(next content.Loader, cache Cache, ttl time.Duration) *Loader {
	return &Loader{next: next, cache: cache, ttl: ttl}
}

// Load serves the bundle from cache when present, otherwise delegates and
// stores the payload. Cache failures never fail the load.
func (l *Loader) Load(ctx context.Context, src content.Source) (content.Document, error) {
	if l.next == nil {
		return content.Document{}, fmt.Errorf("content cache: loader is nil")
	}
	if l.cache == nil || src == nil {
		return l.next.Load(ctx, src)
	}

	key := Key(src)
	if raw, ok, err := l.cache.Get(ctx, key); err == nil && ok {
		return content.NewDocument(src, raw)
	}

	doc, err := l.next.Load(ctx, src)
	if err != nil {
		return content.Document{}, err
	}
	_ = l.cache.Set(ctx, key, doc.Raw(), l.ttl)
	return doc, nil
}

// Key derives the cache key for a source.
func Key(src content.Source) string {
	return "cmsfront:bundle:" + string(src.Kind()) + ":" + src.Location()
}
