package cache

import (
	"context"
	"strings"
	"time"

	"github.com/plotwire/plotwire/pkg/observability"
)

// Instrumented wraps a Cache and reports hit/miss/set events to the
// registered observability hooks. The key-type label is the key's prefix
// (the part before the first colon).
type Instrumented struct {
	inner Cache
}

// Instrument wraps a cache with observability reporting.
func Instrument(inner Cache) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Instrumented{inner: inner}
}

// Get retrieves a value, recording a hit or miss.
func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, ok, err
}

// Set stores a value, recording the write.
func (c *Instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

// Delete removes a value.
func (c *Instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

// Close closes the wrapped cache.
func (c *Instrumented) Close() error {
	return c.inner.Close()
}

func keyType(key string) string {
	if i := strings.Index(key, ":"); i >= 0 {
		return key[:i]
	}
	return key
}

// Ensure Instrumented implements Cache.
var _ Cache = (*Instrumented)(nil)
