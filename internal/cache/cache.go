// Package cache holds short-lived lookups that rarely change, such as the
// category lists.
package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Cache defines a generic cache interface
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Loader fills a cache miss.
type Loader[T any] func(ctx context.Context) (T, error)

// ReadThrough wraps a Cache so that misses are loaded once even when several
// callers ask for the same key at the same time.
type ReadThrough[T any] struct {
	cache Cache[T]
	group singleflight.Group
}

func NewReadThrough[T any](c Cache[T]) *ReadThrough[T] {
	return &ReadThrough[T]{cache: c}
}

// Get returns the cached value for key, calling load on a miss. Errors are
// not cached.
func (r *ReadThrough[T]) Get(ctx context.Context, key string, load Loader[T]) (T, error) {
	if v, ok := r.cache.Get(key); ok {
		return v, nil
	}
	v, err, _ := r.group.Do(key, func() (any, error) {
		if v, ok := r.cache.Get(key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		r.cache.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate drops key so the next Get reloads it.
func (r *ReadThrough[T]) Invalidate(key string) {
	r.cache.Delete(key)
}
