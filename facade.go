package redstore

import (
	"context"
	"iter"
	"time"
)

// Cache pairs a Store with construction-time defaults. It is a pure
// pass-through except for default substitution: a write that arrives with
// nil options gets the default TTL, while explicit options pass through
// untouched, so &WriteOptions{TTL: 0} forces a write without expiration
// even when a default is set. The facade carries no other state.
type Cache struct {
	store      Store
	defaultTTL time.Duration
}

// Wrap builds a facade around an existing Store.
func Wrap(s Store, defaultTTL time.Duration) *Cache {
	return &Cache{store: s, defaultTTL: defaultTTL}
}

// Store returns the wrapped adapter.
func (c *Cache) Store() Store { return c.store }

func (c *Cache) withDefaults(opts *WriteOptions) *WriteOptions {
	if opts != nil {
		return opts
	}
	if c.defaultTTL <= 0 {
		return nil
	}
	return &WriteOptions{TTL: c.defaultTTL}
}

func (c *Cache) Set(ctx context.Context, key string, value any, opts *WriteOptions) error {
	return c.store.Set(ctx, key, value, c.withDefaults(opts))
}

func (c *Cache) Get(ctx context.Context, key string) (any, bool, error) {
	return c.store.Get(ctx, key)
}

func (c *Cache) MSet(ctx context.Context, entries []Entry, opts *WriteOptions) error {
	return c.store.MSet(ctx, entries, c.withDefaults(opts))
}

func (c *Cache) MGet(ctx context.Context, keys ...string) ([]any, error) {
	return c.store.MGet(ctx, keys...)
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	return c.store.Del(ctx, keys...)
}

func (c *Cache) TTL(ctx context.Context, key string) (int64, error) {
	return c.store.TTL(ctx, key)
}

func (c *Cache) Keys(ctx context.Context, pattern string) iter.Seq2[string, error] {
	return c.store.Keys(ctx, pattern)
}

func (c *Cache) Reset(ctx context.Context) error {
	return c.store.Reset(ctx)
}

func (c *Cache) Healthy() bool { return c.store.Healthy() }

func (c *Cache) Close(ctx context.Context) error { return c.store.Close(ctx) }
