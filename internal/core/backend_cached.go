package core

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedBackend caches List results per kind in an expiring LRU. Writes go
// straight to the wrapped backend and evict the kind.
//
// Every write bumps the kind's generation. A read that misses the cache
// only stores its result if no write finished while it was loading, so a
// slow read never caches documents older than the last write.
type CachedBackend struct {
	next  Backend
	cache *expirable.LRU[string, []Document]

	mu     sync.Mutex
	gen    map[string]uint64
	purges uint64
}

// NewCachedBackend wraps next with a cache of at most size kinds, each kept
// for ttl.
func NewCachedBackend(next Backend, size int, ttl time.Duration) *CachedBackend {
	return &CachedBackend{
		next:  next,
		cache: expirable.NewLRU[string, []Document](size, nil, ttl),
		gen:   make(map[string]uint64),
	}
}

func (c *CachedBackend) List(ctx context.Context, kind string) ([]Document, error) {
	if docs, ok := c.cache.Get(kind); ok {
		return slices.Clone(docs), nil
	}

	c.mu.Lock()
	gen := c.generation(kind)
	c.mu.Unlock()

	docs, err := c.next.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generation(kind) == gen {
		c.cache.Add(kind, slices.Clone(docs))
	}
	c.mu.Unlock()
	return docs, nil
}

func (c *CachedBackend) Put(ctx context.Context, kind string, doc Document) error {
	defer c.invalidate(kind)
	return c.next.Put(ctx, kind, doc)
}

func (c *CachedBackend) Delete(ctx context.Context, kind, id string) error {
	defer c.invalidate(kind)
	return c.next.Delete(ctx, kind, id)
}

// generation must be called with mu held.
func (c *CachedBackend) generation(kind string) uint64 {
	return c.gen[kind] + c.purges
}

func (c *CachedBackend) invalidate(kind string) {
	c.mu.Lock()
	c.gen[kind]++
	c.cache.Remove(kind)
	c.mu.Unlock()
}

// Purge drops every cached kind.
func (c *CachedBackend) Purge() {
	c.mu.Lock()
	c.purges++
	c.cache.Purge()
	c.mu.Unlock()
}
