// ABOUTME: Digest cache holds generated digests under random tokens for a short time
// ABOUTME: Entries expire after a fixed TTL and are evicted lazily on read or by a sweep

package digest

import (
	"time"

	"linkdigest-api/core/domain"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a digest waits for a save or discard
const DefaultTTL = 600 * time.Second

// Cache is an in-memory store of entries keyed by token with a fixed TTL.
// It is safe for concurrent use.
type Cache struct {
	items *gocache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a cache whose entries live for ttl (DefaultTTL when zero).
// No janitor goroutine runs; expired entries go on read or via DeleteExpired.
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		items: gocache.New(gocache.NoExpiration, 0),
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the entry lifetime
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Put stores a new entry and returns its freshly generated token.
// ExpiresAt decides expiry, so items carry no go-cache deadline.
func (c *Cache) Put(digest domain.Digest, sourceURL, persistedURL, persistedPath string) string {
	token := uuid.NewString()
	entry := &domain.CacheEntry{
		Digest:        digest,
		SourceURL:     sourceURL,
		PersistedURL:  persistedURL,
		PersistedPath: persistedPath,
		ExpiresAt:     c.now().Add(c.ttl),
	}
	c.items.Set(token, entry, gocache.NoExpiration)
	return token
}

// Get returns the entry for token if it exists and has not expired.
// An expired entry is removed as a side effect.
func (c *Cache) Get(token string) (*domain.CacheEntry, bool) {
	v, ok := c.items.Get(token)
	if !ok {
		return nil, false
	}

	entry := v.(*domain.CacheEntry)
	if entry.IsExpired(c.now()) {
		c.items.Delete(token)
		return nil, false
	}
	return entry, true
}

// Delete removes token; unknown tokens are ignored
func (c *Cache) Delete(token string) {
	c.items.Delete(token)
}

// Len counts stored entries, including expired ones not yet evicted
func (c *Cache) Len() int {
	return c.items.ItemCount()
}

// DeleteExpired evicts every expired entry and returns how many were removed
func (c *Cache) DeleteExpired() int {
	now := c.now()
	removed := 0
	for token, item := range c.items.Items() {
		if entry, ok := item.Object.(*domain.CacheEntry); ok && entry.IsExpired(now) {
			c.items.Delete(token)
			removed++
		}
	}
	return removed
}
