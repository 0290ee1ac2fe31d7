package cache

import (
	"context"
	"sync"
	"time"

	"github.com/recipebook/backend/internal/domain"
)

// pageEntry is one cached page body with its expiry
type pageEntry struct {
	body    []byte
	expires time.Time
}

// PageCache is a thread-safe in-memory store of fetched pages with TTL expiry
type PageCache struct {
	mu      sync.RWMutex
	entries map[string]pageEntry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewPageCache creates an empty page cache. A janitor removes expired pages
// every sweep interval until Close is called; sweep <= 0 disables it.
func NewPageCache(sweep time.Duration) *PageCache {
	c := &PageCache{
		entries: make(map[string]pageEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if sweep > 0 {
		go c.janitor(sweep)
	}
	return c
}

// Get returns a copy of the cached page for key
func (c *PageCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expires) {
		return nil, domain.ErrCacheMiss
	}
	return append([]byte(nil), e.body...), nil
}

// Set stores a copy of body under key for ttl
func (c *PageCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = pageEntry{
		body:    append([]byte(nil), body...),
		expires: c.now().Add(ttl),
	}
	return nil
}

func (c *PageCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// Exists reports whether key holds an unexpired page
func (c *PageCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return ok && c.now().Before(e.expires), nil
}

// Size returns the number of entries, expired ones included until swept
func (c *PageCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all pages
func (c *PageCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]pageEntry)
}

// Close stops the janitor. It is safe to call more than once.
func (c *PageCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *PageCache) janitor(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep drops expired pages
func (c *PageCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, key)
		}
	}
}
