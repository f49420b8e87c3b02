package dict

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/henryli127-lang/volca/internal/metrics"
)

// EntryCache provides in-memory caching of word entries with TTL-based
// expiration. It sits above the Redis cache so hot words skip the network
// entirely.
type EntryCache struct {
	mu      sync.RWMutex
	entries map[string]*entryCacheItem
	ttl     time.Duration
	clock   clockwork.Clock
}

type entryCacheItem struct {
	entry     domain.WordEntry
	expiresAt time.Time
}

func NewEntryCache(ttl time.Duration, clock clockwork.Clock) *EntryCache {
	return &EntryCache{
		entries: make(map[string]*entryCacheItem),
		ttl:     ttl,
		clock:   clock,
	}
}

func cacheKey(text, language string) string {
	return language + ":" + strings.ToLower(strings.TrimSpace(text))
}

// Get retrieves a cached entry if present and not expired.
func (c *EntryCache) Get(text, language string) (*domain.WordEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.entries[cacheKey(text, language)]
	if !ok {
		return nil, false
	}

	// Expired entries are treated as misses. Eviction happens periodically;
	// we only hold a read lock here.
	if c.clock.Now().After(item.expiresAt) {
		return nil, false
	}

	entry := item.entry
	return &entry, true
}

// Set stores an entry with current timestamp + TTL.
func (c *EntryCache) Set(text, language string, entry domain.WordEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(text, language)] = &entryCacheItem{
		entry:     entry,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

// Size returns the current number of entries (including expired).
func (c *EntryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// EvictExpired removes all expired entries and returns the count evicted.
func (c *EntryCache) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0
	for key, item := range c.entries {
		if now.After(item.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// StartEvictionTimer starts a background goroutine that periodically evicts
// expired entries. The returned stop function cleans up the goroutine.
func (c *EntryCache) StartEvictionTimer(interval time.Duration) func() {
	ticker := c.clock.NewTicker(interval)
	done := make(chan bool)

	go func() {
		for {
			select {
			case <-ticker.Chan():
				evicted := c.EvictExpired()
				if evicted > 0 {
					slog.Debug("Evicted expired lookup cache entries",
						"count", evicted,
						"remaining", c.Size(),
					)
					metrics.LookupCacheEvictions.Add(float64(evicted))
				}
				metrics.LookupCacheSize.Set(float64(c.Size()))

			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}
