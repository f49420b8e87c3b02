package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/henryli127-lang/volca/internal/metrics"
	goredis "github.com/redis/go-redis/v9"
)

// negativeMarker is stored for words the upstream dictionary did not know,
// so repeated lookups of gibberish don't hammer the provider. Negative
// entries expire much faster than positive ones.
const negativeMarker = "\x00miss"

const negativeTTL = 5 * time.Minute

// ErrNegativeEntry reports that a previous lookup found no dictionary entry
// for this word and the miss is still cached.
var ErrNegativeEntry = errors.New("cached negative lookup")

// LookupCache stores serialized dictionary entries keyed by language and
// normalized word text. It sits behind the in-memory TTL cache as the
// shared second tier.
type LookupCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewLookupCache(client *goredis.Client, ttl time.Duration) *LookupCache {
	return &LookupCache{client: client, ttl: ttl}
}

func lookupKey(text, language string) string {
	return "volca:lookup:" + language + ":" + strings.ToLower(strings.TrimSpace(text))
}

// Get returns the cached entry JSON for a word. A cache miss returns
// (nil, nil); a cached negative lookup returns ErrNegativeEntry.
func (c *LookupCache) Get(ctx context.Context, text, language string) ([]byte, error) {
	data, err := c.client.Get(ctx, lookupKey(text, language)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			metrics.CacheMissesTotal.WithLabelValues("lookup").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("get cached lookup: %w", err)
	}
	metrics.CacheHitsTotal.WithLabelValues("lookup").Inc()
	if string(data) == negativeMarker {
		return nil, ErrNegativeEntry
	}
	return data, nil
}

// Set stores the entry JSON for a word.
func (c *LookupCache) Set(ctx context.Context, text, language string, entry []byte) error {
	if len(entry) == 0 {
		return nil
	}
	if err := c.client.Set(ctx, lookupKey(text, language), entry, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache lookup: %w", err)
	}
	return nil
}

// SetNegative records that the upstream dictionary had no entry for a word.
func (c *LookupCache) SetNegative(ctx context.Context, text, language string) error {
	if err := c.client.Set(ctx, lookupKey(text, language), negativeMarker, negativeTTL).Err(); err != nil {
		return fmt.Errorf("cache negative lookup: %w", err)
	}
	return nil
}
