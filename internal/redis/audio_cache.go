package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/henryli127-lang/volca/internal/metrics"
	goredis "github.com/redis/go-redis/v9"
)

// AudioCache stores synthesized speech keyed by voice and a digest of the
// spoken text. Entries expire after the configured TTL so voice or provider
// changes roll through naturally.
type AudioCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewAudioCache(client *goredis.Client, ttl time.Duration) *AudioCache {
	return &AudioCache{client: client, ttl: ttl}
}

func audioKey(voice, text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("volca:audio:%s:%s", voice, hex.EncodeToString(sum[:]))
}

// Get returns the cached audio for the given voice and text, or (nil, nil)
// on a cache miss.
func (c *AudioCache) Get(ctx context.Context, voice, text string) ([]byte, error) {
	data, err := c.client.Get(ctx, audioKey(voice, text)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			metrics.CacheMissesTotal.WithLabelValues("audio").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("get cached audio: %w", err)
	}
	metrics.CacheHitsTotal.WithLabelValues("audio").Inc()
	return data, nil
}

// Set stores audio for the given voice and text. Empty payloads are ignored.
func (c *AudioCache) Set(ctx context.Context, voice, text string, audio []byte) error {
	if len(audio) == 0 {
		return nil
	}
	if err := c.client.Set(ctx, audioKey(voice, text), audio, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache audio: %w", err)
	}
	return nil
}
