package dict

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henryli127-lang/volca/internal/domain"
	volcaredis "github.com/henryli127-lang/volca/internal/redis"
)

type stubDictionary struct {
	entry *domain.WordEntry
	err   error
	calls atomic.Int64
	delay time.Duration
}

func (s *stubDictionary) Lookup(ctx context.Context, text, language string) (*domain.WordEntry, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	entry := *s.entry
	return &entry, nil
}

type stubTranslator struct {
	translation string
	err         error
}

func (s *stubTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	return s.translation, s.err
}

type stubSharedCache struct {
	mu        sync.Mutex
	entries   map[string][]byte
	negatives map[string]bool
}

func newStubSharedCache() *stubSharedCache {
	return &stubSharedCache{entries: make(map[string][]byte), negatives: make(map[string]bool)}
}

func (c *stubSharedCache) key(text, language string) string {
	return language + ":" + text
}

func (c *stubSharedCache) Get(ctx context.Context, text, language string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.negatives[c.key(text, language)] {
		return nil, volcaredis.ErrNegativeEntry
	}
	return c.entries[c.key(text, language)], nil
}

func (c *stubSharedCache) Set(ctx context.Context, text, language string, entry []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(text, language)] = entry
	return nil
}

func (c *stubSharedCache) SetNegative(ctx context.Context, text, language string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.negatives[c.key(text, language)] = true
	return nil
}

func TestService_Lookup_ResolvesAndCaches(t *testing.T) {
	dictionary := &stubDictionary{entry: &domain.WordEntry{Text: "apple", Definition: "a fruit"}}
	translator := &stubTranslator{translation: "苹果"}
	memory := NewEntryCache(time.Minute, clockwork.NewFakeClock())
	shared := newStubSharedCache()
	svc := NewService(dictionary, translator, memory, shared, nil, "zh-CN")

	entry, err := svc.Lookup(context.Background(), "Apple", "en")
	require.NoError(t, err)
	assert.Equal(t, "apple", entry.Text)
	assert.Equal(t, "苹果", entry.Translation)

	// Both cache tiers are populated
	cached, ok := memory.Get("apple", "en")
	require.True(t, ok)
	assert.Equal(t, "苹果", cached.Translation)

	var sharedEntry domain.WordEntry
	require.NoError(t, json.Unmarshal(shared.entries["en:apple"], &sharedEntry))
	assert.Equal(t, "a fruit", sharedEntry.Definition)

	// Second lookup hits the memory cache
	_, err = svc.Lookup(context.Background(), "apple", "en")
	require.NoError(t, err)
	assert.Equal(t, int64(1), dictionary.calls.Load())
}

func TestService_Lookup_TranslationFailureIsNonFatal(t *testing.T) {
	dictionary := &stubDictionary{entry: &domain.WordEntry{Text: "apple", Definition: "a fruit"}}
	translator := &stubTranslator{err: assert.AnError}
	svc := NewService(dictionary, translator, nil, nil, nil, "zh-CN")

	entry, err := svc.Lookup(context.Background(), "apple", "en")
	require.NoError(t, err)
	assert.Empty(t, entry.Translation)
	assert.Equal(t, "a fruit", entry.Definition)
}

func TestService_Lookup_UnknownWordIsCachedNegatively(t *testing.T) {
	dictionary := &stubDictionary{err: domain.ErrWordNotFound}
	shared := newStubSharedCache()
	svc := NewService(dictionary, nil, nil, shared, nil, "")

	_, err := svc.Lookup(context.Background(), "xzqwv", "en")
	assert.ErrorIs(t, err, domain.ErrWordNotFound)
	assert.True(t, shared.negatives["en:xzqwv"])

	// Next lookup is answered by the negative entry
	_, err = svc.Lookup(context.Background(), "xzqwv", "en")
	assert.ErrorIs(t, err, domain.ErrWordNotFound)
	assert.Equal(t, int64(1), dictionary.calls.Load())
}

func TestService_Lookup_SharedCacheHitSkipsProvider(t *testing.T) {
	dictionary := &stubDictionary{entry: &domain.WordEntry{Text: "apple"}}
	shared := newStubSharedCache()
	data, _ := json.Marshal(domain.WordEntry{Text: "apple", Definition: "cached"})
	shared.entries["en:apple"] = data
	svc := NewService(dictionary, nil, nil, shared, nil, "")

	entry, err := svc.Lookup(context.Background(), "apple", "en")
	require.NoError(t, err)
	assert.Equal(t, "cached", entry.Definition)
	assert.Equal(t, int64(0), dictionary.calls.Load())
}

type languageAwareDictionary struct {
	calls atomic.Int64
}

func (s *languageAwareDictionary) Lookup(ctx context.Context, text, language string) (*domain.WordEntry, error) {
	s.calls.Add(1)
	return &domain.WordEntry{Text: text, Definition: "definition in " + language}, nil
}

func TestService_Lookup_CacheTiersAreLanguageQualified(t *testing.T) {
	dictionary := &languageAwareDictionary{}
	memory := NewEntryCache(time.Minute, clockwork.NewFakeClock())
	shared := newStubSharedCache()
	svc := NewService(dictionary, nil, memory, shared, nil, "")

	en, err := svc.Lookup(context.Background(), "chat", "en")
	require.NoError(t, err)
	assert.Equal(t, "definition in en", en.Definition)

	fr, err := svc.Lookup(context.Background(), "chat", "fr")
	require.NoError(t, err)
	assert.Equal(t, "definition in fr", fr.Definition)
	assert.Equal(t, int64(2), dictionary.calls.Load())

	// A negative entry for one language does not block another
	unknown := &stubDictionary{err: domain.ErrWordNotFound}
	svc = NewService(unknown, nil, nil, shared, nil, "")
	_, err = svc.Lookup(context.Background(), "nope", "en")
	assert.ErrorIs(t, err, domain.ErrWordNotFound)
	assert.True(t, shared.negatives["en:nope"])
	assert.False(t, shared.negatives["fr:nope"])
}

func TestService_Lookup_CollapsesConcurrentLookups(t *testing.T) {
	dictionary := &stubDictionary{
		entry: &domain.WordEntry{Text: "apple", Definition: "a fruit"},
		delay: 50 * time.Millisecond,
	}
	svc := NewService(dictionary, nil, nil, nil, nil, "")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Lookup(context.Background(), "apple", "en")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), dictionary.calls.Load())
}

func TestService_Lookup_EmptyText(t *testing.T) {
	svc := NewService(&stubDictionary{}, nil, nil, nil, nil, "")
	_, err := svc.Lookup(context.Background(), "   ", "en")
	assert.ErrorIs(t, err, domain.ErrEmptyText)
}
