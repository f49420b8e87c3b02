package dict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/henryli127-lang/volca/internal/metrics"
	volcaredis "github.com/henryli127-lang/volca/internal/redis"
)

type dictionaryClient interface {
	Lookup(ctx context.Context, text, language string) (*domain.WordEntry, error)
}

type sharedCache interface {
	Get(ctx context.Context, text, language string) ([]byte, error)
	Set(ctx context.Context, text, language string, entry []byte) error
	SetNegative(ctx context.Context, text, language string) error
}

// Service resolves word lookups through the cache tiers and providers.
// Concurrent lookups of the same word collapse into one provider call.
type Service struct {
	dictionary      dictionaryClient
	translator      domain.Translator
	memory          *EntryCache
	shared          sharedCache
	words           domain.WordRepository
	translateTarget string
	group           singleflight.Group
}

var _ domain.WordLookupService = (*Service)(nil)

func NewService(dictionary dictionaryClient, translator domain.Translator, memory *EntryCache, shared sharedCache, words domain.WordRepository, translateTarget string) *Service {
	return &Service{
		dictionary:      dictionary,
		translator:      translator,
		memory:          memory,
		shared:          shared,
		words:           words,
		translateTarget: translateTarget,
	}
}

// Lookup resolves a word. The translation field is best-effort: when both
// translation providers fail the entry is returned without it.
func (s *Service) Lookup(ctx context.Context, text, language string) (*domain.WordEntry, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil, domain.ErrEmptyText
	}
	if language == "" {
		language = "en"
	}

	if s.memory != nil {
		if entry, ok := s.memory.Get(text, language); ok {
			metrics.CacheHitsTotal.WithLabelValues("lookup_memory").Inc()
			return entry, nil
		}
		metrics.CacheMissesTotal.WithLabelValues("lookup_memory").Inc()
	}

	result, err, _ := s.group.Do(cacheKey(text, language), func() (any, error) {
		return s.resolve(ctx, text, language)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.WordEntry), nil
}

func (s *Service) resolve(ctx context.Context, text, language string) (*domain.WordEntry, error) {
	if s.shared != nil {
		data, err := s.shared.Get(ctx, text, language)
		switch {
		case errors.Is(err, volcaredis.ErrNegativeEntry):
			return nil, domain.ErrWordNotFound
		case err != nil:
			slog.Warn("Shared lookup cache read failed", "word", text, "error", err)
		case data != nil:
			var entry domain.WordEntry
			if err := json.Unmarshal(data, &entry); err == nil {
				s.cacheInMemory(text, language, entry)
				return &entry, nil
			}
			slog.Warn("Discarding unreadable cached lookup entry", "word", text)
		}
	}

	entry, err := s.dictionary.Lookup(ctx, text, language)
	if err != nil {
		if errors.Is(err, domain.ErrWordNotFound) && s.shared != nil {
			if err := s.shared.SetNegative(ctx, text, language); err != nil {
				slog.Warn("Failed to cache negative lookup", "word", text, "error", err)
			}
		}
		return nil, fmt.Errorf("lookup %q: %w", text, err)
	}

	if s.translator != nil && s.translateTarget != "" {
		translation, err := s.translator.Translate(ctx, text, language, s.translateTarget)
		if err != nil {
			slog.Warn("Translation enrichment failed", "word", text, "error", err)
		} else {
			entry.Translation = translation
		}
	}

	if s.shared != nil {
		if data, err := json.Marshal(entry); err == nil {
			if err := s.shared.Set(ctx, text, language, data); err != nil {
				slog.Warn("Shared lookup cache write failed", "word", text, "error", err)
			}
		}
	}
	s.cacheInMemory(text, language, *entry)

	if s.words != nil {
		if _, err := s.words.Upsert(ctx, *entry, language); err != nil {
			slog.Warn("Word bank upsert failed", "word", text, "error", err)
		}
	}

	return entry, nil
}

func (s *Service) cacheInMemory(text, language string, entry domain.WordEntry) {
	if s.memory != nil {
		s.memory.Set(text, language, entry)
	}
}
