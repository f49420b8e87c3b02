package tts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/henryli127-lang/volca/internal/metrics"
)

// maxTextLen bounds synthesis input length.
const maxTextLen = 5000

type synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

type audioCache interface {
	Get(ctx context.Context, voice, text string) ([]byte, error)
	Set(ctx context.Context, voice, text string, audio []byte) error
}

// Service synthesizes speech through the websocket provider, falling back
// to the HTTP provider when it fails. Results are cached by voice and text.
type Service struct {
	primary      synthesizer
	fallback     synthesizer
	cache        audioCache
	defaultVoice string
}

var _ domain.Synthesizer = (*Service)(nil)

func NewService(primary, fallback synthesizer, cache audioCache, defaultVoice string) *Service {
	return &Service{
		primary:      primary,
		fallback:     fallback,
		cache:        cache,
		defaultVoice: defaultVoice,
	}
}

func (s *Service) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}
	if len([]rune(text)) > maxTextLen {
		return nil, domain.ErrTextTooLong
	}
	if voice == "" {
		voice = s.defaultVoice
	}

	if s.cache != nil {
		if audio, err := s.cache.Get(ctx, voice, text); err != nil {
			slog.Warn("Audio cache read failed", "error", err)
		} else if audio != nil {
			return audio, nil
		}
	}

	audio, err := s.primary.Synthesize(ctx, text, voice)
	if err != nil {
		slog.Warn("Websocket synthesis failed, using fallback",
			"voice", voice,
			"error", err,
		)
		metrics.TTSFallbacksTotal.Inc()

		if s.fallback == nil {
			return nil, fmt.Errorf("synthesize speech: %w", err)
		}
		audio, err = s.fallback.Synthesize(ctx, text, voice)
		if err != nil {
			return nil, fmt.Errorf("fallback synthesis: %w", err)
		}
	}

	metrics.TTSAudioBytes.Observe(float64(len(audio)))

	if s.cache != nil {
		if err := s.cache.Set(ctx, voice, text, audio); err != nil {
			slog.Warn("Audio cache write failed", "error", err)
		}
	}

	return audio, nil
}
