// Package study coordinates review submission, the due-word queue, and
// study statistics on top of the spaced-repetition scheduler.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/henryli127-lang/volca/internal/metrics"
	"github.com/henryli127-lang/volca/internal/srs"
)

// DefaultDueLimit bounds the study queue size per request.
const DefaultDueLimit = 20

// ReviewResult is the outcome of one submitted review.
type ReviewResult struct {
	Progress *domain.Progress `json:"progress"`
	Quality  int              `json:"quality"`
	Mastered bool             `json:"mastered"`
}

// Service applies reviews to SM-2 state and records study activity.
type Service struct {
	progress domain.ProgressRepository
	logs     domain.StudyLogRepository
	stats    domain.StatsRepository
	clock    clockwork.Clock
}

func NewService(progress domain.ProgressRepository, logs domain.StudyLogRepository, stats domain.StatsRepository, clock clockwork.Clock) *Service {
	return &Service{
		progress: progress,
		logs:     logs,
		stats:    stats,
		clock:    clock,
	}
}

// SubmitReview grades one answer and updates the word's SM-2 state. A word
// the profile never studied gets fresh state on the fly. The study log
// append is best-effort; the review result stands even if logging fails.
func (s *Service) SubmitReview(ctx context.Context, profileID, wordID uuid.UUID, activity string, correct bool, durationMs int) (*ReviewResult, error) {
	progress, err := s.progress.Get(ctx, profileID, wordID)
	if err != nil {
		if !errors.Is(err, domain.ErrProgressNotFound) {
			return nil, fmt.Errorf("load progress: %w", err)
		}
		progress = &domain.Progress{ProfileID: profileID, WordID: wordID}
		srs.NewProgress(progress)
	}

	quality := srs.GradeAnswer(correct, durationMs)
	srs.Apply(progress, quality, s.clock.Now().UTC())

	if err := s.progress.Upsert(ctx, progress); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	log := &domain.StudyLog{
		ProfileID:  profileID,
		WordID:     wordID,
		Activity:   activity,
		Correct:    correct,
		DurationMs: durationMs,
	}
	if err := s.logs.Append(ctx, log); err != nil {
		slog.Warn("Study log append failed",
			"profile_id", profileID,
			"word_id", wordID,
			"error", err,
		)
	}

	metrics.ReviewsTotal.WithLabelValues(resultLabel(correct)).Inc()

	return &ReviewResult{
		Progress: progress,
		Quality:  int(quality),
		Mastered: srs.IsMastered(progress),
	}, nil
}

func resultLabel(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}

// DueWords returns the review queue for a profile, new words first, then
// hardest words.
func (s *Service) DueWords(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.DueWord, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultDueLimit
	}
	due, err := s.progress.ListDue(ctx, profileID, s.clock.Now().UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("list due words: %w", err)
	}
	return due, nil
}

// Stats returns aggregated study statistics for the trailing window.
func (s *Service) Stats(ctx context.Context, profileID uuid.UUID, days int) ([]domain.StudyStats, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	stats, err := s.stats.ListByProfile(ctx, profileID, days)
	if err != nil {
		return nil, fmt.Errorf("list study stats: %w", err)
	}
	return stats, nil
}
