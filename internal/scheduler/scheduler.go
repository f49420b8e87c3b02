// Package scheduler runs the nightly aggregation that rolls study logs
// into per-day statistics.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jonboulle/clockwork"

	"github.com/henryli127-lang/volca/internal/domain"
)

// Scheduler manages scheduled background tasks.
type Scheduler struct {
	scheduler *gocron.Scheduler
	logs      domain.StudyLogRepository
	stats     domain.StatsRepository
	clock     clockwork.Clock
}

func New(logs domain.StudyLogRepository, stats domain.StatsRepository, clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		logs:      logs,
		stats:     stats,
		clock:     clock,
	}
}

// Start schedules the nightly aggregation and runs the scheduler in the
// background.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At("02:00").Do(s.runNightlyAggregation); err != nil {
		return fmt.Errorf("schedule nightly aggregation: %w", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runNightlyAggregation() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	yesterday := s.clock.Now().UTC().AddDate(0, 0, -1)
	if err := s.AggregateDay(ctx, yesterday); err != nil {
		slog.Error("Nightly aggregation failed", "day", yesterday.Format("2006-01-02"), "error", err)
	}
}

// AggregateDay rolls one day of study logs into study_stats. The upsert is
// idempotent, so re-running a day recomputes it rather than double counting.
func (s *Scheduler) AggregateDay(ctx context.Context, day time.Time) error {
	day = day.UTC().Truncate(24 * time.Hour)

	counts, err := s.logs.CountByDay(ctx, day)
	if err != nil {
		return fmt.Errorf("count study logs: %w", err)
	}

	for profileID, c := range counts {
		streak, err := s.stats.GetStreak(ctx, profileID, day)
		if err != nil {
			slog.Error("Streak lookup failed", "profile_id", profileID, "error", err)
			streak = 0
		}

		stats := &domain.StudyStats{
			ProfileID: profileID,
			Day:       day,
			Reviews:   c.Reviews,
			Correct:   c.Correct,
			Streak:    streak + 1,
		}
		if err := s.stats.Upsert(ctx, stats); err != nil {
			return fmt.Errorf("upsert stats for profile %s: %w", profileID, err)
		}
	}

	slog.Info("Aggregated study stats", "day", day.Format("2006-01-02"), "profiles", len(counts))
	return nil
}
