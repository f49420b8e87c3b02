package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Progress is the per-profile, per-word spaced-repetition state.
type Progress struct {
	ProfileID        uuid.UUID `db:"profile_id" json:"profile_id"`
	WordID           uuid.UUID `db:"word_id" json:"word_id"`
	Easiness         float64   `db:"easiness" json:"easiness"`
	IntervalDays     int       `db:"interval_days" json:"interval_days"`
	Repetitions      int       `db:"repetitions" json:"repetitions"`
	ConsecutiveRight int       `db:"consecutive_right" json:"consecutive_right"`
	LastQuality      int       `db:"last_quality" json:"last_quality"`
	LastReview       time.Time `db:"last_review" json:"last_review"`
	NextReview       time.Time `db:"next_review" json:"next_review"`
}

// StudyLog is an append-only record of a single study event.
type StudyLog struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ProfileID  uuid.UUID `db:"profile_id" json:"profile_id"`
	WordID     uuid.UUID `db:"word_id" json:"word_id"`
	Activity   string    `db:"activity" json:"activity"`
	Correct    bool      `db:"correct" json:"correct"`
	DurationMs int       `db:"duration_ms" json:"duration_ms"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// StudyStats is one profile-day of aggregated study activity.
type StudyStats struct {
	ProfileID uuid.UUID `db:"profile_id" json:"profile_id"`
	Day       time.Time `db:"day" json:"day"`
	Reviews   int       `db:"reviews" json:"reviews"`
	Correct   int       `db:"correct" json:"correct"`
	Streak    int       `db:"streak" json:"streak"`
}

// DueWord pairs a word with its review state for the study queue.
type DueWord struct {
	Word     Word     `json:"word"`
	Progress Progress `json:"progress"`
}

// ProgressRepository abstracts SM-2 state persistence.
type ProgressRepository interface {
	Get(ctx context.Context, profileID, wordID uuid.UUID) (*Progress, error)
	Upsert(ctx context.Context, p *Progress) error
	ListDue(ctx context.Context, profileID uuid.UUID, now time.Time, limit int) ([]DueWord, error)
}

// StudyLogRepository abstracts the append-only study event log.
type StudyLogRepository interface {
	Append(ctx context.Context, log *StudyLog) error
	CountByDay(ctx context.Context, day time.Time) (map[uuid.UUID]DayCounts, error)
}

// DayCounts is the per-profile tally used by stats aggregation.
type DayCounts struct {
	Reviews int
	Correct int
}

// StatsRepository abstracts aggregated study statistics.
type StatsRepository interface {
	Upsert(ctx context.Context, stats *StudyStats) error
	ListByProfile(ctx context.Context, profileID uuid.UUID, days int) ([]StudyStats, error)
	GetStreak(ctx context.Context, profileID uuid.UUID, before time.Time) (int, error)
}
