package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepo implements domain.StatsRepository backed by PostgreSQL.
type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

func (r *StatsRepo) Upsert(ctx context.Context, stats *domain.StudyStats) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO study_stats (profile_id, day, reviews, correct, streak)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile_id, day) DO UPDATE SET
			reviews = EXCLUDED.reviews,
			correct = EXCLUDED.correct,
			streak = EXCLUDED.streak
	`, stats.ProfileID, stats.Day, stats.Reviews, stats.Correct, stats.Streak)
	if err != nil {
		return fmt.Errorf("failed to upsert study stats: %w", err)
	}
	return nil
}

func (r *StatsRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, days int) ([]domain.StudyStats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT profile_id, day, reviews, correct, streak
		FROM study_stats
		WHERE profile_id = $1
		ORDER BY day DESC
		LIMIT $2
	`, profileID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query study stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.StudyStats
	for rows.Next() {
		var s domain.StudyStats
		if err := rows.Scan(&s.ProfileID, &s.Day, &s.Reviews, &s.Correct, &s.Streak); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetStreak returns the streak recorded for the most recent stats row
// strictly before the given day, or 0 when there is none.
func (r *StatsRepo) GetStreak(ctx context.Context, profileID uuid.UUID, before time.Time) (int, error) {
	var streak int
	var day time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT day, streak
		FROM study_stats
		WHERE profile_id = $1 AND day < $2
		ORDER BY day DESC
		LIMIT 1
	`, profileID, before).Scan(&day, &streak)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}

	// A gap of more than one day breaks the streak.
	if before.Sub(day) > 24*time.Hour {
		return 0, nil
	}
	return streak, nil
}
