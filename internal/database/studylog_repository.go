package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StudyLogRepo implements domain.StudyLogRepository backed by PostgreSQL.
type StudyLogRepo struct {
	pool *pgxpool.Pool
}

func NewStudyLogRepo(pool *pgxpool.Pool) *StudyLogRepo {
	return &StudyLogRepo{pool: pool}
}

func (r *StudyLogRepo) Append(ctx context.Context, log *domain.StudyLog) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO study_logs (profile_id, word_id, activity, correct, duration_ms)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, log.ProfileID, log.WordID, log.Activity, log.Correct, log.DurationMs).
		Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append study log: %w", err)
	}
	return nil
}

// CountByDay tallies review activity for every profile on one UTC day.
// Used by the nightly aggregation job.
func (r *StudyLogRepo) CountByDay(ctx context.Context, day time.Time) (map[uuid.UUID]domain.DayCounts, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	rows, err := r.pool.Query(ctx, `
		SELECT profile_id, COUNT(*), COUNT(*) FILTER (WHERE correct)
		FROM study_logs
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY profile_id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count study logs: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]domain.DayCounts)
	for rows.Next() {
		var profileID uuid.UUID
		var c domain.DayCounts
		if err := rows.Scan(&profileID, &c.Reviews, &c.Correct); err != nil {
			return nil, err
		}
		counts[profileID] = c
	}
	return counts, rows.Err()
}
