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

// ProgressRepo implements domain.ProgressRepository backed by PostgreSQL.
type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

func (r *ProgressRepo) Get(ctx context.Context, profileID, wordID uuid.UUID) (*domain.Progress, error) {
	var p domain.Progress
	err := r.pool.QueryRow(ctx, `
		SELECT profile_id, word_id, easiness, interval_days, repetitions,
		       consecutive_right, last_quality, last_review, next_review
		FROM user_progress
		WHERE profile_id = $1 AND word_id = $2
	`, profileID, wordID).Scan(
		&p.ProfileID, &p.WordID, &p.Easiness, &p.IntervalDays, &p.Repetitions,
		&p.ConsecutiveRight, &p.LastQuality, &p.LastReview, &p.NextReview,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepo) Upsert(ctx context.Context, p *domain.Progress) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_progress (profile_id, word_id, easiness, interval_days, repetitions,
		                           consecutive_right, last_quality, last_review, next_review)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (profile_id, word_id) DO UPDATE SET
			easiness = EXCLUDED.easiness,
			interval_days = EXCLUDED.interval_days,
			repetitions = EXCLUDED.repetitions,
			consecutive_right = EXCLUDED.consecutive_right,
			last_quality = EXCLUDED.last_quality,
			last_review = EXCLUDED.last_review,
			next_review = EXCLUDED.next_review
	`, p.ProfileID, p.WordID, p.Easiness, p.IntervalDays, p.Repetitions,
		p.ConsecutiveRight, p.LastQuality, p.LastReview, p.NextReview)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

// ListDue returns words due for review ordered by priority:
// never-reviewed first, then hardest (lowest easiness), then most
// overdue.
func (r *ProgressRepo) ListDue(ctx context.Context, profileID uuid.UUID, now time.Time, limit int) ([]domain.DueWord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT w.id, w.text, w.language, w.definition, w.translation, w.phonetic, w.example, w.image_url, w.created_at,
		       p.profile_id, p.word_id, p.easiness, p.interval_days, p.repetitions,
		       p.consecutive_right, p.last_quality, p.last_review, p.next_review
		FROM user_progress p
		JOIN words w ON w.id = p.word_id
		WHERE p.profile_id = $1 AND p.next_review <= $2
		ORDER BY (p.repetitions = 0) DESC, p.easiness ASC, p.next_review ASC
		LIMIT $3
	`, profileID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due words: %w", err)
	}
	defer rows.Close()

	var due []domain.DueWord
	for rows.Next() {
		var d domain.DueWord
		if err := rows.Scan(
			&d.Word.ID, &d.Word.Text, &d.Word.Language, &d.Word.Definition, &d.Word.Translation,
			&d.Word.Phonetic, &d.Word.Example, &d.Word.ImageURL, &d.Word.CreatedAt,
			&d.Progress.ProfileID, &d.Progress.WordID, &d.Progress.Easiness, &d.Progress.IntervalDays,
			&d.Progress.Repetitions, &d.Progress.ConsecutiveRight, &d.Progress.LastQuality,
			&d.Progress.LastReview, &d.Progress.NextReview,
		); err != nil {
			return nil, err
		}
		due = append(due, d)
	}
	return due, rows.Err()
}
