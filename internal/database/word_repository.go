package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// wordColumns must match the Scan order in scanWord.
const wordColumns = `id, text, language, definition, translation, phonetic, example, image_url, created_at`

// WordRepo implements domain.WordRepository backed by PostgreSQL.
type WordRepo struct {
	pool *pgxpool.Pool
}

func NewWordRepo(pool *pgxpool.Pool) *WordRepo {
	return &WordRepo{pool: pool}
}

func scanWord(row pgx.Row) (*domain.Word, error) {
	var w domain.Word
	err := row.Scan(&w.ID, &w.Text, &w.Language, &w.Definition, &w.Translation,
		&w.Phonetic, &w.Example, &w.ImageURL, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWordNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Upsert inserts a looked-up word or refreshes its provider-sourced
// fields. The image URL is preserved: it is written by the generate
// flow, not by lookups.
func (r *WordRepo) Upsert(ctx context.Context, entry domain.WordEntry, language string) (*domain.Word, error) {
	word, err := scanWord(r.pool.QueryRow(ctx, `
		INSERT INTO words (text, language, definition, translation, phonetic, example)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (text, language) DO UPDATE SET
			definition = EXCLUDED.definition,
			translation = CASE WHEN EXCLUDED.translation <> '' THEN EXCLUDED.translation ELSE words.translation END,
			phonetic = EXCLUDED.phonetic,
			example = EXCLUDED.example
		RETURNING `+wordColumns,
		entry.Text, language, entry.Definition, entry.Translation, entry.Phonetic, entry.Example))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert word: %w", err)
	}
	return word, nil
}

func (r *WordRepo) GetByText(ctx context.Context, text, language string) (*domain.Word, error) {
	return scanWord(r.pool.QueryRow(ctx,
		`SELECT `+wordColumns+` FROM words WHERE text = $1 AND language = $2`, text, language))
}

func (r *WordRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Word, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+wordColumns+` FROM words WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []domain.Word
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.Text, &w.Language, &w.Definition, &w.Translation,
			&w.Phonetic, &w.Example, &w.ImageURL, &w.CreatedAt); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// SetImageURL records a generated illustration for a word.
func (r *WordRepo) SetImageURL(ctx context.Context, wordID uuid.UUID, imageURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE words SET image_url = $1 WHERE id = $2`, imageURL, wordID)
	if err != nil {
		return fmt.Errorf("failed to set image url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWordNotFound
	}
	return nil
}
