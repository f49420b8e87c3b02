package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Article is a generated story saved for re-reading.
type Article struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	ProfileID uuid.UUID   `db:"profile_id" json:"profile_id"`
	Title     string      `db:"title" json:"title"`
	Body      string      `db:"body" json:"body"`
	Level     string      `db:"level" json:"level"`
	WordIDs   []uuid.UUID `db:"word_ids" json:"word_ids"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

// ArticleRepository abstracts saved-story persistence.
type ArticleRepository interface {
	Create(ctx context.Context, article *Article) (*Article, error)
	GetByID(ctx context.Context, articleID uuid.UUID) (*Article, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]Article, error)
}
