package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Word struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Text        string    `db:"text" json:"text"`
	Language    string    `db:"language" json:"language"`
	Definition  string    `db:"definition" json:"definition"`
	Translation string    `db:"translation" json:"translation"`
	Phonetic    string    `db:"phonetic" json:"phonetic"`
	Example     string    `db:"example" json:"example"`
	ImageURL    string    `db:"image_url" json:"image_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// WordEntry is the provider-facing lookup result before a word is
// persisted to the word bank. Translation may be empty when both
// translation providers fail; lookup still succeeds in that case.
type WordEntry struct {
	Text        string `json:"text"`
	Phonetic    string `json:"phonetic"`
	Definition  string `json:"definition"`
	Example     string `json:"example"`
	Translation string `json:"translation,omitempty"`
}

// WordRepository abstracts the shared word bank.
type WordRepository interface {
	Upsert(ctx context.Context, entry WordEntry, language string) (*Word, error)
	GetByText(ctx context.Context, text, language string) (*Word, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Word, error)
	SetImageURL(ctx context.Context, wordID uuid.UUID, imageURL string) error
}

// WordLookupService resolves a word through cache, dedup, and the
// dictionary/translation providers.
type WordLookupService interface {
	Lookup(ctx context.Context, text, language string) (*WordEntry, error)
}

// Translator translates text between languages.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}
