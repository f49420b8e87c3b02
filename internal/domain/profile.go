package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Nickname  string    `db:"nickname" json:"nickname"`
	BirthYear int       `db:"birth_year" json:"birth_year"`
	Avatar    string    `db:"avatar" json:"avatar"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileRepository abstracts child-profile persistence.
type ProfileRepository interface {
	Create(ctx context.Context, nickname string, birthYear int, avatar string) (*Profile, error)
	GetByID(ctx context.Context, profileID uuid.UUID) (*Profile, error)
	Update(ctx context.Context, profileID uuid.UUID, nickname string, birthYear int, avatar string) (*Profile, error)
	Delete(ctx context.Context, profileID uuid.UUID) error
}
