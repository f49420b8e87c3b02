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

// profileColumns must match the Scan order in scanProfile.
const profileColumns = `id, nickname, birth_year, avatar, created_at, updated_at`

// ProfileRepo implements domain.ProfileRepository backed by PostgreSQL.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.Nickname, &p.BirthYear, &p.Avatar, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) Create(ctx context.Context, nickname string, birthYear int, avatar string) (*domain.Profile, error) {
	profile, err := scanProfile(r.pool.QueryRow(ctx, `
		INSERT INTO profiles (nickname, birth_year, avatar)
		VALUES ($1, $2, $3)
		RETURNING `+profileColumns,
		nickname, birthYear, avatar))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, profileID))
}

func (r *ProfileRepo) Update(ctx context.Context, profileID uuid.UUID, nickname string, birthYear int, avatar string) (*domain.Profile, error) {
	return scanProfile(r.pool.QueryRow(ctx, `
		UPDATE profiles
		SET nickname = $1, birth_year = $2, avatar = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+profileColumns,
		nickname, birthYear, avatar, profileID))
}

func (r *ProfileRepo) Delete(ctx context.Context, profileID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
