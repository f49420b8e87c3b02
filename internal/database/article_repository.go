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

// articleColumns must match the Scan order in scanArticle.
const articleColumns = `id, profile_id, title, body, level, word_ids, created_at`

// ArticleRepo implements domain.ArticleRepository backed by PostgreSQL.
type ArticleRepo struct {
	pool *pgxpool.Pool
}

func NewArticleRepo(pool *pgxpool.Pool) *ArticleRepo {
	return &ArticleRepo{pool: pool}
}

func scanArticle(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	err := row.Scan(&a.ID, &a.ProfileID, &a.Title, &a.Body, &a.Level, &a.WordIDs, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ArticleRepo) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	created, err := scanArticle(r.pool.QueryRow(ctx, `
		INSERT INTO articles (profile_id, title, body, level, word_ids)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+articleColumns,
		article.ProfileID, article.Title, article.Body, article.Level, article.WordIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	return created, nil
}

func (r *ArticleRepo) GetByID(ctx context.Context, articleID uuid.UUID) (*domain.Article, error) {
	return scanArticle(r.pool.QueryRow(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = $1`, articleID))
}

func (r *ArticleRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.Article, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.ProfileID, &a.Title, &a.Body, &a.Level, &a.WordIDs, &a.CreatedAt); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
