package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/henryli127-lang/volca/internal/domain"
	apperrors "github.com/henryli127-lang/volca/internal/errors"
)

const defaultArticleLimit = 20

func (s *Server) handleListArticles(c echo.Context) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return err
	}

	articles, err := s.articles.ListByProfile(c.Request().Context(), profileID, defaultArticleLimit)
	if err != nil {
		return apperrors.InternalError("failed to list articles", err).WithField("profile_id", profileID.String())
	}

	if err := c.JSON(http.StatusOK, map[string]any{"articles": articles}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetArticle(c echo.Context) error {
	raw := c.Param("id")
	articleID, err := uuid.Parse(raw)
	if err != nil {
		return apperrors.ValidationError("invalid article ID").WithField("id", raw)
	}

	article, err := s.articles.GetByID(c.Request().Context(), articleID)
	if errors.Is(err, domain.ErrArticleNotFound) {
		return apperrors.NotFoundError("article not found").WithField("article_id", articleID.String())
	}
	if err != nil {
		return apperrors.InternalError("failed to load article", err).WithField("article_id", articleID.String())
	}

	if err := c.JSON(http.StatusOK, article); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
