package server

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/henryli127-lang/volca/internal/domain"
	apperrors "github.com/henryli127-lang/volca/internal/errors"
)

const (
	maxStoryWords      = 10
	defaultReadLevel   = "beginner"
	defaultOptionCount = 4
)

type generateStoryRequest struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Words     []string  `json:"words"`
	Level     string    `json:"level"`
}

type generateStoryResponse struct {
	Story     *domain.Story `json:"story"`
	ArticleID *uuid.UUID    `json:"article_id,omitempty"`
}

func (s *Server) handleGenerateStory(c echo.Context) error {
	var req generateStoryRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	words := normalizeWords(req.Words)
	if len(words) == 0 {
		return apperrors.ValidationError("at least one word is required")
	}
	if len(words) > maxStoryWords {
		return apperrors.ValidationError("too many words").WithField("max", maxStoryWords)
	}
	if req.Level == "" {
		req.Level = defaultReadLevel
	}

	ctx := c.Request().Context()
	story, err := s.generator.GenerateStory(ctx, words, req.Level)
	if err != nil {
		return apperrors.ExternalError("story generation failed", err)
	}

	response := generateStoryResponse{Story: story}

	// Persistence is best-effort: the child still gets the story when
	// saving fails.
	if req.ProfileID != uuid.Nil {
		article, err := s.saveStory(c, req.ProfileID, story, req.Level)
		if err != nil {
			slog.Error("Failed to save generated story",
				"profile_id", req.ProfileID,
				"error", err,
			)
		} else {
			response.ArticleID = &article.ID
		}
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) saveStory(c echo.Context, profileID uuid.UUID, story *domain.Story, level string) (*domain.Article, error) {
	ctx := c.Request().Context()

	var wordIDs []uuid.UUID
	for _, text := range story.Words {
		word, err := s.words.GetByText(ctx, strings.ToLower(text), "en")
		if err != nil {
			continue
		}
		wordIDs = append(wordIDs, word.ID)
	}

	return s.articles.Create(ctx, &domain.Article{
		ProfileID: profileID,
		Title:     story.Title,
		Body:      story.Body,
		Level:     level,
		WordIDs:   wordIDs,
	})
}

type generateOptionsRequest struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Count      int    `json:"count"`
}

func (s *Server) handleGenerateOptions(c echo.Context) error {
	var req generateOptionsRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	req.Word = strings.TrimSpace(req.Word)
	if req.Word == "" {
		return apperrors.ValidationError("word is required")
	}
	if req.Count <= 0 {
		req.Count = defaultOptionCount
	}
	if req.Count > 8 {
		return apperrors.ValidationError("count must be at most 8")
	}

	ctx := c.Request().Context()
	if req.Definition == "" {
		word, err := s.words.GetByText(ctx, strings.ToLower(req.Word), "en")
		if err != nil {
			return apperrors.ValidationError("definition is required for words not in the word bank").
				WithField("word", req.Word)
		}
		req.Definition = word.Definition
	}

	options, err := s.generator.GenerateOptions(ctx, req.Word, req.Definition, req.Count)
	if err != nil {
		return apperrors.ExternalError("options generation failed", err)
	}

	if err := c.JSON(http.StatusOK, options); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type generateImageRequest struct {
	Prompt string    `json:"prompt"`
	WordID uuid.UUID `json:"word_id"`
}

func (s *Server) handleGenerateImage(c echo.Context) error {
	var req generateImageRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return apperrors.ValidationError("prompt is required")
	}

	ctx := c.Request().Context()
	image, err := s.generator.GenerateImage(ctx, req.Prompt)
	if err != nil {
		return apperrors.ExternalError("image generation failed", err)
	}

	// Attach the image to a word bank entry when requested, best-effort.
	if req.WordID != uuid.Nil {
		dataURL := fmt.Sprintf("data:%s;base64,%s", image.MimeType, base64.StdEncoding.EncodeToString(image.Data))
		if err := s.words.SetImageURL(ctx, req.WordID, dataURL); err != nil {
			slog.Error("Failed to attach image to word",
				"word_id", req.WordID,
				"error", err,
			)
		}
	}

	if err := c.JSON(http.StatusOK, image); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func normalizeWords(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
