package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/henryli127-lang/volca/internal/domain"
	apperrors "github.com/henryli127-lang/volca/internal/errors"
)

func (s *Server) handleLookupWord(c echo.Context) error {
	text := c.Param("text")
	language := c.QueryParam("lang")

	entry, err := s.lookup.Lookup(c.Request().Context(), text, language)
	if errors.Is(err, domain.ErrEmptyText) {
		return apperrors.ValidationError("word text is required")
	}
	if errors.Is(err, domain.ErrWordNotFound) {
		return apperrors.NotFoundError("word not found").WithField("word", text)
	}
	if err != nil {
		return apperrors.ExternalError("dictionary lookup failed", err).WithField("word", text)
	}

	if err := c.JSON(http.StatusOK, entry); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Source == "" {
		req.Source = "en"
	}
	if req.Target == "" {
		req.Target = s.config.TranslateTarget
	}

	translation, err := s.translator.Translate(c.Request().Context(), req.Text, req.Source, req.Target)
	if errors.Is(err, domain.ErrEmptyText) {
		return apperrors.ValidationError("text is required")
	}
	if errors.Is(err, domain.ErrInvalidLanguage) {
		return apperrors.ValidationError(err.Error())
	}
	if err != nil {
		return apperrors.ExternalError("translation failed", err)
	}

	response := map[string]string{
		"text":        req.Text,
		"translation": translation,
		"source":      req.Source,
		"target":      req.Target,
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
