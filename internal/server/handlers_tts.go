package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/henryli127-lang/volca/internal/domain"
	apperrors "github.com/henryli127-lang/volca/internal/errors"
)

type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

func (s *Server) handleSynthesize(c echo.Context) error {
	var req synthesizeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	audio, err := s.synthesizer.Synthesize(c.Request().Context(), req.Text, req.Voice)
	if errors.Is(err, domain.ErrEmptyText) {
		return apperrors.ValidationError("text is required")
	}
	if errors.Is(err, domain.ErrTextTooLong) {
		return apperrors.ValidationError("text exceeds the maximum synthesis length")
	}
	if err != nil {
		return apperrors.ExternalError("speech synthesis failed", err)
	}

	if err := c.Blob(http.StatusOK, "audio/mpeg", audio); err != nil {
		return fmt.Errorf("failed to send audio response: %w", err)
	}
	return nil
}
