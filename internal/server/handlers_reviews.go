package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/henryli127-lang/volca/internal/errors"
)

type submitReviewRequest struct {
	WordID     uuid.UUID `json:"word_id"`
	Activity   string    `json:"activity"`
	Correct    bool      `json:"correct"`
	DurationMs int       `json:"duration_ms"`
}

var knownActivities = map[string]bool{
	"flashcard": true,
	"quiz":      true,
	"spelling":  true,
	"reading":   true,
}

func (s *Server) handleSubmitReview(c echo.Context) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return err
	}

	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.WordID == uuid.Nil {
		return apperrors.ValidationError("word_id is required")
	}
	req.Activity = strings.ToLower(strings.TrimSpace(req.Activity))
	if req.Activity == "" {
		req.Activity = "flashcard"
	}
	if !knownActivities[req.Activity] {
		return apperrors.ValidationError("unknown activity").WithField("activity", req.Activity)
	}
	if req.DurationMs < 0 {
		return apperrors.ValidationError("duration_ms must not be negative")
	}

	result, err := s.study.SubmitReview(c.Request().Context(), profileID, req.WordID, req.Activity, req.Correct, req.DurationMs)
	if err != nil {
		return apperrors.InternalError("failed to submit review", err).
			WithField("profile_id", profileID.String()).
			WithField("word_id", req.WordID.String())
	}

	if err := c.JSON(http.StatusOK, result); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDueWords(c echo.Context) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return apperrors.ValidationError("invalid limit").WithField("limit", raw)
		}
	}

	due, err := s.study.DueWords(c.Request().Context(), profileID, limit)
	if err != nil {
		return apperrors.InternalError("failed to load due words", err).WithField("profile_id", profileID.String())
	}

	if err := c.JSON(http.StatusOK, map[string]any{"due": due}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleStats(c echo.Context) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return err
	}

	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			return apperrors.ValidationError("invalid days").WithField("days", raw)
		}
	}

	stats, err := s.study.Stats(c.Request().Context(), profileID, days)
	if err != nil {
		return apperrors.InternalError("failed to load study stats", err).WithField("profile_id", profileID.String())
	}

	if err := c.JSON(http.StatusOK, map[string]any{"stats": stats}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
