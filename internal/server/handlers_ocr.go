package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/henryli127-lang/volca/internal/errors"
	"github.com/henryli127-lang/volca/internal/ocr"
)

type normalizeBoxesRequest struct {
	Pages []ocr.Page `json:"pages"`
}

type normalizedPage struct {
	Number int       `json:"number"`
	Boxes  []ocr.Box `json:"boxes"`
}

func (s *Server) handleNormalizeBoxes(c echo.Context) error {
	var req normalizeBoxesRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if len(req.Pages) == 0 {
		return apperrors.ValidationError("at least one page is required")
	}

	pages := make([]normalizedPage, 0, len(req.Pages))
	for _, page := range req.Pages {
		boxes, err := ocr.NormalizePage(page)
		if err != nil {
			return apperrors.ValidationError(err.Error()).WithField("page", page.Number)
		}
		pages = append(pages, normalizedPage{Number: page.Number, Boxes: boxes})
	}

	if err := c.JSON(http.StatusOK, map[string]any{"pages": pages}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
