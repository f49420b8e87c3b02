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

type profileRequest struct {
	Nickname  string `json:"nickname"`
	BirthYear int    `json:"birth_year"`
	Avatar    string `json:"avatar"`
}

func (r *profileRequest) validate(currentYear int) error {
	if r.Nickname == "" {
		return apperrors.ValidationError("nickname is required")
	}
	if len(r.Nickname) > 50 {
		return apperrors.ValidationError("nickname must be at most 50 characters")
	}
	if r.BirthYear != 0 && (r.BirthYear < currentYear-18 || r.BirthYear > currentYear) {
		return apperrors.ValidationError("birth_year out of range").WithField("birth_year", r.BirthYear)
	}
	return nil
}

func (s *Server) handleCreateProfile(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if err := req.validate(s.clock.Now().Year()); err != nil {
		return err
	}

	profile, err := s.profiles.Create(c.Request().Context(), req.Nickname, req.BirthYear, req.Avatar)
	if err != nil {
		return apperrors.InternalError("failed to create profile", err)
	}

	if err := c.JSON(http.StatusCreated, profile); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetProfile(c echo.Context) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return err
	}

	profile, err := s.profiles.GetByID(c.Request().Context(), profileID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return apperrors.NotFoundError("profile not found").WithField("profile_id", profileID.String())
	}
	if err != nil {
		return apperrors.InternalError("failed to load profile", err).WithField("profile_id", profileID.String())
	}

	if err := c.JSON(http.StatusOK, profile); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	ctx := c.Request().Context()
	existing, err := s.profiles.GetByID(ctx, profileID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return apperrors.NotFoundError("profile not found").WithField("profile_id", profileID.String())
	}
	if err != nil {
		return apperrors.InternalError("failed to load profile", err).WithField("profile_id", profileID.String())
	}

	// Partial update: untouched fields keep their current value
	if req.Nickname == "" {
		req.Nickname = existing.Nickname
	}
	if req.BirthYear == 0 {
		req.BirthYear = existing.BirthYear
	}
	if req.Avatar == "" {
		req.Avatar = existing.Avatar
	}
	if err := req.validate(s.clock.Now().Year()); err != nil {
		return err
	}

	profile, err := s.profiles.Update(ctx, profileID, req.Nickname, req.BirthYear, req.Avatar)
	if err != nil {
		return apperrors.InternalError("failed to update profile", err).WithField("profile_id", profileID.String())
	}

	if err := c.JSON(http.StatusOK, profile); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleDeleteProfile(c echo.Context) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return err
	}

	err = s.profiles.Delete(c.Request().Context(), profileID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return apperrors.NotFoundError("profile not found").WithField("profile_id", profileID.String())
	}
	if err != nil {
		return apperrors.InternalError("failed to delete profile", err).WithField("profile_id", profileID.String())
	}

	return c.NoContent(http.StatusNoContent)
}

func parseProfileID(c echo.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	profileID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid profile ID").WithField("id", raw)
	}
	return profileID, nil
}
