// Package server exposes the HTTP API: profiles, word lookups, speech
// synthesis, content generation, OCR box mapping, reviews and saved stories.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"github.com/henryli127-lang/volca/internal/config"
	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/henryli127-lang/volca/internal/study"
)

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	profiles    domain.ProfileRepository
	words       domain.WordRepository
	articles    domain.ArticleRepository
	lookup      domain.WordLookupService
	translator  domain.Translator
	synthesizer domain.Synthesizer
	generator   domain.Generator
	study       *study.Service

	clock        clockwork.Clock
	healthChecks []HealthCheck
	startTime    time.Time
}

type Deps struct {
	Profiles     domain.ProfileRepository
	Words        domain.WordRepository
	Articles     domain.ArticleRepository
	Lookup       domain.WordLookupService
	Translator   domain.Translator
	Synthesizer  domain.Synthesizer
	Generator    domain.Generator
	Study        *study.Service
	Clock        clockwork.Clock
	HealthChecks []HealthCheck
}

func NewServer(cfg *config.Config, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}

	srv := &Server{
		echo:         e,
		config:       cfg,
		profiles:     deps.Profiles,
		words:        deps.Words,
		articles:     deps.Articles,
		lookup:       deps.Lookup,
		translator:   deps.Translator,
		synthesizer:  deps.Synthesizer,
		generator:    deps.Generator,
		study:        deps.Study,
		clock:        deps.Clock,
		healthChecks: deps.HealthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
