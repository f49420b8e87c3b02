package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/henryli127-lang/volca/internal/errors"
)

func (s *Server) registerRoutes() {
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	// Metrics wrap the error middleware so counted statuses reflect the
	// response actually written, not the pre-conversion 200.
	s.echo.Use(metricsMiddleware)
	s.echo.Use(apperrors.Middleware())

	s.registerHealthRoutes()
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	// Lookups are cheap after the cache tiers warm up
	lookupLimiter := newRateLimiter(10, 30)
	// Generation and synthesis fan out to paid providers
	providerLimiter := newRateLimiter(1, 5)

	api.POST("/profiles", s.handleCreateProfile)
	api.GET("/profiles/:id", s.handleGetProfile)
	api.PATCH("/profiles/:id", s.handleUpdateProfile)
	api.DELETE("/profiles/:id", s.handleDeleteProfile)

	api.GET("/words/:text", s.handleLookupWord, lookupLimiter)
	api.POST("/translate", s.handleTranslate, lookupLimiter)

	api.POST("/tts", s.handleSynthesize, providerLimiter)
	api.POST("/generate/story", s.handleGenerateStory, providerLimiter)
	api.POST("/generate/options", s.handleGenerateOptions, providerLimiter)
	api.POST("/generate/image", s.handleGenerateImage, providerLimiter)

	api.POST("/ocr/boxes", s.handleNormalizeBoxes)

	api.POST("/profiles/:id/reviews", s.handleSubmitReview)
	api.GET("/profiles/:id/reviews/due", s.handleDueWords)
	api.GET("/profiles/:id/stats", s.handleStats)

	api.GET("/profiles/:id/articles", s.handleListArticles)
	api.GET("/articles/:id", s.handleGetArticle)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}
