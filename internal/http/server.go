// Package http provides the HTTP API for screend.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/screend/internal/config"
	"github.com/fyrsmithlabs/screend/internal/screening"
)

// Screener is the service surface the HTTP layer depends on.
type Screener interface {
	Screen(ctx context.Context, req screening.Request) (*screening.Report, error)
	ScoreDocument(ctx context.Context, text string) (*screening.DocumentScore, error)
}

// Server provides HTTP endpoints for screend.
type Server struct {
	echo     *echo.Echo
	screener Screener
	gatherer prometheus.Gatherer
	logger   *zap.Logger
	cfg      config.ServerConfig
}

// NewServer creates a new HTTP server. gatherer backs GET /metrics; pass
// the registry the screening counters are registered on.
func NewServer(screener Screener, gatherer prometheus.Gatherer, logger *zap.Logger, cfg config.ServerConfig) (*Server, error) {
	if screener == nil {
		return nil, fmt.Errorf("screener cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if cfg.MaxBodyBytes > 0 {
		e.Use(middleware.BodyLimit(fmt.Sprintf("%d", cfg.MaxBodyBytes)))
	}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		screener: screener,
		gatherer: gatherer,
		logger:   logger,
		cfg:      cfg,
	}
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	v1 := s.echo.Group("/api/v1")
	v1.Use(NewHTTPMetrics(s.logger).MetricsMiddleware())
	v1.POST("/screen", s.handleScreen)
	v1.POST("/score", s.handleScore)
}

// ScreenRequest is the request body for POST /api/v1/screen.
type ScreenRequest struct {
	Text       string                      `json:"text"`
	Structured *screening.StructuredFields `json:"structured_fields,omitempty"`
}

// ScoreRequest is the request body for POST /api/v1/score.
type ScoreRequest struct {
	Text string `json:"text"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleScreen classifies a change request. A degraded report is still a
// 200; only invalid input is a client error.
func (s *Server) handleScreen(c echo.Context) error {
	var req ScreenRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid screen request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	report, err := s.screener.Screen(c.Request().Context(), screening.Request{
		Text:       req.Text,
		Structured: req.Structured,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, report)
}

// handleScore scores a document's writing quality.
func (s *Server) handleScore(c echo.Context) error {
	var req ScoreRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid score request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	score, err := s.screener.ScoreDocument(c.Request().Context(), req.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, score)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.echo.Server.ReadTimeout = s.cfg.ReadTimeout.Duration()
	s.echo.Server.WriteTimeout = s.cfg.WriteTimeout.Duration()
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
