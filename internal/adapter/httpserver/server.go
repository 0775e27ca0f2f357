// Package httpserver exposes the reporting pipeline over a JSON API.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pscheid92/salespulse/internal/app"
	"github.com/pscheid92/salespulse/internal/domain"
	"github.com/pscheid92/salespulse/internal/platform/config"
)

// reportService is what the handlers need from the application layer.
type reportService interface {
	TerritorySummary(userID, page, size int) app.SummaryReport
	CallListing(userID int, callTypeFilter string, page, size int) app.ListingReport
	Users() ([]domain.User, domain.ResourceState)
	ResourceStates() map[domain.Resource]domain.ResourceState
	RefreshAll(ctx context.Context) error
	Ready() bool
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       reportService
	startTime time.Time
}

func NewServer(cfg *config.Config, app reportService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       app,
		startTime: time.Now(),
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
