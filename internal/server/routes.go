package server

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/emcapi/emcapi/internal/config"
	"github.com/emcapi/emcapi/internal/core/engine"
	"github.com/emcapi/emcapi/internal/observability"
	"github.com/emcapi/emcapi/internal/server/handlers"
)

// quotaReporter is implemented by *client.Client.
type quotaReporter interface {
	Server() string
	RateLimit() engine.RateLimit
	InWindow() int
}

func (s *Server) registerRoutes() {
	s.registerHealthChecks()

	s.router.Get("/health", s.health.HealthHandler)
	s.router.Get("/health/live", s.health.LivenessHandler)
	s.router.Get("/health/ready", s.health.ReadinessHandler)

	s.router.Get("/version", handlers.VersionHandler(s.upstreamInfo()))
	s.router.Get("/metrics", MetricsHandler)

	api := handlers.NewAPIHandlers(s.api)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/", api.ServerInfo)
		r.Get("/players", api.Players)
		r.Get("/towns", api.Towns)
		r.Get("/nations", api.Nations)
		r.Get("/quarters", api.Quarters)
		r.Get("/discord", api.Discord)
		r.Get("/location", api.Location)
		r.Get("/nearby/town", api.NearbyTown)
		r.Get("/nearby/coordinate", api.NearbyCoordinate)
	})

	s.registerAdminEndpoint()
}

func (s *Server) registerHealthChecks() {
	s.health.RegisterChecker("session", handlers.HealthCheckFunc(func(ctx context.Context) error {
		if s.api == nil {
			return errors.New("no API session configured")
		}
		return nil
	}))

	reporter, ok := s.api.(quotaReporter)
	if !ok {
		return
	}
	// A saturated window still serves requests, just late.
	s.health.RegisterChecker("rate_limiter", handlers.HealthCheckFunc(func(ctx context.Context) error {
		limit, bounded := reporter.RateLimit().Quota.Limit()
		if inWindow := reporter.InWindow(); bounded && inWindow >= limit {
			return fmt.Errorf("%w: %d/%d requests in window", handlers.ErrDegraded, inWindow, limit)
		}
		return nil
	}))
}

func (s *Server) upstreamInfo() handlers.UpstreamInfo {
	reporter, ok := s.api.(quotaReporter)
	if !ok {
		return handlers.UpstreamInfo{}
	}
	limit := reporter.RateLimit()
	return handlers.UpstreamInfo{
		Server: reporter.Server(),
		Quota:  limit.Quota.String(),
		Window: limit.Window.String(),
	}
}

// registerAdminEndpoint exposes POST /admin/signal when EMCAPI_ADMIN_TOKEN is set.
func (s *Server) registerAdminEndpoint() {
	envName := config.EnvPrefix + "_ADMIN_TOKEN"
	adminToken := os.Getenv(envName)
	logger := observability.ServerLogger

	if adminToken == "" {
		if logger != nil {
			logger.Debug("Admin signal endpoint disabled (no " + envName + " set)")
		}
		return
	}

	handler := signals.NewHTTPHandler(signals.HTTPConfig{
		TokenAuth: adminToken,
		RateLimit: 10,
		RateBurst: 5,
		Manager:   nil,
	})
	s.router.Post("/admin/signal", handler.ServeHTTP)

	if logger != nil {
		logger.Info("Admin signal endpoint enabled",
			zap.String("path", "/admin/signal"),
			zap.String("rate_limit", "10/min, burst 5"))
		logger.Warn("Admin endpoint enabled - ensure this server is not exposed to public internet")
	}
}
