package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/fieldnotes/internal/app"
	"github.com/nfrund/fieldnotes/internal/middleware"
)

const authBurst = 10

// RegisterRoutes sets up the core routes and boots every module. Module
// background work runs until Shutdown cancels it.
func (s *Server) RegisterRoutes(ctx context.Context) error {
	rateLimiter := middleware.RateLimiter(middleware.DefaultAuthRate, authBurst)

	s.E.GET("/", s.homeHandler.HomeGet)
	s.E.POST("/login", s.authHandler.LoginPost, rateLimiter)
	s.E.POST("/signup", s.authHandler.SignupPost, rateLimiter)
	s.E.POST("/logout", s.authHandler.Logout)

	s.E.GET("/health", func(c echo.Context) error {
		if s.deps.Health != nil && !s.deps.Health.IsHealthy() {
			return c.String(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.String(http.StatusOK, "OK")
	})

	moduleCtx, cancel := context.WithCancel(ctx)
	s.cancelModules = cancel
	if err := app.BootModules(moduleCtx, s.E, s.deps.Injector, s.deps.Modules); err != nil {
		cancel()
		return fmt.Errorf("failed to boot modules: %w", err)
	}
	return nil
}
