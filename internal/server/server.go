package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/fieldnotes/internal/config"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/handlers"
	appmiddleware "github.com/nfrund/fieldnotes/internal/middleware"
	"github.com/nfrund/fieldnotes/internal/module"
	"github.com/nfrund/fieldnotes/internal/pubsub"
	"github.com/nfrund/fieldnotes/internal/rendering"
	"github.com/samber/do/v2"
)

// HealthChecker reports whether the shared database connection is usable.
type HealthChecker interface {
	IsHealthy() bool
}

// Closer releases a resource on shutdown.
type Closer interface {
	Close(ctx context.Context) error
}

// Dependencies holds everything the server needs. Repositories are passed
// explicitly for the core routes; modules resolve theirs from Injector.
type Dependencies struct {
	Config   config.Provider
	Logger   *slog.Logger
	Health   HealthChecker
	Sessions domain.SessionRepository
	Profiles domain.ProfileRepository
	Renderer rendering.Renderer
	Bus      pubsub.Bus
	Injector do.Injector
	Modules  []module.Module
	// Resources are closed in order on shutdown, after the HTTP server stops.
	Resources []Closer
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E    *echo.Echo
	deps Dependencies

	homeHandler *handlers.HomeHandler
	authHandler *handlers.AuthHandler

	cancelModules context.CancelFunc
}

// New creates a new Server instance with the global middleware installed.
func New(deps Dependencies) (*Server, error) {
	switch {
	case deps.Config == nil:
		return nil, errors.New("server: config is required")
	case deps.Sessions == nil || deps.Profiles == nil:
		return nil, errors.New("server: session and profile repositories are required")
	case deps.Renderer == nil:
		return nil, errors.New("server: renderer is required")
	case deps.Injector == nil:
		return nil, errors.New("server: injector is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	if r, ok := deps.Renderer.(echo.Renderer); ok {
		e.Renderer = r
	}
	setupErrorHandling(e)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(appmiddleware.Logger(deps.Logger))

	// Flash messages live in their own cookie; the auth token is separate.
	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   deps.Config.GetSecureCookies(),
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(appmiddleware.Session(deps.Sessions, deps.Config.GetSecureCookies()))

	return &Server{
		E:           e,
		deps:        deps,
		homeHandler: handlers.NewHomeHandler(),
		authHandler: handlers.NewAuthHandler(deps.Sessions, deps.Profiles, deps.Config.GetSecureCookies()),
	}, nil
}
