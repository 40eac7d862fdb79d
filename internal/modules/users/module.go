package users

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/module"
	"github.com/nfrund/fieldnotes/internal/rendering"
	"github.com/samber/do/v2"
)

// Module implements module.Module for the users directory.
type Module struct {
	module.BaseModule
}

// New creates the users module.
func New() *Module {
	return &Module{}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "users"
}

// Boot mounts the users page.
func (m *Module) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	profiles, err := do.Invoke[domain.ProfileRepository](i)
	if err != nil {
		return fmt.Errorf("users module: %w", err)
	}

	slog.Info("Booting users module: Setting up routes...")
	handler := NewHandler(profiles, do.MustInvoke[rendering.Renderer](i))
	g.GET("", handler.Get)
	return nil
}
