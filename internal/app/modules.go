package app

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/fieldnotes/internal/module"
	"github.com/nfrund/fieldnotes/internal/modules/species"
	"github.com/nfrund/fieldnotes/internal/modules/users"
	"github.com/samber/do/v2"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules() []module.Module {
	return []module.Module{
		// Add new application modules here.
		users.New(),
		species.New(),
	}
}

// BootModules registers every module's services, then boots each one on its
// own route group, "/<name>".
func BootModules(ctx context.Context, e *echo.Echo, i do.Injector, modules []module.Module) error {
	for _, m := range modules {
		if err := m.Register(i); err != nil {
			return fmt.Errorf("failed to register module %s: %w", m.Name(), err)
		}
	}
	for _, m := range modules {
		if err := m.Boot(ctx, e.Group("/"+m.Name()), i); err != nil {
			return fmt.Errorf("failed to boot module %s: %w", m.Name(), err)
		}
	}
	return nil
}

// ShutdownModules stops modules in reverse boot order and returns the first error.
func ShutdownModules(ctx context.Context, modules []module.Module) error {
	var first error
	for idx := len(modules) - 1; idx >= 0; idx-- {
		if err := modules[idx].Shutdown(ctx); err != nil && first == nil {
			first = fmt.Errorf("failed to shut down module %s: %w", modules[idx].Name(), err)
		}
	}
	return first
}
