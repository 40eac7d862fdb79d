package species

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/module"
	"github.com/nfrund/fieldnotes/internal/pubsub"
	"github.com/nfrund/fieldnotes/internal/rendering"
	"github.com/samber/do/v2"
)

// Module implements module.Module for the species catalogue.
type Module struct {
	module.BaseModule
}

// New creates the species module.
func New() *Module {
	return &Module{}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "species"
}

// Register provides the card state container.
func (m *Module) Register(i do.Injector) error {
	do.Provide(i, func(do.Injector) (*CardStates, error) {
		return NewCardStates(), nil
	})
	return nil
}

// Boot mounts the routes and starts the state reset subscriber.
func (m *Module) Boot(ctx context.Context, g *echo.Group, i do.Injector) error {
	repo, err := do.Invoke[domain.SpeciesRepository](i)
	if err != nil {
		return fmt.Errorf("species module: %w", err)
	}
	bus, err := do.Invoke[pubsub.Bus](i)
	if err != nil {
		return fmt.Errorf("species module: %w", err)
	}
	states := do.MustInvoke[*CardStates](i)
	renderer := do.MustInvoke[rendering.Renderer](i)

	if err := NewStateResetSubscriber(bus, states).Start(ctx); err != nil {
		return fmt.Errorf("species module: failed to subscribe: %w", err)
	}

	slog.Info("Booting species module: Setting up routes...")
	handler := NewHandler(repo, states, bus, renderer)
	g.GET("", handler.List)
	g.POST("/:key/toggle", handler.Toggle)
	g.POST("/:key", handler.Update)

	return nil
}
