package app

import (
	"fmt"

	"github.com/nfrund/fieldnotes/internal/config"
	"github.com/nfrund/fieldnotes/internal/database"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/pubsub"
	"github.com/nfrund/fieldnotes/internal/rendering"
	"github.com/samber/do/v2"
)

// NewInjector builds the root injector holding the core services that the
// application's modules depend on. Repositories are created lazily on first
// use and share the given connection.
func NewInjector(cfg config.Provider, conn *database.Connection, bus pubsub.Bus) *do.RootScope {
	i := do.New()

	do.ProvideValue(i, cfg)
	do.ProvideValue(i, conn)
	do.ProvideValue[database.Dialer](i, conn)
	do.ProvideValue(i, bus)
	do.ProvideValue[pubsub.Publisher](i, bus)
	do.ProvideValue[pubsub.Subscriber](i, bus)
	do.ProvideValue[rendering.Renderer](i, rendering.NewUniversalRenderer())

	do.Provide(i, func(i do.Injector) (domain.SpeciesRepository, error) {
		client, err := database.NewClient[domain.Species](conn, cfg)
		if err != nil {
			return nil, fmt.Errorf("species client: %w", err)
		}
		return database.NewSpeciesStore(client), nil
	})
	do.Provide(i, func(i do.Injector) (domain.ProfileRepository, error) {
		client, err := database.NewClient[domain.Profile](conn, cfg)
		if err != nil {
			return nil, fmt.Errorf("profile client: %w", err)
		}
		return database.NewProfileStore(client), nil
	})
	do.Provide(i, func(i do.Injector) (domain.SessionRepository, error) {
		return database.NewSessionStore(conn, cfg), nil
	})

	return i
}
