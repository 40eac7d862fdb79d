package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nfrund/fieldnotes/internal/config"
	"github.com/nfrund/fieldnotes/internal/database"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/logging"
	"github.com/nfrund/fieldnotes/internal/seed"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	seedFile  string
	seedReset bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load species and profiles from a YAML file",
	Long: `Seed validates every record in the file before writing anything.
With --reset the species and profiles tables are emptied first.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "path to the YAML dataset")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete existing species and profiles first")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	logger := logging.New()

	ds, err := seed.Load(afero.NewOsFs(), seedFile)
	if err != nil {
		return err
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	conn := database.NewConnection(cfg)
	if err := conn.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(context.Background())

	targets, err := seedTargets(conn, cfg)
	if err != nil {
		return err
	}

	res, err := seed.Apply(ctx, targets, ds, seedReset)
	if err != nil {
		return err
	}

	logger.Info("Seed complete", "file", seedFile, "species", res.Species, "profiles", res.Profiles, "reset", seedReset)
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d species and %d profiles from %s\n", res.Species, res.Profiles, seedFile)
	return nil
}

func seedTargets(conn *database.Connection, cfg config.Provider) (seed.Targets, error) {
	speciesClient, err := database.NewClient[domain.Species](conn, cfg)
	if err != nil {
		return seed.Targets{}, err
	}
	profileClient, err := database.NewClient[domain.Profile](conn, cfg)
	if err != nil {
		return seed.Targets{}, err
	}
	rawClient, err := database.NewClient[map[string]any](conn, cfg)
	if err != nil {
		return seed.Targets{}, err
	}
	return seed.Targets{
		Species:   database.NewSpeciesStore(speciesClient),
		Profiles:  database.NewProfileStore(profileClient),
		Truncator: database.NewTruncator(rawClient),
	}, nil
}
