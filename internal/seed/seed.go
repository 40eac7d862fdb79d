// Package seed loads a YAML dataset of species and profiles and writes it to
// the database.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/spf13/afero"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Dataset is the top-level shape of a seed file.
type Dataset struct {
	Species  []SpeciesSeed `yaml:"species" validate:"dive"`
	Profiles []ProfileSeed `yaml:"profiles" validate:"dive"`
}

// SpeciesSeed is one species entry. Author is a record id such as "user:ada".
type SpeciesSeed struct {
	ScientificName  string `yaml:"scientific_name" validate:"required,max=200"`
	CommonName      string `yaml:"common_name" validate:"max=200"`
	Image           string `yaml:"image" validate:"omitempty,url"`
	Description     string `yaml:"description" validate:"max=5000"`
	TotalPopulation *int64 `yaml:"total_population" validate:"omitempty,gte=0"`
	Kingdom         string `yaml:"kingdom" validate:"required,max=100"`
	Author          string `yaml:"author" validate:"omitempty,contains=:"`
}

// ProfileSeed is one profile entry.
type ProfileSeed struct {
	Email       string  `yaml:"email" validate:"required,email"`
	DisplayName string  `yaml:"display_name" validate:"required,max=100"`
	Biography   *string `yaml:"biography" validate:"omitempty,max=2000"`
}

// Truncator empties a table before seeding.
type Truncator interface {
	Truncate(ctx context.Context, table string) error
}

// Targets are the stores a dataset is written to. Truncator is only needed
// when resetting.
type Targets struct {
	Species   domain.SpeciesRepository
	Profiles  domain.ProfileRepository
	Truncator Truncator
}

// Result counts the records created.
type Result struct {
	Species  int
	Profiles int
}

// Load reads and validates the dataset at path. Unknown keys are rejected so
// a typo does not silently drop a field.
func Load(fs afero.Fs, path string) (*Dataset, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	if err := validate.Struct(&ds); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}
	return &ds, nil
}

// Apply writes the dataset. With reset, the species and profiles tables are
// emptied first. It stops at the first failing record.
func Apply(ctx context.Context, t Targets, ds *Dataset, reset bool) (Result, error) {
	var res Result
	if t.Species == nil || t.Profiles == nil {
		return res, errors.New("seed: species and profile repositories are required")
	}

	if reset {
		if t.Truncator == nil {
			return res, errors.New("seed: reset requested without a truncater")
		}
		for _, table := range []string{domain.SpeciesTable, domain.ProfilesTable} {
			if err := t.Truncator.Truncate(ctx, table); err != nil {
				return res, err
			}
		}
	}

	for idx, p := range ds.Profiles {
		profile := &domain.Profile{Email: p.Email, DisplayName: p.DisplayName, Biography: p.Biography}
		if _, err := t.Profiles.CreateProfile(ctx, profile); err != nil {
			return res, fmt.Errorf("profile %d (%s): %w", idx, p.Email, err)
		}
		res.Profiles++
	}

	for idx, s := range ds.Species {
		species, err := s.toDomain()
		if err != nil {
			return res, fmt.Errorf("species %d (%s): %w", idx, s.ScientificName, err)
		}
		if _, err := t.Species.CreateSpecies(ctx, species); err != nil {
			return res, fmt.Errorf("species %d (%s): %w", idx, s.ScientificName, err)
		}
		res.Species++
	}

	return res, nil
}

func (s SpeciesSeed) toDomain() (*domain.Species, error) {
	out := &domain.Species{
		ScientificName:  s.ScientificName,
		CommonName:      optional(s.CommonName),
		Image:           optional(s.Image),
		Description:     optional(s.Description),
		TotalPopulation: s.TotalPopulation,
		Kingdom:         s.Kingdom,
	}
	if s.Author != "" {
		table, key, ok := strings.Cut(s.Author, ":")
		if !ok || table == "" || key == "" {
			return nil, fmt.Errorf("author %q is not a record id", s.Author)
		}
		author := surrealmodels.NewRecordID(table, key)
		out.Author = &author
	}
	return out, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
