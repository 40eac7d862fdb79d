package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/nfrund/fieldnotes/internal/domain"
)

var _ domain.SpeciesRepository = (*SpeciesStore)(nil)

// SpeciesStore reads and writes the species table.
type SpeciesStore struct {
	client Client[domain.Species]
}

// NewSpeciesStore creates a new SpeciesStore with the given database client.
func NewSpeciesStore(client Client[domain.Species]) *SpeciesStore {
	return &SpeciesStore{client: client}
}

// ListSpecies returns every species ordered ascending by record id.
func (s *SpeciesStore) ListSpecies(ctx context.Context) ([]domain.Species, error) {
	query, err := Select().From(domain.SpeciesTable).OrderBy("id", Ascending).Build()
	if err != nil {
		return nil, err
	}

	species, err := s.client.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list species: %w", err)
	}
	if species == nil {
		species = []domain.Species{}
	}
	return species, nil
}

// GetSpecies retrieves one species by its record key.
func (s *SpeciesStore) GetSpecies(ctx context.Context, key string) (*domain.Species, error) {
	species, err := s.client.Select(ctx, domain.SpeciesTable, key)
	if errors.Is(err, ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get species %q: %w", key, err)
	}
	return species, nil
}

// CreateSpecies inserts a new species record.
func (s *SpeciesStore) CreateSpecies(ctx context.Context, sp *domain.Species) (*domain.Species, error) {
	if sp == nil {
		return nil, errors.New("species to create cannot be nil")
	}
	upd := domain.UpdateFor(sp)
	if err := upd.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed for species: %w", err)
	}

	data := upd.Fields()
	if sp.Author != nil {
		data["author"] = sp.Author
	}
	created, err := s.client.Create(ctx, domain.SpeciesTable, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create species: %w", err)
	}
	return created, nil
}

// UpdateSpecies merges the validated update into an existing record.
func (s *SpeciesStore) UpdateSpecies(ctx context.Context, key string, update domain.SpeciesUpdate) (*domain.Species, error) {
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed for species: %w", err)
	}

	updated, err := s.client.Update(ctx, domain.SpeciesTable, key, update.Fields())
	if errors.Is(err, ErrNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update species %q: %w", key, err)
	}
	return updated, nil
}
