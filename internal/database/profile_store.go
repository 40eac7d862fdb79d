package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/nfrund/fieldnotes/internal/domain"
)

var _ domain.ProfileRepository = (*ProfileStore)(nil)

// ProfileStore reads and writes the profiles table.
type ProfileStore struct {
	client Client[domain.Profile]
}

// NewProfileStore creates a new ProfileStore with the given database client.
func NewProfileStore(client Client[domain.Profile]) *ProfileStore {
	return &ProfileStore{client: client}
}

// ListProfiles returns every profile ordered ascending by record id.
func (s *ProfileStore) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	query, err := Select("email", "display_name", "biography").
		From(domain.ProfilesTable).
		OrderBy("id", Ascending).
		Build()
	if err != nil {
		return nil, err
	}

	profiles, err := s.client.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return profiles, nil
}

// CreateProfile inserts a new profile after validating it.
func (s *ProfileStore) CreateProfile(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	if p == nil {
		return nil, errors.New("profile to create cannot be nil")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed for profile: %w", err)
	}

	data := map[string]any{
		"email":        p.Email,
		"display_name": p.DisplayName,
		"biography":    p.Biography,
	}
	created, err := s.client.Create(ctx, domain.ProfilesTable, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return created, nil
}
