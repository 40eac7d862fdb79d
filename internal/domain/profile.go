package domain

import (
	"context"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// ProfilesTable is the SurrealDB table holding user profiles.
const ProfilesTable = "profiles"

// Profile is the public identity record of a user.
type Profile struct {
	ID          *surrealmodels.RecordID `json:"id,omitempty"`
	Email       string                  `json:"email" validate:"required,email"`
	DisplayName string                  `json:"display_name" validate:"required,max=100"`
	Biography   *string                 `json:"biography,omitempty" validate:"omitempty,max=2000"`
}

// Validate runs validation checks on the profile using the defined tags.
func (p *Profile) Validate() error {
	return validatorInstance.Struct(p)
}

// ProfileRepository defines the storage operations for user profiles.
type ProfileRepository interface {
	// ListProfiles returns every profile ordered by its record id.
	ListProfiles(ctx context.Context) ([]Profile, error)
	CreateProfile(ctx context.Context, p *Profile) (*Profile, error)
}
