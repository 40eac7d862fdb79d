package domain

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// SpeciesTable is the SurrealDB table holding species records.
const SpeciesTable = "species"

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

// Species is a stored biological-species entry.
type Species struct {
	ID              *surrealmodels.RecordID `json:"id,omitempty"`
	ScientificName  string                  `json:"scientific_name"`
	CommonName      *string                 `json:"common_name,omitempty"`
	Image           *string                 `json:"image,omitempty"`
	Description     *string                 `json:"description,omitempty"`
	TotalPopulation *int64                  `json:"total_population,omitempty"`
	Kingdom         string                  `json:"kingdom"`
	Author          *surrealmodels.RecordID `json:"author,omitempty"`
}

// Key returns the record key without the table prefix, suitable for URLs.
func (s *Species) Key() string {
	if s == nil || s.ID == nil {
		return ""
	}
	return fmt.Sprint(s.ID.ID)
}

// OwnedBy reports whether the given user record id authored this species.
func (s *Species) OwnedBy(userID string) bool {
	if s == nil || s.Author == nil || userID == "" {
		return false
	}
	return s.Author.String() == userID
}

// SpeciesUpdate carries the editable fields of a species record.
// Empty optional strings mean "clear the field".
type SpeciesUpdate struct {
	ScientificName  string `form:"scientific_name" json:"scientific_name" validate:"required,max=200"`
	CommonName      string `form:"common_name" json:"common_name" validate:"max=200"`
	Image           string `form:"image" json:"image" validate:"omitempty,url"`
	Description     string `form:"description" json:"description" validate:"max=5000"`
	TotalPopulation *int64 `form:"total_population" json:"total_population" validate:"omitempty,gte=0"`
	Kingdom         string `form:"kingdom" json:"kingdom" validate:"required,max=100"`
}

// Validate runs validation checks on the update using the defined tags.
func (u *SpeciesUpdate) Validate() error {
	return validatorInstance.Struct(u)
}

// Fields converts the update into the MERGE payload for the database.
func (u *SpeciesUpdate) Fields() map[string]any {
	return map[string]any{
		"scientific_name":  u.ScientificName,
		"common_name":      optional(u.CommonName),
		"image":            optional(u.Image),
		"description":      optional(u.Description),
		"total_population": u.TotalPopulation,
		"kingdom":          u.Kingdom,
	}
}

// UpdateFor prefills an update from an existing record.
func UpdateFor(s *Species) SpeciesUpdate {
	return SpeciesUpdate{
		ScientificName:  s.ScientificName,
		CommonName:      deref(s.CommonName),
		Image:           deref(s.Image),
		Description:     deref(s.Description),
		TotalPopulation: s.TotalPopulation,
		Kingdom:         s.Kingdom,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SpeciesRepository defines the storage operations for species records.
type SpeciesRepository interface {
	ListSpecies(ctx context.Context) ([]Species, error)
	GetSpecies(ctx context.Context, key string) (*Species, error)
	CreateSpecies(ctx context.Context, s *Species) (*Species, error)
	UpdateSpecies(ctx context.Context, key string, update SpeciesUpdate) (*Species, error)
}
