package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

func ptr[T any](v T) *T { return &v }

func TestSpecies_KeyAndOwnership(t *testing.T) {
	id := surrealmodels.NewRecordID(SpeciesTable, "lynx")
	author := surrealmodels.NewRecordID("user", "ada")
	s := &Species{ID: &id, Author: &author}

	assert.Equal(t, "lynx", s.Key())
	assert.True(t, s.OwnedBy(author.String()))
	assert.False(t, s.OwnedBy("user:bob"))
	assert.False(t, s.OwnedBy(""))

	var nilSpecies *Species
	assert.Equal(t, "", nilSpecies.Key())
	assert.False(t, (&Species{}).OwnedBy(author.String()))
}

func TestSpeciesUpdate_Validate(t *testing.T) {
	valid := SpeciesUpdate{ScientificName: "Lynx lynx", Kingdom: "Animalia"}
	require.NoError(t, valid.Validate())

	cases := map[string]SpeciesUpdate{
		"missing scientific name": {Kingdom: "Animalia"},
		"missing kingdom":         {ScientificName: "Lynx lynx"},
		"bad image url":           {ScientificName: "Lynx lynx", Kingdom: "Animalia", Image: "not a url"},
		"negative population":     {ScientificName: "Lynx lynx", Kingdom: "Animalia", TotalPopulation: ptr(int64(-1))},
	}
	for name, upd := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, upd.Validate())
		})
	}
}

func TestSpeciesUpdate_FieldsClearsEmptyOptionals(t *testing.T) {
	upd := SpeciesUpdate{ScientificName: "Lynx lynx", Kingdom: "Animalia", CommonName: "Eurasian lynx"}
	fields := upd.Fields()

	assert.Equal(t, "Lynx lynx", fields["scientific_name"])
	assert.Equal(t, ptr("Eurasian lynx"), fields["common_name"])
	assert.Nil(t, fields["image"])
	assert.Nil(t, fields["description"])
}

func TestUpdateFor_RoundTripsRecord(t *testing.T) {
	s := &Species{
		ScientificName:  "Quercus robur",
		CommonName:      ptr("English oak"),
		TotalPopulation: ptr(int64(1000)),
		Kingdom:         "Plantae",
	}
	upd := UpdateFor(s)

	assert.Equal(t, "Quercus robur", upd.ScientificName)
	assert.Equal(t, "English oak", upd.CommonName)
	assert.Equal(t, "", upd.Description)
	assert.Equal(t, int64(1000), *upd.TotalPopulation)
}

func TestCredentialsAndProfileValidation(t *testing.T) {
	assert.NoError(t, (&Credentials{Email: "ada@example.com", Password: "longenough"}).Validate())
	assert.Error(t, (&Credentials{Email: "ada", Password: "longenough"}).Validate())
	assert.Error(t, (&Credentials{Email: "ada@example.com", Password: "short"}).Validate())

	assert.NoError(t, (&Profile{Email: "ada@example.com", DisplayName: "Ada"}).Validate())
	assert.Error(t, (&Profile{Email: "ada@example.com"}).Validate())
}
