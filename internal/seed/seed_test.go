package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
profiles:
  - email: ada@example.com
    display_name: Ada
    biography: Counts moths.
  - email: bob@example.com
    display_name: Bob
species:
  - scientific_name: Lynx lynx
    common_name: Eurasian lynx
    kingdom: animalia
    total_population: 9000
    author: user:ada
  - scientific_name: Quercus robur
    kingdom: Plantae
`

func memFS(t *testing.T, path, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	return fs
}

type recordingTruncator struct {
	tables []string
	err    error
}

func (r *recordingTruncator) Truncate(ctx context.Context, table string) error {
	r.tables = append(r.tables, table)
	return r.err
}

func TestLoad(t *testing.T) {
	ds, err := Load(memFS(t, "seed.yaml", sample), "seed.yaml")
	require.NoError(t, err)

	require.Len(t, ds.Profiles, 2)
	assert.Equal(t, "Counts moths.", *ds.Profiles[0].Biography)
	assert.Nil(t, ds.Profiles[1].Biography)

	require.Len(t, ds.Species, 2)
	assert.Equal(t, int64(9000), *ds.Species[0].TotalPopulation)
	assert.Nil(t, ds.Species[1].TotalPopulation)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown key":        "species:\n  - scientific_name: X\n    kingdom: Y\n    colour: red\n",
		"missing kingdom":    "species:\n  - scientific_name: X\n",
		"bad image":          "species:\n  - scientific_name: X\n    kingdom: Y\n    image: not a url\n",
		"negative count":     "species:\n  - scientific_name: X\n    kingdom: Y\n    total_population: -3\n",
		"bad profile email":  "profiles:\n  - email: nope\n    display_name: N\n",
		"malformed document": "species: [",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(memFS(t, "seed.yaml", content), "seed.yaml")
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(afero.NewMemMapFs(), "absent.yaml")
		assert.ErrorContains(t, err, "failed to read seed file")
	})
}

func TestLoad_EmptyFile(t *testing.T) {
	ds, err := Load(memFS(t, "seed.yaml", ""), "seed.yaml")
	require.NoError(t, err)
	assert.Empty(t, ds.Species)
	assert.Empty(t, ds.Profiles)
}

func TestApply(t *testing.T) {
	ds, err := Load(memFS(t, "seed.yaml", sample), "seed.yaml")
	require.NoError(t, err)

	species := &testutils.FakeSpecies{}
	profiles := &testutils.FakeProfiles{}
	trunc := &recordingTruncator{}

	res, err := Apply(context.Background(), Targets{Species: species, Profiles: profiles, Truncator: trunc}, ds, true)
	require.NoError(t, err)

	assert.Equal(t, Result{Species: 2, Profiles: 2}, res)
	assert.Equal(t, []string{domain.SpeciesTable, domain.ProfilesTable}, trunc.tables)

	require.Len(t, species.Records, 2)
	lynx := species.Records[0]
	assert.Equal(t, "Eurasian lynx", *lynx.CommonName)
	assert.True(t, lynx.OwnedBy("user:ada"))
	assert.Nil(t, species.Records[1].Author)
	assert.Nil(t, species.Records[1].Image)
}

func TestApply_WithoutReset(t *testing.T) {
	trunc := &recordingTruncator{}
	ds := &Dataset{Profiles: []ProfileSeed{{Email: "ada@example.com", DisplayName: "Ada"}}}

	res, err := Apply(context.Background(), Targets{Species: &testutils.FakeSpecies{}, Profiles: &testutils.FakeProfiles{}, Truncator: trunc}, ds, false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Profiles)
	assert.Empty(t, trunc.tables)
}

func TestApply_Failures(t *testing.T) {
	ds := &Dataset{Species: []SpeciesSeed{{ScientificName: "X", Kingdom: "Y"}}}

	t.Run("reset without truncator", func(t *testing.T) {
		_, err := Apply(context.Background(), Targets{Species: &testutils.FakeSpecies{}, Profiles: &testutils.FakeProfiles{}}, ds, true)
		assert.Error(t, err)
	})

	t.Run("truncate error", func(t *testing.T) {
		boom := errors.New("boom")
		species := &testutils.FakeSpecies{}
		_, err := Apply(context.Background(), Targets{Species: species, Profiles: &testutils.FakeProfiles{}, Truncator: &recordingTruncator{err: boom}}, ds, true)
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, species.Records)
	})

	t.Run("store error stops the run", func(t *testing.T) {
		boom := errors.New("boom")
		res, err := Apply(context.Background(), Targets{Species: &testutils.FakeSpecies{Err: boom}, Profiles: &testutils.FakeProfiles{}}, ds, false)
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, res.Species)
	})

	t.Run("malformed author", func(t *testing.T) {
		bad := &Dataset{Species: []SpeciesSeed{{ScientificName: "X", Kingdom: "Y", Author: "user:"}}}
		_, err := Apply(context.Background(), Targets{Species: &testutils.FakeSpecies{}, Profiles: &testutils.FakeProfiles{}}, bad, false)
		assert.ErrorContains(t, err, "not a record id")
	})
}
