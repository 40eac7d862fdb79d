package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nfrund/fieldnotes/internal/config"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records the last query and returns canned rows.
type fakeExecutor[T any] struct {
	rows        []T
	err         error
	lastQuery   string
	lastParams  map[string]any
	lastTimeout time.Duration
}

func (f *fakeExecutor[T]) record(ctx context.Context, query string, params map[string]any) {
	f.lastQuery = query
	f.lastParams = params
	if deadline, ok := ctx.Deadline(); ok {
		f.lastTimeout = time.Until(deadline)
	}
}

func (f *fakeExecutor[T]) Query(ctx context.Context, query string, params map[string]any) ([]T, error) {
	f.record(ctx, query, params)
	return f.rows, f.err
}

func (f *fakeExecutor[T]) QueryOne(ctx context.Context, query string, params map[string]any) (*T, error) {
	f.record(ctx, query, params)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.rows) == 0 {
		return nil, nil
	}
	return &f.rows[0], nil
}

func (f *fakeExecutor[T]) Execute(ctx context.Context, query string, params map[string]any) error {
	f.record(ctx, query, params)
	return f.err
}

func newFakeClient[T any](t *testing.T, exec *fakeExecutor[T]) Client[T] {
	t.Helper()
	c, err := NewClient[T](nil, testutils.StaticConfig(), WithExecutor[T](exec))
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewClient[domain.Species](nil, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := testutils.StaticConfig()
		cfg.DBQueryTimeout = 0
		_, err := NewClient[domain.Species](nil, cfg, WithExecutor[domain.Species](&fakeExecutor[domain.Species]{}))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no connection or executor", func(t *testing.T) {
		var cfg config.Provider = testutils.StaticConfig()
		_, err := NewClient[domain.Species](nil, cfg)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestClient_QueryAppliesTimeouts(t *testing.T) {
	exec := &fakeExecutor[domain.Species]{}
	c := newFakeClient(t, exec)

	_, err := c.Query(context.Background(), "SELECT * FROM species", nil)
	require.NoError(t, err)
	assert.Greater(t, exec.lastTimeout, time.Duration(0))
	assert.LessOrEqual(t, exec.lastTimeout, time.Second)

	ctx := WithQueryTimeout(context.Background(), 50*time.Millisecond)
	_, err = c.Query(ctx, "SELECT * FROM species", nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, exec.lastTimeout, 50*time.Millisecond)
}

func TestClient_SelectNotFound(t *testing.T) {
	exec := &fakeExecutor[domain.Species]{}
	c := newFakeClient(t, exec)

	_, err := c.Select(context.Background(), domain.SpeciesTable, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "SELECT * FROM type::thing($table, $key)", exec.lastQuery)
	assert.Equal(t, "missing", exec.lastParams["key"])
}

func TestClient_RejectsInvalidInput(t *testing.T) {
	exec := &fakeExecutor[domain.Species]{}
	c := newFakeClient(t, exec)
	ctx := context.Background()

	_, err := c.Select(ctx, "species; DELETE species", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.Update(ctx, domain.SpeciesTable, "", map[string]any{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.Create(ctx, domain.SpeciesTable, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, exec.lastQuery, "no query should reach the executor")
}

func TestClient_UpdateUsesMerge(t *testing.T) {
	exec := &fakeExecutor[domain.Species]{rows: []domain.Species{{ScientificName: "Lynx lynx"}}}
	c := newFakeClient(t, exec)

	got, err := c.Update(context.Background(), domain.SpeciesTable, "lynx", map[string]any{"kingdom": "Animalia"})
	require.NoError(t, err)
	assert.Equal(t, "Lynx lynx", got.ScientificName)
	assert.Contains(t, exec.lastQuery, "MERGE $data")
}

func TestClient_WrapsExecutorErrors(t *testing.T) {
	exec := &fakeExecutor[domain.Species]{err: ErrQueryFailed}
	c := newFakeClient(t, exec)

	_, err := c.Create(context.Background(), domain.SpeciesTable, map[string]any{"scientific_name": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueryFailed)
	assert.Contains(t, err.Error(), "create operation failed")
}

func TestSpeciesStore_MapsNotFound(t *testing.T) {
	store := NewSpeciesStore(newFakeClient(t, &fakeExecutor[domain.Species]{}))

	_, err := store.GetSpecies(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.UpdateSpecies(context.Background(), "ghost", domain.SpeciesUpdate{ScientificName: "x", Kingdom: "y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpeciesStore_ListOrdersByID(t *testing.T) {
	exec := &fakeExecutor[domain.Species]{}
	store := NewSpeciesStore(newFakeClient(t, exec))

	list, err := store.ListSpecies(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Equal(t, "SELECT * FROM species ORDER BY id ASC", exec.lastQuery)
}

func TestSpeciesStore_UpdateValidatesFirst(t *testing.T) {
	exec := &fakeExecutor[domain.Species]{}
	store := NewSpeciesStore(newFakeClient(t, exec))

	_, err := store.UpdateSpecies(context.Background(), "lynx", domain.SpeciesUpdate{Kingdom: "Animalia"})
	require.Error(t, err)
	assert.Empty(t, exec.lastQuery)
}

func TestProfileStore_ListProfiles(t *testing.T) {
	bio := "Birder."
	exec := &fakeExecutor[domain.Profile]{rows: []domain.Profile{
		{Email: "ada@example.com", DisplayName: "Ada", Biography: &bio},
		{Email: "bob@example.com", DisplayName: "Bob"},
	}}
	store := NewProfileStore(newFakeClient(t, exec))

	profiles, err := store.ListProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "SELECT email, display_name, biography, id FROM profiles ORDER BY id ASC", exec.lastQuery)
	assert.Nil(t, profiles[1].Biography)
}

func TestProfileStore_ListProfilesError(t *testing.T) {
	exec := &fakeExecutor[domain.Profile]{err: errors.New("boom")}
	store := NewProfileStore(newFakeClient(t, exec))

	_, err := store.ListProfiles(context.Background())
	assert.ErrorContains(t, err, "failed to list profiles")
}

func TestClient_Integration(t *testing.T) {
	cfg := testutils.ConfigForTests(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn := NewConnection(cfg)
	require.NoError(t, conn.Connect(ctx))
	defer conn.Close(context.Background())

	client, err := NewClient[domain.Species](conn, cfg)
	require.NoError(t, err)
	store := NewSpeciesStore(client)

	created, err := store.CreateSpecies(ctx, &domain.Species{ScientificName: "Testus integrationis", Kingdom: "Animalia"})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	defer client.Execute(context.Background(), "DELETE type::thing($table, $key)",
		map[string]any{"table": domain.SpeciesTable, "key": created.Key()})

	got, err := store.GetSpecies(ctx, created.Key())
	require.NoError(t, err)
	assert.Equal(t, "Testus integrationis", got.ScientificName)

	updated, err := store.UpdateSpecies(ctx, created.Key(), domain.SpeciesUpdate{
		ScientificName: "Testus integrationis",
		CommonName:     "Test beast",
		Kingdom:        "Animalia",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.CommonName)
	assert.Equal(t, "Test beast", *updated.CommonName)
}

func TestTruncator(t *testing.T) {
	exec := &fakeExecutor[map[string]any]{}
	tr := NewTruncator(newFakeClient(t, exec))

	require.NoError(t, tr.Truncate(context.Background(), domain.SpeciesTable))
	assert.Equal(t, "DELETE type::table($table)", exec.lastQuery)
	assert.Equal(t, domain.SpeciesTable, exec.lastParams["table"])

	assert.ErrorIs(t, tr.Truncate(context.Background(), "species; DROP"), ErrInvalidInput)
}
