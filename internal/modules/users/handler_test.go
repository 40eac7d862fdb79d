package users

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/middleware"
	"github.com/nfrund/fieldnotes/internal/rendering"
	"github.com/nfrund/fieldnotes/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gridMarker = `class="grid grid-cols-1 md:grid-cols-2 lg:grid-cols-3 gap-6"`

func serveUsers(t *testing.T, repo *testutils.FakeProfiles, token string) *httptest.ResponseRecorder {
	t.Helper()

	auth := testutils.NewFakeSessions()
	auth.Add("ada-token", "user:ada", "ada@example.com")

	e := echo.New()
	e.Use(middleware.Session(auth, false))
	e.GET("/users", NewHandler(repo, rendering.NewUniversalRenderer()).Get)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.AuthCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGet_NoSessionRedirects(t *testing.T) {
	repo := &testutils.FakeProfiles{Profiles: []domain.Profile{{Email: "ada@example.com", DisplayName: "Ada"}}}

	for _, token := range []string{"", "expired-token"} {
		rec := serveUsers(t, repo, token)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
		assert.NotContains(t, rec.Body.String(), gridMarker)
	}
	assert.Zero(t, repo.ListCalls, "profiles must not be queried without a session")
}

func TestGet_RendersProfilesInOrder(t *testing.T) {
	repo := &testutils.FakeProfiles{Profiles: []domain.Profile{
		{Email: "ada@example.com", DisplayName: "Ada", Biography: testutils.Ptr("Watches birds.")},
		{Email: "bob@example.com", DisplayName: "Bob"},
		{Email: "cy@example.com", DisplayName: "Cy", Biography: testutils.Ptr("")},
	}}

	rec := serveUsers(t, repo, "ada-token")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `<h1 class="text-3xl font-bold mb-6">Users</h1>`)
	assert.Contains(t, body, gridMarker)
	assert.Contains(t, body, `data-key="ada@example.com"`)
	assert.Contains(t, body, "Watches birds.")
	assert.Equal(t, 1, strings.Count(body, "No bio."), "only the null biography falls back")
	assert.Less(t, strings.Index(body, "ada@example.com\""), strings.Index(body, "bob@example.com\""))
	assert.Less(t, strings.Index(body, "bob@example.com\""), strings.Index(body, "cy@example.com\""))
	assert.Equal(t, 1, repo.ListCalls)
}

func TestGet_EmptyGrid(t *testing.T) {
	rec := serveUsers(t, &testutils.FakeProfiles{}, "ada-token")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<div id="profile-grid" `+gridMarker+`></div>`)
	assert.NotContains(t, body, "Error loading user profiles")
}

func TestGet_QueryFailure(t *testing.T) {
	repo := &testutils.FakeProfiles{Err: errors.New("permission denied")}

	rec := serveUsers(t, repo, "ada-token")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<p>Error loading user profiles</p>")
	assert.NotContains(t, body, gridMarker)
}
