package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithSession(t *testing.T, repo domain.SessionRepository, cookie *http.Cookie) (*domain.Session, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()

	var got *domain.Session
	e.GET("/", func(c echo.Context) error {
		got = CurrentSession(c)
		return c.NoContent(http.StatusOK)
	}, Session(repo, false))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "session middleware must never block a request")
	return got, rec
}

func TestSession_NoCookie(t *testing.T) {
	sess, rec := serveWithSession(t, testutils.NewFakeSessions(), nil)
	assert.Nil(t, sess)
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
}

func TestSession_ValidToken(t *testing.T) {
	repo := testutils.NewFakeSessions()
	repo.Add("good", "user:ada", "ada@example.com")

	sess, _ := serveWithSession(t, repo, &http.Cookie{Name: AuthCookieName, Value: "good"})
	require.NotNil(t, sess)
	assert.Equal(t, "user:ada", sess.UserID)
}

func TestSession_RejectedTokenClearsCookie(t *testing.T) {
	sess, rec := serveWithSession(t, testutils.NewFakeSessions(), &http.Cookie{Name: AuthCookieName, Value: "stale"})
	assert.Nil(t, sess)

	setCookie := rec.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, AuthCookieName+"=;")
	assert.Contains(t, setCookie, "Max-Age=0")
}

func TestSession_BackendFailureIsAnonymous(t *testing.T) {
	repo := testutils.NewFakeSessions()
	repo.Add("good", "user:ada", "ada@example.com")
	repo.LookupErr = errors.New("connection refused")

	sess, rec := serveWithSession(t, repo, &http.Cookie{Name: AuthCookieName, Value: "good"})
	assert.Nil(t, sess)
	assert.Empty(t, rec.Header().Values("Set-Cookie"), "cookie must survive a transient outage")
}

func TestSetAuthCookie_Attributes(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)

	SetAuthCookie(c, "tok", true)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.Equal(t, "/", cookies[0].Path)
}
