package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/fieldnotes/internal/domain"
)

const (
	// AuthCookieName is the cookie carrying the backend session token.
	AuthCookieName = "auth_token"

	sessionContextKey = "session"
	authCookieTTL     = 24 * time.Hour
)

// Session resolves the caller's session from the auth cookie and stores it on
// the echo context. It never rejects a request; pages decide for themselves
// what an anonymous caller sees.
func Session(repo domain.SessionRepository, secureCookies bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sess, err := repo.GetSession(c.Request().Context(), cookie.Value)
			switch {
			case errors.Is(err, domain.ErrInvalidCredentials):
				FromContext(c.Request().Context()).Info("Discarding rejected session token")
				SetAuthCookie(c, "", secureCookies)
			case err != nil:
				// The backend being unreachable is treated as "no session".
				FromContext(c.Request().Context()).Warn("Session lookup failed", "error", err)
			case sess != nil:
				c.Set(sessionContextKey, sess)
			}

			return next(c)
		}
	}
}

// CurrentSession returns the session resolved for this request, or nil.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	return sess
}

// SetAuthCookie writes the auth cookie. An empty token expires it.
func SetAuthCookie(c echo.Context, token string, secure bool) {
	cookie := &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure || c.Request().TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		cookie.MaxAge = -1
	} else {
		cookie.Expires = time.Now().UTC().Add(authCookieTTL)
	}
	c.SetCookie(cookie)
}
