package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/fieldnotes/internal/middleware"
	"github.com/nfrund/fieldnotes/internal/view"
	"github.com/nfrund/fieldnotes/internal/view/dto/auth"
	"github.com/nfrund/fieldnotes/web/src/templates/layouts"
	"github.com/nfrund/fieldnotes/web/src/templates/pages"
)

// HomeHandler handles requests for the landing page.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet renders the landing page. Anonymous visitors see the sign-in and
// sign-up forms, prefilled from a failed attempt.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	data := auth.LandingData{}
	var userEmail string
	if sess := middleware.CurrentSession(c); sess != nil {
		data.SignedIn = true
		data.UserEmail = sess.Email
		userEmail = sess.Email
	} else {
		data.Email = view.PopFlashValue(c, formEmailKey)
		data.DisplayName = view.PopFlashValue(c, formDisplayNameKey)
	}

	flashes := view.GetFlashData(c)
	page := layouts.Base(c.Request().Context(), "Home", flashes, userEmail, pages.HomeContent(data))

	// The name is ignored by the universal renderer.
	return c.Render(http.StatusOK, "", page)
}
