package users

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/middleware"
	"github.com/nfrund/fieldnotes/internal/modules/users/view"
	"github.com/nfrund/fieldnotes/internal/rendering"
	gview "github.com/nfrund/fieldnotes/internal/view"
	"github.com/nfrund/fieldnotes/web/src/templates/layouts"
)

// Handler serves the session-gated users directory.
type Handler struct {
	profiles domain.ProfileRepository
	renderer rendering.Renderer
}

// NewHandler creates a new users Handler.
func NewHandler(profiles domain.ProfileRepository, renderer rendering.Renderer) *Handler {
	return &Handler{profiles: profiles, renderer: renderer}
}

// Get renders the users page (GET /users).
func (h *Handler) Get(c echo.Context) error {
	// 1. Anonymous callers are sent back to the landing page before any query runs.
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	// 2. Fetch every profile ordered by id.
	ctx := c.Request().Context()
	flashes := gview.GetFlashData(c)
	profiles, err := h.profiles.ListProfiles(ctx)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to load user profiles", "error", err)
		page := layouts.Base(ctx, "Users", flashes, sess.Email, view.LoadError())
		return h.renderer.RenderPage(c, http.StatusInternalServerError, page)
	}

	// 3. Render the grid.
	page := layouts.Base(ctx, "Users", flashes, sess.Email, view.Page(profiles))
	return h.renderer.RenderPage(c, http.StatusOK, page)
}
