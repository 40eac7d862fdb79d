package species

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/middleware"
	"github.com/nfrund/fieldnotes/internal/modules/species/events"
	"github.com/nfrund/fieldnotes/internal/modules/species/view"
	"github.com/nfrund/fieldnotes/internal/pubsub"
	"github.com/nfrund/fieldnotes/internal/rendering"
	gview "github.com/nfrund/fieldnotes/internal/view"
	"github.com/nfrund/fieldnotes/web/src/templates/layouts"
	"maragu.dev/gomponents"
)

var errBadPopulation = errors.New("total population must be a whole number")

var fieldLabels = map[string]string{
	"ScientificName":  "Scientific name",
	"CommonName":      "Common name",
	"Image":           "Image URL",
	"Description":     "Description",
	"TotalPopulation": "Total population",
	"Kingdom":         "Kingdom",
}

// Handler serves the species catalogue, card toggles and owner edits.
type Handler struct {
	repo      domain.SpeciesRepository
	states    *CardStates
	publisher pubsub.Publisher
	renderer  rendering.Renderer
}

// NewHandler creates a new species Handler.
func NewHandler(repo domain.SpeciesRepository, states *CardStates, publisher pubsub.Publisher, renderer rendering.Renderer) *Handler {
	return &Handler{repo: repo, states: states, publisher: publisher, renderer: renderer}
}

// List renders every species as a card (GET /species).
func (h *Handler) List(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	ctx := c.Request().Context()
	records, err := h.repo.ListSpecies(ctx)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to list species", "error", err)
		return h.renderPage(c, http.StatusInternalServerError, sess, view.LoadError())
	}

	cards := make([]view.CardProps, 0, len(records))
	for _, s := range records {
		cards = append(cards, view.CardProps{
			Species: s,
			IsOwner: s.OwnedBy(sess.UserID),
			Open:    h.states.IsOpen(sess.UserID, s.Key()),
		})
	}
	return h.renderPage(c, http.StatusOK, sess, view.Page(cards))
}

// Toggle flips the caller's modal state for one card
// (POST /species/:key/toggle).
func (h *Handler) Toggle(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	s, err := h.load(c)
	if err != nil {
		return err
	}

	open := h.states.Toggle(sess.UserID, s.Key())
	if !gview.IsHTMX(c) {
		return c.Redirect(http.StatusSeeOther, "/species")
	}
	return h.renderer.RenderPage(c, http.StatusOK, view.Card(view.CardProps{
		Species: *s,
		IsOwner: s.OwnedBy(sess.UserID),
		Open:    open,
	}))
}

// Update applies an owner's edit (POST /species/:key).
func (h *Handler) Update(c echo.Context) error {
	// 1. Guard: only signed-in owners may edit.
	sess := middleware.CurrentSession(c)
	if sess == nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	s, err := h.load(c)
	if err != nil {
		return err
	}
	if !s.OwnedBy(sess.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
	}

	// 2. Bind and validate the submission.
	upd, err := bindUpdate(c)
	if err == nil {
		err = upd.Validate()
	}
	if err != nil {
		props := view.CardProps{
			Species:   *s,
			IsOwner:   true,
			Open:      h.states.IsOpen(sess.UserID, s.Key()),
			Edit:      &upd,
			EditError: describeValidation(err),
		}
		return h.renderCard(c, http.StatusUnprocessableEntity, sess, props)
	}

	// 3. Persist and announce the change.
	ctx := c.Request().Context()
	updated, err := h.repo.UpdateSpecies(ctx, s.Key(), upd)
	if errors.Is(err, domain.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "species not found")
	}
	if err != nil {
		return fmt.Errorf("failed to update species %q: %w", s.Key(), err)
	}

	payload := events.SpeciesUpdatedPayload{Key: updated.Key(), UpdatedBy: sess.UserID}
	if err := pubsub.Publish(ctx, h.publisher, events.SpeciesUpdated, sess.UserID, payload); err != nil {
		middleware.FromContext(ctx).Error("Failed to publish species update", "key", payload.Key, "error", err)
	}

	// 4. Respond. Every modal for this species is being reset, so the card
	// comes back closed.
	if !gview.IsHTMX(c) {
		gview.SetFlashSuccess(c, "Species updated.")
		return c.Redirect(http.StatusSeeOther, "/species")
	}
	return h.renderer.RenderPage(c, http.StatusOK, view.Card(view.CardProps{Species: *updated, IsOwner: true}))
}

func (h *Handler) load(c echo.Context) (*domain.Species, error) {
	key := c.Param("key")
	s, err := h.repo.GetSpecies(c.Request().Context(), key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "species not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load species %q: %w", key, err)
	}
	return s, nil
}

func (h *Handler) renderCard(c echo.Context, status int, sess *domain.Session, props view.CardProps) error {
	if gview.IsHTMX(c) {
		return h.renderer.RenderPage(c, status, view.Card(props))
	}
	return h.renderPage(c, status, sess, view.Card(props))
}

func (h *Handler) renderPage(c echo.Context, status int, sess *domain.Session, content gomponents.Node) error {
	page := layouts.Base(c.Request().Context(), "Species", gview.GetFlashData(c), sess.Email, content)
	return h.renderer.RenderPage(c, status, page)
}

// bindUpdate reads the edit form. Blank population means "unknown".
func bindUpdate(c echo.Context) (domain.SpeciesUpdate, error) {
	upd := domain.SpeciesUpdate{
		ScientificName: strings.TrimSpace(c.FormValue("scientific_name")),
		CommonName:     strings.TrimSpace(c.FormValue("common_name")),
		Image:          strings.TrimSpace(c.FormValue("image")),
		Description:    strings.TrimSpace(c.FormValue("description")),
		Kingdom:        strings.TrimSpace(c.FormValue("kingdom")),
	}
	if raw := strings.TrimSpace(c.FormValue("total_population")); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return upd, errBadPopulation
		}
		upd.TotalPopulation = &n
	}
	return upd, nil
}

func describeValidation(err error) string {
	if errors.Is(err, errBadPopulation) {
		return "Total population must be a whole number"
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label := fieldLabels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, label+" is required")
		case "url":
			msgs = append(msgs, label+" must be a valid URL")
		case "gte":
			msgs = append(msgs, label+" cannot be negative")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", label, fe.Param()))
		default:
			msgs = append(msgs, label+" is invalid")
		}
	}
	return strings.Join(msgs, ". ")
}
