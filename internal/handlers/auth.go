package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/fieldnotes/internal/domain"
	"github.com/nfrund/fieldnotes/internal/middleware"
	"github.com/nfrund/fieldnotes/internal/view"
)

const (
	formEmailKey       = "form_email"
	formDisplayNameKey = "form_display_name"
)

// AuthHandler handles sign-in, sign-up and sign-out.
type AuthHandler struct {
	sessions      domain.SessionRepository
	profiles      domain.ProfileRepository
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions domain.SessionRepository, profiles domain.ProfileRepository, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		sessions:      sessions,
		profiles:      profiles,
		secureCookies: secureCookies,
	}
}

// LoginPost handles the sign-in form (POST /login).
func (h *AuthHandler) LoginPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	req.Email = strings.TrimSpace(req.Email)

	token, err := h.sessions.SignIn(ctx, domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			logger.Warn("Failed login attempt", "email", req.Email)
			view.SetFlashError(c, "Invalid email or password.")
		} else {
			logger.Error("Sign-in failed", "email", req.Email, "error", err)
			view.SetFlashError(c, "Could not sign you in. Please try again.")
		}
		// Preserve the submitted email address for the next render of the form.
		view.SetFlashValue(c, formEmailKey, req.Email)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	middleware.SetAuthCookie(c, token, h.secureCookies)
	view.SetFlashSuccess(c, "Logged in successfully!")
	return c.Redirect(http.StatusSeeOther, "/users")
}

// SignupPost handles the sign-up form (POST /signup). The account is created
// through the backend's record access first, then its public profile row.
func (h *AuthHandler) SignupPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	req.Email = strings.TrimSpace(req.Email)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	fail := func(msg string) error {
		view.SetFlashError(c, msg)
		view.SetFlashValue(c, formEmailKey, req.Email)
		view.SetFlashValue(c, formDisplayNameKey, req.DisplayName)
		return c.Redirect(http.StatusSeeOther, "/")
	}

	if err := c.Validate(&req); err != nil {
		return fail(describeSignupError(err))
	}

	token, err := h.sessions.SignUp(ctx, domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return fail("A user with this email already exists.")
		}
		logger.Error("Error creating user", "email", req.Email, "error", err)
		return fail("Could not create your account.")
	}

	// The account exists at this point, so a profile failure only costs the
	// user their listing on the users page.
	if _, err := h.profiles.CreateProfile(ctx, &domain.Profile{Email: req.Email, DisplayName: req.DisplayName}); err != nil {
		logger.Error("Failed to create profile", "email", req.Email, "error", err)
	}

	middleware.SetAuthCookie(c, token, h.secureCookies)
	view.SetFlashSuccess(c, "Account created successfully!")
	return c.Redirect(http.StatusSeeOther, "/users")
}

// Logout expires the auth cookie (POST /logout).
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.SetAuthCookie(c, "", h.secureCookies)
	view.SetFlashSuccess(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/")
}

func describeSignupError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Please check the form and try again."
	}
	switch fe := verrs[0]; fe.Field() {
	case "Email":
		return "Please enter a valid email address."
	case "Password":
		return "Password must be at least 8 characters long."
	case "DisplayName":
		if fe.Tag() == "max" {
			return "Display name must be at most 100 characters."
		}
		return "Please enter a display name."
	}
	return "Please check the form and try again."
}
