package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "tasklist-web.com/tasklist-web/internal/errors"
)

func (h *Handler) ShowLogin(c echo.Context) error {
	return h.render(c, "login", nil)
}

func (h *Handler) Login(c echo.Context) error {
	username := c.FormValue("nom_utilisateur")
	password := c.FormValue("mot_de_passe")

	ctx := c.Request().Context()

	user, err := h.auth.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			h.flash(c, "danger", apperrors.ErrInvalidCredentials.Message)
			return h.render(c, "login", nil)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	id, err := h.sessionID(c, true)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
	}
	if err := h.sessions.SetUserID(ctx, id, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
	}

	h.flash(c, "success", "login successful")
	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) ShowRegister(c echo.Context) error {
	return h.render(c, "register", nil)
}

func (h *Handler) RegisterAccount(c echo.Context) error {
	username := c.FormValue("nom_utilisateur")
	password := c.FormValue("mot_de_passe")
	confirmation := c.FormValue("confirmer_mot_de_passe")

	_, err := h.auth.Register(c.Request().Context(), username, password, confirmation)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingCredentials),
			errors.Is(err, apperrors.ErrPasswordMismatch),
			errors.Is(err, apperrors.ErrUsernameTaken):
			h.flash(c, "danger", err.Error())
			return c.Redirect(http.StatusFound, "/register")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
		}
	}

	h.flash(c, "success", "registration successful, you can now log in")
	return c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) Logout(c echo.Context) error {
	id, err := h.sessionID(c, false)
	if err == nil && id != "" {
		_ = h.sessions.Delete(c.Request().Context(), id)
	}

	h.setSessionCookie(c, "", -1)
	return c.Redirect(http.StatusFound, "/")
}
