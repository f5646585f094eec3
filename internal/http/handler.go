package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "tasklist-web.com/tasklist-web/internal/errors"
	"tasklist-web.com/tasklist-web/internal/http/validators"
	"tasklist-web.com/tasklist-web/internal/services"
	"tasklist-web.com/tasklist-web/internal/session"
)

const sessionCookieName = "session_id"

const contextKeySessionID = "session_id"

type Handler struct {
	tasks         *services.TaskService
	auth          *services.AuthService
	sessions      session.Store
	cookieTTL     time.Duration
	secureCookies bool
}

func NewHandler(
	tasks *services.TaskService,
	auth *services.AuthService,
	sessions session.Store,
	cookieTTL time.Duration,
	secureCookies bool,
) *Handler {
	return &Handler{
		tasks:         tasks,
		auth:          auth,
		sessions:      sessions,
		cookieTTL:     cookieTTL,
		secureCookies: secureCookies,
	}
}

func (h *Handler) Home(c echo.Context) error {
	return h.render(c, "index", nil)
}

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.tasks.ListTasks(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}

	return h.render(c, "taches", map[string]interface{}{
		"Tasks": tasks,
	})
}

func (h *Handler) ShowAddTask(c echo.Context) error {
	return h.render(c, "ajouter", nil)
}

func (h *Handler) AddTask(c echo.Context) error {
	title := c.FormValue("titre")
	description := c.FormValue("description")
	date := c.FormValue("date")

	if err := validators.ValidateTaskForm(title, description); err != nil {
		h.flash(c, "danger", err.Error())
		return c.Redirect(http.StatusFound, "/ajouter")
	}

	ctx := c.Request().Context()

	if _, err := h.tasks.CreateTask(ctx, title, description, date); err != nil {
		if errors.Is(err, apperrors.ErrInvalidDate) {
			h.flash(c, "danger", err.Error())
			return c.Redirect(http.StatusFound, "/ajouter")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create task")
	}

	return c.Redirect(http.StatusFound, "/taches")
}

func (h *Handler) ShowEditTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "task not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load task")
	}

	return h.render(c, "modifier", map[string]interface{}{
		"Task": task,
	})
}

func (h *Handler) EditTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	title := c.FormValue("titre")
	description := c.FormValue("description")
	date := c.FormValue("date")

	if err := validators.ValidateTaskForm(title, description); err != nil {
		h.flash(c, "danger", err.Error())
		return c.Redirect(http.StatusFound, "/modifier/"+c.Param("id"))
	}

	ctx := c.Request().Context()

	if _, err := h.tasks.UpdateTask(ctx, id, title, description, date); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTaskNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "task not found")
		case errors.Is(err, apperrors.ErrInvalidDate):
			h.flash(c, "danger", err.Error())
			return c.Redirect(http.StatusFound, "/modifier/"+c.Param("id"))
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update task")
		}
	}

	return c.Redirect(http.StatusFound, "/taches")
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.tasks.DeleteTask(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "task not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete task")
	}

	return c.Redirect(http.StatusFound, "/taches")
}

func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(
			apperrors.StatusCode(apperrors.ErrInvalidTaskID),
			apperrors.ErrInvalidTaskID.Message,
		)
	}
	return uint(id), nil
}

// sessionID returns the browser's session id, creating a session and
// setting the cookie when create is true and none exists yet. The id is
// cached on the echo context so a session created mid-request (e.g. by a
// flash) is visible to the render at the end of the same request.
func (h *Handler) sessionID(c echo.Context, create bool) (string, error) {
	if id, ok := c.Get(contextKeySessionID).(string); ok && id != "" {
		return id, nil
	}

	cookie, err := c.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		c.Set(contextKeySessionID, cookie.Value)
		return cookie.Value, nil
	}

	if !create {
		return "", nil
	}

	id, err := h.sessions.Create(c.Request().Context())
	if err != nil {
		return "", err
	}

	c.Set(contextKeySessionID, id)
	h.setSessionCookie(c, id, int(h.cookieTTL.Seconds()))
	return id, nil
}

func (h *Handler) setSessionCookie(c echo.Context, value string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
	})
}

// flash queues a one-shot message for the next rendered page.
func (h *Handler) flash(c echo.Context, category, message string) {
	id, err := h.sessionID(c, true)
	if err != nil {
		return
	}

	_ = h.sessions.AddFlash(c.Request().Context(), id, session.Flash{
		Category: category,
		Message:  message,
	})
}

// render executes the named template, folding in pending flashes and the
// login state of the current session.
func (h *Handler) render(c echo.Context, name string, data map[string]interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}

	id, err := h.sessionID(c, false)
	if err == nil && id != "" {
		ctx := c.Request().Context()

		if flashes, err := h.sessions.PopFlashes(ctx, id); err == nil && len(flashes) > 0 {
			data["Flashes"] = flashes
		}
		if _, ok, err := h.sessions.UserID(ctx, id); err == nil && ok {
			data["LoggedIn"] = true
		}
	}

	return c.Render(http.StatusOK, name, data)
}
