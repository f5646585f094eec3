package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "tasklist-web.com/tasklist-web/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/", h.Home)

	e.GET("/taches", h.ListTasks)
	e.GET("/ajouter", h.ShowAddTask)
	e.POST("/ajouter", h.AddTask)
	e.GET("/modifier/:id", h.ShowEditTask)
	e.POST("/modifier/:id", h.EditTask)
	e.POST("/supprimer/:id", h.DeleteTask)

	e.GET("/login", h.ShowLogin)
	e.POST("/login", h.Login)
	e.GET("/register", h.ShowRegister)
	e.POST("/register", h.RegisterAccount)
	e.POST("/logout", h.Logout)
}
