package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) Root(c echo.Context) error {
	return c.String(http.StatusOK, "NASA mission control API is running! Available routes: /auth, /missions, /projects, /nasa")
}

func (a *App) HealthCheck(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
