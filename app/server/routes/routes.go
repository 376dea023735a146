package routes

import (
	"github.com/labstack/echo/v4"

	"nasa-mission-control/app/server/handlers"
	"nasa-mission-control/app/server/jwt"
	"nasa-mission-control/app/server/middlewares"
)

// Register binds every API route. Reads on content are public; mutation
// requires a bearer token with the ADMIN role.
func Register(e *echo.Echo, app *handlers.App, j *jwt.JWT) {
	auth := middlewares.BearerAuth(j)

	e.GET("/", app.Root)
	e.GET("/healthcheck", app.HealthCheck)

	// auth
	e.POST("/auth/signup", app.AuthSignup)
	e.POST("/auth/login", app.AuthLogin)
	e.GET("/auth/profile", app.ProfileGet, auth)
	e.PUT("/auth/profile", app.ProfileUpdate, auth)
	e.POST("/auth/change-password", app.PasswordChange, auth)

	// missions
	e.GET("/missions", app.MissionList)
	e.GET("/missions/:id", app.MissionInfoGet)
	e.POST("/missions", app.MissionCreate, auth, middlewares.AdminOnly)
	e.PUT("/missions/:id", app.MissionUpdate, auth, middlewares.AdminOnly)
	e.DELETE("/missions/:id", app.MissionDelete, auth, middlewares.AdminOnly)

	// projects
	e.GET("/projects", app.ProjectList)
	e.GET("/projects/:id", app.ProjectInfoGet)
	e.POST("/projects", app.ProjectCreate, auth, middlewares.AdminOnly)
	e.PUT("/projects/:id", app.ProjectUpdate, auth, middlewares.AdminOnly)
	e.DELETE("/projects/:id", app.ProjectDelete, auth, middlewares.AdminOnly)

	// NASA upstream passthrough
	e.GET("/nasa/apod", app.NasaApod)
	e.GET("/nasa/mars-photos", app.NasaMarsPhotos)
}
