package middlewares

import (
	"errors"
	"net/http"

	gojwt "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"nasa-mission-control/app/server/constants"
	"nasa-mission-control/app/server/jwt"
)

// ContextKeyUser is where the verified token lands on the echo context.
const ContextKeyUser = "user"

// BearerAuth verifies the Authorization bearer token: a missing token is 401,
// a present but invalid or expired one is 403. The verified *gojwt.Token is
// attached to the context for downstream handlers.
func BearerAuth(j *jwt.JWT) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: j.Key(),
		ContextKey: ContextKeyUser,
		ErrorHandler: func(c echo.Context, err error) error {
			// absence of a token and an invalid token are different failures
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}
			return echo.NewHTTPError(http.StatusForbidden, "invalid token")
		},
	})
}

// AdminOnly gates an operation on the ADMIN role. It expects BearerAuth to
// have run first.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := ContextUser(c)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
		}

		if user.Role != constants.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin only")
		}

		return next(c)
	}
}

// ContextUser maps the verified token on the context back into an identity.
func ContextUser(c echo.Context) (*jwt.User, error) {
	token, ok := c.Get(ContextKeyUser).(*gojwt.Token)
	if !ok {
		return nil, errors.New("no verified token in context")
	}

	claims, ok := token.Claims.(gojwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	return jwt.UserFromClaims(claims)
}
