package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nasa-mission-control/app/server/constants"
	"nasa-mission-control/app/server/jwt"
	"nasa-mission-control/app/server/models"
)

type loginToken struct {
	Token string `json:"token"`
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Email == "" || req.Password == "" {
		return a.er(c, http.StatusBadRequest)
	}

	var user models.User
	if err := a.db.WithContext(rctx).First(&user, "email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.erm(c, http.StatusNotFound, "user not found")
		}
		a.l.Error("failed to find user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// Constant-time comparison against the stored argon2id hash
	if match, err := argon2id.ComparePasswordAndHash(req.Password, user.Password); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if !match {
		return a.erm(c, http.StatusUnauthorized, "invalid credentials")
	}

	expires := time.Now().Add(constants.AuthTokenDuration)
	token, err := a.jwt.SignToken(&jwt.User{
		ID:      user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Expires: expires.Unix(),
	})
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &loginToken{
		Token: token,
	})
}
