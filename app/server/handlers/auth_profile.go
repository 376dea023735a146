package handlers

import (
	"errors"
	"net/http"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nasa-mission-control/app/server/middlewares"
	"nasa-mission-control/app/server/models"
)

// currentUser loads the database record behind the verified token. The token
// is stateless, so a fresh read keeps deleted accounts out.
func (a *App) currentUser(c echo.Context) (*models.User, error, int) {
	jwtUser, err := middlewares.ContextUser(c)
	if err != nil {
		return nil, err, http.StatusUnauthorized
	}

	var user models.User
	if err := a.db.WithContext(c.Request().Context()).First(&user, "id = ?", jwtUser.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err, http.StatusNotFound
		}
		return nil, err, http.StatusInternalServerError
	}

	return &user, nil, http.StatusOK
}

func (a *App) ProfileGet(c echo.Context) error {
	user, err, statusCode := a.currentUser(c)
	if err != nil {
		a.l.Error("failed to get current user", zap.Error(err))
		return a.er(c, statusCode)
	}

	return c.JSON(http.StatusOK, userInfoFromModel(user))
}

func (a *App) ProfileUpdate(c echo.Context) error {
	user, err, statusCode := a.currentUser(c)
	if err != nil {
		a.l.Error("failed to get current user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := a.db.WithContext(rctx).Updates(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return a.erm(c, http.StatusConflict, "email already exists")
		}
		a.l.Error("failed to update user", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, userInfoFromModel(user))
}

func (a *App) PasswordChange(c echo.Context) error {
	user, err, statusCode := a.currentUser(c)
	if err != nil {
		a.l.Error("failed to get current user", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return a.erm(c, http.StatusBadRequest, "current and new password are required")
	}

	// The stored hash only changes once the current password checks out
	if match, err := argon2id.ComparePasswordAndHash(req.CurrentPassword, user.Password); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if !match {
		return a.erm(c, http.StatusUnauthorized, "invalid credentials")
	}

	newPasswordHash, err := argon2id.CreateHash(req.NewPassword, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err := a.db.WithContext(rctx).Model(user).Update("password", newPasswordHash).Error; err != nil {
		a.l.Error("failed to update password", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}
