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
	"nasa-mission-control/app/server/models"
)

type userInfo struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func userInfoFromModel(user *models.User) *userInfo {
	return &userInfo{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func (a *App) AuthSignup(c echo.Context) error {
	rctx := c.Request().Context()

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Email == "" || req.Password == "" {
		return a.erm(c, http.StatusBadRequest, "email and password are required")
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     constants.RoleUser, // signup never grants admin
		Password: passwordHash,
	}
	if err := a.db.WithContext(rctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return a.erm(c, http.StatusConflict, "email already exists")
		}
		a.l.Error("failed to create user", zap.String("email", req.Email), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, userInfoFromModel(&user))
}
