package handlers

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nasa-mission-control/app/server/constants"
	"nasa-mission-control/app/server/middlewares"
	"nasa-mission-control/app/server/models"
)

type missionInfoInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	LaunchDate  *time.Time `json:"launchDate"`
	Status      *string    `json:"status"`
	ImageURL    *string    `json:"imageUrl"`
	Crew        *[]string  `json:"crew"`
}

type missionInfoWithID struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	LaunchDate  time.Time `json:"launchDate"`
	Status      string    `json:"status"`
	ImageURL    *string   `json:"imageUrl"`
	Crew        []string  `json:"crew"`
	CreatedBy   uint      `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type missionListResponse struct {
	Limit   int                 `json:"limit"`
	PageMax int64               `json:"pageMax"`
	List    []missionInfoWithID `json:"list"`
}

func missionInfoFromModel(mission *models.Mission) missionInfoWithID {
	return missionInfoWithID{
		ID:          mission.ID,
		Title:       mission.Title,
		Description: mission.Description,
		LaunchDate:  mission.LaunchDate,
		Status:      mission.Status,
		ImageURL:    mission.ImageURL,
		Crew:        mission.Crew,
		CreatedBy:   mission.CreatedBy,
		CreatedAt:   mission.CreatedAt,
		UpdatedAt:   mission.UpdatedAt,
	}
}

func (a *App) missionMapFields(req *missionInfoInput, mission *models.Mission) {
	if req.Title != nil {
		mission.Title = *req.Title
	}
	if req.Description != nil {
		mission.Description = *req.Description
	}
	if req.LaunchDate != nil {
		mission.LaunchDate = *req.LaunchDate
	}
	if req.Status != nil {
		mission.Status = *req.Status
	}
	if req.ImageURL != nil {
		mission.ImageURL = req.ImageURL
	}
	if req.Crew != nil {
		mission.Crew = *req.Crew
	}
}

func validStatus(status string) bool {
	return slices.Contains(constants.ContentStatuses, status)
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func (a *App) MissionList(c echo.Context) error {
	rctx := c.Request().Context()

	var (
		missions      []models.Mission
		missionsCount int64
	)

	showAll, page, limit := a.parsePagination(c)
	queryBase := a.db.WithContext(rctx).Model(&models.Mission{}).Order("id ASC")
	if !showAll {
		queryBase = queryBase.Limit(limit).Offset(page * limit)
	}

	if err := queryBase.Find(&missions).Error; err != nil {
		a.l.Error("failed to get mission list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Mission{}).Count(&missionsCount).Error; err != nil {
		a.l.Error("failed to count missions", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resMissions := []missionInfoWithID{}
	for i := range missions {
		resMissions = append(resMissions, missionInfoFromModel(&missions[i]))
	}

	return c.JSON(http.StatusOK, &missionListResponse{
		Limit:   limit,
		PageMax: a.calcMaxPage(missionsCount, showAll, limit),
		List:    resMissions,
	})
}

func (a *App) MissionInfoGet(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var mission models.Mission
	if err := a.db.WithContext(rctx).First(&mission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get mission", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, missionInfoFromModel(&mission))
}

func (a *App) MissionCreate(c echo.Context) error {
	jwtUser, err := middlewares.ContextUser(c)
	if err != nil {
		a.l.Error("failed to get jwt user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	var req missionInfoInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Title == nil || *req.Title == "" {
		return a.erm(c, http.StatusBadRequest, "title is required")
	}
	if req.Status != nil && !validStatus(*req.Status) {
		return a.erm(c, http.StatusBadRequest, "unknown status")
	}

	mission := models.Mission{
		Status:    constants.StatusPlanned,
		CreatedBy: jwtUser.ID,
	}
	a.missionMapFields(&req, &mission)

	if err := a.db.WithContext(rctx).Create(&mission).Error; err != nil {
		a.l.Error("failed to create mission", zap.Any("mission", mission), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, missionInfoFromModel(&mission))
}

func (a *App) MissionUpdate(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var req missionInfoInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Status != nil && !validStatus(*req.Status) {
		return a.erm(c, http.StatusBadRequest, "unknown status")
	}

	var mission models.Mission
	if err := a.db.WithContext(rctx).First(&mission, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get mission", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.missionMapFields(&req, &mission)

	if err := a.db.WithContext(rctx).Updates(&mission).Error; err != nil {
		a.l.Error("failed to update mission", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, missionInfoFromModel(&mission))
}

func (a *App) MissionDelete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	if err := a.db.WithContext(rctx).Delete(&models.Mission{}, id).Error; err != nil {
		a.l.Error("failed to delete mission", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "mission deleted"})
}
