package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nasa-mission-control/app/server/constants"
	"nasa-mission-control/app/server/middlewares"
	"nasa-mission-control/app/server/models"
)

type projectInfoInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	Status      *string    `json:"status"`
	ImageURL    *string    `json:"imageUrl"`
	Tags        *[]string  `json:"tags"`
}

type projectInfoWithID struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	Status      string    `json:"status"`
	ImageURL    *string   `json:"imageUrl"`
	Tags        []string  `json:"tags"`
	CreatedBy   uint      `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type projectListResponse struct {
	Limit   int                 `json:"limit"`
	PageMax int64               `json:"pageMax"`
	List    []projectInfoWithID `json:"list"`
}

func projectInfoFromModel(project *models.Project) projectInfoWithID {
	return projectInfoWithID{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		StartDate:   project.StartDate,
		Status:      project.Status,
		ImageURL:    project.ImageURL,
		Tags:        project.Tags,
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func (a *App) projectMapFields(req *projectInfoInput, project *models.Project) {
	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.ImageURL != nil {
		project.ImageURL = req.ImageURL
	}
	if req.Tags != nil {
		project.Tags = *req.Tags
	}
}

func (a *App) ProjectList(c echo.Context) error {
	rctx := c.Request().Context()

	var (
		projects      []models.Project
		projectsCount int64
	)

	showAll, page, limit := a.parsePagination(c)
	queryBase := a.db.WithContext(rctx).Model(&models.Project{}).Order("id ASC")
	if !showAll {
		queryBase = queryBase.Limit(limit).Offset(page * limit)
	}

	if err := queryBase.Find(&projects).Error; err != nil {
		a.l.Error("failed to get project list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if err := a.db.WithContext(rctx).Model(&models.Project{}).Count(&projectsCount).Error; err != nil {
		a.l.Error("failed to count projects", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resProjects := []projectInfoWithID{}
	for i := range projects {
		resProjects = append(resProjects, projectInfoFromModel(&projects[i]))
	}

	return c.JSON(http.StatusOK, &projectListResponse{
		Limit:   limit,
		PageMax: a.calcMaxPage(projectsCount, showAll, limit),
		List:    resProjects,
	})
}

func (a *App) ProjectInfoGet(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var project models.Project
	if err := a.db.WithContext(rctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get project", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, projectInfoFromModel(&project))
}

func (a *App) ProjectCreate(c echo.Context) error {
	jwtUser, err := middlewares.ContextUser(c)
	if err != nil {
		a.l.Error("failed to get jwt user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	var req projectInfoInput
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

	project := models.Project{
		Status:    constants.StatusPlanned,
		CreatedBy: jwtUser.ID,
	}
	a.projectMapFields(&req, &project)

	if err := a.db.WithContext(rctx).Create(&project).Error; err != nil {
		a.l.Error("failed to create project", zap.Any("project", project), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, projectInfoFromModel(&project))
}

func (a *App) ProjectUpdate(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	var req projectInfoInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Status != nil && !validStatus(*req.Status) {
		return a.erm(c, http.StatusBadRequest, "unknown status")
	}

	var project models.Project
	if err := a.db.WithContext(rctx).First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get project", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.projectMapFields(&req, &project)

	if err := a.db.WithContext(rctx).Updates(&project).Error; err != nil {
		a.l.Error("failed to update project", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, projectInfoFromModel(&project))
}

func (a *App) ProjectDelete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	rctx := c.Request().Context()

	if err := a.db.WithContext(rctx).Delete(&models.Project{}, id).Error; err != nil {
		a.l.Error("failed to delete project", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "project deleted"})
}
