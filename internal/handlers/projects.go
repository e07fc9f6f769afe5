package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/compass/backend/internal/models"
	"github.com/compass/backend/internal/util"
)

type ProjectHandler struct {
	DB *gorm.DB
}

func (h *ProjectHandler) ListProjects(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	scope := func() *gorm.DB {
		q := h.DB.Model(&models.Project{})
		if status := c.QueryParam("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var items []models.Project
	if err := scope().Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return pagedJSON(c, items, page, limit, offset, total)
}

func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req struct {
		Name     string  `json:"name"`
		Slug     string  `json:"slug"`
		Category string  `json:"category"`
		Status   string  `json:"status"`
		Owner    string  `json:"owner"`
		Budget   float64 `json:"budget"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.Name == "" {
		return errorResponse(c, http.StatusBadRequest, errors.New("name required"))
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Name)
	}
	if req.Status == "" {
		req.Status = models.ProjectStatusActive
	}
	if !validProjectStatus(req.Status) {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", req.Status))
	}

	project := models.Project{
		Name:     req.Name,
		Slug:     req.Slug,
		Category: req.Category,
		Status:   req.Status,
		Owner:    req.Owner,
		Budget:   req.Budget,
	}
	if err := h.DB.Create(&project).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) PatchProject(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var project models.Project
	if err := h.DB.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var req struct {
		Name     *string  `json:"name"`
		Slug     *string  `json:"slug"`
		Category *string  `json:"category"`
		Status   *string  `json:"status"`
		Owner    *string  `json:"owner"`
		Budget   *float64 `json:"budget"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if req.Name != nil {
		project.Name = *req.Name
		if req.Slug == nil {
			project.Slug = util.Slugify(*req.Name)
		}
	}
	if req.Slug != nil {
		project.Slug = *req.Slug
	}
	if req.Category != nil {
		project.Category = *req.Category
	}
	if req.Status != nil {
		if !validProjectStatus(*req.Status) {
			return errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", *req.Status))
		}
		project.Status = *req.Status
	}
	if req.Owner != nil {
		project.Owner = *req.Owner
	}
	if req.Budget != nil {
		project.Budget = *req.Budget
	}

	if err := h.DB.Save(&project).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := h.DB.Delete(&models.Project{}, id).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func validProjectStatus(s string) bool {
	switch s {
	case models.ProjectStatusActive, models.ProjectStatusPaused, models.ProjectStatusComplete:
		return true
	}
	return false
}
