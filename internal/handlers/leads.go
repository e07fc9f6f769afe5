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

// Leads are created by the public site; the admin surface only lists,
// updates status, and deletes.
type LeadHandler struct {
	DB *gorm.DB
}

func (h *LeadHandler) ListLeads(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	scope := func() *gorm.DB {
		q := h.DB.Model(&models.Lead{})
		if status := c.QueryParam("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var items []models.Lead
	if err := scope().Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return pagedJSON(c, items, page, limit, offset, total)
}

func (h *LeadHandler) PatchLead(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var lead models.Lead
	if err := h.DB.First(&lead, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Status  *string `json:"status"`
		Company *string `json:"company"`
		Budget  *string `json:"budget"`
		Message *string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if req.Status != nil {
		if !validLeadStatus(*req.Status) {
			return errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", *req.Status))
		}
		lead.Status = *req.Status
	}
	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Company != nil {
		lead.Company = *req.Company
	}
	if req.Budget != nil {
		lead.Budget = *req.Budget
	}
	if req.Message != nil {
		lead.Message = *req.Message
	}

	if err := h.DB.Save(&lead).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) DeleteLead(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := h.DB.Delete(&models.Lead{}, id).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func validLeadStatus(s string) bool {
	switch s {
	case models.LeadStatusNew, models.LeadStatusContacted, models.LeadStatusWon, models.LeadStatusLost:
		return true
	}
	return false
}
