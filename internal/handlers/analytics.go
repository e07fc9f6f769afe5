package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/compass/backend/internal/analytics"
	"github.com/compass/backend/internal/models"
)

type AnalyticsHandler struct {
	DB  *gorm.DB
	Agg *analytics.Aggregator
}

// GetSnapshot merges the financial snapshot with the open-lead and
// active-project counts the dashboard header shows.
func (h *AnalyticsHandler) GetSnapshot(c echo.Context) error {
	ctx := c.Request().Context()

	snapshot, err := h.Agg.Snapshot(ctx)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var openLeads int64
	if err := h.DB.WithContext(ctx).Model(&models.Lead{}).
		Where("status = ?", models.LeadStatusNew).
		Count(&openLeads).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var activeProjects int64
	if err := h.DB.WithContext(ctx).Model(&models.Project{}).
		Where("status = ?", models.ProjectStatusActive).
		Count(&activeProjects).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"revenue":        snapshot.Revenue,
		"expenses":       snapshot.Expenses,
		"net":            snapshot.Net,
		"outstanding":    snapshot.Outstanding,
		"openLeads":      openLeads,
		"activeProjects": activeProjects,
	})
}
