package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/compass/backend/internal/settings"
)

type SettingsHandler struct {
	Svc *settings.Service
}

func (h *SettingsHandler) GetSettings(c echo.Context) error {
	setting, err := h.Svc.Get(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, setting)
}

func (h *SettingsHandler) PatchSettings(c echo.Context) error {
	var req settings.UpdateInput
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	setting, err := h.Svc.Update(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, setting)
}
