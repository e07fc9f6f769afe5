package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/compass/backend/internal/ledger"
	"github.com/compass/backend/internal/mykafka"
	"github.com/compass/backend/internal/settings"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, Response{
		Status:  "error",
		Message: err.Error(),
	})
}

// serviceError maps ledger/settings sentinel errors onto HTTP statuses.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ledger.ErrValidation), errors.Is(err, settings.ErrValidation):
		return errorResponse(c, http.StatusBadRequest, err)
	case errors.Is(err, ledger.ErrNotFound):
		return errorResponse(c, http.StatusNotFound, err)
	case errors.Is(err, ledger.ErrConflict):
		return errorResponse(c, http.StatusConflict, err)
	case errors.Is(err, ledger.ErrStorage):
		return errorResponse(c, http.StatusServiceUnavailable, err)
	default:
		return errorResponse(c, http.StatusInternalServerError, err)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func pagedJSON(c echo.Context, items interface{}, page, limit, offset int, total int64) error {
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

// publish sends a lifecycle event; delivery is best-effort and failures are
// only logged.
func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
