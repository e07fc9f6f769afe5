package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/compass/backend/internal/ledger"
	"github.com/compass/backend/internal/mykafka"
	"github.com/compass/backend/internal/util"
)

type OrderHandler struct {
	Svc      *ledger.Service
	Producer *mykafka.Producer
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	orders, total, err := h.Svc.ListOrders(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return pagedJSON(c, orders, page, limit, offset, total)
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req ledger.CreateOrderInput
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	order, err := h.Svc.CreateOrder(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"client":  order.Client,
		"total":   order.Total,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) PatchOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var req ledger.UpdateOrderInput
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	order, err := h.Svc.UpdateOrder(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":    "order_updated",
		"orderID": order.ID,
		"status":  order.Status,
	})

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if err := h.Svc.DeleteOrder(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(id), map[string]any{
		"type":    "order_deleted",
		"orderID": id,
	})

	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// GetBalance exposes the derived per-order financial state.
func (h *OrderHandler) GetBalance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	ctx := c.Request().Context()
	paid, err := h.Svc.PaidTotal(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	pending, err := h.Svc.PendingTotal(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	balance, err := h.Svc.Balance(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"orderId": id,
		"paid":    paid,
		"pending": pending,
		"balance": balance,
	})
}
