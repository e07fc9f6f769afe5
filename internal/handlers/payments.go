package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/compass/backend/internal/ledger"
	"github.com/compass/backend/internal/models"
	"github.com/compass/backend/internal/mykafka"
	"github.com/compass/backend/internal/util"
)

type PaymentHandler struct {
	Svc      *ledger.Service
	Producer *mykafka.Producer
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	var orderID uint
	if v := parseIntDefault(c.QueryParam("orderId"), 0); v > 0 {
		orderID = uint(v)
	}
	offset, limit := util.Calculate(page, size)

	payments, total, err := h.Svc.ListPayments(c.Request().Context(), orderID, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return pagedJSON(c, payments, page, limit, offset, total)
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req ledger.RecordPaymentInput
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	payment, order, err := h.Svc.RecordPayment(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Producer, "payment_events", fmt.Sprint(payment.OrderID), map[string]any{
		"type":      "payment_recorded",
		"paymentID": payment.ID,
		"orderID":   payment.OrderID,
		"amount":    payment.Amount,
		"status":    payment.Status,
	})
	h.publishCompletion(c, order)

	return c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) PatchPayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var req ledger.UpdatePaymentInput
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	payment, order, err := h.Svc.UpdatePayment(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Producer, "payment_events", fmt.Sprint(payment.OrderID), map[string]any{
		"type":      "payment_updated",
		"paymentID": payment.ID,
		"orderID":   payment.OrderID,
		"status":    payment.Status,
	})
	h.publishCompletion(c, order)

	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if err := h.Svc.DeletePayment(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}

	publish(c, h.Producer, "payment_events", fmt.Sprint(id), map[string]any{
		"type":      "payment_deleted",
		"paymentID": id,
	})

	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// publishCompletion announces the order-side effect of a qualifying payment.
func (h *PaymentHandler) publishCompletion(c echo.Context, order *models.Order) {
	if order == nil || order.Status != models.OrderStatusCompleted {
		return
	}
	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":    "order_completed",
		"orderID": order.ID,
	})
}
