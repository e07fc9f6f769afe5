package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compass/backend/internal/ledger"
	"github.com/compass/backend/internal/models"
)

func createTestOrder(t *testing.T, env *testEnv, total float64) *models.Order {
	order, err := env.Svc.CreateOrder(context.Background(), ledger.CreateOrderInput{
		Client:  "Lumen Payments",
		Total:   total,
		DueDate: "2026-09-30",
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrderHandler(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/orders", map[string]any{
		"client":  "Acme Studio",
		"total":   1000,
		"dueDate": "2026-10-15",
	})
	require.NoError(t, env.Orders.CreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	decodeJSON(t, rec, &order)
	assert.Equal(t, "Acme Studio", order.Client)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotZero(t, order.ID)
}

func TestCreateOrderHandler_RejectsBadTotal(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/orders", map[string]any{
		"client":  "Acme Studio",
		"total":   0,
		"dueDate": "2026-10-15",
	})
	require.NoError(t, env.Orders.CreateOrder(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePaymentHandler_CompletesOrder(t *testing.T) {
	env := newTestEnv(t)
	order := createTestOrder(t, env, 1000)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/payments", map[string]any{
		"orderId": order.ID,
		"amount":  1000,
		"status":  models.PaymentStatusPaid,
		"paidAt":  "2026-08-20",
	})
	require.NoError(t, env.Payments.CreatePayment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var payment models.Payment
	decodeJSON(t, rec, &payment)
	assert.Equal(t, order.ID, payment.OrderID)
	assert.NotEmpty(t, payment.Reference)

	// the transition is observable on the order resource
	updated, err := env.Svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, updated.Status)
}

func TestCreatePaymentHandler_UnknownOrderIs404(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/payments", map[string]any{
		"orderId": 777,
		"amount":  100,
		"status":  models.PaymentStatusPaid,
	})
	require.NoError(t, env.Payments.CreatePayment(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBalanceHandler(t *testing.T) {
	env := newTestEnv(t)
	order := createTestOrder(t, env, 1000)

	_, _, err := env.Svc.RecordPayment(context.Background(), ledger.RecordPaymentInput{
		OrderID: order.ID, Amount: 400, Status: models.PaymentStatusPaid,
	})
	require.NoError(t, err)
	_, _, err = env.Svc.RecordPayment(context.Background(), ledger.RecordPaymentInput{
		OrderID: order.ID, Amount: 250, Status: models.PaymentStatusPending,
	})
	require.NoError(t, err)

	rec, c := env.doJSONRequest(http.MethodGet, fmt.Sprintf("/api/v1/admin/orders/%d/balance", order.ID), nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(order.ID))
	require.NoError(t, env.Orders.GetBalance(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Paid    float64 `json:"paid"`
		Pending float64 `json:"pending"`
		Balance float64 `json:"balance"`
	}
	decodeJSON(t, rec, &resp)
	assert.Equal(t, 400.0, resp.Paid)
	assert.Equal(t, 250.0, resp.Pending)
	assert.Equal(t, 600.0, resp.Balance)
}

func TestDeleteOrderHandler_CascadeVisibleInListing(t *testing.T) {
	env := newTestEnv(t)
	order := createTestOrder(t, env, 1000)

	for _, amount := range []float64{200, 300} {
		_, _, err := env.Svc.RecordPayment(context.Background(), ledger.RecordPaymentInput{
			OrderID: order.ID, Amount: amount, Status: models.PaymentStatusPaid,
		})
		require.NoError(t, err)
	}

	rec, c := env.doJSONRequest(http.MethodDelete, fmt.Sprintf("/api/v1/admin/orders/%d", order.ID), nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(order.ID))
	require.NoError(t, env.Orders.DeleteOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = env.doJSONRequest(http.MethodGet, fmt.Sprintf("/api/v1/admin/payments?orderId=%d", order.ID), nil)
	require.NoError(t, env.Payments.ListPayments(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Payment `json:"data"`
	}
	decodeJSON(t, rec, &resp)
	assert.Empty(t, resp.Data)
}

func TestPatchOrderHandler_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/admin/orders/99", map[string]any{"client": "x"})
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, env.Orders.PatchOrder(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
