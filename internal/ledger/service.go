package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/compass/backend/internal/models"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrConflict   = errors.New("conflict")   // 409
	ErrStorage    = errors.New("storage")    // 503
)

// deleteRetries bounds how often a failed cascading delete is re-run as a
// whole before it is surfaced as a storage failure.
const deleteRetries = 3

type Service struct {
	Repo *GormRepo
}

func NewService(db *gorm.DB) *Service {
	return &Service{Repo: &GormRepo{DB: db}}
}

type CreateOrderInput struct {
	Client  string  `json:"client"`
	Project string  `json:"project"`
	Total   float64 `json:"total"`
	Status  string  `json:"status"`
	DueDate string  `json:"dueDate"`
}

func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if in.Client == "" {
		return nil, fmt.Errorf("%w: client required", ErrValidation)
	}
	if in.Total <= 0 {
		return nil, fmt.Errorf("%w: total must be > 0", ErrValidation)
	}
	if in.DueDate == "" {
		return nil, fmt.Errorf("%w: dueDate required", ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if !validOrderStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	project := in.Project
	if project == "" {
		count, err := s.Repo.CountOrders(ctx)
		if err != nil {
			return nil, err
		}
		project = fmt.Sprintf("ORD-%04d", count+1)
	}

	order := &models.Order{
		Client:  in.Client,
		Project: project,
		Total:   in.Total,
		Status:  status,
		DueDate: in.DueDate,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

type UpdateOrderInput struct {
	Client  *string  `json:"client"`
	Project *string  `json:"project"`
	Total   *float64 `json:"total"`
	Status  *string  `json:"status"`
	DueDate *string  `json:"dueDate"`
}

func (s *Service) UpdateOrder(ctx context.Context, id uint, in UpdateOrderInput) (*models.Order, error) {
	order, err := s.Repo.OrderByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "order %d", id)
	}

	if in.Client != nil {
		if *in.Client == "" {
			return nil, fmt.Errorf("%w: client required", ErrValidation)
		}
		order.Client = *in.Client
	}
	if in.Project != nil {
		order.Project = *in.Project
	}
	if in.Total != nil {
		if *in.Total <= 0 {
			return nil, fmt.Errorf("%w: total must be > 0", ErrValidation)
		}
		order.Total = *in.Total
	}
	if in.Status != nil {
		if !validOrderStatus(*in.Status) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *in.Status)
		}
		order.Status = *in.Status
	}
	if in.DueDate != nil {
		if *in.DueDate == "" {
			return nil, fmt.Errorf("%w: dueDate required", ErrValidation)
		}
		order.DueDate = *in.DueDate
	}

	if err := s.Repo.SaveOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes an order and all of its payments. A transient
// persistence failure retries the whole cascade; no partial state is ever
// committed.
func (s *Service) DeleteOrder(ctx context.Context, id uint) error {
	var err error
	for attempt := 0; attempt < deleteRetries; attempt++ {
		err = s.Repo.DeleteOrderCascade(ctx, id)
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("%w: cascading delete of order %d: %v", ErrStorage, id, err)
}

func (s *Service) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Repo.OrderByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "order %d", id)
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, limit, offset int) ([]models.Order, int64, error) {
	return s.Repo.ListOrders(ctx, limit, offset)
}

type RecordPaymentInput struct {
	OrderID uint    `json:"orderId"`
	Amount  float64 `json:"amount"`
	Status  string  `json:"status"`
	Method  string  `json:"method"`
	PaidAt  string  `json:"paidAt"`
	Note    string  `json:"note"`
}

// RecordPayment rejects payments against unknown orders at the boundary so
// orphans can never be created, and transitions the order to completed
// when the cumulative paid total covers its contract value.
func (s *Service) RecordPayment(ctx context.Context, in RecordPaymentInput) (*models.Payment, *models.Order, error) {
	if in.OrderID == 0 {
		return nil, nil, fmt.Errorf("%w: orderId required", ErrValidation)
	}
	if in.Amount <= 0 {
		return nil, nil, fmt.Errorf("%w: amount must be > 0", ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = models.PaymentStatusPending
	}
	if !validPaymentStatus(status) {
		return nil, nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	payment := &models.Payment{
		OrderID:   in.OrderID,
		Reference: uuid.NewString(),
		Amount:    in.Amount,
		Status:    status,
		Method:    in.Method,
		PaidAt:    in.PaidAt,
		Note:      in.Note,
	}
	order, err := s.Repo.CreatePayment(ctx, payment)
	if err != nil {
		return nil, nil, mapNotFound(err, "order %d", in.OrderID)
	}
	return payment, order, nil
}

type UpdatePaymentInput struct {
	Amount *float64 `json:"amount"`
	Status *string  `json:"status"`
	Method *string  `json:"method"`
	PaidAt *string  `json:"paidAt"`
	Note   *string  `json:"note"`
}

func (s *Service) UpdatePayment(ctx context.Context, id uint, in UpdatePaymentInput) (*models.Payment, *models.Order, error) {
	payment, err := s.Repo.PaymentByID(ctx, id)
	if err != nil {
		return nil, nil, mapNotFound(err, "payment %d", id)
	}

	if in.Amount != nil {
		if *in.Amount <= 0 {
			return nil, nil, fmt.Errorf("%w: amount must be > 0", ErrValidation)
		}
		payment.Amount = *in.Amount
	}
	if in.Status != nil {
		if !validPaymentStatus(*in.Status) {
			return nil, nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *in.Status)
		}
		payment.Status = *in.Status
	}
	if in.Method != nil {
		payment.Method = *in.Method
	}
	if in.PaidAt != nil {
		payment.PaidAt = *in.PaidAt
	}
	if in.Note != nil {
		payment.Note = *in.Note
	}

	order, err := s.Repo.SavePayment(ctx, payment)
	if err != nil {
		return nil, nil, err
	}
	return payment, order, nil
}

func (s *Service) DeletePayment(ctx context.Context, id uint) error {
	if err := s.Repo.DeletePayment(ctx, id); err != nil {
		return mapNotFound(err, "payment %d", id)
	}
	return nil
}

func (s *Service) ListPayments(ctx context.Context, orderID uint, limit, offset int) ([]models.Payment, int64, error) {
	return s.Repo.ListPayments(ctx, orderID, limit, offset)
}

func (s *Service) PaidTotal(ctx context.Context, orderID uint) (float64, error) {
	if _, err := s.Repo.OrderByID(ctx, orderID); err != nil {
		return 0, mapNotFound(err, "order %d", orderID)
	}
	return s.Repo.SumPayments(ctx, orderID, models.PaymentStatusPaid)
}

func (s *Service) PendingTotal(ctx context.Context, orderID uint) (float64, error) {
	if _, err := s.Repo.OrderByID(ctx, orderID); err != nil {
		return 0, mapNotFound(err, "order %d", orderID)
	}
	return s.Repo.SumPayments(ctx, orderID, models.PaymentStatusPending)
}

// Balance is the contract value minus the paid total, never negative.
func (s *Service) Balance(ctx context.Context, orderID uint) (float64, error) {
	order, err := s.Repo.OrderByID(ctx, orderID)
	if err != nil {
		return 0, mapNotFound(err, "order %d", orderID)
	}
	paid, err := s.Repo.SumPayments(ctx, orderID, models.PaymentStatusPaid)
	if err != nil {
		return 0, err
	}
	balance := order.Total - paid
	if balance < 0 {
		balance = 0
	}
	return balance, nil
}

func validOrderStatus(s string) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusInProgress, models.OrderStatusCompleted:
		return true
	}
	return false
}

func validPaymentStatus(s string) bool {
	switch s {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
		return true
	}
	return false
}

func mapNotFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
	}
	return err
}
