package ledger

import (
	"context"

	"gorm.io/gorm"

	"github.com/compass/backend/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, limit, offset int) ([]models.Order, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormRepo) CountOrders(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error
	return total, err
}

func (r *GormRepo) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Save(order).Error
}

// DeleteOrderCascade removes an order and every payment referencing it as a
// single transaction; either both deletes commit or neither does.
func (r *GormRepo) DeleteOrderCascade(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// CreatePayment stores a payment against an existing order and applies the
// completion transition in the same transaction. The returned order
// reflects any status change.
func (r *GormRepo) CreatePayment(ctx context.Context, payment *models.Payment) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, payment.OrderID).Error; err != nil {
			return err
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return applyCompletion(tx, &order)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) PaymentByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.DB.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPayments returns payments, newest first, optionally scoped to one
// order (orderID == 0 means all).
func (r *GormRepo) ListPayments(ctx context.Context, orderID uint, limit, offset int) ([]models.Payment, int64, error) {
	scope := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&models.Payment{})
		if orderID != 0 {
			q = q.Where("order_id = ?", orderID)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []models.Payment
	if err := scope().Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// SavePayment persists payment changes and re-checks the owning order's
// completion in the same transaction.
func (r *GormRepo) SavePayment(ctx context.Context, payment *models.Payment) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, payment.OrderID).Error; err != nil {
			return err
		}
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		return applyCompletion(tx, &order)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) DeletePayment(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, id).Error; err != nil {
			return err
		}
		return tx.Delete(&payment).Error
	})
}

func (r *GormRepo) SumPayments(ctx context.Context, orderID uint, status string) (float64, error) {
	return sumPayments(r.DB.WithContext(ctx), orderID, status)
}

// applyCompletion transitions an order to completed once its paid total
// covers the contract value. Forward-only: completed never regresses.
func applyCompletion(tx *gorm.DB, order *models.Order) error {
	if order.Status == models.OrderStatusCompleted {
		return nil
	}
	paid, err := sumPayments(tx, order.ID, models.PaymentStatusPaid)
	if err != nil {
		return err
	}
	if paid >= order.Total {
		order.Status = models.OrderStatusCompleted
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", models.OrderStatusCompleted).Error
	}
	return nil
}

func sumPayments(tx *gorm.DB, orderID uint, status string) (float64, error) {
	var total float64
	err := tx.Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", orderID, status).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
