package analytics

import (
	"context"
	"sync/atomic"

	"gorm.io/gorm"

	"github.com/compass/backend/internal/logging"
	"github.com/compass/backend/internal/models"
)

// Snapshot is the point-in-time financial picture served to the dashboard.
type Snapshot struct {
	Revenue     float64 `json:"revenue"`
	Expenses    float64 `json:"expenses"`
	Net         float64 `json:"net"`
	Outstanding float64 `json:"outstanding"`
}

type Aggregator struct {
	DB *gorm.DB

	orphaned atomic.Int64
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{DB: db}
}

// Snapshot aggregates with single grouped-sum queries. Paid revenue only
// counts payments whose order still exists; paid payments referencing a
// deleted order predate the cascading delete and are excluded, with the
// exclusion count kept as a data-quality diagnostic.
//
// Revenue falls back to the summed contract value when nothing has been
// collected yet, so a portfolio of fresh orders still shows on the
// dashboard. Net always uses actual collected revenue.
func (a *Aggregator) Snapshot(ctx context.Context) (Snapshot, error) {
	db := a.DB.WithContext(ctx)

	var orderTotal float64
	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&orderTotal).Error; err != nil {
		return Snapshot{}, err
	}

	var paidRevenue float64
	if err := paidJoin(db).
		Select("COALESCE(SUM(payments.amount), 0)").
		Scan(&paidRevenue).Error; err != nil {
		return Snapshot{}, err
	}

	var expenses float64
	if err := db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&expenses).Error; err != nil {
		return Snapshot{}, err
	}

	if err := a.observeOrphans(ctx); err != nil {
		return Snapshot{}, err
	}

	revenue := paidRevenue
	if revenue == 0 {
		revenue = orderTotal
	}
	outstanding := orderTotal - paidRevenue
	if outstanding < 0 {
		outstanding = 0
	}

	return Snapshot{
		Revenue:     revenue,
		Expenses:    expenses,
		Net:         paidRevenue - expenses,
		Outstanding: outstanding,
	}, nil
}

// OrphanedPaidCount reports how many paid payments the last snapshot
// excluded because their order no longer exists.
func (a *Aggregator) OrphanedPaidCount() int64 {
	return a.orphaned.Load()
}

func (a *Aggregator) observeOrphans(ctx context.Context) error {
	db := a.DB.WithContext(ctx)

	var totalPaid int64
	if err := db.Model(&models.Payment{}).
		Where("payments.status = ?", models.PaymentStatusPaid).
		Count(&totalPaid).Error; err != nil {
		return err
	}

	var validPaid int64
	if err := paidJoin(db).Count(&validPaid).Error; err != nil {
		return err
	}

	orphaned := totalPaid - validPaid
	a.orphaned.Store(orphaned)
	if orphaned > 0 {
		logging.FromContext(ctx).Warn("orphaned paid payments excluded from revenue",
			"count", orphaned)
	}
	return nil
}

func paidJoin(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Payment{}).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("payments.status = ?", models.PaymentStatusPaid)
}
