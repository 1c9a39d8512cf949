package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/trade"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id int64, loads ...shared.Load) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := withLoads(r.db.WithContext(ctx), loads).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindFirstByBusinessKey finds the purchase order matching the strict
// (processingDate, customerID) business key.
func (r *GormPurchaseOrderRepository) FindFirstByBusinessKey(ctx context.Context, processingDate time.Time, customerID int64, loads ...shared.Load) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := withLoads(r.db.WithContext(ctx), loads).
		Where("processing_date = ? AND customer_id = ?", processingDate, customerID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindFirstByDateAndEmail finds the purchase order matching the loose
// bulk-ingestion key: same processing date and exact customer email.
func (r *GormPurchaseOrderRepository) FindFirstByDateAndEmail(ctx context.Context, processingDate time.Time, email string, loads ...shared.Load) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := withLoads(r.db.WithContext(ctx), loads).
		Joins("JOIN customers ON customers.id = purchase_orders.customer_id").
		Where("purchase_orders.processing_date = ? AND customers.email = ?", processingDate, email).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all purchase orders
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, loads ...shared.Load) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	if err := withLoads(r.db.WithContext(ctx), loads).
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Add persists a new purchase order with its line items and, when an
// unlinked customer snapshot is attached, the snapshot as well.
func (r *GormPurchaseOrderRepository) Add(ctx context.Context, order *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update persists changes to a purchase order inside a transaction. Line
// items absent from the in-memory collection are removed from the
// database; the remaining rows are saved one by one with the owning key
// back-filled.
func (r *GormPurchaseOrderRepository) Update(ctx context.Context, order *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]int64, 0, len(order.Items))
		for i := range order.Items {
			order.Items[i].PurchaseOrderID = &order.ID
			if order.Items[i].ID > 0 {
				keep = append(keep, order.Items[i].ID)
			}
		}

		stale := tx.Where("purchase_order_id = ?", order.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&trade.OrderItem{}).Error; err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return err
		}
		for i := range order.Items {
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete soft-deletes a purchase order and cascades to its line items
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", id).Delete(&trade.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.PurchaseOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
