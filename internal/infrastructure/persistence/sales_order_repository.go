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

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order by its ID
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id int64, loads ...shared.Load) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
	if err := withLoads(r.db.WithContext(ctx), loads).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindFirstByBusinessKey finds the sales order matching the strict
// (processingDate, customerID) business key.
func (r *GormSalesOrderRepository) FindFirstByBusinessKey(ctx context.Context, processingDate time.Time, customerID int64, loads ...shared.Load) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
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

// FindFirstByDateAndCustomerName finds the sales order matching the loose
// bulk-ingestion key: same processing date and exact customer name.
func (r *GormSalesOrderRepository) FindFirstByDateAndCustomerName(ctx context.Context, processingDate time.Time, name string, loads ...shared.Load) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
	if err := withLoads(r.db.WithContext(ctx), loads).
		Joins("JOIN customers ON customers.id = sales_orders.customer_id").
		Where("sales_orders.processing_date = ? AND customers.name = ?", processingDate, name).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all sales orders
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, loads ...shared.Load) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	if err := withLoads(r.db.WithContext(ctx), loads).
		Order("id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Add persists a new sales order with its shipment address, line items
// and, when an unlinked customer snapshot is attached, the snapshot too.
func (r *GormSalesOrderRepository) Add(ctx context.Context, order *trade.SalesOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update persists changes to a sales order inside a transaction. The
// shipment address is saved first so field-level merges land, stale line
// items are removed, and the remaining rows are saved one by one with the
// owning key back-filled.
func (r *GormSalesOrderRepository) Update(ctx context.Context, order *trade.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.ShipmentAddress != nil {
			if err := tx.Save(order.ShipmentAddress).Error; err != nil {
				return err
			}
			order.ShipmentAddressID = order.ShipmentAddress.ID
		}

		keep := make([]int64, 0, len(order.Items))
		for i := range order.Items {
			order.Items[i].SalesOrderID = &order.ID
			if order.Items[i].ID > 0 {
				keep = append(keep, order.Items[i].ID)
			}
		}

		stale := tx.Where("sales_order_id = ?", order.ID)
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

// Delete soft-deletes a sales order and cascades to its line items
func (r *GormSalesOrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sales_order_id = ?", id).Delete(&trade.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.SalesOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormSalesOrderRepository implements SalesOrderRepository
var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
