package trade

import (
	"context"
	"time"

	"github.com/wms/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the persistence contract for purchase
// orders. Find methods return shared.ErrNotFound when no row matches.
// Add and Update persist the order's line items alongside it; Update
// removes database rows for items absent from the in-memory collection.
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id int64, loads ...shared.Load) (*PurchaseOrder, error)
	// FindFirstByBusinessKey matches the strict (processingDate, customerID)
	// business key.
	FindFirstByBusinessKey(ctx context.Context, processingDate time.Time, customerID int64, loads ...shared.Load) (*PurchaseOrder, error)
	// FindFirstByDateAndEmail is the loose bulk-ingestion key for rows whose
	// customer snapshot has not been linked by id yet.
	FindFirstByDateAndEmail(ctx context.Context, processingDate time.Time, email string, loads ...shared.Load) (*PurchaseOrder, error)
	FindAll(ctx context.Context, loads ...shared.Load) ([]PurchaseOrder, error)
	Add(ctx context.Context, order *PurchaseOrder) error
	Update(ctx context.Context, order *PurchaseOrder) error
	// Delete removes the order and cascades to its line items.
	Delete(ctx context.Context, id int64) error
}

// SalesOrderRepository defines the persistence contract for sales orders.
// The loose bulk-ingestion key matches on customer name rather than email.
type SalesOrderRepository interface {
	FindByID(ctx context.Context, id int64, loads ...shared.Load) (*SalesOrder, error)
	FindFirstByBusinessKey(ctx context.Context, processingDate time.Time, customerID int64, loads ...shared.Load) (*SalesOrder, error)
	FindFirstByDateAndCustomerName(ctx context.Context, processingDate time.Time, name string, loads ...shared.Load) (*SalesOrder, error)
	FindAll(ctx context.Context, loads ...shared.Load) ([]SalesOrder, error)
	Add(ctx context.Context, order *SalesOrder) error
	Update(ctx context.Context, order *SalesOrder) error
	Delete(ctx context.Context, id int64) error
}
