package trade

import (
	"time"

	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
)

// PurchaseOrder is an inbound order against a customer. The pair
// (ProcessingDate, CustomerID) is the business key: at most one purchase
// order may exist per customer per processing date.
//
// CustomerID may be zero for rows ingested through bulk upload before the
// customer snapshot has been linked; in that case Customer carries the
// unlinked snapshot and is persisted alongside the order.
type PurchaseOrder struct {
	shared.Entity
	ProcessingDate time.Time         `gorm:"not null;index:idx_purchase_order_key" json:"processingDate"`
	CustomerID     int64             `gorm:"index:idx_purchase_order_key" json:"customerId"`
	Customer       *partner.Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items          []OrderItem       `gorm:"foreignKey:PurchaseOrderID" json:"products,omitempty"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// ReplaceItems swaps the order's line items and refreshes update audit.
func (o *PurchaseOrder) ReplaceItems(items []OrderItem) {
	o.Items = items
	o.Touch(shared.SystemActor)
}
