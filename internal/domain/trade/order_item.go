package trade

import (
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

// OrderItem is one product-quantity line inside an order. Exactly one of
// PurchaseOrderID and SalesOrderID is set; the line always references a
// persisted product. The Product field is a transient view re-attached
// before responses are mapped and is never written by the repository.
type OrderItem struct {
	shared.Entity
	PurchaseOrderID *int64           `gorm:"index" json:"purchaseOrderId,omitempty"`
	SalesOrderID    *int64           `gorm:"index" json:"salesOrderId,omitempty"`
	ProductID       int64            `gorm:"not null;index" json:"productId"`
	Quantity        int              `gorm:"not null" json:"quantity"`
	Product         *catalog.Product `gorm:"-" json:"product,omitempty"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewPurchaseItem builds a line item owned by a purchase order. orderID is
// zero for orders not yet persisted; the key is back-filled on insert.
func NewPurchaseItem(orderID, productID int64, quantity int) OrderItem {
	item := OrderItem{
		Entity:    shared.NewEntity(shared.SystemActor),
		ProductID: productID,
		Quantity:  quantity,
	}
	item.PurchaseOrderID = &orderID
	return item
}

// NewSalesItem builds a line item owned by a sales order.
func NewSalesItem(orderID, productID int64, quantity int) OrderItem {
	item := OrderItem{
		Entity:    shared.NewEntity(shared.SystemActor),
		ProductID: productID,
		Quantity:  quantity,
	}
	item.SalesOrderID = &orderID
	return item
}
