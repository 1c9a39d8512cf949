package trade

import (
	"time"

	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
)

// SalesOrder is an outbound order against a customer with a dedicated
// shipment address. The pair (ProcessingDate, CustomerID) is the business
// key, independent of the purchase-order key space.
type SalesOrder struct {
	shared.Entity
	ProcessingDate    time.Time         `gorm:"not null;index:idx_sales_order_key" json:"processingDate"`
	CustomerID        int64             `gorm:"index:idx_sales_order_key" json:"customerId"`
	Customer          *partner.Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ShipmentAddressID int64             `gorm:"index" json:"shipmentAddressId"`
	ShipmentAddress   *partner.Address  `gorm:"foreignKey:ShipmentAddressID" json:"shipmentAddress,omitempty"`
	Items             []OrderItem       `gorm:"foreignKey:SalesOrderID" json:"products,omitempty"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// ReplaceItems swaps the order's line items and refreshes update audit.
func (o *SalesOrder) ReplaceItems(items []OrderItem) {
	o.Items = items
	o.Touch(shared.SystemActor)
}

// MergeShipmentAddress applies an incoming shipment address field-by-field
// onto an existing owned address, or attaches the incoming one when the
// order has none yet. A nil incoming address leaves the order unchanged.
func (o *SalesOrder) MergeShipmentAddress(incoming *partner.Address) {
	if incoming == nil {
		return
	}
	if o.ShipmentAddress == nil {
		o.ShipmentAddress = incoming
		return
	}
	o.ShipmentAddress.Street = incoming.Street
	o.ShipmentAddress.City = incoming.City
	o.ShipmentAddress.State = incoming.State
	o.ShipmentAddress.ZipCode = incoming.ZipCode
	o.ShipmentAddress.Touch(shared.SystemActor)
}
