package trade

import (
	"time"

	catalogapp "github.com/wms/backend/internal/application/catalog"
	partnerapp "github.com/wms/backend/internal/application/partner"
	"github.com/wms/backend/internal/application/validation"
	"github.com/wms/backend/internal/domain/trade"
)

// FieldCustomerID is the field name bulk ingestion filters out before
// surfacing failures; customers are resolved per record instead. The
// missing-reference rule below is attributed to the request as a whole
// (empty field name) so the filter never drops it and uploads skip such
// records.
const FieldCustomerID = "customerId"

// OrderItemRequest is one product line of an order payload.
type OrderItemRequest struct {
	ProductCode string `json:"productCode" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
}

// PurchaseOrderRequest is the inbound payload for creating, updating and
// uploading purchase orders. A customer may be referenced by id or carried
// as an embedded snapshot.
type PurchaseOrderRequest struct {
	ProcessingDate *time.Time                  `json:"processingDate" validate:"required"`
	CustomerID     *int64                      `json:"customerId"`
	Customer       *partnerapp.CustomerRequest `json:"customer" validate:"-"`
	Products       []OrderItemRequest          `json:"products" validate:"required,min=1,dive"`
}

// CrossValidate requires some customer reference: an id field, whatever
// its value, or an embedded snapshot.
func (r PurchaseOrderRequest) CrossValidate() []validation.FieldError {
	if r.CustomerID == nil && r.Customer == nil {
		return []validation.FieldError{{Message: "Customer is required"}}
	}
	return nil
}

// SalesOrderRequest is the inbound payload for creating, updating and
// uploading sales orders.
type SalesOrderRequest struct {
	ProcessingDate  time.Time                   `json:"processingDate" validate:"required"`
	CustomerID      int64                       `json:"customerId"`
	Customer        *partnerapp.CustomerRequest `json:"customer" validate:"-"`
	ShipmentAddress *partnerapp.AddressRequest  `json:"shipmentAddress"`
	Products        []OrderItemRequest          `json:"products" validate:"required,min=1,dive"`
}

// CrossValidate requires a positive customer id or an embedded snapshot,
// plus a shipment address.
func (r SalesOrderRequest) CrossValidate() []validation.FieldError {
	var errs []validation.FieldError
	if r.CustomerID <= 0 && r.Customer == nil {
		errs = append(errs, validation.FieldError{Message: "Customer is required"})
	}
	if r.ShipmentAddress == nil {
		errs = append(errs, validation.FieldError{Field: "shipmentAddress", Message: "Customer address should not be null"})
	}
	return errs
}

// OrderItemDTO is the outbound line-item representation, hydrated with its
// product before mapping.
type OrderItemDTO struct {
	ID        int64                  `json:"id"`
	ProductID int64                  `json:"productId"`
	Quantity  int                    `json:"quantity"`
	Product   *catalogapp.ProductDTO `json:"product,omitempty"`
}

// PurchaseOrderDTO is the outbound purchase order representation.
type PurchaseOrderDTO struct {
	ID             int64                   `json:"id"`
	ProcessingDate time.Time               `json:"processingDate"`
	CustomerID     int64                   `json:"customerId"`
	Customer       *partnerapp.CustomerDTO `json:"customer,omitempty"`
	Products       []OrderItemDTO          `json:"products"`
}

// SalesOrderDTO is the outbound sales order representation.
type SalesOrderDTO struct {
	ID                int64                   `json:"id"`
	ProcessingDate    time.Time               `json:"processingDate"`
	CustomerID        int64                   `json:"customerId"`
	Customer          *partnerapp.CustomerDTO `json:"customer,omitempty"`
	ShipmentAddressID int64                   `json:"shipmentAddressId"`
	ShipmentAddress   *partnerapp.AddressDTO  `json:"shipmentAddress,omitempty"`
	Products          []OrderItemDTO          `json:"products"`
}

func toOrderItemDTOs(items []trade.OrderItem) []OrderItemDTO {
	dtos := make([]OrderItemDTO, len(items))
	for i, item := range items {
		dtos[i] = OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			p := catalogapp.ToProductDTO(item.Product)
			dtos[i].Product = &p
		}
	}
	return dtos
}

// ToPurchaseOrderDTO maps a purchase order to its outbound form.
func ToPurchaseOrderDTO(o *trade.PurchaseOrder) PurchaseOrderDTO {
	dto := PurchaseOrderDTO{
		ID:             o.ID,
		ProcessingDate: o.ProcessingDate,
		CustomerID:     o.CustomerID,
		Products:       toOrderItemDTOs(o.Items),
	}
	if o.Customer != nil {
		c := partnerapp.ToCustomerDTO(o.Customer)
		dto.Customer = &c
	}
	return dto
}

// ToSalesOrderDTO maps a sales order to its outbound form.
func ToSalesOrderDTO(o *trade.SalesOrder) SalesOrderDTO {
	dto := SalesOrderDTO{
		ID:                o.ID,
		ProcessingDate:    o.ProcessingDate,
		CustomerID:        o.CustomerID,
		ShipmentAddressID: o.ShipmentAddressID,
		ShipmentAddress:   partnerapp.ToAddressDTO(o.ShipmentAddress),
		Products:          toOrderItemDTOs(o.Items),
	}
	if o.Customer != nil {
		c := partnerapp.ToCustomerDTO(o.Customer)
		dto.Customer = &c
	}
	return dto
}
