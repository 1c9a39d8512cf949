package trade

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	partnerapp "github.com/wms/backend/internal/application/partner"
	"github.com/wms/backend/internal/application/validation"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/trade"
)

func newSalesOrderService(orders *mockSalesOrderRepo, products *mockProductRepo, customers *mockCustomerRepo) *SalesOrderService {
	return NewSalesOrderService(orders, products, customers, validation.New(), zap.NewNop())
}

func salesDate() time.Time {
	return time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
}

func validSalesOrderRequest() SalesOrderRequest {
	return SalesOrderRequest{
		ProcessingDate: salesDate(),
		CustomerID:     7,
		ShipmentAddress: &partnerapp.AddressRequest{
			Street: "9 Quay Lane", City: "Hamburg", State: "HH", Country: "DE", ZipCode: "20457",
		},
		Products: []OrderItemRequest{{ProductCode: "PALLET-EU", Quantity: 2}},
	}
}

func TestSalesOrderCreateRequiresShipmentAddress(t *testing.T) {
	svc := newSalesOrderService(new(mockSalesOrderRepo), new(mockProductRepo), new(mockCustomerRepo))

	req := validSalesOrderRequest()
	req.ShipmentAddress = nil

	res := svc.Create(context.Background(), req)

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Customer address should not be null")
}

func TestSalesOrderCreateAttachesShipmentAddress(t *testing.T) {
	customers := new(mockCustomerRepo)
	customers.On("FindByID", mock.Anything, int64(7), mock.Anything).
		Return(storedCustomer(7, "Acme", "ops@acme.example"), nil)

	var added *trade.SalesOrder
	orders := new(mockSalesOrderRepo)
	orders.On("FindFirstByBusinessKey", mock.Anything, salesDate(), int64(7), mock.Anything).
		Return(nil, shared.ErrNotFound)
	orders.On("Add", mock.Anything, mock.AnythingOfType("*trade.SalesOrder")).
		Run(func(args mock.Arguments) {
			added = args.Get(1).(*trade.SalesOrder)
		}).
		Return(nil)

	products := new(mockProductRepo)
	products.On("FindByCodes", mock.Anything, []string{"PALLET-EU"}).
		Return(storedProducts("PALLET-EU"), nil)

	svc := newSalesOrderService(orders, products, customers)

	res := svc.Create(context.Background(), validSalesOrderRequest())

	assert.True(t, res.Success)
	assert.Equal(t, "Sales Order successfully created", res.Message)
	assert.NotNil(t, added.ShipmentAddress)
	assert.Equal(t, "Hamburg", added.ShipmentAddress.City)
	assert.NotNil(t, res.Data.ShipmentAddress)
}

func TestSalesOrderCreateRejectsDuplicateBusinessKey(t *testing.T) {
	customers := new(mockCustomerRepo)
	customers.On("FindByID", mock.Anything, int64(7), mock.Anything).
		Return(storedCustomer(7, "Acme", "ops@acme.example"), nil)

	orders := new(mockSalesOrderRepo)
	orders.On("FindFirstByBusinessKey", mock.Anything, salesDate(), int64(7), mock.Anything).
		Return(&trade.SalesOrder{ProcessingDate: salesDate(), CustomerID: 7}, nil)

	svc := newSalesOrderService(orders, new(mockProductRepo), customers)

	res := svc.Create(context.Background(), validSalesOrderRequest())

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Order already exists in system with ProcessingDate:")
	orders.AssertNotCalled(t, "Add")
}

func TestSalesOrderUpdateRequiresResolvedCustomer(t *testing.T) {
	customers := new(mockCustomerRepo)
	customers.On("FindByID", mock.Anything, int64(7), mock.Anything).
		Return(nil, shared.ErrNotFound)
	svc := newSalesOrderService(new(mockSalesOrderRepo), new(mockProductRepo), customers)

	res := svc.Update(context.Background(), 4, validSalesOrderRequest())

	assert.False(t, res.Success)
	assert.Equal(t, "Please provide a valid customer", res.Message)
}

func TestSalesOrderUpdateMergesShipmentAddressKeepingCountry(t *testing.T) {
	customers := new(mockCustomerRepo)
	customers.On("FindByID", mock.Anything, int64(7), mock.Anything).
		Return(storedCustomer(7, "Acme", "ops@acme.example"), nil)

	products := new(mockProductRepo)
	products.On("FindByCodes", mock.Anything, mock.Anything).
		Return(storedProducts("PALLET-EU"), nil)

	existing := &trade.SalesOrder{
		Entity:         shared.NewEntity(shared.SystemActor),
		ProcessingDate: salesDate(),
		CustomerID:     2,
		ShipmentAddress: &partner.Address{
			Entity: shared.NewEntity(shared.SystemActor),
			Street: "Old Street", City: "Bremen", State: "HB", Country: "FR", ZipCode: "28195",
		},
	}
	existing.ID = 4

	orders := new(mockSalesOrderRepo)
	orders.On("FindByID", mock.Anything, int64(4), mock.Anything).Return(existing, nil)
	orders.On("Update", mock.Anything, existing).Return(nil)

	svc := newSalesOrderService(orders, products, customers)

	res := svc.Update(context.Background(), 4, validSalesOrderRequest())

	assert.True(t, res.Success)
	assert.Equal(t, "SalesOrder successfully updated", res.Message)
	assert.Equal(t, int64(7), existing.CustomerID)
	assert.Equal(t, "9 Quay Lane", existing.ShipmentAddress.Street)
	assert.Equal(t, "Hamburg", existing.ShipmentAddress.City)
	// the stored country survives shipment address merges
	assert.Equal(t, "FR", existing.ShipmentAddress.Country)
	orders.AssertExpectations(t)
}

func TestSalesOrderUpdateMissingOrderFailsSilently(t *testing.T) {
	customers := new(mockCustomerRepo)
	customers.On("FindByID", mock.Anything, int64(7), mock.Anything).
		Return(storedCustomer(7, "Acme", "ops@acme.example"), nil)

	products := new(mockProductRepo)
	products.On("FindByCodes", mock.Anything, mock.Anything).
		Return(storedProducts("PALLET-EU"), nil)

	orders := new(mockSalesOrderRepo)
	orders.On("FindByID", mock.Anything, int64(4), mock.Anything).
		Return(nil, shared.ErrNotFound)

	svc := newSalesOrderService(orders, products, customers)

	res := svc.Update(context.Background(), 4, validSalesOrderRequest())

	assert.False(t, res.Success)
	assert.Empty(t, res.Message)
}

func TestSalesOrderGetHydratesProducts(t *testing.T) {
	order := &trade.SalesOrder{
		Entity:         shared.NewEntity(shared.SystemActor),
		ProcessingDate: salesDate(),
		CustomerID:     7,
		Items:          []trade.OrderItem{trade.NewSalesItem(4, 1, 2)},
	}
	order.ID = 4

	orders := new(mockSalesOrderRepo)
	orders.On("FindByID", mock.Anything, int64(4), mock.Anything).Return(order, nil)

	products := new(mockProductRepo)
	products.On("FindByIDs", mock.Anything, []int64{1}).
		Return(storedProducts("PALLET-EU"), nil)

	svc := newSalesOrderService(orders, products, new(mockCustomerRepo))

	dto := svc.Get(context.Background(), 4)

	assert.NotNil(t, dto)
	assert.Len(t, dto.Products, 1)
	assert.Equal(t, "PALLET-EU", dto.Products[0].Product.Code)
}

func TestSalesOrderUploadRequiresInput(t *testing.T) {
	svc := newSalesOrderService(new(mockSalesOrderRepo), new(mockProductRepo), new(mockCustomerRepo))

	res := svc.Upload(context.Background(), nil)

	assert.False(t, res.Success)
	assert.Equal(t, "No Sales Orders provided", res.Message)
}

func TestSalesOrderUploadDeduplicatesByCustomerName(t *testing.T) {
	products := new(mockProductRepo)
	products.On("FindByCodes", mock.Anything, mock.Anything).
		Return(storedProducts("PALLET-EU"), nil)

	customers := new(mockCustomerRepo)
	customers.On("FindByEmailFold", mock.Anything, "ghost@nowhere.example", mock.Anything).
		Return(nil, shared.ErrNotFound)

	existing := &trade.SalesOrder{
		Entity:         shared.NewEntity(shared.SystemActor),
		ProcessingDate: salesDate(),
		ShipmentAddress: &partner.Address{
			Entity: shared.NewEntity(shared.SystemActor),
			Street: "Old Street", City: "Bremen", State: "HB", Country: "DE", ZipCode: "28195",
		},
	}
	existing.ID = 9

	orders := new(mockSalesOrderRepo)
	orders.On("FindFirstByDateAndCustomerName", mock.Anything, salesDate(), "Ghost", mock.Anything).
		Return(existing, nil)
	orders.On("Update", mock.Anything, existing).Return(nil)

	svc := newSalesOrderService(orders, products, customers)

	req := validSalesOrderRequest()
	req.CustomerID = 0
	req.Customer = snapshotRequest("Ghost", "ghost@nowhere.example")

	res := svc.Upload(context.Background(), []SalesOrderRequest{req})

	assert.True(t, res.Success)
	assert.Equal(t, "Sales orders successfully uploaded", res.Message)
	assert.Equal(t, "Hamburg", existing.ShipmentAddress.City)
	assert.Len(t, existing.Items, 1)
	orders.AssertExpectations(t)
}

func TestSalesOrderUploadAttachesSnapshotForUnresolvedCustomer(t *testing.T) {
	products := new(mockProductRepo)
	products.On("FindByCodes", mock.Anything, mock.Anything).
		Return(storedProducts("PALLET-EU"), nil)

	customers := new(mockCustomerRepo)
	customers.On("FindByEmailFold", mock.Anything, "ghost@nowhere.example", mock.Anything).
		Return(nil, shared.ErrNotFound)

	var added *trade.SalesOrder
	orders := new(mockSalesOrderRepo)
	orders.On("FindFirstByDateAndCustomerName", mock.Anything, salesDate(), "Ghost", mock.Anything).
		Return(nil, shared.ErrNotFound)
	orders.On("Add", mock.Anything, mock.AnythingOfType("*trade.SalesOrder")).
		Run(func(args mock.Arguments) {
			added = args.Get(1).(*trade.SalesOrder)
		}).
		Return(nil)

	svc := newSalesOrderService(orders, products, customers)

	req := validSalesOrderRequest()
	req.CustomerID = 0
	req.Customer = snapshotRequest("Ghost", "ghost@nowhere.example")

	res := svc.Upload(context.Background(), []SalesOrderRequest{req})

	assert.True(t, res.Success)
	assert.NotNil(t, added.Customer)
	assert.Equal(t, "Ghost", added.Customer.Name)
	assert.NotNil(t, added.ShipmentAddress)
}

func TestSalesOrderUploadSkipsRecordWithoutCustomerReference(t *testing.T) {
	products := new(mockProductRepo)
	products.On("FindByCodes", mock.Anything, mock.Anything).
		Return(storedProducts("PALLET-EU"), nil)

	orders := new(mockSalesOrderRepo)
	svc := newSalesOrderService(orders, products, new(mockCustomerRepo))

	// neither an id nor a snapshot: the missing-reference rule survives the
	// customerId filter and the record is skipped with the batch succeeding
	req := validSalesOrderRequest()
	req.CustomerID = 0
	req.Customer = nil

	res := svc.Upload(context.Background(), []SalesOrderRequest{req})

	assert.True(t, res.Success)
	assert.Equal(t, "Sales orders successfully uploaded", res.Message)
	orders.AssertNotCalled(t, "Add")
	orders.AssertNotCalled(t, "Update")
	orders.AssertNotCalled(t, "FindFirstByDateAndCustomerName")
}
