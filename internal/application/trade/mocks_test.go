package trade

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/trade"
)

type mockPurchaseOrderRepo struct {
	mock.Mock
}

func (m *mockPurchaseOrderRepo) FindByID(ctx context.Context, id int64, loads ...shared.Load) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, id, loads)
	if o := args.Get(0); o != nil {
		return o.(*trade.PurchaseOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPurchaseOrderRepo) FindFirstByBusinessKey(ctx context.Context, processingDate time.Time, customerID int64, loads ...shared.Load) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, processingDate, customerID, loads)
	if o := args.Get(0); o != nil {
		return o.(*trade.PurchaseOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPurchaseOrderRepo) FindFirstByDateAndEmail(ctx context.Context, processingDate time.Time, email string, loads ...shared.Load) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, processingDate, email, loads)
	if o := args.Get(0); o != nil {
		return o.(*trade.PurchaseOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPurchaseOrderRepo) FindAll(ctx context.Context, loads ...shared.Load) ([]trade.PurchaseOrder, error) {
	args := m.Called(ctx, loads)
	if o := args.Get(0); o != nil {
		return o.([]trade.PurchaseOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPurchaseOrderRepo) Add(ctx context.Context, order *trade.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockPurchaseOrderRepo) Update(ctx context.Context, order *trade.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockPurchaseOrderRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockSalesOrderRepo struct {
	mock.Mock
}

func (m *mockSalesOrderRepo) FindByID(ctx context.Context, id int64, loads ...shared.Load) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id, loads)
	if o := args.Get(0); o != nil {
		return o.(*trade.SalesOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSalesOrderRepo) FindFirstByBusinessKey(ctx context.Context, processingDate time.Time, customerID int64, loads ...shared.Load) (*trade.SalesOrder, error) {
	args := m.Called(ctx, processingDate, customerID, loads)
	if o := args.Get(0); o != nil {
		return o.(*trade.SalesOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSalesOrderRepo) FindFirstByDateAndCustomerName(ctx context.Context, processingDate time.Time, name string, loads ...shared.Load) (*trade.SalesOrder, error) {
	args := m.Called(ctx, processingDate, name, loads)
	if o := args.Get(0); o != nil {
		return o.(*trade.SalesOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSalesOrderRepo) FindAll(ctx context.Context, loads ...shared.Load) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, loads)
	if o := args.Get(0); o != nil {
		return o.([]trade.SalesOrder), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSalesOrderRepo) Add(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockSalesOrderRepo) Update(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockSalesOrderRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) FindByID(ctx context.Context, id int64, loads ...shared.Load) (*catalog.Product, error) {
	args := m.Called(ctx, id, loads)
	if p := args.Get(0); p != nil {
		return p.(*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindByCodeFold(ctx context.Context, code string, loads ...shared.Load) (*catalog.Product, error) {
	args := m.Called(ctx, code, loads)
	if p := args.Get(0); p != nil {
		return p.(*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindByCodeFoldExcluding(ctx context.Context, code string, excludeID int64) (*catalog.Product, error) {
	args := m.Called(ctx, code, excludeID)
	if p := args.Get(0); p != nil {
		return p.(*catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindByCodes(ctx context.Context, codes []string) ([]catalog.Product, error) {
	args := m.Called(ctx, codes)
	if p := args.Get(0); p != nil {
		return p.([]catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if p := args.Get(0); p != nil {
		return p.([]catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) FindAll(ctx context.Context, loads ...shared.Load) ([]catalog.Product, error) {
	args := m.Called(ctx, loads)
	if p := args.Get(0); p != nil {
		return p.([]catalog.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Add(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepo) DeleteByCode(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id int64, loads ...shared.Load) (*partner.Customer, error) {
	args := m.Called(ctx, id, loads)
	if c := args.Get(0); c != nil {
		return c.(*partner.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomerRepo) FindByEmailFold(ctx context.Context, email string, loads ...shared.Load) (*partner.Customer, error) {
	args := m.Called(ctx, email, loads)
	if c := args.Get(0); c != nil {
		return c.(*partner.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomerRepo) FindByEmailFoldExcluding(ctx context.Context, email string, excludeID int64) (*partner.Customer, error) {
	args := m.Called(ctx, email, excludeID)
	if c := args.Get(0); c != nil {
		return c.(*partner.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomerRepo) FindAll(ctx context.Context, loads ...shared.Load) ([]partner.Customer, error) {
	args := m.Called(ctx, loads)
	if c := args.Get(0); c != nil {
		return c.([]partner.Customer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomerRepo) Add(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func storedCustomer(id int64, name, email string) *partner.Customer {
	c := &partner.Customer{
		Entity: shared.NewEntity(shared.SystemActor),
		Name:   name,
		Email:  email,
	}
	c.ID = id
	return c
}

func storedProducts(codes ...string) []catalog.Product {
	products := make([]catalog.Product, len(codes))
	for i, code := range codes {
		products[i] = catalog.Product{
			Entity: shared.NewEntity(shared.SystemActor),
			Code:   code,
			Title:  code,
		}
		products[i].ID = int64(i + 1)
	}
	return products
}
