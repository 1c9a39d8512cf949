package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/trade"
)

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
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Add(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
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
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindAll(ctx context.Context, loads ...shared.Load) ([]catalog.Product, error) {
	args := m.Called(ctx, loads)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepo) Add(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) DeleteByCode(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

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
	return args.Get(0).([]trade.PurchaseOrder), args.Error(1)
}

func (m *mockPurchaseOrderRepo) Add(ctx context.Context, order *trade.PurchaseOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockPurchaseOrderRepo) Update(ctx context.Context, order *trade.PurchaseOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockPurchaseOrderRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
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
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *mockSalesOrderRepo) Add(ctx context.Context, order *trade.SalesOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockSalesOrderRepo) Update(ctx context.Context, order *trade.SalesOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockSalesOrderRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
