package trade

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/wms/backend/internal/application/validation"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/trade"
)

// SalesOrderService implements the outbound-order use cases: CRUD plus
// the bulk upsert used by file ingestion. Unlike purchase orders, sales
// orders carry a dedicated shipment address and deduplicate loosely by
// customer name during ingestion.
type SalesOrderService struct {
	orders    trade.SalesOrderRepository
	products  catalog.ProductRepository
	resolver  customerResolver
	validator *validation.Validator
	logger    *zap.Logger
}

// NewSalesOrderService creates a SalesOrderService.
func NewSalesOrderService(
	orders trade.SalesOrderRepository,
	products catalog.ProductRepository,
	customers partner.CustomerRepository,
	validator *validation.Validator,
	logger *zap.Logger,
) *SalesOrderService {
	return &SalesOrderService{
		orders:    orders,
		products:  products,
		resolver:  customerResolver{customers: customers, logger: logger},
		validator: validator,
		logger:    logger,
	}
}

// Create validates the request, resolves its customer reference and
// inserts a new order with its shipment address unless one already exists
// for the same processing date and customer.
func (s *SalesOrderService) Create(ctx context.Context, req SalesOrderRequest) shared.Result[SalesOrderDTO] {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		msg := validation.Join(errs)
		s.logger.Error("sales order create validation failed", zap.String("error", msg))
		return shared.Fail[SalesOrderDTO](msg)
	}

	customerID, err := s.resolver.resolve(ctx, req.CustomerID, req.Customer)
	if err != nil {
		s.logger.Error("sales order customer resolution failed", zap.Error(err))
		return shared.Fail[SalesOrderDTO](unexpected(err))
	}
	if customerID <= 0 && req.Customer != nil {
		s.logger.Error("sales order create rejected", zap.String("error", msgInvalidCustomer))
		return shared.Fail[SalesOrderDTO](msgInvalidCustomer)
	}

	existing, err := s.orders.FindFirstByBusinessKey(ctx, req.ProcessingDate, customerID, shared.LoadCustomer, shared.LoadItems)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("sales order create lookup failed", zap.Error(err))
		return shared.Fail[SalesOrderDTO](unexpected(err))
	}
	if existing != nil {
		s.logger.Info("sales order already exists",
			zap.Time("processingDate", req.ProcessingDate), zap.Int64("customerId", customerID))
		return shared.Fail[SalesOrderDTO](duplicateOrder(req.ProcessingDate))
	}

	idx, err := s.prefetchByCodes(ctx, req.Products)
	if err != nil {
		return shared.Fail[SalesOrderDTO](unexpected(err))
	}

	order := &trade.SalesOrder{
		Entity:         shared.NewEntity(shared.SystemActor),
		ProcessingDate: req.ProcessingDate,
		CustomerID:     customerID,
		Items: buildItems(req.Products, idx, func(productID int64, quantity int) trade.OrderItem {
			return trade.NewSalesItem(0, productID, quantity)
		}, s.logger),
	}
	if req.ShipmentAddress != nil {
		order.ShipmentAddress = req.ShipmentAddress.ToEntity(shared.SystemActor)
	}
	if err := s.orders.Add(ctx, order); err != nil {
		s.logger.Error("sales order create failed", zap.Error(err))
		return shared.Fail[SalesOrderDTO](unexpected(err))
	}
	s.logger.Info("sales order created", zap.Int64("orderId", order.ID))

	hydrateItems(order.Items, idx)
	dto := ToSalesOrderDTO(order)
	return shared.OK("Sales Order successfully created", &dto)
}

// Update validates the request, resolves the customer strictly and
// replaces the order's lines, customer link and shipment address fields.
// A missing order yields a bare failed result.
func (s *SalesOrderService) Update(ctx context.Context, id int64, req SalesOrderRequest) shared.Result[SalesOrderDTO] {
	if id <= 0 {
		s.logger.Error("sales order update rejected", zap.String("error", msgIDRequired))
		return shared.Fail[SalesOrderDTO](msgIDRequired)
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		msg := validation.Join(errs)
		s.logger.Error("sales order update validation failed", zap.Int64("orderId", id), zap.String("error", msg))
		return shared.Fail[SalesOrderDTO](msg)
	}

	customerID, err := s.resolver.resolve(ctx, req.CustomerID, req.Customer)
	if err != nil {
		s.logger.Error("sales order customer resolution failed", zap.Error(err))
		return shared.Fail[SalesOrderDTO](unexpected(err))
	}
	if customerID <= 0 {
		s.logger.Error("sales order update rejected", zap.String("error", msgInvalidCustomer))
		return shared.Fail[SalesOrderDTO](msgInvalidCustomer)
	}

	idx, err := s.prefetchByCodes(ctx, req.Products)
	if err != nil {
		return shared.Fail[SalesOrderDTO](unexpected(err))
	}

	existing, err := s.orders.FindByID(ctx, id, shared.LoadCustomer, shared.LoadShipmentAddress, shared.LoadItems)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Info("sales order not found, nothing to update", zap.Int64("orderId", id))
		return shared.Fail[SalesOrderDTO]("")
	}
	if err != nil {
		s.logger.Error("sales order update lookup failed", zap.Int64("orderId", id), zap.Error(err))
		return shared.Fail[SalesOrderDTO](unexpected(err))
	}

	existing.ReplaceItems(buildItems(req.Products, idx, func(productID int64, quantity int) trade.OrderItem {
		return trade.NewSalesItem(existing.ID, productID, quantity)
	}, s.logger))
	existing.CustomerID = customerID
	if req.ShipmentAddress != nil {
		existing.MergeShipmentAddress(req.ShipmentAddress.ToEntity(shared.SystemActor))
	}
	if err := s.orders.Update(ctx, existing); err != nil {
		s.logger.Error("sales order update failed", zap.Int64("orderId", id), zap.Error(err))
		return shared.Fail[SalesOrderDTO](unexpected(err))
	}
	s.logger.Info("sales order updated", zap.Int64("orderId", existing.ID))

	hydrateItems(existing.Items, idx)
	dto := ToSalesOrderDTO(existing)
	return shared.OK("SalesOrder successfully updated", &dto)
}

// Get returns an order with shipment address, customer and hydrated
// lines, or nil when the id is invalid, unknown, or a lookup fails.
func (s *SalesOrderService) Get(ctx context.Context, id int64) *SalesOrderDTO {
	if id <= 0 {
		s.logger.Error("sales order get rejected", zap.String("error", msgIDRequired))
		return nil
	}
	entity, err := s.orders.FindByID(ctx, id, shared.LoadShipmentAddress, shared.LoadCustomerAddress, shared.LoadItems)
	if err != nil {
		s.logger.Error("sales order get failed", zap.Int64("orderId", id), zap.Error(err))
		return nil
	}
	idx, err := s.prefetchByIDs(ctx, entity.Items)
	if err != nil {
		return nil
	}
	hydrateItems(entity.Items, idx)
	dto := ToSalesOrderDTO(entity)
	return &dto
}

// GetAll returns every order with hydrated lines. Failures yield an empty
// list.
func (s *SalesOrderService) GetAll(ctx context.Context) []SalesOrderDTO {
	entities, err := s.orders.FindAll(ctx, shared.LoadShipmentAddress, shared.LoadCustomerAddress, shared.LoadItems)
	if err != nil {
		s.logger.Error("sales order list failed", zap.Error(err))
		return []SalesOrderDTO{}
	}

	var items []trade.OrderItem
	for _, entity := range entities {
		items = append(items, entity.Items...)
	}
	idx, err := s.prefetchByIDs(ctx, items)
	if err != nil {
		return []SalesOrderDTO{}
	}

	dtos := make([]SalesOrderDTO, len(entities))
	for i := range entities {
		hydrateItems(entities[i].Items, idx)
		dtos[i] = ToSalesOrderDTO(&entities[i])
	}
	return dtos
}

// Delete removes an order and its lines. Invalid ids and repository
// failures produce a bare failed status.
func (s *SalesOrderService) Delete(ctx context.Context, id int64) shared.Status {
	if id <= 0 {
		s.logger.Error("sales order delete rejected", zap.String("error", msgIDRequired))
		return shared.Status{}
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		s.logger.Error("sales order delete failed", zap.Int64("orderId", id), zap.Error(err))
		return shared.Status{}
	}
	return shared.OKStatus(msgRecordDeleted)
}

// Upload upserts a batch of orders. Customer reference failures are
// filtered out and resolved per record; orders whose customer cannot be
// linked are deduplicated loosely by processing date and snapshot name,
// and persisted with the snapshot attached.
func (s *SalesOrderService) Upload(ctx context.Context, orders []SalesOrderRequest) shared.Status {
	if len(orders) == 0 {
		s.logger.Error("sales order upload rejected", zap.String("error", "No Sales Orders provided"))
		return shared.FailStatus("No Sales Orders provided")
	}

	var lines []OrderItemRequest
	for _, req := range orders {
		lines = append(lines, req.Products...)
	}
	idx, err := s.prefetchByCodes(ctx, lines)
	if err != nil {
		return shared.FailStatus(unexpected(err))
	}

	for _, req := range orders {
		errs := validation.DropField(s.validator.Validate(req), FieldCustomerID)
		if len(errs) > 0 {
			s.logger.Error("sales order upload record invalid", zap.String("error", validation.Join(errs)))
			continue
		}
		if err := s.upsert(ctx, req, idx); err != nil {
			s.logger.Error("sales order upload failed", zap.Error(err))
			return shared.FailStatus(unexpected(err))
		}
	}
	return shared.OKStatus("Sales orders successfully uploaded")
}

func (s *SalesOrderService) upsert(ctx context.Context, req SalesOrderRequest, idx productIndex) error {
	customerID, err := s.resolver.resolveLoose(ctx, req.CustomerID, req.Customer)
	if err != nil {
		return err
	}

	var existing *trade.SalesOrder
	if customerID > 0 {
		existing, err = s.orders.FindFirstByBusinessKey(ctx, req.ProcessingDate, customerID,
			shared.LoadCustomer, shared.LoadShipmentAddress, shared.LoadItems)
	} else {
		var name string
		if req.Customer != nil {
			name = req.Customer.Name
		}
		existing, err = s.orders.FindFirstByDateAndCustomerName(ctx, req.ProcessingDate, name,
			shared.LoadCustomer, shared.LoadShipmentAddress, shared.LoadItems)
	}
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	if existing != nil {
		s.logger.Info("sales order upload updating", zap.Int64("orderId", existing.ID))
		if req.ShipmentAddress != nil {
			existing.MergeShipmentAddress(req.ShipmentAddress.ToEntity(shared.SystemActor))
		}
		existing.ReplaceItems(buildItems(req.Products, idx, func(productID int64, quantity int) trade.OrderItem {
			return trade.NewSalesItem(existing.ID, productID, quantity)
		}, s.logger))
		return s.orders.Update(ctx, existing)
	}

	s.logger.Info("sales order upload adding", zap.Time("processingDate", req.ProcessingDate))
	order := &trade.SalesOrder{
		Entity:         shared.NewEntity(shared.SystemActor),
		ProcessingDate: req.ProcessingDate,
		CustomerID:     customerID,
		Items: buildItems(req.Products, idx, func(productID int64, quantity int) trade.OrderItem {
			return trade.NewSalesItem(0, productID, quantity)
		}, s.logger),
	}
	if customerID <= 0 && req.Customer != nil {
		order.Customer = req.Customer.ToEntity(shared.SystemActor)
	}
	if req.ShipmentAddress != nil {
		order.ShipmentAddress = req.ShipmentAddress.ToEntity(shared.SystemActor)
	}
	return s.orders.Add(ctx, order)
}

func (s *SalesOrderService) prefetchByCodes(ctx context.Context, lines []OrderItemRequest) (productIndex, error) {
	products, err := s.products.FindByCodes(ctx, collectCodes(lines))
	if err != nil {
		s.logger.Error("product prefetch failed", zap.Error(err))
		return productIndex{}, err
	}
	return indexProducts(products), nil
}

func (s *SalesOrderService) prefetchByIDs(ctx context.Context, items []trade.OrderItem) (productIndex, error) {
	products, err := s.products.FindByIDs(ctx, collectItemProductIDs(items))
	if err != nil {
		s.logger.Error("product prefetch failed", zap.Error(err))
		return productIndex{}, err
	}
	return indexProducts(products), nil
}
