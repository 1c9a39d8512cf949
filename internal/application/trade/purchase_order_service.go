package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wms/backend/internal/application/validation"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/trade"
)

const (
	msgIDRequired      = "Id is required"
	msgInvalidCustomer = "Please provide a valid customer"
	msgRecordDeleted   = "Record successfully deleted"
)

func unexpected(err error) string {
	return fmt.Sprintf("An unexpected error occurred. Error:%v", err)
}

func duplicateOrder(processingDate time.Time) string {
	return fmt.Sprintf("Order already exists in system with ProcessingDate:%s and supplied customer. So not creating again",
		processingDate.Format(time.RFC3339))
}

// processingDateOrNow defaults a missing processing date to the current
// instant.
func processingDateOrNow(d *time.Time) time.Time {
	if d != nil {
		return *d
	}
	return time.Now().UTC()
}

// PurchaseOrderService implements the inbound-order use cases: CRUD plus
// the bulk upsert used by file ingestion.
type PurchaseOrderService struct {
	orders    trade.PurchaseOrderRepository
	products  catalog.ProductRepository
	resolver  customerResolver
	validator *validation.Validator
	logger    *zap.Logger
}

// NewPurchaseOrderService creates a PurchaseOrderService.
func NewPurchaseOrderService(
	orders trade.PurchaseOrderRepository,
	products catalog.ProductRepository,
	customers partner.CustomerRepository,
	validator *validation.Validator,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orders:    orders,
		products:  products,
		resolver:  customerResolver{customers: customers, logger: logger},
		validator: validator,
		logger:    logger,
	}
}

// Create validates the request, resolves its customer reference and
// inserts a new order unless one already exists for the same processing
// date and customer. Lines referencing unknown product codes are dropped.
func (s *PurchaseOrderService) Create(ctx context.Context, req PurchaseOrderRequest) shared.Result[PurchaseOrderDTO] {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		msg := validation.Join(errs)
		s.logger.Error("purchase order create validation failed", zap.String("error", msg))
		return shared.Fail[PurchaseOrderDTO](msg)
	}

	customerID, err := s.resolver.resolve(ctx, int64Value(req.CustomerID), req.Customer)
	if err != nil {
		s.logger.Error("purchase order customer resolution failed", zap.Error(err))
		return shared.Fail[PurchaseOrderDTO](unexpected(err))
	}
	if customerID <= 0 && req.Customer != nil {
		s.logger.Error("purchase order create rejected", zap.String("error", msgInvalidCustomer))
		return shared.Fail[PurchaseOrderDTO](msgInvalidCustomer)
	}

	processingDate := processingDateOrNow(req.ProcessingDate)
	existing, err := s.orders.FindFirstByBusinessKey(ctx, processingDate, customerID, shared.LoadCustomer, shared.LoadItems)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("purchase order create lookup failed", zap.Error(err))
		return shared.Fail[PurchaseOrderDTO](unexpected(err))
	}
	if existing != nil {
		s.logger.Info("purchase order already exists",
			zap.Time("processingDate", processingDate), zap.Int64("customerId", customerID))
		return shared.Fail[PurchaseOrderDTO](duplicateOrder(processingDate))
	}

	idx, err := s.prefetchByCodes(ctx, req.Products)
	if err != nil {
		return shared.Fail[PurchaseOrderDTO](unexpected(err))
	}

	order := &trade.PurchaseOrder{
		Entity:         shared.NewEntity(shared.SystemActor),
		ProcessingDate: processingDate,
		CustomerID:     customerID,
		Items: buildItems(req.Products, idx, func(productID int64, quantity int) trade.OrderItem {
			return trade.NewPurchaseItem(0, productID, quantity)
		}, s.logger),
	}
	if err := s.orders.Add(ctx, order); err != nil {
		s.logger.Error("purchase order create failed", zap.Error(err))
		return shared.Fail[PurchaseOrderDTO](unexpected(err))
	}
	s.logger.Info("purchase order created", zap.Int64("orderId", order.ID))

	hydrateItems(order.Items, idx)
	dto := ToPurchaseOrderDTO(order)
	return shared.OK("Purchase Order successfully created", &dto)
}

// Update validates the request, resolves the customer strictly and
// replaces the order's lines and customer link. A missing order yields a
// bare failed result.
func (s *PurchaseOrderService) Update(ctx context.Context, id int64, req PurchaseOrderRequest) shared.Result[PurchaseOrderDTO] {
	if id <= 0 {
		s.logger.Error("purchase order update rejected", zap.String("error", msgIDRequired))
		return shared.Fail[PurchaseOrderDTO](msgIDRequired)
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		msg := validation.Join(errs)
		s.logger.Error("purchase order update validation failed", zap.Int64("orderId", id), zap.String("error", msg))
		return shared.Fail[PurchaseOrderDTO](msg)
	}

	customerID, err := s.resolver.resolve(ctx, int64Value(req.CustomerID), req.Customer)
	if err != nil {
		s.logger.Error("purchase order customer resolution failed", zap.Error(err))
		return shared.Fail[PurchaseOrderDTO](unexpected(err))
	}
	if customerID <= 0 {
		s.logger.Error("purchase order update rejected", zap.String("error", msgInvalidCustomer))
		return shared.Fail[PurchaseOrderDTO](msgInvalidCustomer)
	}

	idx, err := s.prefetchByCodes(ctx, req.Products)
	if err != nil {
		return shared.Fail[PurchaseOrderDTO](unexpected(err))
	}

	existing, err := s.orders.FindByID(ctx, id, shared.LoadCustomer, shared.LoadItems)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Info("purchase order not found, nothing to update", zap.Int64("orderId", id))
		return shared.Fail[PurchaseOrderDTO]("")
	}
	if err != nil {
		s.logger.Error("purchase order update lookup failed", zap.Int64("orderId", id), zap.Error(err))
		return shared.Fail[PurchaseOrderDTO](unexpected(err))
	}

	existing.ReplaceItems(buildItems(req.Products, idx, func(productID int64, quantity int) trade.OrderItem {
		return trade.NewPurchaseItem(existing.ID, productID, quantity)
	}, s.logger))
	existing.CustomerID = customerID
	if err := s.orders.Update(ctx, existing); err != nil {
		s.logger.Error("purchase order update failed", zap.Int64("orderId", id), zap.Error(err))
		return shared.Fail[PurchaseOrderDTO](unexpected(err))
	}
	s.logger.Info("purchase order updated", zap.Int64("orderId", existing.ID))

	hydrateItems(existing.Items, idx)
	dto := ToPurchaseOrderDTO(existing)
	return shared.OK("PurchaseOrder successfully updated", &dto)
}

// Get returns an order with its customer, address and hydrated lines, or
// nil when the id is invalid, unknown, or a lookup fails.
func (s *PurchaseOrderService) Get(ctx context.Context, id int64) *PurchaseOrderDTO {
	if id <= 0 {
		s.logger.Error("purchase order get rejected", zap.String("error", msgIDRequired))
		return nil
	}
	entity, err := s.orders.FindByID(ctx, id, shared.LoadCustomerAddress, shared.LoadItems)
	if err != nil {
		s.logger.Error("purchase order get failed", zap.Int64("orderId", id), zap.Error(err))
		return nil
	}
	idx, err := s.prefetchByIDs(ctx, entity.Items)
	if err != nil {
		return nil
	}
	hydrateItems(entity.Items, idx)
	dto := ToPurchaseOrderDTO(entity)
	return &dto
}

// GetAll returns every order with hydrated lines. Failures yield an empty
// list.
func (s *PurchaseOrderService) GetAll(ctx context.Context) []PurchaseOrderDTO {
	entities, err := s.orders.FindAll(ctx, shared.LoadCustomerAddress, shared.LoadItems)
	if err != nil {
		s.logger.Error("purchase order list failed", zap.Error(err))
		return []PurchaseOrderDTO{}
	}

	var items []trade.OrderItem
	for _, entity := range entities {
		items = append(items, entity.Items...)
	}
	idx, err := s.prefetchByIDs(ctx, items)
	if err != nil {
		return []PurchaseOrderDTO{}
	}

	dtos := make([]PurchaseOrderDTO, len(entities))
	for i := range entities {
		hydrateItems(entities[i].Items, idx)
		dtos[i] = ToPurchaseOrderDTO(&entities[i])
	}
	return dtos
}

// Delete removes an order and its lines. Invalid ids and repository
// failures produce a bare failed status.
func (s *PurchaseOrderService) Delete(ctx context.Context, id int64) shared.Status {
	if id <= 0 {
		s.logger.Error("purchase order delete rejected", zap.String("error", msgIDRequired))
		return shared.Status{}
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		s.logger.Error("purchase order delete failed", zap.Int64("orderId", id), zap.Error(err))
		return shared.Status{}
	}
	return shared.OKStatus(msgRecordDeleted)
}

// Upload upserts a batch of orders. Customer reference failures are
// filtered out and resolved per record; orders whose customer cannot be
// linked are deduplicated loosely by processing date and snapshot email,
// and persisted with the snapshot attached. Records failing the remaining
// validation are skipped; a non-empty batch reports success once every
// record has been attempted.
func (s *PurchaseOrderService) Upload(ctx context.Context, orders []PurchaseOrderRequest) shared.Status {
	if len(orders) == 0 {
		s.logger.Error("purchase order upload rejected", zap.String("error", "Request is empty"))
		return shared.FailStatus("Request is empty")
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
			s.logger.Error("purchase order upload record invalid", zap.String("error", validation.Join(errs)))
			continue
		}
		if err := s.upsert(ctx, req, idx); err != nil {
			s.logger.Error("purchase order upload failed", zap.Error(err))
			return shared.FailStatus(unexpected(err))
		}
	}
	return shared.OKStatus("Purchase orders successfully uploaded")
}

func (s *PurchaseOrderService) upsert(ctx context.Context, req PurchaseOrderRequest, idx productIndex) error {
	customerID, err := s.resolver.resolveLoose(ctx, int64Value(req.CustomerID), req.Customer)
	if err != nil {
		return err
	}

	processingDate := processingDateOrNow(req.ProcessingDate)
	var existing *trade.PurchaseOrder
	if customerID > 0 {
		existing, err = s.orders.FindFirstByBusinessKey(ctx, processingDate, customerID, shared.LoadCustomer, shared.LoadItems)
	} else {
		var email string
		if req.Customer != nil {
			email = req.Customer.Email
		}
		existing, err = s.orders.FindFirstByDateAndEmail(ctx, processingDate, email, shared.LoadCustomer, shared.LoadItems)
	}
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	if existing != nil {
		s.logger.Info("purchase order upload updating", zap.Int64("orderId", existing.ID))
		existing.ReplaceItems(buildItems(req.Products, idx, func(productID int64, quantity int) trade.OrderItem {
			return trade.NewPurchaseItem(existing.ID, productID, quantity)
		}, s.logger))
		return s.orders.Update(ctx, existing)
	}

	s.logger.Info("purchase order upload adding", zap.Time("processingDate", processingDate))
	order := &trade.PurchaseOrder{
		Entity:         shared.NewEntity(shared.SystemActor),
		ProcessingDate: processingDate,
		CustomerID:     customerID,
		Items: buildItems(req.Products, idx, func(productID int64, quantity int) trade.OrderItem {
			return trade.NewPurchaseItem(0, productID, quantity)
		}, s.logger),
	}
	if customerID <= 0 && req.Customer != nil {
		order.Customer = req.Customer.ToEntity(shared.SystemActor)
	}
	return s.orders.Add(ctx, order)
}

func (s *PurchaseOrderService) prefetchByCodes(ctx context.Context, lines []OrderItemRequest) (productIndex, error) {
	products, err := s.products.FindByCodes(ctx, collectCodes(lines))
	if err != nil {
		s.logger.Error("product prefetch failed", zap.Error(err))
		return productIndex{}, err
	}
	return indexProducts(products), nil
}

func (s *PurchaseOrderService) prefetchByIDs(ctx context.Context, items []trade.OrderItem) (productIndex, error) {
	products, err := s.products.FindByIDs(ctx, collectItemProductIDs(items))
	if err != nil {
		s.logger.Error("product prefetch failed", zap.Error(err))
		return productIndex{}, err
	}
	return indexProducts(products), nil
}

func int64Value(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
