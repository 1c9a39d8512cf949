package trade

import (
	"context"
	"errors"

	"go.uber.org/zap"

	partnerapp "github.com/wms/backend/internal/application/partner"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/trade"
)

// customerResolver turns the customer reference of an order request (an
// explicit id, an embedded snapshot, or both) into a customer id.
type customerResolver struct {
	customers partner.CustomerRepository
	logger    *zap.Logger
}

// resolve is the strict variant used by create and update. A missing or
// non-positive id falls back to matching the snapshot's email; a supplied
// id is verified and reset to zero when it matches no customer. The email
// fallback only runs when a snapshot is present, so an absent snapshot
// with no usable id resolves to zero rather than failing here.
func (r *customerResolver) resolve(ctx context.Context, customerID int64, snapshot *partnerapp.CustomerRequest) (int64, error) {
	if customerID <= 0 && snapshot != nil {
		found, err := r.customers.FindByEmailFold(ctx, snapshot.Email)
		if errors.Is(err, shared.ErrNotFound) {
			return customerID, nil
		}
		if err != nil {
			return 0, err
		}
		return found.ID, nil
	}

	r.logger.Info("customer id supplied", zap.Int64("customerId", customerID))
	if _, err := r.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return customerID, nil
}

// resolveLoose is the bulk-ingestion variant: explicit ids are trusted
// without an existence check and only the snapshot email fallback runs.
func (r *customerResolver) resolveLoose(ctx context.Context, customerID int64, snapshot *partnerapp.CustomerRequest) (int64, error) {
	if customerID <= 0 && snapshot != nil {
		found, err := r.customers.FindByEmailFold(ctx, snapshot.Email)
		if errors.Is(err, shared.ErrNotFound) {
			return customerID, nil
		}
		if err != nil {
			return 0, err
		}
		return found.ID, nil
	}
	return customerID, nil
}

// productIndex resolves order lines against the catalog by exact code.
type productIndex struct {
	byCode map[string]*catalog.Product
	byID   map[int64]*catalog.Product
}

func indexProducts(products []catalog.Product) productIndex {
	idx := productIndex{
		byCode: make(map[string]*catalog.Product, len(products)),
		byID:   make(map[int64]*catalog.Product, len(products)),
	}
	for i := range products {
		idx.byCode[products[i].Code] = &products[i]
		idx.byID[products[i].ID] = &products[i]
	}
	return idx
}

// collectCodes gathers the distinct product codes across order lines.
func collectCodes(lines []OrderItemRequest) []string {
	seen := make(map[string]struct{}, len(lines))
	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductCode]; ok {
			continue
		}
		seen[line.ProductCode] = struct{}{}
		codes = append(codes, line.ProductCode)
	}
	return codes
}

// buildItems maps request lines onto catalog products. Lines whose code
// matches no product are dropped without failing the order.
func buildItems(lines []OrderItemRequest, idx productIndex, newItem func(productID int64, quantity int) trade.OrderItem, logger *zap.Logger) []trade.OrderItem {
	items := make([]trade.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := idx.byCode[line.ProductCode]
		if !ok {
			logger.Info("order line skipped, unknown product", zap.String("code", line.ProductCode))
			continue
		}
		items = append(items, newItem(product.ID, line.Quantity))
	}
	return items
}

// hydrateItems re-attaches transient product views to line items before
// response mapping.
func hydrateItems(items []trade.OrderItem, idx productIndex) {
	for i := range items {
		items[i].Product = idx.byID[items[i].ProductID]
	}
}

// collectItemProductIDs gathers the distinct product ids referenced by
// already-persisted line items.
func collectItemProductIDs(items []trade.OrderItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
