package catalog

import (
	"context"

	"github.com/wms/backend/internal/domain/shared"
)

// ProductRepository defines the persistence contract for the product
// catalog. Find methods return shared.ErrNotFound when no row matches.
type ProductRepository interface {
	FindByID(ctx context.Context, id int64, loads ...shared.Load) (*Product, error)
	// FindByCodeFold matches the case-folded product code business key.
	FindByCodeFold(ctx context.Context, code string, loads ...shared.Load) (*Product, error)
	// FindByCodeFoldExcluding is FindByCodeFold restricted to rows other
	// than excludeID, used for collision checks on update.
	FindByCodeFoldExcluding(ctx context.Context, code string, excludeID int64) (*Product, error)
	// FindByCodes fetches every product whose exact code appears in codes.
	// Used to prefetch order-line candidates in one round trip.
	FindByCodes(ctx context.Context, codes []string) ([]Product, error)
	// FindByIDs fetches every product whose id appears in ids.
	FindByIDs(ctx context.Context, ids []int64) ([]Product, error)
	FindAll(ctx context.Context, loads ...shared.Load) ([]Product, error)
	Add(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
	// DeleteByCode removes the product matching the case-folded code.
	DeleteByCode(ctx context.Context, code string) error
}
