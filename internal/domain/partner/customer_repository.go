package partner

import (
	"context"

	"github.com/wms/backend/internal/domain/shared"
)

// CustomerRepository defines the persistence contract for customers.
// Find methods return shared.ErrNotFound when no row matches.
type CustomerRepository interface {
	FindByID(ctx context.Context, id int64, loads ...shared.Load) (*Customer, error)
	// FindByEmailFold matches the trimmed, case-folded email business key.
	FindByEmailFold(ctx context.Context, email string, loads ...shared.Load) (*Customer, error)
	// FindByEmailFoldExcluding is FindByEmailFold restricted to rows other
	// than excludeID, used for collision checks on update.
	FindByEmailFoldExcluding(ctx context.Context, email string, excludeID int64) (*Customer, error)
	FindAll(ctx context.Context, loads ...shared.Load) ([]Customer, error)
	Add(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id int64) error
}
