package persistence

import (
	"context"
	"errors"

	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id int64, loads ...shared.Load) (*partner.Customer, error) {
	var customer partner.Customer
	if err := withLoads(r.db.WithContext(ctx), loads).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByEmailFold finds a customer by the trimmed, case-folded email
// business key. The stored side is trimmed too so rows persisted with
// surrounding whitespace still match.
func (r *GormCustomerRepository) FindByEmailFold(ctx context.Context, email string, loads ...shared.Load) (*partner.Customer, error) {
	var customer partner.Customer
	if err := withLoads(r.db.WithContext(ctx), loads).
		Where("lower(btrim(email)) = ?", partner.NormalizeEmail(email)).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByEmailFoldExcluding finds a customer by email business key among
// rows other than excludeID. Used for collision checks on update.
func (r *GormCustomerRepository) FindByEmailFoldExcluding(ctx context.Context, email string, excludeID int64) (*partner.Customer, error) {
	var customer partner.Customer
	if err := r.db.WithContext(ctx).
		Where("lower(btrim(email)) = ? AND id <> ?", partner.NormalizeEmail(email), excludeID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll finds all customers
func (r *GormCustomerRepository) FindAll(ctx context.Context, loads ...shared.Load) ([]partner.Customer, error) {
	var customers []partner.Customer
	if err := withLoads(r.db.WithContext(ctx), loads).
		Order("id ASC").
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Add persists a new customer together with its owned address.
func (r *GormCustomerRepository) Add(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// Update persists changes to a customer. The owned address row is saved
// first so field-level merges land, then the customer row itself.
func (r *GormCustomerRepository) Update(ctx context.Context, customer *partner.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if customer.Address != nil {
			if err := tx.Save(customer.Address).Error; err != nil {
				return err
			}
			customer.AddressID = customer.Address.ID
		}
		return tx.Omit(clause.Associations).Save(customer).Error
	})
}

// Delete soft-deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&partner.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
