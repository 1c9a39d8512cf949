package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id int64, loads ...shared.Load) (*catalog.Product, error) {
	var product catalog.Product
	if err := withLoads(r.db.WithContext(ctx), loads).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByCodeFold finds a product by the case-folded code business key.
func (r *GormProductRepository) FindByCodeFold(ctx context.Context, code string, loads ...shared.Load) (*catalog.Product, error) {
	var product catalog.Product
	if err := withLoads(r.db.WithContext(ctx), loads).
		Where("lower(code) = ?", strings.ToLower(code)).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByCodeFoldExcluding finds a product by code business key among rows
// other than excludeID. Used for collision checks on update.
func (r *GormProductRepository) FindByCodeFoldExcluding(ctx context.Context, code string, excludeID int64) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("lower(code) = ? AND id <> ?", strings.ToLower(code), excludeID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByCodes finds every product whose exact code appears in codes
func (r *GormProductRepository) FindByCodes(ctx context.Context, codes []string) ([]catalog.Product, error) {
	if len(codes) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("code IN ?", codes).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByIDs finds every product whose id appears in ids
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll finds all products
func (r *GormProductRepository) FindAll(ctx context.Context, loads ...shared.Load) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := withLoads(r.db.WithContext(ctx), loads).
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Add persists a new product together with its owned dimensions.
func (r *GormProductRepository) Add(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update persists changes to a product. The owned dimensions row is saved
// first so field-level merges land, then the product row itself.
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if product.Dimensions != nil {
			if err := tx.Save(product.Dimensions).Error; err != nil {
				return err
			}
			product.DimensionsID = product.Dimensions.ID
		}
		return tx.Omit(clause.Associations).Save(product).Error
	})
}

// Delete soft-deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByCode soft-deletes the product matching the case-folded code
func (r *GormProductRepository) DeleteByCode(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).
		Where("lower(code) = ?", strings.ToLower(code)).
		Delete(&catalog.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
