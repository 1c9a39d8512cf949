package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/application/validation"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

const (
	msgIDRequired       = "Id is required"
	msgProductCreated   = "Product successfully created"
	msgProductUpdated   = "Product successfully updated"
	msgRecordDeleted    = "Record successfully deleted"
	msgNoProducts       = "No products to upload"
	msgProductsUploaded = "Products successfully uploaded"
)

func unexpected(err error) string {
	return fmt.Sprintf("An unexpected error occurred. Error:%v", err)
}

func duplicateCode(code string) string {
	return fmt.Sprintf("Product with Code:%s already exists", code)
}

// ProductCache is a read-through cache of products keyed by code. A nil
// cache disables caching without changing service behavior.
type ProductCache interface {
	Get(ctx context.Context, code string) (*ProductDTO, bool)
	Set(ctx context.Context, code string, product ProductDTO)
	Invalidate(ctx context.Context, codes ...string)
}

// ProductService implements the catalog use cases: CRUD, code lookups and
// the bulk upsert used by file ingestion.
type ProductService struct {
	repo      catalog.ProductRepository
	cache     ProductCache
	validator *validation.Validator
	logger    *zap.Logger
}

// NewProductService creates a ProductService. cache may be nil.
func NewProductService(repo catalog.ProductRepository, cache ProductCache, validator *validation.Validator, logger *zap.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, validator: validator, logger: logger}
}

// Create validates the request and inserts a new product. Codes are a
// case-insensitive business key; a collision fails the operation.
func (s *ProductService) Create(ctx context.Context, req ProductRequest) shared.Result[ProductDTO] {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		msg := validation.Join(errs)
		s.logger.Error("product create validation failed", zap.String("error", msg))
		return shared.Fail[ProductDTO](msg)
	}

	existing, err := s.repo.FindByCodeFold(ctx, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("product create lookup failed", zap.Error(err))
		return shared.Fail[ProductDTO](unexpected(err))
	}
	if existing != nil {
		s.logger.Error("product code already taken", zap.String("code", req.Code))
		return shared.Fail[ProductDTO](duplicateCode(req.Code))
	}

	entity := req.ToEntity(shared.SystemActor)
	if err := s.repo.Add(ctx, entity); err != nil {
		s.logger.Error("product create failed", zap.Error(err))
		return shared.Fail[ProductDTO](unexpected(err))
	}
	s.logger.Info("product created", zap.Int64("productId", entity.ID), zap.String("code", entity.Code))

	dto := ToProductDTO(entity)
	return shared.OK(msgProductCreated, &dto)
}

// Update validates the request and applies it to an existing product. The
// code, title and description are replaced; dimensions are merged field by
// field when both sides have them.
func (s *ProductService) Update(ctx context.Context, id int64, req ProductRequest) shared.Result[ProductDTO] {
	if id <= 0 {
		s.logger.Error("product update rejected", zap.String("error", msgIDRequired))
		return shared.Fail[ProductDTO](msgIDRequired)
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		msg := validation.Join(errs)
		s.logger.Error("product update validation failed", zap.Int64("productId", id), zap.String("error", msg))
		return shared.Fail[ProductDTO](msg)
	}

	existing, err := s.repo.FindByID(ctx, id, shared.LoadDimensions)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("product not found", zap.Int64("productId", id))
		return shared.Fail[ProductDTO](fmt.Sprintf("Record does not exist with Id:%d", id))
	}
	if err != nil {
		s.logger.Error("product update lookup failed", zap.Int64("productId", id), zap.Error(err))
		return shared.Fail[ProductDTO](unexpected(err))
	}

	collision, err := s.repo.FindByCodeFoldExcluding(ctx, req.Code, id)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("product update lookup failed", zap.Int64("productId", id), zap.Error(err))
		return shared.Fail[ProductDTO](unexpected(err))
	}
	if collision != nil {
		s.logger.Error("product code already taken", zap.String("code", req.Code))
		return shared.Fail[ProductDTO](duplicateCode(req.Code))
	}

	previousCode := existing.Code
	existing.Code = req.Code
	existing.Title = req.Title
	existing.Description = req.Description
	mergeDimensions(existing, req.Dimensions)
	existing.Touch(shared.SystemActor)
	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.Error("product update failed", zap.Int64("productId", id), zap.Error(err))
		return shared.Fail[ProductDTO](unexpected(err))
	}
	s.invalidate(ctx, previousCode, existing.Code)
	s.logger.Info("product updated", zap.Int64("productId", existing.ID))

	dto := ToProductDTO(existing)
	return shared.OK(msgProductUpdated, &dto)
}

// Get returns a product with its dimensions, or nil when the id is
// invalid, unknown, or the lookup fails.
func (s *ProductService) Get(ctx context.Context, id int64) *ProductDTO {
	if id <= 0 {
		s.logger.Error("product get rejected", zap.String("error", msgIDRequired))
		return nil
	}
	entity, err := s.repo.FindByID(ctx, id, shared.LoadDimensions)
	if err != nil {
		s.logger.Error("product get failed", zap.Int64("productId", id), zap.Error(err))
		return nil
	}
	dto := ToProductDTO(entity)
	return &dto
}

// GetByCode returns the product matching the code case-insensitively, or
// nil for blank codes, unknown codes and lookup failures. Hits are served
// from the cache when one is configured.
func (s *ProductService) GetByCode(ctx context.Context, code string) *ProductDTO {
	if strings.TrimSpace(code) == "" {
		s.logger.Error("product get rejected", zap.String("error", "code is required"))
		return nil
	}
	if s.cache != nil {
		if dto, ok := s.cache.Get(ctx, code); ok {
			return dto
		}
	}
	entity, err := s.repo.FindByCodeFold(ctx, code, shared.LoadDimensions)
	if err != nil {
		s.logger.Error("product get failed", zap.String("code", code), zap.Error(err))
		return nil
	}
	dto := ToProductDTO(entity)
	if s.cache != nil {
		s.cache.Set(ctx, code, dto)
	}
	return &dto
}

// GetAll returns every product with dimensions. Failures yield an empty
// list.
func (s *ProductService) GetAll(ctx context.Context) []ProductDTO {
	entities, err := s.repo.FindAll(ctx, shared.LoadDimensions)
	if err != nil {
		s.logger.Error("product list failed", zap.Error(err))
		return []ProductDTO{}
	}
	return ToProductDTOs(entities)
}

// Delete removes a product by id. Invalid ids and repository failures
// produce a bare failed status.
func (s *ProductService) Delete(ctx context.Context, id int64) shared.Status {
	if id <= 0 {
		s.logger.Error("product delete rejected", zap.String("error", msgIDRequired))
		return shared.Status{}
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err == nil {
		defer s.invalidate(ctx, existing.Code)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("product delete failed", zap.Int64("productId", id), zap.Error(err))
		return shared.Status{}
	}
	return shared.OKStatus(msgRecordDeleted)
}

// DeleteByCode removes a product by its code. Blank codes and repository
// failures produce a bare failed status.
func (s *ProductService) DeleteByCode(ctx context.Context, code string) shared.Status {
	if strings.TrimSpace(code) == "" {
		s.logger.Error("product delete rejected", zap.String("error", "code is required"))
		return shared.Status{}
	}
	if err := s.repo.DeleteByCode(ctx, code); err != nil {
		s.logger.Error("product delete failed", zap.String("code", code), zap.Error(err))
		return shared.Status{}
	}
	s.invalidate(ctx, code)
	return shared.OKStatus(msgRecordDeleted)
}

// Upload upserts a batch of products keyed by code. Records that fail
// validation are skipped; a non-empty batch always reports success once
// every record has been attempted. The stored code is never rewritten on
// update.
func (s *ProductService) Upload(ctx context.Context, products []ProductRequest) shared.Status {
	if len(products) == 0 {
		s.logger.Error("product upload rejected", zap.String("error", msgNoProducts))
		return shared.FailStatus(msgNoProducts)
	}

	for _, req := range products {
		if errs := s.validator.Validate(req); len(errs) > 0 {
			s.logger.Error("product upload record invalid",
				zap.String("code", req.Code),
				zap.String("error", validation.Join(errs)))
			continue
		}
		if err := s.upsert(ctx, req); err != nil {
			s.logger.Error("product upload failed", zap.String("code", req.Code), zap.Error(err))
			return shared.FailStatus(unexpected(err))
		}
	}
	return shared.OKStatus(msgProductsUploaded)
}

func (s *ProductService) upsert(ctx context.Context, req ProductRequest) error {
	existing, err := s.repo.FindByCodeFold(ctx, req.Code, shared.LoadDimensions)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Info("product upload adding", zap.String("code", req.Code))
		return s.repo.Add(ctx, req.ToEntity(shared.SystemActor))
	}
	if err != nil {
		return err
	}

	s.logger.Info("product upload updating", zap.String("code", req.Code))
	existing.Title = req.Title
	existing.Description = req.Description
	mergeDimensions(existing, req.Dimensions)
	existing.Touch(shared.SystemActor)
	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}
	s.invalidate(ctx, existing.Code, req.Code)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, codes ...string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, codes...)
	}
}

// mergeDimensions replaces the product's measurements with the requested
// ones. A product without stored dimensions gets them attached whole.
func mergeDimensions(p *catalog.Product, req *DimensionsRequest) {
	if req == nil {
		return
	}
	if p.Dimensions == nil {
		p.Dimensions = req.ToEntity(shared.SystemActor)
		return
	}
	p.Dimensions.Length = decimal.NewFromFloat(req.Length)
	p.Dimensions.Width = decimal.NewFromFloat(req.Width)
	p.Dimensions.Height = decimal.NewFromFloat(req.Height)
	p.Dimensions.Weight = decimal.NewFromFloat(req.Weight)
	p.Dimensions.Touch(shared.SystemActor)
}
