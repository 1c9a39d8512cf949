package partner

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wms/backend/internal/application/validation"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
)

const (
	msgIDRequired        = "Id is required"
	msgRecordMissing     = "Record does not exist"
	msgCustomerCreated   = "Customer successfully created"
	msgCustomerUpdated   = "Customer successfully updated"
	msgRecordDeleted     = "Record successfully deleted"
	msgCustomersRequired = "Customers are required"
	msgCustomersUploaded = "Customers successfully uploaded"
)

func unexpected(err error) string {
	return fmt.Sprintf("An unexpected error occurred. Error:%v", err)
}

// CustomerService implements the customer use cases: CRUD plus the bulk
// upsert used by file ingestion.
type CustomerService struct {
	repo      partner.CustomerRepository
	validator *validation.Validator
	logger    *zap.Logger
}

// NewCustomerService creates a CustomerService.
func NewCustomerService(repo partner.CustomerRepository, validator *validation.Validator, logger *zap.Logger) *CustomerService {
	return &CustomerService{repo: repo, validator: validator, logger: logger}
}

// Create validates the request and inserts a new customer. Emails are a
// case-insensitive business key; a collision fails the operation.
func (s *CustomerService) Create(ctx context.Context, req CustomerRequest) shared.Result[CustomerDTO] {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		msg := validation.Join(errs)
		s.logger.Error("customer create validation failed", zap.String("error", msg))
		return shared.Fail[CustomerDTO](msg)
	}

	existing, err := s.repo.FindByEmailFold(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("customer create lookup failed", zap.Error(err))
		return shared.Fail[CustomerDTO](unexpected(err))
	}
	if existing != nil {
		s.logger.Error("customer email already taken", zap.String("email", req.Email))
		return shared.Fail[CustomerDTO](fmt.Sprintf("Customer already exists in system with Email:%s. So not creating again", req.Email))
	}

	entity := req.ToEntity(shared.SystemActor)
	if err := s.repo.Add(ctx, entity); err != nil {
		s.logger.Error("customer create failed", zap.Error(err))
		return shared.Fail[CustomerDTO](unexpected(err))
	}
	s.logger.Info("customer created", zap.Int64("customerId", entity.ID))

	dto := ToCustomerDTO(entity)
	return shared.OK(msgCustomerCreated, &dto)
}

// Update validates the request and applies it to an existing customer.
// The stored name is kept as-is; only the email and address are replaced,
// and the address country is never overwritten once set.
func (s *CustomerService) Update(ctx context.Context, id int64, req CustomerRequest) shared.Result[CustomerDTO] {
	if id <= 0 {
		s.logger.Error("customer update rejected", zap.String("error", msgIDRequired))
		return shared.Fail[CustomerDTO](msgIDRequired)
	}
	if errs := s.validator.Validate(req); len(errs) > 0 {
		msg := validation.Join(errs)
		s.logger.Error("customer update validation failed", zap.Int64("customerId", id), zap.String("error", msg))
		return shared.Fail[CustomerDTO](msg)
	}

	existing, err := s.repo.FindByID(ctx, id, shared.LoadAddress)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("customer not found", zap.Int64("customerId", id))
		return shared.Fail[CustomerDTO](msgRecordMissing)
	}
	if err != nil {
		s.logger.Error("customer update lookup failed", zap.Int64("customerId", id), zap.Error(err))
		return shared.Fail[CustomerDTO](unexpected(err))
	}

	collision, err := s.repo.FindByEmailFoldExcluding(ctx, req.Email, id)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("customer update lookup failed", zap.Int64("customerId", id), zap.Error(err))
		return shared.Fail[CustomerDTO](unexpected(err))
	}
	if collision != nil {
		s.logger.Error("customer email already taken", zap.String("email", req.Email))
		return shared.Fail[CustomerDTO](fmt.Sprintf("Customer already exists in system with Email:%s. So not updating", req.Email))
	}

	existing.Email = req.Email
	mergeAddress(existing, req.Address)
	existing.Touch(shared.SystemActor)
	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.Error("customer update failed", zap.Int64("customerId", id), zap.Error(err))
		return shared.Fail[CustomerDTO](unexpected(err))
	}
	s.logger.Info("customer updated", zap.Int64("customerId", existing.ID))

	dto := ToCustomerDTO(existing)
	return shared.OK(msgCustomerUpdated, &dto)
}

// Get returns a customer with its address, or nil when the id is invalid,
// unknown, or the lookup fails.
func (s *CustomerService) Get(ctx context.Context, id int64) *CustomerDTO {
	if id <= 0 {
		s.logger.Error("customer get rejected", zap.String("error", msgIDRequired))
		return nil
	}
	entity, err := s.repo.FindByID(ctx, id, shared.LoadAddress)
	if err != nil {
		s.logger.Error("customer get failed", zap.Int64("customerId", id), zap.Error(err))
		return nil
	}
	dto := ToCustomerDTO(entity)
	return &dto
}

// GetAll returns every customer with addresses. Failures yield an empty
// list.
func (s *CustomerService) GetAll(ctx context.Context) []CustomerDTO {
	entities, err := s.repo.FindAll(ctx, shared.LoadAddress)
	if err != nil {
		s.logger.Error("customer list failed", zap.Error(err))
		return []CustomerDTO{}
	}
	return ToCustomerDTOs(entities)
}

// Delete removes a customer. Invalid ids and repository failures produce a
// bare failed status.
func (s *CustomerService) Delete(ctx context.Context, id int64) shared.Status {
	if id <= 0 {
		s.logger.Error("customer delete rejected", zap.String("error", msgIDRequired))
		return shared.Status{}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("customer delete failed", zap.Int64("customerId", id), zap.Error(err))
		return shared.Status{}
	}
	return shared.OKStatus(msgRecordDeleted)
}

// Upload upserts a batch of customers keyed by email. Records that fail
// validation are skipped; a non-empty batch always reports success once
// every record has been attempted.
func (s *CustomerService) Upload(ctx context.Context, customers []CustomerRequest) shared.Status {
	if len(customers) == 0 {
		s.logger.Error("customer upload rejected", zap.String("error", msgCustomersRequired))
		return shared.FailStatus(msgCustomersRequired)
	}

	for _, req := range customers {
		if errs := s.validator.Validate(req); len(errs) > 0 {
			s.logger.Error("customer upload record invalid",
				zap.String("email", req.Email),
				zap.String("error", validation.Join(errs)))
			continue
		}
		if err := s.upsert(ctx, req); err != nil {
			s.logger.Error("customer upload failed", zap.String("email", req.Email), zap.Error(err))
			return shared.FailStatus(unexpected(err))
		}
	}
	return shared.OKStatus(msgCustomersUploaded)
}

func (s *CustomerService) upsert(ctx context.Context, req CustomerRequest) error {
	existing, err := s.repo.FindByEmailFold(ctx, req.Email, shared.LoadAddress)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Info("customer upload adding", zap.String("email", req.Email))
		return s.repo.Add(ctx, req.ToEntity(shared.SystemActor))
	}
	if err != nil {
		return err
	}

	s.logger.Info("customer upload updating", zap.String("email", req.Email))
	mergeAddress(existing, req.Address)
	existing.Touch(shared.SystemActor)
	return s.repo.Update(ctx, existing)
}

// mergeAddress replaces the customer's address fields with the requested
// ones. A missing stored address is attached whole; an existing one keeps
// its country.
func mergeAddress(c *partner.Customer, req *AddressRequest) {
	if req == nil {
		return
	}
	if c.Address == nil {
		c.Address = req.ToEntity(shared.SystemActor)
		return
	}
	c.Address.Street = req.Street
	c.Address.City = req.City
	c.Address.State = req.State
	c.Address.ZipCode = req.ZipCode
	c.Address.Touch(shared.SystemActor)
}
