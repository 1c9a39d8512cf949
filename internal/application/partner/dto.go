package partner

import (
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
)

// AddressRequest carries the address payload of customer and sales order
// requests.
type AddressRequest struct {
	Street  string `json:"street" validate:"required,max=256"`
	City    string `json:"city" validate:"required,max=256"`
	State   string `json:"state" validate:"required,max=128"`
	Country string `json:"country" validate:"required,max=128"`
	ZipCode string `json:"zipCode" validate:"required,max=10"`
}

// CustomerRequest is the inbound payload for creating, updating and
// uploading customers.
type CustomerRequest struct {
	Name    string          `json:"name" validate:"required,max=256"`
	Email   string          `json:"email" validate:"required,max=100,email"`
	Address *AddressRequest `json:"address" validate:"required"`
}

// AddressDTO is the outbound address representation.
type AddressDTO struct {
	ID      int64  `json:"id"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// CustomerDTO is the outbound customer representation.
type CustomerDTO struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	AddressID int64       `json:"addressId"`
	Address   *AddressDTO `json:"address,omitempty"`
}

// ToEntity builds a fresh domain customer from the request.
func (r CustomerRequest) ToEntity(actor string) *partner.Customer {
	c := &partner.Customer{
		Entity: shared.NewEntity(actor),
		Name:   r.Name,
		Email:  r.Email,
	}
	if r.Address != nil {
		c.Address = r.Address.ToEntity(actor)
	}
	return c
}

// ToEntity builds a fresh domain address from the request.
func (r AddressRequest) ToEntity(actor string) *partner.Address {
	return &partner.Address{
		Entity:  shared.NewEntity(actor),
		Street:  r.Street,
		City:    r.City,
		State:   r.State,
		Country: r.Country,
		ZipCode: r.ZipCode,
	}
}

// ToAddressDTO maps a domain address to its outbound form.
func ToAddressDTO(a *partner.Address) *AddressDTO {
	if a == nil {
		return nil
	}
	return &AddressDTO{
		ID:      a.ID,
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		Country: a.Country,
		ZipCode: a.ZipCode,
	}
}

// ToCustomerDTO maps a domain customer to its outbound form.
func ToCustomerDTO(c *partner.Customer) CustomerDTO {
	return CustomerDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		AddressID: c.AddressID,
		Address:   ToAddressDTO(c.Address),
	}
}

// ToCustomerDTOs maps a customer list to its outbound form.
func ToCustomerDTOs(customers []partner.Customer) []CustomerDTO {
	dtos := make([]CustomerDTO, len(customers))
	for i := range customers {
		dtos[i] = ToCustomerDTO(&customers[i])
	}
	return dtos
}
