package partner

import (
	"strings"

	"github.com/wms/backend/internal/domain/shared"
)

// Address is a postal address owned by exactly one customer or one sales
// order shipment. Addresses are never shared between owners.
type Address struct {
	shared.Entity
	Street  string `gorm:"type:varchar(256);not null" json:"street"`
	City    string `gorm:"type:varchar(256);not null" json:"city"`
	State   string `gorm:"type:varchar(128);not null" json:"state"`
	ZipCode string `gorm:"type:varchar(10);not null" json:"zipCode"`
	Country string `gorm:"type:varchar(128);not null" json:"country"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// Customer is a warehouse customer. Email is the business key and must be
// unique case-insensitively across all customers.
type Customer struct {
	shared.Entity
	Name      string   `gorm:"type:varchar(256);not null" json:"name"`
	Email     string   `gorm:"type:varchar(100);not null;index" json:"email"`
	AddressID int64    `gorm:"index" json:"addressId"`
	Address   *Address `gorm:"foreignKey:AddressID" json:"address,omitempty"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NormalizeEmail canonicalizes an email for business-key comparison:
// surrounding whitespace is dropped and case is folded.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailEquals reports whether two emails match under business-key rules.
func EmailEquals(a, b string) bool {
	return NormalizeEmail(a) == NormalizeEmail(b)
}
