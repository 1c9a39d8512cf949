package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/shared"
)

// Dimensions holds the physical measurements of a product. All values are
// positive decimals; validation happens at the request boundary.
type Dimensions struct {
	shared.Entity
	Length decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"length"`
	Width  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"width"`
	Height decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"height"`
	Weight decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"weight"`
}

// TableName returns the table name for GORM
func (Dimensions) TableName() string {
	return "dimensions"
}

// Product is a catalog item. Code is the business key and must be unique
// case-insensitively across the catalog.
type Product struct {
	shared.Entity
	Code         string      `gorm:"type:varchar(100);not null;index" json:"code"`
	Title        string      `gorm:"type:varchar(156);not null" json:"title"`
	Description  string      `gorm:"type:varchar(256);not null" json:"description"`
	DimensionsID int64       `gorm:"index" json:"dimensionsId"`
	Dimensions   *Dimensions `gorm:"foreignKey:DimensionsID" json:"dimensions,omitempty"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}
