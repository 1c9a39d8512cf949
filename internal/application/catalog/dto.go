package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

// DimensionsRequest carries the physical measurements of a product. Every
// measurement must be strictly positive.
type DimensionsRequest struct {
	Length float64 `json:"length" validate:"gt=0"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
	Weight float64 `json:"weight" validate:"gt=0"`
}

// ProductRequest is the inbound payload for creating, updating and
// uploading products.
type ProductRequest struct {
	Code        string             `json:"code" validate:"required,max=100"`
	Title       string             `json:"title" validate:"required,max=156"`
	Description string             `json:"description" validate:"required,max=256"`
	Dimensions  *DimensionsRequest `json:"dimensions" validate:"required"`
}

// DimensionsDTO is the outbound dimensions representation.
type DimensionsDTO struct {
	ID     int64           `json:"id"`
	Length decimal.Decimal `json:"length"`
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
	Weight decimal.Decimal `json:"weight"`
}

// ProductDTO is the outbound product representation.
type ProductDTO struct {
	ID           int64          `json:"id"`
	Code         string         `json:"code"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	DimensionsID int64          `json:"dimensionsId"`
	Dimensions   *DimensionsDTO `json:"dimensions,omitempty"`
}

// ToEntity builds a fresh domain product from the request.
func (r ProductRequest) ToEntity(actor string) *catalog.Product {
	p := &catalog.Product{
		Entity:      shared.NewEntity(actor),
		Code:        r.Code,
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Dimensions != nil {
		p.Dimensions = r.Dimensions.ToEntity(actor)
	}
	return p
}

// ToEntity builds fresh domain dimensions from the request.
func (r DimensionsRequest) ToEntity(actor string) *catalog.Dimensions {
	return &catalog.Dimensions{
		Entity: shared.NewEntity(actor),
		Length: decimal.NewFromFloat(r.Length),
		Width:  decimal.NewFromFloat(r.Width),
		Height: decimal.NewFromFloat(r.Height),
		Weight: decimal.NewFromFloat(r.Weight),
	}
}

// ToProductDTO maps a domain product to its outbound form.
func ToProductDTO(p *catalog.Product) ProductDTO {
	dto := ProductDTO{
		ID:           p.ID,
		Code:         p.Code,
		Title:        p.Title,
		Description:  p.Description,
		DimensionsID: p.DimensionsID,
	}
	if p.Dimensions != nil {
		dto.Dimensions = &DimensionsDTO{
			ID:     p.Dimensions.ID,
			Length: p.Dimensions.Length,
			Width:  p.Dimensions.Width,
			Height: p.Dimensions.Height,
			Weight: p.Dimensions.Weight,
		}
	}
	return dto
}

// ToProductDTOs maps a product list to its outbound form.
func ToProductDTOs(products []catalog.Product) []ProductDTO {
	dtos := make([]ProductDTO, len(products))
	for i := range products {
		dtos[i] = ToProductDTO(&products[i])
	}
	return dtos
}
