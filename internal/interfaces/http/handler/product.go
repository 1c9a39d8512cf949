package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/wms/backend/internal/application/catalog"
)

// ProductHandler handles product API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.productService.Create(c.Request.Context(), req))
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	var req catalogapp.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.productService.Update(c.Request.Context(), id, req))
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	product := h.productService.Get(c.Request.Context(), id)
	h.Object(c, product, product != nil)
}

// GetByCode handles GET /products/code/:code
func (h *ProductHandler) GetByCode(c *gin.Context) {
	product := h.productService.GetByCode(c.Request.Context(), c.Param("code"))
	h.Object(c, product, product != nil)
}

// GetAll handles GET /products
func (h *ProductHandler) GetAll(c *gin.Context) {
	h.List(c, h.productService.GetAll(c.Request.Context()))
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}

	h.Envelope(c, h.productService.Delete(c.Request.Context(), id))
}

// DeleteByCode handles DELETE /products/code/:code
func (h *ProductHandler) DeleteByCode(c *gin.Context) {
	h.Envelope(c, h.productService.DeleteByCode(c.Request.Context(), c.Param("code")))
}

// Upload handles POST /products/upload
func (h *ProductHandler) Upload(c *gin.Context) {
	var batch []catalogapp.ProductRequest
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.productService.Upload(c.Request.Context(), batch))
}

// RegisterRoutes registers product routes on the given router group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.GetAll)
		products.GET("/:id", h.Get)
		products.GET("/code/:code", h.GetByCode)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.DELETE("/code/:code", h.DeleteByCode)
		products.POST("/upload", h.Upload)
	}
}
