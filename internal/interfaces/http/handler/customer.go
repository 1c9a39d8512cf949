package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/wms/backend/internal/application/partner"
)

// CustomerHandler handles customer API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.customerService.Create(c.Request.Context(), req))
}

// Update handles PUT /customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer id")
		return
	}

	var req partnerapp.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.customerService.Update(c.Request.Context(), id, req))
}

// Get handles GET /customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer id")
		return
	}

	customer := h.customerService.Get(c.Request.Context(), id)
	h.Object(c, customer, customer != nil)
}

// GetAll handles GET /customers
func (h *CustomerHandler) GetAll(c *gin.Context) {
	h.List(c, h.customerService.GetAll(c.Request.Context()))
}

// Delete handles DELETE /customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer id")
		return
	}

	h.Envelope(c, h.customerService.Delete(c.Request.Context(), id))
}

// Upload handles POST /customers/upload
func (h *CustomerHandler) Upload(c *gin.Context) {
	var batch []partnerapp.CustomerRequest
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.customerService.Upload(c.Request.Context(), batch))
}

// RegisterRoutes registers customer routes on the given router group
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.GetAll)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
		customers.POST("/upload", h.Upload)
	}
}
