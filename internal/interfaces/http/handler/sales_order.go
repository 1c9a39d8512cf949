package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/wms/backend/internal/application/trade"
)

// SalesOrderHandler handles sales order API endpoints
type SalesOrderHandler struct {
	BaseHandler
	orderService *tradeapp.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService *tradeapp.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orderService: orderService}
}

// Create handles POST /sales-orders
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req tradeapp.SalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.orderService.Create(c.Request.Context(), req))
}

// Update handles PUT /sales-orders/:id
func (h *SalesOrderHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid sales order id")
		return
	}

	var req tradeapp.SalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.orderService.Update(c.Request.Context(), id, req))
}

// Get handles GET /sales-orders/:id
func (h *SalesOrderHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid sales order id")
		return
	}

	order := h.orderService.Get(c.Request.Context(), id)
	h.Object(c, order, order != nil)
}

// GetAll handles GET /sales-orders
func (h *SalesOrderHandler) GetAll(c *gin.Context) {
	h.List(c, h.orderService.GetAll(c.Request.Context()))
}

// Delete handles DELETE /sales-orders/:id
func (h *SalesOrderHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid sales order id")
		return
	}

	h.Envelope(c, h.orderService.Delete(c.Request.Context(), id))
}

// Upload handles POST /sales-orders/upload
func (h *SalesOrderHandler) Upload(c *gin.Context) {
	var batch []tradeapp.SalesOrderRequest
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.orderService.Upload(c.Request.Context(), batch))
}

// RegisterRoutes registers sales order routes on the given router group
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/sales-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.GetAll)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
		orders.POST("/upload", h.Upload)
	}
}
