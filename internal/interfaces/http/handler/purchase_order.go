package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/wms/backend/internal/application/trade"
)

// PurchaseOrderHandler handles purchase order API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	orderService *tradeapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(orderService *tradeapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// Create handles POST /purchase-orders
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req tradeapp.PurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.orderService.Create(c.Request.Context(), req))
}

// Update handles PUT /purchase-orders/:id
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase order id")
		return
	}

	var req tradeapp.PurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.orderService.Update(c.Request.Context(), id, req))
}

// Get handles GET /purchase-orders/:id
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase order id")
		return
	}

	order := h.orderService.Get(c.Request.Context(), id)
	h.Object(c, order, order != nil)
}

// GetAll handles GET /purchase-orders
func (h *PurchaseOrderHandler) GetAll(c *gin.Context) {
	h.List(c, h.orderService.GetAll(c.Request.Context()))
}

// Delete handles DELETE /purchase-orders/:id
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase order id")
		return
	}

	h.Envelope(c, h.orderService.Delete(c.Request.Context(), id))
}

// Upload handles POST /purchase-orders/upload
func (h *PurchaseOrderHandler) Upload(c *gin.Context) {
	var batch []tradeapp.PurchaseOrderRequest
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Envelope(c, h.orderService.Upload(c.Request.Context(), batch))
}

// RegisterRoutes registers purchase order routes on the given router group
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.GetAll)
		orders.GET("/:id", h.Get)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
		orders.POST("/upload", h.Upload)
	}
}
