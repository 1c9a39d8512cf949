package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wms/backend/internal/domain/shared"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// pathID parses the numeric :id route parameter.
func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// Envelope sends a mutation result. The envelope itself carries the
// outcome, so the transport status is always 200.
func (h *BaseHandler) Envelope(c *gin.Context, result any) {
	c.JSON(http.StatusOK, result)
}

// Object sends a bare read response, or 404 when the object is missing.
func (h *BaseHandler) Object(c *gin.Context, obj any, found bool) {
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, obj)
}

// List sends a bare list response. Empty lists are returned as-is.
func (h *BaseHandler) List(c *gin.Context, list any) {
	c.JSON(http.StatusOK, list)
}

// BadRequest sends a 400 failed envelope for malformed transport input
// (unparseable ids, invalid JSON bodies).
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, shared.FailStatus(message))
}
