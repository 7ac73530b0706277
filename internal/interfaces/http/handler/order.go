package handler

import (
	"errors"
	"io"
	"net/http"

	apporder "github.com/akau-shop/backend/internal/application/order"
	"github.com/akau-shop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orders *apporder.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *apporder.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// UpdateOrderStatusRequest moves an order to a new status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Place validates a checkout submission and creates the order
func (h *OrderHandler) Place(c *gin.Context) {
	var req apporder.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orders.Place(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get returns a single order for the buyer's confirmation page
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetItems returns the line items of an order
func (h *OrderHandler) GetItems(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.orders.GetItems(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns orders newest first for the admin console
func (h *OrderHandler) List(c *gin.Context) {
	req := dto.ListRequest{Limit: 50, Offset: 0}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid pagination parameters")
		return
	}

	result, err := h.orders.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result, req.Limit, req.Offset, len(result))
}

// GetDetail returns an order with its items joined to product names
func (h *OrderHandler) GetDetail(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	result, err := h.orders.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateStatus moves an order to the given status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Ship marks an order shipped and triggers the shipment notice
func (h *OrderHandler) Ship(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	// The body is optional: shipping without a tracking number is fine.
	var req apporder.ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orders.Ship(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
