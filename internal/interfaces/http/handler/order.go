package handler

import (
	apporder "github.com/ayustore/backend/internal/application/order"
	"github.com/gin-gonic/gin"
)

// OrderHandler serves the authenticated order endpoints
type OrderHandler struct {
	BaseHandler
	orders *apporder.OrderService
	auth   gin.HandlerFunc
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *apporder.OrderService, auth gin.HandlerFunc) *OrderHandler {
	return &OrderHandler{orders: orders, auth: auth}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.Use(h.auth)
	orders.POST("", h.Create)
	orders.GET("", h.ListOwn)
	orders.GET("/:id", h.Get)
}

// Create turns the submitted cart into an order
func (h *OrderHandler) Create(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req apporder.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orders.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListOwn returns the caller's orders, newest first
func (h *OrderHandler) ListOwn(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	result, err := h.orders.ListForUser(c.Request.Context(), principal.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get returns one order, gated by ownership-or-admin
func (h *OrderHandler) Get(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.orders.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
