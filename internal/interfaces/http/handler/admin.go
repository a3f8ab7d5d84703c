package handler

import (
	appcatalog "github.com/ayustore/backend/internal/application/catalog"
	appidentity "github.com/ayustore/backend/internal/application/identity"
	apporder "github.com/ayustore/backend/internal/application/order"
	"github.com/ayustore/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the management endpoints: product CRUD, order
// status overrides, user listing and the dashboard
type AdminHandler struct {
	BaseHandler
	products  *appcatalog.ProductService
	orders    *apporder.OrderService
	users     *appidentity.UserService
	dashboard *report.DashboardService
	auth      gin.HandlerFunc
	admin     gin.HandlerFunc
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	products *appcatalog.ProductService,
	orders *apporder.OrderService,
	users *appidentity.UserService,
	dashboard *report.DashboardService,
	auth gin.HandlerFunc,
	admin gin.HandlerFunc,
) *AdminHandler {
	return &AdminHandler{
		products:  products,
		orders:    orders,
		users:     users,
		dashboard: dashboard,
		auth:      auth,
		admin:     admin,
	}
}

// RegisterRoutes registers the admin routes behind the admin gate
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(h.auth, h.admin)

	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)

	admin.GET("/orders", h.ListOrders)
	admin.PUT("/orders/:id/status", h.UpdateOrderStatus)

	admin.GET("/users", h.ListUsers)
	admin.GET("/dashboard", h.Dashboard)
}

// CreateProduct adds a product to the catalog
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// UpdateProduct applies a partial update to a product
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// DeleteProduct soft-deletes a product
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListOrders returns every order, newest first
func (h *AdminHandler) ListOrders(c *gin.Context) {
	result, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateOrderStatus overrides an order's status from the status query
// parameter
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}

	status := c.Query("status")
	if status == "" {
		h.BadRequest(c, "Missing status")
		return
	}

	result, err := h.orders.UpdateStatus(c.Request.Context(), id,
		apporder.UpdateStatusRequest{Status: status})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListUsers returns all accounts
func (h *AdminHandler) ListUsers(c *gin.Context) {
	result, err := h.users.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Dashboard returns the store-wide summary
func (h *AdminHandler) Dashboard(c *gin.Context) {
	result, err := h.dashboard.GetStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
