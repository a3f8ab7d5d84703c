package handler

import (
	appcatalog "github.com/ayustore/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler serves the public catalog endpoints
type ProductHandler struct {
	BaseHandler
	products *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes registers the public catalog routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", h.List)
	products.GET("/categories", h.Categories)
	products.GET("/category/:category", h.ListByCategory)
	products.GET("/search", h.Search)
	products.GET("/:id", h.Get)
}

// List returns all active products
func (h *ProductHandler) List(c *gin.Context) {
	result, err := h.products.List(c.Request.Context(), "", "")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListByCategory returns active products in one category
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	result, err := h.products.List(c.Request.Context(), c.Param("category"), "")
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Search returns active products matching a case-insensitive substring
func (h *ProductHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		h.BadRequest(c, "Missing search query")
		return
	}
	result, err := h.products.List(c.Request.Context(), "", query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get returns one active product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	result, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Categories returns the distinct categories of active products
func (h *ProductHandler) Categories(c *gin.Context) {
	result, err := h.products.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
