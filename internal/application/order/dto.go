package order

import (
	"time"

	"github.com/ayustore/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutItem is one cart line in a checkout request
type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// ShippingAddressRequest is the address supplied at checkout
type ShippingAddressRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Address   string `json:"address" binding:"required,max=500"`
	City      string `json:"city" binding:"required,max=100"`
	ZipCode   string `json:"zip_code" binding:"required,max=20"`
	Country   string `json:"country" binding:"omitempty,max=100"`
}

// CreateOrderRequest is the request to create an order from a cart
type CreateOrderRequest struct {
	Items           []CheckoutItem         `json:"items" binding:"required,min=1,dive"`
	Total           decimal.Decimal        `json:"total" binding:"required"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address" binding:"required"`
}

// UpdateStatusRequest is the admin request to change an order's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ItemResponse is the API representation of an order line
type ItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductImage    string          `json:"product_image"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	Quantity        int             `json:"quantity"`
}

// ShippingAddressResponse is the API representation of a shipping address
type ShippingAddressResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID              uuid.UUID               `json:"id"`
	UserID          uuid.UUID               `json:"user_id"`
	Status          string                  `json:"status"`
	Total           decimal.Decimal         `json:"total"`
	ShippingAddress ShippingAddressResponse `json:"shipping_address"`
	Items           []ItemResponse          `json:"items"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = ItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			ProductImage:    it.ProductImage,
			PriceAtPurchase: it.PriceAtPurchase,
			Quantity:        it.Quantity,
		}
	}

	return &OrderResponse{
		ID:     o.ID,
		UserID: o.UserID,
		Status: o.Status.String(),
		Total:  o.Total,
		ShippingAddress: ShippingAddressResponse{
			FirstName: o.ShippingAddress.FirstName,
			LastName:  o.ShippingAddress.LastName,
			Address:   o.ShippingAddress.Address,
			City:      o.ShippingAddress.City,
			ZipCode:   o.ShippingAddress.ZipCode,
			Country:   o.ShippingAddress.Country,
		},
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *ToOrderResponse(&orders[i])
	}
	return responses
}
