package order

import (
	"time"

	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of an order
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks if the status is a valid order Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// ShippingAddress is the address embedded into an order at checkout
type ShippingAddress struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	ZipCode   string
	Country   string
}

// Item is a single order line. Product name, image and price are
// snapshotted at order time and never follow later product edits.
type Item struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ProductID       uuid.UUID
	ProductName     string
	ProductImage    string
	PriceAtPurchase decimal.Decimal
	Quantity        int
}

// Order is the aggregate root for a customer checkout.
// After creation only the status may change.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Status          Status
	Total           decimal.Decimal
	ShippingAddress ShippingAddress
	Items           []Item
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder creates a pending order for a user
func NewOrder(userID uuid.UUID, total decimal.Decimal, addr ShippingAddress) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Order must belong to a user")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
	}
	if addr.Country == "" {
		addr.Country = "India"
	}

	now := time.Now()
	return &Order{
		ID:              uuid.New(),
		UserID:          userID,
		Status:          StatusPending,
		Total:           total,
		ShippingAddress: addr,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// AddItem appends a line item snapshotting the given product state
func (o *Order) AddItem(productID uuid.UUID, name, image string, price decimal.Decimal, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	o.Items = append(o.Items, Item{
		ID:              uuid.New(),
		OrderID:         o.ID,
		ProductID:       productID,
		ProductName:     name,
		ProductImage:    image,
		PriceAtPurchase: price,
		Quantity:        quantity,
	})
	return nil
}

// SetStatus overwrites the order status. Any valid status value is
// accepted from any current state; the admin status endpoint is an
// unconditional override.
func (o *Order) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+status.String())
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}
