package models

import (
	"time"

	"github.com/ayustore/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status    string           `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Total     decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	FirstName string           `gorm:"type:varchar(100)"`
	LastName  string           `gorm:"type:varchar(100)"`
	Address   string           `gorm:"type:varchar(500)"`
	City      string           `gorm:"type:varchar(100)"`
	ZipCode   string           `gorm:"type:varchar(20)"`
	Country   string           `gorm:"type:varchar(100)"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time        `gorm:"not null;index"`
	UpdatedAt time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for a single order line.
type OrderItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	ProductImage    string          `gorm:"type:varchar(500)"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity        int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, len(m.Items))
	for i, it := range m.Items {
		items[i] = order.Item{
			ID:              it.ID,
			OrderID:         it.OrderID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			ProductImage:    it.ProductImage,
			PriceAtPurchase: it.PriceAtPurchase,
			Quantity:        it.Quantity,
		}
	}

	return &order.Order{
		ID:     m.ID,
		UserID: m.UserID,
		Status: order.Status(m.Status),
		Total:  m.Total,
		ShippingAddress: order.ShippingAddress{
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Address:   m.Address,
			City:      m.City,
			ZipCode:   m.ZipCode,
			Country:   m.Country,
		},
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemModel{
			ID:              it.ID,
			OrderID:         it.OrderID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			ProductImage:    it.ProductImage,
			PriceAtPurchase: it.PriceAtPurchase,
			Quantity:        it.Quantity,
		}
	}

	return &OrderModel{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    o.Status.String(),
		Total:     o.Total,
		FirstName: o.ShippingAddress.FirstName,
		LastName:  o.ShippingAddress.LastName,
		Address:   o.ShippingAddress.Address,
		City:      o.ShippingAddress.City,
		ZipCode:   o.ShippingAddress.ZipCode,
		Country:   o.ShippingAddress.Country,
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
