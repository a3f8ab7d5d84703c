package models

import (
	"time"

	"github.com/ayustore/backend/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is the persistence model for the Payment domain entity.
type PaymentModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	RazorpayOrderID   string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	RazorpayPaymentID string          `gorm:"type:varchar(100)"`
	RazorpaySignature string          `gorm:"type:varchar(200)"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status            string          `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt         time.Time       `gorm:"not null"`
	CompletedAt       *time.Time
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *payment.Payment {
	return &payment.Payment{
		ID:                m.ID,
		OrderID:           m.OrderID,
		RazorpayOrderID:   m.RazorpayOrderID,
		RazorpayPaymentID: m.RazorpayPaymentID,
		RazorpaySignature: m.RazorpaySignature,
		Amount:            m.Amount,
		Status:            payment.Status(m.Status),
		CreatedAt:         m.CreatedAt,
		CompletedAt:       m.CompletedAt,
	}
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *payment.Payment) *PaymentModel {
	return &PaymentModel{
		ID:                p.ID,
		OrderID:           p.OrderID,
		RazorpayOrderID:   p.RazorpayOrderID,
		RazorpayPaymentID: p.RazorpayPaymentID,
		RazorpaySignature: p.RazorpaySignature,
		Amount:            p.Amount,
		Status:            p.Status.String(),
		CreatedAt:         p.CreatedAt,
		CompletedAt:       p.CompletedAt,
	}
}
