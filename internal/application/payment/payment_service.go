package payment

import (
	"context"
	"errors"

	"github.com/ayustore/backend/internal/domain/identity"
	"github.com/ayustore/backend/internal/domain/order"
	"github.com/ayustore/backend/internal/domain/payment"
	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/ayustore/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// paiseFactor converts rupees to paise for checkout payloads
var paiseFactor = decimal.NewFromInt(100)

// ErrVerificationFailed is returned when the callback signature does not
// match. The payment is marked FAILED before this is returned.
var ErrVerificationFailed = shared.NewDomainError("PAYMENT_ERROR", "Payment signature verification failed")

// PaymentService drives the Razorpay payment lifecycle
type PaymentService struct {
	paymentRepo payment.Repository
	orderRepo   order.Repository
	gateway     payment.Gateway
	scope       VerificationScope
	metrics     *telemetry.StoreMetrics
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo payment.Repository,
	orderRepo order.Repository,
	gateway payment.Gateway,
	scope VerificationScope,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		scope:       scope,
	}
}

// SetStoreMetrics sets the business metrics collector
func (s *PaymentService) SetStoreMetrics(m *telemetry.StoreMetrics) {
	s.metrics = m
}

// CreateRazorpayOrder opens a gateway payment intent for a local order.
// Calling again while the payment is still pending returns the existing
// intent; a settled payment is refused.
func (s *PaymentService) CreateRazorpayOrder(ctx context.Context, principal identity.Principal, req CreateRazorpayOrderRequest) (*RazorpayOrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != principal.UserID && !principal.IsAdmin() {
		return nil, shared.ErrNotFound
	}

	existing, err := s.paymentRepo.FindByOrderID(ctx, o.ID)
	if err == nil {
		if existing.Status != payment.StatusPending {
			return nil, shared.NewDomainError("INVALID_STATE",
				"Order already has a "+existing.Status.String()+" payment")
		}
		return s.toRazorpayOrderResponse(existing), nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, payment.CreateOrderRequest{
		Amount:   o.Total,
		Currency: "INR",
		Receipt:  o.ID.String(),
	})
	if err != nil {
		return nil, shared.NewDomainError("PAYMENT_ERROR", "Failed to create payment order: "+err.Error())
	}

	p, err := payment.NewPayment(o.ID, gatewayOrder.ID, o.Total)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	return s.toRazorpayOrderResponse(p), nil
}

// VerifyPayment checks the checkout callback signature. A match settles
// the payment and moves the order to PROCESSING in one transaction; a
// mismatch marks the payment FAILED. Signature verification is the only
// path that marks a payment COMPLETED.
func (s *PaymentService) VerifyPayment(ctx context.Context, principal identity.Principal, req VerifyPaymentRequest) (*PaymentResponse, error) {
	p, err := s.paymentRepo.FindByRazorpayOrderID(ctx, req.RazorpayOrderID)
	if err != nil {
		return nil, err
	}

	o, err := s.orderRepo.FindByID(ctx, p.OrderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != principal.UserID && !principal.IsAdmin() {
		return nil, shared.ErrNotFound
	}

	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		if failErr := p.Fail(); failErr != nil {
			// A settled payment is never reopened; surface the state error
			return nil, failErr
		}
		if updateErr := s.paymentRepo.Update(ctx, p); updateErr != nil {
			return nil, updateErr
		}
		if s.metrics != nil {
			s.metrics.RecordPayment(ctx, telemetry.PaymentOutcomeFailed)
		}
		return nil, ErrVerificationFailed
	}

	if err := p.Complete(req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos VerificationRepositories) error {
		if err := repos.Payments().Update(ctx, p); err != nil {
			return err
		}
		return repos.Orders().UpdateStatus(ctx, p.OrderID, order.StatusProcessing)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPayment(ctx, telemetry.PaymentOutcomeCompleted)
	}

	return ToPaymentResponse(p), nil
}

func (s *PaymentService) toRazorpayOrderResponse(p *payment.Payment) *RazorpayOrderResponse {
	return &RazorpayOrderResponse{
		OrderID:         p.OrderID,
		RazorpayOrderID: p.RazorpayOrderID,
		Amount:          p.Amount.Mul(paiseFactor).IntPart(),
		Currency:        "INR",
		KeyID:           s.gateway.KeyID(),
	}
}
