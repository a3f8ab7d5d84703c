package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when a StoreMetrics is constructed without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// StoreMetrics tracks storefront business activity: checkouts, payment
// outcomes, and account signups. Instances are safe for concurrent use.
type StoreMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	orderCreatedTotal *Counter
	orderAmountTotal  *Counter
	paymentTotal      *Counter
	signupTotal       *Counter
}

// SignupMethod labels how an account was created.
type SignupMethod string

const (
	SignupMethodPassword SignupMethod = "password"
	SignupMethodGoogle   SignupMethod = "google"
)

// PaymentOutcome labels the result of a payment verification.
type PaymentOutcome string

const (
	PaymentOutcomeCompleted PaymentOutcome = "completed"
	PaymentOutcomeFailed    PaymentOutcome = "failed"
)

// NewStoreMetrics creates a StoreMetrics instance recording through the given meter.
func NewStoreMetrics(meter metric.Meter, logger *zap.Logger) (*StoreMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sm := &StoreMetrics{
		meter:  meter,
		logger: logger,
	}

	var err error
	sm.orderCreatedTotal, err = NewCounter(
		meter,
		"store_order_created_total",
		"Total number of orders placed at checkout",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	sm.orderAmountTotal, err = NewCounter(
		meter,
		"store_order_amount_total",
		"Total order amount in paise",
		"{paise}",
	)
	if err != nil {
		return nil, err
	}

	sm.paymentTotal, err = NewCounter(
		meter,
		"store_payment_total",
		"Total number of payment verification outcomes",
		"{payments}",
	)
	if err != nil {
		return nil, err
	}

	sm.signupTotal, err = NewCounter(
		meter,
		"store_signup_total",
		"Total number of accounts created",
		"{accounts}",
	)
	if err != nil {
		return nil, err
	}

	return sm, nil
}

// RecordOrderCreated records a successful checkout with its total amount.
func (sm *StoreMetrics) RecordOrderCreated(ctx context.Context, total decimal.Decimal) {
	sm.orderCreatedTotal.Inc(ctx)

	paise := total.Mul(decimal.NewFromInt(100)).IntPart()
	sm.orderAmountTotal.Add(ctx, paise)
}

// RecordPayment records the outcome of a payment verification.
func (sm *StoreMetrics) RecordPayment(ctx context.Context, outcome PaymentOutcome) {
	sm.paymentTotal.Inc(ctx,
		AttrPaymentStatus.String(string(outcome)),
	)
}

// RecordSignup records an account creation event.
func (sm *StoreMetrics) RecordSignup(ctx context.Context, method SignupMethod) {
	sm.signupTotal.Inc(ctx,
		AttrSignupMethod.String(string(method)),
	)
}
