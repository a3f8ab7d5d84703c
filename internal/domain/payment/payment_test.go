package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	t.Run("creates pending payment", func(t *testing.T) {
		orderID := uuid.New()
		p, err := NewPayment(orderID, "order_R5aBcD", decimal.NewFromFloat(129.99))
		require.NoError(t, err)

		assert.Equal(t, orderID, p.OrderID)
		assert.Equal(t, "order_R5aBcD", p.RazorpayOrderID)
		assert.Equal(t, StatusPending, p.Status)
		assert.Nil(t, p.CompletedAt)
		assert.NotEqual(t, uuid.Nil, p.ID)
	})

	t.Run("rejects nil order", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, "order_R5aBcD", decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects empty gateway order id", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), "", decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), "order_R5aBcD", decimal.Zero)
		assert.Error(t, err)
	})
}

func TestPayment_Complete(t *testing.T) {
	t.Run("completes pending payment", func(t *testing.T) {
		p, err := NewPayment(uuid.New(), "order_R5aBcD", decimal.NewFromInt(100))
		require.NoError(t, err)

		err = p.Complete("pay_29QQoUBi66xm2f", "deadbeef")
		require.NoError(t, err)

		assert.Equal(t, StatusCompleted, p.Status)
		assert.Equal(t, "pay_29QQoUBi66xm2f", p.RazorpayPaymentID)
		assert.Equal(t, "deadbeef", p.RazorpaySignature)
		require.NotNil(t, p.CompletedAt)
	})

	t.Run("rejects completing twice", func(t *testing.T) {
		p, _ := NewPayment(uuid.New(), "order_R5aBcD", decimal.NewFromInt(100))
		require.NoError(t, p.Complete("pay_1", "sig"))

		err := p.Complete("pay_2", "sig2")
		assert.Error(t, err)
		assert.Equal(t, StatusCompleted, p.Status)
		assert.Equal(t, "pay_1", p.RazorpayPaymentID)
	})

	t.Run("rejects completing a failed payment", func(t *testing.T) {
		p, _ := NewPayment(uuid.New(), "order_R5aBcD", decimal.NewFromInt(100))
		require.NoError(t, p.Fail())

		err := p.Complete("pay_1", "sig")
		assert.Error(t, err)
		assert.Equal(t, StatusFailed, p.Status)
	})
}

func TestPayment_Fail(t *testing.T) {
	t.Run("fails pending payment", func(t *testing.T) {
		p, _ := NewPayment(uuid.New(), "order_R5aBcD", decimal.NewFromInt(100))

		require.NoError(t, p.Fail())
		assert.Equal(t, StatusFailed, p.Status)
		assert.Nil(t, p.CompletedAt)
	})

	t.Run("never reopens a completed payment", func(t *testing.T) {
		p, _ := NewPayment(uuid.New(), "order_R5aBcD", decimal.NewFromInt(100))
		require.NoError(t, p.Complete("pay_1", "sig"))

		assert.Error(t, p.Fail())
		assert.Equal(t, StatusCompleted, p.Status)
	})
}

func TestStatus_IsValid(t *testing.T) {
	valid := []Status{StatusPending, StatusCompleted, StatusFailed, StatusRefunded}
	for _, s := range valid {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, Status("SETTLED").IsValid())
}
