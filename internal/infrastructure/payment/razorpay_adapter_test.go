package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ayustore/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, baseURL string) *RazorpayAdapter {
	t.Helper()
	adapter, err := NewRazorpayAdapter(&RazorpayConfig{
		KeyID:     "rzp_test_abc",
		KeySecret: "test_secret",
		BaseURL:   baseURL,
	})
	require.NoError(t, err)
	return adapter
}

func TestNewRazorpayAdapter_Validation(t *testing.T) {
	_, err := NewRazorpayAdapter(&RazorpayConfig{KeySecret: "s"})
	assert.ErrorIs(t, err, ErrRazorpayMissingKeyID)

	_, err = NewRazorpayAdapter(&RazorpayConfig{KeyID: "k"})
	assert.ErrorIs(t, err, ErrRazorpayMissingKeySecret)
}

func TestRazorpayAdapter_CreateOrder(t *testing.T) {
	t.Run("creates order and converts rupees to paise", func(t *testing.T) {
		var gotBody razorpayCreateOrderRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, razorpayOrdersPath, r.URL.Path)

			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "rzp_test_abc", user)
			assert.Equal(t, "test_secret", pass)

			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			json.NewEncoder(w).Encode(razorpayOrderResponse{
				ID:       "order_R5aBcD",
				Entity:   "order",
				Amount:   gotBody.Amount,
				Currency: gotBody.Currency,
				Receipt:  gotBody.Receipt,
				Status:   "created",
			})
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server.URL)
		order, err := adapter.CreateOrder(context.Background(), payment.CreateOrderRequest{
			Amount:  decimal.NewFromFloat(129.99),
			Receipt: "rcpt_1",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(12999), gotBody.Amount)
		assert.Equal(t, "INR", gotBody.Currency)
		assert.Equal(t, "order_R5aBcD", order.ID)
		assert.Equal(t, "created", order.Status)
	})

	t.Run("truncates sub-paise fractions", func(t *testing.T) {
		var gotBody razorpayCreateOrderRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(razorpayOrderResponse{ID: "order_x", Status: "created"})
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server.URL)
		_, err := adapter.CreateOrder(context.Background(), payment.CreateOrderRequest{
			Amount: decimal.RequireFromString("10.999"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1099), gotBody.Amount)
	})

	t.Run("surfaces API error description", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount must be at least 100"}}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server.URL)
		_, err := adapter.CreateOrder(context.Background(), payment.CreateOrderRequest{
			Amount: decimal.NewFromFloat(0.5),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount must be at least 100")
	})

	t.Run("rejects response without order id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server.URL)
		_, err := adapter.CreateOrder(context.Background(), payment.CreateOrderRequest{
			Amount: decimal.NewFromInt(10),
		})
		assert.Error(t, err)
	})
}

func TestRazorpayAdapter_VerifySignature(t *testing.T) {
	adapter := newTestAdapter(t, "")

	sign := func(orderID, paymentID, secret string) string {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(orderID + "|" + paymentID))
		return hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("accepts valid signature", func(t *testing.T) {
		sig := sign("order_R5aBcD", "pay_29QQoUBi66xm2f", "test_secret")
		assert.True(t, adapter.VerifySignature("order_R5aBcD", "pay_29QQoUBi66xm2f", sig))
	})

	t.Run("rejects signature from wrong secret", func(t *testing.T) {
		sig := sign("order_R5aBcD", "pay_29QQoUBi66xm2f", "other_secret")
		assert.False(t, adapter.VerifySignature("order_R5aBcD", "pay_29QQoUBi66xm2f", sig))
	})

	t.Run("rejects signature over different ids", func(t *testing.T) {
		sig := sign("order_other", "pay_29QQoUBi66xm2f", "test_secret")
		assert.False(t, adapter.VerifySignature("order_R5aBcD", "pay_29QQoUBi66xm2f", sig))
	})

	t.Run("rejects empty inputs", func(t *testing.T) {
		assert.False(t, adapter.VerifySignature("", "pay_1", "sig"))
		assert.False(t, adapter.VerifySignature("order_1", "", "sig"))
		assert.False(t, adapter.VerifySignature("order_1", "pay_1", ""))
	})
}
