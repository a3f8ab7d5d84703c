package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apppayment "github.com/ayustore/backend/internal/application/payment"
	"github.com/ayustore/backend/internal/domain/identity"
	"github.com/ayustore/backend/internal/domain/order"
	"github.com/ayustore/backend/internal/domain/payment"
	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/ayustore/backend/internal/infrastructure/auth"
	"github.com/ayustore/backend/internal/infrastructure/config"
	razorpay "github.com/ayustore/backend/internal/infrastructure/payment"
	"github.com/ayustore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePaymentRepo is an in-memory payment.Repository for handler tests
type fakePaymentRepo struct {
	payments map[string]*payment.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*payment.Payment)}
}

func (r *fakePaymentRepo) FindByRazorpayOrderID(_ context.Context, razorpayOrderID string) (*payment.Payment, error) {
	if p, ok := r.payments[razorpayOrderID]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePaymentRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	for _, p := range r.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePaymentRepo) Save(_ context.Context, p *payment.Payment) error {
	r.payments[p.RazorpayOrderID] = p
	return nil
}

func (r *fakePaymentRepo) Update(_ context.Context, p *payment.Payment) error {
	r.payments[p.RazorpayOrderID] = p
	return nil
}

// fakeVerificationScope runs the verification callback directly
type fakeVerificationScope struct {
	payments *fakePaymentRepo
	orders   *fakeOrderRepo
}

func (s *fakeVerificationScope) Execute(_ context.Context, fn func(repos apppayment.VerificationRepositories) error) error {
	return fn(s)
}

func (s *fakeVerificationScope) Payments() payment.Repository { return s.payments }
func (s *fakeVerificationScope) Orders() order.Repository     { return s.orders }

// stubGateway answers gateway calls locally with real signature math
type stubGateway struct {
	adapter *razorpay.RazorpayAdapter
	orders  int
}

func newStubGateway(t *testing.T) *stubGateway {
	t.Helper()
	adapter, err := razorpay.NewRazorpayAdapter(&razorpay.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
	})
	require.NoError(t, err)
	return &stubGateway{adapter: adapter}
}

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (g *stubGateway) CreateOrder(_ context.Context, req payment.CreateOrderRequest) (*payment.GatewayOrder, error) {
	g.orders++
	return &payment.GatewayOrder{
		ID:       "order_stub_1",
		Amount:   req.Amount.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (g *stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return g.adapter.VerifySignature(orderID, paymentID, signature)
}

func (g *stubGateway) KeyID() string { return g.adapter.KeyID() }

type paymentTestEnv struct {
	router     *gin.Engine
	jwtService *auth.JWTService
	payments   *fakePaymentRepo
	orders     *fakeOrderRepo
	gateway    *stubGateway
	owner      uuid.UUID
	order      *order.Order
}

func setupPaymentRouter(t *testing.T) *paymentTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-with-enough-length",
		TokenExpiration: time.Hour,
		Issuer:          "ayustore-backend",
	})
	payments := newFakePaymentRepo()
	orders := newFakeOrderRepo()
	gateway := newStubGateway(t)
	scope := &fakeVerificationScope{payments: payments, orders: orders}
	svc := apppayment.NewPaymentService(payments, orders, gateway, scope)

	owner := uuid.New()
	o, err := order.NewOrder(owner, decimal.NewFromFloat(129.99), order.ShippingAddress{
		FirstName: "Asha", LastName: "Rao", Address: "12 MG Road",
		City: "Bengaluru", ZipCode: "560001",
	})
	require.NoError(t, err)
	require.NoError(t, orders.Save(context.Background(), o))

	r := gin.New()
	api := r.Group("/api")
	NewPaymentHandler(svc, middleware.RequireAuth(jwtService)).RegisterRoutes(api)

	return &paymentTestEnv{
		router:     r,
		jwtService: jwtService,
		payments:   payments,
		orders:     orders,
		gateway:    gateway,
		owner:      owner,
		order:      o,
	}
}

func (env *paymentTestEnv) bearerFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := env.jwtService.Generate(userID, "user@example.com", identity.RoleUser)
	require.NoError(t, err)
	return "Bearer " + token.Value
}

func (env *paymentTestEnv) createIntent(t *testing.T) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/create?orderId="+env.order.ID.String(), nil)
	req.Header.Set("Authorization", env.bearerFor(t, env.owner))
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestPaymentHandler_CreateOrder(t *testing.T) {
	t.Run("returns the checkout payload", func(t *testing.T) {
		env := setupPaymentRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/create?orderId="+env.order.ID.String(), nil)
		req.Header.Set("Authorization", env.bearerFor(t, env.owner))
		env.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "order_stub_1")
		assert.Contains(t, w.Body.String(), "12999")
		assert.Contains(t, w.Body.String(), "rzp_test_key")
	})

	t.Run("repeat call returns the same intent", func(t *testing.T) {
		env := setupPaymentRouter(t)
		env.createIntent(t)
		env.createIntent(t)
		assert.Equal(t, 1, env.gateway.orders)
	})

	t.Run("missing orderId is a bad request", func(t *testing.T) {
		env := setupPaymentRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/create", nil)
		req.Header.Set("Authorization", env.bearerFor(t, env.owner))
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("stranger's order reads as not found", func(t *testing.T) {
		env := setupPaymentRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/create?orderId="+env.order.ID.String(), nil)
		req.Header.Set("Authorization", env.bearerFor(t, uuid.New()))
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPaymentHandler_Verify(t *testing.T) {
	verifyBody := func(t *testing.T, signature string) *bytes.Reader {
		t.Helper()
		body, err := json.Marshal(map[string]string{
			"razorpay_order_id":   "order_stub_1",
			"razorpay_payment_id": "pay_1",
			"razorpay_signature":  signature,
		})
		require.NoError(t, err)
		return bytes.NewReader(body)
	}

	t.Run("valid signature settles payment and order", func(t *testing.T) {
		env := setupPaymentRouter(t)
		env.createIntent(t)

		sig := signPayload("rzp_test_secret", "order_stub_1", "pay_1")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/verify", verifyBody(t, sig))
		req.Header.Set("Authorization", env.bearerFor(t, env.owner))
		env.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "COMPLETED")
		assert.Equal(t, order.StatusProcessing, env.orders.orders[env.order.ID].Status)
	})

	t.Run("tampered signature fails the payment", func(t *testing.T) {
		env := setupPaymentRouter(t)
		env.createIntent(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/verify", verifyBody(t, "tampered"))
		req.Header.Set("Authorization", env.bearerFor(t, env.owner))
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, payment.StatusFailed, env.payments.payments["order_stub_1"].Status)
		assert.Equal(t, order.StatusPending, env.orders.orders[env.order.ID].Status)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		env := setupPaymentRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/razorpay/verify",
			bytes.NewReader([]byte(`{"razorpay_order_id":"order_stub_1"}`)))
		req.Header.Set("Authorization", env.bearerFor(t, env.owner))
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})
}
