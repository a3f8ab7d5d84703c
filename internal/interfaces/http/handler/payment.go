package handler

import (
	apppayment "github.com/ayustore/backend/internal/application/payment"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler serves the Razorpay checkout endpoints
type PaymentHandler struct {
	BaseHandler
	payments *apppayment.PaymentService
	auth     gin.HandlerFunc
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *apppayment.PaymentService, auth gin.HandlerFunc) *PaymentHandler {
	return &PaymentHandler{payments: payments, auth: auth}
}

// RegisterRoutes registers the payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments/razorpay")
	payments.Use(h.auth)
	payments.POST("/create", h.CreateOrder)
	payments.POST("/verify", h.Verify)
}

// CreateOrder opens a gateway payment intent for the order named in the
// orderId query parameter
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Query("orderId"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing orderId")
		return
	}

	result, err := h.payments.CreateRazorpayOrder(c.Request.Context(), principal,
		apppayment.CreateRazorpayOrderRequest{OrderID: orderID})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Verify checks the checkout callback signature
func (h *PaymentHandler) Verify(c *gin.Context) {
	principal, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req apppayment.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.payments.VerifyPayment(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
