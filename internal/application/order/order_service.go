package order

import (
	"context"

	"github.com/ayustore/backend/internal/domain/identity"
	"github.com/ayustore/backend/internal/domain/order"
	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/ayustore/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService handles the order ledger
type OrderService struct {
	orderRepo     order.Repository
	checkoutScope CheckoutScope
	metrics       *telemetry.StoreMetrics
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository, checkoutScope CheckoutScope) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		checkoutScope: checkoutScope,
	}
}

// SetStoreMetrics sets the business metrics collector
func (s *OrderService) SetStoreMetrics(m *telemetry.StoreMetrics) {
	s.metrics = m
}

// Create turns a cart into a pending order. Each line snapshots the
// product's current name, image and price, and decrements stock with an
// atomic conditional update. Any failure rolls the whole checkout back.
func (s *OrderService) Create(ctx context.Context, principal identity.Principal, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Order must contain at least one item")
	}

	newOrder, err := order.NewOrder(principal.UserID, req.Total, order.ShippingAddress{
		FirstName: req.ShippingAddress.FirstName,
		LastName:  req.ShippingAddress.LastName,
		Address:   req.ShippingAddress.Address,
		City:      req.ShippingAddress.City,
		ZipCode:   req.ShippingAddress.ZipCode,
		Country:   req.ShippingAddress.Country,
	})
	if err != nil {
		return nil, err
	}

	err = s.checkoutScope.Execute(ctx, func(repos CheckoutRepositories) error {
		for _, item := range req.Items {
			product, err := repos.Products().FindActiveByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if err := repos.Products().DecrementStock(ctx, product.ID, item.Quantity); err != nil {
				return err
			}
			if err := newOrder.AddItem(product.ID, product.Name, product.Image, product.Price, item.Quantity); err != nil {
				return err
			}
		}
		return repos.Orders().Save(ctx, newOrder)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated(ctx, newOrder.Total)
	}

	return ToOrderResponse(newOrder), nil
}

// GetByID returns an order visible to the principal. Non-owners get
// not-found rather than forbidden so order existence is not leaked.
func (s *OrderService) GetByID(ctx context.Context, principal identity.Principal, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != principal.UserID && !principal.IsAdmin() {
		return nil, shared.ErrNotFound
	}
	return ToOrderResponse(o), nil
}

// ListForUser returns the principal's own orders, newest first
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// ListAll returns every order, newest first
func (s *OrderService) ListAll(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// UpdateStatus overrides an order's status. Any valid enum value is
// accepted from any current state.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.SetStatus(order.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, o.ID, o.Status); err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// CountAll returns the total number of orders for the dashboard
func (s *OrderService) CountAll(ctx context.Context) (int64, error) {
	return s.orderRepo.Count(ctx)
}

// TotalRevenue returns the summed total of delivered orders
func (s *OrderService) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return s.orderRepo.SumDeliveredTotals(ctx)
}
