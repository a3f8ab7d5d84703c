package report

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderStats is the slice of order data the dashboard needs
type OrderStats interface {
	CountAll(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

// ProductStats is the slice of catalog data the dashboard needs
type ProductStats interface {
	CountActive(ctx context.Context) (int64, error)
}

// UserStats is the slice of account data the dashboard needs
type UserStats interface {
	CountAll(ctx context.Context) (int64, error)
}

// DashboardResponse is the admin dashboard summary
type DashboardResponse struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalOrders   int64           `json:"total_orders"`
	TotalProducts int64           `json:"total_products"`
	TotalUsers    int64           `json:"total_users"`
}

// DashboardService aggregates store-wide statistics
type DashboardService struct {
	orders   OrderStats
	products ProductStats
	users    UserStats
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(orders OrderStats, products ProductStats, users UserStats) *DashboardService {
	return &DashboardService{
		orders:   orders,
		products: products,
		users:    users,
	}
}

// GetStats returns the dashboard summary. Revenue counts only delivered
// orders.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardResponse, error) {
	revenue, err := s.orders.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	orderCount, err := s.orders.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	productCount, err := s.products.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	userCount, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		TotalRevenue:  revenue,
		TotalOrders:   orderCount,
		TotalProducts: productCount,
		TotalUsers:    userCount,
	}, nil
}
