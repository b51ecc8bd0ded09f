package services

import (
	"context"

	"boutique/internal/models"
	"boutique/internal/repositories"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	recentOrdersLimit = 5
	topProductsLimit  = 5
)

// StatsService builds the admin dashboard.
type StatsService struct {
	stats    repositories.StatsRepository
	orders   repositories.OrderRepository
	products repositories.ProductRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(stats repositories.StatsRepository, orders repositories.OrderRepository, products repositories.ProductRepository) *StatsService {
	return &StatsService{stats: stats, orders: orders, products: products}
}

// Dashboard runs the dashboard queries concurrently.
func (s *StatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.TotalOrders, err = s.stats.CountOrders(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		out.PendingOrders, err = s.stats.CountOrders(ctx, models.OrderStatusPending)
		return err
	})
	g.Go(func() (err error) {
		out.TotalProducts, err = s.products.Count(ctx)
		return err
	})
	g.Go(func() error {
		revenue, err := s.stats.SumRevenue(ctx)
		if err != nil {
			return err
		}
		out.TotalRevenue = roundMoney(revenue)
		return nil
	})
	g.Go(func() error {
		recent, _, err := s.orders.List(ctx, 1, recentOrdersLimit)
		out.RecentOrders = recent
		return err
	})
	g.Go(func() error {
		top, err := s.stats.TopProducts(ctx, topProductsLimit)
		for i := range top {
			top[i].Revenue = roundMoney(top[i].Revenue)
		}
		out.TopProducts = top
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.RecentOrders == nil {
		out.RecentOrders = []models.Order{}
	}
	if out.TopProducts == nil {
		out.TopProducts = []models.ProductSales{}
	}
	return &out, nil
}

func roundMoney(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
