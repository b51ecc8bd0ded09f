package repositories

import (
	"context"
	"fmt"

	"boutique/internal/models"

	"gorm.io/gorm"
)

// StatsRepository answers the aggregate queries of the admin dashboard.
type StatsRepository interface {
	CountOrders(ctx context.Context, status string) (int64, error)
	SumRevenue(ctx context.Context) (float64, error)
	TopProducts(ctx context.Context, limit int) ([]models.ProductSales, error)
}

// GORMStatsRepository is a GORM implementation of StatsRepository.
type GORMStatsRepository struct {
	db *gorm.DB
}

// NewGORMStatsRepository creates a new instance of GORMStatsRepository.
func NewGORMStatsRepository(db *gorm.DB) *GORMStatsRepository {
	return &GORMStatsRepository{db: db}
}

// CountOrders counts orders, restricted to status when it is not empty.
func (r *GORMStatsRepository) CountOrders(ctx context.Context, status string) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("order_status = ?", status)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}

// SumRevenue totals the price of every order.
func (r *GORMStatsRepository) SumRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}

// TopProducts ranks ordered item names by quantity sold.
func (r *GORMStatsRepository) TopProducts(ctx context.Context, limit int) ([]models.ProductSales, error) {
	var sales []models.ProductSales
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("name, SUM(quantity) AS total_sold, SUM(quantity * price) AS revenue").
		Group("name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}
	return sales, nil
}
