package repositories

import (
	"context"
	"time"

	"boutique/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create persists an order together with its items. It returns
	// ErrDuplicate when the order number is already taken.
	Create(ctx context.Context, order *models.Order) error
	// GetByID returns the order with its items and owning user expanded.
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	List(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id, status string, deliveredAt *time.Time) error
}
