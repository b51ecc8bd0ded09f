package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"boutique/internal/models"

	"github.com/google/uuid"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
// Like the SQL store it rejects duplicate order numbers.
type MemoryOrderRepository struct {
	orders   map[string]models.Order
	byNumber map[string]string
	users    UserRepository
	mu       sync.RWMutex
}

// NewMemoryOrderRepository creates a new MemoryOrderRepository. users, when
// non-nil, is used to expand the owner of an order on GetByID.
func NewMemoryOrderRepository(users UserRepository) *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders:   make(map[string]models.Order),
		byNumber: make(map[string]string),
		users:    users,
	}
}

// Create adds a new order.
func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byNumber[order.OrderNumber]; taken {
		return fmt.Errorf("order number %s: %w", order.OrderNumber, ErrDuplicate)
	}
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	stored := *order
	stored.User = nil
	stored.OrderItems = append([]models.OrderItem(nil), order.OrderItems...)
	r.orders[order.ID] = stored
	r.byNumber[order.OrderNumber] = order.ID
	return nil
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	order, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	if r.users != nil {
		if user, err := r.users.GetByID(ctx, order.UserID); err == nil {
			order.User = user
		}
	}
	return &order, nil
}

// ListByUser returns the orders of one user, newest first.
func (r *MemoryOrderRepository) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			list = append(list, order)
		}
	}
	sortNewestFirst(list)
	return list, nil
}

// List returns one page of all orders, newest first.
func (r *MemoryOrderRepository) List(_ context.Context, page, limit int) ([]models.Order, int64, error) {
	r.mu.RLock()
	all := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		all = append(all, order)
	}
	r.mu.RUnlock()

	sortNewestFirst(all)
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Order{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// UpdateStatus updates the status of an order.
func (r *MemoryOrderRepository) UpdateStatus(_ context.Context, id, status string, deliveredAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	order.OrderStatus = status
	if deliveredAt != nil {
		at := *deliveredAt
		order.DeliveredAt = &at
	}
	r.orders[id] = order
	return nil
}

// Len reports how many orders are stored.
func (r *MemoryOrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
