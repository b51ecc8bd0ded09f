package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"boutique/internal/logger"
	"boutique/internal/models"
	"boutique/internal/repositories"

	"go.uber.org/zap"
)

// maxOrderNumberAttempts bounds regeneration after an order number collision.
const maxOrderNumberAttempts = 5

// OrderNotifier announces a committed order. Implementations may be slow or
// fail; OrderService never lets either affect the caller.
type OrderNotifier interface {
	NotifyOrderCreated(ctx context.Context, order *models.Order) error
}

// CreateOrderInput is a cart submitted by a customer.
type CreateOrderInput struct {
	OrderItems      []models.OrderItem     `json:"orderItems" validate:"required,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	TotalPrice      float64                `json:"totalPrice" validate:"gte=0"`
	Notes           string                 `json:"notes" validate:"max=500"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo      repositories.OrderRepository
	notifier       OrderNotifier
	notifyTimeout  time.Duration
	newOrderNumber func() string
	inflight       sync.WaitGroup
}

// NewOrderService creates a new OrderService. notifier may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, notifier OrderNotifier, notifyTimeout time.Duration) *OrderService {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &OrderService{
		orderRepo:      orderRepo,
		notifier:       notifier,
		notifyTimeout:  notifyTimeout,
		newOrderNumber: NewOrderNumber,
	}
}

// CreateOrder validates the cart, stores it as a pending order of userID and
// dispatches the order notification in the background.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (*models.Order, error) {
	if err := validateCart(in); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:          userID,
		OrderItems:      in.OrderItems,
		ShippingAddress: in.ShippingAddress,
		TotalPrice:      in.TotalPrice,
		Notes:           in.Notes,
		OrderStatus:     models.OrderStatusPending,
	}

	var err error
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		order.ID = ""
		order.OrderNumber = s.newOrderNumber()
		order.CreatedAt = time.Now()
		err = s.orderRepo.Create(ctx, order)
		if !errors.Is(err, repositories.ErrDuplicate) {
			break
		}
		logger.FromCtx(ctx).Warn("order number collision, regenerating",
			zap.String("order_number", order.OrderNumber),
			zap.Int("attempt", attempt),
		)
	}
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, fmt.Errorf("%w: could not allocate a unique order number", ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	created, err := s.orderRepo.GetByID(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created order: %w", err)
	}

	s.dispatchNotification(logger.RequestIDFrom(ctx), created)
	return created, nil
}

// dispatchNotification runs the notifier detached from the request, bounded
// by notifyTimeout.
func (s *OrderService) dispatchNotification(requestID string, order *models.Order) {
	if s.notifier == nil {
		return
	}
	snapshot := *order

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx, cancel := context.WithTimeout(logger.WithRequestID(context.Background(), requestID), s.notifyTimeout)
		defer cancel()

		log := logger.FromCtx(ctx).With(zap.String("order_number", snapshot.OrderNumber))
		if err := s.notifier.NotifyOrderCreated(ctx, &snapshot); err != nil {
			log.Error("order notification failed", zap.Error(err))
			return
		}
		log.Info("order notification sent")
	}()
}

// Wait blocks until every in-flight notification has finished.
func (s *OrderService) Wait() {
	s.inflight.Wait()
}

// GetMyOrders lists the orders of userID, newest first.
func (s *OrderService) GetMyOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// GetOrderForUser returns an order only to its owner. Another user's order
// yields ErrUnauthorized, a missing one ErrNotFound.
func (s *OrderService) GetOrderForUser(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w to view this order", ErrUnauthorized)
	}
	return order, nil
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// ListOrders returns one page of all orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, page, limit int) ([]models.Order, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultOrderPageSize
	}
	orders, total, err := s.orderRepo.List(ctx, page, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, models.NewPagination(page, limit, total), nil
}

// UpdateOrderStatus moves an order to status. Delivered orders get their
// delivery time stamped.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status string) (*models.Order, error) {
	if !isOrderStatus(status) {
		return nil, fmt.Errorf("%w: invalid order status: %s", ErrValidation, status)
	}

	var deliveredAt *time.Time
	if status == models.OrderStatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}
	if err := s.orderRepo.UpdateStatus(ctx, id, status, deliveredAt); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(ctx, id)
}

func validateCart(in CreateOrderInput) error {
	if len(in.OrderItems) == 0 {
		return fmt.Errorf("%w: no order items", ErrValidation)
	}
	for i, item := range in.OrderItems {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d: quantity must be positive", ErrValidation, i)
		}
		if item.Price <= 0 {
			return fmt.Errorf("%w: item %d: price must be positive", ErrValidation, i)
		}
	}
	addr := in.ShippingAddress
	if addr.Name == "" || addr.Address == "" || addr.City == "" || addr.Phone == "" {
		return fmt.Errorf("%w: shipping address requires name, address, city and phone", ErrValidation)
	}
	if in.TotalPrice < 0 {
		return fmt.Errorf("%w: total price cannot be negative", ErrValidation)
	}
	if len(in.Notes) > 500 {
		return fmt.Errorf("%w: notes cannot be more than 500 characters", ErrValidation)
	}
	return nil
}

func isOrderStatus(status string) bool {
	for _, s := range models.OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
