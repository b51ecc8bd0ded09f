package notifier

import (
	"context"
	"time"

	"boutique/internal/models"
)

// OrderCreatedKey is the routing key of new-order events.
const OrderCreatedKey = "order.created"

// Publisher sends a JSON payload to a message broker.
type Publisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

// OrderCreatedEvent is the broker payload for a new order.
type OrderCreatedEvent struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	UserID      string    `json:"userId"`
	TotalPrice  float64   `json:"totalPrice"`
	ItemCount   int       `json:"itemCount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BrokerNotifier publishes new orders to a message broker.
type BrokerNotifier struct {
	pub Publisher
}

func NewBrokerNotifier(pub Publisher) *BrokerNotifier {
	return &BrokerNotifier{pub: pub}
}

func (n *BrokerNotifier) NotifyOrderCreated(ctx context.Context, order *models.Order) error {
	count := 0
	for _, item := range order.OrderItems {
		count += item.Quantity
	}
	return n.pub.PublishJSON(ctx, OrderCreatedKey, OrderCreatedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		TotalPrice:  order.TotalPrice,
		ItemCount:   count,
		Status:      order.OrderStatus,
		CreatedAt:   order.CreatedAt,
	})
}
