// Package notifier announces new orders by email, broker event or log line.
package notifier

import (
	"context"
	"errors"

	"boutique/internal/logger"
	"boutique/internal/models"

	"go.uber.org/zap"
)

// Notifier is implemented by every order announcer in this package.
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, order *models.Order) error
}

// LogNotifier writes the order to the log. Used when no mail server is set up.
type LogNotifier struct{}

func (LogNotifier) NotifyOrderCreated(ctx context.Context, order *models.Order) error {
	logger.FromCtx(ctx).Info("new order received",
		zap.String("order_number", order.OrderNumber),
		zap.String("order_id", order.ID),
		zap.Float64("total_price", order.TotalPrice),
		zap.Int("items", len(order.OrderItems)),
	)
	return nil
}

// Fanout calls every notifier and joins their errors.
type Fanout []Notifier

func (f Fanout) NotifyOrderCreated(ctx context.Context, order *models.Order) error {
	var errs []error
	for _, n := range f {
		if err := n.NotifyOrderCreated(ctx, order); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
