package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/takkat/storefront/internal/orders/domain"
	"github.com/takkat/storefront/internal/orders/repository"
)

const pageSize = 10

var ErrInvalidStatus = errors.New("unknown order status")

// OrderConsole is the back-office view over the same order records the
// shopper-facing flow creates. Status is the only thing it mutates.
type OrderConsole struct {
	orders repository.OrderRepository
}

func NewOrderConsole(orders repository.OrderRepository) *OrderConsole {
	return &OrderConsole{orders: orders}
}

func (c *OrderConsole) List(ctx context.Context, pageToken string) ([]*domain.Order, string, error) {
	orders, next, err := c.orders.ListOrders(ctx, pageToken, pageSize)
	if err != nil {
		return nil, "", fmt.Errorf("list orders: %w", err)
	}
	return orders, next, nil
}

// SetStatus overwrites the order's status. Any status may replace any other;
// only enum membership is checked. Concurrent admins are not reconciled —
// the last write wins.
func (c *OrderConsole) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return c.orders.UpdateStatus(ctx, orderID, status)
}
