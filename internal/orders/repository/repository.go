package repository

import (
	"context"
	"errors"

	"github.com/takkat/storefront/internal/orders/domain"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
	ErrDuplicateIdempotency   = errors.New("order for this idempotency key already exists")
)

// OrderRepository defines the interface for order persistence.
// Consumers define this interface, not the MongoDB implementation
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	ListOrders(ctx context.Context, pageToken string, pageSize int) ([]*domain.Order, string, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
