package repository

import (
	"context"

	"github.com/takkat/storefront/internal/cart/domain"
)

// CartRepository defines the interface for cart data operations
// Consumers define this interface, not the MongoDB implementation
type CartRepository interface {
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	ReplaceLines(ctx context.Context, cartID string, lines []domain.CartLine) error
	DeleteCart(ctx context.Context, cartID string) error
}
