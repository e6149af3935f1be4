package mailer

import (
	"context"

	"github.com/takkat/storefront/internal/orders/domain"
)

// Mailer sends the order confirmation. Dispatch is best-effort: callers treat
// a failure as a warning, never as a reason to roll back the order.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order *domain.Order) error
}
