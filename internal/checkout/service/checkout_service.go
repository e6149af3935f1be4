package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	cartdomain "github.com/takkat/storefront/internal/cart/domain"
	"github.com/takkat/storefront/internal/mailer"
	"github.com/takkat/storefront/internal/orders/domain"
	r "github.com/takkat/storefront/internal/orders/repository"
	"github.com/takkat/storefront/internal/pricing"
	"golang.org/x/sync/singleflight"
)

// Deliberately loose: the pattern rejects obviously broken addresses, it does
// not try to prove deliverability.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	paymentMethodCOD    = "Cash on Delivery"
	expectedArrivalDays = 7
	trackingAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	trackingCodeLength  = 8
)

// CartReader is the slice of the cart service checkout needs.
type CartReader interface {
	GetCart(ctx context.Context, cartID string) (*cartdomain.Cart, error)
	ClearCart(ctx context.Context, cartID string) error
}

type SubmitRequest struct {
	CartID          string
	FullName        string
	Email           string
	ShippingAddress string
	PhoneNumber     string
	Zone            pricing.Zone
	DiscountCode    string
	IdempotencyKey  string
}

type CheckoutService struct {
	carts  CartReader
	orders r.OrderRepository
	mailer mailer.Mailer
	codes  pricing.DiscountCodes
	now    func() time.Time

	// Coalesces concurrent submissions of the same idempotency key, so a
	// double click cannot race two inserts before the unique index catches it.
	sfg singleflight.Group
}

func NewCheckoutService(carts CartReader, orders r.OrderRepository, m mailer.Mailer, codes pricing.DiscountCodes) *CheckoutService {
	return &CheckoutService{
		carts:  carts,
		orders: orders,
		mailer: m,
		codes:  codes,
		now:    time.Now,
	}
}

// Submit turns the current cart plus shipping info into a persisted order,
// dispatches the confirmation email best-effort, and clears the cart. The
// order stands even when the email or the cart clear fails; a persistence
// failure leaves the cart untouched so the shopper can retry.
func (s *CheckoutService) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	v, err, _ := s.sfg.Do(req.IdempotencyKey, func() (interface{}, error) {
		return s.submit(ctx, req)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *CheckoutService) submit(ctx context.Context, req SubmitRequest) (string, error) {
	if err := validate(req); err != nil {
		return "", err
	}

	cart, err := s.carts.GetCart(ctx, req.CartID)
	if err != nil {
		return "", fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil || len(cart.Lines) == 0 {
		return "", ErrEmptyCart
	}

	// Replays of an already-submitted checkout return the existing order.
	existing, err := s.orders.GetOrderByIdempotencyKey(ctx, req.IdempotencyKey)
	if err == nil {
		slog.Info("duplicate checkout detected, returning existing order",
			"idempotency_key", req.IdempotencyKey, "order_id", existing.ID)
		return existing.ID, nil
	}
	if !errors.Is(err, r.ErrIdempotencyKeyNotFound) {
		return "", fmt.Errorf("failed to check idempotency: %w", err)
	}

	subtotal := pricing.Subtotal(cart.Lines)
	fee := pricing.DeliveryFee(req.Zone)
	discount := pricing.DiscountAmount(subtotal, s.codes.Percent(req.DiscountCode))
	total := pricing.GrandTotal(subtotal, fee, discount)

	now := s.now()
	order := &domain.Order{
		ID:              r.NewOrderID(),
		FullName:        strings.TrimSpace(req.FullName),
		Email:           strings.TrimSpace(req.Email),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		PaymentMethod:   paymentMethodCOD,
		Items:           snapshotItems(cart.Lines),
		Subtotal:        subtotal,
		DeliveryFee:     fee,
		Discount:        discount,
		Total:           total,
		CreatedAt:       now,
		Status:          domain.StatusPending,
		ExpectedArrival: now.AddDate(0, 0, expectedArrivalDays).Format("2006-01-02"),
		TrackingNumber:  newTrackingNumber(),
		IdempotencyKey:  req.IdempotencyKey,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, r.ErrDuplicateIdempotency) {
			// Lost a race with a concurrent replay; the winner's order is ours.
			winner, lookupErr := s.orders.GetOrderByIdempotencyKey(ctx, req.IdempotencyKey)
			if lookupErr != nil {
				return "", fmt.Errorf("failed to resolve duplicate checkout: %w", lookupErr)
			}
			return winner.ID, nil
		}
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.mailer.SendOrderConfirmation(ctx, order); err != nil {
		slog.Warn("confirmation email failed, order stands", "order_id", order.ID, "error", err)
	}

	if err := s.carts.ClearCart(ctx, req.CartID); err != nil {
		slog.Warn("failed to clear cart after checkout", "cart_id", req.CartID, "error", err)
	}

	return order.ID, nil
}

func validate(req SubmitRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return ErrMissingFullName
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return ErrMissingAddress
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		return ErrMissingPhone
	}
	if !pricing.ValidZone(req.Zone) {
		return ErrUnknownZone
	}
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		return ErrMissingIdempotencyKey
	}
	return nil
}

func snapshotItems(lines []cartdomain.CartLine) []domain.OrderItem {
	items := make([]domain.OrderItem, len(lines))
	for i, line := range lines {
		price := line.Price
		if line.SalePrice != nil {
			price = *line.SalePrice
		}
		items[i] = domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     price,
			Quantity:  line.Quantity,
			Color:     line.Color,
			Size:      line.Size,
			Image:     line.ImageURL,
		}
	}
	return items
}

func newTrackingNumber() string {
	b := make([]byte, trackingCodeLength)
	for i := range b {
		b[i] = trackingAlphabet[rand.Intn(len(trackingAlphabet))]
	}
	return "TK-" + string(b)
}
