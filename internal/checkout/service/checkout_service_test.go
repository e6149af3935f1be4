package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cartdomain "github.com/takkat/storefront/internal/cart/domain"
	"github.com/takkat/storefront/internal/orders/domain"
	"github.com/takkat/storefront/internal/pricing"
)

func validRequest() SubmitRequest {
	return SubmitRequest{
		CartID:          "c1",
		FullName:        "Lina Khalil",
		Email:           "lina@example.com",
		ShippingAddress: "12 Main St",
		PhoneNumber:     "0590000000",
		Zone:            pricing.ZoneWestern,
		DiscountCode:    "welcome",
		IdempotencyKey:  "key-1",
	}
}

func filledCart() *cartdomain.Cart {
	sale := 80.0
	return &cartdomain.Cart{
		CartID: "c1",
		Lines: []cartdomain.CartLine{
			{ProductID: "p1", Name: "gold ring", Price: 100, SalePrice: &sale, Quantity: 2, Color: "red", Size: "M", ImageURL: "https://cdn/img.jpg"},
		},
	}
}

func newSUT(carts *mockCartReader, orders *mockOrderRepo, m *mockMailer) *CheckoutService {
	sut := NewCheckoutService(carts, orders, m, pricing.DefaultDiscountCodes())
	sut.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	return sut
}

func TestSubmit_Success(t *testing.T) {
	carts := &mockCartReader{cart: filledCart()}
	orders := newMockOrderRepo()
	m := &mockMailer{}

	sut := newSUT(carts, orders, m)
	orderID, err := sut.Submit(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	order, err := orders.GetOrderByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "Cash on Delivery", order.PaymentMethod)
	assert.Equal(t, 160.0, order.Subtotal)
	assert.Equal(t, 20.0, order.DeliveryFee)
	assert.Equal(t, 16.0, order.Discount)
	assert.Equal(t, 164.0, order.Total)
	assert.Equal(t, "2026-03-21", order.ExpectedArrival)
	assert.True(t, strings.HasPrefix(order.TrackingNumber, "TK-"))
	assert.Len(t, order.TrackingNumber, len("TK-")+8)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 80.0, order.Items[0].Price, "charged price is the sale price")
	assert.Equal(t, "https://cdn/img.jpg", order.Items[0].Image)

	assert.Equal(t, 1, m.sentCount())
	assert.True(t, carts.wasCleared())
}

func TestSubmit_EmptyCartRejectedBeforePersistence(t *testing.T) {
	carts := &mockCartReader{cart: &cartdomain.Cart{CartID: "c1"}}
	orders := newMockOrderRepo()
	m := &mockMailer{}

	sut := newSUT(carts, orders, m)
	_, err := sut.Submit(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, orders.createCount())
	assert.Equal(t, 0, m.sentCount())
}

func TestSubmit_MalformedEmailRejectedBeforePersistence(t *testing.T) {
	carts := &mockCartReader{cart: filledCart()}
	orders := newMockOrderRepo()

	sut := newSUT(carts, orders, &mockMailer{})

	req := validRequest()
	req.Email = "a@b" // no dot-segment after the @
	_, err := sut.Submit(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, 0, orders.createCount())
}

func TestSubmit_ValidationFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SubmitRequest)
		wantErr error
	}{
		{"missing name", func(r *SubmitRequest) { r.FullName = "  " }, ErrMissingFullName},
		{"missing address", func(r *SubmitRequest) { r.ShippingAddress = "" }, ErrMissingAddress},
		{"missing phone", func(r *SubmitRequest) { r.PhoneNumber = "" }, ErrMissingPhone},
		{"no zone", func(r *SubmitRequest) { r.Zone = "" }, ErrUnknownZone},
		{"unknown zone", func(r *SubmitRequest) { r.Zone = "mars" }, ErrUnknownZone},
		{"missing idempotency key", func(r *SubmitRequest) { r.IdempotencyKey = "" }, ErrMissingIdempotencyKey},
		{"email with spaces", func(r *SubmitRequest) { r.Email = "a b@c.com" }, ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := newMockOrderRepo()
			sut := newSUT(&mockCartReader{cart: filledCart()}, orders, &mockMailer{})

			req := validRequest()
			tt.mutate(&req)
			_, err := sut.Submit(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, 0, orders.createCount())
		})
	}
}

func TestSubmit_PersistenceFailureKeepsCart(t *testing.T) {
	carts := &mockCartReader{cart: filledCart()}
	orders := newMockOrderRepo()
	orders.createErr = fmt.Errorf("database error")
	m := &mockMailer{}

	sut := newSUT(carts, orders, m)
	_, err := sut.Submit(context.Background(), validRequest())

	require.ErrorContains(t, err, "database error")
	assert.False(t, carts.wasCleared())
	assert.Equal(t, 0, m.sentCount())
}

func TestSubmit_MailFailureDoesNotRollBack(t *testing.T) {
	carts := &mockCartReader{cart: filledCart()}
	orders := newMockOrderRepo()
	m := &mockMailer{err: fmt.Errorf("smtp unavailable")}

	sut := newSUT(carts, orders, m)
	orderID, err := sut.Submit(context.Background(), validRequest())

	require.NoError(t, err, "email failure is a warning, not an error")
	_, err = orders.GetOrderByID(context.Background(), orderID)
	assert.NoError(t, err, "order stands")
	assert.True(t, carts.wasCleared(), "cart is cleared even when the email failed")
}

func TestSubmit_ReplayReturnsExistingOrder(t *testing.T) {
	carts := &mockCartReader{cart: filledCart()}
	orders := newMockOrderRepo()
	m := &mockMailer{}

	sut := newSUT(carts, orders, m)

	first, err := sut.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	// Same idempotency key again, e.g. retry-after-timeout.
	carts.cart = filledCart()
	second, err := sut.Submit(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, orders.createCount())
	assert.Equal(t, 1, m.sentCount())
}

func TestSubmit_NoDiscountCode(t *testing.T) {
	carts := &mockCartReader{cart: filledCart()}
	orders := newMockOrderRepo()

	sut := newSUT(carts, orders, &mockMailer{})

	req := validRequest()
	req.DiscountCode = ""
	orderID, err := sut.Submit(context.Background(), req)
	require.NoError(t, err)

	order, _ := orders.GetOrderByID(context.Background(), orderID)
	assert.Equal(t, 0.0, order.Discount)
	assert.Equal(t, 180.0, order.Total)
}
