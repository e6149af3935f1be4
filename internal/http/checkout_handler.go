package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/takkat/storefront/internal/checkout/service"
	"github.com/takkat/storefront/internal/pricing"
)

// CheckoutSubmitter is the slice of the checkout service the handler needs.
type CheckoutSubmitter interface {
	Submit(ctx context.Context, req service.SubmitRequest) (string, error)
}

type CheckoutHandler struct {
	checkout CheckoutSubmitter
	timeout  time.Duration
}

func NewCheckoutHandler(checkout CheckoutSubmitter, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, timeout: timeout}
}

type CheckoutRequestDTO struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	ShippingAddress string `json:"shipping_address"`
	PhoneNumber     string `json:"phone_number"`
	Zone            string `json:"zone"`
	DiscountCode    string `json:"discount_code,omitempty"`
}

type CheckoutResponseDTO struct {
	OrderID string `json:"order_id"`
}

// Submit places the order. The idempotency key comes from the Idempotency-Key
// header; a request without one gets a fresh key, which protects against
// transport-level retries but not against a second user click.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if key == "" {
		key = uuid.NewString()
	}

	orderID, err := h.checkout.Submit(ctx, service.SubmitRequest{
		CartID:          cartIDFromContext(r.Context()),
		FullName:        req.FullName,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		PhoneNumber:     req.PhoneNumber,
		Zone:            pricing.Zone(req.Zone),
		DiscountCode:    req.DiscountCode,
		IdempotencyKey:  key,
	})
	if err != nil {
		if service.IsValidationError(err) {
			respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to submit order")
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{OrderID: orderID})
}
