package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/takkat/storefront/internal/orders/domain"
	"github.com/takkat/storefront/internal/orders/repository"
)

// OrderGetter is the slice of the order repository the tracking page needs.
type OrderGetter interface {
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
}

type OrdersHandler struct {
	orders  OrderGetter
	timeout time.Duration
}

func NewOrdersHandler(orders OrderGetter, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{orders: orders, timeout: timeout}
}

type TrackingResponseDTO struct {
	Order           *domain.Order  `json:"order"`
	Stages          []domain.Stage `json:"stages"`
	ProgressPercent int            `json:"progress_percent"`
}

// Track returns the order together with its derived tracking bar. Anyone
// holding the order ID may view it; the ID itself is the capability.
func (h *OrdersHandler) Track(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")
	order, err := h.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}

	respondJSON(w, http.StatusOK, TrackingResponseDTO{
		Order:           order,
		Stages:          domain.Stages(order.Status),
		ProgressPercent: domain.ProgressPercent(order.Status),
	})
}
