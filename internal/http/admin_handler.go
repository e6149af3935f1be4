package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/takkat/storefront/internal/admin"
	"github.com/takkat/storefront/internal/orders/domain"
	"github.com/takkat/storefront/internal/orders/repository"
)

// AdminAuthenticator is the slice of admin.Auth the login endpoint needs.
type AdminAuthenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// OrderConsole is the back-office order surface.
type OrderConsole interface {
	List(ctx context.Context, pageToken string) ([]*domain.Order, string, error)
	SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

type AdminHandler struct {
	auth    AdminAuthenticator
	console OrderConsole
	timeout time.Duration
}

func NewAdminHandler(auth AdminAuthenticator, console OrderConsole, timeout time.Duration) *AdminHandler {
	return &AdminHandler{auth: auth, console: console, timeout: timeout}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Token string `json:"token"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		// Always the same answer, whether the email or the password was wrong.
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}
	respondJSON(w, http.StatusOK, LoginResponseDTO{Token: token})
}

type OrderPageDTO struct {
	Orders        []*domain.Order `json:"orders"`
	NextPageToken string          `json:"next_page_token,omitempty"`
}

// ListOrders returns one page of orders, newest first. The search, status and
// date query parameters filter the fetched page only; pagination tokens are
// computed before filtering.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, next, err := h.console.List(ctx, r.URL.Query().Get("page_token"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}

	orders = admin.FilterOrders(orders, admin.Filter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		Date:   r.URL.Query().Get("date"),
	})

	respondJSON(w, http.StatusOK, OrderPageDTO{Orders: orders, NextPageToken: next})
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	orderID := chi.URLParam(r, "order_id")
	err := h.console.SetStatus(ctx, orderID, domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		case errors.Is(err, repository.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "not_found", "order not found")
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to update status")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}
