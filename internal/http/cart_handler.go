package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/takkat/storefront/internal/cart/domain"
)

// CartService is the slice of the cart service the handlers need.
type CartService interface {
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddLine(ctx context.Context, cartID string, line domain.CartLine) error
	UpdateQuantity(ctx context.Context, cartID string, key domain.LineKey, delta int) error
	RemoveLine(ctx context.Context, cartID string, key domain.LineKey) error
	ClearCart(ctx context.Context, cartID string) error
}

type CartHandler struct {
	carts   CartService
	timeout time.Duration
}

func NewCartHandler(carts CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{carts: carts, timeout: timeout}
}

type AddLineRequestDTO struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	SalePrice *float64 `json:"sale_price,omitempty"`
	Color     string   `json:"color,omitempty"`
	Size      string   `json:"size,omitempty"`
	ImageURL  string   `json:"image"`
	Quantity  int      `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
	Delta int    `json:"delta"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cart, err := h.carts.GetCart(ctx, cartIDFromContext(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddLineRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	cartID := cartIDFromContext(r.Context())
	line := domain.CartLine{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		SalePrice: req.SalePrice,
		Color:     req.Color,
		Size:      req.Size,
		ImageURL:  req.ImageURL,
		Quantity:  req.Quantity,
	}
	if err := h.carts.AddLine(ctx, cartID, line); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add item")
		return
	}

	cart, err := h.carts.GetCart(ctx, cartID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}
	respondJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta == 0 {
		respondError(w, http.StatusBadRequest, "invalid_delta", "delta must not be zero")
		return
	}

	cartID := cartIDFromContext(r.Context())
	key := domain.LineKey{ProductID: productID, Color: req.Color, Size: req.Size}
	if err := h.carts.UpdateQuantity(ctx, cartID, key, req.Delta); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update quantity")
		return
	}

	cart, err := h.carts.GetCart(ctx, cartID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	cartID := cartIDFromContext(r.Context())
	key := domain.LineKey{
		ProductID: productID,
		Color:     r.URL.Query().Get("color"),
		Size:      r.URL.Query().Get("size"),
	}
	if err := h.carts.RemoveLine(ctx, cartID, key); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to remove item")
		return
	}

	cart, err := h.carts.GetCart(ctx, cartID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := cartIDFromContext(r.Context())
	if err := h.carts.ClearCart(ctx, cartID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
