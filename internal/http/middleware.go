package http

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const cartIDKey contextKey = "cart_id"

// CartIDHeader carries the browser-generated cart identifier. The server
// never mints cart IDs; a request without one has no cart to act on.
const CartIDHeader = "X-Cart-ID"

const maxCartIDLength = 64

// CartIDMiddleware rejects cart requests that do not identify a cart.
func CartIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartID := strings.TrimSpace(r.Header.Get(CartIDHeader))
		if cartID == "" || len(cartID) > maxCartIDLength {
			respondError(w, http.StatusBadRequest, "missing_cart_id", "a valid X-Cart-ID header is required")
			return
		}
		ctx := context.WithValue(r.Context(), cartIDKey, cartID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func cartIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(cartIDKey).(string); ok {
		return id
	}
	return ""
}
