package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takkat/storefront/internal/checkout/service"
)

type checkoutMock struct {
	orderID string
	err     error
	lastReq service.SubmitRequest
}

func (m *checkoutMock) Submit(ctx context.Context, req service.SubmitRequest) (string, error) {
	m.lastReq = req
	if m.err != nil {
		return "", m.err
	}
	return m.orderID, nil
}

func checkoutRouter(mock *checkoutMock) *chi.Mux {
	handler := NewCheckoutHandler(mock, 5*time.Second)
	r := chi.NewRouter()
	r.With(CartIDMiddleware).Post("/checkout", handler.Submit)
	return r
}

func validCheckoutBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(CheckoutRequestDTO{
		FullName:        "Dana Cohen",
		Email:           "dana@example.com",
		ShippingAddress: "12 Herzl St, Tel Aviv",
		PhoneNumber:     "0501234567",
		Zone:            "western-region",
		DiscountCode:    "welcome",
	})
	require.NoError(t, err)
	return body
}

func TestCheckoutSubmit_Success(t *testing.T) {
	mock := &checkoutMock{orderID: "order-123"}
	router := checkoutRouter(mock)

	request := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(validCheckoutBody(t)))
	request.Header.Set(CartIDHeader, "cart-1")
	request.Header.Set("Idempotency-Key", "key-abc")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	var resp CheckoutResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "order-123", resp.OrderID)

	assert.Equal(t, "cart-1", mock.lastReq.CartID)
	assert.Equal(t, "key-abc", mock.lastReq.IdempotencyKey)
	assert.Equal(t, "welcome", mock.lastReq.DiscountCode)
}

func TestCheckoutSubmit_GeneratesKeyWhenHeaderAbsent(t *testing.T) {
	mock := &checkoutMock{orderID: "order-123"}
	router := checkoutRouter(mock)

	request := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(validCheckoutBody(t)))
	request.Header.Set(CartIDHeader, "cart-1")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.NotEmpty(t, mock.lastReq.IdempotencyKey)
}

func TestCheckoutSubmit_ValidationErrorIs400(t *testing.T) {
	mock := &checkoutMock{err: service.ErrInvalidEmail}
	router := checkoutRouter(mock)

	request := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(validCheckoutBody(t)))
	request.Header.Set(CartIDHeader, "cart-1")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "validation_failed", resp.Code)
}

func TestCheckoutSubmit_EmptyCartIs400(t *testing.T) {
	mock := &checkoutMock{err: service.ErrEmptyCart}
	router := checkoutRouter(mock)

	request := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(validCheckoutBody(t)))
	request.Header.Set(CartIDHeader, "cart-1")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCheckoutSubmit_BackendErrorIs500(t *testing.T) {
	mock := &checkoutMock{err: errors.New("mongo down")}
	router := checkoutRouter(mock)

	request := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(validCheckoutBody(t)))
	request.Header.Set(CartIDHeader, "cart-1")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestCheckoutSubmit_MissingCartID(t *testing.T) {
	mock := &checkoutMock{orderID: "order-123"}
	router := checkoutRouter(mock)

	request := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader(validCheckoutBody(t)))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, mock.lastReq.CartID)
}
