package service

import (
	"context"
	"sync"

	cartdomain "github.com/takkat/storefront/internal/cart/domain"
	"github.com/takkat/storefront/internal/orders/domain"
	r "github.com/takkat/storefront/internal/orders/repository"
)

type mockCartReader struct {
	m       sync.Mutex
	cart    *cartdomain.Cart
	getErr  error
	clrErr  error
	cleared bool
}

func (m *mockCartReader) GetCart(context.Context, string) (*cartdomain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.cart, nil
}

func (m *mockCartReader) ClearCart(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.clrErr != nil {
		return m.clrErr
	}
	m.cleared = true
	m.cart = &cartdomain.Cart{CartID: m.cart.CartID}
	return nil
}

func (m *mockCartReader) wasCleared() bool {
	m.m.Lock()
	defer m.m.Unlock()
	return m.cleared
}

type mockOrderRepo struct {
	m         sync.Mutex
	byID      map[string]*domain.Order
	byKey     map[string]*domain.Order
	createErr error
	creates   int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		byID:  make(map[string]*domain.Order),
		byKey: make(map[string]*domain.Order),
	}
}

func (m *mockOrderRepo) CreateOrder(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	if order.IdempotencyKey != "" {
		if _, ok := m.byKey[order.IdempotencyKey]; ok {
			return r.ErrDuplicateIdempotency
		}
		m.byKey[order.IdempotencyKey] = order
	}
	m.byID[order.ID] = order
	return nil
}

func (m *mockOrderRepo) GetOrderByID(_ context.Context, id string) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	order, ok := m.byID[id]
	if !ok {
		return nil, r.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepo) GetOrderByIdempotencyKey(_ context.Context, key string) (*domain.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	order, ok := m.byKey[key]
	if !ok {
		return nil, r.ErrIdempotencyKeyNotFound
	}
	return order, nil
}

func (m *mockOrderRepo) ListOrders(context.Context, string, int) ([]*domain.Order, string, error) {
	return nil, "", nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	m.m.Lock()
	defer m.m.Unlock()
	order, ok := m.byID[id]
	if !ok {
		return r.ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (m *mockOrderRepo) createCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.creates
}

type mockMailer struct {
	m    sync.Mutex
	err  error
	sent []*domain.Order
}

func (m *mockMailer) SendOrderConfirmation(_ context.Context, order *domain.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, order)
	return nil
}

func (m *mockMailer) sentCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.sent)
}
