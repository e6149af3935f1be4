package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/takkat/storefront/internal/cart/cache"
	"github.com/takkat/storefront/internal/cart/domain"
	"github.com/takkat/storefront/internal/cart/repository"
	"golang.org/x/sync/singleflight"
)

type CartService struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache) *CartService {
	return &CartService{
		repo:  repo,
		cache: cache,
	}
}

// GetCart never fails: the cart is best-effort state, not a source of truth,
// so an unavailable or corrupt store yields an empty cart rather than an error.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(cartID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, cartID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("cart cache get failed", "error", err)
		}

		cart, errGet := s.repo.GetCart(ctx, cartID)
		if errGet != nil {
			if !errors.Is(errGet, repository.ErrCartNotFound) {
				slog.Warn("cart store unavailable, serving empty cart", "cart_id", cartID, "error", errGet)
			}
			return emptyCart(cartID), nil
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), cartID, cart)
			if errSet != nil {
				slog.Warn("cart cache set failed", "error", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// AddLine merges the line into the cart by (product, color, size): an existing
// variant has its quantity incremented, a new variant is appended.
func (s *CartService) AddLine(ctx context.Context, cartID string, line domain.CartLine) error {
	lines, err := s.currentLines(ctx, cartID)
	if err != nil {
		return err
	}

	line.AddedAt = time.Now()
	lines = domain.MergeLine(lines, line)

	if err := s.repo.ReplaceLines(ctx, cartID, lines); err != nil {
		return err
	}

	s.invalidateCache(cartID)
	return nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, cartID string, key domain.LineKey, delta int) error {
	lines, err := s.currentLines(ctx, cartID)
	if err != nil {
		return err
	}

	lines = domain.AdjustQuantity(lines, key, delta)

	if err := s.repo.ReplaceLines(ctx, cartID, lines); err != nil {
		return err
	}

	s.invalidateCache(cartID)
	return nil
}

func (s *CartService) RemoveLine(ctx context.Context, cartID string, key domain.LineKey) error {
	lines, err := s.currentLines(ctx, cartID)
	if err != nil {
		return err
	}

	lines = domain.RemoveLine(lines, key)

	if err := s.repo.ReplaceLines(ctx, cartID, lines); err != nil {
		return err
	}

	s.invalidateCache(cartID)
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, cartID string) error {
	err := s.repo.DeleteCart(ctx, cartID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return err
	}

	s.invalidateCache(cartID)
	return nil
}

func (s *CartService) currentLines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	cart, err := s.repo.GetCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cart.Lines, nil
}

func (s *CartService) invalidateCache(cartID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, cartID); err != nil {
		slog.Warn("cart cache invalidate failed", "cart_id", cartID, "error", err)
	}
}

func emptyCart(cartID string) *domain.Cart {
	return &domain.Cart{
		CartID:    cartID,
		Lines:     nil,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
