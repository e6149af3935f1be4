package repository

import (
	"context"
	"errors"

	"github.com/takkat/storefront/internal/catalog/domain"
)

var ErrNotFound = errors.New("catalog document not found")

// ProductFilter narrows ListProducts. The zero value lists everything,
// including products hidden from the storefront.
type ProductFilter struct {
	CategoryID     string
	TopSellersOnly bool
	VisibleOnly    bool
}

type CatalogRepository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, c *domain.Category) error
	UpdateCategory(ctx context.Context, c *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	ListHeroSlides(ctx context.Context) ([]*domain.HeroSlide, error)
	CreateHeroSlide(ctx context.Context, s *domain.HeroSlide) error
	DeleteHeroSlide(ctx context.Context, id string) error
}
