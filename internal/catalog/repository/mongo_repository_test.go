package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/takkat/storefront/internal/catalog/domain"
	"github.com/takkat/storefront/internal/mongodb"
)

func setupTestDB(t *testing.T) (CatalogRepository, func()) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	mongoContainer, err := tcmongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := mongodb.Connect(ctx, uri, "testdb")
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return NewMongoRepository(db), cleanup
}

func TestProductCRUD(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	sale := 90.0
	product := &domain.Product{
		Name:      "Gold Ring",
		SKU:       "GR-001",
		Price:     120,
		SalePrice: &sale,
		Colors:    []domain.ProductColor{{Name: "gold", ImageURL: "https://img/gold.jpg"}},
		Sizes:     []string{"6", "7"},
		IsVisible: true,
	}
	require.NoError(t, repo.CreateProduct(ctx, product))
	require.NotEmpty(t, product.ID)

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gold Ring", got.Name)
	require.NotNil(t, got.SalePrice)
	assert.Equal(t, 90.0, *got.SalePrice)

	got.Name = "Gold Ring Deluxe"
	require.NoError(t, repo.UpdateProduct(ctx, got))
	updated, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gold Ring Deluxe", updated.Name)

	require.NoError(t, repo.DeleteProduct(ctx, product.ID))
	_, err = repo.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProducts_Filters(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	seed := []*domain.Product{
		{Name: "Visible Top Seller", Categories: []string{"rings"}, IsTopSeller: true, IsVisible: true},
		{Name: "Visible Necklace", Categories: []string{"necklaces"}, IsVisible: true},
		{Name: "Hidden Ring", Categories: []string{"rings"}, IsVisible: false},
	}
	for _, p := range seed {
		require.NoError(t, repo.CreateProduct(ctx, p))
	}

	visible, err := repo.ListProducts(ctx, ProductFilter{VisibleOnly: true})
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	rings, err := repo.ListProducts(ctx, ProductFilter{CategoryID: "rings", VisibleOnly: true})
	require.NoError(t, err)
	require.Len(t, rings, 1)
	assert.Equal(t, "Visible Top Seller", rings[0].Name)

	top, err := repo.ListProducts(ctx, ProductFilter{TopSellersOnly: true, VisibleOnly: true})
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Visible Top Seller", top[0].Name)

	all, err := repo.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.UpdateProduct(context.Background(), &domain.Product{ID: "missing", Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryAndHeroSlideCRUD(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	category := &domain.Category{Name: "Rings", ImageURL: "https://img/rings.jpg"}
	require.NoError(t, repo.CreateCategory(ctx, category))
	require.NotEmpty(t, category.ID)

	got, err := repo.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rings", got.Name)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	require.NoError(t, repo.DeleteCategory(ctx, category.ID))
	_, err = repo.GetCategory(ctx, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	slide := &domain.HeroSlide{Title: "New Collection", ImageURL: "https://img/hero.jpg"}
	require.NoError(t, repo.CreateHeroSlide(ctx, slide))
	require.NotEmpty(t, slide.ID)

	slides, err := repo.ListHeroSlides(ctx)
	require.NoError(t, err)
	require.Len(t, slides, 1)
	assert.Equal(t, "New Collection", slides[0].Title)

	require.NoError(t, repo.DeleteHeroSlide(ctx, slide.ID))
	assert.ErrorIs(t, repo.DeleteHeroSlide(ctx, slide.ID), ErrNotFound)
}
