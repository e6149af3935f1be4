package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/takkat/storefront/internal/catalog/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	products   *mongo.Collection
	categories *mongo.Collection
	heroSlides *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) CatalogRepository {
	return &mongoRepository{
		products:   db.Collection("products"),
		categories: db.Collection("categories"),
		heroSlides: db.Collection("heroSlides"),
	}
}

func (m mongoRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	query := bson.M{}
	if filter.CategoryID != "" {
		query["categories"] = filter.CategoryID
	}
	if filter.TopSellersOnly {
		query["is_top_seller"] = true
	}
	if filter.VisibleOnly {
		query["is_visible"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.products.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	var products []*domain.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (m mongoRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := m.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (m mongoRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if _, err := m.products.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (m mongoRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	result, err := m.products.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m mongoRepository) DeleteProduct(ctx context.Context, id string) error {
	return m.deleteByID(ctx, m.products, id, "product")
}

func (m mongoRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	cur, err := m.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	var categories []*domain.Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

func (m mongoRepository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := m.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query category: %w", err)
	}
	return &c, nil
}

func (m mongoRepository) CreateCategory(ctx context.Context, c *domain.Category) error {
	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}
	if _, err := m.categories.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (m mongoRepository) UpdateCategory(ctx context.Context, c *domain.Category) error {
	result, err := m.categories.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m mongoRepository) DeleteCategory(ctx context.Context, id string) error {
	return m.deleteByID(ctx, m.categories, id, "category")
}

func (m mongoRepository) ListHeroSlides(ctx context.Context) ([]*domain.HeroSlide, error) {
	cur, err := m.heroSlides.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("query hero slides: %w", err)
	}

	var slides []*domain.HeroSlide
	if err := cur.All(ctx, &slides); err != nil {
		return nil, fmt.Errorf("decode hero slides: %w", err)
	}
	return slides, nil
}

func (m mongoRepository) CreateHeroSlide(ctx context.Context, s *domain.HeroSlide) error {
	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	if _, err := m.heroSlides.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert hero slide: %w", err)
	}
	return nil
}

func (m mongoRepository) DeleteHeroSlide(ctx context.Context, id string) error {
	return m.deleteByID(ctx, m.heroSlides, id, "hero slide")
}

func (m mongoRepository) deleteByID(ctx context.Context, col *mongo.Collection, id, kind string) error {
	result, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
