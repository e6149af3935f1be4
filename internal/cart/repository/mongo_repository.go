package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/takkat/storefront/internal/cart/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCartNotFound = errors.New("cart not found")

type mongoRepository struct {
	collection *mongo.Collection
}

func (m mongoRepository) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"cart_id": cartID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

// ReplaceLines writes the full line collection in one update. Mutations always
// persist the whole cart, never a delta, so a reader can never observe a
// partially applied write.
func (m mongoRepository) ReplaceLines(ctx context.Context, cartID string, lines []domain.CartLine) error {
	now := time.Now()

	if lines == nil {
		lines = []domain.CartLine{}
	}

	filter := bson.M{"cart_id": cartID}
	update := bson.M{
		"$set": bson.M{
			"lines":      lines,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"cart_id":    cartID,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to replace cart lines: %w", err)
	}

	return nil
}

func (m mongoRepository) DeleteCart(ctx context.Context, cartID string) error {
	filter := bson.M{"cart_id": cartID}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}

	return nil
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cart_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func NewMongoRepository(db *mongo.Database) CartRepository {
	return &mongoRepository{
		collection: db.Collection("carts"),
	}
}

// EnsureIndexes creates the carts collection indexes. Called once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	repo := &mongoRepository{collection: db.Collection("carts")}
	return repo.CreateIndexes(ctx)
}
