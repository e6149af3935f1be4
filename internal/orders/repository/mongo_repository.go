package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/takkat/storefront/internal/orders/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) OrderRepository {
	return &mongoRepository{
		collection: db.Collection("orders"),
	}
}

// NewOrderID mints the document identifier up front so the checkout service
// can embed it in the confirmation email without a round trip.
func NewOrderID() string {
	return primitive.NewObjectID().Hex()
}

func (m mongoRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = NewOrderID()
	}

	_, err := m.collection.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateIdempotency
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (m mongoRepository) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return &order, nil
}

func (m mongoRepository) GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	var order domain.Order
	err := m.collection.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrIdempotencyKeyNotFound
		}
		return nil, fmt.Errorf("query order by idempotency key: %w", err)
	}
	return &order, nil
}

// ListOrders pages through orders newest first. The page token is the
// created_at of the last order on the previous page; an empty token starts
// from the top.
func (m mongoRepository) ListOrders(ctx context.Context, pageToken string, pageSize int) ([]*domain.Order, string, error) {
	filter := bson.M{}
	if pageToken != "" {
		cursor, err := time.Parse(time.RFC3339Nano, pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("invalid page token: %w", err)
		}
		filter["created_at"] = bson.M{"$lt": cursor}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(pageSize))

	cur, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, "", fmt.Errorf("query orders: %w", err)
	}

	var orders []*domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, "", fmt.Errorf("decode orders: %w", err)
	}

	nextToken := ""
	if len(orders) == pageSize {
		nextToken = orders[len(orders)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	return orders, nextToken, nil
}

// UpdateStatus overwrites the status unconditionally. Legality of the
// transition is not checked; any status may replace any other.
func (m mongoRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	result, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "idempotency_key", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$type": "string"}}),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// EnsureIndexes creates the orders collection indexes. The unique partial
// index on idempotency_key is what makes checkout replays safe; startup must
// not proceed without it.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	repo := &mongoRepository{collection: db.Collection("orders")}
	return repo.CreateIndexes(ctx)
}
