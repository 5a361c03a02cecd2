package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-shop/models"
)

// OrderRepository is the store for placed orders.
// Find methods return (nil, nil) when no document matches.
type OrderRepository interface {
	Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error)
	FindByUser(ctx context.Context, email string) ([]models.Order, error)
	FindByIDAndUser(ctx context.Context, id primitive.ObjectID, email string) (*models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (bool, error)
	FindAll(ctx context.Context, skip, limit int64) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
}

type orderRepository struct {
	coll *mongo.Collection
}

// NewOrderRepository returns a Mongo-backed OrderRepository.
func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{coll: db.Collection(OrdersCollection)}
}

func (r *orderRepository) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *orderRepository) FindByUser(ctx context.Context, email string) ([]models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByIDAndUser(ctx context.Context, id primitive.ObjectID, email string) (*models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_email": email}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status},
	})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (r *orderRepository) FindAll(ctx context.Context, skip, limit int64) ([]models.Order, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return r.coll.CountDocuments(ctx, bson.M{})
}
