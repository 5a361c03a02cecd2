package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-shop/models"
)

// CartRepository is the store for cart lines, keyed by (user, product).
type CartRepository interface {
	AddItem(ctx context.Context, item *models.CartItem) error
	FindByUser(ctx context.Context, email string) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, email string, productID primitive.ObjectID, quantity int) (bool, error)
	Remove(ctx context.Context, email string, productID primitive.ObjectID) (bool, error)
	Clear(ctx context.Context, email string) error
}

type cartRepository struct {
	coll *mongo.Collection
}

// NewCartRepository returns a Mongo-backed CartRepository.
func NewCartRepository(db *mongo.Database) CartRepository {
	return &cartRepository{coll: db.Collection(CartCollection)}
}

// AddItem upserts on the (user, product) pair: an existing line gets its
// quantity incremented, a new line is created with the product snapshot.
func (r *cartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{"user_email": item.UserEmail, "product_id": item.ProductID}
	update := bson.M{
		"$inc": bson.M{"quantity": item.Quantity},
		"$setOnInsert": bson.M{
			"user_email": item.UserEmail,
			"product_id": item.ProductID,
			"name":       item.Name,
			"price":      item.Price,
		},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *cartRepository) FindByUser(ctx context.Context, email string) ([]models.CartItem, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_email": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, email string, productID primitive.ObjectID, quantity int) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"user_email": email, "product_id": productID},
		bson.M{"$set": bson.M{"quantity": quantity}},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (r *cartRepository) Remove(ctx context.Context, email string, productID primitive.ObjectID) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"user_email": email, "product_id": productID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *cartRepository) Clear(ctx context.Context, email string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{"user_email": email})
	return err
}
