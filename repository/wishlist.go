package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-shop/models"
)

// WishlistRepository is the store for wishlist entries, unique per
// (user, product). Find returns (nil, nil) when no entry matches.
type WishlistRepository interface {
	Insert(ctx context.Context, item *models.WishlistItem) error
	Find(ctx context.Context, email string, productID primitive.ObjectID) (*models.WishlistItem, error)
	FindByUser(ctx context.Context, email string) ([]models.WishlistItem, error)
	Remove(ctx context.Context, email string, productID primitive.ObjectID) (bool, error)
}

type wishlistRepository struct {
	coll *mongo.Collection
}

// NewWishlistRepository returns a Mongo-backed WishlistRepository.
func NewWishlistRepository(db *mongo.Database) WishlistRepository {
	return &wishlistRepository{coll: db.Collection(WishlistCollection)}
}

func (r *wishlistRepository) Insert(ctx context.Context, item *models.WishlistItem) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, item)
	return err
}

func (r *wishlistRepository) Find(ctx context.Context, email string, productID primitive.ObjectID) (*models.WishlistItem, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var item models.WishlistItem
	err := r.coll.FindOne(ctx, bson.M{"user_email": email, "product_id": productID}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) FindByUser(ctx context.Context, email string) ([]models.WishlistItem, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_email": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.WishlistItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, email string, productID primitive.ObjectID) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"user_email": email, "product_id": productID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
