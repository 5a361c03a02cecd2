package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the repositories.
const (
	UsersCollection     = "users"
	ProductsCollection  = "products"
	CartCollection      = "cart"
	WishlistCollection  = "wishlist"
	OrdersCollection    = "orders"
	BlacklistCollection = "token_blacklist"
)

// Connect opens a MongoDB client and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

// EnsureIndexes creates the indexes the repositories rely on:
// unique user emails, unique (user, product) pairs for cart and wishlist
// lines, and a TTL index that prunes revoked tokens once the token itself
// would have expired.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	pair := bson.D{{Key: "user_email", Value: 1}, {Key: "product_id", Value: 1}}
	for _, name := range []string{CartCollection, WishlistCollection} {
		_, err = db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    pair,
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}

	_, err = db.Collection(BlacklistCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

// callTimeout bounds a single store round trip when the caller's context
// carries no deadline of its own.
const callTimeout = 10 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, callTimeout)
}
