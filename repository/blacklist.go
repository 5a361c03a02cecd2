package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-shop/models"
)

// BlacklistRepository is the revocation set: token strings rejected
// regardless of signature validity. Entries expire with the token itself
// via the TTL index created in EnsureIndexes.
type BlacklistRepository interface {
	Insert(ctx context.Context, token string, expiresAt time.Time) error
	Exists(ctx context.Context, token string) (bool, error)
}

type blacklistRepository struct {
	coll *mongo.Collection
}

// NewBlacklistRepository returns a Mongo-backed BlacklistRepository.
func NewBlacklistRepository(db *mongo.Database) BlacklistRepository {
	return &blacklistRepository{coll: db.Collection(BlacklistCollection)}
}

// Insert records the token. Revoking the same token twice is a no-op.
func (r *blacklistRepository) Insert(ctx context.Context, token string, expiresAt time.Time) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	entry := models.RevokedToken{Token: token, ExpiresAt: expiresAt}
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{"$setOnInsert": entry},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *blacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"token": token}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
