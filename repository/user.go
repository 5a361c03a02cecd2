package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"go-shop/models"
)

// UserRepository is the store for user accounts.
// Find methods return (nil, nil) when no document matches.
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetVerified(ctx context.Context, email string) error
	SetPassword(ctx context.Context, email, passwordHash string) error
	UpdateProfile(ctx context.Context, email string, update models.ProfileUpdate) (bool, error)
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository returns a Mongo-backed UserRepository.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(UsersCollection)}
}

func (r *userRepository) Insert(ctx context.Context, user *models.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, user)
	return err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetVerified(ctx context.Context, email string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{"verified": true},
	})
	return err
}

func (r *userRepository) SetPassword(ctx context.Context, email, passwordHash string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{"password": passwordHash},
	})
	return err
}

func (r *userRepository) UpdateProfile(ctx context.Context, email string, update models.ProfileUpdate) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	fields := bson.M{}
	if update.Name != "" {
		fields["name"] = update.Name
	}
	if update.Phone != "" {
		fields["phone"] = update.Phone
	}
	if update.Address != "" {
		fields["address"] = update.Address
	}
	if len(fields) == 0 {
		return false, nil
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": fields})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
