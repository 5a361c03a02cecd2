package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-shop/models"
)

// ProductRepository is the store for catalog entries. DecrementStock is
// conditional: it only applies when enough stock remains, so two
// concurrent placements cannot both take the last units.
type ProductRepository interface {
	Insert(ctx context.Context, product *models.Product) (primitive.ObjectID, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	UpdateByName(ctx context.Context, name string, product *models.Product) (bool, error)
	DeleteByName(ctx context.Context, name string) (bool, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}

type productRepository struct {
	coll *mongo.Collection
}

// NewProductRepository returns a Mongo-backed ProductRepository.
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{coll: db.Collection(ProductsCollection)}
}

func (r *productRepository) Insert(ctx context.Context, product *models.Product) (primitive.ObjectID, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) UpdateByName(ctx context.Context, name string, product *models.Product) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"stock":       product.Stock,
		"category":    product.Category,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"name": name}, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (r *productRepository) DeleteByName(ctx context.Context, name string) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// DecrementStock applies an atomic compare-and-decrement: the filter only
// matches while stock >= quantity, so the update can never drive stock
// negative. Returns false when the product is gone or stock ran out.
func (r *productRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"stock": -quantity}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": quantity}},
	)
	return err
}
