package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
	"go-shop/repository"
)

// ProductService exposes the catalog. Reads are public; create, update,
// and delete are admin operations gated at the HTTP layer.
type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateByName(ctx context.Context, name string, product *models.Product) error
	DeleteByName(ctx context.Context, name string) error
}

type productService struct {
	products repository.ProductRepository
}

// NewProductService returns a ProductService over the given store.
func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *productService) Get(ctx context.Context, id string) (*models.Product, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	product, err := s.products.FindByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	id, err := s.products.Insert(ctx, product)
	if err != nil {
		return nil, err
	}

	product.ID = id
	return product, nil
}

func (s *productService) UpdateByName(ctx context.Context, name string, product *models.Product) error {
	matched, err := s.products.UpdateByName(ctx, name, product)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

func (s *productService) DeleteByName(ctx context.Context, name string) error {
	deleted, err := s.products.DeleteByName(ctx, name)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
