package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
	"go-shop/repository"
)

// CartService manages a user's cart lines. Adding the same product twice
// increments the existing line instead of creating a second one.
type CartService interface {
	Add(ctx context.Context, email, productID string) error
	Items(ctx context.Context, email string) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, email, productID string, quantity int) error
	Remove(ctx context.Context, email, productID string) error
	Clear(ctx context.Context, email string) error
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartService returns a CartService over the given stores.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{
		carts:    carts,
		products: products,
	}
}

// Add snapshots the product's current name and price onto the cart line;
// order totals later use the snapshot, not the live price.
func (s *cartService) Add(ctx context.Context, email, productID string) error {
	objectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrInvalidID
	}

	product, err := s.products.FindByID(ctx, objectID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}

	return s.carts.AddItem(ctx, &models.CartItem{
		UserEmail: email,
		ProductID: objectID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
	})
}

func (s *cartService) Items(ctx context.Context, email string) ([]models.CartItem, error) {
	return s.carts.FindByUser(ctx, email)
}

func (s *cartService) UpdateQuantity(ctx context.Context, email, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	objectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrInvalidID
	}

	matched, err := s.carts.UpdateQuantity(ctx, email, objectID, quantity)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

func (s *cartService) Remove(ctx context.Context, email, productID string) error {
	objectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrInvalidID
	}

	removed, err := s.carts.Remove(ctx, email, objectID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context, email string) error {
	return s.carts.Clear(ctx, email)
}
