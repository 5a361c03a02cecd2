package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
	"go-shop/repository"
)

// WishlistService manages a user's wishlist. Entries are unique per
// (user, product) and carry no quantity.
type WishlistService interface {
	Add(ctx context.Context, email, productID string) error
	Items(ctx context.Context, email string) ([]models.WishlistItem, error)
	Remove(ctx context.Context, email, productID string) error
	MoveToCart(ctx context.Context, email, productID string) error
}

type wishlistService struct {
	wishlist repository.WishlistRepository
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewWishlistService returns a WishlistService over the given stores.
func NewWishlistService(
	wishlist repository.WishlistRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
) WishlistService {
	return &wishlistService{
		wishlist: wishlist,
		carts:    carts,
		products: products,
	}
}

func (s *wishlistService) Add(ctx context.Context, email, productID string) error {
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

	existing, err := s.wishlist.Find(ctx, email, objectID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyExists
	}

	return s.wishlist.Insert(ctx, &models.WishlistItem{
		UserEmail: email,
		ProductID: objectID,
		Name:      product.Name,
		Price:     product.Price,
	})
}

func (s *wishlistService) Items(ctx context.Context, email string) ([]models.WishlistItem, error) {
	return s.wishlist.FindByUser(ctx, email)
}

func (s *wishlistService) Remove(ctx context.Context, email, productID string) error {
	objectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrInvalidID
	}

	removed, err := s.wishlist.Remove(ctx, email, objectID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

// MoveToCart removes the wishlist entry and adds the product to the
// cart, incrementing an existing line if one is already there.
func (s *wishlistService) MoveToCart(ctx context.Context, email, productID string) error {
	objectID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrInvalidID
	}

	item, err := s.wishlist.Find(ctx, email, objectID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}

	product, err := s.products.FindByID(ctx, objectID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}

	err = s.carts.AddItem(ctx, &models.CartItem{
		UserEmail: email,
		ProductID: objectID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
	})
	if err != nil {
		return err
	}

	_, err = s.wishlist.Remove(ctx, email, objectID)
	return err
}
