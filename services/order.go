package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-shop/models"
	"go-shop/repository"
	"go-shop/utils"
)

// OrderConfig holds the knobs for order fulfillment.
type OrderConfig struct {
	// InitialStatus is assigned to newly placed orders.
	// Defaults to Processing.
	InitialStatus string
}

// OrderService converts carts into durable orders and manages their
// status lifecycle.
type OrderService interface {
	PlaceOrder(ctx context.Context, email string) (*models.Order, error)
	Orders(ctx context.Context, email string) ([]models.Order, error)
	CancelOrder(ctx context.Context, email, orderID string) (*models.Order, error)
	AllOrders(ctx context.Context, page, limit int64) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	carts    repository.CartRepository
	products repository.ProductRepository
	mailer   utils.Notifier
	logger   *zap.SugaredLogger
	config   OrderConfig
}

// NewOrderService wires order fulfillment. A nil mailer disables the
// confirmation mail.
func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	mailer utils.Notifier,
	logger *zap.SugaredLogger,
	config OrderConfig,
) OrderService {
	if config.InitialStatus == "" {
		config.InitialStatus = models.StatusProcessing
	}
	return &orderService{
		orders:   orders,
		carts:    carts,
		products: products,
		mailer:   mailer,
		logger:   logger,
		config:   config,
	}
}

// PlaceOrder turns the user's cart into an order:
//
//  1. load the cart; fail on empty
//  2. check every line against the live product before mutating anything
//  3. reserve stock with a conditional per-product decrement; a conflict
//     (concurrent placement took the last units) aborts and restores
//     whatever was already taken
//  4. record the order, total computed from the cart's price snapshots
//  5. clear the cart
//
// Stock is reserved before the order document is written so a fault
// between the two cannot leave an order whose stock was never taken.
func (s *orderService) PlaceOrder(ctx context.Context, email string) (*models.Order, error) {
	items, err := s.carts.FindByUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	total := 0.0
	for _, item := range items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%q: %w", item.Name, ErrProductMissing)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("%q: %w", item.Name, ErrInsufficientStock)
		}
		total += item.Price * float64(item.Quantity)
	}

	taken := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		ok, err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err == nil && !ok {
			err = fmt.Errorf("%q: %w", item.Name, ErrInsufficientStock)
		}
		if err != nil {
			s.restoreStock(ctx, taken)
			return nil, err
		}
		taken = append(taken, item)
	}

	order := &models.Order{
		UserEmail:   email,
		Items:       items,
		TotalAmount: total,
		Status:      s.config.InitialStatus,
		CreatedAt:   time.Now().UTC(),
	}
	id, err := s.orders.Insert(ctx, order)
	if err != nil {
		s.restoreStock(ctx, taken)
		return nil, err
	}
	order.ID = id

	if err := s.carts.Clear(ctx, email); err != nil {
		return nil, err
	}

	s.sendConfirmation(email, order)
	return order, nil
}

func (s *orderService) Orders(ctx context.Context, email string) ([]models.Order, error) {
	return s.orders.FindByUser(ctx, email)
}

// CancelOrder cancels the user's own order while it is still Processing.
// Stock is not restored on cancellation.
func (s *orderService) CancelOrder(ctx context.Context, email, orderID string) (*models.Order, error) {
	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, ErrInvalidID
	}

	order, err := s.orders.FindByIDAndUser(ctx, objectID, email)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	if !models.ValidTransition(order.Status, models.StatusCanceled) {
		return nil, ErrInvalidTransition
	}

	if _, err := s.orders.UpdateStatus(ctx, objectID, models.StatusCanceled); err != nil {
		return nil, err
	}

	order.Status = models.StatusCanceled
	return order, nil
}

// AllOrders lists every order, newest first, paginated. Admin-only at
// the HTTP layer.
func (s *orderService) AllOrders(ctx context.Context, page, limit int64) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total, err := s.orders.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	orders, err := s.orders.FindAll(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus overwrites an order's status. Admin-only at the HTTP
// layer. The status must be a known one, but the transition graph in
// models.ValidTransition is deliberately not enforced here: admins may
// move an order anywhere, including backwards.
func (s *orderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, ErrInvalidID
	}

	matched, err := s.orders.UpdateStatus(ctx, objectID, status)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrNotFound
	}

	order, err := s.orders.FindByID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// restoreStock undoes partial reservations after an aborted placement.
func (s *orderService) restoreStock(ctx context.Context, taken []models.CartItem) {
	for _, item := range taken {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Errorw("failed to restore stock after aborted placement",
				"product_id", item.ProductID.Hex(), "quantity", item.Quantity, "error", err)
		}
	}
}

func (s *orderService) sendConfirmation(email string, order *models.Order) {
	if s.mailer == nil {
		return
	}
	subject, text, html := utils.OrderConfirmationMail(order)
	go func() {
		if err := s.mailer.Send(email, subject, text, html); err != nil {
			s.logger.Errorw("failed to send order confirmation", "recipient", email, "error", err)
		}
	}()
}
