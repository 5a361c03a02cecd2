package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-shop/models"
)

type orderFixture struct {
	service  OrderService
	orders   *mockOrderRepository
	carts    *mockCartRepository
	products *mockProductRepository
}

func newOrderFixture(config OrderConfig) *orderFixture {
	orders := newMockOrderRepository()
	carts := newMockCartRepository()
	products := newMockProductRepository()
	service := NewOrderService(orders, carts, products, nil, zap.NewNop().Sugar(), config)
	return &orderFixture{
		service:  service,
		orders:   orders,
		carts:    carts,
		products: products,
	}
}

func (f *orderFixture) addProduct(t *testing.T, name string, price float64, stock int) primitive.ObjectID {
	t.Helper()
	return f.products.add(&models.Product{Name: name, Price: price, Stock: stock})
}

func (f *orderFixture) addCartLine(t *testing.T, email string, productID primitive.ObjectID, name string, price float64, quantity int) {
	t.Helper()
	err := f.carts.AddItem(context.Background(), &models.CartItem{
		UserEmail: email,
		ProductID: productID,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
	})
	require.NoError(t, err)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newOrderFixture(OrderConfig{})

	_, err := f.service.PlaceOrder(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.orders.orders)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	f := newOrderFixture(OrderConfig{})
	productID := f.addProduct(t, "widget", 10.0, 1)
	f.addCartLine(t, "alice@example.com", productID, "widget", 10.0, 2)

	_, err := f.service.PlaceOrder(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing was mutated: stock, orders, and cart are untouched.
	assert.Equal(t, 1, f.products.stock(productID))
	assert.Empty(t, f.orders.orders)
	items, _ := f.carts.FindByUser(context.Background(), "alice@example.com")
	assert.Len(t, items, 1)
}

func TestPlaceOrderProductMissing(t *testing.T) {
	f := newOrderFixture(OrderConfig{})
	f.addCartLine(t, "alice@example.com", primitive.NewObjectID(), "ghost", 5.0, 1)

	_, err := f.service.PlaceOrder(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrProductMissing)
	assert.Empty(t, f.orders.orders)
}

func TestPlaceOrderSuccess(t *testing.T) {
	f := newOrderFixture(OrderConfig{})
	ctx := context.Background()

	productA := f.addProduct(t, "widget", 10.0, 5)
	productB := f.addProduct(t, "gadget", 5.0, 3)
	f.addCartLine(t, "alice@example.com", productA, "widget", 10.0, 2)
	f.addCartLine(t, "alice@example.com", productB, "gadget", 5.0, 1)

	order, err := f.service.PlaceOrder(ctx, "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, models.StatusProcessing, order.Status)
	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Len(t, order.Items, 2)
	assert.False(t, order.ID.IsZero())

	// Stock decremented by the ordered quantities.
	assert.Equal(t, 3, f.products.stock(productA))
	assert.Equal(t, 2, f.products.stock(productB))

	// Cart is empty after placement.
	items, err := f.carts.FindByUser(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Exactly one order persisted.
	assert.Len(t, f.orders.orders, 1)
}

func TestPlaceOrderSendsConfirmationMail(t *testing.T) {
	orders := newMockOrderRepository()
	carts := newMockCartRepository()
	products := newMockProductRepository()
	mailer := newMockNotifier()
	service := NewOrderService(orders, carts, products, mailer, zap.NewNop().Sugar(), OrderConfig{})

	productID := products.add(&models.Product{Name: "widget", Price: 10.0, Stock: 5})
	require.NoError(t, carts.AddItem(context.Background(), &models.CartItem{
		UserEmail: "alice@example.com",
		ProductID: productID,
		Name:      "widget",
		Price:     10.0,
		Quantity:  1,
	}))

	_, err := service.PlaceOrder(context.Background(), "alice@example.com")
	require.NoError(t, err)

	select {
	case recipient := <-mailer.sent:
		assert.Equal(t, "alice@example.com", recipient)
	case <-time.After(time.Second):
		t.Fatal("confirmation mail was never sent")
	}
}

func TestPlaceOrderUsesPriceSnapshot(t *testing.T) {
	f := newOrderFixture(OrderConfig{})
	productID := f.addProduct(t, "widget", 99.0, 5)
	// Cart line carries the price at add time, not the live price.
	f.addCartLine(t, "alice@example.com", productID, "widget", 10.0, 2)

	order, err := f.service.PlaceOrder(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 20.0, order.TotalAmount)
}

func TestPlaceOrderConfiguredInitialStatus(t *testing.T) {
	f := newOrderFixture(OrderConfig{InitialStatus: models.StatusDelivered})
	productID := f.addProduct(t, "widget", 10.0, 5)
	f.addCartLine(t, "alice@example.com", productID, "widget", 10.0, 1)

	order, err := f.service.PlaceOrder(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, order.Status)
}

func TestPlaceOrderDecrementConflictRestoresStock(t *testing.T) {
	f := newOrderFixture(OrderConfig{})
	ctx := context.Background()

	productA := f.addProduct(t, "widget", 10.0, 5)
	productB := f.addProduct(t, "gadget", 5.0, 3)
	f.addCartLine(t, "alice@example.com", productA, "widget", 10.0, 2)
	f.addCartLine(t, "alice@example.com", productB, "gadget", 5.0, 1)

	// A concurrent placement wins the conditional decrement on B.
	f.products.failDecrement[productB] = true

	_, err := f.service.PlaceOrder(ctx, "alice@example.com")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// A's reservation was rolled back, no order exists, cart intact.
	assert.Equal(t, 5, f.products.stock(productA))
	assert.Empty(t, f.orders.orders)
	items, _ := f.carts.FindByUser(ctx, "alice@example.com")
	assert.Len(t, items, 2)
}

func TestCancelOrder(t *testing.T) {
	f := newOrderFixture(OrderConfig{})
	ctx := context.Background()

	id, err := f.orders.Insert(ctx, &models.Order{
		UserEmail: "alice@example.com",
		Status:    models.StatusProcessing,
	})
	require.NoError(t, err)

	order, err := f.service.CancelOrder(ctx, "alice@example.com", id.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.StatusCanceled, order.Status)
}

func TestCancelOrderInvalidTransition(t *testing.T) {
	f := newOrderFixture(OrderConfig{})
	ctx := context.Background()

	for _, status := range []string{models.StatusShipped, models.StatusDelivered, models.StatusCanceled} {
		id, err := f.orders.Insert(ctx, &models.Order{
			UserEmail: "alice@example.com",
			Status:    status,
		})
		require.NoError(t, err)

		_, err = f.service.CancelOrder(ctx, "alice@example.com", id.Hex())
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestCancelOrderNotOwned(t *testing.T) {
	f := newOrderFixture(OrderConfig{})
	ctx := context.Background()

	id, err := f.orders.Insert(ctx, &models.Order{
		UserEmail: "bob@example.com",
		Status:    models.StatusProcessing,
	})
	require.NoError(t, err)

	_, err = f.service.CancelOrder(ctx, "alice@example.com", id.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	f := newOrderFixture(OrderConfig{})
	ctx := context.Background()

	id, err := f.orders.Insert(ctx, &models.Order{
		UserEmail: "alice@example.com",
		Status:    models.StatusProcessing,
	})
	require.NoError(t, err)

	order, err := f.service.UpdateStatus(ctx, id.Hex(), models.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, order.Status)

	// The admin entry point bypasses the transition graph on purpose.
	order, err = f.service.UpdateStatus(ctx, id.Hex(), models.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, order.Status)
}

func TestUpdateStatusInvalid(t *testing.T) {
	f := newOrderFixture(OrderConfig{})

	_, err := f.service.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), "Lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusNotFound(t *testing.T) {
	f := newOrderFixture(OrderConfig{})

	_, err := f.service.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), models.StatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidTransition(t *testing.T) {
	assert.True(t, models.ValidTransition(models.StatusProcessing, models.StatusShipped))
	assert.True(t, models.ValidTransition(models.StatusProcessing, models.StatusCanceled))
	assert.True(t, models.ValidTransition(models.StatusShipped, models.StatusDelivered))

	assert.False(t, models.ValidTransition(models.StatusShipped, models.StatusCanceled))
	assert.False(t, models.ValidTransition(models.StatusDelivered, models.StatusShipped))
	assert.False(t, models.ValidTransition(models.StatusCanceled, models.StatusProcessing))
}
