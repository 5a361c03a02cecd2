package services

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-shop/models"
)

// In-memory repository fakes used across the service tests.

type mockUserRepository struct {
	users map[string]*models.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*models.User)}
}

func (r *mockUserRepository) Insert(ctx context.Context, user *models.User) error {
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *mockUserRepository) SetVerified(ctx context.Context, email string) error {
	if user, ok := r.users[email]; ok {
		user.Verified = true
	}
	return nil
}

func (r *mockUserRepository) SetPassword(ctx context.Context, email, passwordHash string) error {
	if user, ok := r.users[email]; ok {
		user.Password = passwordHash
	}
	return nil
}

func (r *mockUserRepository) UpdateProfile(ctx context.Context, email string, update models.ProfileUpdate) (bool, error) {
	user, ok := r.users[email]
	if !ok {
		return false, nil
	}
	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}
	if update.Address != "" {
		user.Address = update.Address
	}
	return true, nil
}

type mockProductRepository struct {
	products map[primitive.ObjectID]*models.Product
	// failDecrement simulates a concurrent placement winning the
	// conditional decrement for the listed products.
	failDecrement map[primitive.ObjectID]bool
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products:      make(map[primitive.ObjectID]*models.Product),
		failDecrement: make(map[primitive.ObjectID]bool),
	}
}

func (r *mockProductRepository) add(product *models.Product) primitive.ObjectID {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	copied := *product
	r.products[product.ID] = &copied
	return product.ID
}

func (r *mockProductRepository) Insert(ctx context.Context, product *models.Product) (primitive.ObjectID, error) {
	return r.add(product), nil
}

func (r *mockProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	for _, product := range r.products {
		products = append(products, *product)
	}
	return products, nil
}

func (r *mockProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	copied := *product
	return &copied, nil
}

func (r *mockProductRepository) UpdateByName(ctx context.Context, name string, product *models.Product) (bool, error) {
	for _, existing := range r.products {
		if existing.Name == name {
			id := existing.ID
			*existing = *product
			existing.ID = id
			return true, nil
		}
	}
	return false, nil
}

func (r *mockProductRepository) DeleteByName(ctx context.Context, name string) (bool, error) {
	for id, existing := range r.products {
		if existing.Name == name {
			delete(r.products, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *mockProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	if r.failDecrement[id] {
		return false, nil
	}
	product, ok := r.products[id]
	if !ok || product.Stock < quantity {
		return false, nil
	}
	product.Stock -= quantity
	return true, nil
}

func (r *mockProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	if product, ok := r.products[id]; ok {
		product.Stock += quantity
	}
	return nil
}

func (r *mockProductRepository) stock(id primitive.ObjectID) int {
	if product, ok := r.products[id]; ok {
		return product.Stock
	}
	return -1
}

type mockCartRepository struct {
	items []models.CartItem
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{}
}

func (r *mockCartRepository) AddItem(ctx context.Context, item *models.CartItem) error {
	for i := range r.items {
		if r.items[i].UserEmail == item.UserEmail && r.items[i].ProductID == item.ProductID {
			r.items[i].Quantity += item.Quantity
			return nil
		}
	}
	line := *item
	line.ID = primitive.NewObjectID()
	r.items = append(r.items, line)
	return nil
}

func (r *mockCartRepository) FindByUser(ctx context.Context, email string) ([]models.CartItem, error) {
	var items []models.CartItem
	for _, item := range r.items {
		if item.UserEmail == email {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *mockCartRepository) UpdateQuantity(ctx context.Context, email string, productID primitive.ObjectID, quantity int) (bool, error) {
	for i := range r.items {
		if r.items[i].UserEmail == email && r.items[i].ProductID == productID {
			r.items[i].Quantity = quantity
			return true, nil
		}
	}
	return false, nil
}

func (r *mockCartRepository) Remove(ctx context.Context, email string, productID primitive.ObjectID) (bool, error) {
	for i := range r.items {
		if r.items[i].UserEmail == email && r.items[i].ProductID == productID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *mockCartRepository) Clear(ctx context.Context, email string) error {
	var remaining []models.CartItem
	for _, item := range r.items {
		if item.UserEmail != email {
			remaining = append(remaining, item)
		}
	}
	r.items = remaining
	return nil
}

type mockWishlistRepository struct {
	items []models.WishlistItem
}

func newMockWishlistRepository() *mockWishlistRepository {
	return &mockWishlistRepository{}
}

func (r *mockWishlistRepository) Insert(ctx context.Context, item *models.WishlistItem) error {
	entry := *item
	entry.ID = primitive.NewObjectID()
	r.items = append(r.items, entry)
	return nil
}

func (r *mockWishlistRepository) Find(ctx context.Context, email string, productID primitive.ObjectID) (*models.WishlistItem, error) {
	for _, item := range r.items {
		if item.UserEmail == email && item.ProductID == productID {
			copied := item
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *mockWishlistRepository) FindByUser(ctx context.Context, email string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	for _, item := range r.items {
		if item.UserEmail == email {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *mockWishlistRepository) Remove(ctx context.Context, email string, productID primitive.ObjectID) (bool, error) {
	for i := range r.items {
		if r.items[i].UserEmail == email && r.items[i].ProductID == productID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type mockOrderRepository struct {
	orders map[primitive.ObjectID]*models.Order
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (r *mockOrderRepository) Insert(ctx context.Context, order *models.Order) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	copied := *order
	copied.ID = id
	r.orders[id] = &copied
	return id, nil
}

func (r *mockOrderRepository) FindByUser(ctx context.Context, email string) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range r.orders {
		if order.UserEmail == email {
			orders = append(orders, *order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *mockOrderRepository) FindByIDAndUser(ctx context.Context, id primitive.ObjectID, email string) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok || order.UserEmail != email {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *mockOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *mockOrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (bool, error) {
	order, ok := r.orders[id]
	if !ok {
		return false, nil
	}
	order.Status = status
	return true, nil
}

func (r *mockOrderRepository) FindAll(ctx context.Context, skip, limit int64) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range r.orders {
		orders = append(orders, *order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if skip >= int64(len(orders)) {
		return nil, nil
	}
	orders = orders[skip:]
	if int64(len(orders)) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (r *mockOrderRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

type mockBlacklistRepository struct {
	revoked map[string]time.Time
}

func newMockBlacklistRepository() *mockBlacklistRepository {
	return &mockBlacklistRepository{revoked: make(map[string]time.Time)}
}

func (r *mockBlacklistRepository) Insert(ctx context.Context, token string, expiresAt time.Time) error {
	if _, ok := r.revoked[token]; !ok {
		r.revoked[token] = expiresAt
	}
	return nil
}

func (r *mockBlacklistRepository) Exists(ctx context.Context, token string) (bool, error) {
	_, ok := r.revoked[token]
	return ok, nil
}

// mockNotifier reports deliveries on a channel so tests can wait for
// the asynchronous send without racing it.
type mockNotifier struct {
	sent chan string
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{sent: make(chan string, 8)}
}

func (n *mockNotifier) Send(recipient, subject, text, html string) error {
	n.sent <- recipient
	return nil
}
