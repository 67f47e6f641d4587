// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopcraft/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ret := m.Called(ctx, email)

	var user *models.User
	if ret.Get(0) != nil {
		user = ret.Get(0).(*models.User)
	}

	return user, ret.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ret := m.Called(ctx, id)

	var user *models.User
	if ret.Get(0) != nil {
		user = ret.Get(0).(*models.User)
	}

	return user, ret.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository(t testingT) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := m.Called(ctx, id)

	var product *models.Product
	if ret.Get(0) != nil {
		product = ret.Get(0).(*models.Product)
	}

	return product, ret.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, filter models.ProductFilter, page, pageSize int) ([]*models.Product, int, error) {
	ret := m.Called(ctx, filter, page, pageSize)

	var products []*models.Product
	if ret.Get(0) != nil {
		products = ret.Get(0).([]*models.Product)
	}

	return products, ret.Int(1), ret.Error(2)
}

type MockBrandRepository struct {
	mock.Mock
}

func NewMockBrandRepository(t testingT) *MockBrandRepository {
	m := &MockBrandRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBrandRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *MockBrandRepository) GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	ret := m.Called(ctx, id)

	var brand *models.Brand
	if ret.Get(0) != nil {
		brand = ret.Get(0).(*models.Brand)
	}

	return brand, ret.Error(1)
}

func (m *MockBrandRepository) UpdateBrand(ctx context.Context, brand *models.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *MockBrandRepository) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	ret := m.Called(ctx)

	var brands []*models.Brand
	if ret.Get(0) != nil {
		brands = ret.Get(0).([]*models.Brand)
	}

	return brands, ret.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func NewMockCategoryRepository(t testingT) *MockCategoryRepository {
	m := &MockCategoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	ret := m.Called(ctx, id)

	var category *models.Category
	if ret.Get(0) != nil {
		category = ret.Get(0).(*models.Category)
	}

	return category, ret.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	ret := m.Called(ctx)

	var categories []*models.Category
	if ret.Get(0) != nil {
		categories = ret.Get(0).([]*models.Category)
	}

	return categories, ret.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func NewMockCartRepository(t testingT) *MockCartRepository {
	m := &MockCartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *MockCartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	ret := m.Called(ctx, userID)

	var cart *models.Cart
	if ret.Get(0) != nil {
		cart = ret.Get(0).(*models.Cart)
	}

	return cart, ret.Error(1)
}

func (m *MockCartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *MockCartRepository) DeleteCart(ctx context.Context, cartID uuid.UUID) error {
	return m.Called(ctx, cartID).Error(0)
}

func (m *MockCartRepository) DeleteCartsUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ret := m.Called(ctx, cutoff)

	return ret.Get(0).(int64), ret.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository(t testingT) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ret := m.Called(ctx, id)

	var order *models.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*models.Order)
	}

	return order, ret.Error(1)
}

func (m *MockOrderRepository) GetOrderByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	ret := m.Called(ctx, paymentID)

	var order *models.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*models.Order)
	}

	return order, ret.Error(1)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {
	ret := m.Called(ctx, userID, page, pageSize)

	var orders []models.Order
	if ret.Get(0) != nil {
		orders = ret.Get(0).([]models.Order)
	}

	return orders, ret.Int(1), ret.Error(2)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, page, pageSize int) ([]models.Order, int, error) {
	ret := m.Called(ctx, page, pageSize)

	var orders []models.Order
	if ret.Get(0) != nil {
		orders = ret.Get(0).([]models.Order)
	}

	return orders, ret.Int(1), ret.Error(2)
}

type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository(t testingT) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *MockNotificationRepository) UpdateNotification(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *MockNotificationRepository) ListNotificationsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Notification, int, error) {
	ret := m.Called(ctx, userID, page, pageSize)

	var notifications []models.Notification
	if ret.Get(0) != nil {
		notifications = ret.Get(0).([]models.Notification)
	}

	return notifications, ret.Int(1), ret.Error(2)
}

type MockRateLimitRepository struct {
	mock.Mock
}

func NewMockRateLimitRepository(t testingT) *MockRateLimitRepository {
	m := &MockRateLimitRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	ret := m.Called(ctx, username)

	return ret.Bool(0), ret.Int(1), ret.Int(2), ret.Error(3)
}
