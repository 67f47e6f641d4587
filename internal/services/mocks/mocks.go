// Package mocks provides testify mocks for the service interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopcraft/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockProductService struct {
	mock.Mock
}

func NewMockProductService(t testingT) *MockProductService {
	m := &MockProductService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	ret := m.Called(ctx, req)

	var product *models.Product
	if ret.Get(0) != nil {
		product = ret.Get(0).(*models.Product)
	}

	return product, ret.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	ret := m.Called(ctx, id)

	var product *models.Product
	if ret.Get(0) != nil {
		product = ret.Get(0).(*models.Product)
	}

	return product, ret.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	ret := m.Called(ctx, id, req)

	var product *models.Product
	if ret.Get(0) != nil {
		product = ret.Get(0).(*models.Product)
	}

	return product, ret.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context, filter models.ProductFilter, page, pageSize int) ([]*models.Product, int, error) {
	ret := m.Called(ctx, filter, page, pageSize)

	var products []*models.Product
	if ret.Get(0) != nil {
		products = ret.Get(0).([]*models.Product)
	}

	return products, ret.Int(1), ret.Error(2)
}

func (m *MockProductService) InvalidateCache(ctx context.Context, id uuid.UUID) {
	m.Called(ctx, id)
}

type MockNotificationService struct {
	mock.Mock
}

func NewMockNotificationService(t testingT) *MockNotificationService {
	m := &MockNotificationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockNotificationService) ListNotificationsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Notification, int, error) {
	ret := m.Called(ctx, userID, page, pageSize)

	var notifications []models.Notification
	if ret.Get(0) != nil {
		notifications = ret.Get(0).([]models.Notification)
	}

	return notifications, ret.Int(1), ret.Error(2)
}

type MockCartService struct {
	mock.Mock
}

func NewMockCartService(t testingT) *MockCartService {
	m := &MockCartService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartService) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	ret := m.Called(ctx, userID)

	var view *models.CartView
	if ret.Get(0) != nil {
		view = ret.Get(0).(*models.CartView)
	}

	return view, ret.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartView, error) {
	ret := m.Called(ctx, userID, req)

	var view *models.CartView
	if ret.Get(0) != nil {
		view = ret.Get(0).(*models.CartView)
	}

	return view, ret.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int) (*models.CartView, error) {
	ret := m.Called(ctx, userID, productID, quantity)

	var view *models.CartView
	if ret.Get(0) != nil {
		view = ret.Get(0).(*models.CartView)
	}

	return view, ret.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*models.CartView, error) {
	ret := m.Called(ctx, userID, productID)

	var view *models.CartView
	if ret.Get(0) != nil {
		view = ret.Get(0).(*models.CartView)
	}

	return view, ret.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	ret := m.Called(ctx, userID)

	var view *models.CartView
	if ret.Get(0) != nil {
		view = ret.Get(0).(*models.CartView)
	}

	return view, ret.Error(1)
}

func (m *MockCartService) ValidateCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	ret := m.Called(ctx, userID)

	var view *models.CartView
	if ret.Get(0) != nil {
		view = ret.Get(0).(*models.CartView)
	}

	return view, ret.Error(1)
}

func (m *MockCartService) ExpireSweep(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)

	return ret.Get(0).(int64), ret.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func NewMockOrderService(t testingT) *MockOrderService {
	m := &MockOrderService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderService) CreateOrderFromCart(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {
	ret := m.Called(ctx, userID, req)

	var order *models.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*models.Order)
	}

	return order, ret.Error(1)
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ret := m.Called(ctx, id)

	var order *models.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*models.Order)
	}

	return order, ret.Error(1)
}

func (m *MockOrderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {
	ret := m.Called(ctx, userID, page, pageSize)

	var orders []models.Order
	if ret.Get(0) != nil {
		orders = ret.Get(0).([]models.Order)
	}

	return orders, ret.Int(1), ret.Error(2)
}

func (m *MockOrderService) ListOrders(ctx context.Context, page, pageSize int) ([]models.Order, int, error) {
	ret := m.Called(ctx, page, pageSize)

	var orders []models.Order
	if ret.Get(0) != nil {
		orders = ret.Get(0).([]models.Order)
	}

	return orders, ret.Int(1), ret.Error(2)
}

func (m *MockOrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	ret := m.Called(ctx, id, req)

	var order *models.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*models.Order)
	}

	return order, ret.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ret := m.Called(ctx, id)

	var order *models.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*models.Order)
	}

	return order, ret.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func NewMockPaymentService(t testingT) *MockPaymentService {
	m := &MockPaymentService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPaymentService) InitiatePayment(ctx context.Context, orderID uuid.UUID) (*models.PaymentDescriptor, error) {
	ret := m.Called(ctx, orderID)

	var descriptor *models.PaymentDescriptor
	if ret.Get(0) != nil {
		descriptor = ret.Get(0).(*models.PaymentDescriptor)
	}

	return descriptor, ret.Error(1)
}

func (m *MockPaymentService) CompletePayment(ctx context.Context, orderID uuid.UUID, req *models.CompletePaymentRequest) (*models.Order, error) {
	ret := m.Called(ctx, orderID, req)

	var order *models.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*models.Order)
	}

	return order, ret.Error(1)
}

func (m *MockPaymentService) HandleWebhook(ctx context.Context, req *models.PaymentWebhookRequest) (*models.Order, error) {
	ret := m.Called(ctx, req)

	var order *models.Order
	if ret.Get(0) != nil {
		order = ret.Get(0).(*models.Order)
	}

	return order, ret.Error(1)
}
