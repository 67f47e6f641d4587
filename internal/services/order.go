package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	repository "github.com/shopcraft/storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrderFromCart(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int, error)
	ListOrders(ctx context.Context, page, pageSize int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

// CheckoutPricing is the order-level pricing applied on top of the cart
// subtotal at checkout time.
type CheckoutPricing struct {
	ShippingFee models.Money
	TaxRate     decimal.Decimal
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	products  ProductService
	pricing   CheckoutPricing
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, products ProductService, pricing CheckoutPricing) OrderService {
	return &orderService{orderRepo: orderRepo, cartRepo: cartRepo, products: products, pricing: pricing}
}

// CreateOrderFromCart turns the user's cart into a PENDING order. Every line
// must pass the stock guard at creation time, and the order items freeze the
// product's display fields and unit price so later catalog edits cannot
// rewrite history. The cart is emptied once the order exists.
//
// The order insert and the stock decrements commit in a single transaction:
// two concurrent checkouts racing for the last unit cannot both succeed, and
// a rejected decrement rolls back the order with the stock untouched.
func (s *orderService) CreateOrderFromCart(ctx context.Context, userID uuid.UUID, req *models.CreateOrderRequest) (*models.Order, error) {

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFoundError("Cart not found").WithError(err)
	}

	if len(cart.Items) == 0 {
		return nil, errors.BadRequestError("Cannot create order with empty cart")
	}

	order := &models.Order{
		ID:       uuid.New(),
		UserID:   userID,
		Status:   models.OrderStatusPending,
		Shipping: req.Shipping,
	}

	subtotal := models.ZeroMoney()

	for _, item := range cart.Items {

		product, err := s.products.GetProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, errors.NotFoundError("Product not found: " + item.ProductID.String()).WithError(err)
		}

		if !product.IsActive() {
			return nil, errors.InvalidStateError("Product is no longer available: " + product.Name)
		}

		if product.StockQuantity < item.Quantity {
			return nil, errors.BadRequestError("Insufficient stock for product: " + product.Name)
		}

		orderItem := models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Name:      product.Name,
			SKU:       product.SKU,
			Model:     product.Model,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
			CreatedAt: time.Now(),
		}
		if product.Brand != nil {
			orderItem.Brand = product.Brand.Name
		}

		subtotal = subtotal.AddMoney(orderItem.LineTotal())
		order.Items = append(order.Items, orderItem)
	}

	order.SubtotalAmount = subtotal
	order.ShippingAmount = s.pricing.ShippingFee
	order.TaxAmount = models.NewMoney(subtotal.Mul(s.pricing.TaxRate).Round(2))
	order.TotalAmount = order.SubtotalAmount.AddMoney(order.ShippingAmount).AddMoney(order.TaxAmount)
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		if stderrors.Is(err, repository.ErrInsufficientStock) {
			return nil, errors.BadRequestError("Insufficient stock for one or more products").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to create order").WithError(err)
	}

	for _, item := range order.Items {
		s.products.InvalidateCache(ctx, item.ProductID)
	}

	// checkout consumes the cart
	cart.Items = make(map[string]models.CartItem)
	cart.UpdatedAt = time.Now()

	if err := s.cartRepo.UpdateCart(ctx, cart); err != nil {
		slog.Warn("Failed to clear cart after checkout",
			slog.String("orderId", order.ID.String()), slog.Any("error", err))
	}

	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {

	orders, total, err := s.orderRepo.ListOrdersByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

func (s *orderService) ListOrders(ctx context.Context, page, pageSize int) ([]models.Order, int, error) {

	orders, total, err := s.orderRepo.ListOrders(ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// UpdateOrderStatus applies an administrative transition through the
// lifecycle table. Shipping requires a tracking number; the shipped-at and
// delivered-at timestamps are set by the transition itself, exactly once.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, req *models.UpdateOrderStatusRequest) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if req.Status == models.OrderStatusShipped && req.TrackingNumber == "" {
		return nil, errors.BadRequestError("Tracking number is required to mark an order shipped")
	}

	if err := order.Transition(req.Status, time.Now()); err != nil {
		return nil, errors.InvalidStateError(
			fmt.Sprintf("Cannot transition order from %s to %s", order.Status, req.Status)).WithError(err)
	}

	if req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	return order, nil
}

// CancelOrder is permitted only while the order is cancellable, i.e. PENDING
// or PAID.
func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	if !order.Status.IsCancellable() {
		return nil, errors.InvalidStateError(
			fmt.Sprintf("Order in status %s cannot be cancelled", order.Status))
	}

	if err := order.Transition(models.OrderStatusCancelled, time.Now()); err != nil {
		return nil, errors.InvalidStateError(
			fmt.Sprintf("Cannot transition order from %s to %s", order.Status, models.OrderStatusCancelled)).WithError(err)
	}

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to cancel order").WithError(err)
	}

	return order, nil
}
