package service

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	repository "github.com/shopcraft/storefront/internal/repositories"
	"github.com/shopcraft/storefront/pkg/paypal"
	"github.com/google/uuid"
)

// PaymentService is the bridge between the payment provider's identifiers
// and status vocabulary and the order lifecycle. Both entry points are
// externally triggered: the storefront never calls the provider on its own.
type PaymentService interface {
	InitiatePayment(ctx context.Context, orderID uuid.UUID) (*models.PaymentDescriptor, error)
	CompletePayment(ctx context.Context, orderID uuid.UUID, req *models.CompletePaymentRequest) (*models.Order, error)
	HandleWebhook(ctx context.Context, req *models.PaymentWebhookRequest) (*models.Order, error)
}

type paymentService struct {
	orderRepo repository.OrderRepository
	client    paypal.Client
	notifier  NotificationService
	currency  string
}

func NewPaymentService(orderRepo repository.OrderRepository, client paypal.Client, notifier NotificationService, currency string) PaymentService {
	return &paymentService{orderRepo: orderRepo, client: client, notifier: notifier, currency: currency}
}

// InitiatePayment returns the provider-facing descriptor for an order's
// checkout. The order itself is not mutated; correlation ids are only
// recorded when the payment completes.
func (s *paymentService) InitiatePayment(ctx context.Context, orderID uuid.UUID) (*models.PaymentDescriptor, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	providerOrder, err := s.client.CreateOrder(ctx, order.TotalAmount.Decimal, s.currency, order.ID.String())
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to create provider order").WithError(err)
	}

	return &models.PaymentDescriptor{
		OrderID:         order.ID,
		ProviderOrderID: providerOrder.ID,
		Amount:          order.TotalAmount,
		Currency:        s.currency,
		ApproveURL:      paypal.ApproveURL(providerOrder),
	}, nil
}

// CompletePayment records the provider correlation identifiers and moves the
// order PENDING→PAID. A payment id can only ever be attached to one order;
// reusing it against a different order is rejected without touching either
// order.
func (s *paymentService) CompletePayment(ctx context.Context, orderID uuid.UUID, req *models.CompletePaymentRequest) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, errors.NotFoundError("Order not found").WithError(err)
	}

	existing, err := s.orderRepo.GetOrderByPaymentID(ctx, req.PaymentID)
	if err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to check payment id").WithError(err)
	}

	if existing != nil && existing.ID != order.ID {
		return nil, errors.BadRequestError("Payment id is already attached to another order")
	}

	if !order.Status.CanTransitionTo(models.OrderStatusPaid) {
		return nil, errors.InvalidStateError(
			fmt.Sprintf("Order in status %s is not awaiting payment", order.Status))
	}

	if _, err := s.client.CaptureOrder(ctx, req.ProviderOrderID); err != nil {
		return nil, errors.ThirdPartyError("Failed to capture payment").WithError(err)
	}

	order.PaymentID = req.PaymentID
	order.PayerID = req.PayerID
	order.ProviderOrderID = req.ProviderOrderID

	if err := order.Transition(models.OrderStatusPaid, time.Now()); err != nil {
		return nil, errors.InvalidStateError("Order is not awaiting payment").WithError(err)
	}

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to record payment").WithError(err)
	}

	// confirmation email is best effort; the payment is already recorded
	if err := s.notifier.SendOrderConfirmation(ctx, order); err != nil {
		slog.Warn("Failed to send order confirmation",
			slog.String("orderId", order.ID.String()), slog.Any("error", err))
	}

	return order, nil
}

// HandleWebhook resolves the provider's payment id to an order and applies
// the transition its status maps to. A provider status outside the mapped
// vocabulary, or a mapped transition not in the lifecycle table, is rejected
// and the order is left unchanged.
func (s *paymentService) HandleWebhook(ctx context.Context, req *models.PaymentWebhookRequest) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByPaymentID(ctx, req.PaymentID)
	if err != nil {
		return nil, errors.NotFoundError("No order for payment id").WithError(err)
	}

	next, ok := mapProviderStatus(req.Status)
	if !ok {
		return nil, errors.InvalidStateError("Unrecognized provider status: " + req.Status)
	}

	if err := order.Transition(next, time.Now()); err != nil {
		return nil, errors.InvalidStateError(
			fmt.Sprintf("Cannot transition order from %s to %s", order.Status, next)).WithError(err)
	}

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, errors.DatabaseError("Failed to update order status").WithError(err)
	}

	return order, nil
}

// mapProviderStatus translates the provider's status vocabulary onto the
// order lifecycle.
func mapProviderStatus(status string) (models.OrderStatus, bool) {
	switch strings.ToUpper(status) {
	case "COMPLETED", "APPROVED":
		return models.OrderStatusPaid, true
	case "DENIED", "VOIDED":
		return models.OrderStatusCancelled, true
	case "REFUNDED", "PARTIALLY_REFUNDED":
		return models.OrderStatusRefunded, true
	}

	return "", false
}
