package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopcraft/storefront/internal/api/middleware"
	"github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	service "github.com/shopcraft/storefront/internal/services"
	"github.com/shopcraft/storefront/internal/utils"
	"github.com/shopcraft/storefront/internal/utils/response"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	orderService   service.OrderService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService, orderService service.OrderService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, orderService: orderService, validator: validator.New()}
}

// InitiatePayment creates a PayPal order for a PENDING order and returns the
// approval link. The order itself is not mutated until capture.
func (h *PaymentHandler) InitiatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized payment attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orderID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), orderID)
		if err != nil {
			response.Error(w, err)
			return
		}

		if order.UserID != claims.UserID {
			logger.Warn("User attempted to pay for another user's order",
				slog.String("orderId", orderID.String()))
			response.Error(w, errors.ForbiddenError("You can only make payments for your own orders"))
			return
		}

		descriptor, err := h.paymentService.InitiatePayment(r.Context(), orderID)
		if err != nil {
			logger.Error("Failed to initiate payment",
				slog.String("orderId", orderID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment initiated",
			slog.String("orderId", orderID.String()),
			slog.String("providerOrderId", descriptor.ProviderOrderID))
		response.Success(w, http.StatusOK, descriptor)
	}
}

// CompletePayment captures an approved PayPal order and marks the order PAID.
func (h *PaymentHandler) CompletePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized payment attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		orderID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		existing, err := h.orderService.GetOrderByID(r.Context(), orderID)
		if err != nil {
			response.Error(w, err)
			return
		}

		if existing.UserID != claims.UserID {
			logger.Warn("User attempted to complete another user's payment",
				slog.String("orderId", orderID.String()))
			response.Error(w, errors.ForbiddenError("You can only make payments for your own orders"))
			return
		}

		var req models.CompletePaymentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid complete payment input")
			return
		}

		order, err := h.paymentService.CompletePayment(r.Context(), orderID, &req)
		if err != nil {
			logger.Error("Failed to complete payment",
				slog.String("orderId", orderID.String()),
				slog.String("paymentId", req.PaymentID),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment completed",
			slog.String("orderId", order.ID.String()),
			slog.String("paymentId", req.PaymentID))
		response.Success(w, http.StatusOK, order)
	}
}

// Webhook receives provider status notifications. It is unauthenticated; the
// payment id must match an order we issued.
func (h *PaymentHandler) Webhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.PaymentWebhookRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid webhook payload")
			return
		}

		order, err := h.paymentService.HandleWebhook(r.Context(), &req)
		if err != nil {
			logger.Warn("Webhook processing failed",
				slog.String("paymentId", req.PaymentID),
				slog.String("providerStatus", req.Status),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Webhook processed",
			slog.String("orderId", order.ID.String()),
			slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}
