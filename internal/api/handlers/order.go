package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopcraft/storefront/internal/api/middleware"
	"github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	service "github.com/shopcraft/storefront/internal/services"
	"github.com/shopcraft/storefront/internal/utils"
	"github.com/shopcraft/storefront/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// CreateOrder turns the caller's cart into a PENDING order.
func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order creation attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.CreateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create order input")
			return
		}

		order, err := h.orderService.CreateOrderFromCart(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to create order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order created successfully", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusCreated, order)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.GetOrderByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to fetch order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		// Customers see only their own orders.
		if order.UserID != claims.UserID && !claims.IsAdmin() {
			logger.Warn("User attempted to access another user's order",
				slog.String("orderId", id.String()))
			response.Error(w, errors.ForbiddenError("You can only view your own orders"))
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		orders, total, err := h.orderService.ListOrdersByUser(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list user orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// ListAllOrders is the admin view across every customer.
func (h *OrderHandler) ListAllOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		orders, total, err := h.orderService.ListOrders(r.Context(), page, pageSize)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     orders,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}

// UpdateOrderStatus advances an order through its lifecycle. Admin only.
func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid order status input")
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, &req)
		if err != nil {
			logger.Warn("Failed to update order status",
				slog.String("orderId", id.String()),
				slog.String("status", string(req.Status)),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order status updated",
			slog.String("orderId", order.ID.String()),
			slog.String("status", string(order.Status)))
		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized order access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		existing, err := h.orderService.GetOrderByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		if existing.UserID != claims.UserID && !claims.IsAdmin() {
			logger.Warn("User attempted to cancel another user's order",
				slog.String("orderId", id.String()))
			response.Error(w, errors.ForbiddenError("You can only cancel your own orders"))
			return
		}

		order, err := h.orderService.CancelOrder(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to cancel order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order cancelled", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusOK, order)
	}
}
