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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart returns the caller's cart, creating an empty one on first touch.
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.GetOrCreateCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to fetch cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to add item to cart",
				slog.String("productId", req.ProductID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input")
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, productID, req.Quantity)
		if err != nil {
			logger.Warn("Failed to update cart quantity",
				slog.String("productId", productID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart quantity updated",
			slog.String("productId", productID.String()),
			slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, productID)
		if err != nil {
			logger.Warn("Failed to remove cart item",
				slog.String("productId", productID.String()),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item removed from cart", slog.String("productId", productID.String()))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.ClearCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared")
		response.Success(w, http.StatusOK, cart)
	}
}

// ValidateCart re-checks every line against the live catalog without
// mutating the cart.
func (h *CartHandler) ValidateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized cart access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		cart, err := h.cartService.ValidateCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to validate cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// SweepExpiredCarts is admin-only housekeeping for carts idle past the
// configured age.
func (h *CartHandler) SweepExpiredCarts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		removed, err := h.cartService.ExpireSweep(r.Context())
		if err != nil {
			logger.Error("Expired cart sweep failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Expired cart sweep completed", slog.Int64("removed", removed))
		response.Success(w, http.StatusOK, map[string]int64{"removed": removed})
	}
}
