package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopcraft/storefront/internal/api/handlers"
	"github.com/shopcraft/storefront/internal/api/middleware"
	appErrors "github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	"github.com/shopcraft/storefront/internal/services/mocks"
	"github.com/shopcraft/storefront/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authenticatedRequest(method, url string, body []byte) (*http.Request, *models.Claims) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewBuffer(body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	req.Header.Set("Content-Type", "application/json")

	claims := &models.Claims{
		UserID: uuid.New(),
		Email:  "shopper@example.com",
		Role:   models.RoleCustomer,
	}

	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)

	return req.WithContext(ctx), claims
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) *response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

	return &resp
}

func TestGetCart(t *testing.T) {
	t.Run("Success - Retrieve Cart", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		req, claims := authenticatedRequest(http.MethodGet, "/api/v1/carts", nil)
		recorder := httptest.NewRecorder()

		view := &models.CartView{ID: uuid.New(), UserID: claims.UserID}

		mockCartService.On("GetOrCreateCart", mock.Anything, claims.UserID).Return(view, nil).Once()

		// Act
		cartHandler.GetCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		resp := decodeResponse(t, recorder)
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)
	})

	t.Run("Failure - Unauthenticated", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/carts", nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.GetCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)

		resp := decodeResponse(t, recorder)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error.Message, "Authentication required")
	})
}

func TestAddItem(t *testing.T) {
	productID := uuid.New()

	t.Run("Success - Add Item", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		body, err := json.Marshal(models.AddItemRequest{ProductID: productID, Quantity: 2})
		require.NoError(t, err)

		req, claims := authenticatedRequest(http.MethodPost, "/api/v1/carts/items", body)
		recorder := httptest.NewRecorder()

		view := &models.CartView{UserID: claims.UserID, TotalItemCount: 2, UniqueItemCount: 1}

		mockCartService.On("AddItem", mock.Anything, claims.UserID,
			mock.MatchedBy(func(r *models.AddItemRequest) bool {
				return r.ProductID == productID && r.Quantity == 2
			})).Return(view, nil).Once()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		resp := decodeResponse(t, recorder)
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Validation Error", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		body, err := json.Marshal(models.AddItemRequest{ProductID: productID, Quantity: 0})
		require.NoError(t, err)

		req, _ := authenticatedRequest(http.MethodPost, "/api/v1/carts/items", body)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		resp := decodeResponse(t, recorder)
		assert.False(t, resp.Success)
	})

	t.Run("Failure - Stock Exceeded", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		body, err := json.Marshal(models.AddItemRequest{ProductID: productID, Quantity: 10})
		require.NoError(t, err)

		req, claims := authenticatedRequest(http.MethodPost, "/api/v1/carts/items", body)
		recorder := httptest.NewRecorder()

		mockCartService.On("AddItem", mock.Anything, claims.UserID, mock.Anything).
			Return(nil, appErrors.BadRequestError("Requested quantity exceeds available stock: 5")).Once()

		// Act
		cartHandler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		resp := decodeResponse(t, recorder)
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error.Message, "exceeds available stock")
	})
}

func TestUpdateQuantity(t *testing.T) {
	productID := uuid.New()

	t.Run("Success - Update Quantity", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		body, err := json.Marshal(models.UpdateQuantityRequest{Quantity: 4})
		require.NoError(t, err)

		req, claims := authenticatedRequest(http.MethodPut, "/api/v1/carts/items/"+productID.String(), body)
		req.SetPathValue("productId", productID.String())
		recorder := httptest.NewRecorder()

		view := &models.CartView{UserID: claims.UserID, TotalItemCount: 4}

		mockCartService.On("UpdateQuantity", mock.Anything, claims.UserID, productID, 4).Return(view, nil).Once()

		// Act
		cartHandler.UpdateQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Success - Zero Quantity Removes Line", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		body, err := json.Marshal(models.UpdateQuantityRequest{Quantity: 0})
		require.NoError(t, err)

		req, claims := authenticatedRequest(http.MethodPut, "/api/v1/carts/items/"+productID.String(), body)
		req.SetPathValue("productId", productID.String())
		recorder := httptest.NewRecorder()

		view := &models.CartView{UserID: claims.UserID}

		mockCartService.On("UpdateQuantity", mock.Anything, claims.UserID, productID, 0).Return(view, nil).Once()

		// Act
		cartHandler.UpdateQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Failure - Invalid Product ID", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req, _ := authenticatedRequest(http.MethodPut, "/api/v1/carts/items/not-a-uuid", []byte(`{"quantity": 1}`))
		req.SetPathValue("productId", "not-a-uuid")
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.UpdateQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRemoveItem(t *testing.T) {
	productID := uuid.New()

	t.Run("Success - Remove Item", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req, claims := authenticatedRequest(http.MethodDelete, "/api/v1/carts/items/"+productID.String(), nil)
		req.SetPathValue("productId", productID.String())
		recorder := httptest.NewRecorder()

		view := &models.CartView{UserID: claims.UserID}

		mockCartService.On("RemoveItem", mock.Anything, claims.UserID, productID).Return(view, nil).Once()

		// Act
		cartHandler.RemoveItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestValidateCart(t *testing.T) {
	t.Run("Success - Reports Invalid Lines", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req, claims := authenticatedRequest(http.MethodGet, "/api/v1/carts/validate", nil)
		recorder := httptest.NewRecorder()

		view := &models.CartView{
			UserID: claims.UserID,
			Items: []models.CartLineView{
				{ProductID: uuid.New(), Quantity: 1, Valid: true},
				{ProductID: uuid.New(), Quantity: 3, Valid: false, Reason: "product no longer exists"},
			},
		}

		mockCartService.On("ValidateCart", mock.Anything, claims.UserID).Return(view, nil).Once()

		// Act
		cartHandler.ValidateCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		resp := decodeResponse(t, recorder)
		assert.True(t, resp.Success)
	})
}

func TestSweepExpiredCarts(t *testing.T) {
	t.Run("Success - Sweep", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req, _ := authenticatedRequest(http.MethodPost, "/api/v1/admin/carts/sweep", nil)
		recorder := httptest.NewRecorder()

		mockCartService.On("ExpireSweep", mock.Anything).Return(int64(3), nil).Once()

		// Act
		cartHandler.SweepExpiredCarts()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		resp := decodeResponse(t, recorder)
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Service Error", func(t *testing.T) {
		// Arrange
		mockCartService := mocks.NewMockCartService(t)
		cartHandler := handlers.NewCartHandler(mockCartService)

		req, _ := authenticatedRequest(http.MethodPost, "/api/v1/admin/carts/sweep", nil)
		recorder := httptest.NewRecorder()

		mockCartService.On("ExpireSweep", mock.Anything).
			Return(int64(0), appErrors.DatabaseError("Failed to sweep carts")).Once()

		// Act
		cartHandler.SweepExpiredCarts()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		resp := decodeResponse(t, recorder)
		assert.False(t, resp.Success)
	})
}
