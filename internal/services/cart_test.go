package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	appErrors "github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	repoMocks "github.com/shopcraft/storefront/internal/repositories/mocks"
	service "github.com/shopcraft/storefront/internal/services"
	serviceMocks "github.com/shopcraft/storefront/internal/services/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCartServiceTest(t *testing.T) (service.CartService, *repoMocks.MockCartRepository, *serviceMocks.MockProductService) {
	mockRepo := repoMocks.NewMockCartRepository(t)
	mockProducts := serviceMocks.NewMockProductService(t)
	cartService := service.NewCartService(mockRepo, mockProducts, 30*24*time.Hour)

	return cartService, mockRepo, mockProducts
}

func activeProduct(id uuid.UUID, price float64, stock int) *models.Product {
	return &models.Product{
		ID:            id,
		Name:          "Test Product",
		Price:         models.MoneyFromFloat(price),
		StockQuantity: stock,
		Status:        models.ProductStatusActive,
	}
}

func TestGetOrCreateCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success - Existing Cart", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, _ := setupCartServiceTest(t)
		existing := models.NewCart(userID)
		mockRepo.On("GetCartByUserID", ctx, userID).Return(existing, nil).Once()

		// Act
		view, err := cartService.GetOrCreateCart(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, existing.ID, view.ID)
		assert.Equal(t, userID, view.UserID)
		assert.Empty(t, view.Items)
		assert.Equal(t, 0, view.TotalItemCount)
		assert.Equal(t, 0, view.UniqueItemCount)
		assert.Equal(t, "0.00", view.Total.StringFixed(2))
	})

	t.Run("Success - Creates Cart On First Touch", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, _ := setupCartServiceTest(t)
		mockRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()
		mockRepo.On("CreateCart", ctx, mock.MatchedBy(func(c *models.Cart) bool {
			return c.UserID == userID && len(c.Items) == 0
		})).Return(nil).Once()

		// Act
		view, err := cartService.GetOrCreateCart(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, view.UserID)
		assert.Empty(t, view.Items)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, _ := setupCartServiceTest(t)
		dbError := errors.New("database connection failed")
		mockRepo.On("GetCartByUserID", ctx, userID).Return(nil, dbError).Once()

		// Act
		view, err := cartService.GetOrCreateCart(ctx, userID)

		// Assert
		assert.Nil(t, view)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success - New Line", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, mockProducts := setupCartServiceTest(t)
		product := activeProduct(productID, 10.50, 10)
		cart := models.NewCart(userID)

		mockProducts.On("GetProductByID", ctx, productID).Return(product, nil)
		mockRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		mockRepo.On("UpdateCart", ctx, mock.MatchedBy(func(c *models.Cart) bool {
			return c.Items[productID.String()].Quantity == 2
		})).Return(nil).Once()

		// Act
		view, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID, Quantity: 2})

		// Assert
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, 2, view.Items[0].Quantity)
		assert.Equal(t, "21.00", view.Items[0].LineTotal.StringFixed(2))
		assert.Equal(t, 2, view.TotalItemCount)
		assert.Equal(t, 1, view.UniqueItemCount)
		assert.Equal(t, "21.00", view.Total.StringFixed(2))
	})

	t.Run("Success - Re-Add Merges Quantities", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, mockProducts := setupCartServiceTest(t)
		product := activeProduct(productID, 10.00, 10)
		cart := models.NewCart(userID)
		cart.Items[productID.String()] = models.CartItem{ProductID: productID, Quantity: 3}

		mockProducts.On("GetProductByID", ctx, productID).Return(product, nil)
		mockRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		mockRepo.On("UpdateCart", ctx, mock.MatchedBy(func(c *models.Cart) bool {
			return c.Items[productID.String()].Quantity == 5 && len(c.Items) == 1
		})).Return(nil).Once()

		// Act
		view, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID, Quantity: 2})

		// Assert
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, 5, view.Items[0].Quantity)
		assert.Equal(t, 5, view.TotalItemCount)
		assert.Equal(t, 1, view.UniqueItemCount)
	})

	t.Run("Failure - Merged Quantity Exceeds Stock", func(t *testing.T) {
		// Arrange: stock 5, cart already holds 3, adding 3 more must fail.
		cartService, mockRepo, mockProducts := setupCartServiceTest(t)
		product := activeProduct(productID, 10.00, 5)
		cart := models.NewCart(userID)
		cart.Items[productID.String()] = models.CartItem{ProductID: productID, Quantity: 3}

		mockProducts.On("GetProductByID", ctx, productID).Return(product, nil).Once()
		mockRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()

		// Act
		view, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID, Quantity: 3})

		// Assert
		assert.Nil(t, view)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
		assert.Equal(t, "Requested quantity exceeds available stock: 5", appErr.Message)
		assert.Equal(t, 3, cart.Items[productID.String()].Quantity, "cart must be unchanged")
	})

	t.Run("Failure - Product Not Found", func(t *testing.T) {
		// Arrange
		cartService, _, mockProducts := setupCartServiceTest(t)
		notFound := appErrors.NotFoundError("Product not found")
		mockProducts.On("GetProductByID", ctx, productID).Return(nil, notFound).Once()

		// Act
		view, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID, Quantity: 1})

		// Assert
		assert.Nil(t, view)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Inactive Product", func(t *testing.T) {
		// Arrange
		cartService, _, mockProducts := setupCartServiceTest(t)
		product := activeProduct(productID, 10.00, 10)
		product.Status = models.ProductStatusDiscontinued
		mockProducts.On("GetProductByID", ctx, productID).Return(product, nil).Once()

		// Act
		view, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID, Quantity: 1})

		// Assert
		assert.Nil(t, view)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeInvalidState, appErr.Code)
	})

	t.Run("Failure - Out Of Stock", func(t *testing.T) {
		// Arrange
		cartService, _, mockProducts := setupCartServiceTest(t)
		product := activeProduct(productID, 10.00, 0)
		mockProducts.On("GetProductByID", ctx, productID).Return(product, nil).Once()

		// Act
		view, err := cartService.AddItem(ctx, userID, &models.AddItemRequest{ProductID: productID, Quantity: 1})

		// Assert
		assert.Nil(t, view)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeInvalidState, appErr.Code)
		assert.Equal(t, "Product is out of stock", appErr.Message)
	})
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success - Sets Quantity", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, mockProducts := setupCartServiceTest(t)
		product := activeProduct(productID, 4.25, 10)
		cart := models.NewCart(userID)
		cart.Items[productID.String()] = models.CartItem{ProductID: productID, Quantity: 1}

		mockProducts.On("GetProductByID", ctx, productID).Return(product, nil)
		mockRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		mockRepo.On("UpdateCart", ctx, mock.MatchedBy(func(c *models.Cart) bool {
			return c.Items[productID.String()].Quantity == 4
		})).Return(nil).Once()

		// Act
		view, err := cartService.UpdateQuantity(ctx, userID, productID, 4)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 4, view.TotalItemCount)
		assert.Equal(t, "17.00", view.Total.StringFixed(2))
	})

	t.Run("Success - Zero Quantity Removes Line", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, _ := setupCartServiceTest(t)
		cart := models.NewCart(userID)
		cart.Items[productID.String()] = models.CartItem{ProductID: productID, Quantity: 3}

		mockRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		mockRepo.On("UpdateCart", ctx, mock.MatchedBy(func(c *models.Cart) bool {
			return len(c.Items) == 0
		})).Return(nil).Once()

		// Act
		view, err := cartService.UpdateQuantity(ctx, userID, productID, 0)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Equal(t, 0, view.TotalItemCount)
	})

	t.Run("Success - Negative Quantity Removes Line", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, _ := setupCartServiceTest(t)
		cart := models.NewCart(userID)
		cart.Items[productID.String()] = models.CartItem{ProductID: productID, Quantity: 3}

		mockRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		mockRepo.On("UpdateCart", ctx, mock.Anything).Return(nil).Once()

		// Act
		view, err := cartService.UpdateQuantity(ctx, userID, productID, -2)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})

	t.Run("Failure - Item Not In Cart", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, _ := setupCartServiceTest(t)
		mockRepo.On("GetCartByUserID", ctx, userID).Return(models.NewCart(userID), nil).Once()

		// Act
		view, err := cartService.UpdateQuantity(ctx, userID, productID, 2)

		// Assert
		assert.Nil(t, view)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Item not found in the cart", appErr.Message)
	})

	t.Run("Failure - Cart Not Found", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, _ := setupCartServiceTest(t)
		mockRepo.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		// Act
		view, err := cartService.UpdateQuantity(ctx, userID, productID, 2)

		// Assert
		assert.Nil(t, view)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Failure - Quantity Exceeds Stock", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, mockProducts := setupCartServiceTest(t)
		product := activeProduct(productID, 10.00, 5)
		cart := models.NewCart(userID)
		cart.Items[productID.String()] = models.CartItem{ProductID: productID, Quantity: 1}

		mockRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		mockProducts.On("GetProductByID", ctx, productID).Return(product, nil).Once()

		// Act
		view, err := cartService.UpdateQuantity(ctx, userID, productID, 6)

		// Assert
		assert.Nil(t, view)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success - Removes Existing Line", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, _ := setupCartServiceTest(t)
		cart := models.NewCart(userID)
		cart.Items[productID.String()] = models.CartItem{ProductID: productID, Quantity: 2}

		mockRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		mockRepo.On("UpdateCart", ctx, mock.MatchedBy(func(c *models.Cart) bool {
			return len(c.Items) == 0
		})).Return(nil).Once()

		// Act
		view, err := cartService.RemoveItem(ctx, userID, productID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})

	t.Run("Success - Absent Line Is A No-Op", func(t *testing.T) {
		// Arrange: no UpdateCart expected at all.
		cartService, mockRepo, _ := setupCartServiceTest(t)
		mockRepo.On("GetCartByUserID", ctx, userID).Return(models.NewCart(userID), nil).Once()

		// Act
		view, err := cartService.RemoveItem(ctx, userID, productID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, _ := setupCartServiceTest(t)
		cart := models.NewCart(userID)
		cart.Items[uuid.NewString()] = models.CartItem{ProductID: uuid.New(), Quantity: 2}
		cart.Items[uuid.NewString()] = models.CartItem{ProductID: uuid.New(), Quantity: 1}

		mockRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		mockRepo.On("UpdateCart", ctx, mock.MatchedBy(func(c *models.Cart) bool {
			return len(c.Items) == 0
		})).Return(nil).Once()

		// Act
		view, err := cartService.ClearCart(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Equal(t, "0.00", view.Total.StringFixed(2))
	})
}

func TestValidateCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Mixed Valid And Invalid Lines", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, mockProducts := setupCartServiceTest(t)

		okID := uuid.New()
		goneID := uuid.New()
		inactiveID := uuid.New()
		lowStockID := uuid.New()

		cart := models.NewCart(userID)
		cart.Items[okID.String()] = models.CartItem{ProductID: okID, Quantity: 2}
		cart.Items[goneID.String()] = models.CartItem{ProductID: goneID, Quantity: 1}
		cart.Items[inactiveID.String()] = models.CartItem{ProductID: inactiveID, Quantity: 1}
		cart.Items[lowStockID.String()] = models.CartItem{ProductID: lowStockID, Quantity: 9}

		inactive := activeProduct(inactiveID, 3.00, 5)
		inactive.Status = models.ProductStatusInactive

		mockRepo.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		mockProducts.On("GetProductByID", ctx, okID).Return(activeProduct(okID, 10.00, 5), nil).Once()
		mockProducts.On("GetProductByID", ctx, goneID).Return(nil, appErrors.NotFoundError("Product not found")).Once()
		mockProducts.On("GetProductByID", ctx, inactiveID).Return(inactive, nil).Once()
		mockProducts.On("GetProductByID", ctx, lowStockID).Return(activeProduct(lowStockID, 2.00, 4), nil).Once()

		// Act
		view, err := cartService.ValidateCart(ctx, userID)

		// Assert
		require.NoError(t, err)
		require.Len(t, view.Items, 4)

		byProduct := map[uuid.UUID]models.CartLineView{}
		for _, line := range view.Items {
			byProduct[line.ProductID] = line
		}

		assert.True(t, byProduct[okID].Valid)
		assert.False(t, byProduct[goneID].Valid)
		assert.Equal(t, "product no longer exists", byProduct[goneID].Reason)
		assert.False(t, byProduct[inactiveID].Valid)
		assert.Equal(t, "product is no longer available", byProduct[inactiveID].Reason)
		assert.False(t, byProduct[lowStockID].Valid)
		assert.Equal(t, "quantity exceeds available stock: 4", byProduct[lowStockID].Reason)

		// Counters include every line; the total only the valid ones.
		assert.Equal(t, 13, view.TotalItemCount)
		assert.Equal(t, 4, view.UniqueItemCount)
		assert.Equal(t, "20.00", view.Total.StringFixed(2))
	})
}

func TestExpireSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, _ := setupCartServiceTest(t)
		mockRepo.On("DeleteCartsUpdatedBefore", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
			return time.Since(cutoff) > 29*24*time.Hour
		})).Return(int64(7), nil).Once()

		// Act
		removed, err := cartService.ExpireSweep(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(7), removed)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		cartService, mockRepo, _ := setupCartServiceTest(t)
		mockRepo.On("DeleteCartsUpdatedBefore", ctx, mock.Anything).Return(int64(0), errors.New("timeout")).Once()

		// Act
		removed, err := cartService.ExpireSweep(ctx)

		// Assert
		assert.Zero(t, removed)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}
