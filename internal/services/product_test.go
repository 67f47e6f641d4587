package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopcraft/storefront/internal/cache"
	cacheMocks "github.com/shopcraft/storefront/internal/cache/mocks"
	appErrors "github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	repoMocks "github.com/shopcraft/storefront/internal/repositories/mocks"
	service "github.com/shopcraft/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupProductServiceTest(t *testing.T) (service.ProductService, *repoMocks.MockProductRepository, *cacheMocks.MockCache) {
	mockRepo := repoMocks.NewMockProductRepository(t)
	mockCache := cacheMocks.NewMockCache(t)
	productService := service.NewProductService(mockRepo, mockCache, 5*time.Minute)

	return productService, mockRepo, mockCache
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productService, mockRepo, _ := setupProductServiceTest(t)
		req := &models.CreateProductRequest{
			BrandID:       uuid.New(),
			CategoryID:    uuid.New(),
			Name:          "Widget",
			SKU:           "WID-1",
			Price:         models.MoneyFromFloat(10.00),
			StockQuantity: 5,
		}

		mockRepo.On("CreateProduct", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Widget" && p.Status == models.ProductStatusActive
		})).Return(nil).Once()

		// Act
		product, err := productService.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, models.ProductStatusActive, product.Status)
	})
}

func TestGetProductByID(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	key := cache.Key(cache.ProductKeyPrefix, productID.String())

	t.Run("Cache Hit Skips Repository", func(t *testing.T) {
		// Arrange
		productService, _, mockCache := setupProductServiceTest(t)
		mockCache.On("Get", ctx, key, mock.AnythingOfType("*models.Product")).Return(true, nil).Once()

		// Act
		product, err := productService.GetProductByID(ctx, productID)

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, product)
	})

	t.Run("Cache Miss Reads Through And Fills", func(t *testing.T) {
		// Arrange
		productService, mockRepo, mockCache := setupProductServiceTest(t)
		stored := activeProduct(productID, 10.00, 5)

		mockCache.On("Get", ctx, key, mock.Anything).Return(false, nil).Once()
		mockRepo.On("GetProductByID", ctx, productID).Return(stored, nil).Once()
		mockCache.On("Set", ctx, key, stored, 5*time.Minute).Return(nil).Once()

		// Act
		product, err := productService.GetProductByID(ctx, productID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
	})

	t.Run("Cache Error Falls Back To Repository", func(t *testing.T) {
		// Arrange
		productService, mockRepo, mockCache := setupProductServiceTest(t)
		stored := activeProduct(productID, 10.00, 5)

		mockCache.On("Get", ctx, key, mock.Anything).Return(false, errors.New("redis down")).Once()
		mockRepo.On("GetProductByID", ctx, productID).Return(stored, nil).Once()
		mockCache.On("Set", ctx, key, stored, 5*time.Minute).Return(errors.New("redis down")).Once()

		// Act
		product, err := productService.GetProductByID(ctx, productID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		productService, mockRepo, mockCache := setupProductServiceTest(t)
		mockCache.On("Get", ctx, key, mock.Anything).Return(false, nil).Once()
		mockRepo.On("GetProductByID", ctx, productID).Return(nil, sql.ErrNoRows).Once()

		// Act
		product, err := productService.GetProductByID(ctx, productID)

		// Assert
		assert.Nil(t, product)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	key := cache.Key(cache.ProductKeyPrefix, productID.String())

	t.Run("Success - Invalidates Cache", func(t *testing.T) {
		// Arrange
		productService, mockRepo, mockCache := setupProductServiceTest(t)
		stored := activeProduct(productID, 10.00, 5)
		newName := "Renamed"

		mockRepo.On("GetProductByID", ctx, productID).Return(stored, nil).Once()
		mockRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.Name == "Renamed"
		})).Return(nil).Once()
		mockCache.On("Delete", ctx, key).Return(nil).Once()

		// Act
		product, err := productService.UpdateProduct(ctx, productID, &models.UpdateProductRequest{Name: &newName})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Renamed", product.Name)
	})

	t.Run("Failure - Negative Price", func(t *testing.T) {
		// Arrange
		productService, mockRepo, _ := setupProductServiceTest(t)
		stored := activeProduct(productID, 10.00, 5)
		bad := models.MoneyFromFloat(-1.00)

		mockRepo.On("GetProductByID", ctx, productID).Return(stored, nil).Once()

		// Act
		product, err := productService.UpdateProduct(ctx, productID, &models.UpdateProductRequest{Price: &bad})

		// Assert
		assert.Nil(t, product)
		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestInvalidateCache(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()
	key := cache.Key(cache.ProductKeyPrefix, productID.String())

	t.Run("Success", func(t *testing.T) {
		// Arrange
		productService, _, mockCache := setupProductServiceTest(t)
		mockCache.On("Delete", ctx, key).Return(nil).Once()

		// Act
		productService.InvalidateCache(ctx, productID)
	})

	t.Run("Success - Cache Error Is Tolerated", func(t *testing.T) {
		// Arrange
		productService, _, mockCache := setupProductServiceTest(t)
		mockCache.On("Delete", ctx, key).Return(errors.New("redis down")).Once()

		// Act
		productService.InvalidateCache(ctx, productID)
	})
}
