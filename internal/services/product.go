package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopcraft/storefront/internal/cache"
	"github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	repository "github.com/shopcraft/storefront/internal/repositories"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter, page, pageSize int) ([]*models.Product, int, error)
	InvalidateCache(ctx context.Context, id uuid.UUID)
}

type productService struct {
	repo     repository.ProductRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewProductService(repo repository.ProductRepository, productCache cache.Cache, cacheTTL time.Duration) ProductService {
	return &productService{repo: repo, cache: productCache, cacheTTL: cacheTTL}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		ID:            uuid.New(),
		BrandID:       req.BrandID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Model:         req.Model,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Status:        models.ProductStatusActive,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

// GetProductByID is a read-through lookup: the cart stock guard hits this on
// every add and validate, so products are served from the cache between
// catalog updates.
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, id.String())

	product := &models.Product{}

	found, err := s.cache.Get(ctx, key, product)
	if err != nil {
		slog.Warn("Product cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	if found {
		return product, nil
	}

	product, err = s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, s.cacheTTL); err != nil {
		slog.Warn("Product cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Product not found").WithError(err)
	}

	if req.BrandID != nil {
		product.BrandID = *req.BrandID
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Model != nil {
		product.Model = *req.Model
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.BadRequestError("Price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to update product").WithError(err)
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter models.ProductFilter, page, pageSize int) ([]*models.Product, int, error) {

	products, total, err := s.repo.ListProducts(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, total, nil
}

// InvalidateCache drops the cached snapshot of a product after something
// other than this service mutated it, e.g. the stock decrements issued by a
// checkout transaction.
func (s *productService) InvalidateCache(ctx context.Context, id uuid.UUID) {
	s.invalidate(ctx, id)
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	key := cache.Key(cache.ProductKeyPrefix, id.String())

	if err := s.cache.Delete(ctx, key); err != nil {
		slog.Warn("Product cache invalidation failed", slog.String("key", key), slog.Any("error", err))
	}
}
