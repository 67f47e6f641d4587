package service

import (
	"context"

	"github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	repository "github.com/shopcraft/storefront/internal/repositories"
	"github.com/google/uuid"
)

// CatalogService covers the brand and category reference data products hang
// off of.
type CatalogService interface {
	CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, error)
	GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	UpdateBrand(ctx context.Context, id uuid.UUID, req *models.UpdateBrandRequest) (*models.Brand, error)
	ListBrands(ctx context.Context) ([]*models.Brand, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

type catalogService struct {
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(brandRepo repository.BrandRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{brandRepo: brandRepo, categoryRepo: categoryRepo}
}

func (s *catalogService) CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, error) {

	brand := &models.Brand{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.brandRepo.CreateBrand(ctx, brand); err != nil {
		return nil, errors.DatabaseError("Failed to create brand").WithError(err)
	}

	return brand, nil
}

func (s *catalogService) GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {

	brand, err := s.brandRepo.GetBrandByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Brand not found").WithError(err)
	}

	return brand, nil
}

func (s *catalogService) UpdateBrand(ctx context.Context, id uuid.UUID, req *models.UpdateBrandRequest) (*models.Brand, error) {

	brand, err := s.brandRepo.GetBrandByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Brand not found").WithError(err)
	}

	if req.Name != nil {
		brand.Name = *req.Name
	}

	if req.Description != nil {
		brand.Description = *req.Description
	}

	if err := s.brandRepo.UpdateBrand(ctx, brand); err != nil {
		return nil, errors.DatabaseError("Failed to update brand").WithError(err)
	}

	return brand, nil
}

func (s *catalogService) ListBrands(ctx context.Context) ([]*models.Brand, error) {

	brands, err := s.brandRepo.ListBrands(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch brands").WithError(err)
	}

	return brands, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {

	category := &models.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *catalogService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {

	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {

	category, err := s.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("Category not found").WithError(err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}

	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return nil, errors.DatabaseError("Failed to update category").WithError(err)
	}

	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to fetch categories").WithError(err)
	}

	return categories, nil
}
