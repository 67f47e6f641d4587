package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopcraft/storefront/internal/api/middleware"
	"github.com/shopcraft/storefront/internal/models"
	service "github.com/shopcraft/storefront/internal/services"
	"github.com/shopcraft/storefront/internal/utils"
	"github.com/shopcraft/storefront/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, validator: validator.New()}
}

func (h *CatalogHandler) CreateBrand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateBrandRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create brand input")
			return
		}

		brand, err := h.catalogService.CreateBrand(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create brand", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Brand created successfully", slog.String("brandId", brand.ID.String()))
		response.Success(w, http.StatusCreated, brand)
	}
}

func (h *CatalogHandler) GetBrand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		brand, err := h.catalogService.GetBrandByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, brand)
	}
}

func (h *CatalogHandler) UpdateBrand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateBrandRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update brand input")
			return
		}

		brand, err := h.catalogService.UpdateBrand(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update brand", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Brand updated successfully", slog.String("brandId", brand.ID.String()))
		response.Success(w, http.StatusOK, brand)
	}
}

func (h *CatalogHandler) ListBrands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		brands, err := h.catalogService.ListBrands(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, brands)
	}
}

func (h *CatalogHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid create category input")
			return
		}

		category, err := h.catalogService.CreateCategory(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category created successfully", slog.String("categoryId", category.ID.String()))
		response.Success(w, http.StatusCreated, category)
	}
}

func (h *CatalogHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		category, err := h.catalogService.GetCategoryByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

func (h *CatalogHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update category input")
			return
		}

		category, err := h.catalogService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update category", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category updated successfully", slog.String("categoryId", category.ID.String()))
		response.Success(w, http.StatusOK, category)
	}
}

func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}
