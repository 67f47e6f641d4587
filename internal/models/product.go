package models

import (
	"time"

	"github.com/google/uuid"
)

type Brand struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID            uuid.UUID `json:"id"`
	BrandID       uuid.UUID `json:"brand_id"`
	CategoryID    uuid.UUID `json:"category_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	SKU           string    `json:"sku"`
	Model         string    `json:"model,omitempty"`
	Price         Money     `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Brand         *Brand    `json:"brand,omitempty"`
	Category      *Category `json:"category,omitempty"`
}

const (
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

type CreateProductRequest struct {
	BrandID       uuid.UUID `json:"brand_id" validate:"required"`
	CategoryID    uuid.UUID `json:"category_id" validate:"required"`
	Name          string    `json:"name" validate:"required,min=3,max=200"`
	Description   string    `json:"description,omitempty"`
	SKU           string    `json:"sku" validate:"required,min=3,max=50"`
	Model         string    `json:"model,omitempty" validate:"omitempty,max=100"`
	Price         Money     `json:"price" validate:"required"`
	StockQuantity int       `json:"stock_quantity" validate:"gte=0"`
}

type UpdateProductRequest struct {
	BrandID       *uuid.UUID `json:"brand_id,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Name          *string    `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description   *string    `json:"description,omitempty"`
	Model         *string    `json:"model,omitempty" validate:"omitempty,max=100"`
	Price         *Money     `json:"price,omitempty"`
	StockQuantity *int       `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Status        *string    `json:"status,omitempty" validate:"omitempty,oneof=active inactive discontinued"`
}

type CreateBrandRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty"`
}

type UpdateBrandRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty"`
}

type ProductFilter struct {
	BrandID    *uuid.UUID
	CategoryID *uuid.UUID
	ActiveOnly bool
}
