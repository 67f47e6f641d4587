package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopcraft/storefront/internal/models"
	"github.com/shopcraft/storefront/internal/utils"
	"github.com/google/uuid"
)

type BrandRepository interface {
	CreateBrand(ctx context.Context, brand *models.Brand) error
	GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	UpdateBrand(ctx context.Context, brand *models.Brand) error
	ListBrands(ctx context.Context) ([]*models.Brand, error)
}

type brandRepository struct {
	DB *sql.DB
}

func NewBrandRepo(db *sql.DB) BrandRepository {
	return &brandRepository{DB: db}
}

func (r *brandRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO brands (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, brand.ID, brand.Name, brand.Description).
		Scan(&brand.CreatedAt, &brand.UpdatedAt)
}

func (r *brandRepository) GetBrandByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, description, created_at, updated_at FROM brands WHERE id = $1`

	brand := &models.Brand{}

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&brand.ID, &brand.Name, &brand.Description, &brand.CreatedAt, &brand.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return brand, nil
}

func (r *brandRepository) UpdateBrand(ctx context.Context, brand *models.Brand) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE brands SET name = $1, description = $2, updated_at = NOW() WHERE id = $3`

	result, err := r.DB.ExecContext(dbCtx, query, brand.Name, brand.Description, brand.ID)
	if err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *brandRepository) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT id, name, description, created_at, updated_at FROM brands ORDER BY name`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	defer rows.Close()

	var brands []*models.Brand

	for rows.Next() {
		brand := &models.Brand{}

		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Description, &brand.CreatedAt, &brand.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}

		brands = append(brands, brand)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating brands: %w", err)
	}

	return brands, nil
}
