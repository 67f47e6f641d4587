package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopcraft/storefront/internal/models"
	"github.com/shopcraft/storefront/internal/utils"
	"github.com/google/uuid"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, filter models.ProductFilter, page, pageSize int) ([]*models.Product, int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, brand_id, category_id, name, description, sku, model, price, stock_quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		product.ID, product.BrandID, product.CategoryID, product.Name, product.Description,
		product.SKU, product.Model, product.Price, product.StockQuantity, product.Status).
		Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT p.id, p.brand_id, p.category_id, p.name, p.description, p.sku, p.model,
		       p.price, p.stock_quantity, p.status, p.created_at, p.updated_at,
		       b.name, c.name
		FROM products p
		JOIN brands b ON b.id = p.brand_id
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	product := &models.Product{Brand: &models.Brand{}, Category: &models.Category{}}

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&product.ID, &product.BrandID, &product.CategoryID, &product.Name, &product.Description,
		&product.SKU, &product.Model, &product.Price, &product.StockQuantity, &product.Status,
		&product.CreatedAt, &product.UpdatedAt, &product.Brand.Name, &product.Category.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	product.Brand.ID = product.BrandID
	product.Category.ID = product.CategoryID

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET brand_id = $1, category_id = $2, name = $3, description = $4, model = $5,
		    price = $6, stock_quantity = $7, status = $8, updated_at = NOW()
		WHERE id = $9
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		product.BrandID, product.CategoryID, product.Name, product.Description, product.Model,
		product.Price, product.StockQuantity, product.Status, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
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

func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter, page, pageSize int) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	where := " WHERE 1=1"
	args := []any{}

	if filter.BrandID != nil {
		args = append(args, *filter.BrandID)
		where += fmt.Sprintf(" AND brand_id = $%d", len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filter.ActiveOnly {
		where += " AND status = 'active'"
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM products" + where
	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * pageSize
	args = append(args, pageSize, offset)

	query := fmt.Sprintf(`
		SELECT id, brand_id, category_id, name, description, sku, model, price, stock_quantity, status, created_at, updated_at
		FROM products%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.BrandID, &product.CategoryID, &product.Name,
			&product.Description, &product.SKU, &product.Model, &product.Price,
			&product.StockQuantity, &product.Status, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating products: %w", err)
	}

	return products, total, nil
}
