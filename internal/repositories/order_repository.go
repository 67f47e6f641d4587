package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopcraft/storefront/internal/models"
	"github.com/shopcraft/storefront/internal/utils"
	"github.com/google/uuid"
)

// ErrInsufficientStock is returned by CreateOrder when a product's stock
// guard rejects the decrement. The whole transaction is rolled back.
var ErrInsufficientStock = errors.New("insufficient stock")

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderByPaymentID(ctx context.Context, paymentID string) (*models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order) error
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int, error)
	ListOrders(ctx context.Context, page, pageSize int) ([]models.Order, int, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, user_id, status, subtotal_amount, shipping_amount, tax_amount, total_amount,
	payment_id, payer_id, provider_order_id, tracking_number, shipping,
	created_at, updated_at, shipped_at, delivered_at`

// CreateOrder inserts the order, its item snapshots and the matching stock
// decrements in a single transaction, so a failed checkout leaves neither a
// dangling order nor a partially reduced inventory.
func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	shipping, err := json.Marshal(order.Shipping)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping details: %w", err)
	}

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (id, user_id, status, subtotal_amount, shipping_amount, tax_amount, total_amount,
		                    payment_id, payer_id, provider_order_id, tracking_number, shipping, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`

	_, err = tx.ExecContext(dbCtx, query,
		order.ID, order.UserID, order.Status,
		order.SubtotalAmount, order.ShippingAmount, order.TaxAmount, order.TotalAmount,
		order.PaymentID, order.PayerID, order.ProviderOrderID, order.TrackingNumber, shipping)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, name, sku, brand, model, unit_price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`

	stockQuery := `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity >= $1
	`

	for _, item := range order.Items {
		_, err := tx.ExecContext(dbCtx, itemQuery,
			item.ID, order.ID, item.ProductID, item.Name, item.SKU, item.Brand, item.Model,
			item.UnitPrice, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}

		// The WHERE clause doubles as the stock guard: a concurrent checkout
		// that drained the product leaves zero rows affected, and the rollback
		// discards the order and every decrement made so far.
		result, err := tx.ExecContext(dbCtx, stockQuery, item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get decremented rows: %w", err)
		}

		if affected == 0 {
			return fmt.Errorf("product %s: %w", item.ProductID, ErrInsufficientStock)
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	return r.getOrder(ctx, query, id)
}

// GetOrderByPaymentID resolves a webhook's payment correlation id to the
// order it was attached to.
func (r *orderRepository) GetOrderByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE payment_id = $1`, orderColumns)

	return r.getOrder(ctx, query, paymentID)
}

func (r *orderRepository) getOrder(ctx context.Context, query string, arg any) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}

	var shipping []byte

	err := r.DB.QueryRowContext(dbCtx, query, arg).Scan(
		&order.ID, &order.UserID, &order.Status,
		&order.SubtotalAmount, &order.ShippingAmount, &order.TaxAmount, &order.TotalAmount,
		&order.PaymentID, &order.PayerID, &order.ProviderOrderID, &order.TrackingNumber, &shipping,
		&order.CreatedAt, &order.UpdatedAt, &order.ShippedAt, &order.DeliveredAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	if err := json.Unmarshal(shipping, &order.Shipping); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipping details: %w", err)
	}

	items, err := r.getOrderItems(dbCtx, order.ID)
	if err != nil {
		return nil, err
	}

	order.Items = items

	return order, nil
}

func (r *orderRepository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	query := `
		SELECT id, product_id, name, sku, brand, model, unit_price, quantity, created_at
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.DB.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get the order items: %w", err)
	}

	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		var item models.OrderItem

		err := rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.SKU, &item.Brand,
			&item.Model, &item.UnitPrice, &item.Quantity, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item.OrderID = orderID
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order items: %w", err)
	}

	return items, nil
}

// UpdateOrder persists the mutable slice of an order: status, payment
// correlation ids, tracking and the lifecycle timestamps. The financial
// amounts and item snapshots are immutable after creation and are not
// touched here.
func (r *orderRepository) UpdateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET status = $1, payment_id = $2, payer_id = $3, provider_order_id = $4,
		    tracking_number = $5, shipped_at = $6, delivered_at = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		order.Status, order.PaymentID, order.PayerID, order.ProviderOrderID,
		order.TrackingNumber, order.ShippedAt, order.DeliveredAt, order.UpdatedAt, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
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

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Order, int, error) {
	return r.listOrders(ctx, `WHERE user_id = $1`, []any{userID}, page, pageSize)
}

func (r *orderRepository) ListOrders(ctx context.Context, page, pageSize int) ([]models.Order, int, error) {
	return r.listOrders(ctx, ``, nil, page, pageSize)
}

func (r *orderRepository) listOrders(ctx context.Context, where string, args []any, page, pageSize int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM orders %s`, where)
	if err := r.DB.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * pageSize
	args = append(args, pageSize, offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, orderColumns, where, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(dbCtx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var order models.Order

		var shipping []byte

		err := rows.Scan(
			&order.ID, &order.UserID, &order.Status,
			&order.SubtotalAmount, &order.ShippingAmount, &order.TaxAmount, &order.TotalAmount,
			&order.PaymentID, &order.PayerID, &order.ProviderOrderID, &order.TrackingNumber, &shipping,
			&order.CreatedAt, &order.UpdatedAt, &order.ShippedAt, &order.DeliveredAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}

		if err := json.Unmarshal(shipping, &order.Shipping); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal shipping details: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating orders: %w", err)
	}

	return orders, total, nil
}
