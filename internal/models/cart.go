package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a stored cart line. Price, validity and totals are never stored
// with it; they are recomputed against the live product on every read so the
// cart can never drift from the catalog.
type CartItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart holds at most one line per product, keyed by product id.
type Cart struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	Items     map[string]CartItem `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewCart(userID uuid.UUID) *Cart {
	now := time.Now()

	return &Cart{
		ID:        uuid.New(),
		UserID:    userID,
		Items:     make(map[string]CartItem),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Quantity of a product already held by the cart, zero if absent.
func (c *Cart) QuantityOf(productID uuid.UUID) int {
	return c.Items[productID.String()].Quantity
}

// CartLineView is a cart line enriched from the live product at read time.
type CartLineView struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice Money     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	LineTotal Money     `json:"line_total"`
	Valid     bool      `json:"valid"`
	Reason    string    `json:"reason,omitempty"`
}

// CartView is the response shape for every cart operation. The aggregate
// counters and the total are derived from the lines, never persisted.
type CartView struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"user_id"`
	Items           []CartLineView `json:"items"`
	TotalItemCount  int            `json:"total_item_count"`
	UniqueItemCount int            `json:"unique_item_count"`
	Total           Money          `json:"total"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// Quantity is deliberately unbounded below: a value of zero or less removes
// the line instead of failing, mirroring the remove operation.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}
