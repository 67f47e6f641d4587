package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingDetails is the address snapshot frozen into the order at checkout.
// Later edits to the user's profile never touch it.
type ShippingDetails struct {
	Name         string `json:"name" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Country      string `json:"country" validate:"required,iso3166_1_alpha2"`
	Phone        string `json:"phone,omitempty"`
}

// OrderItem carries denormalized product display fields so historical orders
// stay stable when the product is renamed, repriced or deleted.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"order_id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Brand     string    `json:"brand,omitempty"`
	Model     string    `json:"model,omitempty"`
	UnitPrice Money     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (i OrderItem) LineTotal() Money {
	return i.UnitPrice.MulInt(i.Quantity)
}

// Order is a financial record: it is created once at checkout and afterwards
// mutated only through Transition and the payment correlation fields. It is
// never deleted.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Status          OrderStatus     `json:"status"`
	SubtotalAmount  Money           `json:"subtotal_amount"`
	ShippingAmount  Money           `json:"shipping_amount"`
	TaxAmount       Money           `json:"tax_amount"`
	TotalAmount     Money           `json:"total_amount"`
	PaymentID       string          `json:"payment_id,omitempty"`
	PayerID         string          `json:"payer_id,omitempty"`
	ProviderOrderID string          `json:"provider_order_id,omitempty"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	Shipping        ShippingDetails `json:"shipping"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
}

// Transition moves the order to the next status if the lifecycle table allows
// it, applying the timestamp side effects here rather than in persistence
// hooks. ShippedAt and DeliveredAt are set the first time their status is
// entered and never overwritten. On a rejected transition the order is left
// untouched.
func (o *Order) Transition(next OrderStatus, now time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}

	o.Status = next
	o.UpdatedAt = now

	switch next {
	case OrderStatusShipped:
		if o.ShippedAt == nil {
			t := now
			o.ShippedAt = &t
		}
	case OrderStatusDelivered:
		if o.DeliveredAt == nil {
			t := now
			o.DeliveredAt = &t
		}
	}

	return nil
}

type CreateOrderRequest struct {
	Shipping ShippingDetails `json:"shipping" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status         OrderStatus `json:"status" validate:"required,oneof=PAID PROCESSING SHIPPED DELIVERED CANCELLED REFUNDED"`
	TrackingNumber string      `json:"tracking_number,omitempty"`
}

// PaymentDescriptor is what the payment bridge hands to the external checkout
// flow when a payment is initiated. Producing it does not mutate the order.
type PaymentDescriptor struct {
	OrderID         uuid.UUID `json:"order_id"`
	ProviderOrderID string    `json:"provider_order_id"`
	Amount          Money     `json:"amount"`
	Currency        string    `json:"currency"`
	ApproveURL      string    `json:"approve_url,omitempty"`
}

type CompletePaymentRequest struct {
	PaymentID       string `json:"payment_id" validate:"required"`
	PayerID         string `json:"payer_id" validate:"required"`
	ProviderOrderID string `json:"provider_order_id" validate:"required"`
}

type PaymentWebhookRequest struct {
	PaymentID string `json:"payment_id" validate:"required"`
	Status    string `json:"status" validate:"required"`
}
