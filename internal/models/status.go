package models

import "errors"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusRefunded   OrderStatus = "REFUNDED"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

// orderTransitions is the full lifecycle table. CANCELLED and REFUNDED are
// absorbing: nothing leaves them.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled, OrderStatusRefunded},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusRefunded},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusRefunded},
	OrderStatusDelivered:  {OrderStatusRefunded},
	OrderStatusCancelled:  {},
	OrderStatusRefunded:   {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]

	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Derived predicates. These are computed from the status on demand and are
// intentionally never stored alongside it.

func (s OrderStatus) IsPaid() bool {
	switch s {
	case OrderStatusPaid, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}

	return false
}

func (s OrderStatus) IsShippable() bool {
	return s == OrderStatusPaid || s == OrderStatusProcessing
}

func (s OrderStatus) IsCompleted() bool {
	return s == OrderStatusDelivered
}

func (s OrderStatus) IsCancellable() bool {
	return s == OrderStatusPending || s == OrderStatusPaid
}
