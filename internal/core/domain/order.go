package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPlaced:  {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrOrderNotFound = errors.New("order not found")
var ErrEmptyCart = errors.New("cart is empty")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a single purchased line. UnitPrice is captured at checkout time
// so later catalog edits do not rewrite order history.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// LineTotal is the price of this line (unit price × quantity).
func (i OrderItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// StatusHistoryEntry records a single status transition on an order.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status" bson:"status"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
	Notes     string      `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Order is the checkout aggregate root.
type Order struct {
	ID             string               `json:"id" bson:"_id,omitempty"`
	OrderNumber    string               `json:"order_number" bson:"order_number"`
	UserID         string               `json:"user_id" bson:"user_id"`
	Items          []OrderItem          `json:"items" bson:"items"`
	Total          float64              `json:"total" bson:"total"`
	Status         OrderStatus          `json:"status" bson:"status"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	IdempotencyKey string               `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	StatusHistory  []StatusHistoryEntry `json:"status_history" bson:"status_history"`
}

// PiecesSold is the number of units across all lines.
func (o Order) PiecesSold() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// CountsTowardRevenue reports whether the order contributes to revenue
// aggregates. Cancelled orders do not.
func (o Order) CountsTowardRevenue() bool {
	return o.Status != StatusCancelled
}
