package ports

import (
	"context"
	"time"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
)

// OrderRepository defines persistence for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	// FindByOrderNumber retrieves an order. When userID is non-empty, an
	// additional filter by user_id is applied.
	FindByOrderNumber(ctx context.Context, orderNumber, userID string) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	List(ctx context.Context, in ListOrdersInput) ([]domain.Order, int64, error)
	// ListAll returns the full collection, used by the dashboard aggregates.
	ListAll(ctx context.Context) ([]domain.Order, error)
}

// CheckoutInput carries the parameters for placing an order.
type CheckoutInput struct {
	UserID         string
	IdempotencyKey string
}

// OrderResult is returned after a successful checkout.
type OrderResult struct {
	OrderNumber string
	Status      string
	Total       float64
	CreatedAt   time.Time
	// AlreadyExisted is true when the Idempotency-Key matched an existing order.
	AlreadyExisted bool
}

// GetOrderInput carries the parameters to retrieve a single order.
// Role and UserID enforce ownership: the "user" role only sees its own orders.
type GetOrderInput struct {
	OrderNumber string
	Role        string
	UserID      string
}

// ListOrdersInput carries list filters. UserID empty means all users (admin).
type ListOrdersInput struct {
	UserID string
	Status string
	Page   int
	Limit  int
}

// ListOrdersResult is returned by List.
type ListOrdersResult struct {
	Items      []domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService defines checkout and order-history use cases.
type OrderService interface {
	Checkout(ctx context.Context, in CheckoutInput) (*OrderResult, error)
	Get(ctx context.Context, in GetOrderInput) (*domain.Order, error)
	List(ctx context.Context, role string, in ListOrdersInput) (*ListOrdersResult, error)
}
