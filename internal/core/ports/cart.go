package ports

import (
	"context"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
)

// CartStore is the per-user cart persistence (Redis-backed).
type CartStore interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	SetItem(ctx context.Context, userID, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

// WishlistStore is the per-user wishlist persistence (Redis set).
type WishlistStore interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]string, error)
}

// CartLine is a cart item joined with its catalog details.
type CartLine struct {
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
	LineTotal float64
	Image     string
}

// CartView is the cart as rendered to the customer.
type CartView struct {
	Items []CartLine
	Total float64
}

// CartService defines cart and wishlist use cases.
type CartService interface {
	View(ctx context.Context, userID string) (*CartView, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) error
	UpdateItem(ctx context.Context, userID, productID string, quantity int) error
	RemoveItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error

	Wishlist(ctx context.Context, userID string) ([]domain.Product, error)
	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
}
