package domain

import "errors"

var ErrCartItemNotFound = errors.New("cart item not found")

// CartItem is a product reference with a quantity, keyed by product id.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart holds a single user's pending items. Carts live in Redis and expire;
// they are never shared between users, so no locking discipline is needed.
type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}
