package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
)

// CartStore persists per-user carts as Redis hashes mapping product id to
// quantity. Each write refreshes the cart's TTL so abandoned carts expire.
// Key format: cart:<user_id>
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartStore creates a CartStore. A non-positive ttl disables expiry.
func NewCartStore(client *redis.Client, ttl time.Duration) *CartStore {
	return &CartStore{client: client, ttl: ttl}
}

func (s *CartStore) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	entries, err := s.client.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cart get: %w", err)
	}

	cart := &domain.Cart{UserID: userID, Items: make([]domain.CartItem, 0, len(entries))}
	for productID, raw := range entries {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty <= 0 {
			continue
		}
		cart.Items = append(cart.Items, domain.CartItem{ProductID: productID, Quantity: qty})
	}
	return cart, nil
}

func (s *CartStore) SetItem(ctx context.Context, userID, productID string, quantity int) error {
	key := s.key(userID)
	if err := s.client.HSet(ctx, key, productID, quantity).Err(); err != nil {
		return fmt.Errorf("cart set item: %w", err)
	}
	return s.touch(ctx, key)
}

func (s *CartStore) RemoveItem(ctx context.Context, userID, productID string) error {
	if err := s.client.HDel(ctx, s.key(userID), productID).Err(); err != nil {
		return fmt.Errorf("cart remove item: %w", err)
	}
	return nil
}

func (s *CartStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}

func (s *CartStore) touch(ctx context.Context, key string) error {
	if s.ttl <= 0 {
		return nil
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}

func (s *CartStore) key(userID string) string {
	return "cart:" + userID
}

// WishlistStore persists per-user wishlists as Redis sets of product ids.
// Key format: wishlist:<user_id>
type WishlistStore struct {
	client *redis.Client
}

func NewWishlistStore(client *redis.Client) *WishlistStore {
	return &WishlistStore{client: client}
}

func (s *WishlistStore) Add(ctx context.Context, userID, productID string) error {
	if err := s.client.SAdd(ctx, s.key(userID), productID).Err(); err != nil {
		return fmt.Errorf("wishlist add: %w", err)
	}
	return nil
}

func (s *WishlistStore) Remove(ctx context.Context, userID, productID string) error {
	if err := s.client.SRem(ctx, s.key(userID), productID).Err(); err != nil {
		return fmt.Errorf("wishlist remove: %w", err)
	}
	return nil
}

func (s *WishlistStore) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("wishlist list: %w", err)
	}
	return ids, nil
}

func (s *WishlistStore) key(userID string) string {
	return "wishlist:" + userID
}
