package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

// CartService implements the customer cart and wishlist use cases. Item lists
// live in Redis keyed by user id; product details are joined from the catalog
// at read time so cart contents track current prices.
type CartService struct {
	carts    ports.CartStore
	wishes   ports.WishlistStore
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewCartService(carts ports.CartStore, wishes ports.WishlistStore, products ports.ProductRepository, logger zerolog.Logger) *CartService {
	return &CartService{carts: carts, wishes: wishes, products: products, logger: logger}
}

// View returns the cart joined with catalog details. Items whose product has
// been deleted since they were added are silently dropped from the view.
func (s *CartService) View(ctx context.Context, userID string) (*ports.CartView, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ports.CartView{Items: make([]ports.CartLine, 0, len(cart.Items))}
	for _, item := range cart.Items {
		p, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		line := ports.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
			LineTotal: p.Price * float64(item.Quantity),
		}
		if len(p.Images) > 0 {
			line.Image = p.Images[0]
		}
		view.Items = append(view.Items, line)
		view.Total += line.LineTotal
	}
	return view, nil
}

// AddItem puts quantity units of the product in the cart, replacing any
// existing quantity for the same product.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.carts.SetItem(ctx, userID, productID, quantity)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return err
	}
	for _, item := range cart.Items {
		if item.ProductID == productID {
			return s.carts.SetItem(ctx, userID, productID, quantity)
		}
	}
	return domain.ErrCartItemNotFound
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	return s.carts.RemoveItem(ctx, userID, productID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.carts.Clear(ctx, userID)
}

// Wishlist returns the wished products, dropping ids whose product no longer exists.
func (s *CartService) Wishlist(ctx context.Context, userID string) ([]domain.Product, error) {
	ids, err := s.wishes.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *CartService) AddToWishlist(ctx context.Context, userID, productID string) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.wishes.Add(ctx, userID, productID)
}

func (s *CartService) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	return s.wishes.Remove(ctx, userID, productID)
}
