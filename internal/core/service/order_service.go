package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/maisonlumiere/storefront-api/internal/api/metrics"
	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

// OrderService implements checkout and order history.
type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	carts    ports.CartStore
	logger   zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, products ports.ProductRepository, carts ports.CartStore, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, carts: carts, logger: logger}
}

// Checkout places an order from the caller's cart. If an idempotency key is
// provided and already seen, the previously created order is returned without
// side effects. Stock is decremented per line; the cart is cleared on success.
func (s *OrderService) Checkout(ctx context.Context, in ports.CheckoutInput) (*ports.OrderResult, error) {
	if in.IdempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("order_number", existing.OrderNumber).Msg("idempotent replay")
			return &ports.OrderResult{
				OrderNumber:    existing.OrderNumber,
				Status:         string(existing.Status),
				Total:          existing.Total,
				CreatedAt:      existing.CreatedAt,
				AlreadyExisted: true,
			}, nil
		}
	}

	cart, err := s.carts.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	now := time.Now().UTC()
	order := &domain.Order{
		OrderNumber:    generateOrderNumber(),
		UserID:         in.UserID,
		Status:         domain.StatusPlaced,
		CreatedAt:      now,
		IdempotencyKey: in.IdempotencyKey,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPlaced, Timestamp: now, Notes: "checkout"},
		},
	}

	for _, item := range cart.Items {
		p, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !p.IsActive || p.Count < item.Quantity {
			return nil, fmt.Errorf("%w: %s", domain.ErrInsufficientStock, p.Name)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
		})
		order.Total += p.Price * float64(item.Quantity)
	}

	// Decrement per line; if a later line loses a concurrent race, put back
	// what this checkout already took.
	var adjusted []domain.OrderItem
	for _, item := range order.Items {
		if err := s.products.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			s.logger.Error().Err(err).Str("product_id", item.ProductID).Msg("stock adjustment failed")
			s.restock(ctx, adjusted)
			return nil, err
		}
		adjusted = append(adjusted, item)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		s.restock(ctx, adjusted)
		return nil, err
	}

	if err := s.carts.Clear(ctx, in.UserID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", in.UserID).Msg("failed to clear cart after checkout")
	}

	metrics.OrdersCreatedTotal.WithLabelValues(string(order.Status)).Inc()
	s.logger.Info().Str("order_number", order.OrderNumber).Str("user_id", in.UserID).Float64("total", order.Total).Msg("order placed")

	return &ports.OrderResult{
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		Total:       order.Total,
		CreatedAt:   order.CreatedAt,
	}, nil
}

// restock re-increments stock for lines a failed checkout already decremented.
func (s *OrderService) restock(ctx context.Context, items []domain.OrderItem) {
	for _, item := range items {
		if err := s.products.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.logger.Error().Err(err).Str("product_id", item.ProductID).Int("quantity", item.Quantity).Msg("failed to restock after aborted checkout")
		}
	}
}

// Get retrieves a single order. The user role only sees its own orders; the
// ownership filter is pushed into the repository query.
func (s *OrderService) Get(ctx context.Context, in ports.GetOrderInput) (*domain.Order, error) {
	filterUser := in.UserID
	if in.Role == domain.RoleAdmin {
		filterUser = ""
	}
	return s.orders.FindByOrderNumber(ctx, in.OrderNumber, filterUser)
}

// List returns the caller's order history; admins see all users' orders.
func (s *OrderService) List(ctx context.Context, role string, in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	// non-admin callers must be scoped to their own user id
	if role != domain.RoleAdmin && in.UserID == "" {
		return nil, domain.ErrForbidden
	}

	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}

	items, total, err := s.orders.List(ctx, in)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(in.Limit) - 1) / int64(in.Limit))
	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalPages: totalPages,
	}, nil
}

// generateOrderNumber returns a unique order number in the format ORD-XXXXXXXX.
func generateOrderNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("ORD-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("ORD-%08X", b)
}
