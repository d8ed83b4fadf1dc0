package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

type stubOrderRepo struct {
	orders    []*domain.Order
	listErr   error
	createErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *o
	r.orders = append(r.orders, &clone)
	return nil
}

func (r *stubOrderRepo) FindByOrderNumber(_ context.Context, orderNumber, userID string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber && (userID == "" || o.UserID == userID) {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Order, error) {
	for _, o := range r.orders {
		if o.IdempotencyKey != "" && o.IdempotencyKey == key {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) List(_ context.Context, in ports.ListOrdersInput) ([]domain.Order, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	matched := make([]domain.Order, 0)
	for _, o := range r.orders {
		if in.UserID != "" && o.UserID != in.UserID {
			continue
		}
		if in.Status != "" && string(o.Status) != in.Status {
			continue
		}
		matched = append(matched, *o)
	}
	total := int64(len(matched))
	start := (in.Page - 1) * in.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + in.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func newOrderSvc(orders *stubOrderRepo, products *stubProductRepo, carts *stubCartStore) *OrderService {
	return NewOrderService(orders, products, carts, zerolog.Nop())
}

func TestOrderService_Checkout_HappyPath(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Candle", "home", 10.0, 5)
	seedProduct(products, "p2", "Vase", "home", 25.0, 5)

	carts := newStubCartStore()
	_ = carts.SetItem(context.Background(), "u1", "p1", 2)
	_ = carts.SetItem(context.Background(), "u1", "p2", 1)

	orders := newStubOrderRepo()
	svc := newOrderSvc(orders, products, carts)

	result, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("Checkout returned error: %v", err)
	}
	if result.Total != 45.0 {
		t.Fatalf("expected total 45.0, got %v", result.Total)
	}
	if !strings.HasPrefix(result.OrderNumber, "ORD-") || len(result.OrderNumber) != 12 {
		t.Fatalf("unexpected order number format: %q", result.OrderNumber)
	}
	if result.Status != string(domain.StatusPlaced) {
		t.Fatalf("expected status placed, got %s", result.Status)
	}
	if result.AlreadyExisted {
		t.Fatalf("fresh checkout must not report AlreadyExisted")
	}

	// stock decremented per line
	p1, _ := products.FindByID(context.Background(), "p1")
	if p1.Count != 3 {
		t.Fatalf("expected p1 stock 3, got %d", p1.Count)
	}

	// cart cleared
	if carts.clears != 1 {
		t.Fatalf("expected cart cleared once, got %d", carts.clears)
	}

	if len(orders.orders) != 1 {
		t.Fatalf("expected one persisted order, got %d", len(orders.orders))
	}
	if len(orders.orders[0].StatusHistory) != 1 || orders.orders[0].StatusHistory[0].Status != domain.StatusPlaced {
		t.Fatalf("expected initial status history entry, got %+v", orders.orders[0].StatusHistory)
	}
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	svc := newOrderSvc(newStubOrderRepo(), newStubProductRepo(), newStubCartStore())

	if _, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"}); err != domain.ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestOrderService_Checkout_InsufficientStock(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Candle", "home", 10.0, 1)

	carts := newStubCartStore()
	_ = carts.SetItem(context.Background(), "u1", "p1", 2)

	orders := newStubOrderRepo()
	svc := newOrderSvc(orders, products, carts)

	_, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"})
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if len(orders.orders) != 0 {
		t.Fatalf("no order must be created on stock failure")
	}
	p1, _ := products.FindByID(context.Background(), "p1")
	if p1.Count != 1 {
		t.Fatalf("stock must be untouched, got %d", p1.Count)
	}
}

func TestOrderService_Checkout_LostStockRaceRestoresEarlierLines(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Candle", "home", 10.0, 10)
	seedProduct(products, "p2", "Vase", "home", 25.0, 5)
	// p2's guarded decrement loses to a concurrent checkout
	products.adjustErr = map[string]error{"p2": domain.ErrInsufficientStock}

	carts := newStubCartStore()
	_ = carts.SetItem(context.Background(), "u1", "p1", 2)
	_ = carts.SetItem(context.Background(), "u1", "p2", 3)

	orders := newStubOrderRepo()
	svc := newOrderSvc(orders, products, carts)

	if _, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"}); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if len(orders.orders) != 0 {
		t.Fatalf("no order must be created when a line fails")
	}
	p1, _ := products.FindByID(context.Background(), "p1")
	if p1.Count != 10 {
		t.Fatalf("p1 stock must be restored after failed checkout: want 10, got %d", p1.Count)
	}
	if carts.clears != 0 {
		t.Fatalf("cart must survive a failed checkout")
	}
}

func TestOrderService_Checkout_CreateFailureRestoresStock(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Candle", "home", 10.0, 10)
	seedProduct(products, "p2", "Vase", "home", 25.0, 5)

	carts := newStubCartStore()
	_ = carts.SetItem(context.Background(), "u1", "p1", 2)
	_ = carts.SetItem(context.Background(), "u1", "p2", 3)

	orders := newStubOrderRepo()
	orders.createErr = errors.New("write timeout")
	svc := newOrderSvc(orders, products, carts)

	if _, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"}); err == nil {
		t.Fatalf("expected checkout to fail")
	}
	p1, _ := products.FindByID(context.Background(), "p1")
	p2, _ := products.FindByID(context.Background(), "p2")
	if p1.Count != 10 || p2.Count != 5 {
		t.Fatalf("stock must be restored when the order write fails: got p1=%d p2=%d", p1.Count, p2.Count)
	}
}

func TestOrderService_Checkout_InactiveProduct(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Candle", "home", 10.0, 10)
	products.byID["p1"].IsActive = false

	carts := newStubCartStore()
	_ = carts.SetItem(context.Background(), "u1", "p1", 1)

	svc := newOrderSvc(newStubOrderRepo(), products, carts)

	if _, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1"}); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock for inactive product, got %v", err)
	}
}

func TestOrderService_Checkout_IdempotentReplay(t *testing.T) {
	products := newStubProductRepo()
	seedProduct(products, "p1", "Candle", "home", 10.0, 10)

	carts := newStubCartStore()
	_ = carts.SetItem(context.Background(), "u1", "p1", 1)

	orders := newStubOrderRepo()
	svc := newOrderSvc(orders, products, carts)

	first, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1", IdempotencyKey: "key-1"})
	if err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	// Replay with the same key. The cart is already empty, but no ErrEmptyCart
	// may surface: the stored order is returned as-is.
	second, err := svc.Checkout(context.Background(), ports.CheckoutInput{UserID: "u1", IdempotencyKey: "key-1"})
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !second.AlreadyExisted {
		t.Fatalf("expected AlreadyExisted on replay")
	}
	if second.OrderNumber != first.OrderNumber {
		t.Fatalf("replay must return the original order: %q vs %q", second.OrderNumber, first.OrderNumber)
	}
	if len(orders.orders) != 1 {
		t.Fatalf("expected a single persisted order, got %d", len(orders.orders))
	}
}

func TestOrderService_Get_OwnershipFilter(t *testing.T) {
	orders := newStubOrderRepo()
	_ = orders.Create(context.Background(), &domain.Order{OrderNumber: "ORD-00000001", UserID: "u1", Status: domain.StatusPlaced})

	svc := newOrderSvc(orders, newStubProductRepo(), newStubCartStore())

	// owner sees it
	if _, err := svc.Get(context.Background(), ports.GetOrderInput{OrderNumber: "ORD-00000001", Role: domain.RoleUser, UserID: "u1"}); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	// another user does not
	if _, err := svc.Get(context.Background(), ports.GetOrderInput{OrderNumber: "ORD-00000001", Role: domain.RoleUser, UserID: "u2"}); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound for non-owner, got %v", err)
	}
	// admin sees everything
	if _, err := svc.Get(context.Background(), ports.GetOrderInput{OrderNumber: "ORD-00000001", Role: domain.RoleAdmin, UserID: "admin1"}); err != nil {
		t.Fatalf("admin lookup failed: %v", err)
	}
}

func TestOrderService_List_RequiresScope(t *testing.T) {
	svc := newOrderSvc(newStubOrderRepo(), newStubProductRepo(), newStubCartStore())

	if _, err := svc.List(context.Background(), domain.RoleUser, ports.ListOrdersInput{}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for unscoped non-admin list, got %v", err)
	}
	if _, err := svc.List(context.Background(), domain.RoleAdmin, ports.ListOrdersInput{}); err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
}

func TestOrderService_List_Pagination(t *testing.T) {
	orders := newStubOrderRepo()
	base := time.Now().UTC()
	for i := 0; i < 25; i++ {
		_ = orders.Create(context.Background(), &domain.Order{
			OrderNumber: "ORD-0000000" + string(rune('A'+i%26)),
			UserID:      "u1",
			Status:      domain.StatusPlaced,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	svc := newOrderSvc(orders, newStubProductRepo(), newStubCartStore())

	result, err := svc.List(context.Background(), domain.RoleUser, ports.ListOrdersInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Page != 1 || result.Limit != 20 {
		t.Fatalf("expected defaults page=1 limit=20, got page=%d limit=%d", result.Page, result.Limit)
	}
	if result.Total != 25 || result.TotalPages != 2 {
		t.Fatalf("expected total=25 pages=2, got total=%d pages=%d", result.Total, result.TotalPages)
	}
	if len(result.Items) != 20 {
		t.Fatalf("expected 20 items on page 1, got %d", len(result.Items))
	}

	result, err = svc.List(context.Background(), domain.RoleUser, ports.ListOrdersInput{UserID: "u1", Page: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Items) != 5 {
		t.Fatalf("expected 5 items on page 2, got %d", len(result.Items))
	}
}

func TestGenerateOrderNumber_Format(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		n := generateOrderNumber()
		if !strings.HasPrefix(n, "ORD-") || len(n) != 12 {
			t.Fatalf("unexpected format: %q", n)
		}
		seen[n] = struct{}{}
	}
	if len(seen) < 95 {
		t.Fatalf("order numbers collide too often: %d unique of 100", len(seen))
	}
}
