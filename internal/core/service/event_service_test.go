package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

type stubEventRepo struct {
	updateErr error
	insertErr error
	updated   []string // order numbers updated
	inserted  []*domain.OrderEvent
}

func (r *stubEventRepo) UpdateOrderStatus(_ context.Context, orderNumber string, _ domain.OrderStatus, _ time.Time, _ string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, orderNumber)
	return nil
}

func (r *stubEventRepo) InsertEvent(_ context.Context, e *domain.OrderEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, orderNumber, status string, _ time.Time) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, orderNumber, status string, _ time.Time) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, orderNumber+":"+status)
	return nil
}

func seededOrderRepo(orderNumber, userID string, status domain.OrderStatus) *stubOrderRepo {
	repo := newStubOrderRepo()
	now := time.Now().UTC()
	repo.orders = append(repo.orders, &domain.Order{
		OrderNumber:   orderNumber,
		UserID:        userID,
		Status:        status,
		CreatedAt:     now,
		StatusHistory: []domain.StatusHistoryEntry{{Status: status, Timestamp: now}},
	})
	return repo
}

func newEventSvc(orderRepo *stubOrderRepo, eventRepo *stubEventRepo, dedup *stubDedup) ports.EventService {
	return NewEventService(orderRepo, eventRepo, dedup, zerolog.Nop())
}

func TestEventService_Process_HappyPath(t *testing.T) {
	repo := seededOrderRepo("ORD-AABBCCDD", "u1", domain.StatusPlaced)
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{}

	svc := newEventSvc(repo, evRepo, dedup)
	err := svc.Process(context.Background(), ports.OrderEventInput{
		OrderNumber: "ORD-AABBCCDD",
		Status:      "paid",
		Timestamp:   time.Now(),
		Source:      "payment_webhook",
	})

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(evRepo.updated) != 1 || evRepo.updated[0] != "ORD-AABBCCDD" {
		t.Errorf("expected order status updated, got: %v", evRepo.updated)
	}
	if len(evRepo.inserted) != 1 {
		t.Errorf("expected audit event inserted")
	}
	if len(dedup.marked) != 1 {
		t.Errorf("expected dedup key marked")
	}
}

func TestEventService_Process_DuplicateSkipped(t *testing.T) {
	repo := seededOrderRepo("ORD-AABBCCDD", "u1", domain.StatusPlaced)
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{dupResult: true} // simulate already processed

	svc := newEventSvc(repo, evRepo, dedup)
	err := svc.Process(context.Background(), ports.OrderEventInput{
		OrderNumber: "ORD-AABBCCDD",
		Status:      "paid",
		Timestamp:   time.Now(),
		Source:      "payment_webhook",
	})

	if err != nil {
		t.Fatalf("duplicate must be skipped silently, got: %v", err)
	}
	if len(evRepo.updated) != 0 {
		t.Errorf("duplicate must not update the order")
	}
	if len(evRepo.inserted) != 0 {
		t.Errorf("duplicate must not insert an audit event")
	}
}

func TestEventService_Process_InvalidTransition(t *testing.T) {
	repo := seededOrderRepo("ORD-AABBCCDD", "u1", domain.StatusDelivered)
	evRepo := &stubEventRepo{}

	svc := newEventSvc(repo, evRepo, &stubDedup{})
	err := svc.Process(context.Background(), ports.OrderEventInput{
		OrderNumber: "ORD-AABBCCDD",
		Status:      "paid",
		Timestamp:   time.Now(),
		Source:      "backoffice",
	})

	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got: %v", err)
	}
	if len(evRepo.updated) != 0 {
		t.Errorf("invalid transition must not update the order")
	}
}

func TestEventService_Process_CancellationWindow(t *testing.T) {
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{}

	// placed and paid orders may be cancelled
	for _, status := range []domain.OrderStatus{domain.StatusPlaced, domain.StatusPaid} {
		repo := seededOrderRepo("ORD-00000001", "u1", status)
		svc := newEventSvc(repo, evRepo, dedup)
		if err := svc.Process(context.Background(), ports.OrderEventInput{
			OrderNumber: "ORD-00000001",
			Status:      "cancelled",
			Timestamp:   time.Now(),
			Source:      "backoffice",
		}); err != nil {
			t.Fatalf("cancel from %s failed: %v", status, err)
		}
	}

	// shipped orders may not
	repo := seededOrderRepo("ORD-00000002", "u1", domain.StatusShipped)
	svc := newEventSvc(repo, evRepo, dedup)
	if err := svc.Process(context.Background(), ports.OrderEventInput{
		OrderNumber: "ORD-00000002",
		Status:      "cancelled",
		Timestamp:   time.Now(),
		Source:      "backoffice",
	}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition cancelling a shipped order, got: %v", err)
	}
}

func TestEventService_Process_OrderNotFound(t *testing.T) {
	svc := newEventSvc(newStubOrderRepo(), &stubEventRepo{}, &stubDedup{})

	err := svc.Process(context.Background(), ports.OrderEventInput{
		OrderNumber: "ORD-MISSING1",
		Status:      "paid",
		Timestamp:   time.Now(),
		Source:      "backoffice",
	})
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got: %v", err)
	}
}

func TestEventService_Process_DedupFailureProcessesAnyway(t *testing.T) {
	repo := seededOrderRepo("ORD-AABBCCDD", "u1", domain.StatusPlaced)
	evRepo := &stubEventRepo{}
	dedup := &stubDedup{dupErr: errors.New("redis down")}

	svc := newEventSvc(repo, evRepo, dedup)
	err := svc.Process(context.Background(), ports.OrderEventInput{
		OrderNumber: "ORD-AABBCCDD",
		Status:      "paid",
		Timestamp:   time.Now(),
		Source:      "payment_webhook",
	})

	if err != nil {
		t.Fatalf("dedup outage must not block processing, got: %v", err)
	}
	if len(evRepo.updated) != 1 {
		t.Errorf("expected order updated despite dedup failure")
	}
}

func TestEventService_Process_FailedUpdateStaysRetryable(t *testing.T) {
	repo := seededOrderRepo("ORD-AABBCCDD", "u1", domain.StatusPlaced)
	evRepo := &stubEventRepo{updateErr: errors.New("write timeout")}
	dedup := &stubDedup{}

	svc := newEventSvc(repo, evRepo, dedup)
	err := svc.Process(context.Background(), ports.OrderEventInput{
		OrderNumber: "ORD-AABBCCDD",
		Status:      "paid",
		Timestamp:   time.Now(),
		Source:      "payment_webhook",
	})

	if err == nil {
		t.Fatalf("expected update failure to surface")
	}
	// the dedup key must not be set, so a retry of the same event goes through
	if len(dedup.marked) != 0 {
		t.Errorf("failed update must leave the event unmarked, got: %v", dedup.marked)
	}

	evRepo.updateErr = nil
	if err := svc.Process(context.Background(), ports.OrderEventInput{
		OrderNumber: "ORD-AABBCCDD",
		Status:      "paid",
		Timestamp:   time.Now(),
		Source:      "payment_webhook",
	}); err != nil {
		t.Fatalf("retry after transient failure must succeed, got: %v", err)
	}
	if len(evRepo.updated) != 1 {
		t.Errorf("expected the retry to apply the update")
	}
}

func TestEventService_Process_AuditFailureNonFatal(t *testing.T) {
	repo := seededOrderRepo("ORD-AABBCCDD", "u1", domain.StatusPlaced)
	evRepo := &stubEventRepo{insertErr: errors.New("write failed")}

	svc := newEventSvc(repo, evRepo, &stubDedup{})
	err := svc.Process(context.Background(), ports.OrderEventInput{
		OrderNumber: "ORD-AABBCCDD",
		Status:      "paid",
		Timestamp:   time.Now(),
		Source:      "payment_webhook",
	})

	if err != nil {
		t.Fatalf("audit insert failure must be non-fatal, got: %v", err)
	}
	if len(evRepo.updated) != 1 {
		t.Errorf("expected order status updated")
	}
}
