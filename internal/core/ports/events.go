package ports

import (
	"context"
	"time"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
)

// OrderEventInput is the DTO passed from the transport layer to EventService.
type OrderEventInput struct {
	OrderNumber string
	Status      string
	Timestamp   time.Time
	Source      string
}

// EventService processes incoming order status events.
type EventService interface {
	Process(ctx context.Context, event OrderEventInput) error
}

// EventRepository handles event persistence and atomic order status updates.
type EventRepository interface {
	// UpdateOrderStatus atomically sets the order's new status and appends a
	// history entry. The source string is stored as the entry notes.
	UpdateOrderStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, ts time.Time, source string) error

	// InsertEvent persists an event to the order_events audit collection.
	InsertEvent(ctx context.Context, event *domain.OrderEvent) error
}
