package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/maisonlumiere/storefront-api/internal/api/metrics"
	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, orderNumber, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, orderNumber, status string, ts time.Time) error
}

type eventService struct {
	orderRepo ports.OrderRepository
	eventRepo ports.EventRepository
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewEventService returns an EventService implementation.
func NewEventService(
	orderRepo ports.OrderRepository,
	eventRepo ports.EventRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.EventService {
	return &eventService{
		orderRepo: orderRepo,
		eventRepo: eventRepo,
		dedup:     dedup,
		log:       log,
	}
}

// Process validates, deduplicates, and persists a single order status event.
func (s *eventService) Process(ctx context.Context, in ports.OrderEventInput) error {
	start := time.Now()
	newStatus := domain.OrderStatus(in.Status)

	// 1. Idempotency check — silently skip duplicates. A failing check is
	// counted separately so a degraded Redis stands out from real misses.
	isDup, err := s.dedup.IsDuplicate(ctx, in.OrderNumber, in.Status, in.Timestamp)
	switch {
	case err != nil:
		metrics.EventsDedupTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("order_number", in.OrderNumber).Msg("dedup check failed, processing anyway")
	case isDup:
		metrics.EventsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("order_number", in.OrderNumber).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	default:
		metrics.EventsDedupTotal.WithLabelValues("miss").Inc()
	}

	// 2. Find the order (no user filter — events come from back-office sources).
	order, err := s.orderRepo.FindByOrderNumber(ctx, in.OrderNumber, "")
	if err != nil {
		metrics.EventsErrorsTotal.WithLabelValues("order_not_found").Inc()
		metrics.EventProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("process event: %w", err)
	}

	// 3. Validate state machine transition.
	if !order.Status.CanTransitionTo(newStatus) {
		metrics.EventsErrorsTotal.WithLabelValues("invalid_transition").Inc()
		metrics.EventProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("process event: %w (from %s to %s)", domain.ErrInvalidTransition, order.Status, newStatus)
	}

	// 4. Atomically update order status + history.
	if err := s.eventRepo.UpdateOrderStatus(ctx, in.OrderNumber, newStatus, in.Timestamp, in.Source); err != nil {
		metrics.EventsErrorsTotal.WithLabelValues("update_failed").Inc()
		metrics.EventProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("process event: update status: %w", err)
	}

	// 5. Mark as processed only after the write landed — an event whose update
	// failed must stay retryable instead of being swallowed for the key's TTL.
	if markErr := s.dedup.Mark(ctx, in.OrderNumber, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("order_number", in.OrderNumber).Msg("failed to set dedup key")
	}

	// 6. Insert into audit trail (non-fatal on failure).
	auditEvent := &domain.OrderEvent{
		OrderNumber: in.OrderNumber,
		Status:      newStatus,
		Timestamp:   in.Timestamp,
		Source:      in.Source,
	}
	if err := s.eventRepo.InsertEvent(ctx, auditEvent); err != nil {
		s.log.Warn().Err(err).Str("order_number", in.OrderNumber).Msg("failed to insert audit event")
	}

	metrics.EventsProcessedTotal.WithLabelValues(in.Status, in.Source).Inc()
	metrics.EventProcessingDuration.WithLabelValues(in.Status).Observe(time.Since(start).Seconds())

	s.log.Info().
		Str("order_number", in.OrderNumber).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("event processed")

	return nil
}
