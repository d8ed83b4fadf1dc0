package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	db *mongo.Database
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{db: db}
}

// UpdateOrderStatus atomically sets the order status and appends a history entry.
func (r *EventRepository) UpdateOrderStatus(
	ctx context.Context,
	orderNumber string,
	status domain.OrderStatus,
	ts time.Time,
	source string,
) error {
	historyEntry := bson.M{
		"status":    string(status),
		"timestamp": ts.UTC(),
		"notes":     source,
	}

	filter := bson.M{"order_number": orderNumber}
	update := bson.M{
		"$set":  bson.M{"status": string(status)},
		"$push": bson.M{"status_history": historyEntry},
	}

	_, err := r.db.Collection(collectionOrders).UpdateOne(ctx, filter, update)
	return err
}

// InsertEvent persists an order event to the order_events audit collection.
func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.OrderEvent) error {
	doc := bson.M{
		"order_number": event.OrderNumber,
		"status":       string(event.Status),
		"timestamp":    event.Timestamp.UTC(),
		"source":       event.Source,
		"processed_at": time.Now().UTC(),
	}

	_, err := r.db.Collection("order_events").InsertOne(ctx, doc)
	return err
}
