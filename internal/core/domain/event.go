package domain

import "time"

// OrderEvent represents a status update received from an external source,
// such as a payment provider webhook or the fulfilment back-office.
type OrderEvent struct {
	OrderNumber string
	Status      OrderStatus
	Timestamp   time.Time
	Source      string
}
