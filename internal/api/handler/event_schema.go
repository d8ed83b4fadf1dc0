package handler

import "time"

type orderEventRequest struct {
	OrderNumber string    `json:"order_number" validate:"required"`
	Status      string    `json:"status"       validate:"required,oneof=paid shipped delivered cancelled"`
	Timestamp   time.Time `json:"timestamp"    validate:"required"`
	Source      string    `json:"source"       validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
