package handler

import "time"

type orderItemResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type orderLinks struct {
	Self string `json:"self"`
}

type checkoutResponse struct {
	OrderNumber string     `json:"order_number"`
	Status      string     `json:"status"`
	Total       float64    `json:"total"`
	CreatedAt   time.Time  `json:"created_at"`
	Links       orderLinks `json:"_links"`
}

type orderResponse struct {
	OrderNumber   string                      `json:"order_number"`
	UserID        string                      `json:"user_id"`
	Items         []orderItemResponse         `json:"items"`
	Total         float64                     `json:"total"`
	Status        string                      `json:"status"`
	CreatedAt     time.Time                   `json:"created_at"`
	StatusHistory []statusHistoryItemResponse `json:"status_history"`
	Links         orderLinks                  `json:"_links"`
}

// orderSummaryResponse is the lightweight item used in list responses.
// It intentionally omits status_history to keep payloads small.
type orderSummaryResponse struct {
	OrderNumber string     `json:"order_number"`
	Total       float64    `json:"total"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ItemCount   int        `json:"item_count"`
	Links       orderLinks `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listOrdersResponse struct {
	Data       []orderSummaryResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}
