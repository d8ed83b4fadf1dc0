package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createProductRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"       validate:"required,gt=0"`
	Count       int      `json:"count"       validate:"gte=0"`
	Category    string   `json:"category"    validate:"required"`
	Images      []string `json:"images"`
	IsActive    bool     `json:"is_active"`
}

// updateProductRequest is a full-record replace; every field is sent on every
// edit, matching the product editor's submit shape.
type updateProductRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"       validate:"required,gt=0"`
	Count       int      `json:"count"       validate:"gte=0"`
	Category    string   `json:"category"    validate:"required"`
	Images      []string `json:"images"`
	IsActive    bool     `json:"is_active"`
}

type productResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Count       int       `json:"count"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type listProductsResponse struct {
	Data  []productResponse `json:"data"`
	Total int               `json:"total"`
}

// catalogStatsResponse carries the collection-management KPIs.
type catalogStatsResponse struct {
	TotalProducts       int              `json:"total_products"`
	TotalInventoryValue float64          `json:"total_inventory_value"`
	LowStockCount       int              `json:"low_stock_count"`
	TopSelling          *productResponse `json:"top_selling,omitempty"`
	Categories          []string         `json:"categories"`
}
