package domain

import (
	"errors"
	"time"
)

// LowStockThreshold marks the stock level below which a product counts as
// low stock. A count of exactly LowStockThreshold is not low.
const LowStockThreshold = 5

var ErrProductNotFound = errors.New("product not found")
var ErrProductExists = errors.New("product already exists")
var ErrInsufficientStock = errors.New("insufficient stock")

// Product is a catalog entry managed through the admin collection views.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Count       int       `json:"count" bson:"count"`
	Category    string    `json:"category" bson:"category"`
	Images      []string  `json:"images" bson:"images"`
	IsActive    bool      `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// LowStock reports whether the product's stock is strictly below the threshold.
func (p Product) LowStock() bool {
	return p.Count < LowStockThreshold
}

// InventoryValue is the stock valuation of this single product (price × count).
func (p Product) InventoryValue() float64 {
	return p.Price * float64(p.Count)
}
