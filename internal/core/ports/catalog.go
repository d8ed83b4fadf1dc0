package ports

import (
	"context"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
)

// ProductRepository defines persistence for catalog products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Replace(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	// AdjustStock changes the product's count by delta. A negative delta
	// fails when the remaining stock would go negative.
	AdjustStock(ctx context.Context, id string, delta int) error
}

// CreateProductInput carries the admin product-editor fields for a create.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Count       int
	Category    string
	Images      []string
	IsActive    bool
}

// UpdateProductInput is a full-record replace; partial patches are not supported.
type UpdateProductInput struct {
	Name        string
	Description string
	Price       float64
	Count       int
	Category    string
	Images      []string
	IsActive    bool
}

// ListProductsInput carries the browse filters. Search matches name and
// category substrings case-insensitively; empty fields mean "no filter".
type ListProductsInput struct {
	Category   string
	Search     string
	ActiveOnly bool
}

// CatalogStats are the collection-management KPIs derived from the full
// product set.
type CatalogStats struct {
	TotalProducts       int
	TotalInventoryValue float64
	LowStockCount       int
	// TopSelling is nil when the catalog is empty.
	TopSelling *domain.Product
	Categories []string
}

// CatalogService defines product browse and admin CRUD use cases.
type CatalogService interface {
	List(ctx context.Context, in ListProductsInput) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*CatalogStats, error)
}
