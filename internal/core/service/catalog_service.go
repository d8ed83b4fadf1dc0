package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

// CatalogService implements product browsing and the admin collection CRUD.
type CatalogService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// List fetches the catalog and applies the browse filters. Search matches
// name and category substrings case-insensitively, the same filter the
// collection-management toolbar applies.
func (s *CatalogService) List(ctx context.Context, in ports.ListProductsInput) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(in.Search)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if in.ActiveOnly && !p.IsActive {
			continue
		}
		if in.Category != "" && p.Category != in.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create inserts a new product. The identifier is a server-generated UUID,
// guaranteed distinct from every existing id; the original timestamp-derived
// ids were not.
func (s *CatalogService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Price < 0 || in.Count < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Count:       in.Count,
		Category:    in.Category,
		Images:      in.Images,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("category", product.Category).Msg("product created")
	return product, nil
}

// Update is a full-record replace keyed by the existing id. The id and
// created_at never change.
func (s *CatalogService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Price < 0 || in.Count < 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:          existing.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Count:       in.Count,
		Category:    in.Category,
		Images:      in.Images,
		IsActive:    in.IsActive,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.repo.Replace(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// Stats derives the collection-management KPIs by a single linear scan.
// Recomputed on every call; no memoization at this scale.
func (s *CatalogService) Stats(ctx context.Context) (*ports.CatalogStats, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ports.CatalogStats{TotalProducts: len(products)}
	seen := make(map[string]struct{})
	for i := range products {
		p := products[i]
		stats.TotalInventoryValue += p.InventoryValue()
		if p.LowStock() {
			stats.LowStockCount++
		}
		// max by count, first-encountered wins ties
		if stats.TopSelling == nil || p.Count > stats.TopSelling.Count {
			stats.TopSelling = &products[i]
		}
		if _, ok := seen[p.Category]; !ok && p.Category != "" {
			seen[p.Category] = struct{}{}
			stats.Categories = append(stats.Categories, p.Category)
		}
	}
	sort.Strings(stats.Categories)
	return stats, nil
}
