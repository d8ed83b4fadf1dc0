package handler

import (
	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

func toProductResponse(p *domain.Product) productResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Count:       p.Count,
		Category:    p.Category,
		Images:      images,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func toListProductsResponse(products []domain.Product) listProductsResponse {
	items := make([]productResponse, len(products))
	for i := range products {
		items[i] = toProductResponse(&products[i])
	}
	return listProductsResponse{Data: items, Total: len(items)}
}

func toCatalogStatsResponse(s *ports.CatalogStats) catalogStatsResponse {
	resp := catalogStatsResponse{
		TotalProducts:       s.TotalProducts,
		TotalInventoryValue: s.TotalInventoryValue,
		LowStockCount:       s.LowStockCount,
		Categories:          s.Categories,
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	if s.TopSelling != nil {
		top := toProductResponse(s.TopSelling)
		resp.TopSelling = &top
	}
	return resp
}
