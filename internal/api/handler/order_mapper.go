package handler

import (
	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

func toCheckoutResponse(r *ports.OrderResult) checkoutResponse {
	return checkoutResponse{
		OrderNumber: r.OrderNumber,
		Status:      r.Status,
		Total:       r.Total,
		CreatedAt:   r.CreatedAt.UTC(),
		Links:       orderLinks{Self: "/v1/orders/" + r.OrderNumber},
	}
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal(),
		}
	}

	history := make([]statusHistoryItemResponse, len(o.StatusHistory))
	for i, entry := range o.StatusHistory {
		history[i] = statusHistoryItemResponse{
			Status:    string(entry.Status),
			Timestamp: entry.Timestamp.UTC(),
			Notes:     entry.Notes,
		}
	}

	return orderResponse{
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		Items:         items,
		Total:         o.Total,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt.UTC(),
		StatusHistory: history,
		Links:         orderLinks{Self: "/v1/orders/" + o.OrderNumber},
	}
}

func toListOrdersResponse(r *ports.ListOrdersResult) listOrdersResponse {
	items := make([]orderSummaryResponse, len(r.Items))
	for i, o := range r.Items {
		items[i] = orderSummaryResponse{
			OrderNumber: o.OrderNumber,
			Total:       o.Total,
			Status:      string(o.Status),
			CreatedAt:   o.CreatedAt.UTC(),
			ItemCount:   len(o.Items),
			Links:       orderLinks{Self: "/v1/orders/" + o.OrderNumber},
		}
	}
	return listOrdersResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
