package ports

import (
	"context"
	"time"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
)

// DayRevenue is one bucket of the revenue-by-day series.
type DayRevenue struct {
	Date    string
	Revenue float64
	Orders  int
}

// DashboardStats are the admin dashboard aggregates, derived by a linear scan
// over the full order collection. Cancelled orders are excluded from revenue.
type DashboardStats struct {
	TotalRevenue     float64
	TodayRevenue     float64
	WeekRevenue      float64
	MonthRevenue     float64
	OrderCount       int
	TodayOrdersCount int
	TodayPiecesSold  int
	RevenueByDay     []DayRevenue
	RecentOrders     []domain.Order
}

// DashboardService computes the admin dashboard view.
type DashboardService interface {
	Stats(ctx context.Context, now time.Time) (*DashboardStats, error)
}
