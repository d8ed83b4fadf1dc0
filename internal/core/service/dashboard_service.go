package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

const (
	revenueSeriesDays = 7
	recentOrdersLimit = 5
)

// DashboardService computes the admin dashboard aggregates. The full order
// collection is fetched and reduced in memory on every call, matching the
// scale the back office operates at.
type DashboardService struct {
	orders ports.OrderRepository
	logger zerolog.Logger
}

func NewDashboardService(orders ports.OrderRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{orders: orders, logger: logger}
}

// Stats derives revenue and order-volume aggregates relative to now.
// Cancelled orders are excluded from revenue and pieces-sold figures but
// still appear in the overall order count.
func (s *DashboardService) Stats(ctx context.Context, now time.Time) (*ports.DashboardStats, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	today := truncateToDay(now)
	weekStart := today.AddDate(0, 0, -(revenueSeriesDays - 1))
	monthStart := today.AddDate(0, 0, -29)

	stats := &ports.DashboardStats{OrderCount: len(orders)}
	byDay := make(map[string]*ports.DayRevenue)

	for _, o := range orders {
		created := o.CreatedAt.UTC()
		if sameDay(created, today) {
			stats.TodayOrdersCount++
		}
		if !o.CountsTowardRevenue() {
			continue
		}

		stats.TotalRevenue += o.Total
		if sameDay(created, today) {
			stats.TodayRevenue += o.Total
			stats.TodayPiecesSold += o.PiecesSold()
		}
		if !created.Before(weekStart) {
			stats.WeekRevenue += o.Total

			key := created.Format("2006-01-02")
			bucket, ok := byDay[key]
			if !ok {
				bucket = &ports.DayRevenue{Date: key}
				byDay[key] = bucket
			}
			bucket.Revenue += o.Total
			bucket.Orders++
		}
		if !created.Before(monthStart) {
			stats.MonthRevenue += o.Total
		}
	}

	// Emit one bucket per calendar day, oldest first, zero-filled.
	for d := 0; d < revenueSeriesDays; d++ {
		key := weekStart.AddDate(0, 0, d).Format("2006-01-02")
		if bucket, ok := byDay[key]; ok {
			stats.RevenueByDay = append(stats.RevenueByDay, *bucket)
		} else {
			stats.RevenueByDay = append(stats.RevenueByDay, ports.DayRevenue{Date: key})
		}
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if len(orders) > recentOrdersLimit {
		orders = orders[:recentOrdersLimit]
	}
	stats.RecentOrders = orders

	return stats, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return truncateToDay(a.UTC()).Equal(truncateToDay(b.UTC()))
}
