package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

// AdminHandler serves the back-office dashboard and client management.
// All routes are mounted behind RBAC("admin").
type AdminHandler struct {
	dashboard ports.DashboardService
	users     ports.UserRepository
}

func NewAdminHandler(dashboard ports.DashboardService, users ports.UserRepository) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, users: users}
}

type dayRevenueResponse struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type dashboardResponse struct {
	TotalRevenue     float64                `json:"total_revenue"`
	TodayRevenue     float64                `json:"today_revenue"`
	WeekRevenue      float64                `json:"week_revenue"`
	MonthRevenue     float64                `json:"month_revenue"`
	OrderCount       int                    `json:"order_count"`
	TodayOrdersCount int                    `json:"today_orders_count"`
	TodayPiecesSold  int                    `json:"today_pieces_sold"`
	RevenueByDay     []dayRevenueResponse   `json:"revenue_by_day"`
	RecentOrders     []orderSummaryResponse `json:"recent_orders"`
}

// Dashboard handles GET /v1/admin/dashboard.
//
// @Summary      Revenue dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Router       /v1/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context(), time.Now())
	if err != nil {
		return err
	}

	resp := dashboardResponse{
		TotalRevenue:     stats.TotalRevenue,
		TodayRevenue:     stats.TodayRevenue,
		WeekRevenue:      stats.WeekRevenue,
		MonthRevenue:     stats.MonthRevenue,
		OrderCount:       stats.OrderCount,
		TodayOrdersCount: stats.TodayOrdersCount,
		TodayPiecesSold:  stats.TodayPiecesSold,
		RevenueByDay:     make([]dayRevenueResponse, len(stats.RevenueByDay)),
		RecentOrders:     make([]orderSummaryResponse, len(stats.RecentOrders)),
	}
	for i, d := range stats.RevenueByDay {
		resp.RevenueByDay[i] = dayRevenueResponse{Date: d.Date, Revenue: d.Revenue, Orders: d.Orders}
	}
	for i := range stats.RecentOrders {
		o := &stats.RecentOrders[i]
		resp.RecentOrders[i] = orderSummaryResponse{
			OrderNumber: o.OrderNumber,
			Total:       o.Total,
			Status:      string(o.Status),
			CreatedAt:   o.CreatedAt.UTC(),
			ItemCount:   len(o.Items),
			Links:       orderLinks{Self: "/v1/orders/" + o.OrderNumber},
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// ListUsers handles GET /v1/admin/users. Passing ?email= narrows the list to
// the matching account, the lookup the registration pre-check uses.
//
// @Summary      List user accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  false  "Filter by exact email"
// @Success      200    {array}   domain.User
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	if email := c.QueryParam("email"); email != "" {
		user, err := h.users.FindByEmail(c.Request().Context(), email)
		if err != nil {
			if err == domain.ErrUserNotFound {
				return c.JSON(http.StatusOK, []domain.User{})
			}
			return err
		}
		return c.JSON(http.StatusOK, []domain.User{*user})
	}

	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser handles GET /v1/admin/users/:id.
//
// @Summary      Get a user account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	user, err := h.users.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /v1/admin/users/:id.
//
// @Summary      Delete a user account
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204  "No Content"
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
