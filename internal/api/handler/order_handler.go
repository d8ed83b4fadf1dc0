package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

// OrderHandler handles checkout and order history.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Checkout handles POST /v1/orders — places an order from the caller's cart.
//
// @Summary      Place an order from the cart
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string  false  "Idempotency key to prevent duplicate submissions"
// @Success      201  {object}  checkoutResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	_, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.Checkout(c.Request().Context(), ports.CheckoutInput{
		UserID:         userID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toCheckoutResponse(result))
}

// Get handles GET /v1/orders/:order_number. Customers only see their own
// orders; admins see any.
//
// @Summary      Get an order by order number
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        order_number  path      string  true  "Order number (e.g. ORD-7A8B9C2D)"
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{order_number} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	role, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	order, err := h.service.Get(c.Request().Context(), ports.GetOrderInput{
		OrderNumber: c.Param("order_number"),
		Role:        role,
		UserID:      userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// List handles GET /v1/orders — the caller's order history. Admins may pass
// ?user_id= to inspect a specific customer, or omit it to list all orders.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status   query     string  false  "Filter by status"
// @Param        user_id  query     string  false  "Admin only: filter by user"
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  listOrdersResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	role, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	in := ports.ListOrdersInput{
		UserID: userID,
		Status: c.QueryParam("status"),
	}
	if role == domain.RoleAdmin {
		in.UserID = c.QueryParam("user_id")
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		in.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		in.Limit = limit
	}

	result, err := h.service.List(c.Request().Context(), role, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListOrdersResponse(result))
}
