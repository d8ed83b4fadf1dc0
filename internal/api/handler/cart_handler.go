package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

// CartHandler handles the customer cart and wishlist endpoints. All routes
// are mounted behind the Auth middleware; the cart is always the caller's own.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type cartLineResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
	Image     string  `json:"image,omitempty"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total float64            `json:"total"`
}

func toCartResponse(v *ports.CartView) cartResponse {
	items := make([]cartLineResponse, len(v.Items))
	for i, line := range v.Items {
		items[i] = cartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal,
			Image:     line.Image,
		}
	}
	return cartResponse{Items: items, Total: v.Total}
}

// Get handles GET /v1/cart.
//
// @Summary      View the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	_, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}
	view, err := h.service.View(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// AddItem handles POST /v1/cart/items.
//
// @Summary      Add an item to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      cartItemRequest  true  "Product and quantity"
// @Success      204   "No Content"
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	_, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.AddItem(c.Request().Context(), userID, req.ProductID, req.Quantity); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateItem handles PUT /v1/cart/items/:product_id.
//
// @Summary      Change an item's quantity
// @Tags         cart
// @Accept       json
// @Security     BearerAuth
// @Param        product_id  path  string                 true  "Product id"
// @Param        body        body  updateCartItemRequest  true  "New quantity"
// @Success      204  "No Content"
// @Failure      404  {object}  errorResponse
// @Router       /v1/cart/items/{product_id} [put]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	_, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.UpdateItem(c.Request().Context(), userID, c.Param("product_id"), req.Quantity); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveItem handles DELETE /v1/cart/items/:product_id.
//
// @Summary      Remove an item from the cart
// @Tags         cart
// @Security     BearerAuth
// @Param        product_id  path  string  true  "Product id"
// @Success      204  "No Content"
// @Router       /v1/cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	_, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveItem(c.Request().Context(), userID, c.Param("product_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Clear handles DELETE /v1/cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Security     BearerAuth
// @Success      204  "No Content"
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	_, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.Clear(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Wishlist handles GET /v1/wishlist.
//
// @Summary      View the wishlist
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listProductsResponse
// @Router       /v1/wishlist [get]
func (h *CartHandler) Wishlist(c echo.Context) error {
	_, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}
	products, err := h.service.Wishlist(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListProductsResponse(products))
}

// AddToWishlist handles POST /v1/wishlist/:product_id.
//
// @Summary      Add a product to the wishlist
// @Tags         wishlist
// @Security     BearerAuth
// @Param        product_id  path  string  true  "Product id"
// @Success      204  "No Content"
// @Failure      404  {object}  errorResponse
// @Router       /v1/wishlist/{product_id} [post]
func (h *CartHandler) AddToWishlist(c echo.Context) error {
	_, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.AddToWishlist(c.Request().Context(), userID, c.Param("product_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveFromWishlist handles DELETE /v1/wishlist/:product_id.
//
// @Summary      Remove a product from the wishlist
// @Tags         wishlist
// @Security     BearerAuth
// @Param        product_id  path  string  true  "Product id"
// @Success      204  "No Content"
// @Router       /v1/wishlist/{product_id} [delete]
func (h *CartHandler) RemoveFromWishlist(c echo.Context) error {
	_, userID, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveFromWishlist(c.Request().Context(), userID, c.Param("product_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
