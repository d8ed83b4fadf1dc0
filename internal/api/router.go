package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/maisonlumiere/storefront-api/docs"
	"github.com/maisonlumiere/storefront-api/internal/api/handler"
	"github.com/maisonlumiere/storefront-api/internal/api/middleware"
	"github.com/maisonlumiere/storefront-api/internal/core/domain"
	"github.com/maisonlumiere/storefront-api/internal/core/ports"
)

// RouterDeps carries the wired services the router mounts.
type RouterDeps struct {
	AuthService      ports.AuthService
	CatalogService   ports.CatalogService
	CartService      ports.CartService
	OrderService     ports.OrderService
	DashboardService ports.DashboardService
	UserRepo         ports.UserRepository
	EventDispatcher  handler.EventDispatcher

	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	productHandler := handler.NewProductHandler(deps.CatalogService)
	cartHandler := handler.NewCartHandler(deps.CartService)
	orderHandler := handler.NewOrderHandler(deps.OrderService)
	eventHandler := handler.NewEventHandler(deps.EventDispatcher)
	adminHandler := handler.NewAdminHandler(deps.DashboardService, deps.UserRepo)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and operational surface (public) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Catalog browsing (public) ---
	v1 := e.Group("/v1")
	v1.GET("/products", productHandler.List)
	v1.GET("/products/:id", productHandler.Get)

	// --- Customer routes: cart, wishlist, checkout, order history ---
	customer := v1.Group("", authMiddleware, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	customer.GET("/cart", cartHandler.Get)
	customer.DELETE("/cart", cartHandler.Clear)
	customer.POST("/cart/items", cartHandler.AddItem)
	customer.PUT("/cart/items/:product_id", cartHandler.UpdateItem)
	customer.DELETE("/cart/items/:product_id", cartHandler.RemoveItem)
	customer.GET("/wishlist", cartHandler.Wishlist)
	customer.POST("/wishlist/:product_id", cartHandler.AddToWishlist)
	customer.DELETE("/wishlist/:product_id", cartHandler.RemoveFromWishlist)
	customer.POST("/orders", orderHandler.Checkout)
	customer.GET("/orders", orderHandler.List)
	customer.GET("/orders/:order_number", orderHandler.Get)

	// --- Admin routes: collection management, dashboards, client management,
	//     order status events ---
	admin := v1.Group("", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Delete)
	admin.GET("/admin/products/stats", productHandler.Stats)
	admin.GET("/admin/dashboard", adminHandler.Dashboard)
	admin.GET("/admin/users", adminHandler.ListUsers)
	admin.GET("/admin/users/:id", adminHandler.GetUser)
	admin.DELETE("/admin/users/:id", adminHandler.DeleteUser)
	admin.POST("/orders/events", eventHandler.Receive)
	admin.POST("/orders/events/batch", eventHandler.ReceiveBatch)

	return e
}
