package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/maisonlumiere/storefront-api/internal/api"
	"github.com/maisonlumiere/storefront-api/internal/core/service"
	"github.com/maisonlumiere/storefront-api/internal/infrastructure/config"
	mongostore "github.com/maisonlumiere/storefront-api/internal/infrastructure/db/mongo"
	redisstore "github.com/maisonlumiere/storefront-api/internal/infrastructure/db/redis"
	"github.com/maisonlumiere/storefront-api/internal/infrastructure/queue"
	"github.com/maisonlumiere/storefront-api/pkg/logger"
)

// @title           Maison Lumiere Storefront API
// @version         1.0
// @description     REST API for the Maison Lumiere storefront and back office.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// .env is optional; real deployments inject environment variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("starting storefront api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	userRepo := mongostore.NewUserRepository(db)
	productRepo := mongostore.NewProductRepository(db)
	orderRepo := mongostore.NewOrderRepository(db)
	eventRepo := mongostore.NewEventRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":    userRepo.EnsureIndexes,
		"products": productRepo.EnsureIndexes,
		"orders":   orderRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("ensure indexes")
		}
	}

	cartStore := redisstore.NewCartStore(rdb, cfg.Redis.CartTTL)
	wishlistStore := redisstore.NewWishlistStore(rdb)
	dedup := redisstore.NewDedupChecker(rdb)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	catalogService := service.NewCatalogService(productRepo, log)
	cartService := service.NewCartService(cartStore, wishlistStore, productRepo, log)
	orderService := service.NewOrderService(orderRepo, productRepo, cartStore, log)
	dashboardService := service.NewDashboardService(orderRepo, log)
	eventService := service.NewEventService(orderRepo, eventRepo, dedup, log)

	dispatcher := queue.NewDispatcher(cfg.Queue.Workers, eventService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.RouterDeps{
		AuthService:      authService,
		CatalogService:   catalogService,
		CartService:      cartService,
		OrderService:     orderService,
		DashboardService: dashboardService,
		UserRepo:         userRepo,
		EventDispatcher:  dispatcher,
		Mongo:            db,
		Redis:            rdb,
		JWTSecret:        cfg.JWTSecret,
		Logger:           log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, draining...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	log.Info().Msg("storefront api stopped")
}
