package main

import (
	"context"
	"log"
	"time"

	"techstore-api/internal/core/cache"
	"techstore-api/internal/core/config"
	"techstore-api/internal/core/logger"
	"techstore-api/internal/core/server"
	cartadapter "techstore-api/internal/features/cart/adapters"
	carthandler "techstore-api/internal/features/cart/handler"
	cartservice "techstore-api/internal/features/cart/service"
	catalogadapter "techstore-api/internal/features/catalog/adapters"
	cataloghandler "techstore-api/internal/features/catalog/handler"
	catalogservice "techstore-api/internal/features/catalog/service"
	checkoutadapter "techstore-api/internal/features/checkout/adapters"
	checkouthandler "techstore-api/internal/features/checkout/handler"
	checkoutservice "techstore-api/internal/features/checkout/service"
	orderadapter "techstore-api/internal/features/orders/adapters"
	orderhandler "techstore-api/internal/features/orders/handler"
	orderservice "techstore-api/internal/features/orders/service"
	promoadapter "techstore-api/internal/features/promos/adapters"
	promohandler "techstore-api/internal/features/promos/handler"
	promoservice "techstore-api/internal/features/promos/service"

	"go.uber.org/zap"
)

// @title TechStore API
// @version 1.0
// @description Storefront core for TechStore: catalog, session carts, checkout with WhatsApp hand-off and order lookup.
// @contact.name API Support
// @contact.email support@techstore.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize Redis and verify connectivity
	redisCache, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Initialize Catalog Adapter and run Health Check
	supabaseAdapter := catalogadapter.NewSupabaseAdapter(cfg.Supabase)
	if err := supabaseAdapter.HealthCheck(pingCtx); err != nil {
		l.Fatal("Supabase Health Check Failed", zap.Error(err))
	}
	l.Info("Supabase connection verified")

	// Catalog
	catalogSvc := catalogservice.NewCatalogService(supabaseAdapter)
	catalogHdl := cataloghandler.NewCatalogHandler(catalogSvc)

	// Cart
	cartTTL := time.Duration(cfg.Checkout.CartTTLHours) * time.Hour
	cartRepo := cartadapter.NewRedisCartRepository(redisCache, cartTTL)
	cartSource := cartadapter.NewCatalogSource(catalogSvc)
	cartSvc := cartservice.NewCartService(cartRepo, cartSource)
	cartHdl := carthandler.NewCartHandler(cartSvc)

	// Checkout
	orderStore := checkoutadapter.NewSupabaseOrderStore(cfg.Supabase)
	checkoutSvc := checkoutservice.NewCheckoutService(cartSvc, orderStore, redisCache, cfg.Checkout)
	checkoutHdl := checkouthandler.NewCheckoutHandler(checkoutSvc)

	// Orders
	ordersAdapter := orderadapter.NewSupabaseOrdersAdapter(cfg.Supabase)
	orderSvc := orderservice.NewOrderService(ordersAdapter)
	orderHdl := orderhandler.NewOrderHandler(orderSvc)

	// Promos
	promoRepo := promoadapter.NewRedisPromoRepository(redisCache)
	promoSvc := promoservice.NewPromoService(promoRepo)
	promoHdl := promohandler.NewPromoHandler(promoSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/products", catalogHdl.List)
	srv.App.Get("/products/:id", catalogHdl.Get)
	srv.App.Post("/products", catalogHdl.Create)
	srv.App.Put("/products/:id", catalogHdl.Update)
	srv.App.Delete("/products/:id", catalogHdl.Delete)

	srv.App.Get("/cart", cartHdl.Get)
	srv.App.Delete("/cart", cartHdl.Clear)
	srv.App.Post("/cart/items", cartHdl.AddItem)
	srv.App.Put("/cart/items/:productID", cartHdl.UpdateQuantity)
	srv.App.Delete("/cart/items/:productID", cartHdl.RemoveItem)

	srv.App.Post("/checkout", checkoutHdl.Submit)
	srv.App.Get("/checkout/quote", checkoutHdl.Quote)

	srv.App.Get("/orders/:id", orderHdl.GetOrder)

	srv.App.Get("/promo", promoHdl.GetPromo)
	srv.App.Post("/promo", promoHdl.SetPromo)
	srv.App.Delete("/promo", promoHdl.RemovePromo)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
