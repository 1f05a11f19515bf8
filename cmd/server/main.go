package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/admin"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/cart"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/catalog"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/checkout"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/config"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/handlers"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/middleware"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/storage"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/view"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"catalog_source", cfg.Catalog.Source,
	)

	// Open the key-value store (cart channel + catalog fallback)
	kv, err := storage.OpenKV(cfg.Catalog.KVPath)
	if err != nil {
		log.Error("failed to open key-value store", "path", cfg.Catalog.KVPath, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	// Durable catalog channel with a grant scoped to the configured file
	granter := storage.StaticGranter{Path: cfg.Catalog.WritePath}
	channel := storage.NewCatalogChannel(cfg.Catalog.Source, granter, kv, log)

	// Initialize stores; load failures degrade to empty state, never fatal
	ctx := context.Background()
	catalogStore := catalog.NewStore(channel)
	catalogStore.Load(ctx)

	cartStore := cart.NewStore(catalogStore, kv, log)
	cartStore.Load(ctx)

	log.Info("stores initialized",
		"products", len(catalogStore.All()),
		"cart_items", cartStore.ItemCount(),
	)

	// View state machine; entry renderers are registered by the handlers
	views := view.NewController()

	// Initialize services
	checkoutService := checkout.NewService(cartStore)
	adminWorkflow := admin.NewWorkflow(catalogStore)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	productHandler := handlers.NewProductHandler(catalogStore, views, log)
	cartHandler := handlers.NewCartHandler(cartStore, views, log)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, views, log)
	adminHandler := handlers.NewAdminHandler(adminWorkflow, catalogStore, views, log)
	viewHandler := handlers.NewViewHandler(views, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Product endpoints
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
		r.Get("/categories", productHandler.ListCategories)

		// Cart endpoints
		r.Get("/cart", cartHandler.GetCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Patch("/cart/items/{index}", cartHandler.ChangeQuantity)
		r.Delete("/cart/items/{index}", cartHandler.RemoveItem)

		// Checkout endpoint
		r.Post("/checkout", checkoutHandler.PlaceOrder)

		// Admin endpoints
		r.Get("/admin/products", adminHandler.ListProducts)
		r.Post("/admin/products", adminHandler.CreateProduct)
		r.Put("/admin/products/{productId}", adminHandler.UpdateProduct)
		r.Delete("/admin/products/{productId}", adminHandler.DeleteProduct)

		// View state machine
		r.Get("/view", viewHandler.GetView)
		r.Post("/view/{name}", viewHandler.ShowView)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
