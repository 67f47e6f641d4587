package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopcraft/storefront/internal/api/handlers"
	"github.com/shopcraft/storefront/internal/api/middleware"
	"github.com/shopcraft/storefront/internal/cache"
	"github.com/shopcraft/storefront/internal/config"
	"github.com/shopcraft/storefront/internal/health"
	"github.com/shopcraft/storefront/internal/metrics"
	"github.com/shopcraft/storefront/internal/models"
	repository "github.com/shopcraft/storefront/internal/repositories"
	service "github.com/shopcraft/storefront/internal/services"
	"github.com/shopcraft/storefront/pkg/paypal"
	"github.com/shopcraft/storefront/pkg/sendgrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	// Checkout pricing
	shippingFee, err := models.MoneyFromString(cfg.Checkout.ShippingFee)
	if err != nil {
		slog.Error("❌ Invalid shipping fee in config", "error", err.Error())
		os.Exit(1)
	}

	taxRate, err := decimal.NewFromString(cfg.Checkout.TaxRate)
	if err != nil {
		slog.Error("❌ Invalid tax rate in config", "error", err.Error())
		os.Exit(1)
	}

	pricing := service.CheckoutPricing{ShippingFee: shippingFee, TaxRate: taxRate}

	jwtKey := []byte(cfg.Security.JWTKey)

	paypalClient, err := paypal.NewClient(cfg.PayPal.ClientID, cfg.PayPal.Secret, cfg.PayPal.Live)
	if err != nil {
		slog.Error("❌ Error initializing the paypal client", "error", err.Error())
		os.Exit(1)
	}

	sendGridClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, rateLimitRepo, jwtKey, cfg.Security.TokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	productService := service.NewProductService(repos.Product, productCache, cfg.Cache.DefaultTTL)
	productHandler := handlers.NewProductHandler(productService)
	catalogService := service.NewCatalogService(repos.Brand, repos.Category)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartService := service.NewCartService(repos.Cart, productService, cfg.Checkout.CartMaxAge)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, repos.Cart, productService, pricing)
	orderHandler := handlers.NewOrderHandler(orderService)
	notificationService := service.NewNotificationService(repos.Notification, repos.User, sendGridClient)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	paymentService := service.NewPaymentService(repos.Order, paypalClient, notificationService, cfg.Checkout.Currency)
	paymentHandler := handlers.NewPaymentHandler(paymentService, orderService)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:           repos.DB,
		RedisClient:  redisClient,
		PayPalClient: paypalClient,
	})
	if err != nil {
		slog.Error("❌ Error initializing health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))

	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.RequireAdmin(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.RequireAdmin(productHandler.UpdateProduct()))
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())

	routerMux.HandleFunc("POST /api/v1/brands", authMiddleware.RequireAdmin(catalogHandler.CreateBrand()))
	routerMux.HandleFunc("GET /api/v1/brands/{id}", catalogHandler.GetBrand())
	routerMux.HandleFunc("PUT /api/v1/brands/{id}", authMiddleware.RequireAdmin(catalogHandler.UpdateBrand()))
	routerMux.HandleFunc("GET /api/v1/brands", catalogHandler.ListBrands())
	routerMux.HandleFunc("POST /api/v1/categories", authMiddleware.RequireAdmin(catalogHandler.CreateCategory()))
	routerMux.HandleFunc("GET /api/v1/categories/{id}", catalogHandler.GetCategory())
	routerMux.HandleFunc("PUT /api/v1/categories/{id}", authMiddleware.RequireAdmin(catalogHandler.UpdateCategory()))
	routerMux.HandleFunc("GET /api/v1/categories", catalogHandler.ListCategories())

	routerMux.HandleFunc("GET /api/v1/carts", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("GET /api/v1/carts/validate", authMiddleware.Authenticate(cartHandler.ValidateCart()))
	routerMux.HandleFunc("POST /api/v1/carts/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/carts/items/{productId}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/carts/items/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/carts", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/admin/carts/sweep", authMiddleware.RequireAdmin(cartHandler.SweepExpiredCarts()))

	routerMux.HandleFunc("POST /api/v1/orders", authMiddleware.Authenticate(orderHandler.CreateOrder()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/admin/orders", authMiddleware.RequireAdmin(orderHandler.ListAllOrders()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", authMiddleware.RequireAdmin(orderHandler.UpdateOrderStatus()))
	routerMux.HandleFunc("POST /api/v1/orders/{id}/cancel", authMiddleware.Authenticate(orderHandler.CancelOrder()))

	routerMux.HandleFunc("POST /api/v1/orders/{id}/payments", authMiddleware.Authenticate(paymentHandler.InitiatePayment()))
	routerMux.HandleFunc("POST /api/v1/orders/{id}/payments/capture", authMiddleware.Authenticate(paymentHandler.CompletePayment()))
	routerMux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.Webhook())

	routerMux.HandleFunc("GET /api/v1/notifications", authMiddleware.Authenticate(notificationHandler.ListNotifications()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
